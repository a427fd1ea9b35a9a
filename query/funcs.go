package query

import (
	"os"
	"time"

	"github.com/expr-lang/expr"
	"github.com/signadot/dataobject"
)

// coerce converts v with the getter conversion of typ.
func coerce(v any, typ dataobject.Type) (any, error) {
	return dataobject.GetAs(dataobject.New().With("value", v), "value", typ)
}

var lookupDecl = func(path string) (any, error) { return nil, nil }

func exprOpts(decls map[string]any) []expr.Option {
	return []expr.Option{
		expr.Env(decls),
		expr.AllowUndefinedVariables(),
		expr.Function("asString", func(params ...any) (any, error) {
			v, err := coerce(params[0], dataobject.StringType)
			if v == nil {
				return "", err
			}
			return v, err
		},
			new(func(any) string)),
		expr.Function("asInt", func(params ...any) (any, error) {
			v, err := coerce(params[0], dataobject.IntType)
			if v == nil {
				return int64(0), err
			}
			return v, err
		},
			new(func(any) int64)),
		expr.Function("asFloat", func(params ...any) (any, error) {
			v, err := coerce(params[0], dataobject.FloatType)
			if v == nil {
				return 0.0, err
			}
			return v, err
		},
			new(func(any) float64)),
		expr.Function("asBool", func(params ...any) (any, error) {
			v, err := coerce(params[0], dataobject.BoolType)
			if v == nil {
				return false, err
			}
			return v, err
		},
			new(func(any) bool)),
		expr.Function("asDateTime", func(params ...any) (any, error) {
			return coerce(params[0], dataobject.DateTimeType)
		},
			new(func(any) time.Time)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

// env makes the variables of an expression run against doc.
func env(doc dataobject.Typed, vars map[string]any) map[string]any {
	res := map[string]any{
		"lookup": func(path string) (any, error) {
			v, err := dataobject.Lookup(doc, path)
			if err != nil {
				return nil, err
			}
			return export(v), nil
		},
	}
	for k, v := range vars {
		res[k] = v
	}
	for k, v := range doc.AsMap(true) {
		res[k] = v
	}
	return res
}

func export(v any) any {
	switch x := v.(type) {
	case dataobject.Typed:
		return x.AsMap(true)
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = export(x[i])
		}
		return res
	}
	return v
}
