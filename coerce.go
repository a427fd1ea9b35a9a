package dataobject

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/signadot/dataobject/raw"
	"github.com/spf13/cast"
)

// Type names a target type of the typed getters.
type Type int

const (
	StringType Type = iota
	IntType
	FloatType
	BoolType
	DateTimeType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		StringType:   "string",
		IntType:      "int",
		FloatType:    "float",
		BoolType:     "bool",
		DateTimeType: "datetime",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"string":   StringType,
		"int":      IntType,
		"float":    FloatType,
		"bool":     BoolType,
		"datetime": DateTimeType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{StringType, IntType, FloatType, BoolType, DateTimeType}
}

type coerceFunc func(key string, v any) (any, error)

// coercions is indexed by Type. Every entry receives a non-nil value.
var coercions = [...]coerceFunc{
	StringType: func(_ string, v any) (any, error) { return toString(v), nil },
	IntType:    func(_ string, v any) (any, error) { return toInt(v), nil },
	FloatType:  func(_ string, v any) (any, error) { return toFloat(v), nil },
	BoolType:   func(_ string, v any) (any, error) { return toBool(v), nil },
	DateTimeType: func(key string, v any) (any, error) {
		return toDateTime(key, v)
	},
}

// GetAs returns the value of t under key converted to typ.
//
// When key is absent or holds null, GetAs returns (nil, nil) for the
// scalar types and a *MissingKeyError for DateTimeType. Scalar
// conversions never fail.
func GetAs(t Typed, key string, typ Type) (any, error) {
	if typ < 0 || int(typ) >= len(coercions) {
		return nil, fmt.Errorf("unknown type %d", typ)
	}
	v := t.Get(key)
	if v == nil {
		if typ == DateTimeType {
			return nil, &MissingKeyError{Key: key}
		}
		return nil, nil
	}
	return coercions[typ](key, v)
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case Typed, []any, map[string]any, raw.Record:
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

func toInt(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case string:
		return numericPrefixInt(x)
	case float64:
		return truncate(x)
	case time.Time:
		return x.Unix()
	case Typed, []any, map[string]any, raw.Record:
		if truthy(x) {
			return 1
		}
		return 0
	}
	i, err := cast.ToInt64E(v)
	if err != nil {
		return 0
	}
	return i
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		return numericPrefixFloat(x)
	case time.Time:
		return float64(x.UnixMicro()) / 1e6
	case Typed, []any, map[string]any, raw.Record:
		if truthy(x) {
			return 1
		}
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return f
}

func toBool(v any) bool {
	switch x := v.(type) {
	case string:
		return x != "" && x != "0"
	case int64:
		return x != 0
	case float64:
		return x != 0
	case time.Time:
		return !x.IsZero()
	case Typed, []any, map[string]any, raw.Record:
		return truthy(x)
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return true
	}
	return b
}

func truthy(v any) bool {
	switch x := v.(type) {
	case Typed:
		return x.Len() != 0
	case []any:
		return len(x) != 0
	case map[string]any:
		return len(x) != 0
	case raw.Record:
		return len(x) != 0
	}
	return v != nil
}

func truncate(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	if f <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(f)
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// numericPrefixFloat parses the longest numeric prefix of s, ignoring
// leading whitespace: "12.5kg" is 12.5, "abc" is 0.
func numericPrefixFloat(s string) float64 {
	p := numericPrefix.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	if p == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(p, 64)
	return f
}

func numericPrefixInt(s string) int64 {
	p := numericPrefix.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	if p == "" {
		return 0
	}
	if !strings.ContainsAny(p, ".eE") {
		i, err := strconv.ParseInt(p, 10, 64)
		if err == nil {
			return i
		}
	}
	f, _ := strconv.ParseFloat(p, 64)
	return truncate(f)
}
