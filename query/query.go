package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/dataobject"
	"github.com/signadot/dataobject/debug"
)

type Option func(*Query)

// WithVars adds variables to the environment of every run. Document keys
// take precedence.
func WithVars(vars map[string]any) Option {
	return func(q *Query) {
		for k, v := range vars {
			q.vars[k] = v
		}
	}
}

// Query is a compiled expression. A Query may be run concurrently.
type Query struct {
	src  string
	prg  *vm.Program
	vars map[string]any
}

func Compile(src string, opts ...Option) (*Query, error) {
	return compile(src, nil, opts)
}

// CompileMatch compiles an expression that must evaluate to a bool.
func CompileMatch(src string, opts ...Option) (*Query, error) {
	return compile(src, []expr.Option{expr.AsBool()}, opts)
}

func compile(src string, extra []expr.Option, opts []Option) (*Query, error) {
	q := &Query{src: src, vars: map[string]any{}}
	for _, opt := range opts {
		opt(q)
	}
	prg, err := expr.Compile(src, append(exprOpts(q.decls()), extra...)...)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", src, err)
	}
	if debug.Query() {
		debug.Logf("compiled %q\n", src)
	}
	q.prg = prg
	return q, nil
}

// decls declares the variables known before any document is seen, so
// that they take precedence over expr builtins of the same name, such as
// min or len. Document keys stay undeclared.
func (q *Query) decls() map[string]any {
	res := map[string]any{"lookup": lookupDecl}
	for k, v := range q.vars {
		res[k] = v
	}
	return res
}

func (q *Query) String() string {
	return q.src
}

// Eval runs q against doc. Nodes in the result are exported as maps.
func (q *Query) Eval(doc dataobject.Typed) (any, error) {
	res, err := expr.Run(q.prg, env(doc, q.vars))
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", q.src, err)
	}
	if debug.Query() {
		debug.Logf("%q on %s: %v\n", q.src, debug.Node{Typed: doc}, res)
	}
	return res, nil
}

// Match runs q against doc and requires a bool result.
func (q *Query) Match(doc dataobject.Typed) (bool, error) {
	res, err := q.Eval(doc)
	if err != nil {
		return false, err
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("evaluating %q: got %T, want bool", q.src, res)
	}
	return b, nil
}

// Eval compiles and runs src against doc.
func Eval(doc dataobject.Typed, src string, opts ...Option) (any, error) {
	q, err := Compile(src, opts...)
	if err != nil {
		return nil, err
	}
	return q.Eval(doc)
}

// Filter returns the docs q matches, in order.
func (q *Query) Filter(docs []dataobject.Typed) ([]dataobject.Typed, error) {
	var res []dataobject.Typed
	for _, doc := range docs {
		ok, err := q.Match(doc)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, doc)
		}
	}
	return res, nil
}
