package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"github.com/signadot/dataobject/encode"
	"github.com/signadot/dataobject/query"
)

func eval(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression", cli.ErrUsage)
	}
	var q *query.Query
	if cfg.Match {
		q, err = query.CompileMatch(args[0], query.WithVars(cfg.Vars))
	} else {
		q, err = query.Compile(args[0], query.WithVars(cfg.Vars))
	}
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	ins, err := cfg.inputs(context.Background(), cc.In, args[1:])
	if err != nil {
		return err
	}
	return evalInputs(cfg, cc.Out, q, ins)
}

func evalInputs(cfg *EvalConfig, w io.Writer, q *query.Query, ins []*input) error {
	var outs []*input
	var results []any
	for _, in := range ins {
		if cfg.Match {
			ok, err := q.Match(in.doc)
			if err != nil {
				return fmt.Errorf("error matching %s: %w", in.name, err)
			}
			if ok {
				outs = append(outs, in)
				results = append(results, in.doc)
			}
			continue
		}
		v, err := q.Eval(in.doc)
		if err != nil {
			return fmt.Errorf("error evaluating %s: %w", in.name, err)
		}
		outs = append(outs, in)
		results = append(results, v)
	}
	theLog.Debug("eval", "expr", q.String(), "inputs", len(ins), "outputs", len(outs))
	for i, v := range results {
		if err := encode.EncodeValue(v, w, cfg.encOpts(w, outs[i].format)...); err != nil {
			return fmt.Errorf("error encoding result for %s: %w", outs[i].name, err)
		}
		if err := writeSep(w, i, len(results)); err != nil {
			return err
		}
	}
	return nil
}

func varOptTypeFunc(vars map[string]any) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := varFunc(vars, a); err != nil {
			return nil, err
		}
		return 0, nil
	}
}

// varFunc parses name=val, decoding val as YAML.
func varFunc(vars map[string]any, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok || key == "" {
		return fmt.Errorf("%w: argument %q expected name=val", cli.ErrUsage, a)
	}
	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return err
	}
	vars[key] = v
	return nil
}
