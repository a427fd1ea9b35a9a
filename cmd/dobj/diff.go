package main

import (
	"context"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	libdiff "github.com/signadot/dataobject/diff"
	"github.com/signadot/dataobject/encode"
	libpatch "github.com/signadot/dataobject/patch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	ctx := context.Background()
	a, err := cfg.loadFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("error loading %s: %w", args[0], err)
	}
	b, err := cfg.loadFile(ctx, args[1])
	if err != nil {
		return fmt.Errorf("error loading %s: %w", args[1], err)
	}
	differs, err := diffInputs(cfg, cc.Out, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffInputs(cfg *DiffConfig, w io.Writer, a, b *input) (bool, error) {
	if cfg.Merge {
		eq, err := libpatch.Equal(a.doc, b.doc)
		if err != nil || eq {
			return false, err
		}
		mp, err := libpatch.CreateMerge(a.doc, b.doc)
		if err != nil {
			return false, err
		}
		_, err = fmt.Fprintf(w, "%s\n", mp)
		return true, err
	}
	res, err := libdiff.Docs(a.doc, b.doc, encode.EncodeFormat(cfg.outFormat(a.format)))
	if err != nil {
		return false, err
	}
	if res.Equal() {
		return false, nil
	}
	ins, del := res.Stats()
	theLog.Debug("diff", "a", a.name, "b", b.name, "inserted", ins, "deleted", del)
	err = res.Write(w, libdiff.WithColor(cfg.useColor(w)), libdiff.Context(cfg.Context))
	return true, err
}
