package main

import (
	"context"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/dataobject/encode"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	ins, err := cfg.inputs(context.Background(), cc.In, args)
	if err != nil {
		return err
	}
	return viewInputs(cfg.MainConfig, cc.Out, ins)
}

func viewInputs(cfg *MainConfig, w io.Writer, ins []*input) error {
	for i, in := range ins {
		if err := encode.Encode(in.doc, w, cfg.encOpts(w, in.format)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", in.name, err)
		}
		if err := writeSep(w, i, len(ins)); err != nil {
			return err
		}
	}
	return nil
}
