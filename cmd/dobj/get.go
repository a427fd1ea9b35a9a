package main

import (
	"context"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/dataobject"
	"github.com/signadot/dataobject/encode"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a key path", cli.ErrUsage)
	}
	var typ *dataobject.Type
	if cfg.Type != "" {
		typ = new(dataobject.Type)
		if err := typ.UnmarshalText([]byte(cfg.Type)); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	ins, err := cfg.inputs(context.Background(), cc.In, args[1:])
	if err != nil {
		return err
	}
	return getInputs(cfg.MainConfig, cc.Out, args[0], typ, ins)
}

func getInputs(cfg *MainConfig, w io.Writer, path string, typ *dataobject.Type, ins []*input) error {
	for i, in := range ins {
		v, err := getValue(in.doc, path, typ)
		if err != nil {
			return fmt.Errorf("error getting %s from %s: %w", path, in.name, err)
		}
		if err := encode.EncodeValue(v, w, cfg.encOpts(w, in.format)...); err != nil {
			return fmt.Errorf("error encoding %s from %s: %w", path, in.name, err)
		}
		if err := writeSep(w, i, len(ins)); err != nil {
			return err
		}
	}
	return nil
}

func getValue(doc dataobject.Typed, path string, typ *dataobject.Type) (any, error) {
	if typ == nil {
		return dataobject.Lookup(doc, path)
	}
	parent, key, err := dataobject.LookupParent(doc, path)
	if err != nil {
		return nil, err
	}
	return dataobject.GetAs(parent, key, *typ)
}
