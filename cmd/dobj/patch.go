package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/dataobject"
	"github.com/signadot/dataobject/docfile"
	"github.com/signadot/dataobject/encode"
	"github.com/signadot/dataobject/format"
	libpatch "github.com/signadot/dataobject/patch"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	p, err := cfg.loadPatch(args[0])
	if err != nil {
		return err
	}
	files := args[1:]
	ctx := context.Background()
	if cfg.Write {
		if len(files) == 0 {
			return fmt.Errorf("%w: -w requires files", cli.ErrUsage)
		}
		for _, file := range files {
			if err := cfg.patchFile(ctx, p, file); err != nil {
				return err
			}
		}
		return nil
	}
	ins, err := cfg.inputs(ctx, cc.In, files)
	if err != nil {
		return err
	}
	return patchInputs(cfg, cc.Out, p, ins)
}

func (cfg *PatchConfig) loadPatch(file string) (*libpatch.Patch, error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read patch %q: %w", file, err)
	}
	kind := libpatch.JSONPatchKind
	if cfg.Merge {
		kind = libpatch.MergePatchKind
	}
	f := format.FromPath(file)
	if cfg.InFormat != nil {
		f = *cfg.InFormat
	}
	p, err := libpatch.Decode(d, f, kind)
	if err != nil {
		return nil, fmt.Errorf("could not decode patch %q: %w", file, err)
	}
	theLog.Debug("patch", "file", file, "kind", p.Kind(), "ops", p.Len())
	return p, nil
}

func (cfg *PatchConfig) patchOpts() []libpatch.Option {
	return []libpatch.Option{libpatch.WithShape(cfg.shape())}
}

func patchInputs(cfg *PatchConfig, w io.Writer, p *libpatch.Patch, ins []*input) error {
	for i, in := range ins {
		out, err := p.Apply(in.doc, cfg.patchOpts()...)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", in.name, err)
		}
		if err := encode.Encode(out, w, cfg.encOpts(w, in.format)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", in.name, err)
		}
		if err := writeSep(w, i, len(ins)); err != nil {
			return err
		}
	}
	return nil
}

func (cfg *PatchConfig) patchFile(ctx context.Context, p *libpatch.Patch, file string) error {
	df := docfile.New(file, docfile.WithFormat(cfg.inFormat(file)), docfile.WithShape(cfg.shape()))
	_, err := df.Update(ctx, func(doc dataobject.Typed) (dataobject.Typed, error) {
		return p.Apply(doc, cfg.patchOpts()...)
	})
	if err != nil {
		return fmt.Errorf("error patching %s: %w", file, err)
	}
	theLog.Info("patched", "file", file)
	return nil
}
