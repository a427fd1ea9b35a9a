package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/dataobject/encode"
	"github.com/signadot/dataobject/format"
	"github.com/signadot/dataobject/raw"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	Objects bool `cli:"name=objects desc='build documents as object-shaped instead of map-shaped'"`
	Verbose bool `cli:"name=v aliases=verbose desc='log progress to stderr'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// inFormat returns the format to decode file with. Without -I, -j or -y
// the format follows the file extension.
func (cfg *MainConfig) inFormat(file string) format.Format {
	switch {
	case cfg.InFormat != nil:
		return *cfg.InFormat
	case cfg.Y:
		return format.YAMLFormat
	case cfg.J:
		return format.JSONFormat
	case file == "-":
		return format.JSONFormat
	}
	return format.FromPath(file)
}

// outFormat returns the output format for a document read in format in.
func (cfg *MainConfig) outFormat(in format.Format) format.Format {
	switch {
	case cfg.OutFormat != nil:
		return *cfg.OutFormat
	case cfg.Y:
		return format.YAMLFormat
	case cfg.J:
		return format.JSONFormat
	}
	return in
}

func (cfg *MainConfig) shape() raw.Kind {
	if cfg.Objects {
		return raw.ObjectKind
	}
	return raw.MapKind
}

func (cfg *MainConfig) encOpts(w io.Writer, in format.Format) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat(in)),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor honours -color when given and otherwise colours terminals.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main == nil {
		return false
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type GetConfig struct {
	*MainConfig
	Type string `cli:"name=type desc='convert the value: string, int, float, bool or datetime'"`

	Get *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=m desc='the patch is a merge patch'"`
	Write bool `cli:"name=w desc='write results back to the files'"`

	Patch *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Merge   bool `cli:"name=m desc='output the merge patch from a to b'"`
	Context int  `cli:"name=c desc='lines of context around changes, -1 for all'"`

	Diff *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Vars  map[string]any
	Match bool `cli:"name=m desc='output the documents matching a boolean expression'"`

	Eval *cli.Command
}
