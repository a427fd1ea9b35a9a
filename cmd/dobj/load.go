package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/signadot/dataobject"
	"github.com/signadot/dataobject/docfile"
	"github.com/signadot/dataobject/format"
	"github.com/signadot/dataobject/raw"
)

// input is a document read from a file or standard input.
type input struct {
	name   string
	index  int
	format format.Format
	doc    dataobject.Typed
}

var docSep = []byte("\n---\n")

// loadFile reads a single document file under its lock.
func (cfg *MainConfig) loadFile(ctx context.Context, file string) (*input, error) {
	f := cfg.inFormat(file)
	doc, err := docfile.Load(ctx, file, docfile.WithFormat(f), docfile.WithShape(cfg.shape()))
	if err != nil {
		return nil, err
	}
	theLog.Debug("loaded", "file", file, "format", f, "keys", doc.Len())
	return &input{name: file, format: f, doc: doc}, nil
}

// readDocs reads a stream of documents separated by "---" lines.
func (cfg *MainConfig) readDocs(name string, r io.Reader) ([]*input, error) {
	in, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	f := cfg.inFormat(name)
	b := dataobject.NewBuilder()
	var res []*input
	for i, d := range bytes.Split(in, docSep) {
		if len(bytes.TrimSpace(d)) == 0 {
			continue
		}
		rv, err := raw.Decode(d, f, cfg.shape())
		if err != nil {
			return nil, fmt.Errorf("error decoding %s document %d: %w", name, i, err)
		}
		doc, err := b.Build(rv)
		if err != nil {
			return nil, fmt.Errorf("error building %s document %d: %w", name, i, err)
		}
		res = append(res, &input{name: name, index: i, format: f, doc: doc})
	}
	theLog.Debug("read", "input", name, "format", f, "docs", len(res))
	return res, nil
}

// inputs loads the documents of files, or of stdin when files is empty
// or "-".
func (cfg *MainConfig) inputs(ctx context.Context, stdin io.Reader, files []string) ([]*input, error) {
	if len(files) == 0 {
		return cfg.readDocs("-", stdin)
	}
	var res []*input
	for _, file := range files {
		if file == "-" {
			docs, err := cfg.readDocs(file, stdin)
			if err != nil {
				return nil, err
			}
			res = append(res, docs...)
			continue
		}
		in, err := cfg.loadFile(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("could not load %q: %w", file, err)
		}
		res = append(res, in)
	}
	return res, nil
}

// writeSep separates the i'th of n outputs from the next.
func writeSep(w io.Writer, i, n int) error {
	if i >= n-1 {
		return nil
	}
	_, err := w.Write([]byte("---\n"))
	return err
}
