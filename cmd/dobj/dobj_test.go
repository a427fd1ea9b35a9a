package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dataobject"
	"github.com/signadot/dataobject/format"
	"github.com/signadot/dataobject/query"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFormats(t *testing.T) {
	cfg := &MainConfig{}
	if f := cfg.inFormat("a.yaml"); f != format.YAMLFormat {
		t.Errorf("a.yaml: %s", f)
	}
	if f := cfg.inFormat("-"); f != format.JSONFormat {
		t.Errorf("stdin: %s", f)
	}
	if f := cfg.outFormat(format.YAMLFormat); f != format.YAMLFormat {
		t.Errorf("out follows in: %s", f)
	}
	cfg.J = true
	if f := cfg.inFormat("a.yaml"); f != format.JSONFormat {
		t.Errorf("-j a.yaml: %s", f)
	}
	y := format.YAMLFormat
	cfg.OutFormat = &y
	if f := cfg.outFormat(format.JSONFormat); f != format.YAMLFormat {
		t.Errorf("-O yaml: %s", f)
	}
}

func TestReadDocsAndView(t *testing.T) {
	cfg := &MainConfig{}
	in := "{\"b\": 1, \"a\": {\"c\": [true]}}\n---\n{\"x\": null}\n"
	ins, err := cfg.readDocs("-", strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(ins) != 2 {
		t.Fatalf("got %d docs", len(ins))
	}
	cfg.WireOut = true
	buf := bytes.NewBuffer(nil)
	if err := viewInputs(cfg, buf, ins); err != nil {
		t.Fatal(err)
	}
	want := "{\"b\":1,\"a\":{\"c\":[true]}}\n---\n{\"x\":null}\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestReadDocsMixedShape(t *testing.T) {
	cfg := &MainConfig{}
	if _, err := cfg.readDocs("-", strings.NewReader(`[1]`)); err == nil {
		t.Errorf("sequence root accepted")
	}
}

func TestGet(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.yaml", "name: widget\nwhen: 1700000000.5\nn: \"12\"\nlist:\n- a\n- b\n")
	cfg := &MainConfig{}
	in, err := cfg.loadFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		path string
		typ  string
		want string
	}{
		{"name", "", "widget\n"},
		{"list[1]", "", "b\n"},
		{"n", "int", "12\n"},
		{"when", "datetime", "2023-11-14T22:13:20.5Z\n"},
		{"missing", "string", "null\n"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var typ *dataobject.Type
			if tt.typ != "" {
				typ = new(dataobject.Type)
				if err := typ.UnmarshalText([]byte(tt.typ)); err != nil {
					t.Fatal(err)
				}
			}
			buf := bytes.NewBuffer(nil)
			if err := getInputs(cfg, buf, tt.path, typ, []*input{in}); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
	dt := dataobject.DateTimeType
	if _, err := getValue(in.doc, "missing", &dt); err == nil {
		t.Errorf("datetime of missing key succeeded")
	}
}

func TestPatchWrite(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.json", `{"a": 1}`)
	p := writeFile(t, dir, "p.yaml", "a: null\nb: 2\n")
	cfg := &PatchConfig{MainConfig: &MainConfig{}, Merge: true, Write: true}
	pt, err := cfg.loadPatch(p)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.patchFile(context.Background(), pt, doc); err != nil {
		t.Fatal(err)
	}
	in, err := cfg.loadFile(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"b": int64(2)}, in.doc.AsMap(true)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestPatchInputs(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "p.json", `[{"op": "add", "path": "/c", "value": "x"}]`)
	cfg := &PatchConfig{MainConfig: &MainConfig{WireOut: true}}
	pt, err := cfg.loadPatch(p)
	if err != nil {
		t.Fatal(err)
	}
	ins, err := cfg.readDocs("-", strings.NewReader(`{"a": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := patchInputs(cfg, buf, pt, ins); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{\"a\":1,\"c\":\"x\"}\n" {
		t.Errorf("got %q", got)
	}
}

func TestDiffInputs(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	cfg := &DiffConfig{MainConfig: &MainConfig{}, Context: -1}
	a, err := cfg.loadFile(ctx, writeFile(t, dir, "a.yaml", "x: 1\ny: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := cfg.loadFile(ctx, writeFile(t, dir, "b.yaml", "x: 1\ny: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	differs, err := diffInputs(cfg, buf, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !differs || buf.String() != "  x: 1\n- \"y\": 2\n+ \"y\": 3\n" {
		t.Errorf("differs=%v\n%s", differs, buf)
	}
	buf.Reset()
	differs, err = diffInputs(cfg, buf, a, a)
	if err != nil || differs || buf.Len() != 0 {
		t.Errorf("self diff: %v %v %q", differs, err, buf)
	}

	cfg.Merge = true
	buf.Reset()
	differs, err = diffInputs(cfg, buf, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !differs || buf.String() != "{\"y\":3}\n" {
		t.Errorf("merge diff: %v %q", differs, buf)
	}
}

func TestEvalInputs(t *testing.T) {
	cfg := &EvalConfig{MainConfig: &MainConfig{WireOut: true}, Vars: map[string]any{}}
	if err := varFunc(cfg.Vars, "min=2"); err != nil {
		t.Fatal(err)
	}
	if err := varFunc(cfg.Vars, "novalue"); err == nil {
		t.Errorf("varFunc accepted novalue")
	}
	ins, err := cfg.readDocs("-", strings.NewReader("{\"n\": 1}\n---\n{\"n\": \"3\"}\n"))
	if err != nil {
		t.Fatal(err)
	}
	q, err := query.Compile(`asInt(n) + 1`)
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := evalInputs(cfg, buf, q, ins); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "2\n---\n4\n" {
		t.Errorf("eval: %q", got)
	}

	cfg.Match = true
	q, err = query.CompileMatch(`asInt(n) >= min`, query.WithVars(cfg.Vars))
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := evalInputs(cfg, buf, q, ins); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{\"n\":\"3\"}\n" {
		t.Errorf("match: %q", got)
	}
}
