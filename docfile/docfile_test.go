package docfile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dataobject"
	"github.com/signadot/dataobject/format"
	"github.com/signadot/dataobject/raw"
)

func sampleDoc() *dataobject.Node {
	return dataobject.New().
		With("name", "widget").
		With("tags", []any{"a", "b"}).
		With("nested", dataobject.New().With("n", int64(3)))
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	for _, name := range []string{"doc.json", "doc.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Save(ctx, path, sampleDoc()); err != nil {
				t.Fatal(err)
			}
			got, err := Load(ctx, path)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(sampleDoc().AsMap(true), got.AsMap(true)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"name", "tags", "nested"}, got.Keys()); diff != "" {
				t.Errorf("key order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	df := New(path, WithFormat(format.YAMLFormat))
	if df.Format() != format.YAMLFormat || df.Path() != path {
		t.Errorf("format %s path %s", df.Format(), df.Path())
	}
	if err := df.Save(context.Background(), sampleDoc()); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if d[0] == '{' {
		t.Errorf("wrote JSON:\n%s", d)
	}
}

func TestLoadMissingAndEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	if _, err := Load(ctx, filepath.Join(dir, "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte("\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(ctx, empty)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 0 {
		t.Errorf("empty file: %v", got.Keys())
	}
}

func TestLoadShape(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{"a": {"b": 1}}`), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(ctx, path, WithShape(raw.ObjectKind))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.AsObject(true)["a"].(raw.Record); !ok {
		t.Errorf("a is %T", got.AsObject(true)["a"])
	}
	if err := os.WriteFile(path, []byte(`[1]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(ctx, path); !errors.Is(err, dataobject.ErrRootShape) {
		t.Errorf("sequence root: %v", err)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.json")
	df := New(path)
	if err := df.Save(ctx, sampleDoc()); err != nil {
		t.Fatal(err)
	}
	_, err := df.Update(ctx, func(doc dataobject.Typed) (dataobject.Typed, error) {
		return doc.(*dataobject.Node).With("count", int64(1)), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := df.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := got.GetInt("count"); !ok || n != 1 {
		t.Errorf("count = %d, %v", n, ok)
	}

	before, _ := os.ReadFile(path)
	boom := errors.New("boom")
	_, err = df.Update(ctx, func(dataobject.Typed) (dataobject.Typed, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Errorf("Update error = %v", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Errorf("failed update wrote the file")
	}
}

func TestLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := Save(context.Background(), path, sampleDoc()); err != nil {
		t.Fatal(err)
	}
	other := flock.New(path + ".lock")
	if err := other.Lock(); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = other.Unlock() }()

	_, err := Load(context.Background(), path, WithTimeout(250*time.Millisecond))
	if !errors.Is(err, ErrLocked) {
		t.Errorf("Load under lock: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	if err := Save(ctx, path, sampleDoc()); !errors.Is(err, ErrLocked) {
		t.Errorf("Save under lock: %v", err)
	}
}
