package diff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dataobject"
	"github.com/signadot/dataobject/encode"
	"github.com/signadot/dataobject/format"
)

func TestText(t *testing.T) {
	got := Text("a\nb\nc\n", "a\nx\nc\nd\n")
	want := []Line{
		{Equal, "a"},
		{Delete, "b"},
		{Insert, "x"},
		{Equal, "c"},
		{Insert, "d"},
	}
	if diff := cmp.Diff(want, got.Lines); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got.Equal() {
		t.Errorf("Equal() = true")
	}
	if ins, del := got.Stats(); ins != 2 || del != 1 {
		t.Errorf("Stats() = %d, %d", ins, del)
	}
	if !Text("same\n", "same\n").Equal() {
		t.Errorf("identical texts differ")
	}
}

func TestDocs(t *testing.T) {
	a := dataobject.New().With("name", "x").With("n", int64(1))
	b := dataobject.New().With("name", "x").With("n", int64(2))
	res, err := Docs(a, b, encode.EncodeFormat(format.YAMLFormat))
	if err != nil {
		t.Fatal(err)
	}
	want := "  name: x\n- \"n\": 1\n+ \"n\": 2\n"
	if got := res.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
	same, err := Docs(a, a)
	if err != nil {
		t.Fatal(err)
	}
	if !same.Equal() {
		t.Errorf("a differs from itself:\n%s", same)
	}
}

func TestWriteContext(t *testing.T) {
	from := "1\n2\n3\n4\n5\n6\n7\n"
	to := "1\n2\n3\nfour\n5\n6\n7\n"
	buf := bytes.NewBuffer(nil)
	if err := Text(from, to).Write(buf, Context(1)); err != nil {
		t.Fatal(err)
	}
	want := "...\n  3\n- 4\n+ four\n  5\n...\n"
	if got := buf.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestWriteColor(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = noColor }()

	buf := bytes.NewBuffer(nil)
	if err := Text("a\n", "b\n").Write(buf, WithColor(true)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("no colour in %q", buf.String())
	}
}
