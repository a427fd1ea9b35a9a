package dataobject

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/dataobject/raw"
)

func TestZeroNode(t *testing.T) {
	var n Node
	if n.Len() != 0 || n.Has("a") || n.Get("a") != nil {
		t.Errorf("zero node is not empty")
	}
	m := n.With("a", "x")
	if s, _ := m.GetString("a"); s != "x" {
		t.Errorf("With on zero node: %v", m.Get("a"))
	}
	if n.Len() != 0 {
		t.Errorf("zero node modified")
	}
}

func TestWithImmutable(t *testing.T) {
	n := New().With("k", "v1")
	m := n.With("k", "v2")
	if s, _ := n.GetString("k"); s != "v1" {
		t.Errorf("receiver modified: %q", s)
	}
	if s, _ := m.GetString("k"); s != "v2" {
		t.Errorf("With result: %q", s)
	}
	if n == m {
		t.Errorf("With returned its receiver")
	}
}

func TestWithKeepsPosition(t *testing.T) {
	n := New().With("a", 1).With("b", 2).With("c", 3)
	m := n.With("b", 20).With("d", 4)
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, m.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if i, _ := m.GetInt("b"); i != 20 {
		t.Errorf("b = %d", i)
	}
}

func TestWithout(t *testing.T) {
	n := New().With("a", 1).With("b", 2)
	m := n.Without("a")
	if m.Has("a") || !m.Has("b") {
		t.Errorf("Without: keys %v", m.Keys())
	}
	if !n.Has("a") {
		t.Errorf("receiver modified")
	}
	same := n.Without("missing")
	if diff := cmp.Diff(n.Keys(), same.Keys()); diff != "" {
		t.Errorf("Without(absent) (-want +got):\n%s", diff)
	}
	if same == n {
		t.Errorf("Without returned its receiver")
	}
}

func TestSequencesNotAliased(t *testing.T) {
	in := []any{"a", []any{"b"}}
	n := New().With("s", in)
	in[0] = "changed"
	in[1].([]any)[0] = "changed"
	got, _ := n.GetSlice("s")
	if diff := cmp.Diff([]any{"a", []any{"b"}}, got); diff != "" {
		t.Errorf("caller slice aliased (-want +got):\n%s", diff)
	}
	got[0] = "changed"
	again, _ := n.GetSlice("s")
	if again[0] != "a" {
		t.Errorf("GetSlice result aliased")
	}
	if _, ok := n.GetSlice("missing"); ok {
		t.Errorf("GetSlice(missing) ok")
	}
}

func TestMapsNotAliased(t *testing.T) {
	m := map[string]any{"x": int64(1)}
	rec := raw.Record{"y": []any{int64(2)}}
	n := New().With("m", m).With("s", []any{rec})
	m["x"] = int64(2)
	rec["y"].([]any)[0] = int64(3)
	n.Get("m").(map[string]any)["x"] = int64(4)
	got, _ := n.GetSlice("s")
	got[0].(raw.Record)["y"] = nil

	want := map[string]any{
		"m": map[string]any{"x": int64(1)},
		"s": []any{raw.Record{"y": []any{int64(2)}}},
	}
	if diff := cmp.Diff(want, n.AsMap(false)); diff != "" {
		t.Errorf("caller maps aliased (-want +got):\n%s", diff)
	}
}

func TestNilNode(t *testing.T) {
	n := New().With("k", (*Node)(nil))
	if _, ok := n.GetNode("k"); ok {
		t.Errorf("GetNode of nil node ok")
	}
	if !n.Has("k") || n.Get("k") != nil {
		t.Errorf("nil node stored as %#v", n.Get("k"))
	}
	if diff := cmp.Diff(map[string]any{"k": nil}, n.AsMap(true)); diff != "" {
		t.Errorf("AsMap (-want +got):\n%s", diff)
	}
}

func TestKeysCopy(t *testing.T) {
	n := New().With("a", 1)
	keys := n.Keys()
	keys[0] = "z"
	if n.Keys()[0] != "a" {
		t.Errorf("Keys aliased")
	}
}

func TestGettersAbsentOrNull(t *testing.T) {
	n := New().With("null", nil)
	for _, key := range []string{"missing", "null"} {
		if _, ok := n.GetString(key); ok {
			t.Errorf("GetString(%q) ok", key)
		}
		if _, ok := n.GetInt(key); ok {
			t.Errorf("GetInt(%q) ok", key)
		}
		if _, ok := n.GetFloat(key); ok {
			t.Errorf("GetFloat(%q) ok", key)
		}
		if _, ok := n.GetBool(key); ok {
			t.Errorf("GetBool(%q) ok", key)
		}
		if _, ok := n.GetNode(key); ok {
			t.Errorf("GetNode(%q) ok", key)
		}
	}
}

func TestGetNode(t *testing.T) {
	inner := New().With("x", 1)
	n := New().With("inner", inner).With("s", "str")
	got, ok := n.GetNode("inner")
	if !ok || got != inner {
		t.Errorf("GetNode(inner) = %v, %v", got, ok)
	}
	if _, ok := n.GetNode("s"); ok {
		t.Errorf("GetNode(s) ok")
	}
}

func TestConcurrentReaders(t *testing.T) {
	n := New().With("a", "1").With("s", []any{int64(1), int64(2)})
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				n.GetInt("a")
				n.GetSlice("s")
				n.AsMap(true)
				n.With("b", 2)
			}
		}()
	}
	wg.Wait()
	if n.Has("b") {
		t.Errorf("shared node modified")
	}
}
