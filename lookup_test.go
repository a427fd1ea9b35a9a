package dataobject

import (
	"errors"
	"testing"

	"github.com/signadot/dataobject/raw"
)

func TestLookup(t *testing.T) {
	doc := `{"a": {"list": [{"k": "v"}, [1, 2]], "odd.key": 3}}`
	rv, err := raw.DecodeJSON([]byte(doc), raw.MapKind)
	if err != nil {
		t.Fatal(err)
	}
	root, err := FromMap(rv)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		path string
		want any
	}{
		{"a.list[0].k", "v"},
		{"a.list[1][1]", int64(2)},
		{`a."odd.key"`, int64(3)},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Lookup(root, tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
	got, err := Lookup(root, "")
	if err != nil || got != Typed(root) {
		t.Errorf("empty path: %v, %v", got, err)
	}
	for _, path := range []string{"b", "a.list[2]", "a.list[0].k.x", "a.list.x", "a.list[1][0].y"} {
		if _, err := Lookup(root, path); !errors.Is(err, ErrNotFound) {
			t.Errorf("Lookup(%q) = %v", path, err)
		}
	}
	if _, err := Lookup(root, "a..b"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(a..b) = %v", err)
	}
}

func TestLookupParent(t *testing.T) {
	root := New().With("a", New().With("when", int64(1700000000)))
	parent, key, err := LookupParent(root, "a.when")
	if err != nil {
		t.Fatal(err)
	}
	if key != "when" {
		t.Errorf("key = %q", key)
	}
	if _, err := parent.GetDateTime(key); err != nil {
		t.Error(err)
	}
	if _, _, err := LookupParent(root, "a[0]"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LookupParent(a[0]) = %v", err)
	}
	top, key, err := LookupParent(root, "a")
	if err != nil || key != "a" || top != Typed(root) {
		t.Errorf("LookupParent(a) = %v, %q, %v", top, key, err)
	}
}
