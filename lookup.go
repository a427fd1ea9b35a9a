package dataobject

import (
	"fmt"

	"github.com/signadot/dataobject/keypath"
)

// Lookup returns the value at path below root. Fields select keys of
// nested nodes and indices select sequence elements; the empty path
// selects root itself.
func Lookup(root Typed, path string) (any, error) {
	p, err := keypath.Parse(path)
	if err != nil {
		return nil, err
	}
	return LookupPath(root, p)
}

// LookupPath is Lookup with a parsed path.
func LookupPath(root Typed, p *keypath.Path) (any, error) {
	var (
		cur  any = root
		seen *keypath.Path
	)
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			t, ok := cur.(Typed)
			if !ok {
				return nil, fmt.Errorf("%w: value at %q has no key %q", ErrNotFound, seen.String(), *x.Field)
			}
			if !t.Has(*x.Field) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, seen.Child(*x.Field))
			}
			cur = t.Get(*x.Field)
			seen = seen.Child(*x.Field)
		case x.Index != nil:
			s, ok := cur.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: value at %q is not a sequence", ErrNotFound, seen.String())
			}
			if *x.Index >= len(s) {
				return nil, fmt.Errorf("%w: %s (length %d)", ErrNotFound, seen.At(*x.Index), len(s))
			}
			cur = s[*x.Index]
			seen = seen.At(*x.Index)
		}
	}
	return cur, nil
}

// LookupParent splits path into its parent node and last key, for use
// with the typed getters: GetAs(parent, key, typ).
func LookupParent(root Typed, path string) (Typed, string, error) {
	p, err := keypath.Parse(path)
	if err != nil {
		return nil, "", err
	}
	last := p.Last()
	if last == nil || last.Field == nil {
		return nil, "", fmt.Errorf("%w: path %q does not end with a key", ErrNotFound, path)
	}
	v, err := LookupPath(root, p.Parent())
	if err != nil {
		return nil, "", err
	}
	parent, ok := v.(Typed)
	if !ok {
		return nil, "", fmt.Errorf("%w: parent of %q is not a node", ErrNotFound, path)
	}
	return parent, *last.Field, nil
}
