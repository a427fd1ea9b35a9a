package dataobject

import (
	"github.com/signadot/dataobject/keypath"
	"github.com/signadot/dataobject/raw"
)

// NodeKind makes the node variant used for every node a Builder
// produces, root and nested alike. The *Node it receives is complete.
type NodeKind func(n *Node) Typed

// DefaultKind returns n itself.
func DefaultKind(n *Node) Typed {
	return n
}

type BuildOption func(*Builder)

// WithNodeKind sets the NodeKind of a Builder. A nil kind is ignored.
func WithNodeKind(k NodeKind) BuildOption {
	return func(b *Builder) {
		if k != nil {
			b.kind = k
		}
	}
}

// Builder converts raw values into node trees. A Builder holds no state
// between calls and may be used concurrently.
type Builder struct {
	kind NodeKind
}

func NewBuilder(opts ...BuildOption) *Builder {
	b := &Builder{kind: DefaultKind}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromMap builds a tree from a map-shaped root. Any object-shaped value
// in the tree fails the whole build with a *MixedShapeError.
func (b *Builder) FromMap(v raw.Value) (Typed, error) {
	return b.buildRoot(v, raw.MapKind)
}

// FromObject builds a tree from an object-shaped root. Any map-shaped
// value in the tree fails the whole build with a *MixedShapeError.
func (b *Builder) FromObject(v raw.Value) (Typed, error) {
	return b.buildRoot(v, raw.ObjectKind)
}

// Build calls FromMap or FromObject according to the kind of v.
func (b *Builder) Build(v raw.Value) (Typed, error) {
	switch v.Kind {
	case raw.ObjectKind:
		return b.FromObject(v)
	case raw.MapKind:
		return b.FromMap(v)
	}
	return nil, &ShapeError{Want: raw.MapKind, Got: v.Kind}
}

func (b *Builder) buildRoot(v raw.Value, shape raw.Kind) (Typed, error) {
	if v.Kind != shape {
		return nil, &ShapeError{Want: shape, Got: v.Kind}
	}
	return b.buildNode(v, shape, nil)
}

func (b *Builder) buildNode(v raw.Value, shape raw.Kind, path *keypath.Path) (Typed, error) {
	n := &Node{
		keys: make([]string, 0, len(v.Keys)),
		data: make(map[string]any, len(v.Keys)),
	}
	for i, key := range v.Keys {
		val, err := b.buildValue(v.Values[i], shape, path.Child(key))
		if err != nil {
			return nil, err
		}
		n.set(key, val)
	}
	return b.kind(n), nil
}

// buildValue converts one raw value found inside a tree of the given shape.
// Empty keyed values become empty sequences whatever their shape.
func (b *Builder) buildValue(v raw.Value, shape raw.Kind, path *keypath.Path) (any, error) {
	switch v.Kind {
	case raw.SequenceKind:
		res := make([]any, len(v.Values))
		for i := range v.Values {
			elt, err := b.buildValue(v.Values[i], shape, path.At(i))
			if err != nil {
				return nil, err
			}
			res[i] = elt
		}
		return res, nil
	case raw.MapKind, raw.ObjectKind:
		if v.IsEmpty() {
			return []any{}, nil
		}
		if v.Kind != shape {
			return nil, &MixedShapeError{Path: path.String(), Container: shape, Found: v.Kind}
		}
		return b.buildNode(v, shape, path)
	}
	return v.Scalar, nil
}

// FromMap builds a *Node tree from a map-shaped root.
func FromMap(v raw.Value) (*Node, error) {
	t, err := NewBuilder().FromMap(v)
	if err != nil {
		return nil, err
	}
	return t.(*Node), nil
}

// FromObject builds a *Node tree from an object-shaped root.
func FromObject(v raw.Value) (*Node, error) {
	t, err := NewBuilder().FromObject(v)
	if err != nil {
		return nil, err
	}
	return t.(*Node), nil
}

// FromAny decodes v with raw.FromGo and builds a *Node tree from it:
// a map[string]any root builds as map-shaped, a raw.Record or struct
// root as object-shaped.
func FromAny(v any) (*Node, error) {
	rv, err := raw.FromGo(v)
	if err != nil {
		return nil, err
	}
	t, err := NewBuilder().Build(rv)
	if err != nil {
		return nil, err
	}
	return t.(*Node), nil
}
