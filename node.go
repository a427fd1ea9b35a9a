package dataobject

import (
	"slices"
	"time"

	"github.com/signadot/dataobject/raw"
)

// Typed is the contract shared by Node and every node variant a
// NodeKind produces. Variants usually embed *Node.
type Typed interface {
	Keys() []string
	Len() int
	Has(key string) bool
	Get(key string) any

	GetString(key string) (string, bool)
	GetInt(key string) (int64, bool)
	GetFloat(key string) (float64, bool)
	GetBool(key string) (bool, bool)
	GetDateTime(key string) (time.Time, error)
	GetSlice(key string) ([]any, bool)
	GetNode(key string) (Typed, bool)

	AsMap(recursive bool) map[string]any
	AsObject(recursive bool) raw.Record
}

// Node is an immutable, ordered mapping from keys to values. Values are
// scalars (string, int64, float64, bool, time.Time, nil), nested Typed
// nodes, or []any sequences of values.
//
// The zero Node is empty and ready to use. With and Without return new
// nodes and never modify the receiver, so a Node may be shared between
// goroutines freely.
type Node struct {
	keys []string
	data map[string]any
}

var _ Typed = (*Node)(nil)

func New() *Node {
	return &Node{}
}

// With returns a copy of n where key maps to value. An existing key
// keeps its position.
func (n *Node) With(key string, value any) *Node {
	res := n.clone(len(n.keys) + 1)
	res.set(key, copyValue(value))
	return res
}

// Without returns a copy of n without key.
func (n *Node) Without(key string) *Node {
	res := n.clone(len(n.keys))
	if _, ok := res.data[key]; !ok {
		return res
	}
	delete(res.data, key)
	res.keys = slices.DeleteFunc(res.keys, func(k string) bool { return k == key })
	return res
}

func (n *Node) clone(capacity int) *Node {
	res := &Node{
		keys: make([]string, len(n.keys), capacity),
		data: make(map[string]any, capacity),
	}
	copy(res.keys, n.keys)
	for k, v := range n.data {
		res.data[k] = v
	}
	return res
}

// set must only be called on nodes under construction.
func (n *Node) set(key string, value any) {
	if n.data == nil {
		n.data = map[string]any{}
	}
	if _, ok := n.data[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.data[key] = value
}

// copyValue copies sequences and maps so that the caller's values and
// the node do not alias each other. Nested nodes are immutable and kept
// as they are, except nil *Node pointers which become nil.
func copyValue(v any) any {
	switch x := v.(type) {
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = copyValue(x[i])
		}
		return res
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, elt := range x {
			res[k] = copyValue(elt)
		}
		return res
	case raw.Record:
		res := make(raw.Record, len(x))
		for k, elt := range x {
			res[k] = copyValue(elt)
		}
		return res
	case *Node:
		if x == nil {
			return nil
		}
	}
	return v
}

// Keys returns the keys of n in insertion order.
func (n *Node) Keys() []string {
	return slices.Clone(n.keys)
}

func (n *Node) Len() int {
	return len(n.keys)
}

func (n *Node) Has(key string) bool {
	_, ok := n.data[key]
	return ok
}

// Get returns the value stored under key, or nil.
func (n *Node) Get(key string) any {
	return copyValue(n.data[key])
}

// GetSlice returns a copy of the sequence stored under key. ok is false
// when key is absent or does not hold a sequence.
func (n *Node) GetSlice(key string) ([]any, bool) {
	s, ok := n.data[key].([]any)
	if !ok {
		return nil, false
	}
	return copyValue(s).([]any), true
}

// GetNode returns the nested node stored under key.
func (n *Node) GetNode(key string) (Typed, bool) {
	t, ok := n.data[key].(Typed)
	if !ok || t == nil || isNilNode(t) {
		return nil, false
	}
	return t, true
}

func isNilNode(t Typed) bool {
	n, ok := t.(*Node)
	return ok && n == nil
}

func (n *Node) GetString(key string) (string, bool) {
	v, ok := n.getAs(key, StringType)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (n *Node) GetInt(key string) (int64, bool) {
	v, ok := n.getAs(key, IntType)
	if !ok {
		return 0, false
	}
	return v.(int64), true
}

func (n *Node) GetFloat(key string) (float64, bool) {
	v, ok := n.getAs(key, FloatType)
	if !ok {
		return 0, false
	}
	return v.(float64), true
}

func (n *Node) GetBool(key string) (bool, bool) {
	v, ok := n.getAs(key, BoolType)
	if !ok {
		return false, false
	}
	return v.(bool), true
}

// GetDateTime converts the value under key to a time.Time. Unlike the
// scalar getters, an absent (or null) key is an error.
func (n *Node) GetDateTime(key string) (time.Time, error) {
	v, err := GetAs(n, key, DateTimeType)
	if err != nil {
		return time.Time{}, err
	}
	return v.(time.Time), nil
}

func (n *Node) getAs(key string, typ Type) (any, bool) {
	v, _ := GetAs(n, key, typ)
	return v, v != nil
}
