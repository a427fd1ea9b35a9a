package dataobject

import (
	"encoding/json"

	"github.com/goccy/go-yaml"
	"github.com/signadot/dataobject/raw"
)

// AsMap returns the content of n as a map. When recursive, nested nodes
// at any depth, including inside sequences, are exported as maps too;
// otherwise they are left in place.
func (n *Node) AsMap(recursive bool) map[string]any {
	res := make(map[string]any, len(n.keys))
	for _, k := range n.keys {
		v := n.data[k]
		if recursive {
			v = export(v, false)
		} else {
			v = copyValue(v)
		}
		res[k] = v
	}
	return res
}

// AsObject is AsMap with maps exported as raw.Record.
func (n *Node) AsObject(recursive bool) raw.Record {
	res := make(raw.Record, len(n.keys))
	for _, k := range n.keys {
		v := n.data[k]
		if recursive {
			v = export(v, true)
		} else {
			v = copyValue(v)
		}
		res[k] = v
	}
	return res
}

func export(v any, asObject bool) any {
	switch x := v.(type) {
	case Typed:
		if isNilNode(x) {
			return nil
		}
		if asObject {
			return x.AsObject(true)
		}
		return x.AsMap(true)
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = export(x[i], asObject)
		}
		return res
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, elt := range x {
			res[k] = export(elt, asObject)
		}
		return res
	case raw.Record:
		res := make(raw.Record, len(x))
		for k, elt := range x {
			res[k] = export(elt, asObject)
		}
		return res
	}
	return v
}

// MarshalJSON encodes the recursive map view of n.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.AsMap(true))
}

// MarshalYAML returns the recursive view of n as an ordered mapping.
func (n *Node) MarshalYAML() (any, error) {
	return Ordered(n), nil
}

// Ordered converts t to a yaml.MapSlice keeping key order at every level.
// Sequences are converted element-wise.
func Ordered(t Typed) yaml.MapSlice {
	keys := t.Keys()
	res := make(yaml.MapSlice, len(keys))
	for i, k := range keys {
		res[i] = yaml.MapItem{Key: k, Value: ordered(t.Get(k))}
	}
	return res
}

func ordered(v any) any {
	switch x := v.(type) {
	case Typed:
		return Ordered(x)
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = ordered(x[i])
		}
		return res
	}
	return v
}
