package raw

import (
	"maps"
	"slices"
	"time"
)

// Value is a decoded, not yet built, input tree.
//
// For MapKind and ObjectKind values, Keys[i] is the key for Values[i].
// For SequenceKind values, Values holds the elements and Keys is nil.
// For ScalarKind values, Scalar holds one of string, int64, float64,
// bool, time.Time or nil.
type Value struct {
	Kind   Kind
	Scalar any
	Keys   []string
	Values []Value
}

// Record is the address-free record form of a keyed value. It decodes
// as ObjectKind where a plain map[string]any decodes as MapKind.
type Record map[string]any

func Null() Value {
	return Value{Kind: ScalarKind}
}

func FromString(v string) Value {
	return Value{Kind: ScalarKind, Scalar: v}
}

func FromInt(v int64) Value {
	return Value{Kind: ScalarKind, Scalar: v}
}

func FromFloat(v float64) Value {
	return Value{Kind: ScalarKind, Scalar: v}
}

func FromBool(v bool) Value {
	return Value{Kind: ScalarKind, Scalar: v}
}

func FromTime(v time.Time) Value {
	return Value{Kind: ScalarKind, Scalar: v}
}

func FromSlice(vs []Value) Value {
	return Value{Kind: SequenceKind, Values: vs}
}

type KeyVal struct {
	Key string
	Val Value
}

// FromKeyVals makes a keyed value of kind k preserving the order of kvs.
// A later duplicate key replaces the earlier value in place.
func FromKeyVals(k Kind, kvs []KeyVal) Value {
	res := Value{Kind: k, Keys: make([]string, 0, len(kvs)), Values: make([]Value, 0, len(kvs))}
	for _, kv := range kvs {
		if i := slices.Index(res.Keys, kv.Key); i != -1 {
			res.Values[i] = kv.Val
			continue
		}
		res.Keys = append(res.Keys, kv.Key)
		res.Values = append(res.Values, kv.Val)
	}
	return res
}

// FromMap makes a MapKind value with sorted keys.
func FromMap(m map[string]Value) Value {
	return fromSortedMap(MapKind, m)
}

// FromObject makes an ObjectKind value with sorted keys.
func FromObject(m map[string]Value) Value {
	return fromSortedMap(ObjectKind, m)
}

func fromSortedMap(k Kind, m map[string]Value) Value {
	res := Value{Kind: k}
	res.Keys = slices.Sorted(maps.Keys(m))
	res.Values = make([]Value, len(res.Keys))
	for i, key := range res.Keys {
		res.Values[i] = m[key]
	}
	return res
}

// Get returns the value under key and whether it was present.
func (v Value) Get(key string) (Value, bool) {
	if !v.Kind.IsKeyed() {
		return Value{}, false
	}
	i := slices.Index(v.Keys, key)
	if i == -1 {
		return Value{}, false
	}
	return v.Values[i], true
}

func (v Value) Len() int {
	return len(v.Values)
}

// IsEmpty reports whether v is a keyed value without keys.
func (v Value) IsEmpty() bool {
	return v.Kind.IsKeyed() && len(v.Keys) == 0
}

// Retag returns a deep copy of v where every keyed value has kind k.
func (v Value) Retag(k Kind) Value {
	res := v
	if v.Kind.IsKeyed() {
		res.Kind = k
		res.Keys = slices.Clone(v.Keys)
	}
	if v.Values != nil {
		res.Values = make([]Value, len(v.Values))
		for i := range v.Values {
			res.Values[i] = v.Values[i].Retag(k)
		}
	}
	return res
}

// Any converts v back into plain Go values: map[string]any for maps,
// Record for objects, []any for sequences.
func (v Value) Any() any {
	switch v.Kind {
	case SequenceKind:
		res := make([]any, len(v.Values))
		for i := range v.Values {
			res[i] = v.Values[i].Any()
		}
		return res
	case MapKind:
		res := make(map[string]any, len(v.Keys))
		for i, key := range v.Keys {
			res[key] = v.Values[i].Any()
		}
		return res
	case ObjectKind:
		res := make(Record, len(v.Keys))
		for i, key := range v.Keys {
			res[key] = v.Values[i].Any()
		}
		return res
	default:
		return v.Scalar
	}
}
