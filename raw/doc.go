// Package raw provides the decoding boundary for dataobject.
//
// A raw Value is a recursive tagged union: a scalar, a sequence, or a
// keyed value which is either map-shaped (MapKind) or object-shaped
// (ObjectKind). The two keyed kinds carry the same content; they differ
// only in how the input was decoded, and the dataobject builder refuses
// to mix them within one tree.
//
// # Decoding
//
//	v, err := raw.DecodeJSON(data, raw.MapKind)    // objects become maps
//	v, err := raw.DecodeYAML(data, raw.ObjectKind) // mappings become objects
//	v, err := raw.FromGo(map[string]any{"a": 1})   // MapKind
//	v, err := raw.FromGo(raw.Record{"a": 1})       // ObjectKind
//	v, err := raw.FromGo(myStruct)                 // ObjectKind
//
// Scalars are normalized to string, int64, float64, bool, time.Time or
// nil so that consumers see a closed set of scalar types.
//
// # Related Packages
//
//   - github.com/signadot/dataobject - Builds node trees from raw values
package raw
