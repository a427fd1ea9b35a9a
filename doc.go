// Package dataobject provides immutable, ordered key/value nodes with
// typed accessors, and a Builder that converts raw decoded data into
// trees of such nodes.
//
// Raw input comes in two keyed shapes, map-shaped and object-shaped
// (see package raw). A tree is built from one shape only: a Builder
// entered through FromMap rejects object-shaped values anywhere below
// the root, and one entered through FromObject rejects map-shaped
// values, with a *MixedShapeError naming the key path of the offending
// value. Empty keyed values of either shape become empty sequences.
//
// The typed getters coerce stored values on read:
//
//	n.GetString("name")   // (string, bool)
//	n.GetInt("count")     // (int64, bool)
//	n.GetDateTime("when") // (time.Time, error)
//
// The scalar getters report ok == false for absent or null keys and
// otherwise never fail. GetDateTime fails with a *MissingKeyError,
// *DateTimeParseError or *UnsupportedTemporalSourceError.
//
// Builders may substitute a node variant through WithNodeKind. The
// variant is applied to the root and to every nested node.
package dataobject
