// Package patch applies RFC 6902 JSON patches and RFC 7386 merge patches
// to node trees.
//
// A patch never modifies the tree it is applied to: the tree is encoded
// as JSON, patched, decoded and built again, so the result is a fresh
// tree. Keys of patched nodes come back in sorted order, and date/time
// values come back as RFC 3339 strings.
//
//	p, err := patch.Decode(data, format.JSONFormat, patch.JSONPatchKind)
//	out, err := p.Apply(doc)
package patch
