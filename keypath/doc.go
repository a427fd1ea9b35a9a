// Package keypath provides key path parsing and printing.
//
// Key paths address values inside a node tree:
//   - field - key of a node
//   - [index] - element of a sequence
//
// # Usage
//
//	p, err := keypath.Parse("nested.arr[0].key5")
//	fmt.Println(p.Last().SegmentString()) // key5
//
//	child := p.Parent().Child("key6")
//
// Fields containing separators, quotes or whitespace are written in
// double quotes: `labels."app.kubernetes.io/name"`.
package keypath
