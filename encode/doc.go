// Package encode writes node trees as JSON or YAML text, keeping the key
// order of every node.
//
// # Usage
//
//	// Indented JSON
//	err := encode.Encode(node, os.Stdout)
//
//	// Coloured YAML
//	err := encode.Encode(node, os.Stdout,
//	    encode.EncodeFormat(format.YAMLFormat),
//	    encode.EncodeColors(encode.NewColors()))
//
//	// Single line JSON
//	err := encode.Encode(node, w, encode.EncodeWire(true))
//
// Values inside nodes may be any of the scalars a node stores, nested
// nodes, sequences, or plain Go maps; plain maps are written with sorted
// keys.
package encode
