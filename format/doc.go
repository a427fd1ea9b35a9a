// Package format names the document formats dataobject reads and writes.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	f = format.FromPath("config.yml") // YAMLFormat
//
// # Related Packages
//
//   - github.com/signadot/dataobject/raw - Decode documents in a format
//   - github.com/signadot/dataobject/encode - Encode node trees in a format
package format
