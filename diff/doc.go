// Package diff computes line diffs between the encoded forms of two node
// trees.
//
//	res, err := diff.Docs(a, b, encode.EncodeFormat(format.YAMLFormat))
//	if !res.Equal() {
//	    res.Write(os.Stdout, diff.WithColor(true), diff.Context(3))
//	}
package diff
