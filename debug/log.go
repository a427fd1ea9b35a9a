package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/signadot/dataobject"
	"github.com/signadot/dataobject/encode"
)

var out io.Writer = os.Stderr

// SetOutput redirects Logf and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

// Node formats a node tree as single line JSON.
type Node struct{ dataobject.Typed }

func (n Node) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(n.Typed, buf, encode.EncodeWire(true)); err != nil {
		return fmt.Sprintf("[raw node] %v", n.AsMap(true))
	}
	return string(bytes.TrimSpace(buf.Bytes()))
}

// Logf writes to stderr, formatting node trees and decoded JSON values
// in indented form.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case dataobject.Typed:
			buf := bytes.NewBuffer(nil)
			if err := encode.Encode(x, buf); err != nil {
				args[i] = fmt.Sprintf("[raw node] %v", x.AsMap(true))
				continue
			}
			args[i] = buf.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(out, msg, args...)
}
