package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/signadot/dataobject"
	"github.com/signadot/dataobject/format"
	"github.com/signadot/dataobject/raw"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int

	format format.Format
	wire   bool

	Color func(Class, ColorAttr, string) string
}

// Encode writes t to w followed by a newline. Nothing is written when
// encoding fails.
func Encode(t dataobject.Typed, w io.Writer, opts ...EncodeOption) error {
	return EncodeValue(t, w, opts...)
}

// EncodeValue is Encode for any value a node may hold, such as the
// result of a lookup.
func EncodeValue(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	buf := bytes.NewBuffer(nil)
	var err error
	switch {
	case es.format.IsJSON():
		err = es.json(buf, v)
	case es.format.IsYAML() && es.wire:
		err = es.yamlFlow(buf, v)
	case es.format.IsYAML():
		err = es.yamlBlock(buf, v, false)
	default:
		err = fmt.Errorf("%w: unsupported format %s", ErrEncoding, es.format)
	}
	if err != nil {
		return err
	}
	if buf.Len() == 0 || buf.Bytes()[buf.Len()-1] != '\n' {
		buf.WriteByte('\n')
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func (es *EncState) paint(c Class, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(c, a, s)
}

func (es *EncState) newline(w *bytes.Buffer) {
	if es.wire {
		return
	}
	w.WriteByte('\n')
	es.writeIndent(w)
}

func (es *EncState) writeIndent(w *bytes.Buffer) {
	w.WriteString(strings.Repeat(" ", es.indent*es.depth))
}

// entries returns the keys of a keyed value in encoding order along with
// an accessor for their values.
func entries(v any) ([]string, func(string) any, bool) {
	switch x := v.(type) {
	case dataobject.Typed:
		return x.Keys(), x.Get, true
	case map[string]any:
		return sortedKeys(x), func(k string) any { return x[k] }, true
	case raw.Record:
		return sortedKeys(x), func(k string) any { return x[k] }, true
	}
	return nil, nil, false
}

func sortedKeys[M ~map[string]any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}

// isBlock reports whether v is written as a YAML block.
func isBlock(v any) bool {
	if keys, _, ok := entries(v); ok {
		return len(keys) > 0
	}
	s, ok := v.([]any)
	return ok && len(s) > 0
}

// scalar returns the text and class of a scalar value.
func (es *EncState) scalar(v any) (string, Class, error) {
	switch x := v.(type) {
	case nil:
		return "null", NullClass, nil
	case bool:
		return strconv.FormatBool(x), BoolClass, nil
	case string:
		s, err := es.quote(x)
		return s, StringClass, err
	case time.Time:
		s := x.Format(time.RFC3339Nano)
		if es.format.IsJSON() {
			s = strconv.Quote(s)
		}
		return s, TimeClass, nil
	case float64:
		s, err := es.float(x, 64)
		return s, NumberClass, err
	case float32:
		s, err := es.float(float64(x), 32)
		return s, NumberClass, err
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x), NumberClass, nil
	}
	return "", 0, fmt.Errorf("%w: cannot encode %T", ErrEncoding, v)
}

// float writes whole numbers with a trailing ".0" so that they decode
// back as floats.
func (es *EncState) float(f float64, bits int) (string, error) {
	switch {
	case math.IsNaN(f):
		if es.format.IsJSON() {
			return "", fmt.Errorf("%w: NaN unsupported in %s", ErrEncoding, es.format)
		}
		return ".nan", nil
	case math.IsInf(f, 0):
		if es.format.IsJSON() {
			return "", fmt.Errorf("%w: infinity unsupported in %s", ErrEncoding, es.format)
		}
		if f < 0 {
			return "-.inf", nil
		}
		return ".inf", nil
	}
	fmtc := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		fmtc = 'g'
	}
	s := strconv.FormatFloat(f, fmtc, -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s, nil
}

func (es *EncState) quote(s string) (string, error) {
	if es.format.IsJSON() {
		return jsonString(s)
	}
	return yamlString(s, es.wire)
}

func jsonString(s string) (string, error) {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// yamlString returns s as a single line YAML scalar, quoted when plain
// style would read back as something else. Keys and values get the same
// treatment, so YAML 1.1 booleans such as y, n, on and no are quoted.
func yamlString(s string, flow bool) (string, error) {
	if s == "" || strings.ContainsAny(s, "\n\r") || (flow && strings.ContainsAny(s, ",[]{}:#")) {
		return strconv.Quote(s), nil
	}
	d, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	res := strings.TrimSuffix(string(d), "\n")
	if strings.Contains(res, "\n") {
		return strconv.Quote(s), nil
	}
	var back any
	if err := yaml.Unmarshal([]byte(res), &back); err != nil || back != s {
		return strconv.Quote(s), nil
	}
	return res, nil
}

func (es *EncState) json(w *bytes.Buffer, v any) error {
	if keys, get, ok := entries(v); ok {
		return es.jsonKeyed(w, keys, get)
	}
	if s, ok := v.([]any); ok {
		return es.jsonSeq(w, s)
	}
	text, c, err := es.scalar(v)
	if err != nil {
		return err
	}
	w.WriteString(es.paint(c, ValueColor, text))
	return nil
}

func (es *EncState) jsonKeyed(w *bytes.Buffer, keys []string, get func(string) any) error {
	if len(keys) == 0 {
		w.WriteString(es.paint(NodeClass, SepColor, "{}"))
		return nil
	}
	w.WriteString(es.paint(NodeClass, SepColor, "{"))
	es.depth++
	for i, k := range keys {
		if i > 0 {
			w.WriteString(es.paint(NodeClass, SepColor, ","))
		}
		es.newline(w)
		ks, err := jsonString(k)
		if err != nil {
			return err
		}
		w.WriteString(es.paint(NodeClass, FieldColor, ks))
		w.WriteString(es.paint(NodeClass, SepColor, ":"))
		if !es.wire {
			w.WriteByte(' ')
		}
		if err := es.json(w, get(k)); err != nil {
			return err
		}
	}
	es.depth--
	es.newline(w)
	w.WriteString(es.paint(NodeClass, SepColor, "}"))
	return nil
}

func (es *EncState) jsonSeq(w *bytes.Buffer, s []any) error {
	if len(s) == 0 {
		w.WriteString(es.paint(SequenceClass, SepColor, "[]"))
		return nil
	}
	w.WriteString(es.paint(SequenceClass, SepColor, "["))
	es.depth++
	for i, elt := range s {
		if i > 0 {
			w.WriteString(es.paint(SequenceClass, SepColor, ","))
		}
		es.newline(w)
		if err := es.json(w, elt); err != nil {
			return err
		}
	}
	es.depth--
	es.newline(w)
	w.WriteString(es.paint(SequenceClass, SepColor, "]"))
	return nil
}

// yamlBlock writes v in block style. When inline, the first line of v
// continues the current line, as after a sequence item's "- ".
func (es *EncState) yamlBlock(w *bytes.Buffer, v any, inline bool) error {
	if keys, get, ok := entries(v); ok && len(keys) > 0 {
		for i, k := range keys {
			if i > 0 || !inline {
				es.writeIndent(w)
			}
			ks, err := yamlString(k, false)
			if err != nil {
				return err
			}
			w.WriteString(es.paint(NodeClass, FieldColor, ks))
			w.WriteString(es.paint(NodeClass, SepColor, ":"))
			val := get(k)
			if !isBlock(val) {
				w.WriteByte(' ')
				if err := es.yamlFlow(w, val); err != nil {
					return err
				}
				w.WriteByte('\n')
				continue
			}
			w.WriteByte('\n')
			_, isSeq := val.([]any)
			if !isSeq {
				es.depth++
			}
			err = es.yamlBlock(w, val, false)
			if !isSeq {
				es.depth--
			}
			if err != nil {
				return err
			}
		}
		return nil
	}
	if s, ok := v.([]any); ok && len(s) > 0 {
		for i, elt := range s {
			if i > 0 || !inline {
				es.writeIndent(w)
			}
			w.WriteString(es.paint(SequenceClass, SepColor, "-"))
			w.WriteByte(' ')
			if !isBlock(elt) {
				if err := es.yamlFlow(w, elt); err != nil {
					return err
				}
				w.WriteByte('\n')
				continue
			}
			es.depth++
			err := es.yamlBlock(w, elt, true)
			es.depth--
			if err != nil {
				return err
			}
		}
		return nil
	}
	if err := es.yamlFlow(w, v); err != nil {
		return err
	}
	w.WriteByte('\n')
	return nil
}

func (es *EncState) yamlFlow(w *bytes.Buffer, v any) error {
	if keys, get, ok := entries(v); ok {
		w.WriteString(es.paint(NodeClass, SepColor, "{"))
		for i, k := range keys {
			if i > 0 {
				w.WriteString(es.paint(NodeClass, SepColor, ","))
				w.WriteByte(' ')
			}
			ks, err := yamlString(k, true)
			if err != nil {
				return err
			}
			w.WriteString(es.paint(NodeClass, FieldColor, ks))
			w.WriteString(es.paint(NodeClass, SepColor, ":"))
			w.WriteByte(' ')
			if err := es.yamlFlow(w, get(k)); err != nil {
				return err
			}
		}
		w.WriteString(es.paint(NodeClass, SepColor, "}"))
		return nil
	}
	if s, ok := v.([]any); ok {
		w.WriteString(es.paint(SequenceClass, SepColor, "["))
		for i, elt := range s {
			if i > 0 {
				w.WriteString(es.paint(SequenceClass, SepColor, ","))
				w.WriteByte(' ')
			}
			if err := es.yamlFlow(w, elt); err != nil {
				return err
			}
		}
		w.WriteString(es.paint(SequenceClass, SepColor, "]"))
		return nil
	}
	text, c, err := es.scalar(v)
	if err != nil {
		return err
	}
	w.WriteString(es.paint(c, ValueColor, text))
	return nil
}
