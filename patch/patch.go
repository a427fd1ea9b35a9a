package patch

import (
	"bytes"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
	"github.com/signadot/dataobject"
	"github.com/signadot/dataobject/debug"
	"github.com/signadot/dataobject/encode"
	"github.com/signadot/dataobject/format"
	"github.com/signadot/dataobject/raw"
)

var ErrPatch = errors.New("patch error")

type Kind int

const (
	JSONPatchKind Kind = iota
	MergePatchKind
)

func (k Kind) String() string {
	switch k {
	case JSONPatchKind:
		return "json-patch"
	case MergePatchKind:
		return "merge-patch"
	}
	return fmt.Sprintf("<unknown patch kind %d>", int(k))
}

// Patch is a decoded patch document.
type Patch struct {
	kind  Kind
	ops   jsonpatch.Patch
	merge []byte
}

// Decode decodes a patch document written in format f.
func Decode(data []byte, f format.Format, k Kind) (*Patch, error) {
	d := data
	if f.IsYAML() {
		var err error
		d, err = yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPatch, k, err)
		}
	}
	p := &Patch{kind: k}
	switch k {
	case JSONPatchKind:
		ops, err := jsonpatch.DecodePatch(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPatch, k, err)
		}
		p.ops = ops
	case MergePatchKind:
		if _, err := raw.DecodeJSON(d, raw.MapKind); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPatch, k, err)
		}
		p.merge = bytes.TrimSpace(d)
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrPatch, int(k))
	}
	return p, nil
}

func (p *Patch) Kind() Kind {
	return p.kind
}

// Len returns the number of operations of a JSON patch and 1 for a merge
// patch.
func (p *Patch) Len() int {
	if p.kind == MergePatchKind {
		return 1
	}
	return len(p.ops)
}

type Option func(*applyState)

type applyState struct {
	builder *dataobject.Builder
	shape   raw.Kind
}

// WithBuilder sets the builder of the patched tree, for example one with
// a custom node kind.
func WithBuilder(b *dataobject.Builder) Option {
	return func(s *applyState) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithShape sets the shape of the patched tree, raw.MapKind by default.
func WithShape(k raw.Kind) Option {
	return func(s *applyState) { s.shape = k }
}

// Apply returns the result of applying p to doc.
func (p *Patch) Apply(doc dataobject.Typed, opts ...Option) (dataobject.Typed, error) {
	s := &applyState{builder: dataobject.NewBuilder(), shape: raw.MapKind}
	for _, opt := range opts {
		opt(s)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	if debug.Patch() {
		debug.Logf("applying %s (%d ops) to %s\n", p.kind, p.Len(), debug.Node{Typed: doc})
	}
	var (
		out []byte
		err error
	)
	switch p.kind {
	case JSONPatchKind:
		out, err = p.ops.Apply(buf.Bytes())
	case MergePatchKind:
		out, err = jsonpatch.MergePatch(buf.Bytes(), p.merge)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrPatch, p.kind, err)
	}
	if debug.Patch() {
		debug.Logf("%s result %s\n", p.kind, out)
	}
	rv, err := raw.DecodeJSON(out, s.shape)
	if err != nil {
		return nil, err
	}
	return s.builder.Build(rv)
}

// Apply decodes and applies a JSON patch in one step.
func Apply(doc dataobject.Typed, data []byte, f format.Format, opts ...Option) (dataobject.Typed, error) {
	p, err := Decode(data, f, JSONPatchKind)
	if err != nil {
		return nil, err
	}
	return p.Apply(doc, opts...)
}

// Merge decodes and applies a merge patch in one step.
func Merge(doc dataobject.Typed, data []byte, f format.Format, opts ...Option) (dataobject.Typed, error) {
	p, err := Decode(data, f, MergePatchKind)
	if err != nil {
		return nil, err
	}
	return p.Apply(doc, opts...)
}

// CreateMerge returns the merge patch that turns from into to.
func CreateMerge(from, to dataobject.Typed) ([]byte, error) {
	fd, err := wireJSON(from)
	if err != nil {
		return nil, err
	}
	td, err := wireJSON(to)
	if err != nil {
		return nil, err
	}
	res, err := jsonpatch.CreateMergePatch(fd, td)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return res, nil
}

// Equal reports whether a and b encode to structurally equal JSON.
func Equal(a, b dataobject.Typed) (bool, error) {
	ad, err := wireJSON(a)
	if err != nil {
		return false, err
	}
	bd, err := wireJSON(b)
	if err != nil {
		return false, err
	}
	return jsonpatch.Equal(ad, bd), nil
}

func wireJSON(t dataobject.Typed) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(t, buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
