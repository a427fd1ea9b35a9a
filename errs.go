package dataobject

import (
	"errors"
	"fmt"

	"github.com/signadot/dataobject/raw"
)

var (
	ErrMixedShape                = errors.New("mixed shape")
	ErrMissingKey                = errors.New("missing key")
	ErrDateTimeParse             = errors.New("date/time parse error")
	ErrUnsupportedTemporalSource = errors.New("unsupported temporal source")
	ErrRootShape                 = errors.New("root shape mismatch")
	ErrNotFound                  = errors.New("not found")
)

// MixedShapeError is returned by the builder when a keyed value of one
// shape is found inside a tree being built from the other shape.
type MixedShapeError struct {
	Path      string   // key path of the offending value
	Container raw.Kind // shape the tree is being built from
	Found     raw.Kind // shape of the offending value
}

func (e *MixedShapeError) Error() string {
	var msg string
	switch e.Container {
	case raw.ObjectKind:
		msg = "associative structure within object-shaped structure"
	default:
		msg = "object-shaped structure within associative structure"
	}
	if e.Path != "" {
		return fmt.Sprintf("mixed shape at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("mixed shape: %s", msg)
}

func (e *MixedShapeError) Unwrap() error {
	return ErrMixedShape
}

// ShapeError is returned when the root handed to the builder does not
// have the shape of the entry point it was handed to.
type ShapeError struct {
	Want raw.Kind
	Got  raw.Kind
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("root shape mismatch: expected %s, got %s", e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error {
	return ErrRootShape
}

type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing key %q", e.Key)
}

func (e *MissingKeyError) Unwrap() error {
	return ErrMissingKey
}

type DateTimeParseError struct {
	Key   string
	Value string
	Err   error
}

func (e *DateTimeParseError) Error() string {
	return fmt.Sprintf("key %q: cannot parse %q as date/time: %v", e.Key, e.Value, e.Err)
}

func (e *DateTimeParseError) Unwrap() []error {
	return []error{ErrDateTimeParse, e.Err}
}

type UnsupportedTemporalSourceError struct {
	Key   string
	Value any
}

func (e *UnsupportedTemporalSourceError) Error() string {
	return fmt.Sprintf("key %q: no date/time conversion from %T", e.Key, e.Value)
}

func (e *UnsupportedTemporalSourceError) Unwrap() error {
	return ErrUnsupportedTemporalSource
}
