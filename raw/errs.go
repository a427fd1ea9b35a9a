package raw

import (
	"errors"
	"fmt"
)

// DecodeError reports input that has no raw Value representation.
type DecodeError struct {
	Path    string // key path of the offending value, e.g. "a.b[2]"
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Path != "" {
		return fmt.Sprintf("decode error at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("decode error: %s", msg)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var ErrShape = errors.New("bad shape")
