package raw

import (
	"fmt"

	"github.com/signadot/dataobject/format"
)

// Decode decodes data in format f, tagging keyed values with shape.
func Decode(data []byte, f format.Format, shape Kind) (Value, error) {
	switch f {
	case format.JSONFormat:
		return DecodeJSON(data, shape)
	case format.YAMLFormat:
		return DecodeYAML(data, shape)
	}
	return Value{}, fmt.Errorf("%w: %d", format.ErrBadFormat, f)
}
