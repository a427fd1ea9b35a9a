package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/dataobject"
)

func MustString(t dataobject.Typed, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(t, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
