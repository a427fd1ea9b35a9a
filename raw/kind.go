package raw

import "fmt"

type Kind int

const (
	ScalarKind Kind = iota
	SequenceKind
	MapKind
	ObjectKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		ScalarKind:   "Scalar",
		SequenceKind: "Sequence",
		MapKind:      "Map",
		ObjectKind:   "Object",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Scalar":   ScalarKind,
		"Sequence": SequenceKind,
		"Map":      MapKind,
		"Object":   ObjectKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		ScalarKind,
		SequenceKind,
		MapKind,
		ObjectKind,
	}
}

// IsKeyed reports whether values of kind k carry Keys.
func (k Kind) IsKeyed() bool {
	switch k {
	case MapKind, ObjectKind:
		return true
	default:
		return false
	}
}
