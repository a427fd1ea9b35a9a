package raw

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/signadot/dataobject/keypath"
)

// DecodeJSON decodes a single JSON document. JSON objects become keyed
// values of kind shape (MapKind or ObjectKind), keeping document order.
func DecodeJSON(data []byte, shape Kind) (Value, error) {
	if !shape.IsKeyed() {
		return Value{}, fmt.Errorf("%w: %s is not a keyed kind", ErrShape, shape)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	res, err := decodeJSONValue(dec, shape, nil)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, &DecodeError{Message: "trailing data after JSON document"}
	}
	return res, nil
}

func decodeJSONValue(dec *json.Decoder, shape Kind, path *keypath.Path) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, &DecodeError{Path: path.String(), Message: "invalid JSON", Err: err}
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			return decodeJSONObject(dec, shape, path)
		case '[':
			return decodeJSONArray(dec, shape, path)
		}
		return Value{}, &DecodeError{Path: path.String(), Message: fmt.Sprintf("unexpected delimiter %q", x)}
	case json.Number:
		return fromNumber(x, path)
	case string:
		return FromString(x), nil
	case bool:
		return FromBool(x), nil
	case nil:
		return Null(), nil
	}
	return Value{}, &DecodeError{Path: path.String(), Message: fmt.Sprintf("unexpected token %v", tok)}
}

func decodeJSONObject(dec *json.Decoder, shape Kind, path *keypath.Path) (Value, error) {
	var kvs []KeyVal
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, &DecodeError{Path: path.String(), Message: "invalid JSON", Err: err}
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, &DecodeError{Path: path.String(), Message: fmt.Sprintf("expected object key, got %v", tok)}
		}
		val, err := decodeJSONValue(dec, shape, path.Child(key))
		if err != nil {
			return Value{}, err
		}
		kvs = append(kvs, KeyVal{Key: key, Val: val})
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, &DecodeError{Path: path.String(), Message: "invalid JSON", Err: err}
	}
	return FromKeyVals(shape, kvs), nil
}

func decodeJSONArray(dec *json.Decoder, shape Kind, path *keypath.Path) (Value, error) {
	res := Value{Kind: SequenceKind, Values: []Value{}}
	for i := 0; dec.More(); i++ {
		val, err := decodeJSONValue(dec, shape, path.At(i))
		if err != nil {
			return Value{}, err
		}
		res.Values = append(res.Values, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, &DecodeError{Path: path.String(), Message: "invalid JSON", Err: err}
	}
	return res, nil
}
