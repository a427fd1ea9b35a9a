package raw

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/signadot/dataobject/keypath"
)

// DecodeYAML decodes a single YAML document. Mappings become keyed
// values of kind shape (MapKind or ObjectKind), keeping document order.
// Non-string mapping keys are formatted with fmt.
func DecodeYAML(data []byte, shape Kind) (Value, error) {
	if !shape.IsKeyed() {
		return Value{}, fmt.Errorf("%w: %s is not a keyed kind", ErrShape, shape)
	}
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return Value{}, &DecodeError{Message: "invalid YAML", Err: err}
	}
	return fromYAML(v, shape, nil)
}

func fromYAML(v any, shape Kind, path *keypath.Path) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case yaml.MapSlice:
		kvs := make([]KeyVal, 0, len(x))
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			val, err := fromYAML(item.Value, shape, path.Child(key))
			if err != nil {
				return Value{}, err
			}
			kvs = append(kvs, KeyVal{Key: key, Val: val})
		}
		return FromKeyVals(shape, kvs), nil
	case []any:
		res := Value{Kind: SequenceKind, Values: make([]Value, len(x))}
		for i, elt := range x {
			val, err := fromYAML(elt, shape, path.At(i))
			if err != nil {
				return Value{}, err
			}
			res.Values[i] = val
		}
		return res, nil
	case string:
		return FromString(x), nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return FromFloat(float64(x)), nil
		}
		return FromInt(int64(x)), nil
	case float64:
		return FromFloat(x), nil
	case time.Time:
		return FromTime(x), nil
	}
	// anything else goes through the generic Go conversion, with
	// mappings still tagged by shape.
	res, err := fromGoValue(reflect.ValueOf(v), path)
	if err != nil {
		return Value{}, err
	}
	return res.Retag(shape), nil
}
