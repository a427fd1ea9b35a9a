package raw

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/signadot/dataobject/keypath"
)

var (
	timeType  = reflect.TypeOf(time.Time{})
	valueType = reflect.TypeOf(Value{})
)

// FromGo converts an already decoded Go value into a raw Value.
//
// Maps with string keys become MapKind values with sorted keys. Record
// values and structs become ObjectKind values; struct fields honour
// `json` tag names and omitempty, keep declaration order, and untagged
// embedded structs are flattened into their parent as encoding/json does. Slices and
// arrays become sequences. Integers are normalized to int64, floats to
// float64 and json.Number to whichever of the two represents it.
func FromGo(v any) (Value, error) {
	return fromGoValue(reflect.ValueOf(v), nil)
}

func fromGoValue(val reflect.Value, path *keypath.Path) (Value, error) {
	if !val.IsValid() {
		return Null(), nil
	}
	typ := val.Type()
	switch typ {
	case valueType:
		return val.Interface().(Value), nil
	case timeType:
		return FromTime(val.Interface().(time.Time)), nil
	}
	if n, ok := val.Interface().(json.Number); ok {
		return fromNumber(n, path)
	}

	switch typ.Kind() {
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return Null(), nil
		}
		return fromGoValue(val.Elem(), path)
	case reflect.String:
		return FromString(val.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := val.Uint()
		if u > math.MaxInt64 {
			return FromFloat(float64(u)), nil
		}
		return FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return FromFloat(val.Float()), nil
	case reflect.Bool:
		return FromBool(val.Bool()), nil
	case reflect.Slice:
		if val.IsNil() {
			return Null(), nil
		}
		if typ.Elem().Kind() == reflect.Uint8 {
			return FromString(string(val.Bytes())), nil
		}
		return fromGoSlice(val, path)
	case reflect.Array:
		return fromGoSlice(val, path)
	case reflect.Map:
		if val.IsNil() {
			return Null(), nil
		}
		kind := MapKind
		if typ == reflect.TypeOf(Record(nil)) {
			kind = ObjectKind
		}
		return fromGoMap(val, kind, path)
	case reflect.Struct:
		if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
			text, err := tm.MarshalText()
			if err != nil {
				return Value{}, &DecodeError{Path: path.String(), Err: err}
			}
			return FromString(string(text)), nil
		}
		return fromGoStruct(val, path)
	}
	return Value{}, &DecodeError{
		Path:    path.String(),
		Message: fmt.Sprintf("unsupported Go type %s", typ),
	}
}

func fromNumber(n json.Number, path *keypath.Path) (Value, error) {
	if i, err := n.Int64(); err == nil {
		return FromInt(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return Value{}, &DecodeError{Path: path.String(), Message: "invalid number", Err: err}
	}
	return FromFloat(f), nil
}

func fromGoSlice(val reflect.Value, path *keypath.Path) (Value, error) {
	n := val.Len()
	res := Value{Kind: SequenceKind, Values: make([]Value, n)}
	for i := range n {
		elt, err := fromGoValue(val.Index(i), path.At(i))
		if err != nil {
			return Value{}, err
		}
		res.Values[i] = elt
	}
	return res, nil
}

func fromGoMap(val reflect.Value, kind Kind, path *keypath.Path) (Value, error) {
	if val.Type().Key().Kind() != reflect.String {
		return Value{}, &DecodeError{
			Path:    path.String(),
			Message: fmt.Sprintf("map key type %s is not a string type", val.Type().Key()),
		}
	}
	m := make(map[string]Value, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		elt, err := fromGoValue(iter.Value(), path.Child(key))
		if err != nil {
			return Value{}, err
		}
		m[key] = elt
	}
	return fromSortedMap(kind, m), nil
}

func fromGoStruct(val reflect.Value, path *keypath.Path) (Value, error) {
	fs := &structFields{depth: map[string]int{}}
	if err := fs.add(val, path, 0); err != nil {
		return Value{}, err
	}
	return FromKeyVals(ObjectKind, fs.kvs), nil
}

// structFields collects struct fields the way encoding/json does:
// untagged embedded structs are flattened, and a field at a shallower
// depth hides promoted fields of the same name.
type structFields struct {
	kvs   []KeyVal
	depth map[string]int
}

func (fs *structFields) add(val reflect.Value, path *keypath.Path, depth int) error {
	typ := val.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		fv := val.Field(i)
		if embedded, ok := embeddedStruct(field, fv); ok {
			if embedded.IsValid() {
				if err := fs.add(embedded, path, depth+1); err != nil {
					return err
				}
			}
			continue
		}
		if !field.IsExported() {
			continue
		}
		name, omitEmpty, skip := jsonName(field)
		if skip {
			continue
		}
		if omitEmpty && fv.IsZero() {
			continue
		}
		if d, seen := fs.depth[name]; seen && d < depth {
			continue
		}
		elt, err := fromGoValue(fv, path.Child(name))
		if err != nil {
			return err
		}
		fs.depth[name] = depth
		fs.kvs = append(fs.kvs, KeyVal{Key: name, Val: elt})
	}
	return nil
}

// embeddedStruct reports whether field is an untagged embedded struct or
// struct pointer to flatten. The returned value is invalid for a nil
// pointer.
func embeddedStruct(field reflect.StructField, fv reflect.Value) (reflect.Value, bool) {
	if !field.Anonymous {
		return reflect.Value{}, false
	}
	if tag, ok := field.Tag.Lookup("json"); ok {
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return reflect.Value{}, false
		}
	}
	typ := field.Type
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct || typ == timeType {
		return reflect.Value{}, false
	}
	if !field.IsExported() && field.Type.Kind() == reflect.Pointer {
		return reflect.Value{}, false
	}
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return reflect.Value{}, true
		}
		fv = fv.Elem()
	}
	return fv, true
}

func jsonName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag, ok := field.Tag.Lookup("json")
	if !ok {
		return field.Name, false, false
	}
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}
