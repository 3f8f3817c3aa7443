package toon

import (
	"encoding"
	"encoding/base64"
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	valueType         = reflect.TypeOf((*Value)(nil)).Elem()
	jsonNumberType    = reflect.TypeOf(json.Number(""))
	decimalType       = reflect.TypeOf(decimal.Decimal{})
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Marshal returns the text form of a Go value, indented two spaces per level.
func Marshal(v interface{}) ([]byte, error) {
	return MarshalIndent(v, DefaultIndent)
}

// MarshalIndent is like Marshal with the given indentation.
func MarshalIndent(v interface{}, indent int) ([]byte, error) {
	val, err := FromGo(v)
	if err != nil {
		return nil, err
	}
	return []byte(EncodeIndent(val, indent)), nil
}

// FromGo converts a Go value to a Value. Structs become maps with fields in
// declaration order, named by their json tags; Go maps become maps with
// their keys sorted, since Go does not keep an order for them. Types that
// implement json.Marshaler or encoding.TextMarshaler are converted through
// those methods.
func FromGo(v interface{}) (Value, error) {
	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(r reflect.Value) (Value, error) {
	if !r.IsValid() {
		return Null{}, nil
	}

	t := r.Type()
	switch {
	case t.Kind() == reflect.Ptr && t.Elem() == decimalType:
		if r.IsNil() {
			return Null{}, nil
		}
		return FromDecimal(r.Elem().Interface().(decimal.Decimal)), nil
	case t.Implements(valueType):
		if r.Kind() == reflect.Interface || r.Kind() == reflect.Ptr {
			if r.IsNil() {
				return Null{}, nil
			}
		}
		return r.Interface().(Value), nil
	case t == jsonNumberType:
		return ParseNumber(r.String())
	case t == decimalType:
		return FromDecimal(r.Interface().(decimal.Decimal)), nil
	case t.Implements(jsonMarshalerType):
		return fromMarshaler(r)
	case t.Implements(textMarshalerType):
		if r.Kind() == reflect.Ptr && r.IsNil() {
			return Null{}, nil
		}
		text, err := r.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, errors.Wrapf(err, "toon: unable to marshal %v", t)
		}
		return String(text), nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return Bool(r.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(r.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(r.Uint()), nil

	case reflect.Float32:
		f := r.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Null{}, nil
		}
		// Format at 32-bit precision so float32(0.1) stays 0.1.
		return Number{lit: formatFloat(f, 32)}, nil

	case reflect.Float64:
		return Float(r.Float()), nil

	case reflect.String:
		return String(r.String()), nil

	case reflect.Interface, reflect.Ptr:
		if r.IsNil() {
			return Null{}, nil
		}
		return fromReflect(r.Elem())

	case reflect.Struct:
		return fromStruct(r)

	case reflect.Map:
		return fromMap(r)

	case reflect.Slice:
		if r.IsNil() {
			return Null{}, nil
		}
		if t.Elem().Kind() == reflect.Uint8 {
			return String(base64.StdEncoding.EncodeToString(r.Bytes())), nil
		}
		return fromArray(r)

	case reflect.Array:
		return fromArray(r)

	default:
		return nil, errors.Errorf("toon: unsupported type %v", t)
	}
}

func fromMarshaler(r reflect.Value) (Value, error) {
	if r.Kind() == reflect.Ptr && r.IsNil() {
		return Null{}, nil
	}
	data, err := r.Interface().(json.Marshaler).MarshalJSON()
	if err != nil {
		return nil, errors.Wrapf(err, "toon: unable to marshal %v", r.Type())
	}
	return FromJSON(data)
}

func fromMap(r reflect.Value) (Value, error) {
	if r.IsNil() {
		return Null{}, nil
	}
	if r.Type().Key().Kind() != reflect.String {
		return nil, errors.Errorf("toon: unsupported map key type %v", r.Type().Key())
	}

	keys := r.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	m := &Map{}
	for _, key := range keys {
		v, err := fromReflect(r.MapIndex(key))
		if err != nil {
			return nil, err
		}
		if err := m.Add(key.String(), v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func fromArray(r reflect.Value) (Value, error) {
	l := make(List, r.Len())
	for i := 0; i < r.Len(); i++ {
		v, err := fromReflect(r.Index(i))
		if err != nil {
			return nil, err
		}
		l[i] = v
	}
	return l, nil
}

func fromStruct(r reflect.Value) (Value, error) {
	m := &Map{}
	for _, f := range getFields(r.Type()) {
		fv := r.Field(f.index)
		if f.omitEmpty && isEmptyValue(fv) {
			continue
		}

		v, err := fromReflect(fv)
		if err != nil {
			return nil, errors.WithMessagef(err, "field %v", f.name)
		}
		if err := m.Add(f.name, v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

type field struct {
	name      string
	index     int
	omitEmpty bool
}

// getFields returns the exported fields of a struct type in declaration
// order, named by their json tags.
func getFields(t reflect.Type) []field {
	fields := []field{}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			// Unexported.
			continue
		}

		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts := parseTag(tag)
		if name == "" {
			name = f.Name
		}

		fields = append(fields, field{
			name:      name,
			index:     i,
			omitEmpty: strings.Contains(opts, "omitempty"),
		})
	}

	return fields
}

func parseTag(tag string) (string, string) {
	if idx := strings.Index(tag, ","); idx != -1 {
		return tag[:idx], tag[idx+1:]
	}
	return tag, ""
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
