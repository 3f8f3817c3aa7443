package toon

import (
	"github.com/pkg/errors"
)

// ErrDuplicateKey is returned (wrapped) when a key is added to a Map that
// already holds it.
var ErrDuplicateKey = errors.New("toon: duplicate key")

// A Value is a node of the structured-value model: Null, Bool, Number,
// String, List or *Map.
type Value interface {
	// Type returns the type of the value.
	Type() Type

	isValue()
}

// Null is the null value.
type Null struct{}

// Type implements Value.
func (Null) Type() Type { return NullType }

func (Null) isValue() {}

// Bool is a boolean value.
type Bool bool

// Type implements Value.
func (Bool) Type() Type { return BoolType }

func (Bool) isValue() {}

// String is a raw, unescaped Unicode string value.
type String string

// Type implements Value.
func (String) Type() Type { return StringType }

func (String) isValue() {}

// List is an ordered sequence of values.
type List []Value

// Type implements Value.
func (List) Type() Type { return ListType }

func (List) isValue() {}

// Equal reports whether l and o hold equal elements in the same order.
func (l List) Equal(o List) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if !Equal(l[i], o[i]) {
			return false
		}
	}
	return true
}

// A Field is one key/value entry of a Map.
type Field struct {
	Key   string
	Value Value
}

// Map is an ordered mapping of string keys to values. Keys are unique and
// iteration follows insertion order. The zero value is an empty map ready
// to use. A nil *Map reads as an empty map, but like a nil Go map it cannot
// be written to: Add and Set panic.
type Map struct {
	fields []Field
	index  map[string]int
}

// NewMap returns a map holding the given fields in order. It returns an
// error wrapping ErrDuplicateKey if a key repeats.
func NewMap(fields ...Field) (*Map, error) {
	m := &Map{}
	for _, f := range fields {
		if err := m.Add(f.Key, f.Value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustMap is like NewMap but panics on a duplicate key.
func MustMap(fields ...Field) *Map {
	m, err := NewMap(fields...)
	if err != nil {
		panic(err)
	}
	return m
}

// Type implements Value.
func (*Map) Type() Type { return MapType }

func (*Map) isValue() {}

// Len returns the number of fields in the map.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.fields)
}

// Add appends a new field. It fails if the key is already present.
func (m *Map) Add(key string, v Value) error {
	if m == nil {
		panic("toon: Add on nil *Map")
	}
	if m.Has(key) {
		return errors.Wrapf(ErrDuplicateKey, "key %q", key)
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}
	m.index[key] = len(m.fields)
	m.fields = append(m.fields, Field{Key: key, Value: v})
	return nil
}

// Set replaces the value of an existing key in place, or appends the field
// if the key is new.
func (m *Map) Set(key string, v Value) {
	if m == nil {
		panic("toon: Set on nil *Map")
	}
	if i, ok := m.index[key]; ok {
		m.fields[i].Value = v
		return
	}
	_ = m.Add(key, v)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.fields[i].Value, true
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[key]
	return ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, m.Len())
	for i := range keys {
		keys[i] = m.fields[i].Key
	}
	return keys
}

// Fields returns a copy of the fields in insertion order.
func (m *Map) Fields() []Field {
	fields := make([]Field, m.Len())
	if m != nil {
		copy(fields, m.fields)
	}
	return fields
}

// Equal reports whether m and o hold equal fields in the same order.
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}
	for i := 0; i < m.Len(); i++ {
		a, b := m.fields[i], o.fields[i]
		if a.Key != b.Key || !Equal(a.Value, b.Value) {
			return false
		}
	}
	return true
}

// Equal reports whether two values are structurally equal. Key order of
// maps and element order of lists are significant, and numbers compare by
// their literal text.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}

	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av.Equal(b.(Number))
	case String:
		return av == b.(String)
	case List:
		return av.Equal(b.(List))
	case *Map:
		return av.Equal(b.(*Map))
	default:
		return false
	}
}

// isScalar reports whether v is Null, Bool, Number or String.
func isScalar(v Value) bool {
	return v != nil && IsScalar(v.Type())
}
