package toon

import "fmt"

// A Type represents the type of a toon Value.
type Type uint8

const (
	// NoType is the type of a nil Value.
	NoType Type = iota

	// NullType is the type of the null value.
	NullType

	// BoolType is the type of a boolean, true or false.
	BoolType

	// NumberType is the type of a numeric literal. Integers and floats share it;
	// they differ only in the text of the literal.
	NumberType

	// StringType is the type of a Unicode string.
	StringType

	// ListType is the type of an ordered list of values.
	ListType

	// MapType is the type of an ordered mapping of string keys to values.
	MapType
)

// String implements fmt.Stringer for Type.
func (t Type) String() string {
	switch t {
	case NoType:
		return "<no type>"
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case NumberType:
		return "number"
	case StringType:
		return "string"
	case ListType:
		return "list"
	case MapType:
		return "map"
	default:
		return fmt.Sprintf("<unknown type %v>", uint8(t))
	}
}

// IsScalar determines if the type is a scalar one (null, bool, number or string).
func IsScalar(t Type) bool {
	return t >= NullType && t <= StringType
}

// IsContainer determines if the type is a container (list or map).
func IsContainer(t Type) bool {
	return t == ListType || t == MapType
}
