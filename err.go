package toon

import "fmt"

// An ErrorKind classifies a DecodeError.
type ErrorKind uint8

const (
	// LexErrorKind is a malformed quoted string or scalar literal.
	LexErrorKind ErrorKind = iota + 1

	// IndentationError is indentation that is not a whole number of units,
	// or that contains tabs.
	IndentationError

	// UnexpectedIndent is a line nested more than one level below its parent.
	UnexpectedIndent

	// TabularCountMismatch is a tabular header whose declared row count
	// disagrees with the rows that follow it.
	TabularCountMismatch

	// TabularArityMismatch is a tabular row whose value count disagrees with
	// the header's field count.
	TabularArityMismatch

	// ListCountMismatch is a list header whose declared length disagrees with
	// the items that follow it.
	ListCountMismatch

	// DuplicateKey is a key repeated within one map.
	DuplicateKey

	// UnrecognizedLine is a line matching no production of the grammar.
	UnrecognizedLine
)

// String implements fmt.Stringer for ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case LexErrorKind:
		return "LexError"
	case IndentationError:
		return "IndentationError"
	case UnexpectedIndent:
		return "UnexpectedIndent"
	case TabularCountMismatch:
		return "TabularCountMismatch"
	case TabularArityMismatch:
		return "TabularArityMismatch"
	case ListCountMismatch:
		return "ListCountMismatch"
	case DuplicateKey:
		return "DuplicateKey"
	case UnrecognizedLine:
		return "UnrecognizedLine"
	default:
		return fmt.Sprintf("<unknown kind %v>", uint8(k))
	}
}

// A DecodeError is returned when Decode encounters malformed input. Line and
// Column are 1-based.
type DecodeError struct {
	Kind   ErrorKind
	Line   int
	Column int
	Msg    string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("toon: %v at line %v, column %v: %v", e.Kind, e.Line, e.Column, e.Msg)
}

// A LexError is returned by the lexical functions (Unquote, ParseScalar) for
// a malformed literal. Offset is the 0-based byte offset of the problem
// within the literal.
type LexError struct {
	Msg    string
	Offset int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("toon: lex error: %v (offset %v)", e.Msg, e.Offset)
}
