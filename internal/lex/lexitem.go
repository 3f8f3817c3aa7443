package lex

import "fmt"

// A Line is one non-blank line of input after indentation has been measured.
type Line struct {
	Number  int    // 1-based line number in the input.
	Indent  int    // Leading spaces.
	Depth   int    // Indent divided by the document's indentation unit.
	Content string // The line with indentation and trailing whitespace removed.
}

// Column returns the 1-based column of the first character of Content.
func (l Line) Column() int {
	return l.Indent + 1
}

// An IndentError is returned for indentation that is not a whole number of
// indentation units or that contains anything but spaces.
type IndentError struct {
	Line   int
	Column int
	Msg    string
}

func (e *IndentError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}
