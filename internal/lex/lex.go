// Package lex splits toon text into lines tagged with their nesting depth.
package lex

import (
	"io"
	"strings"
)

// Lexer represents the state of scanning the input text.
type Lexer struct {
	input string // the text being scanned
	pos   int    // start of the next line in input
	line  int    // number of the last line returned
	unit  int    // spaces per level, zero until the first indented line
}

// New returns a Lexer over the given input.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Lines returns every non-blank line of input.
func Lines(input string) ([]Line, error) {
	var lines []Line
	l := New(input)
	for {
		line, err := l.Next()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
}

// Next returns the next non-blank line. It returns io.EOF once the input is
// exhausted and an *IndentError for malformed indentation.
func (l *Lexer) Next() (Line, error) {
	for l.pos < len(l.input) {
		raw := l.input[l.pos:]
		if idx := strings.IndexByte(raw, '\n'); idx >= 0 {
			raw = raw[:idx]
			l.pos += idx + 1
		} else {
			l.pos = len(l.input)
		}
		l.line++

		content := strings.TrimRight(raw, " \t\r")
		if content == "" {
			continue
		}

		indent := 0
		for indent < len(content) && content[indent] == ' ' {
			indent++
		}
		if c := content[indent]; c == '\t' || c == '\f' || c == '\v' || c == '\r' {
			return Line{}, &IndentError{Line: l.line, Column: indent + 1, Msg: "indentation must use spaces only"}
		}

		if indent > 0 && l.unit == 0 {
			l.unit = indent
		}
		depth := 0
		if indent > 0 {
			if indent%l.unit != 0 {
				return Line{}, &IndentError{
					Line:   l.line,
					Column: indent + 1,
					Msg:    "indentation is not a multiple of the indentation unit",
				}
			}
			depth = indent / l.unit
		}

		return Line{
			Number:  l.line,
			Indent:  indent,
			Depth:   depth,
			Content: content[indent:],
		}, nil
	}

	return Line{}, io.EOF
}
