package toon

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const hexChars = "0123456789abcdef"

// NeedsQuoting reports whether s must be written as a quoted string to be
// read back as the same string.
func NeedsQuoting(s string) bool {
	switch s {
	case "", "null", "true", "false":
		return true
	}

	if isWhitespace(s[0]) || isWhitespace(s[len(s)-1]) {
		return true
	}
	if s[0] == '-' {
		// Would read as a list item marker, or as a negative number.
		return true
	}
	if isNumericLiteral(s) {
		return true
	}

	for i := 0; i < len(s); i++ {
		if isReservedChar(s[i]) || s[i] < 0x20 || s[i] == 0x7F {
			return true
		}
	}
	return false
}

// Quote returns s wrapped in double quotes with quotes, backslashes and
// control characters escaped.
func Quote(s string) string {
	buf := strings.Builder{}
	buf.Grow(len(s) + 2)
	_ = writeQuotedString(s, &buf)
	return buf.String()
}

// Unquote returns the string held by a double-quoted token. The token must
// consist of exactly one quoted string.
func Unquote(s string) (string, error) {
	str, end, err := readQuoted(s)
	if err != nil {
		return "", err
	}
	if end != len(s) {
		return "", &LexError{Msg: "unexpected text after closing quote", Offset: end}
	}
	return str, nil
}

// ParseScalar parses a single scalar literal: null, true, false, a number,
// a quoted string or a bare string.
func ParseScalar(token string) (Value, error) {
	if token == "" {
		return nil, &LexError{Msg: "missing value"}
	}

	switch token {
	case "null":
		return Null{}, nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}

	if token[0] == '"' {
		str, err := Unquote(token)
		if err != nil {
			return nil, err
		}
		return String(str), nil
	}

	if isNumericLiteral(token) {
		return Number{lit: token}, nil
	}

	if err := checkBare(token, "string"); err != nil {
		return nil, err
	}
	return String(token), nil
}

// checkBare returns a *LexError if s could not have been written unquoted:
// it starts with '-' or holds a reserved or control character. what names
// the token in the message.
func checkBare(s, what string) error {
	if s != "" && s[0] == '-' {
		return &LexError{Msg: "unquoted " + what + " starts with '-'"}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isReservedChar(c) || c < 0x20 || c == 0x7F {
			return &LexError{Msg: "unquoted " + what + " contains " + strconv.QuoteRune(rune(c)), Offset: i}
		}
	}
	return nil
}

// Is this the text form of a number? Matches [+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?
func isNumericLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return false
	}

	if i < len(s) && s[i] == '.' {
		i++
		start = i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start = i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}

	return i == len(s)
}

// Is this one of the structural characters that cannot appear in a bare
// string?
func isReservedChar(c byte) bool {
	switch c {
	case ':', ',', '[', ']', '{', '}', '"', '\\':
		return true
	default:
		return false
	}
}

// Is this a digit?
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Is this character whitespace?
func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// Write the given string out in quotes, escaping any characters that need
// escaping.
func writeQuotedString(str string, out io.Writer) error {
	if err := writeRawChar('"', out); err != nil {
		return err
	}
	if err := writeEscapedString(str, out); err != nil {
		return err
	}
	return writeRawChar('"', out)
}

// Write the given string out, escaping any characters that need escaping.
func writeEscapedString(str string, out io.Writer) error {
	start := 0
	for i := 0; i < len(str); i++ {
		c := str[i]
		if c >= 0x20 && c != '\\' && c != '"' && c != 0x7F {
			continue
		}
		if err := writeRawString(str[start:i], out); err != nil {
			return err
		}
		if err := writeEscapedChar(c, out); err != nil {
			return err
		}
		start = i + 1
	}
	return writeRawString(str[start:], out)
}

// Write out the given character in escaped form.
func writeEscapedChar(c byte, out io.Writer) error {
	switch c {
	case '\n':
		return writeRawString("\\n", out)
	case '\r':
		return writeRawString("\\r", out)
	case '\t':
		return writeRawString("\\t", out)
	case '"':
		return writeRawString("\\\"", out)
	case '\\':
		return writeRawString("\\\\", out)
	default:
		buf := []byte{'\\', 'u', '0', '0', hexChars[(c>>4)&0xF], hexChars[c&0xF]}
		return writeRawChars(buf, out)
	}
}

// Write out the given raw string.
func writeRawString(s string, out io.Writer) error {
	_, err := io.WriteString(out, s)
	return err
}

// Write out the given raw characters.
func writeRawChars(cs []byte, out io.Writer) error {
	_, err := out.Write(cs)
	return err
}

// Write out the given raw character.
func writeRawChar(c byte, out io.Writer) error {
	_, err := out.Write([]byte{c})
	return err
}

// readQuoted reads the quoted string at the start of s, returning its
// unescaped contents and the offset just past the closing quote.
func readQuoted(s string) (string, int, error) {
	if s == "" || s[0] != '"' {
		return "", 0, &LexError{Msg: "expected opening quote"}
	}

	buf := strings.Builder{}
	start := 1
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			buf.WriteString(s[start:i])
			return buf.String(), i + 1, nil

		case c < 0x20:
			return "", 0, &LexError{Msg: "unescaped control character in string", Offset: i}

		case c == '\\':
			buf.WriteString(s[start:i])
			n, err := readEscape(s, i, &buf)
			if err != nil {
				return "", 0, err
			}
			i += n - 1
			start = i + 1
		}
	}

	return "", 0, &LexError{Msg: "missing closing quote", Offset: len(s)}
}

// readEscape decodes the escape sequence starting at s[i] (a backslash),
// writes the character it stands for, and returns the sequence's length.
func readEscape(s string, i int, out *strings.Builder) (int, error) {
	if i+1 >= len(s) {
		return 0, &LexError{Msg: "unterminated escape sequence", Offset: i}
	}

	switch c := s[i+1]; c {
	case '"', '\\', '/':
		out.WriteByte(c)
		return 2, nil
	case 'n':
		out.WriteByte('\n')
		return 2, nil
	case 'r':
		out.WriteByte('\r')
		return 2, nil
	case 't':
		out.WriteByte('\t')
		return 2, nil
	case 'u':
		r, err := readHex4(s, i)
		if err != nil {
			return 0, err
		}
		if utf16.IsSurrogate(r) {
			// A surrogate pair spans two \u escapes.
			if i+12 <= len(s) && s[i+6] == '\\' && s[i+7] == 'u' {
				r2, err := readHex4(s, i+6)
				if err == nil {
					if dec := utf16.DecodeRune(r, r2); dec != utf8.RuneError {
						out.WriteRune(dec)
						return 12, nil
					}
				}
			}
			return 0, &LexError{Msg: "invalid surrogate in \\u escape", Offset: i}
		}
		out.WriteRune(r)
		return 6, nil
	default:
		return 0, &LexError{Msg: "invalid escape sequence \\" + string(rune(c)), Offset: i}
	}
}

// readHex4 reads the four hex digits of the \u escape starting at s[i].
func readHex4(s string, i int) (rune, error) {
	if i+6 > len(s) {
		return 0, &LexError{Msg: "truncated \\u escape", Offset: i}
	}
	cp, err := strconv.ParseUint(s[i+2:i+6], 16, 16)
	if err != nil {
		return 0, &LexError{Msg: "invalid hex digits in \\u escape", Offset: i}
	}
	return rune(cp), nil
}

// A cell is one comma-separated value of a row, with its offset in the row.
type cell struct {
	text   string
	offset int
}

// splitCells splits s at the commas that lie outside quoted strings. Each
// cell is trimmed of surrounding spaces.
func splitCells(s string) ([]cell, error) {
	var cells []cell
	start := 0
	inQuotes := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuotes && c == '\\':
			i++
		case c == '"':
			inQuotes = !inQuotes
		case !inQuotes && c == ',':
			cells = append(cells, trimCell(s, start, i))
			start = i + 1
		}
	}
	if inQuotes {
		return nil, &LexError{Msg: "missing closing quote", Offset: len(s)}
	}

	return append(cells, trimCell(s, start, len(s))), nil
}

func trimCell(s string, start, end int) cell {
	for start < end && s[start] == ' ' {
		start++
	}
	for end > start && s[end-1] == ' ' {
		end--
	}
	return cell{text: s[start:end], offset: start}
}
