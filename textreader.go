package toon

import (
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/toon-format/toon-go/internal/lex"
)

// Decode parses a document and returns the value it holds. Malformed input
// fails with a *DecodeError; no partial value is ever returned.
func Decode(text string) (Value, error) {
	lines, err := lex.Lines(text)
	if err != nil {
		if ie, ok := err.(*lex.IndentError); ok {
			return nil, &DecodeError{Kind: IndentationError, Line: ie.Line, Column: ie.Column, Msg: ie.Msg}
		}
		return nil, err
	}

	d := decoder{}
	return d.decode(lines)
}

// DecodeBytes is like Decode but takes a byte slice.
func DecodeBytes(data []byte) (Value, error) {
	return Decode(string(data))
}

// A Decoder reads a document from an input stream.
type Decoder struct {
	in io.Reader
}

// NewDecoder returns a new decoder reading from in.
func NewDecoder(in io.Reader) *Decoder {
	return &Decoder{in: in}
}

// Decode reads the whole input stream and decodes it as one document.
func (d *Decoder) Decode() (Value, error) {
	data, err := ioutil.ReadAll(d.in)
	if err != nil {
		return nil, errors.Wrap(err, "toon: unable to read input")
	}
	return DecodeBytes(data)
}

type frameKind uint8

const (
	frameRoot frameKind = iota
	frameMap
	frameList
	frameTable
)

// A frame is a container in progress. Its children are the lines at depth.
type frame struct {
	kind  frameKind
	depth int

	key  string // key in the parent map, if the parent is a map
	line int    // line and column of the line that opened the frame
	col  int

	m      *Map
	list   List
	count  int      // declared length of a list or table
	fields []string // field names of a table

	value Value // the finished top-level value, for the root frame
	done  bool
}

type decoder struct {
	stack []*frame
	last  int // number of the last line seen
}

func (d *decoder) decode(lines []lex.Line) (Value, error) {
	root := &frame{kind: frameRoot}
	d.stack = []*frame{root}

	for _, line := range lines {
		d.last = line.Number

		if err := d.decodeLine(line); err != nil {
			return nil, err
		}
	}

	for len(d.stack) > 1 {
		if err := d.pop(); err != nil {
			return nil, err
		}
	}

	switch {
	case root.kind == frameMap:
		return root.m, nil
	case root.done:
		return root.value, nil
	default:
		return nil, &DecodeError{Kind: UnrecognizedLine, Line: d.last + 1, Column: 1, Msg: "empty document"}
	}
}

func (d *decoder) top() *frame {
	return d.stack[len(d.stack)-1]
}

func (d *decoder) decodeLine(line lex.Line) error {
	if line.Depth > d.top().depth {
		return d.errorf(UnexpectedIndent, line, 0, "line is nested more than one level below its parent")
	}
	for line.Depth < d.top().depth {
		if err := d.pop(); err != nil {
			return err
		}
	}

	switch f := d.top(); f.kind {
	case frameRoot:
		return d.decodeRootLine(f, line)
	case frameMap:
		return d.decodeEntry(f, line)
	case frameList:
		return d.decodeItem(f, line)
	default:
		return d.decodeRow(f, line)
	}
}

// decodeRootLine resolves the kind of the top-level value from its first
// line.
func (d *decoder) decodeRootLine(root *frame, line lex.Line) error {
	if root.done {
		return d.errorf(UnrecognizedLine, line, 0, "unexpected content after the top-level value")
	}

	content := line.Content
	switch {
	case content == "{}":
		root.value, root.done = &Map{}, true
		return nil
	case content == "[]":
		root.value, root.done = List{}, true
		return nil
	case content == "-" || strings.HasPrefix(content, "- "):
		return d.errorf(UnrecognizedLine, line, 0, "list item outside a list")
	case content[0] == '[':
		return d.decodeHeader(root, "", line, 0)
	case isEntry(content):
		root.kind = frameMap
		root.m = &Map{}
		return d.decodeEntry(root, line)
	}

	v, err := ParseScalar(content)
	if err != nil {
		return d.lexError(line, 0, err)
	}
	root.value, root.done = v, true
	return nil
}

// decodeEntry decodes a "key: value", "key:" or "key[N]..." line of a map.
func (d *decoder) decodeEntry(f *frame, line lex.Line) error {
	content := line.Content
	if content == "-" || strings.HasPrefix(content, "- ") {
		return d.errorf(UnrecognizedLine, line, 0, "list item where a map entry was expected")
	}

	key, end, err := readKey(content)
	if err != nil {
		if _, ok := err.(*LexError); ok {
			return d.lexError(line, 0, err)
		}
		return d.errorf(UnrecognizedLine, line, 0, "expected a map entry, got %q", content)
	}
	if f.m.Has(key) {
		return d.errorf(DuplicateKey, line, 0, "duplicate key %q", key)
	}

	rest := content[end:]
	switch {
	case rest == ":":
		d.push(&frame{kind: frameMap, depth: line.Depth + 1, key: key, line: line.Number, col: line.Column(), m: &Map{}})
		return nil

	case strings.HasPrefix(rest, ": "):
		offset := end + 2
		v, err := d.decodeInline(line, content[offset:], offset)
		if err != nil {
			return err
		}
		return f.m.Add(key, v)

	case strings.HasPrefix(rest, "["):
		return d.decodeHeader(f, key, line, end)

	default:
		return d.errorf(UnrecognizedLine, line, end, "expected ':' or '[' after key %q", key)
	}
}

// decodeItem decodes a "- value", "-" or "- [N]..." line of a list.
func (d *decoder) decodeItem(f *frame, line lex.Line) error {
	content := line.Content
	if content != "-" && !strings.HasPrefix(content, "- ") {
		return d.errorf(UnrecognizedLine, line, 0, "expected a list item, got %q", content)
	}
	if len(f.list) >= f.count {
		return d.errorf(ListCountMismatch, line, 0, "list declares %d items but has more", f.count)
	}

	if content == "-" {
		d.push(&frame{kind: frameMap, depth: line.Depth + 1, line: line.Number, col: line.Column(), m: &Map{}})
		return nil
	}

	offset := 2
	for offset < len(content) && content[offset] == ' ' {
		offset++
	}
	if offset < len(content) && content[offset] == '[' && content[offset:] != "[]" {
		return d.decodeHeader(f, "", line, offset)
	}

	v, err := d.decodeInline(line, content[offset:], offset)
	if err != nil {
		return err
	}
	f.list = append(f.list, v)
	return nil
}

// decodeRow decodes one row of a table.
func (d *decoder) decodeRow(f *frame, line lex.Line) error {
	if len(f.list) >= f.count {
		return d.errorf(TabularCountMismatch, line, 0, "table declares %d rows but has more", f.count)
	}

	cells, err := splitCells(line.Content)
	if err != nil {
		return d.lexError(line, 0, err)
	}
	if len(cells) != len(f.fields) {
		return d.errorf(TabularArityMismatch, line, 0, "row has %d values but the table declares %d fields", len(cells), len(f.fields))
	}

	row := &Map{}
	for i, c := range cells {
		v, err := ParseScalar(c.text)
		if err != nil {
			return d.lexError(line, c.offset, err)
		}
		if err := row.Add(f.fields[i], v); err != nil {
			return err
		}
	}
	f.list = append(f.list, row)
	return nil
}

// decodeInline decodes the value written after "key: " or "- ".
func (d *decoder) decodeInline(line lex.Line, text string, offset int) (Value, error) {
	for text != "" && text[0] == ' ' {
		text = text[1:]
		offset++
	}

	switch text {
	case "{}":
		return &Map{}, nil
	case "[]":
		return List{}, nil
	}

	v, err := ParseScalar(text)
	if err != nil {
		return nil, d.lexError(line, offset, err)
	}
	return v, nil
}

// decodeHeader decodes a list header "[N]:", "[N]: a,b" or "[N]{f1,f2}"
// starting at content[offset], and opens the list or table it introduces
// inside parent.
func (d *decoder) decodeHeader(parent *frame, key string, line lex.Line, offset int) error {
	content := line.Content
	h, err := parseHeader(content[offset:])
	if err != nil {
		if le, ok := err.(*LexError); ok {
			return d.lexError(line, offset, le)
		}
		return d.errorf(UnrecognizedLine, line, offset, "%v", err)
	}

	seen := make(map[string]bool, len(h.fields))
	for _, name := range h.fields {
		if seen[name] {
			return d.errorf(DuplicateKey, line, offset, "duplicate field %q in table header", name)
		}
		seen[name] = true
	}

	if h.inline != nil {
		cells, err := splitCells(*h.inline)
		if err != nil {
			return d.lexError(line, offset+h.inlineOffset, err)
		}
		if len(cells) != h.count {
			return d.errorf(ListCountMismatch, line, offset, "list declares %d items but has %d", h.count, len(cells))
		}

		list := make(List, len(cells))
		for i, c := range cells {
			if list[i], err = ParseScalar(c.text); err != nil {
				return d.lexError(line, offset+h.inlineOffset+c.offset, err)
			}
		}
		return d.attach(parent, key, list)
	}

	f := &frame{
		kind:  frameList,
		depth: line.Depth + 1,
		key:   key,
		line:  line.Number,
		col:   line.Column() + offset,
		count: h.count,
	}
	if h.fields != nil {
		f.kind = frameTable
		f.fields = h.fields
	}
	d.push(f)
	return nil
}

func (d *decoder) push(f *frame) {
	d.stack = append(d.stack, f)
}

// pop closes the innermost frame and attaches its value to its parent.
func (d *decoder) pop() error {
	f := d.top()
	d.stack = d.stack[:len(d.stack)-1]

	var v Value
	switch f.kind {
	case frameMap:
		v = f.m

	case frameList:
		if len(f.list) != f.count {
			return &DecodeError{
				Kind:   ListCountMismatch,
				Line:   f.line,
				Column: f.col,
				Msg:    fmt.Sprintf("list declares %d items but has %d", f.count, len(f.list)),
			}
		}
		v = listOrEmpty(f.list)

	case frameTable:
		if len(f.list) != f.count {
			return &DecodeError{
				Kind:   TabularCountMismatch,
				Line:   f.line,
				Column: f.col,
				Msg:    fmt.Sprintf("table declares %d rows but has %d", f.count, len(f.list)),
			}
		}
		v = listOrEmpty(f.list)
	}

	return d.attach(d.top(), f.key, v)
}

// attach stores a finished value in its parent frame.
func (d *decoder) attach(parent *frame, key string, v Value) error {
	switch parent.kind {
	case frameMap:
		return parent.m.Add(key, v)
	case frameList:
		parent.list = append(parent.list, v)
	case frameRoot:
		parent.value, parent.done = v, true
	}
	return nil
}

func (d *decoder) errorf(kind ErrorKind, line lex.Line, offset int, format string, args ...interface{}) error {
	return &DecodeError{
		Kind:   kind,
		Line:   line.Number,
		Column: line.Column() + offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// lexError converts a *LexError found at content[offset:] into a
// *DecodeError.
func (d *decoder) lexError(line lex.Line, offset int, err error) error {
	le, ok := err.(*LexError)
	if !ok {
		return err
	}
	return &DecodeError{
		Kind:   LexErrorKind,
		Line:   line.Number,
		Column: line.Column() + offset + le.Offset,
		Msg:    le.Msg,
	}
}

func listOrEmpty(l List) List {
	if l == nil {
		return List{}
	}
	return l
}

// isEntry reports whether a top-level line is a map entry rather than a
// scalar.
func isEntry(content string) bool {
	_, end, err := readKey(content)
	if err != nil {
		return false
	}
	rest := content[end:]
	return rest == ":" || strings.HasPrefix(rest, ": ") || strings.HasPrefix(rest, "[")
}

// readKey reads the key at the start of an entry line and returns it with
// the offset just past it.
func readKey(content string) (string, int, error) {
	if content[0] == '"' {
		return readQuoted(content)
	}

	end := strings.IndexAny(content, ":[")
	if end <= 0 {
		return "", 0, errors.New("no key")
	}
	key := content[:end]
	if err := checkBare(key, "key"); err != nil {
		return "", 0, err
	}
	return key, end, nil
}

// A header is the parsed form of "[N]:", "[N]: inline" or "[N]{fields}".
type header struct {
	count        int
	fields       []string
	inline       *string
	inlineOffset int
}

// parseHeader parses a list header. It returns a *LexError for malformed
// field names and a plain error for anything else.
func parseHeader(s string) (header, error) {
	var h header

	end := strings.IndexByte(s, ']')
	if end < 0 || s[0] != '[' {
		return h, errors.New("malformed list header")
	}
	digits := s[1:end]
	if digits == "" {
		return h, errors.New("list header is missing its length")
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return h, errors.Errorf("invalid list length %q", digits)
		}
	}
	count, err := strconv.Atoi(digits)
	if err != nil {
		return h, errors.Errorf("invalid list length %q", digits)
	}
	h.count = count

	rest := s[end+1:]
	switch {
	case rest == ":":
		return h, nil

	case strings.HasPrefix(rest, ": "):
		h.inlineOffset = end + 3
		inline := rest[2:]
		h.inline = &inline
		return h, nil

	case strings.HasPrefix(rest, "{") && strings.HasSuffix(rest, "}") && len(rest) >= 2:
		fieldsOffset := end + 2
		cells, err := splitCells(rest[1 : len(rest)-1])
		if err != nil {
			if le, ok := err.(*LexError); ok {
				le.Offset += fieldsOffset
			}
			return h, err
		}

		h.fields = make([]string, 0, len(cells))
		for _, c := range cells {
			name, err := parseFieldName(c.text)
			if err != nil {
				if le, ok := err.(*LexError); ok {
					le.Offset += fieldsOffset + c.offset
				}
				return h, err
			}
			h.fields = append(h.fields, name)
		}
		return h, nil

	default:
		return h, errors.New("expected ':' or '{' after list length")
	}
}

// parseFieldName parses one field name of a table header.
func parseFieldName(text string) (string, error) {
	if text == "" {
		return "", errors.New("empty field name in table header")
	}
	if text[0] == '"' {
		return Unquote(text)
	}
	if err := checkBare(text, "field name"); err != nil {
		return "", err
	}
	return text, nil
}
