package toon

import (
	"io"
	"strconv"
	"strings"
)

// DefaultIndent is the number of spaces per nesting level used by Encode.
const DefaultIndent = 2

// EncoderOpts defines a set of bit flag options for encoders.
type EncoderOpts uint8

const (
	// EncoderInlinePrimitives writes a non-empty list of scalars on a single
	// line (key[N]: a,b,c) instead of one "- item" line per element.
	EncoderInlinePrimitives EncoderOpts = 1
)

// Encode returns the text form of v, indented two spaces per level.
func Encode(v Value) string {
	return EncodeIndent(v, DefaultIndent)
}

// EncodeIndent returns the text form of v, indented indent spaces per
// level. An indent below one is treated as one.
func EncodeIndent(v Value, indent int) string {
	buf := strings.Builder{}
	// A strings.Builder never fails, so neither does the encoder.
	_ = NewEncoderOpts(&buf, indent, 0).Encode(v)
	return buf.String()
}

// An Encoder writes the text form of values to an output stream.
type Encoder struct {
	out    io.Writer
	indent int
	opts   EncoderOpts

	lines int
	err   error
}

// NewEncoder returns a new encoder with the default indentation.
func NewEncoder(out io.Writer) *Encoder {
	return NewEncoderOpts(out, DefaultIndent, 0)
}

// NewEncoderOpts returns a new encoder with the given indentation and options.
func NewEncoderOpts(out io.Writer, indent int, opts EncoderOpts) *Encoder {
	if indent < 1 {
		indent = 1
	}
	return &Encoder{
		out:    out,
		indent: indent,
		opts:   opts,
	}
}

// Encode writes v as one document. Lines are separated by a single newline
// and the document has no trailing newline. The only possible error is one
// returned by the underlying writer; once that happens every later call
// returns it as well.
func (e *Encoder) Encode(v Value) error {
	if e.err != nil {
		return e.err
	}
	e.lines = 0

	switch val := v.(type) {
	case *Map:
		if val.Len() == 0 {
			e.line(0, "{}")
		} else {
			e.writeFields(val, 0)
		}
	case List:
		if len(val) == 0 {
			e.line(0, "[]")
		} else {
			e.writeList("", val, 0)
		}
	default:
		e.line(0, literal(v))
	}

	return e.err
}

// writeFields writes one entry per field of m at the given depth.
func (e *Encoder) writeFields(m *Map, depth int) {
	for _, f := range m.fields {
		key := formatKey(f.Key)

		switch val := f.Value.(type) {
		case *Map:
			if val.Len() == 0 {
				e.line(depth, key+": {}")
				continue
			}
			e.line(depth, key+":")
			e.writeFields(val, depth+1)

		case List:
			if len(val) == 0 {
				e.line(depth, key+": []")
				continue
			}
			e.writeList(key, val, depth)

		default:
			e.line(depth, key+": "+literal(val))
		}
	}
}

// writeList writes a non-empty list whose header line starts with prefix.
// The elements go one level deeper than the header.
func (e *Encoder) writeList(prefix string, l List, depth int) {
	count := "[" + strconv.Itoa(len(l)) + "]"

	if fields, ok := TabularFields(l); ok {
		keys := make([]string, len(fields))
		for i, f := range fields {
			keys[i] = formatKey(f)
		}
		e.line(depth, prefix+count+"{"+strings.Join(keys, ",")+"}")

		row := make([]string, len(fields))
		for _, v := range l {
			m := v.(*Map)
			for i, f := range m.fields {
				row[i] = literal(f.Value)
			}
			e.line(depth+1, strings.Join(row, ","))
		}
		return
	}

	if e.opts&EncoderInlinePrimitives != 0 && allScalarList(l) {
		items := make([]string, len(l))
		for i, v := range l {
			items[i] = literal(v)
		}
		e.line(depth, prefix+count+": "+strings.Join(items, ","))
		return
	}

	e.line(depth, prefix+count+":")
	for _, v := range l {
		e.writeItem(v, depth+1)
	}
}

// writeItem writes one element of a non-tabular list.
func (e *Encoder) writeItem(v Value, depth int) {
	switch val := v.(type) {
	case *Map:
		if val.Len() == 0 {
			e.line(depth, "- {}")
			return
		}
		e.line(depth, "-")
		e.writeFields(val, depth+1)

	case List:
		if len(val) == 0 {
			e.line(depth, "- []")
			return
		}
		e.writeList("- ", val, depth)

	default:
		e.line(depth, "- "+literal(val))
	}
}

// line writes a single line of content at the given depth.
func (e *Encoder) line(depth int, content string) {
	if e.err != nil {
		return
	}
	if e.lines > 0 {
		if e.err = writeRawChar('\n', e.out); e.err != nil {
			return
		}
	}
	e.lines++

	if e.err = writeRawString(strings.Repeat(" ", depth*e.indent), e.out); e.err != nil {
		return
	}
	e.err = writeRawString(content, e.out)
}

// literal returns the text form of a scalar value. A nil value is null.
func literal(v Value) string {
	switch val := v.(type) {
	case Bool:
		if val {
			return "true"
		}
		return "false"
	case Number:
		return val.Literal()
	case String:
		s := string(val)
		if NeedsQuoting(s) {
			return Quote(s)
		}
		return s
	default:
		return "null"
	}
}

// formatKey returns the text form of a map key.
func formatKey(key string) string {
	if NeedsQuoting(key) {
		return Quote(key)
	}
	return key
}

func allScalarList(l List) bool {
	for _, v := range l {
		if !isScalar(v) {
			return false
		}
	}
	return true
}
