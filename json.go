package toon

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// FromJSON parses a JSON document into a Value. Object keys keep their
// order and numbers keep their literal text. A key repeated within one
// object is an error wrapping ErrDuplicateKey.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := readJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("toon: unexpected data after the JSON value")
	}
	return v, nil
}

// ToJSON returns the JSON form of v, keeping the order of map keys.
func ToJSON(v Value) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// ToJSONIndent is like ToJSON but indents the output.
func ToJSONIndent(v Value, prefix, indent string) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	return json.MarshalIndent(v, prefix, indent)
}

func readJSONValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, errors.New("toon: unexpected end of JSON input")
	}
	if err != nil {
		return nil, errors.Wrap(err, "toon: invalid JSON")
	}

	switch t := tok.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number{lit: t.String()}, nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '{':
			return readJSONObject(dec)
		case '[':
			return readJSONArray(dec)
		}
	}
	return nil, errors.Errorf("toon: unexpected JSON token %v", tok)
}

func readJSONObject(dec *json.Decoder) (Value, error) {
	m := &Map{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "toon: invalid JSON")
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("toon: unexpected JSON token %v where an object key was expected", tok)
		}

		v, err := readJSONValue(dec)
		if err != nil {
			return nil, err
		}
		if err := m.Add(key, v); err != nil {
			return nil, err
		}
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "toon: invalid JSON")
	}
	return m, nil
}

func readJSONArray(dec *json.Decoder) (Value, error) {
	l := List{}
	for dec.More() {
		v, err := readJSONValue(dec)
		if err != nil {
			return nil, err
		}
		l = append(l, v)
	}

	// Consume the closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "toon: invalid JSON")
	}
	return l, nil
}

// MarshalJSON implements json.Marshaler.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalJSON implements json.Marshaler. Literals that JSON does not accept
// as written (a leading plus sign or leading zeros) are normalized.
func (n Number) MarshalJSON() ([]byte, error) {
	lit := n.Literal()
	if isJSONNumber(lit) {
		return []byte(lit), nil
	}
	return []byte(n.Decimal().String()), nil
}

// MarshalJSON implements json.Marshaler. A nil list is written as [].
func (l List) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('[')
	for i, v := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		val, err := ToJSON(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler, writing fields in order.
func (m *Map) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')

	for i, f := range m.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := ToJSON(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Is this a number as JSON writes it? Matches -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func isJSONNumber(s string) bool {
	if !isNumericLiteral(s) || s[0] == '+' {
		return false
	}
	digits := s
	if digits[0] == '-' {
		digits = digits[1:]
	}
	return !(len(digits) > 1 && digits[0] == '0' && isDigit(digits[1]))
}
