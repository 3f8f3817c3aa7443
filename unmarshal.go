package toon

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Unmarshal decodes a document and stores the result in the value pointed
// to by v, following the rules of encoding/json: struct fields are matched
// by their json tags, and numbers stored in an interface{} become
// json.Number so that no precision is lost.
func Unmarshal(data []byte, v interface{}) error {
	val, err := DecodeBytes(data)
	if err != nil {
		return err
	}

	js, err := ToJSON(val)
	if err != nil {
		return errors.Wrap(err, "toon: unable to convert value")
	}

	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "toon: unable to unmarshal")
	}
	return nil
}

// ToGo converts a Value to plain Go values: nil, bool, json.Number, string,
// []interface{} and map[string]interface{}. Map key order is lost.
func ToGo(v Value) interface{} {
	switch val := v.(type) {
	case Bool:
		return bool(val)
	case Number:
		return json.Number(val.Literal())
	case String:
		return string(val)
	case List:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = ToGo(e)
		}
		return out
	case *Map:
		out := make(map[string]interface{}, val.Len())
		for _, f := range val.Fields() {
			out[f.Key] = ToGo(f.Value)
		}
		return out
	default:
		return nil
	}
}
