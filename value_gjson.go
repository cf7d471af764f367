package jmespath

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseJSON parses text into a Value tree. It backs both the public
// "parse a document" entry point and the parser's JSON-literal
// (`` `...` ``) production (spec §4.6).
//
// gjson is used rather than encoding/json because gjson.Result.ForEach
// walks object members in source order; encoding/json's map decoding
// does not preserve it, and the JSON value model's object-iteration
// order is an invariant of this engine (spec §3), not a convenience.
func ParseJSON(text string) (Value, error) {
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("jmespath: invalid JSON literal %q", text)
	}
	return fromGJSON(gjson.Parse(text)), nil
}

func fromGJSON(r gjson.Result) Value {
	switch r.Type {
	case gjson.Null:
		return Null
	case gjson.True:
		return Bool(true)
	case gjson.False:
		return Bool(false)
	case gjson.Number:
		return Number(r.Num)
	case gjson.String:
		return String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			arr := NewArray()
			r.ForEach(func(_, value gjson.Result) bool {
				arr.Append(fromGJSON(value))
				return true
			})
			return arr
		}
		obj := NewObject()
		r.ForEach(func(key, value gjson.Result) bool {
			obj.Set(key.Str, fromGJSON(value))
			return true
		})
		return obj
	default:
		return Null
	}
}
