package jmespath

import (
	"github.com/Jeffail/gabs/v2"
)

// FromGabsContainer adapts a *gabs.Container — a common dynamic-JSON
// wrapper used by callers that don't want to round-trip through text —
// into a Value tree.
//
// Caveat: gabs.Container is itself backed by map[string]interface{}, so
// it does not track member insertion order. Objects built through this
// adapter iterate their keys in Go's randomized map order, not document
// order. Prefer ParseJSON when the source text is available and object
// key order matters to the expression being evaluated.
func FromGabsContainer(c *gabs.Container) Value {
	if c == nil {
		return Null
	}
	return fromGabsData(c.Data())
}

func fromGabsData(data interface{}) Value {
	switch v := data.(type) {
	case nil:
		return Null
	case bool:
		return Bool(v)
	case float64:
		return Number(v)
	case string:
		return String(v)
	case []interface{}:
		arr := NewArray()
		for _, item := range v {
			arr.Append(fromGabsData(item))
		}
		return arr
	case map[string]interface{}:
		obj := NewObject()
		for key, item := range v {
			obj.Set(key, fromGabsData(item))
		}
		return obj
	default:
		return Null
	}
}
