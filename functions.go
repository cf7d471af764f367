package jmespath

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Function is the contract every built-in (and every caller-registered
// extension) implements (spec §4.3): evaluate each arg selector against
// input when its value is wanted, set an EvalError on misuse, and
// produce a Value. argSelectors are raw, unevaluated Selectors rather
// than pre-computed Values so a function like sort_by can treat one of
// them as a deferred expression-reference instead of a value (spec §5 of
// SPEC_FULL.md, "Supplemented features").
type Function func(arena *Arena, input Value, argSelectors []Selector) (Value, *EvalError)

// registry is the name -> built-in table (spec §4.3, "Required for this
// core: sort_by"; SPEC_FULL.md §4 E adds the rest). It is intentionally
// a package-level map behind RegisterFunction rather than a closed switch
// statement, per spec §1's "Additional built-ins plug in via the same
// contract" and the Open Question decision in DESIGN.md.
var registry = map[string]Function{}

// RegisterFunction adds or replaces the built-in called name. Callers
// embedding this engine can add their own functions the same way the
// core built-ins below are registered.
func RegisterFunction(name string, fn Function) {
	registry[name] = fn
}

func lookupFunction(name string) (Function, bool) {
	fn, ok := registry[name]
	return fn, ok
}

func init() {
	RegisterFunction("sort_by", builtinSortBy)
	RegisterFunction("sort", builtinSort)
	RegisterFunction("length", builtinLength)
	RegisterFunction("keys", builtinKeys)
	RegisterFunction("values", builtinValues)
	RegisterFunction("to_string", builtinToString)
	RegisterFunction("to_number", builtinToNumber)
	RegisterFunction("type", builtinType)
	RegisterFunction("contains", builtinContains)
	RegisterFunction("reverse", builtinReverse)
	RegisterFunction("merge", builtinMerge)
	RegisterFunction("not_null", builtinNotNull)
}

func arityError(name string, want int, got int) *EvalError {
	return newEvalError(ErrInvalidArgument, "%s(): expected %d argument(s), got %d", name, want, got)
}

func typeError(name string, arg int, want string, got Value) *EvalError {
	return newEvalError(ErrInvalidArgument, "%s(): argument %d must be %s, got %s", name, arg, want, describe(got))
}

// builtinSortBy is the one built-in spec.md §4.3 requires directly:
// stable-sort a copy of arg[0] (which must be an array) by the value
// arg[1] (an expression-reference, `&expr`) produces for each element.
func builtinSortBy(arena *Arena, input Value, args []Selector) (Value, *EvalError) {
	if len(args) != 2 {
		return Null, arityError("sort_by", 2, len(args))
	}
	arr, _ := args[0].evaluate(arena, input)
	items, ok := arrayItems(arr)
	if !ok {
		return Null, typeError("sort_by", 1, "an array", arr)
	}
	keyExpr, ok := asExprRef(args[1])
	if !ok {
		return Null, newEvalError(ErrInvalidArgument, "sort_by(): second argument must be an expression reference (&expr)")
	}

	copied := append([]Value(nil), items...)
	var sortErr *EvalError
	sort.SliceStable(copied, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		ki, _ := keyExpr.evaluate(arena, copied[i])
		kj, _ := keyExpr.evaluate(arena, copied[j])
		less, err := sortLess(ki, kj)
		if err != nil {
			sortErr = err
			return false
		}
		return less
	})
	if sortErr != nil {
		return Null, sortErr
	}
	result := arena.NewArray()
	for _, v := range copied {
		result.Append(v)
	}
	return result, nil
}

// builtinSort is sort_by without a key-expression: natural ordering over
// an array of all-numbers or all-strings (SPEC_FULL.md §4 E).
func builtinSort(arena *Arena, input Value, args []Selector) (Value, *EvalError) {
	if len(args) != 1 {
		return Null, arityError("sort", 1, len(args))
	}
	arr, _ := args[0].evaluate(arena, input)
	items, ok := arrayItems(arr)
	if !ok {
		return Null, typeError("sort", 1, "an array", arr)
	}
	copied := append([]Value(nil), items...)
	var sortErr *EvalError
	sort.SliceStable(copied, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		less, err := sortLess(copied[i], copied[j])
		if err != nil {
			sortErr = err
			return false
		}
		return less
	})
	if sortErr != nil {
		return Null, sortErr
	}
	result := arena.NewArray()
	for _, v := range copied {
		result.Append(v)
	}
	return result, nil
}

// sortLess is deliberately separate from compare.go's lessThan: spec
// §4.4 item 10 restricts filter ordering comparisons to numeric pairs
// only (non-numeric pairs are "undefined"), but sort_by/sort are a
// SPEC_FULL.md addition that, like real-world JMESPath, also supports an
// all-string key set. Keeping this comparison local to functions.go
// avoids loosening the filter contract spec.md actually specifies.
func sortLess(a, b Value) (bool, *EvalError) {
	if a.IsNumber() && b.IsNumber() {
		return a.Number() < b.Number(), nil
	}
	if a.IsString() && b.IsString() {
		return a.String() < b.String(), nil
	}
	return false, newEvalError(ErrInvalidArgument, "sort: elements must be all numbers or all strings, got %s and %s", describe(a), describe(b))
}

func builtinLength(arena *Arena, input Value, args []Selector) (Value, *EvalError) {
	if len(args) != 1 {
		return Null, arityError("length", 1, len(args))
	}
	v, _ := args[0].evaluate(arena, input)
	switch {
	case v.IsString(), v.IsArray(), v.IsObject():
		return Number(float64(v.Size())), nil
	default:
		return Null, typeError("length", 1, "a string, array or object", v)
	}
}

func builtinKeys(arena *Arena, input Value, args []Selector) (Value, *EvalError) {
	if len(args) != 1 {
		return Null, arityError("keys", 1, len(args))
	}
	v, _ := args[0].evaluate(arena, input)
	if !v.IsObject() {
		return Null, typeError("keys", 1, "an object", v)
	}
	result := arena.NewArray()
	for _, k := range v.ObjectKeys() {
		result.Append(String(k))
	}
	return result, nil
}

func builtinValues(arena *Arena, input Value, args []Selector) (Value, *EvalError) {
	if len(args) != 1 {
		return Null, arityError("values", 1, len(args))
	}
	v, _ := args[0].evaluate(arena, input)
	if !v.IsObject() {
		return Null, typeError("values", 1, "an object", v)
	}
	result := arena.NewArray()
	for _, k := range v.ObjectKeys() {
		member, _ := v.Get(k)
		result.Append(member)
	}
	return result, nil
}

func builtinToString(arena *Arena, input Value, args []Selector) (Value, *EvalError) {
	if len(args) != 1 {
		return Null, arityError("to_string", 1, len(args))
	}
	v, _ := args[0].evaluate(arena, input)
	if v.IsString() {
		return v, nil
	}
	return String(encodeJSON(v)), nil
}

func builtinToNumber(arena *Arena, input Value, args []Selector) (Value, *EvalError) {
	if len(args) != 1 {
		return Null, arityError("to_number", 1, len(args))
	}
	v, _ := args[0].evaluate(arena, input)
	switch {
	case v.IsNumber():
		return v, nil
	case v.IsString():
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return Null, nil
		}
		return Number(f), nil
	default:
		return Null, nil
	}
}

func builtinType(arena *Arena, input Value, args []Selector) (Value, *EvalError) {
	if len(args) != 1 {
		return Null, arityError("type", 1, len(args))
	}
	v, _ := args[0].evaluate(arena, input)
	return String(v.Kind().String()), nil
}

func builtinContains(arena *Arena, input Value, args []Selector) (Value, *EvalError) {
	if len(args) != 2 {
		return Null, arityError("contains", 2, len(args))
	}
	subject, _ := args[0].evaluate(arena, input)
	search, _ := args[1].evaluate(arena, input)
	switch {
	case subject.IsString():
		if !search.IsString() {
			return Null, typeError("contains", 2, "a string", search)
		}
		return Bool(strings.Contains(subject.String(), search.String())), nil
	case subject.IsArray():
		for i := 0; i < subject.Size(); i++ {
			if subject.At(i).Equal(search) {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	default:
		return Null, typeError("contains", 1, "a string or array", subject)
	}
}

func builtinReverse(arena *Arena, input Value, args []Selector) (Value, *EvalError) {
	if len(args) != 1 {
		return Null, arityError("reverse", 1, len(args))
	}
	v, _ := args[0].evaluate(arena, input)
	switch {
	case v.IsString():
		runes := []rune(v.String())
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return String(string(runes)), nil
	case v.IsArray():
		items, _ := arrayItems(v)
		result := arena.NewArray()
		for i := len(items) - 1; i >= 0; i-- {
			result.Append(items[i])
		}
		return result, nil
	default:
		return Null, typeError("reverse", 1, "a string or array", v)
	}
}

func builtinMerge(arena *Arena, input Value, args []Selector) (Value, *EvalError) {
	result := arena.NewObject()
	for i, arg := range args {
		v, _ := arg.evaluate(arena, input)
		if !v.IsObject() {
			return Null, typeError("merge", i+1, "an object", v)
		}
		for _, k := range v.ObjectKeys() {
			member, _ := v.Get(k)
			result.Set(k, member)
		}
	}
	return result, nil
}

func builtinNotNull(arena *Arena, input Value, args []Selector) (Value, *EvalError) {
	for _, arg := range args {
		v, _ := arg.evaluate(arena, input)
		if v != nil && !v.IsNull() {
			return v, nil
		}
	}
	return Null, nil
}

func arrayItems(v Value) ([]Value, bool) {
	if v == nil || !v.IsArray() {
		return nil, false
	}
	arr, ok := v.(*Array)
	if !ok {
		return nil, false
	}
	return arr.Items(), true
}

// encodeJSON renders v as compact JSON text. It backs to_string's
// non-string branch, the MarshalJSON methods of the Value kinds
// (value.go) and the literal node's debug dump (ast_json.go). It is
// intentionally minimal (no indentation option, no HTML-escaping knobs)
// rather than a general serialization surface (spec §1 explicitly keeps
// JSON serialization an external collaborator's job).
func encodeJSON(v Value) string {
	var b strings.Builder
	writeJSON(&b, v)
	return b.String()
}

func writeJSON(b *strings.Builder, v Value) {
	if v == nil || v.IsNull() {
		b.WriteString("null")
		return
	}
	switch v.Kind() {
	case KindBool:
		if v.Bool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNumber:
		b.WriteString(strconv.FormatFloat(v.Number(), 'g', -1, 64))
	case KindString:
		q, _ := json.Marshal(v.String())
		b.Write(q)
	case KindArray:
		b.WriteByte('[')
		for i := 0; i < v.Size(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSON(b, v.At(i))
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, k := range v.ObjectKeys() {
			if i > 0 {
				b.WriteByte(',')
			}
			q, _ := json.Marshal(k)
			b.Write(q)
			b.WriteByte(':')
			member, _ := v.Get(k)
			writeJSON(b, member)
		}
		b.WriteByte('}')
	}
}
