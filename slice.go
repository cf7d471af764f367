package jmespath

// Slice describes a `start:end:step` array slice expression (spec §3).
// A nil Start/End means the corresponding component was omitted from the
// source text (e.g. "[:5]" has no Start).
type Slice struct {
	Start *int
	End   *int
	Step  int
}

// NewSlice builds a Slice, defaulting Step to 1 when unspecified (the
// caller passes stepSpecified=false and any value for step in that case).
func NewSlice(start, end *int, step int, stepSpecified bool) Slice {
	if !stepSpecified {
		step = 1
	}
	return Slice{Start: start, End: end, Step: step}
}

// resolve normalizes the slice against a sequence of length n, following
// the standard (Python/JMESPath) convention: a negative Start or End is
// counted from the end via size + value, not size - value. The source
// this spec was distilled from has a size - start bug in its negative
// start handling; spec.md calls this out explicitly and this
// implementation follows the corrected, standard semantics instead.
func (s Slice) resolve(n int) (start, end int) {
	start = 0
	if s.Start != nil {
		start = *s.Start
		if start < 0 {
			start += n
		}
		if start < 0 {
			start = 0
		}
	}

	end = n
	if s.End != nil {
		end = *s.End
		if end < 0 {
			end += n
		}
		if end < 0 {
			end = 0
		}
		if end > n {
			end = n
		}
	}
	return start, end
}

// Indices returns, in emission order, the sequence of indices this slice
// selects out of a sequence of length n.
func (s Slice) Indices(n int) []int {
	start, end := s.resolve(n)
	step := s.Step
	if step == 0 {
		// invariant: parse-time validation (spec §4.2) rejects step == 0
		// before a Slice ever reaches here.
		step = 1
	}

	var result []int
	if step > 0 {
		for i := start; i < end; i += step {
			result = append(result, i)
		}
	} else {
		for i := end - 1; i >= start; i += step {
			result = append(result, i)
		}
	}
	return result
}

// Apply evaluates the slice against an array Value, returning a new
// *Array (spec §4.4 item 5). Non-arrays are the caller's concern;
// Apply assumes v.IsArray().
func (s Slice) Apply(v Value) *Array {
	n := v.Size()
	result := NewArray()
	for _, i := range s.Indices(n) {
		result.Append(v.At(i))
	}
	return result
}
