package jmespath

import "fmt"

// ErrorCode names one failure kind from the taxonomy in spec §6/§7.
type ErrorCode int

// The error-code taxonomy (spec §6). Names are suggestive, matching the
// spec's own wording, not an exhaustive enumeration any implementation
// must reproduce byte-for-byte.
const (
	ErrNone ErrorCode = iota
	ErrExpectedIdentifier
	ErrExpectedIndex
	ErrExpectedRightBracket
	ErrExpectedRightBrace
	ErrExpectedRightParen
	ErrExpectedColon
	ErrExpectedDot
	ErrExpectedComparator
	ErrExpectedKey
	ErrInvalidNumber
	ErrFunctionNameNotFound
	ErrInvalidArgument
	ErrUnexpectedEndOfInput
	ErrUnidentifiedError
)

func (c ErrorCode) String() string {
	switch c {
	case ErrNone:
		return "none"
	case ErrExpectedIdentifier:
		return "expected_identifier"
	case ErrExpectedIndex:
		return "expected_index"
	case ErrExpectedRightBracket:
		return "expected_right_bracket"
	case ErrExpectedRightBrace:
		return "expected_right_brace"
	case ErrExpectedRightParen:
		return "expected_right_paren"
	case ErrExpectedColon:
		return "expected_colon"
	case ErrExpectedDot:
		return "expected_dot"
	case ErrExpectedComparator:
		return "expected_comparator"
	case ErrExpectedKey:
		return "expected_key"
	case ErrInvalidNumber:
		return "invalid_number"
	case ErrFunctionNameNotFound:
		return "function_name_not_found"
	case ErrInvalidArgument:
		return "invalid_argument"
	case ErrUnexpectedEndOfInput:
		return "unexpected_end_of_input"
	default:
		return "unidentified_error"
	}
}

// SyntaxError is returned when parsing fails (spec §4.9 "Parsing errors
// are terminal"). Modeled on the teacher's parser.go ParseError, adding
// a Code and a Column alongside the teacher's Message/Pos.
type SyntaxError struct {
	Code    ErrorCode
	Message string
	Pos     int
	Line    int
	Col     int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("jmespath: syntax error at line %d, column %d: %s", e.Line, e.Col, e.Message)
}

// EvalError is returned when evaluation detects a function misuse (bad
// arity or argument type, spec §4.3/§4.9). Unlike a SyntaxError it never
// aborts the walk: the surrounding selector still returns null upward
// (spec §4.9), the caller using SearchError just also observes this.
type EvalError struct {
	Code    ErrorCode
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("jmespath: %s", e.Message)
}

func newEvalError(code ErrorCode, format string, args ...interface{}) *EvalError {
	return &EvalError{Code: code, Message: fmt.Sprintf(format, args...)}
}
