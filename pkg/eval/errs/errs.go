// Package errs declares the kinds of errors raised while evaluating code, and
// constructors for common messages.
package errs

import (
	"fmt"
	"strconv"
)

// Kind classifies a runtime error. Its string form is what scripts see as the
// "kind" member of a caught error.
type Kind string

// Error kinds.
const (
	TypeMismatch      Kind = "TypeMismatch"
	UndefinedVariable Kind = "UndefinedVariable"
	UndefinedMember   Kind = "UndefinedMember"
	DivisionByZero    Kind = "DivisionByZero"
	IndexOutOfBounds  Kind = "IndexOutOfBounds"
	IllegalContext    Kind = "IllegalContext"
	ValueError        Kind = "ValueError"
	AssertionFailed   Kind = "AssertionFailed"
	SystemError       Kind = "SystemError"
)

// Error is an error of a particular kind, without source context. The
// evaluator attaches the context of the node being evaluated.
type Error struct {
	Kind    Kind
	Message string
}

// New creates an Error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{kind, fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// OutOfRange returns an IndexOutOfBounds error about a value that must lie
// in [low, high].
func OutOfRange(what string, low, high, actual int) *Error {
	if low > high {
		return New(IndexOutOfBounds, "%s has no valid value, but is %d", what, actual)
	}
	return New(IndexOutOfBounds, "%s must be from %d to %d, but is %d", what, low, high, actual)
}

// ArityMismatch returns a TypeMismatch error about the number of values
// supplied. A negative high means there is no upper limit.
func ArityMismatch(what string, low, high, actual int) *Error {
	var want string
	switch {
	case high < 0:
		want = strconv.Itoa(low) + " or more values"
	case low == high:
		want = nValues(low)
	default:
		want = strconv.Itoa(low) + " to " + nValues(high)
	}
	return New(TypeMismatch, "%s must be %s, but is %s", what, want, nValues(actual))
}

func nValues(n int) string {
	if n == 1 {
		return "1 value"
	}
	return strconv.Itoa(n) + " values"
}

// BadType returns a TypeMismatch error about a value of the wrong kind.
func BadType(what, want, actual string) *Error {
	return New(TypeMismatch, "%s must be %s, but is %s", what, want, actual)
}
