// Package evaltest provides a framework for testing Roost code.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method calls
// that add additional information to it.
//
// Example:
//
//	Test(t,
//	    That("1 + 2").Evaluates(3),
//	    That("println('x')").Prints("x\n"))
//
// If some setup is needed, use the TestWithSetup function instead.
package evaltest

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/RubixDev/Roost/pkg/eval"
	"github.com/RubixDev/Roost/pkg/eval/errs"
	"github.com/RubixDev/Roost/pkg/eval/vals"
	"github.com/RubixDev/Roost/pkg/parse"
)

// Case is a test case that can be used in Test.
type Case struct {
	codes []string
	setup func(ev *eval.Evaler)
	want  result
}

type result struct {
	// Whether the value should be checked.
	hasValue  bool
	Value     any
	StdoutOut []byte
	StderrOut []byte

	ParseError error
	Exception  error
}

// That returns a new Case with the specified source code. Multiple arguments
// are joined with newlines. To specify multiple pieces of code that are
// evaluated separately, use the Then method to append code pieces.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "1 + 2" evaluates to 3 reads:
//
//	That("1 + 2").Evaluates(3)
func That(lines ...string) Case {
	return Case{codes: []string{strings.Join(lines, "\n")}}
}

// Then returns a new Case that evaluates the given code in addition, in the
// same Evaler. Multiple arguments are joined with newlines.
func (c Case) Then(lines ...string) Case {
	c.codes = append(c.codes, strings.Join(lines, "\n"))
	return c
}

// WithSetup returns a new Case with the given setup function executed on the
// Evaler before the code is evaluated.
func (c Case) WithSetup(f func(*eval.Evaler)) Case {
	c.setup = f
	return c
}

// DoesNothing returns c unchanged. It is useful to mark tests that don't have
// any side effects, for example:
//
//	That("var x").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// Evaluates returns an altered Case that requires the last piece of code to
// evaluate to the given value. Numbers are compared by value, so 3 matches
// both an int and a float64 result; use Approximately for inexact floats.
func (c Case) Evaluates(v any) Case {
	c.want.hasValue = true
	c.want.Value = v
	return c
}

// Prints returns an altered Case that requires the code to write exactly the
// given text to stdout.
func (c Case) Prints(s string) Case {
	c.want.StdoutOut = []byte(s)
	return c
}

// PrintsStderrWith returns an altered Case that requires the stderr output to
// contain the given text.
func (c Case) PrintsStderrWith(s string) Case {
	c.want.StderrOut = []byte(s)
	return c
}

// Throws returns an altered Case that requires the code to raise a runtime
// error of the given kind that is not caught.
func (c Case) Throws(kind errs.Kind) Case {
	c.want.Exception = errorOfKind{kind}
	return c
}

// ThrowsValue returns an altered Case that requires the code to throw the
// given value with the throw builtin, without catching it.
func (c Case) ThrowsValue(v any) Case {
	c.want.Exception = thrownValue{v}
	return c
}

// Exits returns an altered Case that requires the code to call the exit
// builtin with the given code.
func (c Case) Exits(code int) Case {
	c.want.Exception = eval.ExitSignal{Code: code}
	return c
}

// DoesNotParse returns an altered Case that requires the code to fail to
// parse.
func (c Case) DoesNotParse() Case {
	c.want.ParseError = anyError{}
	return c
}

// Test runs test cases. For each test case, a new Evaler is created with
// NewEvaler.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	TestWithSetup(t, func(*eval.Evaler) {}, tests...)
}

// TestWithSetup runs test cases. For each test case, a new Evaler is created
// with NewEvaler and passed to the setup function.
func TestWithSetup(t *testing.T, setup func(*eval.Evaler), tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(strings.Join(tc.codes, "\n"), func(t *testing.T) {
			t.Helper()
			ev := eval.NewEvaler()
			setup(ev)
			if tc.setup != nil {
				tc.setup(ev)
			}

			r := evalAndCollect(ev, tc.codes)

			if tc.want.hasValue && !match(r.Value, tc.want.Value) {
				t.Errorf("got value %s, want %s",
					vals.Repr(r.Value), vals.Repr(tc.want.Value))
			}
			if !bytes.Equal(tc.want.StdoutOut, r.StdoutOut) {
				t.Errorf("got stdout (-want +got):\n%s",
					cmp.Diff(string(tc.want.StdoutOut), string(r.StdoutOut)))
			}
			if tc.want.StderrOut == nil {
				if len(r.StderrOut) > 0 {
					t.Errorf("got stderr out %q, want empty", r.StderrOut)
				}
			} else if !bytes.Contains(r.StderrOut, tc.want.StderrOut) {
				t.Errorf("got stderr out %q, want output containing %q",
					r.StderrOut, tc.want.StderrOut)
			}
			if !matchErr(tc.want.ParseError, r.ParseError) {
				t.Errorf("got parse error %v, want %v",
					r.ParseError, tc.want.ParseError)
			}
			if !matchErr(tc.want.Exception, r.Exception) {
				t.Errorf("unexpected exception")
				t.Logf("got: %T: %v", r.Exception, r.Exception)
				t.Errorf("want: %v", tc.want.Exception)
			}
		})
	}
}

func evalAndCollect(ev *eval.Evaler, codes []string) result {
	var r result
	var stdout, stderr bytes.Buffer
	for _, code := range codes {
		v, err := ev.Eval(parse.Source{Name: "[test]", Code: code},
			eval.EvalCfg{Stdout: &stdout, Stderr: &stderr})
		r.Value = v
		switch err.(type) {
		case nil:
		case *parse.ParseError, *parse.LexError:
			// NOTE: If multiple code pieces fail to parse, only the last error
			// is saved.
			r.ParseError = err
		default:
			r.Exception = err
		}
	}
	r.StdoutOut = stdout.Bytes()
	r.StderrOut = stderr.Bytes()
	return r
}

// Approximately can be passed to Case.Evaluates to match a float64 within a
// threshold.
type Approximately struct{ F float64 }

// ApproximatelyThreshold defines the threshold for matching float64 values
// when using Approximately.
const ApproximatelyThreshold = 1e-15

func match(got, want any) bool {
	if g, ok := got.(float64); ok {
		switch want := want.(type) {
		case float64:
			if math.IsNaN(g) || math.IsNaN(want) {
				return math.IsNaN(g) && math.IsNaN(want)
			}
		case Approximately:
			return math.Abs(g-want.F) <= ApproximatelyThreshold
		}
	}
	return vals.Equal(got, want)
}

type errorMatcher interface{ matchError(error) bool }

func matchErr(want, got error) bool {
	if want == nil {
		return got == nil
	}
	if matcher, ok := want.(errorMatcher); ok {
		return matcher.matchError(got)
	}
	return want == got
}

type anyError struct{}

func (anyError) Error() string { return "any error" }

func (anyError) matchError(e error) bool { return e != nil }

type errorOfKind struct{ kind errs.Kind }

func (e errorOfKind) Error() string { return "uncaught " + string(e.kind) }

func (e errorOfKind) matchError(got error) bool {
	exc, ok := got.(*eval.Exception)
	return ok && exc.ErrorKind() == e.kind
}

type thrownValue struct{ v any }

func (e thrownValue) Error() string { return fmt.Sprintf("thrown %s", vals.Repr(e.v)) }

func (e thrownValue) matchError(got error) bool {
	exc, ok := got.(*eval.Exception)
	return ok && vals.Equal(exc.Value, e.v)
}
