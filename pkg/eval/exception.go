package eval

import (
	"bytes"
	"fmt"

	"github.com/RubixDev/Roost/pkg/diag"
	"github.com/RubixDev/Roost/pkg/eval/errs"
	"github.com/RubixDev/Roost/pkg/eval/vals"
	"github.com/RubixDev/Roost/pkg/parse"
)

// RuntimeError is an error raised by the evaluator itself, such as a type
// mismatch or an undefined variable. It is also a value: catching it with
// try binds it to the catch variable, and scripts can read its kind and
// message members.
type RuntimeError struct {
	Type    errs.Kind
	Message string
	Context *diag.Context
}

func (e *RuntimeError) Error() string {
	if e.Context == nil {
		return string(e.Type) + ": " + e.Message
	}
	line, col := e.Context.Position()
	return fmt.Sprintf("%s: %s:%d:%d: %s", e.Type, e.Context.Name, line, col, e.Message)
}

// Range returns the range of the node that raised the error.
func (e *RuntimeError) Range() diag.Ranging {
	if e.Context == nil {
		return diag.Ranging{}
	}
	return e.Context.Ranging
}

// Show shows the error with its source context.
func (e *RuntimeError) Show(indent string) string {
	s := "\033[31;1m" + string(e.Type) + ": " + e.Message + "\033[m"
	if e.Context != nil {
		s += "\n" + indent + e.Context.ShowCompact(indent)
	}
	return s
}

// Kind returns "error".
func (e *RuntimeError) Kind() string { return "error" }

// Repr returns a representation of the error, without its context.
func (e *RuntimeError) Repr() string {
	return "<error " + string(e.Type) + ": " + parse.Quote(e.Message) + ">"
}

func (e *RuntimeError) String() string {
	return string(e.Type) + ": " + e.Message
}

// Exception is the error that propagates a thrown value up the call stack.
// It is the only error that try can catch.
//
// The thrown value is either a *RuntimeError raised by the evaluator, or any
// value passed to the throw builtin.
type Exception struct {
	Value any
	// Contexts of the call sites the exception propagated through, innermost
	// first.
	StackTrace []*diag.Context
}

func (exc *Exception) Error() string {
	if err, ok := exc.Value.(error); ok {
		return err.Error()
	}
	return "thrown: " + vals.Repr(exc.Value)
}

// Range returns the range of the innermost context of the exception.
func (exc *Exception) Range() diag.Ranging {
	if err, ok := exc.Value.(*RuntimeError); ok && err.Context != nil {
		return err.Range()
	}
	if len(exc.StackTrace) > 0 {
		return exc.StackTrace[0].Ranging
	}
	return diag.Ranging{}
}

// Show shows the exception and its traceback.
func (exc *Exception) Show(indent string) string {
	buf := new(bytes.Buffer)
	if shower, ok := exc.Value.(diag.Shower); ok {
		fmt.Fprintf(buf, "Exception: %s", shower.Show(indent))
	} else {
		fmt.Fprintf(buf, "Exception: \033[31;1m%s\033[m", vals.Repr(exc.Value))
	}
	if len(exc.StackTrace) > 0 {
		buf.WriteString("\n" + indent + "Traceback:")
		for _, ctx := range exc.StackTrace {
			buf.WriteString("\n" + indent + "  ")
			buf.WriteString(ctx.Show(indent + "    "))
		}
	}
	return buf.String()
}

// ErrorKind returns the kind of the RuntimeError wrapped in the exception, or
// an empty Kind for other thrown values.
func (exc *Exception) ErrorKind() errs.Kind {
	if err, ok := exc.Value.(*RuntimeError); ok {
		return err.Type
	}
	return ""
}

func (exc *Exception) addContext(ctx *diag.Context) {
	exc.StackTrace = append(exc.StackTrace, ctx)
}

// ExitSignal is returned when the exit builtin is called. It cannot be caught
// by try and unwinds all the way to the caller of Eval.
type ExitSignal struct {
	Code int
}

func (e ExitSignal) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// Control flow signals. They are errors so that they unwind through nested
// evaluation; the construct that handles each of them stops the unwinding.
// The context is that of the statement that raised the signal, used to report
// the signal when it escapes to a context that cannot handle it.

type breakSignal struct {
	value any
	ctx   *diag.Context
}

func (breakSignal) Error() string { return "break" }

type continueSignal struct {
	ctx *diag.Context
}

func (continueSignal) Error() string { return "continue" }

type returnSignal struct {
	value any
	ctx   *diag.Context
}

func (returnSignal) Error() string { return "return" }

// illegalContext converts a control flow signal that escaped its handling
// construct into an exception. Other errors are returned as is.
func illegalContext(err error) error {
	switch sig := err.(type) {
	case breakSignal:
		return newRuntimeException(errs.IllegalContext, "break outside of loop", sig.ctx)
	case continueSignal:
		return newRuntimeException(errs.IllegalContext, "continue outside of loop", sig.ctx)
	case returnSignal:
		return newRuntimeException(errs.IllegalContext, "return outside of function", sig.ctx)
	}
	return err
}

func newRuntimeException(kind errs.Kind, msg string, ctx *diag.Context) *Exception {
	return &Exception{Value: &RuntimeError{kind, msg, ctx}}
}
