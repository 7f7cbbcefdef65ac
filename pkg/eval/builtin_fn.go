package eval

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/RubixDev/Roost/pkg/eval/errs"
	"github.com/RubixDev/Roost/pkg/eval/vals"
)

// Builtin functions, declared in the builtin scope of every Evaler.
var builtinFns = []*BuiltinFn{
	{"print", 0, -1, printer(false, false)},
	{"println", 0, -1, printer(true, false)},
	{"eprint", 0, -1, printer(false, true)},
	{"eprintln", 0, -1, printer(true, true)},
	{"typeOf", 1, 1, typeOf},
	{"exit", 1, 1, exit},
	{"throw", 1, 1, throw},
	{"assert", 1, 2, assert},
	{"debug", 1, -1, debug},
}

func printer(newline, stderr bool) func(*frame, []any) (any, error) {
	return func(fm *frame, args []any) (any, error) {
		w := fm.stdout
		if stderr {
			w = fm.stderr
		}
		strs := make([]string, len(args))
		for i, arg := range args {
			strs[i] = vals.ToString(arg)
		}
		s := strings.Join(strs, " ")
		if newline {
			s += "\n"
		}
		return nil, writeOut(w, s)
	}
}

func writeOut(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return errs.New(errs.SystemError, "failed to write output: %v", err)
	}
	return nil
}

func typeOf(_ *frame, args []any) (any, error) {
	return vals.Kind(args[0]), nil
}

func exit(_ *frame, args []any) (any, error) {
	f, ok := vals.ToFloat(args[0])
	if !ok {
		return nil, errs.BadType("exit code", "number", vals.Kind(args[0]))
	}
	code, ok := vals.ToInt(args[0])
	if !ok {
		return nil, errs.New(errs.ValueError, "exit code must be an integer, but is %s", vals.Repr(args[0]))
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return nil, errs.New(errs.ValueError, "exit code %d is out of range", code)
	}
	logger.Printf("exit %d", code)
	return nil, ExitSignal{code}
}

func throw(_ *frame, args []any) (any, error) {
	return nil, &Exception{Value: args[0]}
}

func assert(_ *frame, args []any) (any, error) {
	if vals.Truthy(args[0]) {
		return nil, nil
	}
	if len(args) == 2 {
		return nil, errs.New(errs.AssertionFailed, "%s", vals.ToString(args[1]))
	}
	return nil, errs.New(errs.AssertionFailed, "assertion failed")
}

// debug writes the representation of its arguments to stderr, and returns its
// last argument.
func debug(fm *frame, args []any) (any, error) {
	strs := make([]string, len(args))
	for i, arg := range args {
		strs[i] = vals.Repr(arg)
	}
	if err := writeOut(fm.stderr, fmt.Sprintf("[debug] %s\n", strings.Join(strs, ", "))); err != nil {
		return nil, err
	}
	return args[len(args)-1], nil
}
