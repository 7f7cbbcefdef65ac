// Package eval handles evaluation of parsed Roost code and provides runtime
// facilities.
package eval

import (
	"errors"
	"io"

	"github.com/RubixDev/Roost/pkg/eval/errs"
	"github.com/RubixDev/Roost/pkg/logutil"
	"github.com/RubixDev/Roost/pkg/parse"
)

var logger = logutil.GetLogger("[eval] ")

// ErrInterrupted is returned by Eval when evaluation is stopped by the
// Interrupt channel in EvalCfg.
var ErrInterrupted = errors.New("interrupted")

// Evaler provides methods for evaluating code, and maintains state that is
// persisted between evaluation of different pieces of code, namely the global
// scope. An Evaler is not safe for concurrent use.
type Evaler struct {
	builtin *Env
	global  *Env
}

// NewEvaler creates a new Evaler, with the builtin functions in its builtin
// scope and an empty global scope.
func NewEvaler() *Evaler {
	builtin := NewEnv(nil)
	for _, fn := range builtinFns {
		builtin.Declare(fn.name, fn)
	}
	return &Evaler{builtin, NewEnv(builtin)}
}

// Builtin returns the builtin scope.
func (ev *Evaler) Builtin() *Env { return ev.builtin }

// Global returns the global scope. Top-level declarations of code evaluated
// with Eval end up here.
func (ev *Evaler) Global() *Env { return ev.global }

// EvalCfg keeps configuration for the (*Evaler).Eval method.
type EvalCfg struct {
	// Writers that print and eprint write to. Nil writers discard the output.
	Stdout, Stderr io.Writer
	// If true, evaluate the code in a new scope whose parent is the builtin
	// scope, instead of the global scope.
	Fresh bool
	// If not nil, evaluation stops with ErrInterrupted at the next iteration
	// of a loop or the next function call after the channel is closed or
	// receives a value.
	Interrupt <-chan struct{}
}

func (cfg *EvalCfg) fillDefaults() {
	if cfg.Stdout == nil {
		cfg.Stdout = io.Discard
	}
	if cfg.Stderr == nil {
		cfg.Stderr = io.Discard
	}
}

// Eval parses and evaluates a piece of code. It returns the value of the last
// expression statement of the code, or nil.
//
// Parse errors are returned as is. An uncaught runtime error or thrown value
// is returned as an *Exception, and a call to the exit builtin as an
// ExitSignal.
func (ev *Evaler) Eval(src parse.Source, cfg EvalCfg) (any, error) {
	tree, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}
	return ev.EvalTree(tree, cfg)
}

// EvalTree is like Eval, but evaluates an already parsed tree.
func (ev *Evaler) EvalTree(tree parse.Tree, cfg EvalCfg) (any, error) {
	cfg.fillDefaults()
	env := ev.global
	if cfg.Fresh {
		env = NewEnv(ev.builtin)
	}
	fm := &frame{src: tree.Source, stdout: cfg.Stdout, stderr: cfg.Stderr, interrupt: cfg.Interrupt}
	logger.Printf("evaluating %s", tree.Source.Name)
	v, err := fm.evalStmts(tree.Root.Stmts, env)
	if err != nil {
		return nil, illegalContext(err)
	}
	return v, nil
}

// Call calls a function or class value with the given arguments. It is used to
// call back into Roost code from Go.
func (ev *Evaler) Call(f any, args []any, cfg EvalCfg) (any, error) {
	cfg.fillDefaults()
	c, ok := f.(callable)
	if !ok {
		return nil, errors.New("not callable")
	}
	fm := &frame{src: parse.Source{Name: "[call]"}, stdout: cfg.Stdout, stderr: cfg.Stderr, interrupt: cfg.Interrupt}
	v, err := c.call(fm, args)
	if e, ok := err.(*errs.Error); ok {
		return nil, newRuntimeException(e.Kind, e.Message, nil)
	}
	if err != nil {
		return nil, illegalContext(err)
	}
	return v, nil
}
