package eval

import (
	"github.com/RubixDev/Roost/pkg/eval/errs"
	"github.com/RubixDev/Roost/pkg/eval/vals"
	"github.com/RubixDev/Roost/pkg/parse"
)

// Maximum nesting of calls. Deeper recursion raises a SystemError instead of
// exhausting the Go stack.
const maxCallDepth = 5000

// callable is a value that can be called: a Closure, a BuiltinFn or a Class.
type callable interface {
	call(fm *frame, args []any) (any, error)
}

// Closure is a function defined in Roost code, together with the scope it was
// defined in.
type Closure struct {
	Name   string
	Params []string
	Body   *parse.Block
	Env    *Env
	// Source the function is defined in, used for error contexts when it is
	// called from code from another source.
	Src parse.Source
}

func (fm *frame) closure(name string, params []string, body *parse.Block, env *Env) *Closure {
	return &Closure{name, params, body, env, fm.src}
}

// Kind returns "function".
func (*Closure) Kind() string { return "function" }

// Repr returns "<function name>", or "<function>" for anonymous functions.
func (c *Closure) Repr() string {
	if c.Name == "" {
		return "<function>"
	}
	return "<function " + c.Name + ">"
}

func (c *Closure) call(fm *frame, args []any) (any, error) {
	if len(args) != len(c.Params) {
		return nil, errs.ArityMismatch("arguments of "+fnName(c.Name), len(c.Params), len(c.Params), len(args))
	}
	env := NewEnv(c.Env)
	for i, param := range c.Params {
		env.Declare(param, args[i])
	}
	v, err := fm.fork(c.Src).evalStmts(c.Body.Stmts, env)
	if ret, ok := err.(returnSignal); ok {
		return ret.value, nil
	}
	if err != nil {
		return nil, illegalContext(err)
	}
	return v, nil
}

func fnName(name string) string {
	if name == "" {
		return "anonymous function"
	}
	return "function '" + name + "'"
}

// BuiltinFn is a function implemented in Go.
type BuiltinFn struct {
	name    string
	minArgs int
	// A negative maxArgs means there is no upper limit.
	maxArgs int
	impl    func(fm *frame, args []any) (any, error)
}

// Name returns the name of the function.
func (b *BuiltinFn) Name() string { return b.name }

// Kind returns "function".
func (*BuiltinFn) Kind() string { return "function" }

// Repr returns "<builtin name>".
func (b *BuiltinFn) Repr() string { return "<builtin " + b.name + ">" }

func (b *BuiltinFn) call(fm *frame, args []any) (any, error) {
	if len(args) < b.minArgs || (b.maxArgs >= 0 && len(args) > b.maxArgs) {
		return nil, errs.ArityMismatch("arguments of function '"+b.name+"'", b.minArgs, b.maxArgs, len(args))
	}
	return b.impl(fm, args)
}

func (fm *frame) evalCall(n *parse.CallExpr, env *Env) (any, error) {
	callee, err := fm.evalExpr(n.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]any, len(n.Args))
	for i, arg := range n.Args {
		args[i], err = fm.evalExpr(arg, env)
		if err != nil {
			return nil, err
		}
	}
	c, ok := callee.(callable)
	if !ok {
		return nil, fm.errorf(n.Callee, errs.TypeMismatch, "value of kind %s is not callable", vals.Kind(callee))
	}
	if err := fm.checkInterrupt(); err != nil {
		return nil, err
	}
	if fm.depth >= maxCallDepth {
		return nil, fm.errorf(n, errs.SystemError, "maximum call depth of %d exceeded", maxCallDepth)
	}
	fm.depth++
	v, err := c.call(fm, args)
	fm.depth--
	if err != nil {
		if exc, ok := err.(*Exception); ok {
			exc.addContext(fm.context(n))
			return nil, exc
		}
		return nil, fm.wrap(n, err)
	}
	return v, nil
}
