package eval

import (
	"github.com/RubixDev/Roost/pkg/eval/errs"
	"github.com/RubixDev/Roost/pkg/eval/vals"
	"github.com/RubixDev/Roost/pkg/parse"
)

func (fm *frame) evalExpr(expr parse.Expr, env *Env) (any, error) {
	switch n := expr.(type) {
	case *parse.NumberLit:
		return n.Value, nil
	case *parse.BoolLit:
		return n.Value, nil
	case *parse.StringLit:
		return n.Value, nil
	case *parse.NullLit:
		return nil, nil
	case *parse.Ident:
		v, ok := env.Lookup(n.Name)
		if !ok {
			return nil, fm.errorf(n, errs.UndefinedVariable, "variable '%s' is not defined", n.Name)
		}
		return v, nil
	case *parse.ListLit:
		elems := make([]any, len(n.Elems))
		for i, elem := range n.Elems {
			v, err := fm.evalExpr(elem, env)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return vals.MakeList(elems...), nil
	case *parse.Block:
		return fm.evalStmts(n.Stmts, NewEnv(env))
	case *parse.RangeExpr:
		return fm.evalRange(n, env)
	case *parse.BinaryExpr:
		return fm.evalBinary(n, env)
	case *parse.UnaryExpr:
		v, err := fm.evalExpr(n.Operand, env)
		if err != nil {
			return nil, err
		}
		v, err = unaryOp(n.Op, v)
		if err != nil {
			return nil, fm.wrap(n, err)
		}
		return v, nil
	case *parse.AssignExpr:
		return fm.evalAssign(n, env)
	case *parse.CallExpr:
		return fm.evalCall(n, env)
	case *parse.MemberExpr:
		obj, err := fm.evalExpr(n.Object, env)
		if err != nil {
			return nil, err
		}
		v, err := getMember(obj, n.Name)
		if err != nil {
			return nil, fm.wrap(n, err)
		}
		return v, nil
	case *parse.IndexExpr:
		obj, err := fm.evalExpr(n.Object, env)
		if err != nil {
			return nil, err
		}
		idx, err := fm.evalExpr(n.Index, env)
		if err != nil {
			return nil, err
		}
		v, err := vals.Index(obj, idx)
		if err != nil {
			return nil, fm.wrap(n, err)
		}
		return v, nil
	case *parse.IfExpr:
		return fm.evalIf(n, env)
	case *parse.ForExpr:
		return fm.evalFor(n, env)
	case *parse.WhileExpr:
		return fm.evalWhile(n, env)
	case *parse.LoopExpr:
		return fm.evalLoop(n, env)
	case *parse.FunExpr:
		return fm.closure("", n.Params, n.Body, env), nil
	case *parse.ClassExpr:
		class, err := fm.evalClass("", n.Members, env)
		if err != nil {
			return nil, err
		}
		return class, nil
	case *parse.TryExpr:
		return fm.evalTry(n, env)
	}
	logger.Printf("unknown expression type %T", expr)
	return nil, nil
}

func (fm *frame) evalRange(n *parse.RangeExpr, env *Env) (any, error) {
	r := vals.Range{Inclusive: n.Inclusive}
	bound := func(e parse.Expr, what string) (int, bool, error) {
		if e == nil {
			return 0, false, nil
		}
		v, err := fm.evalExpr(e, env)
		if err != nil {
			return 0, false, err
		}
		i, ok := vals.ToInt(v)
		if !ok {
			return 0, false, fm.errorf(e, errs.TypeMismatch, "%s of range must be an integer, but is %s", what, vals.Repr(v))
		}
		return i, true, nil
	}
	var err error
	r.Start, r.HasStart, err = bound(n.Start, "start")
	if err != nil {
		return nil, err
	}
	r.End, r.HasEnd, err = bound(n.End, "end")
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (fm *frame) evalBinary(n *parse.BinaryExpr, env *Env) (any, error) {
	l, err := fm.evalExpr(n.Left, env)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case parse.And:
		if !vals.Truthy(l) {
			return false, nil
		}
		r, err := fm.evalExpr(n.Right, env)
		if err != nil {
			return nil, err
		}
		return vals.Truthy(r), nil
	case parse.Or:
		if vals.Truthy(l) {
			return true, nil
		}
		r, err := fm.evalExpr(n.Right, env)
		if err != nil {
			return nil, err
		}
		return vals.Truthy(r), nil
	}
	r, err := fm.evalExpr(n.Right, env)
	if err != nil {
		return nil, err
	}
	v, err := binaryOp(n.Op, l, r)
	if err != nil {
		return nil, fm.wrap(n, err)
	}
	return v, nil
}

// evalAssign evaluates an assignment. The value of an assignment expression
// is the assigned value.
func (fm *frame) evalAssign(n *parse.AssignExpr, env *Env) (any, error) {
	// Resolve the target's container before evaluating the right-hand side.
	var obj, idx any
	var err error
	switch target := n.Target.(type) {
	case *parse.MemberExpr:
		obj, err = fm.evalExpr(target.Object, env)
	case *parse.IndexExpr:
		obj, err = fm.evalExpr(target.Object, env)
		if err == nil {
			idx, err = fm.evalExpr(target.Index, env)
		}
	}
	if err != nil {
		return nil, err
	}

	v, err := fm.evalExpr(n.Value, env)
	if err != nil {
		return nil, err
	}

	if op, ok := n.Op.BinaryOpOf(); ok {
		var old any
		switch target := n.Target.(type) {
		case *parse.Ident:
			old, err = fm.evalExpr(target, env)
		case *parse.MemberExpr:
			old, err = getMember(obj, target.Name)
		case *parse.IndexExpr:
			old, err = vals.Index(obj, idx)
		}
		if err != nil {
			return nil, fm.wrap(n.Target, err)
		}
		v, err = binaryOp(op, old, v)
		if err != nil {
			return nil, fm.wrap(n, err)
		}
	}

	switch target := n.Target.(type) {
	case *parse.Ident:
		if !env.Assign(target.Name, v) {
			return nil, fm.errorf(target, errs.UndefinedVariable, "variable '%s' is not defined", target.Name)
		}
	case *parse.MemberExpr:
		if !setClassMember(obj, target.Name, v) {
			return nil, fm.errorf(target, errs.UndefinedMember, "%s has no assignable member '%s'", vals.Kind(obj), target.Name)
		}
	case *parse.IndexExpr:
		if err := vals.SetIndex(obj, idx, v); err != nil {
			return nil, fm.wrap(target, err)
		}
	}
	return v, nil
}

func (fm *frame) evalCond(cond parse.Expr, env *Env, what string) (bool, error) {
	v, err := fm.evalExpr(cond, env)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fm.errorf(cond, errs.TypeMismatch, "condition of %s must be bool, but is %s", what, vals.Kind(v))
	}
	return b, nil
}

func (fm *frame) evalIf(n *parse.IfExpr, env *Env) (any, error) {
	cond, err := fm.evalCond(n.Cond, env, "if")
	if err != nil {
		return nil, err
	}
	if cond {
		return fm.evalExpr(n.Then, env)
	}
	if n.Else != nil {
		return fm.evalExpr(n.Else, env)
	}
	return nil, nil
}

// loopBody evaluates one iteration of a loop body. It returns done = true when
// the loop should stop, with the value of the break statement that stopped
// it.
func (fm *frame) loopBody(body *parse.Block, env *Env) (done bool, v any, err error) {
	if err := fm.checkInterrupt(); err != nil {
		return true, nil, err
	}
	_, err = fm.evalStmts(body.Stmts, env)
	switch sig := err.(type) {
	case nil, continueSignal:
		return false, nil, nil
	case breakSignal:
		return true, sig.value, nil
	default:
		return true, nil, err
	}
}

func (fm *frame) evalWhile(n *parse.WhileExpr, env *Env) (any, error) {
	for {
		cond, err := fm.evalCond(n.Cond, env, "while")
		if err != nil {
			return nil, err
		}
		if !cond {
			return nil, nil
		}
		if done, v, err := fm.loopBody(n.Body, NewEnv(env)); done {
			return v, err
		}
	}
}

func (fm *frame) evalLoop(n *parse.LoopExpr, env *Env) (any, error) {
	for {
		if done, v, err := fm.loopBody(n.Body, NewEnv(env)); done {
			return v, err
		}
	}
}

func (fm *frame) evalFor(n *parse.ForExpr, env *Env) (any, error) {
	iter, err := fm.evalExpr(n.Iter, env)
	if err != nil {
		return nil, err
	}
	var result any
	var bodyErr error
	err = vals.Iterate(iter, func(elem any) bool {
		iterEnv := NewEnv(env)
		iterEnv.Declare(n.Var, elem)
		done, v, err := fm.loopBody(n.Body, iterEnv)
		if done {
			result, bodyErr = v, err
			return false
		}
		return true
	})
	if err != nil {
		return nil, fm.wrap(n.Iter, err)
	}
	if bodyErr != nil {
		return nil, bodyErr
	}
	return result, nil
}

func (fm *frame) evalTry(n *parse.TryExpr, env *Env) (any, error) {
	v, err := fm.evalExpr(n.Body, env)
	exc, ok := err.(*Exception)
	if !ok {
		return v, err
	}
	logger.Printf("caught exception: %v", exc)
	catchEnv := NewEnv(env)
	catchEnv.Declare(n.ErrName, exc.Value)
	return fm.evalStmts(n.Catch.Stmts, catchEnv)
}
