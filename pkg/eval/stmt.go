package eval

import (
	"github.com/RubixDev/Roost/pkg/parse"
)

// evalStmts evaluates a statement list in env. The result is the value of the
// last statement if it is an expression statement, and nil otherwise.
func (fm *frame) evalStmts(stmts []parse.Stmt, env *Env) (any, error) {
	var result any
	for _, stmt := range stmts {
		v, err := fm.evalStmt(stmt, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func (fm *frame) evalStmt(stmt parse.Stmt, env *Env) (any, error) {
	switch n := stmt.(type) {
	case *parse.ExprStmt:
		return fm.evalExpr(n.Expr, env)
	case *parse.VarDecl:
		return nil, fm.evalVarDecl(n, env)
	case *parse.FunctionDecl:
		env.Declare(n.Name, fm.closure(n.Name, n.Params, n.Body, env))
		return nil, nil
	case *parse.ClassDecl:
		_, err := fm.evalClass(n.Name, n.Members, env)
		return nil, err
	case *parse.Break:
		var v any
		if n.Value != nil {
			var err error
			v, err = fm.evalExpr(n.Value, env)
			if err != nil {
				return nil, err
			}
		}
		return nil, breakSignal{v, fm.context(n)}
	case *parse.Continue:
		return nil, continueSignal{fm.context(n)}
	case *parse.Return:
		var v any
		if n.Value != nil {
			var err error
			v, err = fm.evalExpr(n.Value, env)
			if err != nil {
				return nil, err
			}
		}
		return nil, returnSignal{v, fm.context(n)}
	}
	logger.Printf("unknown statement type %T", stmt)
	return nil, nil
}

func (fm *frame) evalVarDecl(n *parse.VarDecl, env *Env) error {
	var v any
	if n.Value != nil {
		var err error
		v, err = fm.evalExpr(n.Value, env)
		if err != nil {
			return err
		}
	}
	env.Declare(n.Name, v)
	return nil
}
