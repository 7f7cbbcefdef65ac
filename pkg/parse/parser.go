package parse

import (
	"strconv"
	"strings"

	"github.com/RubixDev/Roost/pkg/diag"
)

// parser maintains the mutable state of parsing. The tokens slice always ends
// with an EOF token.
type parser struct {
	src    Source
	tokens []Token
	pos    int
}

func (ps *parser) peek() Token { return ps.tokens[ps.pos] }

func (ps *parser) peekAt(n int) Token {
	if ps.pos+n >= len(ps.tokens) {
		return ps.tokens[len(ps.tokens)-1]
	}
	return ps.tokens[ps.pos+n]
}

func (ps *parser) is(kinds ...TokenKind) bool {
	k := ps.peek().Kind
	for _, kind := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func (ps *parser) next() Token {
	tok := ps.tokens[ps.pos]
	if tok.Kind != EOF {
		ps.pos++
	}
	return tok
}

// End of the last consumed token.
func (ps *parser) prevEnd() int {
	if ps.pos == 0 {
		return 0
	}
	return ps.tokens[ps.pos-1].To
}

func (ps *parser) skipEOLs() {
	for ps.is(EOL) {
		ps.next()
	}
}

func (ps *parser) errorAt(r diag.Ranger, msg string) error {
	return &ParseError{
		Message: msg,
		Context: *diag.NewContext(ps.src.Name, ps.src.Code, r),
		Partial: r.Range().From == len(ps.src.Code),
	}
}

// Returns an error about the current token.
func (ps *parser) errorf(msg string) error {
	tok := ps.peek()
	if tok.Kind == EOF {
		return ps.errorAt(tok, msg)
	}
	return ps.errorAt(tok, unexpected(tok, msg))
}

func (ps *parser) expect(kind TokenKind) (Token, error) {
	if !ps.is(kind) {
		if kind == Identifier {
			return Token{}, ps.errorf(errShouldBeIdent)
		}
		return Token{}, ps.errorf(shouldBe(kind.String()))
	}
	return ps.next(), nil
}

// Sets the range of n to start at begin and end at the last consumed token.
func finish[N Node](ps *parser, n N, begin int) N {
	n.n().Ranging = diag.Ranging{From: begin, To: ps.prevEnd()}
	return n
}

func (ps *parser) program(p *Program) error {
	stmts, err := ps.statements(EOF)
	p.Stmts = stmts
	p.Ranging = diag.Ranging{From: 0, To: len(ps.src.Code)}
	return err
}

// Parses statements separated by EOLs, until the end token or EOF. The end
// token is not consumed.
func (ps *parser) statements(end TokenKind) ([]Stmt, error) {
	var stmts []Stmt
	ps.skipEOLs()
	for !ps.is(end, EOF) {
		stmt, err := ps.statement()
		if err != nil {
			return stmts, err
		}
		stmts = append(stmts, stmt)
		switch {
		case ps.is(EOL):
			ps.skipEOLs()
		case ps.is(end, EOF):
		default:
			if end == EOF {
				return stmts, ps.errorf(errShouldBeStmtEnd)
			}
			return stmts, ps.errorf(shouldBe("';'", "newline", end.String()))
		}
	}
	return stmts, nil
}

func (ps *parser) statement() (Stmt, error) {
	begin := ps.peek().From
	switch ps.peek().Kind {
	case Var:
		return ps.varDecl()
	case Fun:
		if ps.peekAt(1).Kind == Identifier {
			return ps.functionDecl()
		}
	case Class:
		if ps.peekAt(1).Kind == Identifier {
			return ps.classDecl()
		}
	case BreakKw:
		ps.next()
		value, err := ps.optionalValue()
		if err != nil {
			return nil, err
		}
		return finish(ps, &Break{Value: value}, begin), nil
	case ContinueKw:
		ps.next()
		return finish(ps, &Continue{}, begin), nil
	case ReturnKw:
		ps.next()
		value, err := ps.optionalValue()
		if err != nil {
			return nil, err
		}
		return finish(ps, &Return{Value: value}, begin), nil
	}
	expr, err := ps.expression()
	if err != nil {
		return nil, err
	}
	return finish(ps, &ExprStmt{Expr: expr}, begin), nil
}

// Parses the optional value of break and return, which is absent when the
// statement ends right after the keyword.
func (ps *parser) optionalValue() (Expr, error) {
	if ps.is(EOL, EOF, RBrace, Else) {
		return nil, nil
	}
	return ps.expression()
}

func (ps *parser) varDecl() (*VarDecl, error) {
	begin := ps.next().From
	name, err := ps.expect(Identifier)
	if err != nil {
		return nil, err
	}
	decl := &VarDecl{Name: name.Value}
	if ps.is(Assign) {
		ps.next()
		decl.Value, err = ps.expression()
		if err != nil {
			return nil, err
		}
	}
	return finish(ps, decl, begin), nil
}

func (ps *parser) functionDecl() (*FunctionDecl, error) {
	begin := ps.next().From
	name, err := ps.expect(Identifier)
	if err != nil {
		return nil, err
	}
	params, err := ps.params()
	if err != nil {
		return nil, err
	}
	body, err := ps.body()
	if err != nil {
		return nil, err
	}
	return finish(ps, &FunctionDecl{Name: name.Value, Params: params, Body: body}, begin), nil
}

func (ps *parser) params() ([]string, error) {
	if _, err := ps.expect(LParen); err != nil {
		return nil, err
	}
	var params []string
	ps.skipEOLs()
	for !ps.is(RParen) {
		name, err := ps.expect(Identifier)
		if err != nil {
			return nil, err
		}
		params = append(params, name.Value)
		ps.skipEOLs()
		if !ps.is(Comma) {
			break
		}
		ps.next()
		ps.skipEOLs()
	}
	if _, err := ps.expect(RParen); err != nil {
		return nil, err
	}
	return params, nil
}

func (ps *parser) classDecl() (*ClassDecl, error) {
	begin := ps.next().From
	name, err := ps.expect(Identifier)
	if err != nil {
		return nil, err
	}
	members, err := ps.classBody()
	if err != nil {
		return nil, err
	}
	return finish(ps, &ClassDecl{Name: name.Value, Members: members}, begin), nil
}

func (ps *parser) classBody() ([]*MemberDecl, error) {
	if _, err := ps.expect(LBrace); err != nil {
		return nil, err
	}
	var members []*MemberDecl
	ps.skipEOLs()
	for !ps.is(RBrace) {
		member, err := ps.member()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
		if !ps.is(EOL) {
			break
		}
		ps.skipEOLs()
	}
	if !ps.is(RBrace) {
		return nil, ps.errorf(shouldBe("';'", "newline", "'}'"))
	}
	ps.next()
	return members, nil
}

func (ps *parser) member() (*MemberDecl, error) {
	begin := ps.peek().From
	m := &MemberDecl{}
	if ps.is(Static) {
		ps.next()
		m.Static = true
	}
	var err error
	switch ps.peek().Kind {
	case Var:
		m.Var, err = ps.varDecl()
	case Fun:
		m.Fun, err = ps.functionDecl()
	default:
		return nil, ps.errorf(errShouldBeMember)
	}
	if err != nil {
		return nil, err
	}
	return finish(ps, m, begin), nil
}

// Parses the body of a function, loop or branch: a block, or a single
// statement that is wrapped in a block.
func (ps *parser) body() (*Block, error) {
	ps.skipEOLs()
	if ps.is(LBrace) {
		return ps.block()
	}
	begin := ps.peek().From
	stmt, err := ps.statement()
	if err != nil {
		return nil, err
	}
	return finish(ps, &Block{Stmts: []Stmt{stmt}}, begin), nil
}

func (ps *parser) block() (*Block, error) {
	begin := ps.next().From
	stmts, err := ps.statements(RBrace)
	if err != nil {
		return nil, err
	}
	if _, err := ps.expect(RBrace); err != nil {
		return nil, err
	}
	return finish(ps, &Block{Stmts: stmts}, begin), nil
}

func (ps *parser) expression() (Expr, error) {
	return ps.rangeExpr()
}

func (ps *parser) rangeExpr() (Expr, error) {
	begin := ps.peek().From
	var start Expr
	if !ps.is(DotDot, DotDotAssign) {
		var err error
		start, err = ps.orExpr()
		if err != nil || !ps.is(DotDot, DotDotAssign) {
			return start, err
		}
	}

	inclusive := ps.next().Kind == DotDotAssign
	r := &RangeExpr{Start: start, Inclusive: inclusive}
	if canStartExpr(ps.peek().Kind) {
		end, err := ps.orExpr()
		if err != nil {
			return nil, err
		}
		r.End = end
	} else if inclusive {
		return nil, ps.errorf(errInclusiveNeedsEnd)
	}
	if ps.is(DotDot, DotDotAssign) {
		return nil, ps.errorf(errChainedRange)
	}
	return finish(ps, r, begin), nil
}

func canStartExpr(k TokenKind) bool {
	switch k {
	case Identifier, Number, String, True, False, Null,
		LParen, LBracket, LBrace,
		If, For, While, Loop, Fun, Class, Try,
		Plus, Minus, Not:
		return true
	}
	return false
}

// Parses a left-associative binary tier.
func (ps *parser) binary(operand func() (Expr, error), ops ...TokenKind) (Expr, error) {
	begin := ps.peek().From
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for ps.is(ops...) {
		op := ps.next().Kind
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = finish(ps, &BinaryExpr{Op: op, Left: left, Right: right}, begin)
	}
	return left, nil
}

// Parses a non-associative binary tier.
func (ps *parser) comparison(operand func() (Expr, error), ops ...TokenKind) (Expr, error) {
	begin := ps.peek().From
	left, err := operand()
	if err != nil || !ps.is(ops...) {
		return left, err
	}
	op := ps.next().Kind
	right, err := operand()
	if err != nil {
		return nil, err
	}
	if ps.is(ops...) {
		return nil, ps.errorf(errChainedComparison)
	}
	return finish(ps, &BinaryExpr{Op: op, Left: left, Right: right}, begin), nil
}

func (ps *parser) orExpr() (Expr, error)     { return ps.binary(ps.andExpr, Or) }
func (ps *parser) andExpr() (Expr, error)    { return ps.binary(ps.bitOrExpr, And) }
func (ps *parser) bitOrExpr() (Expr, error)  { return ps.binary(ps.bitXorExpr, BitOr) }
func (ps *parser) bitXorExpr() (Expr, error) { return ps.binary(ps.bitAndExpr, BitXor) }
func (ps *parser) bitAndExpr() (Expr, error) { return ps.binary(ps.eqExpr, BitAnd) }

func (ps *parser) eqExpr() (Expr, error) {
	return ps.comparison(ps.relExpr, Equal, NotEqual)
}

func (ps *parser) relExpr() (Expr, error) {
	return ps.comparison(ps.shiftExpr,
		LessThan, GreaterThan, LessThanOrEqual, GreaterThanOrEqual)
}

func (ps *parser) shiftExpr() (Expr, error) { return ps.binary(ps.addExpr, ShiftLeft, ShiftRight) }
func (ps *parser) addExpr() (Expr, error)   { return ps.binary(ps.mulExpr, Plus, Minus) }

func (ps *parser) mulExpr() (Expr, error) {
	return ps.binary(ps.unaryExpr, Star, Slash, Rem, Backslash)
}

func (ps *parser) unaryExpr() (Expr, error) {
	if !ps.is(Plus, Minus, Not) {
		return ps.expExpr()
	}
	begin := ps.peek().From
	op := ps.next().Kind
	operand, err := ps.unaryExpr()
	if err != nil {
		return nil, err
	}
	return finish(ps, &UnaryExpr{Op: op, Operand: operand}, begin), nil
}

// The right operand of ** is a unary expression, which makes ** bind
// rightwards: a ** b ** c is a ** (b ** c).
func (ps *parser) expExpr() (Expr, error) {
	begin := ps.peek().From
	base, err := ps.assignExpr()
	if err != nil || !ps.is(Pow) {
		return base, err
	}
	ps.next()
	exp, err := ps.unaryExpr()
	if err != nil {
		return nil, err
	}
	return finish(ps, &BinaryExpr{Op: Pow, Left: base, Right: exp}, begin), nil
}

func (ps *parser) assignExpr() (Expr, error) {
	begin := ps.peek().From
	target, err := ps.postfixExpr()
	if err != nil || !ps.peek().Kind.IsAssignOp() {
		return target, err
	}
	switch target.(type) {
	case *Ident, *MemberExpr, *IndexExpr:
	default:
		return nil, ps.errorAt(target, errBadAssignmentTarget)
	}
	op := ps.next().Kind
	value, err := ps.expression()
	if err != nil {
		return nil, err
	}
	return finish(ps, &AssignExpr{Op: op, Target: target, Value: value}, begin), nil
}

func (ps *parser) postfixExpr() (Expr, error) {
	begin := ps.peek().From
	expr, err := ps.atom()
	if err != nil {
		return nil, err
	}
	for {
		switch ps.peek().Kind {
		case LParen:
			ps.next()
			args, err := ps.exprList(RParen)
			if err != nil {
				return nil, err
			}
			expr = finish(ps, &CallExpr{Callee: expr, Args: args}, begin)
		case Dot:
			ps.next()
			name, err := ps.expect(Identifier)
			if err != nil {
				return nil, err
			}
			expr = finish(ps, &MemberExpr{Object: expr, Name: name.Value}, begin)
		case LBracket:
			ps.next()
			ps.skipEOLs()
			index, err := ps.expression()
			if err != nil {
				return nil, err
			}
			ps.skipEOLs()
			if _, err := ps.expect(RBracket); err != nil {
				return nil, err
			}
			expr = finish(ps, &IndexExpr{Object: expr, Index: index}, begin)
		default:
			return expr, nil
		}
	}
}

// Parses comma-separated expressions up to and including the closing token,
// after the opening token has been consumed. Line breaks and a trailing comma
// are allowed.
func (ps *parser) exprList(closing TokenKind) ([]Expr, error) {
	var exprs []Expr
	ps.skipEOLs()
	for !ps.is(closing) {
		expr, err := ps.expression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		ps.skipEOLs()
		if !ps.is(Comma) {
			break
		}
		ps.next()
		ps.skipEOLs()
	}
	if !ps.is(closing) {
		return nil, ps.errorf(shouldBe("','", closing.String()))
	}
	ps.next()
	return exprs, nil
}

func (ps *parser) atom() (Expr, error) {
	tok := ps.peek()
	begin := tok.From
	switch tok.Kind {
	case Number:
		ps.next()
		return finish(ps, &NumberLit{Value: parseNumber(tok.Value)}, begin), nil
	case String:
		ps.next()
		return finish(ps, &StringLit{Value: tok.Value}, begin), nil
	case True, False:
		ps.next()
		return finish(ps, &BoolLit{Value: tok.Kind == True}, begin), nil
	case Null:
		ps.next()
		return finish(ps, &NullLit{}, begin), nil
	case Identifier:
		ps.next()
		return finish(ps, &Ident{Name: tok.Value}, begin), nil
	case LParen:
		return ps.parenthesized()
	case LBracket:
		ps.next()
		elems, err := ps.exprList(RBracket)
		if err != nil {
			return nil, err
		}
		return finish(ps, &ListLit{Elems: elems}, begin), nil
	case LBrace:
		return ps.block()
	case If:
		return ps.ifExpr()
	case For:
		return ps.forExpr()
	case While:
		return ps.whileExpr()
	case Loop:
		ps.next()
		body, err := ps.body()
		if err != nil {
			return nil, err
		}
		return finish(ps, &LoopExpr{Body: body}, begin), nil
	case Fun:
		ps.next()
		params, err := ps.params()
		if err != nil {
			return nil, err
		}
		body, err := ps.body()
		if err != nil {
			return nil, err
		}
		return finish(ps, &FunExpr{Params: params, Body: body}, begin), nil
	case Class:
		ps.next()
		members, err := ps.classBody()
		if err != nil {
			return nil, err
		}
		return finish(ps, &ClassExpr{Members: members}, begin), nil
	case Try:
		return ps.tryExpr()
	}
	return nil, ps.errorf(errShouldBeExpr)
}

// Parses the text of a number token. Integers that overflow become floats.
func parseNumber(text string) any {
	if !strings.Contains(text, ".") {
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	f, _ := strconv.ParseFloat(text, 64)
	return f
}

// Parses "(" expression ")".
func (ps *parser) parenthesized() (Expr, error) {
	if _, err := ps.expect(LParen); err != nil {
		return nil, err
	}
	ps.skipEOLs()
	expr, err := ps.expression()
	if err != nil {
		return nil, err
	}
	ps.skipEOLs()
	if _, err := ps.expect(RParen); err != nil {
		return nil, err
	}
	return expr, nil
}

func (ps *parser) ifExpr() (Expr, error) {
	begin := ps.next().From
	cond, err := ps.parenthesized()
	if err != nil {
		return nil, err
	}
	then, err := ps.body()
	if err != nil {
		return nil, err
	}
	n := &IfExpr{Cond: cond, Then: then}

	// "else" may be on a later line.
	saved := ps.pos
	ps.skipEOLs()
	if ps.is(Else) {
		ps.next()
		n.Else, err = ps.body()
		if err != nil {
			return nil, err
		}
	} else {
		ps.pos = saved
	}
	return finish(ps, n, begin), nil
}

func (ps *parser) forExpr() (Expr, error) {
	begin := ps.next().From
	if _, err := ps.expect(LParen); err != nil {
		return nil, err
	}
	name, err := ps.expect(Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := ps.expect(In); err != nil {
		return nil, err
	}
	iter, err := ps.expression()
	if err != nil {
		return nil, err
	}
	if _, err := ps.expect(RParen); err != nil {
		return nil, err
	}
	body, err := ps.body()
	if err != nil {
		return nil, err
	}
	return finish(ps, &ForExpr{Var: name.Value, Iter: iter, Body: body}, begin), nil
}

func (ps *parser) whileExpr() (Expr, error) {
	begin := ps.next().From
	cond, err := ps.parenthesized()
	if err != nil {
		return nil, err
	}
	body, err := ps.body()
	if err != nil {
		return nil, err
	}
	return finish(ps, &WhileExpr{Cond: cond, Body: body}, begin), nil
}

func (ps *parser) tryExpr() (Expr, error) {
	begin := ps.next().From
	ps.skipEOLs()
	if !ps.is(LBrace) {
		return nil, ps.errorf(shouldBe("'{'"))
	}
	body, err := ps.block()
	if err != nil {
		return nil, err
	}
	ps.skipEOLs()
	if _, err := ps.expect(Catch); err != nil {
		return nil, err
	}
	if _, err := ps.expect(LParen); err != nil {
		return nil, err
	}
	name, err := ps.expect(Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := ps.expect(RParen); err != nil {
		return nil, err
	}
	ps.skipEOLs()
	if !ps.is(LBrace) {
		return nil, ps.errorf(shouldBe("'{'"))
	}
	catch, err := ps.block()
	if err != nil {
		return nil, err
	}
	return finish(ps, &TryExpr{Body: body, ErrName: name.Value, Catch: catch}, begin), nil
}
