package parse

import (
	"strings"
	"testing"

	"github.com/RubixDev/Roost/pkg/testutil"
)

var parseTests = []struct {
	name string
	code string
	want string
}{
	{
		name: "variable declaration",
		code: "var x = 5",
		want: `
			Program
			  Stmts[0]: VarDecl Name="x"
			    Value: NumberLit Value=5
			`,
	},
	{
		name: "multiplicative binds tighter than additive",
		code: "1 + 2 * 3",
		want: `
			Program
			  Stmts[0]: ExprStmt
			    Expr: BinaryExpr Op=+
			      Left: NumberLit Value=1
			      Right: BinaryExpr Op=*
			        Left: NumberLit Value=2
			        Right: NumberLit Value=3
			`,
	},
	{
		name: "additive is left-associative",
		code: "1 - 2 - 3",
		want: `
			Program
			  Stmts[0]: ExprStmt
			    Expr: BinaryExpr Op=-
			      Left: BinaryExpr Op=-
			        Left: NumberLit Value=1
			        Right: NumberLit Value=2
			      Right: NumberLit Value=3
			`,
	},
	{
		name: "exponent binds tighter than unary minus and to the right",
		code: "-2 ** 3 ** 2",
		want: `
			Program
			  Stmts[0]: ExprStmt
			    Expr: UnaryExpr Op=-
			      Operand: BinaryExpr Op=**
			        Left: NumberLit Value=2
			        Right: BinaryExpr Op=**
			          Left: NumberLit Value=3
			          Right: NumberLit Value=2
			`,
	},
	{
		name: "assignment is right-associative and takes a range",
		code: "a = b += 1..=5",
		want: `
			Program
			  Stmts[0]: ExprStmt
			    Expr: AssignExpr Op==
			      Target: Ident Name="a"
			      Value: AssignExpr Op=+=
			        Target: Ident Name="b"
			        Value: RangeExpr Inclusive=true
			          Start: NumberLit Value=1
			          End: NumberLit Value=5
			`,
	},
	{
		name: "open ranges",
		code: "x[..]; x[2..]; ..=3",
		want: `
			Program
			  Stmts[0]: ExprStmt
			    Expr: IndexExpr
			      Object: Ident Name="x"
			      Index: RangeExpr Inclusive=false
			  Stmts[1]: ExprStmt
			    Expr: IndexExpr
			      Object: Ident Name="x"
			      Index: RangeExpr Inclusive=false
			        Start: NumberLit Value=2
			  Stmts[2]: ExprStmt
			    Expr: RangeExpr Inclusive=true
			      End: NumberLit Value=3
			`,
	},
	{
		name: "postfix chain",
		code: "foo.bar(1,\n 2,)[0]",
		want: `
			Program
			  Stmts[0]: ExprStmt
			    Expr: IndexExpr
			      Object: CallExpr
			        Callee: MemberExpr Name="bar"
			          Object: Ident Name="foo"
			        Args[0]: NumberLit Value=1
			        Args[1]: NumberLit Value=2
			      Index: NumberLit Value=0
			`,
	},
	{
		name: "if with else on the next line",
		code: "if (a) b\nelse { c }",
		want: `
			Program
			  Stmts[0]: ExprStmt
			    Expr: IfExpr
			      Cond: Ident Name="a"
			      Then: Block
			        Stmts[0]: ExprStmt
			          Expr: Ident Name="b"
			      Else: Block
			        Stmts[0]: ExprStmt
			          Expr: Ident Name="c"
			`,
	},
	{
		name: "function declaration with single-statement body",
		code: "fun add(a, b) return a + b",
		want: `
			Program
			  Stmts[0]: FunctionDecl Name="add" Params=[a b]
			    Body: Block
			      Stmts[0]: Return
			        Value: BinaryExpr Op=+
			          Left: Ident Name="a"
			          Right: Ident Name="b"
			`,
	},
	{
		name: "anonymous function and bare return",
		code: "var f = fun () { return }",
		want: `
			Program
			  Stmts[0]: VarDecl Name="f"
			    Value: FunExpr Params=[]
			      Body: Block
			        Stmts[0]: Return
			`,
	},
	{
		name: "class with static and instance members",
		code: "class A {\n  static var n = 0\n  fun f() this\n}",
		want: `
			Program
			  Stmts[0]: ClassDecl Name="A"
			    Members[0]: MemberDecl Static=true
			      Var: VarDecl Name="n"
			        Value: NumberLit Value=0
			    Members[1]: MemberDecl Static=false
			      Fun: FunctionDecl Name="f" Params=[]
			        Body: Block
			          Stmts[0]: ExprStmt
			            Expr: Ident Name="this"
			`,
	},
	{
		name: "loops",
		code: "for (i in 0..3) continue\nwhile (true) loop { break 1 }",
		want: `
			Program
			  Stmts[0]: ExprStmt
			    Expr: ForExpr Var="i"
			      Iter: RangeExpr Inclusive=false
			        Start: NumberLit Value=0
			        End: NumberLit Value=3
			      Body: Block
			        Stmts[0]: Continue
			  Stmts[1]: ExprStmt
			    Expr: WhileExpr
			      Cond: BoolLit Value=true
			      Body: Block
			        Stmts[0]: ExprStmt
			          Expr: LoopExpr
			            Body: Block
			              Stmts[0]: Break
			                Value: NumberLit Value=1
			`,
	},
	{
		name: "try and catch",
		code: "try {\n  throw('x')\n} catch (e) { e }",
		want: `
			Program
			  Stmts[0]: ExprStmt
			    Expr: TryExpr ErrName="e"
			      Body: Block
			        Stmts[0]: ExprStmt
			          Expr: CallExpr
			            Callee: Ident Name="throw"
			            Args[0]: StringLit Value="x"
			      Catch: Block
			        Stmts[0]: ExprStmt
			          Expr: Ident Name="e"
			`,
	},
	{
		name: "list literal, null and float",
		code: "[null, 1.5, 'a']",
		want: `
			Program
			  Stmts[0]: ExprStmt
			    Expr: ListLit
			      Elems[0]: NullLit
			      Elems[1]: NumberLit Value=1.5
			      Elems[2]: StringLit Value="a"
			`,
	},
	{
		name: "empty lines and comments around statements",
		code: "\n\n// c\na;;\n\nb\n",
		want: `
			Program
			  Stmts[0]: ExprStmt
			    Expr: Ident Name="a"
			  Stmts[1]: ExprStmt
			    Expr: Ident Name="b"
			`,
	},
}

func TestParse(t *testing.T) {
	for _, test := range parseTests {
		t.Run(test.name, func(t *testing.T) {
			tree, err := Parse(SourceForTest(test.code))
			if err != nil {
				t.Fatalf("Parse(%q) returns error: %v", test.code, err)
			}
			var sb strings.Builder
			PPrintAST(tree.Root, &sb)
			if want := testutil.Dedent(test.want); sb.String() != want {
				t.Errorf("Parse(%q) returns AST:\n%s\nwant:\n%s", test.code, sb.String(), want)
			}
		})
	}
}

func TestParse_IsDeterministic(t *testing.T) {
	for _, test := range parseTests {
		var first, second strings.Builder
		tree1, _ := Parse(SourceForTest(test.code))
		tree2, _ := Parse(SourceForTest(test.code))
		PPrintAST(tree1.Root, &first)
		PPrintAST(tree2.Root, &second)
		if first.String() != second.String() {
			t.Errorf("Parse(%q) is not deterministic", test.code)
		}
	}
}

func TestParse_NodeRanges(t *testing.T) {
	code := "var x = foo(1) + 2"
	tree, _ := Parse(SourceForTest(code))
	decl := tree.Root.Stmts[0].(*VarDecl)
	if got := code[decl.From:decl.To]; got != code {
		t.Errorf("VarDecl covers %q", got)
	}
	bin := decl.Value.(*BinaryExpr)
	if got := code[bin.Left.Range().From:bin.Left.Range().To]; got != "foo(1)" {
		t.Errorf("left operand covers %q", got)
	}
}

func TestParse_ReturnsTreeContainingSourceFromArgument(t *testing.T) {
	src := SourceForTest("a")
	tree, _ := Parse(src)
	if tree.Source != src {
		t.Errorf("tree.Source = %v, want %v", tree.Source, src)
	}
}

var parseErrorTests = []struct {
	name         string
	code         string
	wantErrPart  string
	wantErrAtEnd bool
	wantErrMsg   string
}{
	{
		name:         "missing variable name",
		code:         "var",
		wantErrAtEnd: true,
		wantErrMsg:   "should be identifier",
	},
	{
		name:         "unclosed paren",
		code:         "(1 + 2",
		wantErrAtEnd: true,
		wantErrMsg:   "should be ')'",
	},
	{
		name:         "unclosed block",
		code:         "{ a",
		wantErrAtEnd: true,
		wantErrMsg:   "should be '}'",
	},
	{
		name:         "unclosed function body",
		code:         "fun f() {\n  return 1\n",
		wantErrAtEnd: true,
		wantErrMsg:   "should be '}'",
	},
	{
		name:         "missing operand",
		code:         "1 +",
		wantErrAtEnd: true,
		wantErrMsg:   "should be expression",
	},
	{
		name:        "chained comparison",
		code:        "1 < 2 < 3",
		wantErrPart: "<",
		wantErrMsg:  "unexpected '<', comparison operators cannot be chained; use parentheses",
	},
	{
		name:        "chained range",
		code:        "1..2..3",
		wantErrPart: "..",
		wantErrMsg:  "unexpected '..', ranges cannot be chained; use parentheses",
	},
	{
		name:        "inclusive range without end",
		code:        "x[1..=]",
		wantErrPart: "]",
		wantErrMsg:  "unexpected ']', inclusive range needs an end",
	},
	{
		name:        "bad assignment target",
		code:        "1 = 2",
		wantErrPart: "1",
		wantErrMsg:  "cannot assign to this expression",
	},
	{
		name:        "two expressions on one line",
		code:        "a b",
		wantErrPart: "b",
		wantErrMsg:  "unexpected identifier, should be ';' or newline",
	},
	{
		name:        "bad class member",
		code:        "class A { x }",
		wantErrPart: "x",
		wantErrMsg:  "unexpected identifier, should be 'var' or 'fun'",
	},
	{
		name:        "catch without parens",
		code:        "try { } catch e { }",
		wantErrPart: "e",
		wantErrMsg:  "unexpected identifier, should be '('",
	},
	{
		name:        "static outside class",
		code:        "static var x",
		wantErrPart: "static",
		wantErrMsg:  "unexpected 'static', should be expression",
	},
}

func TestParse_Errors(t *testing.T) {
	for _, test := range parseErrorTests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(SourceForTest(test.code))
			parseError, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("Parse(%q) returns %v, want *ParseError", test.code, err)
			}
			r := parseError.Context

			if errPart := test.code[r.From:r.To]; errPart != test.wantErrPart {
				t.Errorf("Parse(%q) returns error with part %q, want %q",
					test.code, errPart, test.wantErrPart)
			}
			if atEnd := r.From == len(test.code); atEnd != test.wantErrAtEnd {
				t.Errorf("Parse(%q) returns error at end = %v, want %v",
					test.code, atEnd, test.wantErrAtEnd)
			}
			if parseError.Partial != test.wantErrAtEnd {
				t.Errorf("Parse(%q) returns error with Partial = %v",
					test.code, parseError.Partial)
			}
			if errMsg := parseError.Message; errMsg != test.wantErrMsg {
				t.Errorf("Parse(%q) returns error with message %q, want %q",
					test.code, errMsg, test.wantErrMsg)
			}
		})
	}
}

func TestParse_LexErrorsArePassedThrough(t *testing.T) {
	_, err := Parse(SourceForTest(`print("abc`))
	if _, ok := err.(*LexError); !ok || !IsPartial(err) {
		t.Errorf("got %v, want partial *LexError", err)
	}
}
