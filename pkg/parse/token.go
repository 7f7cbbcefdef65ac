package parse

import (
	"fmt"

	"github.com/RubixDev/Roost/pkg/diag"
)

// TokenKind identifies the kind of a Token.
type TokenKind int

// Token kinds.
const (
	EOF TokenKind = iota
	EOL

	Identifier
	Number
	String

	// Keywords.
	Var
	True
	False
	Null
	If
	Else
	Fun
	Static
	Loop
	While
	For
	Class
	In
	ReturnKw
	BreakKw
	ContinueKw
	Try
	Catch

	// Punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
	DotDot
	DotDotAssign

	// Operators.
	Or
	And
	BitOr
	BitXor
	BitAnd
	Equal
	NotEqual
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
	ShiftLeft
	ShiftRight
	Plus
	Minus
	Star
	Slash
	Rem
	Backslash
	Pow
	Not

	// Assignment operators.
	Assign
	StarAssign
	SlashAssign
	BackslashAssign
	RemAssign
	PlusAssign
	MinusAssign
	ShiftLeftAssign
	ShiftRightAssign
	BitAndAssign
	BitXorAssign
	BitOrAssign
	PowAssign
)

var tokenKindNames = [...]string{
	EOF:        "end of input",
	EOL:        "end of line",
	Identifier: "identifier",
	Number:     "number",
	String:     "string",

	Var:        "'var'",
	True:       "'true'",
	False:      "'false'",
	Null:       "'null'",
	If:         "'if'",
	Else:       "'else'",
	Fun:        "'fun'",
	Static:     "'static'",
	Loop:       "'loop'",
	While:      "'while'",
	For:        "'for'",
	Class:      "'class'",
	In:         "'in'",
	ReturnKw:   "'return'",
	BreakKw:    "'break'",
	ContinueKw: "'continue'",
	Try:        "'try'",
	Catch:      "'catch'",

	LParen:       "'('",
	RParen:       "')'",
	LBrace:       "'{'",
	RBrace:       "'}'",
	LBracket:     "'['",
	RBracket:     "']'",
	Comma:        "','",
	Dot:          "'.'",
	DotDot:       "'..'",
	DotDotAssign: "'..='",

	Or:                 "'||'",
	And:                "'&&'",
	BitOr:              "'|'",
	BitXor:             "'^'",
	BitAnd:             "'&'",
	Equal:              "'=='",
	NotEqual:           "'!='",
	LessThan:           "'<'",
	GreaterThan:        "'>'",
	LessThanOrEqual:    "'<='",
	GreaterThanOrEqual: "'>='",
	ShiftLeft:          "'<<'",
	ShiftRight:         "'>>'",
	Plus:               "'+'",
	Minus:              "'-'",
	Star:               "'*'",
	Slash:              "'/'",
	Rem:                "'%'",
	Backslash:          "'\\'",
	Pow:                "'**'",
	Not:                "'!'",

	Assign:           "'='",
	StarAssign:       "'*='",
	SlashAssign:      "'/='",
	BackslashAssign:  "'\\='",
	RemAssign:        "'%='",
	PlusAssign:       "'+='",
	MinusAssign:      "'-='",
	ShiftLeftAssign:  "'<<='",
	ShiftRightAssign: "'>>='",
	BitAndAssign:     "'&='",
	BitXorAssign:     "'^='",
	BitOrAssign:      "'|='",
	PowAssign:        "'**='",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenKindNames) && tokenKindNames[k] != "" {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Symbol returns the source text of keyword and operator kinds, and an empty
// string for other kinds.
func (k TokenKind) Symbol() string {
	if k < Var {
		return ""
	}
	s := k.String()
	return s[1 : len(s)-1]
}

// IsAssignOp reports whether the kind is "=" or a compound assignment
// operator.
func (k TokenKind) IsAssignOp() bool {
	return k >= Assign && k <= PowAssign
}

// BinaryOpOf returns the binary operator that a compound assignment operator
// applies before assigning. It returns (0, false) for plain "=" and for kinds
// that are not assignment operators.
func (k TokenKind) BinaryOpOf() (TokenKind, bool) {
	op, ok := compoundOps[k]
	return op, ok
}

var compoundOps = map[TokenKind]TokenKind{
	StarAssign:       Star,
	SlashAssign:      Slash,
	BackslashAssign:  Backslash,
	RemAssign:        Rem,
	PlusAssign:       Plus,
	MinusAssign:      Minus,
	ShiftLeftAssign:  ShiftLeft,
	ShiftRightAssign: ShiftRight,
	BitAndAssign:     BitAnd,
	BitXorAssign:     BitXor,
	BitOrAssign:      BitOr,
	PowAssign:        Pow,
}

var keywords = map[string]TokenKind{
	"var":      Var,
	"true":     True,
	"false":    False,
	"null":     Null,
	"if":       If,
	"else":     Else,
	"fun":      Fun,
	"static":   Static,
	"loop":     Loop,
	"while":    While,
	"for":      For,
	"class":    Class,
	"in":       In,
	"return":   ReturnKw,
	"break":    BreakKw,
	"continue": ContinueKw,
	"try":      Try,
	"catch":    Catch,
}

// Keywords returns all keywords of the language, in no particular order.
func Keywords() []string {
	names := make([]string, 0, len(keywords))
	for name := range keywords {
		names = append(names, name)
	}
	return names
}

// Token is a lexical unit.
type Token struct {
	Kind TokenKind
	// Identifier name, number text with digit separators removed, or decoded
	// string contents. Empty for other kinds.
	Value string
	diag.Ranging
}

func (t Token) String() string {
	if t.Value != "" {
		return fmt.Sprintf("%v %q %d-%d", t.Kind, t.Value, t.From, t.To)
	}
	return fmt.Sprintf("%v %d-%d", t.Kind, t.From, t.To)
}
