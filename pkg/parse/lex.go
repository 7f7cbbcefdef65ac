package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/RubixDev/Roost/pkg/diag"
)

// LexError is an error found while turning source code into tokens.
type LexError = diag.Error[LexErrorTag]

// LexErrorTag parameterizes [diag.Error] to define [LexError].
type LexErrorTag struct{}

func (LexErrorTag) ErrorTag() string { return "lex error" }

// Lex turns the source code into a slice of tokens, always terminated by an
// EOF token if the error is nil. When the error is not nil, it has type
// *LexError, and the returned slice contains the tokens lexed before the
// error.
func Lex(src Source) ([]Token, error) {
	lx := &lexer{src: src}
	for {
		tok, err := lx.next()
		if err != nil {
			return lx.tokens, err
		}
		lx.tokens = append(lx.tokens, tok)
		if tok.Kind == EOF {
			return lx.tokens, nil
		}
	}
}

type lexer struct {
	src    Source
	pos    int
	tokens []Token
}

// Operators, longest first so that the first match is the longest match.
var operators = []struct {
	text string
	kind TokenKind
}{
	{"..=", DotDotAssign},
	{"<<=", ShiftLeftAssign},
	{">>=", ShiftRightAssign},
	{"**=", PowAssign},

	{"..", DotDot},
	{"||", Or},
	{"&&", And},
	{"==", Equal},
	{"!=", NotEqual},
	{"<=", LessThanOrEqual},
	{">=", GreaterThanOrEqual},
	{"<<", ShiftLeft},
	{">>", ShiftRight},
	{"**", Pow},
	{"*=", StarAssign},
	{"/=", SlashAssign},
	{`\=`, BackslashAssign},
	{"%=", RemAssign},
	{"+=", PlusAssign},
	{"-=", MinusAssign},
	{"&=", BitAndAssign},
	{"^=", BitXorAssign},
	{"|=", BitOrAssign},

	{"(", LParen},
	{")", RParen},
	{"{", LBrace},
	{"}", RBrace},
	{"[", LBracket},
	{"]", RBracket},
	{",", Comma},
	{".", Dot},
	{"|", BitOr},
	{"^", BitXor},
	{"&", BitAnd},
	{"<", LessThan},
	{">", GreaterThan},
	{"+", Plus},
	{"-", Minus},
	{"*", Star},
	{"/", Slash},
	{"%", Rem},
	{`\`, Backslash},
	{"!", Not},
	{"=", Assign},
}

func (lx *lexer) rest() string { return lx.src.Code[lx.pos:] }

func (lx *lexer) errorf(from, to int, partial bool, format string, args ...any) error {
	return &LexError{
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(lx.src.Name, lx.src.Code, diag.Ranging{From: from, To: to}),
		Partial: partial,
	}
}

func (lx *lexer) token(kind TokenKind, value string, begin int) Token {
	return Token{kind, value, diag.Ranging{From: begin, To: lx.pos}}
}

func (lx *lexer) next() (Token, error) {
	if err := lx.skipSpacesAndComments(); err != nil {
		return Token{}, err
	}
	begin := lx.pos
	rest := lx.rest()
	if rest == "" {
		return lx.token(EOF, "", begin), nil
	}

	r, size := utf8.DecodeRuneInString(rest)
	switch {
	case r == '\n' || r == ';':
		lx.pos++
		return lx.token(EOL, "", begin), nil
	case isDigit(r) || (r == '.' && len(rest) > 1 && isDigit(rune(rest[1]))):
		return lx.number(), nil
	case r == '"' || r == '\'':
		return lx.stringLit()
	case isIdentStart(r):
		return lx.identifier(), nil
	}

	for _, op := range operators {
		if strings.HasPrefix(rest, op.text) {
			lx.pos += len(op.text)
			return lx.token(op.kind, "", begin), nil
		}
	}
	return Token{}, lx.errorf(begin, begin+size, false, "unexpected character %q", r)
}

func (lx *lexer) skipSpacesAndComments() error {
	for {
		rest := lx.rest()
		switch {
		case rest == "":
			return nil
		case rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\r':
			lx.pos++
		case strings.HasPrefix(rest, "//"):
			if i := strings.IndexByte(rest, '\n'); i == -1 {
				lx.pos = len(lx.src.Code)
			} else {
				// The newline itself is left to become an EOL token.
				lx.pos += i
			}
		case strings.HasPrefix(rest, "/|"):
			i := strings.Index(rest[2:], "|/")
			if i == -1 {
				return lx.errorf(lx.pos, len(lx.src.Code), true, "unterminated block comment")
			}
			lx.pos += 2 + i + 2
		default:
			return nil
		}
	}
}

func (lx *lexer) number() Token {
	begin := lx.pos
	var sb strings.Builder
	digits := func() {
		for lx.pos < len(lx.src.Code) {
			c := lx.src.Code[lx.pos]
			if c == '_' {
				lx.pos++
			} else if isDigit(rune(c)) {
				sb.WriteByte(c)
				lx.pos++
			} else {
				return
			}
		}
	}

	digits()
	rest := lx.rest()
	if len(rest) > 1 && rest[0] == '.' && isDigit(rune(rest[1])) {
		if sb.Len() == 0 {
			sb.WriteByte('0')
		}
		sb.WriteByte('.')
		lx.pos++
		digits()
	}
	return lx.token(Number, sb.String(), begin)
}

func (lx *lexer) identifier() Token {
	begin := lx.pos
	for lx.pos < len(lx.src.Code) {
		r, size := utf8.DecodeRuneInString(lx.rest())
		if !isIdentStart(r) && !isDigit(r) {
			break
		}
		lx.pos += size
	}
	name := lx.src.Code[begin:lx.pos]
	if kind, ok := keywords[name]; ok {
		return lx.token(kind, "", begin)
	}
	return lx.token(Identifier, name, begin)
}

func (lx *lexer) stringLit() (Token, error) {
	begin := lx.pos
	quote := lx.src.Code[lx.pos]
	lx.pos++
	var sb strings.Builder
	for {
		rest := lx.rest()
		if rest == "" {
			return Token{}, lx.errorf(begin, lx.pos, true, "unterminated string")
		}
		r, size := utf8.DecodeRuneInString(rest)
		switch {
		case r == rune(quote):
			lx.pos += size
			return lx.token(String, sb.String(), begin), nil
		case r == '\\':
			if err := lx.escape(&sb); err != nil {
				return Token{}, err
			}
		default:
			sb.WriteRune(r)
			lx.pos += size
		}
	}
}

var simpleEscapes = map[byte]rune{
	'\\': '\\', '\'': '\'', '"': '"',
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
}

// Decodes one escape sequence starting with the backslash at the current
// position.
func (lx *lexer) escape(sb *strings.Builder) error {
	begin := lx.pos
	rest := lx.rest()
	if len(rest) < 2 {
		lx.pos = len(lx.src.Code)
		return lx.errorf(begin, lx.pos, true, "unterminated string")
	}
	c := rest[1]
	if r, ok := simpleEscapes[c]; ok {
		sb.WriteRune(r)
		lx.pos += 2
		return nil
	}

	var digits, base int
	switch {
	case '0' <= c && c <= '7':
		digits, base = 3, 8
	case c == 'x':
		digits, base = 2, 16
	case c == 'u':
		digits, base = 4, 16
	case c == 'U':
		digits, base = 8, 16
	default:
		_, size := utf8.DecodeRuneInString(rest[1:])
		return lx.errorf(begin, begin+1+size, false, "invalid escape sequence %q", rest[:1+size])
	}

	start := 2
	if base == 8 {
		start = 1
	}
	end := start + digits
	if len(rest) < end {
		if allDigitsOfBase(rest[start:], base) {
			return lx.errorf(begin, len(lx.src.Code), true, "unterminated string")
		}
		return lx.errorf(begin, len(lx.src.Code), false, "invalid escape sequence %q", rest)
	}
	n, err := strconv.ParseUint(rest[start:end], base, 32)
	if err != nil {
		return lx.errorf(begin, begin+end, false, "invalid escape sequence %q", rest[:end])
	}
	if base == 8 && n > 0377 {
		return lx.errorf(begin, begin+end, false, "octal escape %q out of range", rest[:end])
	}
	// \xHH and octal escapes stand for code points up to 0xff (Latin-1).
	if !utf8.ValidRune(rune(n)) {
		return lx.errorf(begin, begin+end, false, "invalid code point in %q", rest[:end])
	}
	sb.WriteRune(rune(n))
	lx.pos += end
	return nil
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func allDigitsOfBase(s string, base int) bool {
	for _, r := range s {
		if _, err := strconv.ParseUint(string(r), base, 8); err != nil {
			return false
		}
	}
	return true
}
