// Package parse implements the lexer and parser of Roost.
//
// Parsing is done in two passes: [Lex] turns the source into tokens, and a
// recursive-descent parser turns the tokens into a syntax tree made of the
// *Node types in this package. Parsing stops at the first error.
package parse

import (
	"fmt"
	"strings"

	"github.com/RubixDev/Roost/pkg/diag"
)

// Tree represents a parsed tree.
type Tree struct {
	Root   *Program
	Source Source
}

// ParseError is an error found while building the syntax tree.
type ParseError = diag.Error[ParseErrorTag]

// ParseErrorTag parameterizes [diag.Error] to define [ParseError].
type ParseErrorTag struct{}

func (ParseErrorTag) ErrorTag() string { return "parse error" }

// Parse lexes and parses the given source. The returned error, if not nil,
// has type *LexError or *ParseError; the tree is only meaningful when the
// error is nil.
func Parse(src Source) (Tree, error) {
	tree := Tree{&Program{}, src}
	tokens, err := Lex(src)
	if err != nil {
		return tree, err
	}
	ps := &parser{src: src, tokens: tokens}
	err = ps.program(tree.Root)
	return tree, err
}

// IsPartial reports whether err is a lex or parse error that may go away if
// more input is appended to the source.
func IsPartial(err error) bool {
	switch err := err.(type) {
	case *LexError:
		return err.Partial
	case *ParseError:
		return err.Partial
	}
	return false
}

// Errors.
var (
	errShouldBeExpr        = shouldBe("expression")
	errShouldBeIdent       = shouldBe("identifier")
	errShouldBeStmtEnd     = shouldBe("';'", "newline")
	errShouldBeMember      = shouldBe("'var'", "'fun'")
	errInclusiveNeedsEnd   = "inclusive range needs an end"
	errChainedRange        = "ranges cannot be chained; use parentheses"
	errChainedComparison   = "comparison operators cannot be chained; use parentheses"
	errBadAssignmentTarget = "cannot assign to this expression"
)

// Builds an error message of the form "should be A, B or C".
func shouldBe(options ...string) string {
	var sb strings.Builder
	sb.WriteString("should be ")
	for i, opt := range options {
		if i > 0 {
			if i == len(options)-1 {
				sb.WriteString(" or ")
			} else {
				sb.WriteString(", ")
			}
		}
		sb.WriteString(opt)
	}
	return sb.String()
}

func unexpected(tok Token, msg string) string {
	return fmt.Sprintf("unexpected %v, %s", tok.Kind, msg)
}
