package lsp

import (
	lsp "github.com/sourcegraph/go-lsp"

	"github.com/RubixDev/Roost/pkg/diag"
)

// LSP positions count lines and UTF-16 code units, while ranges of the parse
// package are byte offsets.

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Calls f with each byte index of a rune in s and its position, and finally
// with len(s) and the end position. Stops early if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	afterCR := false
	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\n' && afterCR:
			// Second half of \r\n.
		case r == '\r' || r == '\n':
			p.Line++
			p.Character = 0
		case r > 0xFFFF:
			// Surrogate pair.
			p.Character += 2
		default:
			p.Character++
		}
		afterCR = r == '\r'
	}
	f(len(s), p)
}
