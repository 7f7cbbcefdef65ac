package edit

import (
	"sort"
	"strings"
	"unicode"
)

// Completes the identifier before the cursor. A unique candidate is inserted
// in full; otherwise the longest common prefix is inserted, and when that adds
// nothing the candidates are listed below the line.
func (ed *Editor) completeWord(st *lineState) {
	if ed.cfg.Completer == nil {
		return
	}
	begin := st.dot
	for begin > 0 && isIdentRune(st.buf[begin-1]) {
		begin--
	}
	prefix := string(st.buf[begin:st.dot])
	cands := filterCandidates(ed.cfg.Completer(prefix), prefix)
	if len(cands) == 0 {
		return
	}
	if common := commonPrefix(cands); len(common) > len(prefix) {
		st.insert(common[len(prefix):])
		return
	}
	if len(cands) > 1 {
		ed.finish(st)
		ed.write(strings.Join(cands, "  ") + "\r\n")
	}
}

// Returns the sorted, deduplicated words that start with prefix.
func filterCandidates(words []string, prefix string) []string {
	var cands []string
	seen := make(map[string]bool)
	for _, w := range words {
		if strings.HasPrefix(w, prefix) && !seen[w] {
			seen[w] = true
			cands = append(cands, w)
		}
	}
	sort.Strings(cands)
	return cands
}

func commonPrefix(words []string) string {
	common := words[0]
	for _, w := range words[1:] {
		i := 0
		for i < len(common) && i < len(w) && common[i] == w[i] {
			i++
		}
		common = common[:i]
	}
	return common
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
