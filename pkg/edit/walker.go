package edit

import (
	"errors"
	"strings"

	"github.com/RubixDev/Roost/pkg/store"
)

var errEndOfHistory = errors.New("end of history")

// Walks through history entries starting with a prefix, newest first, skipping
// duplicates.
type walker struct {
	history History
	prefix  string

	// Entries found so far.
	stack []string
	// Number of entries of the stack that have been walked past. The current
	// entry is stack[top-1]; 0 means the walk has not started.
	top     int
	inStack map[string]bool
	// Upper bound (exclusive) of sequence numbers of entries not yet fetched.
	upper int
}

func newWalker(h History, prefix string) (*walker, error) {
	upper, err := h.NextCmdSeq()
	if err != nil {
		return nil, err
	}
	return &walker{history: h, prefix: prefix, inStack: map[string]bool{}, upper: upper}, nil
}

// Returns the current entry, or "" if the walk has not started.
func (w *walker) current() string {
	if w.top == 0 {
		return ""
	}
	return w.stack[w.top-1]
}

// Moves to the previous matching entry.
func (w *walker) prev() error {
	if w.top < len(w.stack) {
		w.top++
		return nil
	}
	for {
		cmd, err := w.history.PrevCmd(w.upper, w.prefix)
		if err != nil {
			if errors.Is(err, store.ErrNoMatchingCmd) {
				return errEndOfHistory
			}
			return err
		}
		w.upper = cmd.Seq
		if !w.inStack[cmd.Text] && strings.HasPrefix(cmd.Text, w.prefix) {
			w.inStack[cmd.Text] = true
			w.stack = append(w.stack, cmd.Text)
			w.top++
			return nil
		}
	}
}

// Reverses prev. Moving past the newest entry ends the walk, which is
// reported with errEndOfHistory.
func (w *walker) next() error {
	if w.top == 0 {
		return errEndOfHistory
	}
	w.top--
	if w.top == 0 {
		return errEndOfHistory
	}
	return nil
}
