// Package edit implements the line editor used by the REPL when the input is
// a terminal.
//
// The editor supports cursor movement, walking the command history with the
// Up and Down keys, and completing the word before the cursor with Tab. The
// terminal must be put into noncanonical mode with SetupTerminal first.
package edit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/RubixDev/Roost/pkg/logutil"
	"github.com/RubixDev/Roost/pkg/store"
)

var logger = logutil.GetLogger("[edit] ")

// ErrInterrupted is returned by ReadLine when Ctrl-C is pressed.
var ErrInterrupted = errors.New("interrupted")

// History is the part of the command history used by the editor.
type History interface {
	NextCmdSeq() (int, error)
	PrevCmd(upto int, prefix string) (store.Cmd, error)
}

// Completer returns the words that may complete the given prefix. Words not
// starting with the prefix are ignored.
type Completer func(prefix string) []string

// Config keeps the optional dependencies of an Editor.
type Config struct {
	// Returns the number of columns of the terminal, or a non-positive number
	// if it is unknown.
	Width func() int
	// May be nil, in which case history walking does nothing.
	History History
	// May be nil, in which case Tab does nothing.
	Completer Completer
}

// Editor reads lines from a terminal.
type Editor struct {
	in  *bufio.Reader
	out io.Writer
	cfg Config
}

// NewEditor creates an Editor that reads keys from in and draws to out.
func NewEditor(in io.Reader, out io.Writer, cfg Config) *Editor {
	return &Editor{bufio.NewReader(in), out, cfg}
}

// State of the line being edited.
type lineState struct {
	prompt string
	buf    []rune
	// Cursor position as an index into buf.
	dot int
	// Non-nil while walking history.
	walker *walker
	// Content of buf before the history walk started.
	saved []rune
	// Row of the cursor, counted from the first row of the prompt.
	cursorRow int
	// Whether the last render left the cursor at the start of a new row.
	atRowStart bool
}

// ReadLine shows the prompt and reads a line. The returned line does not
// include the terminating newline. It returns io.EOF if Ctrl-D is pressed on
// an empty line or the input ends, and ErrInterrupted if Ctrl-C is pressed.
func (ed *Editor) ReadLine(prompt string) (string, error) {
	st := &lineState{prompt: prompt}
	ed.render(st)
	for {
		k, err := readKey(ed.in)
		if err != nil {
			if err == io.EOF && len(st.buf) > 0 {
				ed.finish(st)
				return string(st.buf), nil
			}
			ed.finish(st)
			return "", err
		}
		if k != keyUp && k != keyDown && k != ctrlP && k != ctrlN {
			st.walker = nil
		}

		switch k {
		case '\r', '\n':
			ed.finish(st)
			return string(st.buf), nil
		case ctrlC:
			st.dot = len(st.buf)
			ed.render(st)
			ed.write("^C\r\n")
			return "", ErrInterrupted
		case ctrlD:
			if len(st.buf) == 0 {
				ed.finish(st)
				return "", io.EOF
			}
			st.deleteForward()
		case keyDelete:
			st.deleteForward()
		case backspace, ctrlH:
			st.deleteBackward()
		case keyLeft, ctrlB:
			if st.dot > 0 {
				st.dot--
			}
		case keyRight, ctrlF:
			if st.dot < len(st.buf) {
				st.dot++
			}
		case keyHome, ctrlA:
			st.dot = 0
		case keyEnd, ctrlE:
			st.dot = len(st.buf)
		case ctrlK:
			st.buf = st.buf[:st.dot]
		case ctrlU:
			st.buf = append([]rune(nil), st.buf[st.dot:]...)
			st.dot = 0
		case ctrlW:
			st.killWordLeft()
		case ctrlL:
			ed.write("\x1b[H\x1b[2J")
			st.cursorRow = 0
		case keyUp, ctrlP:
			ed.historyPrev(st)
		case keyDown, ctrlN:
			ed.historyNext(st)
		case tab:
			ed.completeWord(st)
		default:
			if k >= 0 && unicode.IsPrint(k) {
				st.insert(string(k))
			}
		}
		ed.render(st)
	}
}

func (st *lineState) insert(s string) {
	rs := []rune(s)
	buf := make([]rune, 0, len(st.buf)+len(rs))
	buf = append(buf, st.buf[:st.dot]...)
	buf = append(buf, rs...)
	st.buf = append(buf, st.buf[st.dot:]...)
	st.dot += len(rs)
}

func (st *lineState) deleteBackward() {
	if st.dot > 0 {
		st.buf = append(st.buf[:st.dot-1], st.buf[st.dot:]...)
		st.dot--
	}
}

func (st *lineState) deleteForward() {
	if st.dot < len(st.buf) {
		st.buf = append(st.buf[:st.dot], st.buf[st.dot+1:]...)
	}
}

// Deletes the spaces and then the word before the cursor.
func (st *lineState) killWordLeft() {
	begin := st.dot
	for begin > 0 && unicode.IsSpace(st.buf[begin-1]) {
		begin--
	}
	for begin > 0 && !unicode.IsSpace(st.buf[begin-1]) {
		begin--
	}
	st.buf = append(st.buf[:begin], st.buf[st.dot:]...)
	st.dot = begin
}

func (ed *Editor) historyPrev(st *lineState) {
	if ed.cfg.History == nil {
		return
	}
	if st.walker == nil {
		w, err := newWalker(ed.cfg.History, string(st.buf))
		if err != nil {
			logger.Println("cannot start history walk:", err)
			return
		}
		st.walker, st.saved = w, st.buf
	}
	if err := st.walker.prev(); err != nil {
		if err != errEndOfHistory {
			logger.Println("cannot walk history:", err)
		}
		return
	}
	st.setText(st.walker.current())
}

func (ed *Editor) historyNext(st *lineState) {
	if st.walker == nil {
		return
	}
	if err := st.walker.next(); err != nil {
		st.buf, st.dot = st.saved, len(st.saved)
		st.walker = nil
		return
	}
	st.setText(st.walker.current())
}

func (st *lineState) setText(s string) {
	st.buf = []rune(s)
	st.dot = len(st.buf)
}

func (ed *Editor) write(s string) {
	if _, err := io.WriteString(ed.out, s); err != nil {
		logger.Println("cannot write to terminal:", err)
	}
}

func (ed *Editor) width() int {
	if ed.cfg.Width != nil {
		if w := ed.cfg.Width(); w > 0 {
			return w
		}
	}
	return math.MaxInt32
}

// Newlines from multi-line history entries are shown as a symbol so that the
// line stays on one logical row.
var displayReplacer = strings.NewReplacer("\n", "↵")

func displayText(rs []rune) string {
	return displayReplacer.Replace(string(rs))
}

// Redraws the prompt and the line, wrapping at the terminal width, and puts
// the cursor at the dot.
func (ed *Editor) render(st *lineState) {
	cols := ed.width()
	text := displayText(st.buf)
	promptWidth := runewidth.StringWidth(st.prompt)
	total := promptWidth + runewidth.StringWidth(text)
	dotPos := promptWidth + runewidth.StringWidth(displayText(st.buf[:st.dot]))

	var sb strings.Builder
	if st.cursorRow > 0 {
		fmt.Fprintf(&sb, "\x1b[%dA", st.cursorRow)
	}
	sb.WriteString("\r\x1b[J")
	sb.WriteString(st.prompt)
	sb.WriteString(text)
	endRow := total / cols
	st.atRowStart = total > 0 && total%cols == 0
	if st.atRowStart {
		// The cursor stays on the last column after filling a row; move it to
		// the next row.
		sb.WriteString("\r\n")
	}
	dotRow, dotCol := dotPos/cols, dotPos%cols
	if up := endRow - dotRow; up > 0 {
		fmt.Fprintf(&sb, "\x1b[%dA", up)
	}
	sb.WriteString("\r")
	if dotCol > 0 {
		fmt.Fprintf(&sb, "\x1b[%dC", dotCol)
	}
	st.cursorRow = dotRow
	ed.write(sb.String())
}

// Moves the cursor past the end of the line, so that further output starts
// on a new row.
func (ed *Editor) finish(st *lineState) {
	st.dot = len(st.buf)
	ed.render(st)
	if !st.atRowStart {
		ed.write("\r\n")
	}
	st.cursorRow = 0
}
