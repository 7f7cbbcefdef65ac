package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/RubixDev/Roost/pkg/edit"
	"github.com/RubixDev/Roost/pkg/eval"
	"github.com/RubixDev/Roost/pkg/parse"
	"github.com/RubixDev/Roost/pkg/store"
	"github.com/RubixDev/Roost/pkg/sys"
)

// Reads the code of the REPL line by line.
type lineReader interface {
	// Shows the prompt and returns the next line including the trailing
	// newline. At the end of input it returns io.EOF, along with the last line
	// if it was not terminated.
	readLine(prompt string) (string, error)
}

// Returns a lineReader that uses the line editor when stdin is a terminal
// that supports it, and reads plain lines otherwise. Prompts are only shown
// when stdin is a terminal.
func newLineReader(ev *eval.Evaler, fds [3]*os.File, hist store.Store) lineReader {
	if !sys.IsATTY(fds[0]) {
		return &plainReader{in: bufio.NewReader(fds[0])}
	}
	restore, err := edit.SetupTerminal(fds[0])
	if err != nil {
		logger.Println("cannot use line editor:", err)
		return &plainReader{in: bufio.NewReader(fds[0]), promptOut: fds[2]}
	}
	if err := restore(); err != nil {
		logger.Println("cannot restore terminal:", err)
	}
	cfg := edit.Config{
		Width: func() int {
			_, col := sys.WinSize(fds[2])
			return col
		},
		History:   hist,
		Completer: func(string) []string { return completionWords(ev) },
	}
	return &editorReader{edit.NewEditor(fds[0], fds[2], cfg), fds[0]}
}

// Returns the names that Tab completes: globals, builtins and keywords.
func completionWords(ev *eval.Evaler) []string {
	words := ev.Global().Names()
	words = append(words, ev.Builtin().Names()...)
	return append(words, parse.Keywords()...)
}

type plainReader struct {
	in *bufio.Reader
	// Where prompts are written; nil to not write prompts.
	promptOut io.Writer
}

func (r *plainReader) readLine(prompt string) (string, error) {
	if r.promptOut != nil {
		fmt.Fprint(r.promptOut, prompt)
	}
	line, err := r.in.ReadString('\n')
	if err == io.EOF && line == "" && r.promptOut != nil {
		// Leave the prompt's row.
		fmt.Fprintln(r.promptOut)
	}
	return line, err
}

type editorReader struct {
	ed *edit.Editor
	in *os.File
}

func (r *editorReader) readLine(prompt string) (string, error) {
	restore, err := edit.SetupTerminal(r.in)
	if err != nil {
		return "", err
	}
	line, err := r.ed.ReadLine(prompt)
	if errRestore := restore(); errRestore != nil {
		logger.Println("cannot restore terminal:", errRestore)
	}
	if err != nil {
		return line, err
	}
	return line + "\n", nil
}
