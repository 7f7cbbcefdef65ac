package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RubixDev/Roost/pkg/diag"
	"github.com/RubixDev/Roost/pkg/edit"
	"github.com/RubixDev/Roost/pkg/eval"
	"github.com/RubixDev/Roost/pkg/eval/vals"
	"github.com/RubixDev/Roost/pkg/parse"
	"github.com/RubixDev/Roost/pkg/store"
	"github.com/RubixDev/Roost/pkg/sys"
)

// Configuration for the interactive mode.
type interactCfg struct {
	Prompt string
	// Path of the rc file; empty means none.
	RC string
	// Path of the history database; empty means no history.
	DB   string
	Time bool
}

const continuationPrompt = ".. "

// Runs the REPL until the input ends or exit is called, and returns the exit
// status.
func interact(ev *eval.Evaler, fds [3]*os.File, cfg *interactCfg) int {
	// Keep Ctrl-C from killing the process while waiting for input; during
	// evaluation it interrupts the code instead.
	_, stopSignals := sys.NotifyInterrupt()
	defer stopSignals()

	var hist store.DBStore
	if cfg.DB != "" {
		var err error
		hist, err = openHistory(cfg.DB)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot open history:", err)
			fmt.Fprintln(fds[2], "Continuing without history.")
		} else {
			defer hist.Close()
		}
	}

	if cfg.RC != "" {
		if exit, ok := sourceRC(ev, fds, cfg.RC); !ok {
			return exit
		}
	}

	lines := newLineReader(ev, fds, hist)
	var pending strings.Builder
	cmdNum := 0

	for {
		prompt := cfg.Prompt
		if pending.Len() > 0 {
			prompt = continuationPrompt
		}
		line, readErr := lines.readLine(prompt)
		if readErr == edit.ErrInterrupted {
			pending.Reset()
			continue
		}
		if readErr != nil && readErr != io.EOF {
			fmt.Fprintln(fds[2], "Cannot read input:", readErr)
			return 2
		}
		pending.WriteString(line)
		code := pending.String()
		if strings.TrimSpace(code) == "" {
			pending.Reset()
			if readErr == io.EOF {
				return 0
			}
			continue
		}

		src := parse.Source{Name: fmt.Sprintf("[repl %d]", cmdNum+1), Code: code}
		parseStart := time.Now()
		tree, err := parse.Parse(src)
		parseTime := time.Since(parseStart)
		if err != nil && parse.IsPartial(err) && readErr == nil {
			continue
		}
		cmdNum++
		pending.Reset()
		if hist != nil {
			addHistory(hist, code)
		}

		if err != nil {
			diag.ShowError(fds[2], err)
		} else {
			v, runTime, err := evalInTTY(ev, fds, tree, false)
			if cfg.Time {
				printTimes(fds, []string{"Parse AST", "Run"},
					[]time.Duration{parseTime, runTime})
			}
			switch err := err.(type) {
			case nil:
				if v != nil {
					fmt.Fprintln(fds[1], vals.Repr(v))
				}
			case eval.ExitSignal:
				return err.Code
			default:
				diag.ShowError(fds[2], err)
			}
		}
		if readErr == io.EOF {
			return 0
		}
	}
}

// Evaluates the rc file in the global scope. A missing file is ignored. It
// returns false with the exit status if the rc file called exit.
func sourceRC(ev *eval.Evaler, fds [3]*os.File, rcPath string) (int, bool) {
	absPath, err := filepath.Abs(rcPath)
	if err != nil {
		diag.Complainf(fds[2], "cannot get full path of rc file: %v", err)
		return 0, true
	}
	code, err := readFileUTF8(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			diag.Complainf(fds[2], "cannot read rc file: %v", err)
		}
		return 0, true
	}
	logger.Println("sourcing rc file", absPath)
	tree, err := parse.Parse(parse.Source{Name: absPath, Code: code, IsFile: true})
	if err == nil {
		_, _, err = evalInTTY(ev, fds, tree, false)
	}
	if exit, ok := err.(eval.ExitSignal); ok {
		return exit.Code, false
	}
	if err != nil {
		diag.ShowError(fds[2], err)
	}
	return 0, true
}
