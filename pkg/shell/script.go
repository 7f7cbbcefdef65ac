package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/RubixDev/Roost/pkg/diag"
	"github.com/RubixDev/Roost/pkg/eval"
	"github.com/RubixDev/Roost/pkg/parse"
)

// Configuration for the script mode.
type scriptCfg struct {
	Cmd         bool
	CompileOnly bool
	AST         bool
	JSON        bool
	Time        bool
}

// Executes a script in a fresh scope, and returns the exit status. Arguments
// after the script are ignored.
func script(ev *eval.Evaler, fds [3]*os.File, args []string, cfg *scriptCfg) int {
	start := time.Now()
	arg0 := args[0]

	var name, code string
	if cfg.Cmd {
		name = "code from -c"
		code = arg0
	} else {
		var err error
		name, err = filepath.Abs(arg0)
		if err != nil {
			fmt.Fprintf(fds[2],
				"cannot get full path of script %q: %v\n", arg0, err)
			return 2
		}
		code, err = readFileUTF8(name)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot read script %q: %v\n", name, err)
			return 2
		}
	}
	readTime := time.Since(start)

	parseStart := time.Now()
	src := parse.Source{Name: name, Code: code, IsFile: !cfg.Cmd}
	tree, err := parse.Parse(src)
	parseTime := time.Since(parseStart)

	if cfg.CompileOnly {
		if cfg.JSON {
			fmt.Fprintf(fds[1], "%s\n", errorToJSON(err))
		} else if err != nil {
			diag.ShowError(fds[2], err)
		}
		if err != nil {
			return 2
		}
		return 0
	}
	if err != nil {
		diag.ShowError(fds[2], err)
		return 2
	}
	if cfg.AST {
		parse.PPrintAST(tree.Root, fds[1])
		return 0
	}

	_, runTime, err := evalInTTY(ev, fds, tree, true)
	if cfg.Time {
		printTimes(fds,
			[]string{"Read File", "Parse AST", "Run", "Total"},
			[]time.Duration{readTime, parseTime, runTime, time.Since(start)})
	}
	if _, ok := err.(eval.ExitSignal); !ok && err != nil {
		diag.ShowError(fds[2], err)
	}
	return exitStatus(err)
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

// Converts a lex or parse error into a JSON array, which is empty when err is
// nil.
func errorToJSON(err error) []byte {
	converted := []errorInJSON{}
	switch err := err.(type) {
	case *parse.LexError:
		converted = append(converted,
			errorInJSON{err.Context.Name, err.Context.From, err.Context.To, err.Message})
	case *parse.ParseError:
		converted = append(converted,
			errorInJSON{err.Context.Name, err.Context.From, err.Context.To, err.Message})
	}
	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
