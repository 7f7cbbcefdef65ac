// Package shell is the entry point for running Roost code from the command
// line, either from a script or interactively.
package shell

import (
	"fmt"
	"os"
	"time"

	"github.com/RubixDev/Roost/pkg/eval"
	"github.com/RubixDev/Roost/pkg/logutil"
	"github.com/RubixDev/Roost/pkg/parse"
	"github.com/RubixDev/Roost/pkg/prog"
	"github.com/RubixDev/Roost/pkg/sys"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram. It is always suitable, so it should be the
// last one in a composite program.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	cfg, err := loadConfig(f.Config)
	if err != nil {
		return err
	}
	if f.Time {
		cfg.Time = true
	}

	if f.History {
		return printHistory(fds, historyPath(f, cfg))
	}

	if len(args) > 0 {
		exit := script(eval.NewEvaler(), fds, args, &scriptCfg{
			Cmd: f.CodeInArg, CompileOnly: f.CompileOnly, AST: f.AST,
			JSON: f.JSON, Time: cfg.Time})
		return prog.Exit(exit)
	}
	if f.CodeInArg {
		return prog.BadUsage("-c requires an argument")
	}
	if f.CompileOnly || f.AST {
		return prog.BadUsage("-compileonly and -ast require a script")
	}

	rc := ""
	if !f.NoRc {
		rc = rcPath(f, cfg)
	}
	exit := interact(eval.NewEvaler(), fds, &interactCfg{
		Prompt: cfg.Prompt, RC: rc, DB: historyPath(f, cfg), Time: cfg.Time})
	return prog.Exit(exit)
}

// Evaluates a parsed tree, stopping when the process is interrupted.
func evalInTTY(ev *eval.Evaler, fds [3]*os.File, tree parse.Tree, fresh bool) (any, time.Duration, error) {
	sigCh, stop := sys.NotifyInterrupt()
	defer stop()
	intCh := make(chan struct{})
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-sigCh:
			logger.Println("interrupted")
			close(intCh)
		case <-done:
		}
	}()

	start := time.Now()
	v, err := ev.EvalTree(tree, eval.EvalCfg{
		Stdout: fds[1], Stderr: fds[2], Fresh: fresh, Interrupt: intCh})
	return v, time.Since(start), err
}

// Exit status for an evaluation error.
func exitStatus(err error) int {
	switch err := err.(type) {
	case nil:
		return 0
	case eval.ExitSignal:
		return err.Code
	}
	if err == eval.ErrInterrupted {
		return 130
	}
	return 2
}

func printTimes(fds [3]*os.File, names []string, durations []time.Duration) {
	fmt.Fprintln(fds[2], "\033[36m-----------------------")
	for i, name := range names {
		fmt.Fprintf(fds[2], "%-15s %v\n", name+":", durations[i])
	}
	fmt.Fprint(fds[2], "\033[m")
}
