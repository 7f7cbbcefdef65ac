package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RubixDev/Roost/pkg/store"
)

// Opens the history database, creating its directory if needed.
func openHistory(path string) (store.DBStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	return store.NewStore(path)
}

// Adds a command to the history, unless it is the same as the last one.
func addHistory(st store.Store, text string) {
	text = strings.TrimRight(text, "\n")
	next, err := st.NextCmdSeq()
	if err != nil {
		logger.Println("cannot get next command sequence:", err)
		return
	}
	if last, err := st.Cmd(next - 1); err == nil && last == text {
		return
	}
	if _, err := st.AddCmd(text); err != nil {
		logger.Println("cannot add command to history:", err)
	}
}

// Implements the -history flag.
func printHistory(fds [3]*os.File, path string) error {
	if path == "" {
		return fmt.Errorf("history is disabled")
	}
	st, err := openHistory(path)
	if err != nil {
		return fmt.Errorf("cannot open history: %w", err)
	}
	defer st.Close()
	next, err := st.NextCmdSeq()
	if err != nil {
		return err
	}
	cmds, err := st.CmdsWithSeq(0, next)
	if err != nil {
		return err
	}
	for _, cmd := range cmds {
		text := strings.ReplaceAll(cmd.Text, "\n", "\n       ")
		fmt.Fprintf(fds[1], "%5d  %s\n", cmd.Seq, text)
	}
	return nil
}
