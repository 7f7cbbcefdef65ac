//go:build linux || solaris || darwin || freebsd || netbsd || openbsd || dragonfly

package edit

import (
	"fmt"
	"os"

	"github.com/RubixDev/Roost/pkg/sys/eunix"
)

// SetupTerminal puts the terminal into the mode the editor expects: input is
// read key by key without echo, and Ctrl-C is read as a key instead of sending
// a signal. It returns a function that restores the previous mode.
func SetupTerminal(in *os.File) (func() error, error) {
	fd := int(in.Fd())
	term, err := eunix.TermiosForFd(fd)
	if err != nil {
		return nil, fmt.Errorf("can't get terminal attribute: %w", err)
	}
	saved := term.Copy()

	term.SetICanon(false)
	term.SetEcho(false)
	term.SetISig(false)
	term.SetVMin(1)
	term.SetVTime(0)
	// Enter sends CR on most terminals.
	term.SetICRNL(true)

	if err := term.ApplyToFd(fd); err != nil {
		return nil, fmt.Errorf("can't set up terminal attribute: %w", err)
	}
	return func() error { return saved.ApplyToFd(fd) }, nil
}
