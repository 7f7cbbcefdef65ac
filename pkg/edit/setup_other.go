//go:build !(linux || solaris || darwin || freebsd || netbsd || openbsd || dragonfly)

package edit

import (
	"errors"
	"os"
)

// SetupTerminal is not supported on this platform; the REPL reads plain lines
// instead.
func SetupTerminal(*os.File) (func() error, error) {
	return nil, errors.ErrUnsupported
}
