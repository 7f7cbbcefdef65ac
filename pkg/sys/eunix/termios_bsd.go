//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package eunix

import "golang.org/x/sys/unix"

const (
	getAttrIOCTL    = unix.TIOCGETA
	setAttrNowIOCTL = unix.TIOCSETA
)
