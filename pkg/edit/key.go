package edit

import (
	"bufio"
	"strings"
)

// Function keys, represented as negative runes so that they never clash with
// characters.
const (
	keyUp rune = -(iota + 2)
	keyDown
	keyRight
	keyLeft
	keyHome
	keyEnd
	keyDelete
	// A key or escape sequence that is not bound to anything.
	keyUnknown
)

// Control characters.
const (
	ctrlA     = 0x01
	ctrlB     = 0x02
	ctrlC     = 0x03
	ctrlD     = 0x04
	ctrlE     = 0x05
	ctrlF     = 0x06
	ctrlH     = 0x08
	tab       = 0x09
	ctrlK     = 0x0b
	ctrlL     = 0x0c
	ctrlN     = 0x0e
	ctrlP     = 0x10
	ctrlU     = 0x15
	ctrlW     = 0x17
	escape    = 0x1b
	backspace = 0x7f
)

// Reads one key, decoding the CSI and SS3 sequences sent for cursor keys.
// Modifiers are ignored, so Ctrl-Right is the same as Right.
func readKey(rd *bufio.Reader) (rune, error) {
	r, _, err := rd.ReadRune()
	if err != nil || r != escape {
		return r, err
	}
	r, _, err = rd.ReadRune()
	if err != nil {
		return keyUnknown, err
	}
	if r != '[' && r != 'O' {
		// Alt-modified key.
		return keyUnknown, nil
	}

	var params strings.Builder
	for {
		r, _, err = rd.ReadRune()
		if err != nil {
			return keyUnknown, err
		}
		if ('0' <= r && r <= '9') || r == ';' {
			params.WriteRune(r)
			continue
		}
		break
	}
	switch r {
	case 'A':
		return keyUp, nil
	case 'B':
		return keyDown, nil
	case 'C':
		return keyRight, nil
	case 'D':
		return keyLeft, nil
	case 'H':
		return keyHome, nil
	case 'F':
		return keyEnd, nil
	case '~':
		// Only the first parameter names the key; the rest are modifiers.
		switch strings.SplitN(params.String(), ";", 2)[0] {
		case "1", "7":
			return keyHome, nil
		case "4", "8":
			return keyEnd, nil
		case "3":
			return keyDelete, nil
		}
	}
	return keyUnknown, nil
}
