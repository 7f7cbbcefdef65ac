package parse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var quoteEscapes = map[rune]byte{
	'"': '"', '\\': '\\',
	'\a': 'a', '\b': 'b', '\f': 'f', '\n': 'n', '\r': 'r', '\t': 't', '\v': 'v',
}

// Quote returns a double-quoted string literal that lexes back to s.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for s != "" {
		r, w := utf8.DecodeRuneInString(s)
		if e, ok := quoteEscapes[r]; ok {
			sb.WriteByte('\\')
			sb.WriteByte(e)
		} else if unicode.IsPrint(r) && r != utf8.RuneError {
			// RuneError is technically printable, but don't print it directly
			// to avoid confusion.
			sb.WriteRune(r)
		} else if r <= 0xff {
			sb.WriteString(`\x`)
			sb.Write(rtohex(r, 2))
		} else if r <= 0xffff {
			sb.WriteString(`\u`)
			sb.Write(rtohex(r, 4))
		} else {
			sb.WriteString(`\U`)
			sb.Write(rtohex(r, 8))
		}
		s = s[w:]
	}
	sb.WriteByte('"')
	return sb.String()
}

func rtohex(r rune, w int) []byte {
	bytes := make([]byte, w)
	for i := w - 1; i >= 0; i-- {
		d := byte(r % 16)
		r /= 16
		if d <= 9 {
			bytes[i] = '0' + d
		} else {
			bytes[i] = 'a' + d - 10
		}
	}
	return bytes
}
