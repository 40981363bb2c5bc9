package core

import (
	"strings"
	"unicode"
)

// MaxValueLength is the hard ceiling applied to every value before it is
// handed to the backend. It sits well above any field's advisory limit and
// bounds what a pathological value can do to the tool's argument handling.
const MaxValueLength = 2000

// Sanitize makes a user-supplied or imported string safe to pass to the
// write path. It strips control characters (keeping ordinary whitespace),
// normalizes line endings to LF, trims outer whitespace and caps the length
// at MaxValueLength runes. It is total and idempotent; an all-control input
// comes back empty.
func Sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return r
		}
		// Covers C0, DEL and the C1 range (e.g. U+0085 NEL).
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSpace(s)

	if runes := []rune(s); len(runes) > MaxValueLength {
		s = strings.TrimSpace(string(runes[:MaxValueLength]))
	}
	return s
}
