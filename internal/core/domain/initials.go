package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// InitialsFromName returns the avatar initials for name: the first letter of a
// single word, or the first letters of the first and last words.
func InitialsFromName(name string) string {
	parts := strings.Split(strings.TrimSpace(name), " ")
	first := firstRune(parts[0])
	if len(parts) == 1 {
		return first
	}
	return first + firstRune(parts[len(parts)-1])
}

func firstRune(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r))
}
