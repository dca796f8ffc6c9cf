package domain

import (
	"strings"
	"unicode/utf8"
)

// IsXMLChar reports whether r may appear in an XML 1.0 document.
func IsXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// ValidXMLText reports whether s is valid UTF-8 made only of XML characters.
func ValidXMLText(s string) bool {
	return utf8.ValidString(s) && strings.IndexFunc(s, func(r rune) bool { return !IsXMLChar(r) }) < 0
}

// SanitizeXMLText replaces characters XML cannot carry with U+FFFD.
func SanitizeXMLText(s string) string {
	if ValidXMLText(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if !IsXMLChar(r) {
			return utf8.RuneError
		}
		return r
	}, s)
}
