// Package strescape sanitizes externally provided strings before they are
// shown in the terminal.
package strescape

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Content returns s stripped of runes that don't belong in displayable
// content (control sequences and the like). Whitespace is preserved.
func Content(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return r
		}
		if !strconv.IsGraphic(r) {
			return -1
		}
		if r == utf8.RuneError {
			return -1
		}
		return r
	}, s)
}

// Line behaves like Content but also collapses any newline sequences into
// single spaces, for values rendered inside one-line table rows.
func Line(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return Content(s)
}

// CannonicalizeNL converts all newline char sequences to \n and trims empty
// trailing newlines.
func CannonicalizeNL(val string) string {
	val = strings.ReplaceAll(val, "\r\n", "\n")
	val = strings.ReplaceAll(val, "\r", "\n")
	val = strings.TrimRight(val, "\n")
	return val
}
