// Package text provides small Unicode-aware string helpers shared by
// validation and logging.
package text

import (
	"strings"
	"unicode/utf8"
)

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Arabic and other multi-byte scripts count one per character, not per byte.
//
//	CountRunes("hello")  // 5
//	CountRunes("مرحبا")  // 5
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// Truncate shortens s to at most max runes, appending "…" when it cuts.
// A non-positive max returns "".
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// CollapseSpace trims s and replaces each run of whitespace with one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
