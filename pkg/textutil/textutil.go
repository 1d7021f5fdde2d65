// Package textutil provides small text helpers shared across the pipeline.
package textutil

import (
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
)

// WordCount returns the number of words in s using Unicode word
// segmentation. Whitespace and punctuation segments are not counted.
func WordCount(s string) int {
	count := 0

	tokens := words.FromString(s)
	for tokens.Next() {
		if isWord(tokens.Value()) {
			count++
		}
	}

	return count
}

// isWord reports whether a segment contains at least one letter or digit.
func isWord(segment string) bool {
	for _, r := range segment {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

// Truncate shortens s to at most max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	return string([]rune(s)[:max]) + "..."
}
