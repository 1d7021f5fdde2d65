package textutil

import "testing"

func TestWordCount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"Empty string", "", 0},
		{"Single word", "hello", 1},
		{"Two words", "hello world", 2},
		{"Punctuation not counted", "hello, world!", 2},
		{"Hashtag style tags", "fashion ootd style", 3},
		{"Digits count", "top 10 looks", 3},
		{"Only punctuation", "... !!! ---", 0},
		{"Emoji not counted", "👍🐶", 0},
		{"Contraction is one word", "can't stop", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordCount(tt.input); got != tt.expected {
				t.Errorf("WordCount(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"Shorter than max", "short", 10, "short"},
		{"Exactly max", "exact", 5, "exact"},
		{"Longer than max", "this is a long string", 7, "this is..."},
		{"Multibyte runes", "héllo wörld", 5, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.max); got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.expected)
			}
		})
	}
}
