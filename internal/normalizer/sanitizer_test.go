package normalizer

import (
	"strings"
	"testing"
)

func TestSanitizer_Sanitize(t *testing.T) {
	s := NewSanitizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Clean text untouched", "hello world", "hello world"},
		{"Newline becomes space", "hello\nworld", "hello world"},
		{"Tab becomes space", "hello\tworld", "hello world"},
		{"Comma becomes space", "hello,world", "hello world"},
		{"Run collapses to one space", "nice,\tpic", "nice pic"},
		{"Mixed run", "a,\n\t,b", "a b"},
		{"Leading and trailing", "\nhello,", " hello "},
		{"Empty string", "", ""},
		{"Only forbidden characters", ",\n\t", " "},
		{"Other characters preserved", "a.b;c:d'e\"f", "a.b;c:d'e\"f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sanitize(tt.input); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizer_Sanitize_NeverContainsForbidden(t *testing.T) {
	s := NewSanitizer()

	inputs := []string{
		"plain",
		"a,b\tc\nd",
		",,,\n\n\t\t",
		"multi\nline\ncomment, with tags\tand more",
	}

	for _, input := range inputs {
		got := s.Sanitize(input)
		if strings.ContainsAny(got, "\n\t,") {
			t.Errorf("Sanitize(%q) = %q still contains a forbidden character", input, got)
		}
	}
}

func TestSanitizer_Sanitize_Idempotent(t *testing.T) {
	s := NewSanitizer()

	inputs := []string{
		"hello\nworld",
		"nice,\tpic",
		"already clean",
		",\n\t",
	}

	for _, input := range inputs {
		once := s.Sanitize(input)
		twice := s.Sanitize(once)

		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
