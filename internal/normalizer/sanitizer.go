package normalizer

import "regexp"

// Sanitizer strips the characters that would corrupt the flat output
// formats from free text.
type Sanitizer struct {
	forbidden *regexp.Regexp
}

// NewSanitizer creates a new sanitizer instance.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		forbidden: regexp.MustCompile(`[\n\t,]+`),
	}
}

// Sanitize replaces every run of newline, tab, and comma characters with a
// single space. The result never contains any of the three, so the naive
// csv and tsv joins stay unambiguous. All other characters and their order
// are preserved; sanitizing twice changes nothing.
func (s *Sanitizer) Sanitize(text string) string {
	return s.forbidden.ReplaceAllString(text, " ")
}
