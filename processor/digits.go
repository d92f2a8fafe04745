package processor

import (
	"strings"
)

// Digits returns every digit found in s, in order of appearance. Both literal
// digits and the words in Numerals count. The scan advances one byte at a
// time even after a word match, so words sharing letters ("eightwo") are all
// reported.
func Digits(s string) []int {
	out := make([]int, 0, len(s))
	for i := 0; i < len(s); i++ {
		if d, ok := numeralAt(s, i); ok {
			out = append(out, d)
		}
		if c := s[i]; c >= '0' && c <= '9' {
			out = append(out, int(c-'0'))
		}
	}
	return out
}

// LiteralDigits returns only the literal 0-9 characters in s.
func LiteralDigits(s string) []int {
	out := make([]int, 0, len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			out = append(out, int(c-'0'))
		}
	}
	return out
}

// numeralAt reports the value of the first numeral word starting at s[i].
func numeralAt(s string, i int) (int, bool) {
	rest := s[i:]
	for d, word := range Numerals {
		if strings.HasPrefix(rest, word) {
			return d, true
		}
	}
	return 0, false
}

// Extractor picks the digit scanning strategy for a run.
type Extractor struct {
	SpelledWords bool
}

// NewExtractor returns an Extractor; spelledWords enables number words.
func NewExtractor(spelledWords bool) Extractor {
	return Extractor{SpelledWords: spelledWords}
}

// Extract returns the digit sequence of s.
func (e Extractor) Extract(s string) []int {
	if e.SpelledWords {
		return Digits(s)
	}
	return LiteralDigits(s)
}
