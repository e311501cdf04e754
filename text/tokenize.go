package text

import (
	"unicode"
	"unicode/utf8"
)

// Words splits s into word tokens, each owning its trailing whitespace.
// Leading whitespace becomes a token of its own. The result is never empty:
// when s has no token boundary the whole string is returned as one token.
func Words(s string) []string {
	var tokens []string
	start := 0
	prevSpace := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if !space && prevSpace && i > start {
			tokens = append(tokens, s[start:i])
			start = i
		}
		prevSpace = space
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}
	if len(tokens) == 0 {
		return []string{s}
	}
	return tokens
}

// Symbols splits s into maximal runs of either non-whitespace or whitespace
// characters. An empty string yields no tokens.
func Symbols(s string) []string {
	var tokens []string
	start := 0
	for start < len(s) {
		r, size := utf8.DecodeRuneInString(s[start:])
		space := unicode.IsSpace(r)
		end := start + size
		for end < len(s) {
			r, size = utf8.DecodeRuneInString(s[end:])
			if unicode.IsSpace(r) != space {
				break
			}
			end += size
		}
		tokens = append(tokens, s[start:end])
		start = end
	}
	return tokens
}

