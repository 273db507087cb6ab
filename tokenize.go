package markov

import (
	"regexp"
	"strings"
)

// defaultPattern splits phrases on runs of whitespace.
var defaultPattern = regexp.MustCompile(`\s+`)

// terminators are the characters recognized as sentence-ending
// punctuation; DefaultTerminator is appended to phrases lacking one.
const (
	terminators       = ".!?"
	DefaultTerminator = '.'
)

// isTerminated reports whether token ends with a recognized terminator.
// The terminators are all ASCII, so inspecting the final byte is safe even
// for tokens ending in a multi-byte rune.
func isTerminated(token string) bool {
	if token == "" {
		return false
	}
	return strings.IndexByte(terminators, token[len(token)-1]) >= 0
}

// terminate canonicalizes a phrase's ending: trailing whitespace is
// dropped and the default terminator appended when none is present.
func terminate(phrase string) string {
	phrase = strings.TrimRight(phrase, " \t\r\n")
	if isTerminated(phrase) {
		return phrase
	}
	return phrase + string(DefaultTerminator)
}

// tokens splits a phrase with the chain's pattern, drops empty fields and
// applies the configured transform.
func (c *Chain) tokens(phrase string) []string {
	parts := c.pattern.Split(phrase, -1)
	words := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if c.transform != nil {
			part = c.transform(part)
			if part == "" {
				continue
			}
		}
		words = append(words, part)
	}
	return words
}
