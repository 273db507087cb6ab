package main

import "strings"

// splitFileLines cuts a raw text file into one phrase per non-blank line.
func splitFileLines(text string) []string {
	var phrases []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			phrases = append(phrases, line)
		}
	}
	return phrases
}
