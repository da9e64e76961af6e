// Package segment splits normalized text into sentences and filters out
// fragments that would make poor study material.
package segment

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	minWords  = 3
	minLength = 20
	maxLength = 500
)

var (
	boundaryRe = regexp.MustCompile(`[.!?]+\s+`)
	alphaRunRe = regexp.MustCompile(`[A-Za-z]{3,}`)
)

// Sentences splits text on terminal punctuation followed by whitespace and
// returns the trimmed candidates that pass the quality filter, in document
// order. Document order is a relevance signal for the scorer downstream.
func Sentences(text string) []string {
	var kept []string
	for _, candidate := range boundaryRe.Split(text, -1) {
		candidate = strings.TrimSpace(candidate)
		if Acceptable(candidate) {
			kept = append(kept, candidate)
		}
	}
	return kept
}

// Acceptable reports whether a candidate sentence passes all quality
// heuristics: at least 3 words, a run of 3+ letters, length in (20, 500),
// and digits making up less than half of the characters.
func Acceptable(s string) bool {
	if len(s) <= minLength || len(s) >= maxLength {
		return false
	}
	if len(strings.Fields(s)) < minWords {
		return false
	}
	if !alphaRunRe.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits*2 < len(s)
}
