// Package grading decides whether a submitted answer matches a question's key.
package grading

import "strings"

// Normalize trims surrounding whitespace and lower-cases an answer.
func Normalize(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// IsCorrect compares the normalized forms of a submitted answer and the key.
// Catalog keys are never blank, so a blank submission cannot match one.
func IsCorrect(submitted, correct string) bool {
	return Normalize(submitted) == Normalize(correct)
}
