package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		submitted, correct string
		want               bool
	}{
		{"b", "b", true},
		{"  B ", "b", true},
		{"b", " B", true},
		{"a", "b", false},
		{"", "b", false},
		{"   ", "b", false},
		{" \t", "", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCorrect(tt.submitted, tt.correct), "%q vs %q", tt.submitted, tt.correct)
	}
}
