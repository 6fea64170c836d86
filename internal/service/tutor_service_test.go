package service

import (
	"context"
	"testing"

	"github.com/lshigami/dailyquest/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTutorResponse(t *testing.T) {
	out := parseTutorResponse("Explanation: Alpha is a noun here.\nThe verb form is Bravo.\nTip: Check the tense first.")
	assert.Equal(t, "Alpha is a noun here.\nThe verb form is Bravo.", out.Explanation)
	assert.Equal(t, "Check the tense first.", out.Tip)

	plain := parseTutorResponse("  Just some text.  ")
	assert.Equal(t, "Just some text.", plain.Explanation)
	assert.Empty(t, plain.Tip)
}

func TestBuildTutorPrompt(t *testing.T) {
	q := testQuestions(1)[0]
	prompt := buildTutorPrompt(&q, "A")

	assert.Contains(t, prompt, q.QuestionText)
	assert.Contains(t, prompt, "Student's answer: A) Alpha")
	assert.Contains(t, prompt, "Correct answer: B) Bravo")
	assert.Contains(t, prompt, "Reference explanation: Bravo is right.")
}

func TestTutorDisabledWithoutKey(t *testing.T) {
	tutor, err := NewGeminiTutorService(&config.Config{})
	require.NoError(t, err)
	assert.False(t, tutor.Enabled())

	q := testQuestions(1)[0]
	_, err = tutor.ExplainMistake(context.Background(), &q, "A")
	assert.ErrorIs(t, err, ErrExplainerDisabled)
}
