package model

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewPracticeSessionID(t *testing.T) {
	id := NewPracticeSessionID()
	assert.Regexp(t, regexp.MustCompile(`^PRACTICE_[0-9A-F]{8}$`), id)
	assert.NotEqual(t, id, NewPracticeSessionID())
}

func TestPracticeScore(t *testing.T) {
	s := PracticeSession{
		Questions: []Question{{QuestionID: "a"}, {QuestionID: "b"}, {QuestionID: "c"}, {QuestionID: "d"}},
		Answers: []PracticeAnswer{
			{QuestionID: "a", IsCorrect: true},
			{QuestionID: "b", IsCorrect: false},
		},
	}

	score := s.Score()
	assert.Equal(t, 4, score.TotalQuestions)
	assert.Equal(t, 2, score.AnsweredQuestions)
	assert.Equal(t, 1, score.CorrectAnswers)
	assert.InDelta(t, 50.0, score.Accuracy, 0.001)
	assert.InDelta(t, 50.0, score.CompletionRate, 0.001)
	assert.False(t, s.AllAnswered())

	empty := PracticeSession{}
	assert.Zero(t, empty.Score().Accuracy)
}

func TestMarkCompleted(t *testing.T) {
	s := PracticeSession{
		Questions: []Question{{QuestionID: "a"}},
		Answers:   []PracticeAnswer{{QuestionID: "a", IsCorrect: true}},
	}
	at := time.Now()
	s.MarkCompleted(at)
	assert.Equal(t, PracticeCompleted, s.Status)
	assert.Equal(t, 1, s.CorrectCount)
	assert.Equal(t, &at, s.CompletedAt)
}
