package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxPracticeQuestions = 20

type PracticeAnswer struct {
	QuestionID string    `json:"question_id" bson:"question_id"`
	UserAnswer string    `json:"user_answer" bson:"user_answer"`
	IsCorrect  bool      `json:"is_correct" bson:"is_correct"`
	AnsweredAt time.Time `json:"answered_at" bson:"answered_at"`
}

// PracticeSession is a free-form, topic-scoped quiz. Each question takes exactly one answer.
type PracticeSession struct {
	SessionID     string                `json:"session_id"`
	UserID        string                `json:"user_id"`
	Topic         string                `json:"topic"`
	QuestionCount int                   `json:"question_count"`
	Questions     []Question            `json:"questions"`
	Answers       []PracticeAnswer      `json:"answers"`
	Status        PracticeSessionStatus `json:"status"`
	CorrectCount  int                   `json:"correct_count"`
	CreatedAt     time.Time             `json:"created_at"`
	CompletedAt   *time.Time            `json:"completed_at,omitempty"`
}

// NewPracticeSessionID returns ids of the form PRACTICE_1A2B3C4D.
func NewPracticeSessionID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PRACTICE_" + strings.ToUpper(hex[:8])
}

type PracticeScore struct {
	TotalQuestions    int     `json:"total_questions"`
	AnsweredQuestions int     `json:"answered_questions"`
	CorrectAnswers    int     `json:"correct_answers"`
	Accuracy          float64 `json:"accuracy"`
	CompletionRate    float64 `json:"completion_rate"`
}

func (s *PracticeSession) FindQuestion(questionID string) (*Question, bool) {
	for i := range s.Questions {
		if s.Questions[i].QuestionID == questionID {
			return &s.Questions[i], true
		}
	}
	return nil, false
}

func (s *PracticeSession) FindAnswer(questionID string) *PracticeAnswer {
	for i := range s.Answers {
		if s.Answers[i].QuestionID == questionID {
			return &s.Answers[i]
		}
	}
	return nil
}

func (s *PracticeSession) correctAnswers() int {
	n := 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// Score computes percentages on a 0..100 scale.
func (s *PracticeSession) Score() PracticeScore {
	score := PracticeScore{
		TotalQuestions:    len(s.Questions),
		AnsweredQuestions: len(s.Answers),
		CorrectAnswers:    s.correctAnswers(),
	}
	if score.AnsweredQuestions > 0 {
		score.Accuracy = float64(score.CorrectAnswers) / float64(score.AnsweredQuestions) * 100
	}
	if score.TotalQuestions > 0 {
		score.CompletionRate = float64(score.AnsweredQuestions) / float64(score.TotalQuestions) * 100
	}
	return score
}

func (s *PracticeSession) AllAnswered() bool {
	return len(s.Answers) >= len(s.Questions)
}

func (s *PracticeSession) MarkCompleted(at time.Time) {
	s.Status = PracticeCompleted
	s.CompletedAt = &at
	s.CorrectCount = s.correctAnswers()
}

type PracticeStats struct {
	TotalSessions   int      `json:"total_sessions"`
	TotalQuestions  int      `json:"total_questions"`
	TotalCorrect    int      `json:"total_correct"`
	Accuracy        float64  `json:"accuracy"`
	TopicsPracticed []string `json:"topics_practiced"`
}

// TopicInfo describes how many catalog questions a practice topic has.
type TopicInfo struct {
	Name          string `json:"name"`
	QuestionCount int64  `json:"question_count"`
	Available     bool   `json:"available"`
}
