package dto

import "time"

// PracticeSessionResponse is the full view of a practice session.
type PracticeSessionResponse struct {
	SessionID     string                   `json:"session_id"`
	UserID        string                   `json:"user_id"`
	Topic         string                   `json:"topic"`
	QuestionCount int                      `json:"question_count"`
	Questions     []QuestionResponse       `json:"questions"`
	Answers       []PracticeAnswerResponse `json:"answers"`
	Status        string                   `json:"status" example:"in_progress"`
	CreatedAt     time.Time                `json:"created_at"`
	CompletedAt   *time.Time               `json:"completed_at,omitempty"`
}

type PracticeAnswerResponse struct {
	QuestionID string    `json:"question_id"`
	UserAnswer string    `json:"user_answer"`
	IsCorrect  bool      `json:"is_correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

// PracticeSessionSummaryDTO is used when listing a user's sessions.
type PracticeSessionSummaryDTO struct {
	SessionID     string     `json:"session_id"`
	Topic         string     `json:"topic"`
	QuestionCount int        `json:"question_count"`
	Status        string     `json:"status"`
	CorrectCount  int        `json:"correct_count"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
