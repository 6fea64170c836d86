package dto

import (
	"time"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope every successful endpoint returns.
type APIResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Success(message string, data any) APIResponse {
	return APIResponse{Status: StatusSuccess, Message: message, Data: data}
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type ChoiceResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuestionResponse struct {
	QuestionID      string           `json:"question_id"`
	QuestionText    string           `json:"question_text"`
	SkillArea       string           `json:"skill_area"`
	DifficultyLevel int              `json:"difficulty_level"`
	Choices         []ChoiceResponse `json:"choices"`
	CorrectAnswerID string           `json:"correct_answer_id"`
	FeedbackText    string           `json:"feedback_text"`
}

type AttemptResponse struct {
	Answer    string    `json:"answer"`
	IsCorrect bool      `json:"is_correct"`
	Timestamp time.Time `json:"timestamp"`
}

type AnswerResponse struct {
	QuestionID      string            `json:"question_id"`
	CurrentAnswer   string            `json:"current_answer"`
	IsCorrect       bool              `json:"is_correct"`
	AttemptCount    int               `json:"attempt_count"`
	AttemptsHistory []AttemptResponse `json:"attempts_history"`
	FeedbackShown   bool              `json:"feedback_shown"`
	IsComplete      bool              `json:"is_complete"`
	MaxRetries      int               `json:"max_retries"`
}

type MissionResponse struct {
	UserID               string             `json:"user_id"`
	Date                 string             `json:"date" example:"2024-01-15"`
	Questions            []QuestionResponse `json:"questions"`
	Status               string             `json:"status" example:"in_progress"`
	CurrentQuestionIndex int                `json:"current_question_index"`
	Answers              []AnswerResponse   `json:"answers"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

type MissionStatusResponse struct {
	MissionStatus string `json:"mission_status"`
}

type RetryResponse struct {
	RemainingAttempts int `json:"remaining_attempts"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
