package dto

// SubmitAnswerRequest is shared by daily missions and practice sessions.
type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
}

// QuestionRequest targets one question of today's mission.
type QuestionRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
}

// ProgressAnswerRequest is one answer record in a bulk progress update.
// Omitted is_correct and is_complete are derived by the server.
type ProgressAnswerRequest struct {
	QuestionID    string `json:"question_id" binding:"required"`
	CurrentAnswer string `json:"current_answer"`
	Answer        string `json:"answer"` // pre-attempt-tracking clients
	FeedbackShown bool   `json:"feedback_shown"`
	IsCorrect     *bool  `json:"is_correct"`
	IsComplete    *bool  `json:"is_complete"`
}

type ProgressUpdateRequest struct {
	CurrentQuestionIndex *int                    `json:"current_question_index" binding:"required,min=0"`
	Answers              []ProgressAnswerRequest `json:"answers" binding:"dive"`
}

type ReviewQuery struct {
	Page         int    `form:"page,default=1" binding:"min=1"`
	ItemsPerPage int    `form:"items_per_page,default=20" binding:"min=1,max=50"`
	SkillArea    string `form:"skill_area"`
}

type GroupedReviewQuery struct {
	GroupBy      string `form:"group_by" binding:"required,oneof=date topic"`
	Page         int    `form:"page,default=1" binding:"min=1"`
	ItemsPerPage int    `form:"items_per_page,default=10" binding:"min=1,max=20"`
	SkillArea    string `form:"skill_area"`
}

type ExplainMistakeRequest struct {
	QuestionID  string `json:"question_id" binding:"required"`
	MissionDate string `json:"mission_date" binding:"required" example:"2024-01-15"`
}

type CreatePracticeSessionRequest struct {
	Topic         string `json:"topic" binding:"required"`
	QuestionCount int    `json:"question_count" example:"5"`
}

type UserSessionsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=in_progress completed abandoned"`
	Limit  int    `form:"limit,default=10" binding:"min=1,max=50"`
}
