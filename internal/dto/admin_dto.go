package dto

// ChoiceCreateDTO is one answer option of an imported question.
type ChoiceCreateDTO struct {
	ID   string `json:"id" binding:"required"`
	Text string `json:"text" binding:"required"`
}

// QuestionCreateDTO is used by the admin catalog import.
type QuestionCreateDTO struct {
	QuestionID      string            `json:"question_id" binding:"required"`
	QuestionText    string            `json:"question_text" binding:"required"`
	SkillArea       string            `json:"skill_area" binding:"required"`
	DifficultyLevel int               `json:"difficulty_level" binding:"min=0"`
	Choices         []ChoiceCreateDTO `json:"choices" binding:"required,min=2,max=4,dive"`
	CorrectAnswerID string            `json:"correct_answer_id" binding:"required"`
	FeedbackText    string            `json:"feedback_text"`
}

type QuestionImportDTO struct {
	Questions []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

type QuestionImportResponse struct {
	Imported int `json:"imported"`
}
