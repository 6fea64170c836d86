package model

type ChoiceOption struct {
	ID   string `json:"id" bson:"id"`
	Text string `json:"text" bson:"text"`
}

// Question is a catalog entry. Missions embed a full copy so later catalog
// edits never rewrite history.
type Question struct {
	QuestionID      string         `json:"question_id" bson:"question_id"`
	QuestionText    string         `json:"question_text" bson:"question_text"`
	SkillArea       string         `json:"skill_area" bson:"skill_area"`
	DifficultyLevel int            `json:"difficulty_level" bson:"difficulty_level"`
	Choices         []ChoiceOption `json:"choices" bson:"choices"`
	CorrectAnswerID string         `json:"correct_answer_id" bson:"correct_answer_id"`
	FeedbackText    string         `json:"feedback_text" bson:"feedback_text"`
}

// ChoiceText resolves a choice id to its text, or "Unknown".
func (q *Question) ChoiceText(choiceID string) string {
	for _, c := range q.Choices {
		if c.ID == choiceID {
			return c.Text
		}
	}
	return "Unknown"
}
