package event

const (
	EventTypeMissionGenerated       = "mission.generated"
	EventTypeMissionAnswerSubmitted = "mission.answer_submitted"
	EventTypeMissionCompleted       = "mission.completed"
	EventTypeMissionsArchived       = "mission.archived"

	EventTypePracticeCompleted = "practice.completed"
)

type MissionEvent struct {
	EventType  string `json:"eventType"`
	UserID     string `json:"userId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	QuestionID string `json:"questionId,omitempty"`
	IsCorrect  *bool  `json:"isCorrect,omitempty"`
	Attempt    int    `json:"attempt,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// ArchiveEvent summarises one archival sweep.
type ArchiveEvent struct {
	EventType string `json:"eventType"`
	Before    string `json:"before"`
	Archived  int    `json:"archived"`
	Failed    int    `json:"failed"`
	Timestamp int64  `json:"timestamp"`
}

type PracticeEvent struct {
	EventType      string  `json:"eventType"`
	SessionID      string  `json:"sessionId"`
	UserID         string  `json:"userId"`
	Topic          string  `json:"topic"`
	TotalQuestions int     `json:"totalQuestions"`
	CorrectAnswers int     `json:"correctAnswers"`
	Accuracy       float64 `json:"accuracy"`
	Timestamp      int64   `json:"timestamp"`
}
