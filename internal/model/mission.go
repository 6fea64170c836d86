package model

import (
	"time"

	"cloud.google.com/go/civil"
)

const (
	MissionQuestionCount = 5
	DefaultMaxRetries    = 3
)

// Retry rejection reasons.
const (
	RetryAnswerNotFound     = "Answer not found"
	RetryAlreadyCompleted   = "Question already completed"
	RetryMaxRetriesExceeded = "Maximum retries exceeded"
)

type AnswerAttempt struct {
	Answer    string    `json:"answer" bson:"answer"`
	IsCorrect bool      `json:"is_correct" bson:"is_correct"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Answer tracks one question's progress inside a mission.
// AttemptCount always equals len(AttemptsHistory).
type Answer struct {
	QuestionID      string          `json:"question_id" bson:"question_id"`
	CurrentAnswer   string          `json:"current_answer" bson:"current_answer"`
	IsCorrect       bool            `json:"is_correct" bson:"is_correct"`
	AttemptCount    int             `json:"attempt_count" bson:"attempt_count"`
	AttemptsHistory []AnswerAttempt `json:"attempts_history" bson:"attempts_history"`
	FeedbackShown   bool            `json:"feedback_shown" bson:"feedback_shown"`
	IsComplete      bool            `json:"is_complete" bson:"is_complete"`
	MaxRetries      int             `json:"max_retries" bson:"max_retries"`

	// LegacyAnswer holds the pre-attempt-tracking "answer" field until the
	// record is migrated.
	LegacyAnswer string `json:"answer,omitempty" bson:"answer,omitempty"`
}

func NewAnswer(questionID string, maxRetries int) Answer {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return Answer{
		QuestionID:      questionID,
		AttemptsHistory: []AnswerAttempt{},
		MaxRetries:      maxRetries,
	}
}

// RecordAttempt appends one evaluated submission and settles completion.
func (a *Answer) RecordAttempt(raw string, correct bool, at time.Time) {
	a.AttemptCount++
	a.AttemptsHistory = append(a.AttemptsHistory, AnswerAttempt{Answer: raw, IsCorrect: correct, Timestamp: at})
	a.CurrentAnswer = raw
	a.IsCorrect = correct
	a.IsComplete = correct || a.AttemptCount >= a.MaxRetries
}

func (a *Answer) RemainingAttempts() int {
	if r := a.MaxRetries - a.AttemptCount; r > 0 {
		return r
	}
	return 0
}

// RetryRejection returns why the answer cannot be reset, or "" if it can.
// Exhausted retries are reported ahead of completion.
func (a *Answer) RetryRejection() string {
	if a.AttemptCount >= a.MaxRetries {
		return RetryMaxRetriesExceeded
	}
	if a.IsComplete {
		return RetryAlreadyCompleted
	}
	return ""
}

// ResetForRetry clears the visible answer but keeps attempt history.
func (a *Answer) ResetForRetry() {
	a.CurrentAnswer = ""
	a.FeedbackShown = false
}

// IsMistake reports whether the final submission was wrong.
func (a *Answer) IsMistake() bool {
	return !a.IsCorrect && a.CurrentAnswer != ""
}

// NeedsMigration reports records written before attempt tracking existed.
func (a *Answer) NeedsMigration() bool {
	return (a.LegacyAnswer != "" && a.CurrentAnswer == "" && a.AttemptCount == 0) || a.MaxRetries == 0
}

// Migrate converts a legacy record in place. at stamps the seeded attempt.
func (a *Answer) Migrate(at time.Time) {
	if a.LegacyAnswer != "" && a.CurrentAnswer == "" && a.AttemptCount == 0 {
		a.CurrentAnswer = a.LegacyAnswer
		a.AttemptCount = 1
		a.AttemptsHistory = []AnswerAttempt{{Answer: a.LegacyAnswer, IsCorrect: a.IsCorrect, Timestamp: at}}
		if !a.IsComplete {
			a.IsComplete = a.FeedbackShown
		}
	}
	if a.AttemptsHistory == nil {
		a.AttemptsHistory = []AnswerAttempt{}
	}
	a.LegacyAnswer = ""
	if a.MaxRetries == 0 {
		a.MaxRetries = DefaultMaxRetries
	}
}

// DailyMission is keyed by (UserID, Date).
type DailyMission struct {
	UserID               string        `json:"user_id"`
	Date                 civil.Date    `json:"date"`
	Questions            []Question    `json:"questions"`
	Status               MissionStatus `json:"status"`
	CurrentQuestionIndex int           `json:"current_question_index"`
	Answers              []Answer      `json:"answers"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

func (m *DailyMission) FindQuestion(questionID string) (*Question, bool) {
	for i := range m.Questions {
		if m.Questions[i].QuestionID == questionID {
			return &m.Questions[i], true
		}
	}
	return nil, false
}

// FindAnswer returns a pointer into m.Answers, or nil.
func (m *DailyMission) FindAnswer(questionID string) *Answer {
	for i := range m.Answers {
		if m.Answers[i].QuestionID == questionID {
			return &m.Answers[i]
		}
	}
	return nil
}

// AnswerFor locates the answer record for a question, creating it if absent.
func (m *DailyMission) AnswerFor(questionID string, maxRetries int) *Answer {
	if a := m.FindAnswer(questionID); a != nil {
		return a
	}
	m.Answers = append(m.Answers, NewAnswer(questionID, maxRetries))
	return &m.Answers[len(m.Answers)-1]
}

// EvaluateCompletion derives a mission's status from its answers alone.
// NotStarted is only ever set at generation, so anything short of complete
// is InProgress.
func EvaluateCompletion(questions []Question, answers []Answer) MissionStatus {
	if len(answers) == 0 || len(answers) != len(questions) {
		return MissionInProgress
	}
	for _, a := range answers {
		if !a.IsComplete || !a.FeedbackShown {
			return MissionInProgress
		}
	}
	return MissionComplete
}

// RefreshStatus re-runs EvaluateCompletion unless the mission is terminal.
// It reports whether the mission just became complete.
func (m *DailyMission) RefreshStatus() bool {
	if m.Status.IsTerminal() {
		return false
	}
	m.Status = EvaluateCompletion(m.Questions, m.Answers)
	return m.Status == MissionComplete
}
