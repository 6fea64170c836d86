package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/dailyquest/config"
	"github.com/lshigami/dailyquest/internal/event"
	"github.com/lshigami/dailyquest/internal/grading"
	"github.com/lshigami/dailyquest/internal/metrics"
	"github.com/lshigami/dailyquest/internal/model"
	"github.com/lshigami/dailyquest/internal/repository"
	"github.com/rs/zerolog/log"
)

// AnswerFeedback is what a learner sees after submitting an answer.
type AnswerFeedback struct {
	AlreadyComplete  bool                `json:"already_complete"`
	IsCorrect        bool                `json:"is_correct"`
	CorrectAnswer    string              `json:"correct_answer"`
	Explanation      string              `json:"explanation"`
	AttemptCount     int                 `json:"attempt_count"`
	MaxRetries       int                 `json:"max_retries"`
	CanRetry         bool                `json:"can_retry"`
	QuestionComplete bool                `json:"question_complete"`
	MissionStatus    model.MissionStatus `json:"mission_status"`
}

// RetryResult reports a retry-reset outcome. Reason is set when Success is false.
type RetryResult struct {
	Success           bool   `json:"success"`
	Reason            string `json:"reason,omitempty"`
	RemainingAttempts int    `json:"remaining_attempts"`
}

// ProgressEntry is one client-supplied answer in a bulk progress update.
// Nil flags are derived: IsCorrect from the question key, IsComplete from
// whether an answer was given.
type ProgressEntry struct {
	QuestionID    string
	Answer        string
	FeedbackShown bool
	IsCorrect     *bool
	IsComplete    *bool
}

type AnswerService interface {
	SubmitAnswer(ctx context.Context, userID, questionID, answer string) (*AnswerFeedback, error)
	MarkFeedbackShown(ctx context.Context, userID, questionID string) (*model.DailyMission, error)
	ResetForRetry(ctx context.Context, userID, questionID string) (*RetryResult, error)
	// UpdateProgress replaces the answer list wholesale. It skips attempt
	// history and retry limits.
	UpdateProgress(ctx context.Context, userID string, currentQuestionIndex int, entries []ProgressEntry) (*model.DailyMission, error)
}

type answerService struct {
	repo       repository.MissionRepository
	publisher  event.Publisher
	maxRetries int
	now        func() time.Time
}

func NewAnswerService(repo repository.MissionRepository, publisher event.Publisher, cfg *config.Config) AnswerService {
	maxRetries := cfg.Mission.MaxRetries
	if maxRetries <= 0 {
		maxRetries = model.DefaultMaxRetries
	}
	return &answerService{repo: repo, publisher: publisher, maxRetries: maxRetries, now: time.Now}
}

func feedbackFor(q *model.Question, a *model.Answer, status model.MissionStatus) *AnswerFeedback {
	return &AnswerFeedback{
		IsCorrect:        a.IsCorrect,
		CorrectAnswer:    q.CorrectAnswerID,
		Explanation:      q.FeedbackText,
		AttemptCount:     a.AttemptCount,
		MaxRetries:       a.MaxRetries,
		CanRetry:         !a.IsComplete,
		QuestionComplete: a.IsComplete,
		MissionStatus:    status,
	}
}

func (s *answerService) save(ctx context.Context, mission *model.DailyMission) error {
	mission.UpdatedAt = s.now().UTC()
	if err := s.repo.SaveMission(ctx, mission); err != nil {
		log.Error().Err(err).Str("userID", mission.UserID).Str("date", mission.Date.String()).Msg("Failed to save mission")
		return fmt.Errorf("saving mission: %w", err)
	}
	return nil
}

func (s *answerService) afterSave(ctx context.Context, mission *model.DailyMission, completed bool) {
	if !completed {
		return
	}
	metrics.MissionsCompleted.Inc()
	log.Info().Str("userID", mission.UserID).Str("date", mission.Date.String()).Msg("Mission completed")
	publishMissionEvent(ctx, s.publisher, event.EventTypeMissionCompleted, mission, nil)
}

func (s *answerService) SubmitAnswer(ctx context.Context, userID, questionID, answer string) (*AnswerFeedback, error) {
	mission, err := findTodayMission(ctx, s.repo, userID, s.now())
	if err != nil {
		return nil, err
	}

	question, ok := mission.FindQuestion(questionID)
	if !ok {
		return nil, ErrQuestionNotFound
	}

	if existing := mission.FindAnswer(questionID); existing != nil && existing.IsComplete {
		metrics.AnswersSubmitted.WithLabelValues("already_complete").Inc()
		fb := feedbackFor(question, existing, mission.Status)
		fb.AlreadyComplete = true
		return fb, nil
	}
	if mission.Status.IsTerminal() {
		return nil, ErrMissionLocked
	}

	record := mission.AnswerFor(questionID, s.maxRetries)
	correct := grading.IsCorrect(answer, question.CorrectAnswerID)
	record.RecordAttempt(answer, correct, s.now().UTC())
	completed := mission.RefreshStatus()

	if err := s.save(ctx, mission); err != nil {
		return nil, err
	}

	result := "incorrect"
	if correct {
		result = "correct"
	}
	metrics.AnswersSubmitted.WithLabelValues(result).Inc()
	log.Info().
		Str("userID", userID).
		Str("questionID", questionID).
		Bool("correct", correct).
		Int("attempt", record.AttemptCount).
		Msg("Answer submitted")
	publishMissionEvent(ctx, s.publisher, event.EventTypeMissionAnswerSubmitted, mission, record)
	s.afterSave(ctx, mission, completed)

	return feedbackFor(question, record, mission.Status), nil
}

func (s *answerService) MarkFeedbackShown(ctx context.Context, userID, questionID string) (*model.DailyMission, error) {
	mission, err := findTodayMission(ctx, s.repo, userID, s.now())
	if err != nil {
		return nil, err
	}

	record := mission.FindAnswer(questionID)
	if record == nil {
		return nil, ErrAnswerNotFound
	}
	if record.FeedbackShown {
		return mission, nil
	}
	if mission.Status.IsTerminal() {
		return nil, ErrMissionLocked
	}

	record.FeedbackShown = true
	completed := mission.RefreshStatus()
	if err := s.save(ctx, mission); err != nil {
		return nil, err
	}
	s.afterSave(ctx, mission, completed)
	return mission, nil
}

func (s *answerService) ResetForRetry(ctx context.Context, userID, questionID string) (*RetryResult, error) {
	mission, err := findTodayMission(ctx, s.repo, userID, s.now())
	if err != nil {
		return nil, err
	}

	record := mission.FindAnswer(questionID)
	if record == nil {
		return &RetryResult{Reason: model.RetryAnswerNotFound}, nil
	}
	if reason := record.RetryRejection(); reason != "" {
		return &RetryResult{Reason: reason, RemainingAttempts: record.RemainingAttempts()}, nil
	}
	if mission.Status.IsTerminal() {
		return nil, ErrMissionLocked
	}

	record.ResetForRetry()
	mission.RefreshStatus()
	if err := s.save(ctx, mission); err != nil {
		return nil, err
	}
	log.Info().Str("userID", userID).Str("questionID", questionID).Int("remaining", record.RemainingAttempts()).Msg("Question reset for retry")
	return &RetryResult{Success: true, RemainingAttempts: record.RemainingAttempts()}, nil
}

func (s *answerService) UpdateProgress(ctx context.Context, userID string, currentQuestionIndex int, entries []ProgressEntry) (*model.DailyMission, error) {
	mission, err := findTodayMission(ctx, s.repo, userID, s.now())
	if err != nil {
		return nil, err
	}
	if mission.Status.IsTerminal() {
		return nil, ErrMissionLocked
	}
	if currentQuestionIndex < 0 || currentQuestionIndex > len(mission.Questions) {
		return nil, fmt.Errorf("%w: current_question_index %d out of range", ErrInvalidProgress, currentQuestionIndex)
	}

	seen := make(map[string]bool, len(entries))
	answers := make([]model.Answer, 0, len(entries))
	for _, e := range entries {
		question, ok := mission.FindQuestion(e.QuestionID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, e.QuestionID)
		}
		if seen[e.QuestionID] {
			return nil, fmt.Errorf("%w: duplicate answer for %s", ErrInvalidProgress, e.QuestionID)
		}
		seen[e.QuestionID] = true

		// attempt history is server-owned and survives the overwrite
		a := model.NewAnswer(e.QuestionID, s.maxRetries)
		if prev := mission.FindAnswer(e.QuestionID); prev != nil {
			a.AttemptCount = prev.AttemptCount
			a.AttemptsHistory = prev.AttemptsHistory
			a.MaxRetries = prev.MaxRetries
		}
		a.CurrentAnswer = e.Answer
		a.FeedbackShown = e.FeedbackShown
		if e.IsCorrect != nil {
			a.IsCorrect = *e.IsCorrect
		} else {
			a.IsCorrect = grading.IsCorrect(e.Answer, question.CorrectAnswerID)
		}
		if e.IsComplete != nil {
			a.IsComplete = *e.IsComplete
		} else {
			a.IsComplete = e.Answer != ""
		}
		answers = append(answers, a)
	}

	mission.CurrentQuestionIndex = currentQuestionIndex
	mission.Answers = answers
	completed := mission.RefreshStatus()
	if err := s.save(ctx, mission); err != nil {
		return nil, err
	}
	s.afterSave(ctx, mission, completed)
	return mission, nil
}
