package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/dailyquest/internal/event"
	"github.com/lshigami/dailyquest/internal/grading"
	"github.com/lshigami/dailyquest/internal/metrics"
	"github.com/lshigami/dailyquest/internal/model"
	"github.com/lshigami/dailyquest/internal/repository"
	"github.com/rs/zerolog/log"
)

// TopicCatalog supplies practice questions by skill area.
type TopicCatalog interface {
	Topics(ctx context.Context) ([]string, error)
	CountByTopic(ctx context.Context, topic string) (int64, error)
	GetQuestionsByTopic(ctx context.Context, topic string, limit int) ([]model.Question, error)
}

type PracticeProgress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

type PracticeFeedback struct {
	AlreadyAnswered bool              `json:"already_answered"`
	IsCorrect       bool              `json:"is_correct"`
	CorrectAnswer   string            `json:"correct_answer"`
	Explanation     string            `json:"explanation"`
	UserAnswer      string            `json:"user_answer"`
	SessionComplete bool              `json:"session_complete"`
	Progress        *PracticeProgress `json:"progress,omitempty"`
}

type PracticeSummary struct {
	SessionID         string                      `json:"session_id"`
	Topic             string                      `json:"topic"`
	Status            model.PracticeSessionStatus `json:"status"`
	CreatedAt         time.Time                   `json:"created_at"`
	CompletedAt       *time.Time                  `json:"completed_at,omitempty"`
	Score             model.PracticeScore         `json:"score"`
	QuestionsAnswered int                         `json:"questions_answered"`
	TotalQuestions    int                         `json:"total_questions"`
	CorrectAnswers    int                         `json:"correct_answers"`
}

const (
	DefaultSessionListLimit = 10
	MaxSessionListLimit     = 50
)

type PracticeService interface {
	CreateSession(ctx context.Context, userID, topic string, questionCount int) (*model.PracticeSession, error)
	GetSession(ctx context.Context, sessionID string) (*model.PracticeSession, error)
	SubmitAnswer(ctx context.Context, sessionID, questionID, answer string) (*PracticeFeedback, error)
	GetSummary(ctx context.Context, sessionID string) (*PracticeSummary, error)
	ListTopics(ctx context.Context) ([]model.TopicInfo, error)
	ListUserSessions(ctx context.Context, userID string, status *model.PracticeSessionStatus, limit int) ([]model.PracticeSession, error)
	GetUserStats(ctx context.Context, userID string) (*model.PracticeStats, error)
}

type practiceService struct {
	repo      repository.PracticeRepository
	catalog   TopicCatalog
	publisher event.Publisher
	now       func() time.Time
}

func NewPracticeService(repo repository.PracticeRepository, catalog TopicCatalog, publisher event.Publisher) PracticeService {
	return &practiceService{repo: repo, catalog: catalog, publisher: publisher, now: time.Now}
}

func (s *practiceService) CreateSession(ctx context.Context, userID, topic string, questionCount int) (*model.PracticeSession, error) {
	if questionCount < 1 || questionCount > model.MaxPracticeQuestions {
		return nil, ErrInvalidQuestionCount
	}

	available, err := s.catalog.CountByTopic(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("counting questions for topic: %w", err)
	}
	if available < int64(questionCount) {
		return nil, fmt.Errorf("%w: topic '%s' only has %d questions, but %d were requested",
			ErrInsufficientQuestions, topic, available, questionCount)
	}

	questions, err := s.catalog.GetQuestionsByTopic(ctx, topic, questionCount)
	if err != nil {
		return nil, fmt.Errorf("loading questions for topic: %w", err)
	}
	if len(questions) < questionCount {
		return nil, fmt.Errorf("%w: could not retrieve %d questions for topic '%s'",
			ErrInsufficientQuestions, questionCount, topic)
	}

	session := &model.PracticeSession{
		SessionID:     model.NewPracticeSessionID(),
		UserID:        userID,
		Topic:         topic,
		QuestionCount: questionCount,
		Questions:     questions,
		Answers:       []model.PracticeAnswer{},
		Status:        model.PracticeInProgress,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("saving practice session: %w", err)
	}
	log.Info().Str("userID", userID).Str("sessionID", session.SessionID).Str("topic", topic).Msg("Practice session created")
	return session, nil
}

func (s *practiceService) GetSession(ctx context.Context, sessionID string) (*model.PracticeSession, error) {
	session, err := s.repo.FindSession(ctx, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading practice session: %w", err)
	}
	return session, nil
}

func (s *practiceService) SubmitAnswer(ctx context.Context, sessionID, questionID, answer string) (*PracticeFeedback, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.PracticeCompleted {
		return nil, ErrSessionAlreadyCompleted
	}

	question, ok := session.FindQuestion(questionID)
	if !ok {
		return nil, ErrQuestionNotInSession
	}

	if existing := session.FindAnswer(questionID); existing != nil {
		return &PracticeFeedback{
			AlreadyAnswered: true,
			IsCorrect:       existing.IsCorrect,
			CorrectAnswer:   question.CorrectAnswerID,
			Explanation:     question.FeedbackText,
			UserAnswer:      existing.UserAnswer,
		}, nil
	}

	correct := grading.IsCorrect(answer, question.CorrectAnswerID)
	session.Answers = append(session.Answers, model.PracticeAnswer{
		QuestionID: questionID,
		UserAnswer: answer,
		IsCorrect:  correct,
		AnsweredAt: s.now().UTC(),
	})
	if session.AllAnswered() {
		session.MarkCompleted(s.now().UTC())
	}
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("saving practice answer: %w", err)
	}

	complete := session.Status == model.PracticeCompleted
	if complete {
		s.publishCompleted(ctx, session)
	}
	return &PracticeFeedback{
		IsCorrect:       correct,
		CorrectAnswer:   question.CorrectAnswerID,
		Explanation:     question.FeedbackText,
		UserAnswer:      answer,
		SessionComplete: complete,
		Progress:        &PracticeProgress{Answered: len(session.Answers), Total: len(session.Questions)},
	}, nil
}

func (s *practiceService) publishCompleted(ctx context.Context, session *model.PracticeSession) {
	metrics.PracticeSessionsCompleted.Inc()
	log.Info().Str("sessionID", session.SessionID).Int("correct", session.CorrectCount).Msg("Practice session completed")
	if s.publisher == nil {
		return
	}
	score := session.Score()
	err := s.publisher.PublishPracticeEvent(ctx, &event.PracticeEvent{
		EventType:      event.EventTypePracticeCompleted,
		SessionID:      session.SessionID,
		UserID:         session.UserID,
		Topic:          session.Topic,
		TotalQuestions: score.TotalQuestions,
		CorrectAnswers: score.CorrectAnswers,
		Accuracy:       score.Accuracy,
		Timestamp:      time.Now().Unix(),
	})
	if err != nil {
		log.Warn().Err(err).Str("sessionID", session.SessionID).Msg("Failed to publish practice event")
	}
}

func (s *practiceService) GetSummary(ctx context.Context, sessionID string) (*PracticeSummary, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	score := session.Score()
	correct := score.CorrectAnswers
	if session.Status == model.PracticeCompleted {
		correct = session.CorrectCount
	}
	return &PracticeSummary{
		SessionID:         session.SessionID,
		Topic:             session.Topic,
		Status:            session.Status,
		CreatedAt:         session.CreatedAt,
		CompletedAt:       session.CompletedAt,
		Score:             score,
		QuestionsAnswered: len(session.Answers),
		TotalQuestions:    len(session.Questions),
		CorrectAnswers:    correct,
	}, nil
}

func (s *practiceService) ListTopics(ctx context.Context) ([]model.TopicInfo, error) {
	topics, err := s.catalog.Topics(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	infos := make([]model.TopicInfo, 0, len(topics))
	for _, t := range topics {
		count, err := s.catalog.CountByTopic(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("counting questions for %s: %w", t, err)
		}
		infos = append(infos, model.TopicInfo{Name: t, QuestionCount: count, Available: count > 0})
	}
	return infos, nil
}

func (s *practiceService) ListUserSessions(ctx context.Context, userID string, status *model.PracticeSessionStatus, limit int) ([]model.PracticeSession, error) {
	if limit <= 0 {
		limit = DefaultSessionListLimit
	}
	if limit > MaxSessionListLimit {
		limit = MaxSessionListLimit
	}
	sessions, err := s.repo.GetUserSessions(ctx, userID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("listing practice sessions: %w", err)
	}
	return sessions, nil
}

func (s *practiceService) GetUserStats(ctx context.Context, userID string) (*model.PracticeStats, error) {
	stats, err := s.repo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading practice stats: %w", err)
	}
	return stats, nil
}
