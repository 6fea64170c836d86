package repository

import (
	"context"
	"sort"

	"github.com/lshigami/dailyquest/internal/model"
)

type PracticeRepository interface {
	CreateSession(ctx context.Context, session *model.PracticeSession) error
	// FindSession returns ErrNotFound for unknown ids.
	FindSession(ctx context.Context, sessionID string) (*model.PracticeSession, error)
	UpdateSession(ctx context.Context, session *model.PracticeSession) error
	// GetUserSessions lists newest first; a nil status matches every session.
	GetUserSessions(ctx context.Context, userID string, status *model.PracticeSessionStatus, limit int) ([]model.PracticeSession, error)
	// GetUserStats aggregates the user's completed sessions.
	GetUserStats(ctx context.Context, userID string) (*model.PracticeStats, error)
}

func aggregatePracticeStats(completed []model.PracticeSession) *model.PracticeStats {
	stats := &model.PracticeStats{TopicsPracticed: []string{}}
	topics := map[string]struct{}{}
	for _, s := range completed {
		stats.TotalSessions++
		stats.TotalQuestions += s.QuestionCount
		stats.TotalCorrect += s.CorrectCount
		topics[s.Topic] = struct{}{}
	}
	for t := range topics {
		stats.TopicsPracticed = append(stats.TopicsPracticed, t)
	}
	sort.Strings(stats.TopicsPracticed)
	if stats.TotalQuestions > 0 {
		stats.Accuracy = float64(stats.TotalCorrect) / float64(stats.TotalQuestions) * 100
	}
	return stats
}
