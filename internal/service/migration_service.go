package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/dailyquest/internal/model"
	"github.com/lshigami/dailyquest/internal/repository"
	"github.com/rs/zerolog/log"
)

type MigrationResult struct {
	TotalProcessed int `json:"total_processed"`
	MigratedCount  int `json:"migrated_count"`
	ErrorCount     int `json:"error_count"`
}

type MigrationService interface {
	// MigrateAnswers upgrades answer records written before attempt tracking.
	// It is idempotent: already migrated missions are counted but not saved.
	MigrateAnswers(ctx context.Context) (*MigrationResult, error)
}

type migrationService struct {
	repo repository.MissionRepository
	now  func() time.Time
}

func NewMigrationService(repo repository.MissionRepository) MigrationService {
	return &migrationService{repo: repo, now: time.Now}
}

func migrateMission(m *model.DailyMission, at time.Time) bool {
	changed := false
	for i := range m.Answers {
		if m.Answers[i].NeedsMigration() {
			m.Answers[i].Migrate(at)
			changed = true
		}
	}
	return changed
}

func (s *migrationService) MigrateAnswers(ctx context.Context) (*MigrationResult, error) {
	result := &MigrationResult{}
	err := s.repo.ForEachMission(ctx, func(m *model.DailyMission) error {
		result.TotalProcessed++
		stamp := m.UpdatedAt
		if stamp.IsZero() {
			stamp = s.now().UTC()
		}
		if !migrateMission(m, stamp) {
			return nil
		}
		m.UpdatedAt = s.now().UTC()
		if err := s.repo.SaveMission(ctx, m); err != nil {
			result.ErrorCount++
			log.Error().Err(err).Str("userID", m.UserID).Str("date", m.Date.String()).Msg("Failed to migrate mission answers")
			return nil
		}
		result.MigratedCount++
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("iterating missions: %w", err)
	}
	log.Info().
		Int("processed", result.TotalProcessed).
		Int("migrated", result.MigratedCount).
		Int("errors", result.ErrorCount).
		Msg("Answer migration finished")
	return result, nil
}
