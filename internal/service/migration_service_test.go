package service

import (
	"context"
	"testing"

	"github.com/lshigami/dailyquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAnswers(t *testing.T) {
	repo := newFakeMissionRepo()
	legacy := reviewMission("u1", day(10), model.MissionComplete, 0)
	legacy.Answers = []model.Answer{
		{QuestionID: legacy.Questions[0].QuestionID, LegacyAnswer: "A", FeedbackShown: true},
		{QuestionID: legacy.Questions[1].QuestionID, LegacyAnswer: "B", IsCorrect: true},
	}
	repo.put(legacy)
	repo.put(reviewMission("u1", day(11), model.MissionComplete, 1))

	svc := &migrationService{repo: repo, now: clock(fixedNow)}
	res, err := svc.MigrateAnswers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &MigrationResult{TotalProcessed: 2, MigratedCount: 1}, res)

	migrated := repo.get("u1", day(10))
	first := migrated.Answers[0]
	assert.Equal(t, "A", first.CurrentAnswer)
	assert.Equal(t, "", first.LegacyAnswer)
	assert.Equal(t, 1, first.AttemptCount)
	require.Len(t, first.AttemptsHistory, 1)
	assert.Equal(t, legacy.UpdatedAt, first.AttemptsHistory[0].Timestamp)
	assert.True(t, first.IsComplete)
	assert.Equal(t, model.DefaultMaxRetries, first.MaxRetries)

	second := migrated.Answers[1]
	assert.False(t, second.IsComplete)
	assert.True(t, second.AttemptsHistory[0].IsCorrect)

	// second run is a no-op
	res, err = svc.MigrateAnswers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &MigrationResult{TotalProcessed: 2}, res)
}

func TestMigrateAnswersCountsSaveFailures(t *testing.T) {
	repo := newFakeMissionRepo()
	legacy := reviewMission("u1", day(10), model.MissionComplete, 0)
	legacy.Answers = []model.Answer{{QuestionID: legacy.Questions[0].QuestionID, LegacyAnswer: "A"}}
	repo.put(legacy)
	repo.saveErr = func(*model.DailyMission) error { return errBoom }

	svc := &migrationService{repo: repo, now: clock(fixedNow)}
	res, err := svc.MigrateAnswers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &MigrationResult{TotalProcessed: 1, ErrorCount: 1}, res)
}
