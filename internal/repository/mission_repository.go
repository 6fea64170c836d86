package repository

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/lshigami/dailyquest/internal/model"
)

// MissionRepository persists daily missions keyed by (user, date).
type MissionRepository interface {
	// FindMission returns ErrNotFound when no mission exists for the key.
	FindMission(ctx context.Context, userID string, date civil.Date) (*model.DailyMission, error)
	// CreateMission inserts a new mission and returns ErrDuplicate if the key is taken.
	CreateMission(ctx context.Context, mission *model.DailyMission) error
	// SaveMission upserts by (user, date).
	SaveMission(ctx context.Context, mission *model.DailyMission) error
	// GetMissionsToArchive lists missions dated before the given day that are
	// neither complete nor archived.
	GetMissionsToArchive(ctx context.Context, before civil.Date) ([]model.DailyMission, error)
	// FindMissionsByStatus lists a user's missions in the given statuses, newest date first.
	FindMissionsByStatus(ctx context.Context, userID string, statuses ...model.MissionStatus) ([]model.DailyMission, error)
	// ForEachMission visits every stored mission.
	ForEachMission(ctx context.Context, fn func(*model.DailyMission) error) error
}

var archivableStatuses = []model.MissionStatus{model.MissionNotStarted, model.MissionInProgress}

func statusNames(statuses []model.MissionStatus) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
