package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/lshigami/dailyquest/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type missionRow struct {
	ID                   uint           `gorm:"primarykey"`
	UserID               string         `gorm:"type:varchar(128);not null;uniqueIndex:idx_mission_user_date"`
	MissionDate          string         `gorm:"type:varchar(10);not null;uniqueIndex:idx_mission_user_date;index"`
	Status               string         `gorm:"type:varchar(20);not null;index"`
	CurrentQuestionIndex int            `gorm:"not null;default:0"`
	Questions            datatypes.JSON `gorm:"not null"`
	Answers              datatypes.JSON `gorm:"not null"`
	CreatedAt            time.Time      `gorm:"autoCreateTime:false"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime:false"`
}

func (missionRow) TableName() string { return "daily_missions" }

func newMissionRow(m *model.DailyMission) (*missionRow, error) {
	questions, err := json.Marshal(m.Questions)
	if err != nil {
		return nil, fmt.Errorf("encoding questions: %w", err)
	}
	answers := m.Answers
	if answers == nil {
		answers = []model.Answer{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("encoding answers: %w", err)
	}
	return &missionRow{
		UserID:               m.UserID,
		MissionDate:          m.Date.String(),
		Status:               m.Status.String(),
		CurrentQuestionIndex: m.CurrentQuestionIndex,
		Questions:            datatypes.JSON(questions),
		Answers:              datatypes.JSON(answersJSON),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}, nil
}

func (r *missionRow) toModel() (*model.DailyMission, error) {
	date, err := civil.ParseDate(r.MissionDate)
	if err != nil {
		return nil, fmt.Errorf("mission %d has bad date %q: %w", r.ID, r.MissionDate, err)
	}
	status, err := model.ParseMissionStatus(r.Status)
	if err != nil {
		return nil, err
	}
	m := &model.DailyMission{
		UserID:               r.UserID,
		Date:                 date,
		Status:               status,
		CurrentQuestionIndex: r.CurrentQuestionIndex,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
	if err := json.Unmarshal(r.Questions, &m.Questions); err != nil {
		return nil, fmt.Errorf("decoding questions: %w", err)
	}
	if err := json.Unmarshal(r.Answers, &m.Answers); err != nil {
		return nil, fmt.Errorf("decoding answers: %w", err)
	}
	return m, nil
}

func rowsToMissions(rows []missionRow) ([]model.DailyMission, error) {
	missions := make([]model.DailyMission, 0, len(rows))
	for i := range rows {
		m, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		missions = append(missions, *m)
	}
	return missions, nil
}

type gormMissionRepository struct {
	db *gorm.DB
}

func NewGormMissionRepository(db *gorm.DB) MissionRepository {
	return &gormMissionRepository{db: db}
}

func (r *gormMissionRepository) FindMission(ctx context.Context, userID string, date civil.Date) (*model.DailyMission, error) {
	var row missionRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND mission_date = ?", userID, date.String()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toModel()
}

func (r *gormMissionRepository) CreateMission(ctx context.Context, mission *model.DailyMission) error {
	row, err := newMissionRow(mission)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&missionRow{}).
			Where("user_id = ? AND mission_date = ?", row.UserID, row.MissionDate).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		if err := tx.Create(row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicate
			}
			return err
		}
		return nil
	})
}

func (r *gormMissionRepository) SaveMission(ctx context.Context, mission *model.DailyMission) error {
	row, err := newMissionRow(mission)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "mission_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "current_question_index", "questions", "answers", "updated_at",
		}),
	}).Create(row).Error
}

func (r *gormMissionRepository) GetMissionsToArchive(ctx context.Context, before civil.Date) ([]model.DailyMission, error) {
	var rows []missionRow
	err := r.db.WithContext(ctx).
		Where("mission_date < ? AND status IN ?", before.String(), statusNames(archivableStatuses)).
		Order("mission_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rowsToMissions(rows)
}

func (r *gormMissionRepository) FindMissionsByStatus(ctx context.Context, userID string, statuses ...model.MissionStatus) ([]model.DailyMission, error) {
	var rows []missionRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, statusNames(statuses)).
		Order("mission_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rowsToMissions(rows)
}

func (r *gormMissionRepository) ForEachMission(ctx context.Context, fn func(*model.DailyMission) error) error {
	var rows []missionRow
	return r.db.WithContext(ctx).FindInBatches(&rows, 200, func(tx *gorm.DB, batch int) error {
		for i := range rows {
			m, err := rows[i].toModel()
			if err != nil {
				return err
			}
			if err := fn(m); err != nil {
				return err
			}
		}
		return nil
	}).Error
}
