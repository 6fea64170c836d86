package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/dailyquest/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type practiceSessionRow struct {
	ID            uint           `gorm:"primarykey"`
	SessionID     string         `gorm:"type:varchar(32);uniqueIndex;not null"`
	UserID        string         `gorm:"type:varchar(128);index;not null"`
	Topic         string         `gorm:"not null"`
	QuestionCount int            `gorm:"not null"`
	Questions     datatypes.JSON `gorm:"not null"`
	Answers       datatypes.JSON `gorm:"not null"`
	Status        string         `gorm:"type:varchar(20);index;not null"`
	CorrectCount  int            `gorm:"not null;default:0"`
	CreatedAt     time.Time      `gorm:"autoCreateTime:false"`
	CompletedAt   *time.Time
}

func (practiceSessionRow) TableName() string { return "practice_sessions" }

func newPracticeSessionRow(s *model.PracticeSession) (*practiceSessionRow, error) {
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return nil, fmt.Errorf("encoding questions: %w", err)
	}
	answers := s.Answers
	if answers == nil {
		answers = []model.PracticeAnswer{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("encoding answers: %w", err)
	}
	return &practiceSessionRow{
		SessionID:     s.SessionID,
		UserID:        s.UserID,
		Topic:         s.Topic,
		QuestionCount: s.QuestionCount,
		Questions:     datatypes.JSON(questions),
		Answers:       datatypes.JSON(answersJSON),
		Status:        s.Status.String(),
		CorrectCount:  s.CorrectCount,
		CreatedAt:     s.CreatedAt,
		CompletedAt:   s.CompletedAt,
	}, nil
}

func (r *practiceSessionRow) toModel() (*model.PracticeSession, error) {
	status, err := model.ParsePracticeSessionStatus(r.Status)
	if err != nil {
		return nil, err
	}
	s := &model.PracticeSession{
		SessionID:     r.SessionID,
		UserID:        r.UserID,
		Topic:         r.Topic,
		QuestionCount: r.QuestionCount,
		Status:        status,
		CorrectCount:  r.CorrectCount,
		CreatedAt:     r.CreatedAt,
		CompletedAt:   r.CompletedAt,
	}
	if err := json.Unmarshal(r.Questions, &s.Questions); err != nil {
		return nil, fmt.Errorf("decoding questions: %w", err)
	}
	if err := json.Unmarshal(r.Answers, &s.Answers); err != nil {
		return nil, fmt.Errorf("decoding answers: %w", err)
	}
	return s, nil
}

type gormPracticeRepository struct {
	db *gorm.DB
}

func NewGormPracticeRepository(db *gorm.DB) PracticeRepository {
	return &gormPracticeRepository{db: db}
}

func (r *gormPracticeRepository) CreateSession(ctx context.Context, session *model.PracticeSession) error {
	row, err := newPracticeSessionRow(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *gormPracticeRepository) FindSession(ctx context.Context, sessionID string) (*model.PracticeSession, error) {
	var row practiceSessionRow
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toModel()
}

func (r *gormPracticeRepository) UpdateSession(ctx context.Context, session *model.PracticeSession) error {
	row, err := newPracticeSessionRow(session)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&practiceSessionRow{}).
		Where("session_id = ?", session.SessionID).
		Select("answers", "status", "correct_count", "completed_at").
		Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormPracticeRepository) GetUserSessions(ctx context.Context, userID string, status *model.PracticeSessionStatus, limit int) ([]model.PracticeSession, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		q = q.Where("status = ?", status.String())
	}
	var rows []practiceSessionRow
	if err := q.Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	sessions := make([]model.PracticeSession, 0, len(rows))
	for i := range rows {
		s, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, nil
}

func (r *gormPracticeRepository) GetUserStats(ctx context.Context, userID string) (*model.PracticeStats, error) {
	var rows []practiceSessionRow
	err := r.db.WithContext(ctx).
		Select("topic", "question_count", "correct_count").
		Where("user_id = ? AND status = ?", userID, model.PracticeCompleted.String()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	completed := make([]model.PracticeSession, 0, len(rows))
	for _, row := range rows {
		completed = append(completed, model.PracticeSession{
			Topic:         row.Topic,
			QuestionCount: row.QuestionCount,
			CorrectCount:  row.CorrectCount,
		})
	}
	return aggregatePracticeStats(completed), nil
}
