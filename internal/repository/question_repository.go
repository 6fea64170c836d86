package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lshigami/dailyquest/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type questionRow struct {
	ID              uint           `gorm:"primarykey"`
	QuestionID      string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	QuestionText    string         `gorm:"type:text;not null"`
	SkillArea       string         `gorm:"type:varchar(128);index;not null"`
	DifficultyLevel int            `gorm:"not null;default:1"`
	Choices         datatypes.JSON `gorm:"not null"`
	CorrectAnswerID string         `gorm:"type:varchar(64);not null"`
	FeedbackText    string         `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (questionRow) TableName() string { return "questions" }

func newQuestionRow(q *model.Question) (*questionRow, error) {
	choices, err := json.Marshal(q.Choices)
	if err != nil {
		return nil, fmt.Errorf("encoding choices for %s: %w", q.QuestionID, err)
	}
	return &questionRow{
		QuestionID:      q.QuestionID,
		QuestionText:    q.QuestionText,
		SkillArea:       q.SkillArea,
		DifficultyLevel: q.DifficultyLevel,
		Choices:         datatypes.JSON(choices),
		CorrectAnswerID: q.CorrectAnswerID,
		FeedbackText:    q.FeedbackText,
	}, nil
}

func (r *questionRow) toModel() (model.Question, error) {
	q := model.Question{
		QuestionID:      r.QuestionID,
		QuestionText:    r.QuestionText,
		SkillArea:       r.SkillArea,
		DifficultyLevel: r.DifficultyLevel,
		CorrectAnswerID: r.CorrectAnswerID,
		FeedbackText:    r.FeedbackText,
	}
	if err := json.Unmarshal(r.Choices, &q.Choices); err != nil {
		return q, fmt.Errorf("decoding choices for %s: %w", r.QuestionID, err)
	}
	return q, nil
}

// QuestionRepository is the read side of the question catalog plus the
// bulk upsert used by seeding.
type QuestionRepository interface {
	GetAllQuestions(ctx context.Context) (map[string]model.Question, error)
	// GetQuestionByID returns ErrNotFound for unknown ids.
	GetQuestionByID(ctx context.Context, questionID string) (*model.Question, error)
	// GetQuestionsByTopic samples up to limit random questions from one skill area.
	GetQuestionsByTopic(ctx context.Context, topic string, limit int) ([]model.Question, error)
	CountByTopic(ctx context.Context, topic string) (int64, error)
	Topics(ctx context.Context) ([]string, error)
	UpsertQuestions(ctx context.Context, questions []model.Question) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) GetAllQuestions(ctx context.Context) (map[string]model.Question, error) {
	var rows []questionRow
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	questions := make(map[string]model.Question, len(rows))
	for i := range rows {
		q, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		questions[q.QuestionID] = q
	}
	return questions, nil
}

func (r *questionRepository) GetQuestionByID(ctx context.Context, questionID string) (*model.Question, error) {
	var row questionRow
	err := r.db.WithContext(ctx).Where("question_id = ?", questionID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	q, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) GetQuestionsByTopic(ctx context.Context, topic string, limit int) ([]model.Question, error) {
	var rows []questionRow
	if err := r.db.WithContext(ctx).Where("skill_area = ?", topic).Find(&rows).Error; err != nil {
		return nil, err
	}
	rand.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
	if limit < len(rows) {
		rows = rows[:limit]
	}
	questions := make([]model.Question, 0, len(rows))
	for i := range rows {
		q, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (r *questionRepository) CountByTopic(ctx context.Context, topic string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&questionRow{}).Where("skill_area = ?", topic).Count(&count).Error
	return count, err
}

func (r *questionRepository) Topics(ctx context.Context) ([]string, error) {
	var topics []string
	err := r.db.WithContext(ctx).Model(&questionRow{}).
		Distinct("skill_area").
		Order("skill_area ASC").
		Pluck("skill_area", &topics).Error
	return topics, err
}

func (r *questionRepository) UpsertQuestions(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	rows := make([]*questionRow, 0, len(questions))
	for i := range questions {
		row, err := newQuestionRow(&questions[i])
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"question_text", "skill_area", "difficulty_level", "choices", "correct_answer_id", "feedback_text", "updated_at",
		}),
	}).CreateInBatches(rows, 100).Error
}

// Models lists the tables owned by this package, for AutoMigrate.
func Models() []any {
	return []any{&questionRow{}, &missionRow{}, &practiceSessionRow{}}
}
