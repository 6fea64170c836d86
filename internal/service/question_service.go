package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/dailyquest/internal/catalog"
	"github.com/lshigami/dailyquest/internal/model"
	"github.com/lshigami/dailyquest/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuestionService manages the question catalog missions and practice draw from.
type QuestionService interface {
	GetQuestion(ctx context.Context, questionID string) (*model.Question, error)
	// ImportQuestions validates and upserts questions by id.
	ImportQuestions(ctx context.Context, questions []model.Question) (int, error)
	// SeedFromFile loads a CSV export and imports it.
	SeedFromFile(ctx context.Context, path string) (int, error)
}

type questionService struct {
	repo repository.QuestionRepository
}

func NewQuestionService(repo repository.QuestionRepository) QuestionService {
	return &questionService{repo: repo}
}

func (s *questionService) GetQuestion(ctx context.Context, questionID string) (*model.Question, error) {
	q, err := s.repo.GetQuestionByID(ctx, questionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrQuestionNotInCatalog
	}
	if err != nil {
		return nil, fmt.Errorf("loading question: %w", err)
	}
	return q, nil
}

func validateQuestion(q *model.Question) error {
	if q.QuestionID == "" || q.QuestionText == "" || q.SkillArea == "" {
		return fmt.Errorf("%w: question_id, question_text and skill_area are required", ErrInvalidQuestion)
	}
	if len(q.Choices) == 0 {
		return fmt.Errorf("%w: %s has no choices", ErrInvalidQuestion, q.QuestionID)
	}
	seen := map[string]bool{}
	for _, c := range q.Choices {
		if c.ID == "" {
			return fmt.Errorf("%w: %s has a choice without an id", ErrInvalidQuestion, q.QuestionID)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %s repeats choice %s", ErrInvalidQuestion, q.QuestionID, c.ID)
		}
		seen[c.ID] = true
	}
	if !seen[q.CorrectAnswerID] {
		return fmt.Errorf("%w: %s correct answer %q is not a choice", ErrInvalidQuestion, q.QuestionID, q.CorrectAnswerID)
	}
	return nil
}

func (s *questionService) ImportQuestions(ctx context.Context, questions []model.Question) (int, error) {
	ids := map[string]bool{}
	for i := range questions {
		if err := validateQuestion(&questions[i]); err != nil {
			return 0, err
		}
		if ids[questions[i].QuestionID] {
			return 0, fmt.Errorf("%w: duplicate question_id %s", ErrInvalidQuestion, questions[i].QuestionID)
		}
		ids[questions[i].QuestionID] = true
	}
	if len(questions) == 0 {
		return 0, nil
	}
	if err := s.repo.UpsertQuestions(ctx, questions); err != nil {
		log.Error().Err(err).Int("count", len(questions)).Msg("Failed to upsert questions")
		return 0, fmt.Errorf("saving questions: %w", err)
	}
	log.Info().Int("count", len(questions)).Msg("Questions imported")
	return len(questions), nil
}

func (s *questionService) SeedFromFile(ctx context.Context, path string) (int, error) {
	questions, err := catalog.LoadFile(path)
	if err != nil {
		return 0, err
	}
	return s.ImportQuestions(ctx, questions)
}
