package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/lshigami/dailyquest/internal/event"
	"github.com/lshigami/dailyquest/internal/metrics"
	"github.com/lshigami/dailyquest/internal/missionday"
	"github.com/lshigami/dailyquest/internal/model"
	"github.com/lshigami/dailyquest/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuestionCatalog is the read-only question lookup missions are built from.
type QuestionCatalog interface {
	GetAllQuestions(ctx context.Context) (map[string]model.Question, error)
	// GetQuestionByID returns repository.ErrNotFound for unknown ids.
	GetQuestionByID(ctx context.Context, questionID string) (*model.Question, error)
}

type MissionService interface {
	// FindToday returns ErrNoActiveMission when the user has no mission today.
	FindToday(ctx context.Context, userID string) (*model.DailyMission, error)
	// Generate creates the mission for the day containing ref. It never overwrites.
	Generate(ctx context.Context, userID string, ref time.Time) (*model.DailyMission, error)
	// GetOrGenerate finds today's mission, generating it first if absent.
	GetOrGenerate(ctx context.Context, userID string) (*model.DailyMission, error)
}

type missionService struct {
	repo      repository.MissionRepository
	catalog   QuestionCatalog
	publisher event.Publisher
	now       func() time.Time
}

func NewMissionService(repo repository.MissionRepository, catalog QuestionCatalog, publisher event.Publisher) MissionService {
	return &missionService{repo: repo, catalog: catalog, publisher: publisher, now: time.Now}
}

func (s *missionService) FindToday(ctx context.Context, userID string) (*model.DailyMission, error) {
	return findTodayMission(ctx, s.repo, userID, s.now())
}

func findTodayMission(ctx context.Context, repo repository.MissionRepository, userID string, now time.Time) (*model.DailyMission, error) {
	mission, err := repo.FindMission(ctx, userID, missionday.Of(now))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoActiveMission
	}
	if err != nil {
		return nil, fmt.Errorf("loading today's mission: %w", err)
	}
	return mission, nil
}

func (s *missionService) Generate(ctx context.Context, userID string, ref time.Time) (*model.DailyMission, error) {
	today := missionday.Of(ref)

	_, err := s.repo.FindMission(ctx, userID, today)
	if err == nil {
		return nil, ErrMissionAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking for existing mission: %w", err)
	}

	all, err := s.catalog.GetAllQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading question catalog: %w", err)
	}
	if len(all) < model.MissionQuestionCount {
		log.Warn().Int("available", len(all)).Msg("Question catalog too small to generate mission")
		return nil, ErrNoQuestionsAvailable
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	questions := make([]model.Question, 0, model.MissionQuestionCount)
	for _, i := range rand.Perm(len(ids))[:model.MissionQuestionCount] {
		q, err := s.catalog.GetQuestionByID(ctx, ids[i])
		if err != nil || q == nil {
			log.Error().Err(err).Str("questionID", ids[i]).Msg("Sampled question could not be resolved")
			return nil, fmt.Errorf("%w: question %s could not be resolved", ErrMissionGeneration, ids[i])
		}
		questions = append(questions, *q)
	}

	stamp := ref.UTC()
	mission := &model.DailyMission{
		UserID:               userID,
		Date:                 today,
		Questions:            questions,
		Status:               model.MissionNotStarted,
		CurrentQuestionIndex: 0,
		Answers:              []model.Answer{},
		CreatedAt:            stamp,
		UpdatedAt:            stamp,
	}
	if err := s.repo.CreateMission(ctx, mission); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrMissionAlreadyExists
		}
		return nil, fmt.Errorf("saving generated mission: %w", err)
	}

	metrics.MissionsGenerated.Inc()
	log.Info().Str("userID", userID).Str("date", today.String()).Msg("Generated daily mission")
	publishMissionEvent(ctx, s.publisher, event.EventTypeMissionGenerated, mission, nil)
	return mission, nil
}

func (s *missionService) GetOrGenerate(ctx context.Context, userID string) (*model.DailyMission, error) {
	mission, err := s.FindToday(ctx, userID)
	if err == nil {
		return mission, nil
	}
	if !errors.Is(err, ErrNoActiveMission) {
		return nil, err
	}

	mission, err = s.Generate(ctx, userID, s.now())
	if errors.Is(err, ErrMissionAlreadyExists) {
		// lost a race with a concurrent request
		return s.FindToday(ctx, userID)
	}
	return mission, err
}

// publishMissionEvent logs publish failures rather than failing the request.
func publishMissionEvent(ctx context.Context, p event.Publisher, eventType string, m *model.DailyMission, answer *model.Answer) {
	if p == nil {
		return
	}
	e := &event.MissionEvent{
		EventType: eventType,
		UserID:    m.UserID,
		Date:      m.Date.String(),
		Status:    m.Status.String(),
		Timestamp: time.Now().Unix(),
	}
	if answer != nil {
		correct := answer.IsCorrect
		e.QuestionID = answer.QuestionID
		e.IsCorrect = &correct
		e.Attempt = answer.AttemptCount
	}
	if err := p.PublishMissionEvent(ctx, e); err != nil {
		log.Warn().Err(err).Str("eventType", eventType).Str("userID", m.UserID).Msg("Failed to publish mission event")
	}
}
