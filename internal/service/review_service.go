package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/lshigami/dailyquest/internal/missionday"
	"github.com/lshigami/dailyquest/internal/model"
	"github.com/lshigami/dailyquest/internal/repository"
	"github.com/rs/zerolog/log"
)

type GroupBy string

const (
	GroupByNone  GroupBy = ""
	GroupByDate  GroupBy = "date"
	GroupByTopic GroupBy = "topic"
)

func ParseGroupBy(v string) (GroupBy, error) {
	switch GroupBy(v) {
	case GroupByNone, GroupByDate, GroupByTopic:
		return GroupBy(v), nil
	}
	return GroupByNone, ErrInvalidGroupBy
}

const defaultMistakesPerPage = 20

// Mistake is one wrong final answer replayed for review.
type Mistake struct {
	QuestionID        string               `json:"question_id"`
	QuestionText      string               `json:"question_text"`
	SkillArea         string               `json:"skill_area"`
	DifficultyLevel   int                  `json:"difficulty_level"`
	Choices           []model.ChoiceOption `json:"choices"`
	UserAnswerID      string               `json:"user_answer_id"`
	UserAnswerText    string               `json:"user_answer_text"`
	CorrectAnswerID   string               `json:"correct_answer_id"`
	CorrectAnswerText string               `json:"correct_answer_text"`
	Explanation       string               `json:"explanation"`
	MissionDate       civil.Date           `json:"mission_date"`
	CompletedAt       time.Time            `json:"completed_at"`
	AttemptCount      int                  `json:"attempt_count"`
}

type Pagination struct {
	CurrentPage  int  `json:"current_page"`
	TotalPages   int  `json:"total_pages"`
	TotalItems   int  `json:"total_items"`
	ItemsPerPage int  `json:"items_per_page"`
	HasNext      bool `json:"has_next"`
	HasPrevious  bool `json:"has_previous"`
}

type MistakeGroup struct {
	Key      string    `json:"key"`
	Count    int       `json:"count"`
	Mistakes []Mistake `json:"mistakes"`
}

type MistakeQuery struct {
	UserID       string
	Page         int
	ItemsPerPage int
	GroupBy      GroupBy
	SkillArea    string
}

// MistakesResult holds either a flat page of Mistakes or a page of Groups.
// GroupCounts always covers every group, not just the current page.
type MistakesResult struct {
	Mistakes      []Mistake      `json:"mistakes,omitempty"`
	Groups        []MistakeGroup `json:"groups,omitempty"`
	GroupCounts   map[string]int `json:"group_counts,omitempty"`
	GroupBy       GroupBy        `json:"group_by,omitempty"`
	Pagination    Pagination     `json:"pagination"`
	TotalMistakes int            `json:"total_mistakes"`
}

type MistakeStats struct {
	TotalMistakes       int            `json:"total_mistakes"`
	SkillAreasCount     int            `json:"skill_areas_count"`
	SkillAreas          []string       `json:"skill_areas"`
	DifficultyBreakdown map[string]int `json:"difficulty_breakdown"`
}

type MistakeExplanation struct {
	QuestionID  string     `json:"question_id"`
	MissionDate civil.Date `json:"mission_date"`
	Explanation string     `json:"explanation"`
	Tip         string     `json:"tip,omitempty"`
}

type ReviewService interface {
	GetUserMistakes(ctx context.Context, q MistakeQuery) (*MistakesResult, error)
	GetAvailableSkillAreas(ctx context.Context, userID string) ([]string, error)
	GetMistakeStats(ctx context.Context, userID string) (*MistakeStats, error)
	ExplainMistake(ctx context.Context, userID string, date civil.Date, questionID string) (*MistakeExplanation, error)
}

type reviewService struct {
	repo  repository.MissionRepository
	tutor TutorService
}

func NewReviewService(repo repository.MissionRepository, tutor TutorService) ReviewService {
	return &reviewService{repo: repo, tutor: tutor}
}

// ExtractMistakes walks missions in the given order and emits one Mistake per
// answer whose final submission was wrong.
func ExtractMistakes(missions []model.DailyMission) []Mistake {
	var mistakes []Mistake
	for i := range missions {
		m := &missions[i]
		for _, a := range m.Answers {
			if !a.IsMistake() {
				continue
			}
			q, ok := m.FindQuestion(a.QuestionID)
			if !ok {
				log.Warn().Str("userID", m.UserID).Str("questionID", a.QuestionID).Msg("Answer refers to a question missing from its mission")
				continue
			}
			mistakes = append(mistakes, Mistake{
				QuestionID:        q.QuestionID,
				QuestionText:      q.QuestionText,
				SkillArea:         q.SkillArea,
				DifficultyLevel:   q.DifficultyLevel,
				Choices:           q.Choices,
				UserAnswerID:      a.CurrentAnswer,
				UserAnswerText:    q.ChoiceText(a.CurrentAnswer),
				CorrectAnswerID:   q.CorrectAnswerID,
				CorrectAnswerText: q.ChoiceText(q.CorrectAnswerID),
				Explanation:       q.FeedbackText,
				MissionDate:       m.Date,
				CompletedAt:       m.UpdatedAt,
				AttemptCount:      a.AttemptCount,
			})
		}
	}
	return mistakes
}

func (s *reviewService) loadMistakes(ctx context.Context, userID string) ([]Mistake, error) {
	missions, err := s.repo.FindMissionsByStatus(ctx, userID, model.MissionComplete, model.MissionArchived)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Failed to load reviewable missions")
		return nil, fmt.Errorf("loading missions for review: %w", err)
	}
	return ExtractMistakes(missions), nil
}

func paginate(totalItems, page, perPage int) (Pagination, int, int) {
	if totalItems == 0 {
		return Pagination{CurrentPage: 1, ItemsPerPage: perPage}, 0, 0
	}
	totalPages := int(math.Ceil(float64(totalItems) / float64(perPage)))
	// pages past the end yield an empty slice; compare before multiplying
	// so huge page numbers cannot overflow
	start := totalItems
	if page <= totalPages {
		start = (page - 1) * perPage
	}
	end := totalItems
	if perPage < totalItems-start {
		end = start + perPage
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: perPage,
		HasNext:      page < totalPages,
		HasPrevious:  page > 1,
	}, start, end
}

func (s *reviewService) GetUserMistakes(ctx context.Context, q MistakeQuery) (*MistakesResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.ItemsPerPage < 1 {
		q.ItemsPerPage = defaultMistakesPerPage
	}

	all, err := s.loadMistakes(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	if q.SkillArea != "" {
		filtered := all[:0]
		for _, m := range all {
			if m.SkillArea == q.SkillArea {
				filtered = append(filtered, m)
			}
		}
		all = filtered
	}

	result := &MistakesResult{TotalMistakes: len(all), GroupBy: q.GroupBy}
	if q.GroupBy == GroupByNone {
		pagination, start, end := paginate(len(all), q.Page, q.ItemsPerPage)
		result.Pagination = pagination
		result.Mistakes = append([]Mistake{}, all[start:end]...)
		return result, nil
	}

	groups := groupMistakes(all, q.GroupBy)
	result.GroupCounts = make(map[string]int, len(groups))
	for _, g := range groups {
		result.GroupCounts[g.Key] = g.Count
	}
	pagination, start, end := paginate(len(groups), q.Page, q.ItemsPerPage)
	result.Pagination = pagination
	result.Groups = append([]MistakeGroup{}, groups[start:end]...)
	return result, nil
}

// groupMistakes buckets by "02 Jan 2006" date label, newest day first, or by
// skill area alphabetically. Mistakes keep their input order inside a bucket.
func groupMistakes(mistakes []Mistake, by GroupBy) []MistakeGroup {
	index := map[string]int{}
	var groups []MistakeGroup
	dates := map[string]civil.Date{}
	for _, m := range mistakes {
		key := m.SkillArea
		if by == GroupByDate {
			key = missionday.Label(m.MissionDate)
			dates[key] = m.MissionDate
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MistakeGroup{Key: key})
		}
		groups[i].Mistakes = append(groups[i].Mistakes, m)
		groups[i].Count++
	}

	if by == GroupByDate {
		sort.SliceStable(groups, func(i, j int) bool {
			return dates[groups[i].Key].After(dates[groups[j].Key])
		})
	} else {
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].Key < groups[j].Key
		})
	}
	return groups
}

func (s *reviewService) GetAvailableSkillAreas(ctx context.Context, userID string) ([]string, error) {
	mistakes, err := s.loadMistakes(ctx, userID)
	if err != nil {
		return nil, err
	}
	return distinctSkillAreas(mistakes), nil
}

func distinctSkillAreas(mistakes []Mistake) []string {
	seen := map[string]bool{}
	areas := []string{}
	for _, m := range mistakes {
		if !seen[m.SkillArea] {
			seen[m.SkillArea] = true
			areas = append(areas, m.SkillArea)
		}
	}
	sort.Strings(areas)
	return areas
}

func (s *reviewService) GetMistakeStats(ctx context.Context, userID string) (*MistakeStats, error) {
	mistakes, err := s.loadMistakes(ctx, userID)
	if err != nil {
		return nil, err
	}
	areas := distinctSkillAreas(mistakes)
	stats := &MistakeStats{
		TotalMistakes:       len(mistakes),
		SkillAreasCount:     len(areas),
		SkillAreas:          areas,
		DifficultyBreakdown: map[string]int{},
	}
	for _, m := range mistakes {
		stats.DifficultyBreakdown[fmt.Sprint(m.DifficultyLevel)]++
	}
	return stats, nil
}

func (s *reviewService) ExplainMistake(ctx context.Context, userID string, date civil.Date, questionID string) (*MistakeExplanation, error) {
	if s.tutor == nil || !s.tutor.Enabled() {
		return nil, ErrExplainerDisabled
	}

	mission, err := s.repo.FindMission(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, fmt.Errorf("loading mission: %w", err)
	}
	if !mission.Status.IsTerminal() {
		return nil, ErrNotAMistake
	}
	q, ok := mission.FindQuestion(questionID)
	if !ok {
		return nil, ErrQuestionNotFound
	}
	a := mission.FindAnswer(questionID)
	if a == nil || !a.IsMistake() {
		return nil, ErrNotAMistake
	}

	explanation, err := s.tutor.ExplainMistake(ctx, q, a.CurrentAnswer)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Str("questionID", questionID).Msg("Tutor explanation failed")
		return nil, fmt.Errorf("generating explanation: %w", err)
	}
	return &MistakeExplanation{
		QuestionID:  questionID,
		MissionDate: date,
		Explanation: explanation.Explanation,
		Tip:         explanation.Tip,
	}, nil
}
