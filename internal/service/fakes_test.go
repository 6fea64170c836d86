package service

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/lshigami/dailyquest/internal/event"
	"github.com/lshigami/dailyquest/internal/lock"
	"github.com/lshigami/dailyquest/internal/model"
	"github.com/lshigami/dailyquest/internal/repository"
)

// fixedNow is 2024-01-15 10:00 in UTC+7.
var fixedNow = time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)

func clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testQuestions(n int) []model.Question {
	areas := []string{"Grammar", "Vocabulary", "Reading"}
	qs := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		id := string(rune('a'+i)) + "1"
		qs = append(qs, model.Question{
			QuestionID:      "Q" + id,
			QuestionText:    "Question " + id,
			SkillArea:       areas[i%len(areas)],
			DifficultyLevel: i%3 + 1,
			Choices: []model.ChoiceOption{
				{ID: "A", Text: "Alpha"},
				{ID: "B", Text: "Bravo"},
				{ID: "C", Text: "Charlie"},
			},
			CorrectAnswerID: "B",
			FeedbackText:    "Bravo is right.",
		})
	}
	return qs
}

func cloneMission(m *model.DailyMission) *model.DailyMission {
	c := *m
	c.Questions = slices.Clone(m.Questions)
	c.Answers = make([]model.Answer, len(m.Answers))
	for i, a := range m.Answers {
		a.AttemptsHistory = slices.Clone(a.AttemptsHistory)
		c.Answers[i] = a
	}
	return &c
}

type fakeMissionRepo struct {
	mu       sync.Mutex
	missions map[string]*model.DailyMission
	saveErr  func(*model.DailyMission) error
	saves    int
}

func newFakeMissionRepo() *fakeMissionRepo {
	return &fakeMissionRepo{missions: map[string]*model.DailyMission{}}
}

func missionKey(userID string, date civil.Date) string {
	return userID + "|" + date.String()
}

func (r *fakeMissionRepo) put(m *model.DailyMission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.missions[missionKey(m.UserID, m.Date)] = cloneMission(m)
}

func (r *fakeMissionRepo) get(userID string, date civil.Date) *model.DailyMission {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.missions[missionKey(userID, date)]
	if !ok {
		return nil
	}
	return cloneMission(m)
}

func (r *fakeMissionRepo) FindMission(_ context.Context, userID string, date civil.Date) (*model.DailyMission, error) {
	if m := r.get(userID, date); m != nil {
		return m, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMissionRepo) CreateMission(_ context.Context, m *model.DailyMission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := missionKey(m.UserID, m.Date)
	if _, ok := r.missions[key]; ok {
		return repository.ErrDuplicate
	}
	r.missions[key] = cloneMission(m)
	return nil
}

func (r *fakeMissionRepo) SaveMission(_ context.Context, m *model.DailyMission) error {
	if r.saveErr != nil {
		if err := r.saveErr(m); err != nil {
			return err
		}
	}
	r.mu.Lock()
	r.saves++
	r.mu.Unlock()
	r.put(m)
	return nil
}

func (r *fakeMissionRepo) sorted() []model.DailyMission {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.DailyMission, 0, len(r.missions))
	for _, m := range r.missions {
		out = append(out, *cloneMission(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

func (r *fakeMissionRepo) GetMissionsToArchive(_ context.Context, before civil.Date) ([]model.DailyMission, error) {
	var out []model.DailyMission
	for _, m := range r.sorted() {
		if m.Date.Before(before) && !m.Status.IsTerminal() {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMissionRepo) FindMissionsByStatus(_ context.Context, userID string, statuses ...model.MissionStatus) ([]model.DailyMission, error) {
	var out []model.DailyMission
	for _, m := range r.sorted() {
		if m.UserID == userID && slices.Contains(statuses, m.Status) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMissionRepo) ForEachMission(_ context.Context, fn func(*model.DailyMission) error) error {
	for _, m := range r.sorted() {
		if err := fn(&m); err != nil {
			return err
		}
	}
	return nil
}

type fakeCatalog struct {
	questions map[string]model.Question
	missing   map[string]bool
}

func newFakeCatalog(qs []model.Question) *fakeCatalog {
	c := &fakeCatalog{questions: map[string]model.Question{}, missing: map[string]bool{}}
	for _, q := range qs {
		c.questions[q.QuestionID] = q
	}
	return c
}

func (c *fakeCatalog) GetAllQuestions(context.Context) (map[string]model.Question, error) {
	return c.questions, nil
}

func (c *fakeCatalog) GetQuestionByID(_ context.Context, id string) (*model.Question, error) {
	q, ok := c.questions[id]
	if !ok || c.missing[id] {
		return nil, repository.ErrNotFound
	}
	return &q, nil
}

func (c *fakeCatalog) Topics(context.Context) ([]string, error) {
	var topics []string
	for _, q := range c.questions {
		if !slices.Contains(topics, q.SkillArea) {
			topics = append(topics, q.SkillArea)
		}
	}
	sort.Strings(topics)
	return topics, nil
}

func (c *fakeCatalog) CountByTopic(_ context.Context, topic string) (int64, error) {
	var n int64
	for _, q := range c.questions {
		if q.SkillArea == topic {
			n++
		}
	}
	return n, nil
}

func (c *fakeCatalog) GetQuestionsByTopic(_ context.Context, topic string, limit int) ([]model.Question, error) {
	var out []model.Question
	for _, q := range c.questions {
		if q.SkillArea == topic && len(out) < limit {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	mission  []event.MissionEvent
	archive  []event.ArchiveEvent
	practice []event.PracticeEvent
}

func (p *fakePublisher) PublishMissionEvent(_ context.Context, e *event.MissionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mission = append(p.mission, *e)
	return nil
}

func (p *fakePublisher) PublishArchiveEvent(_ context.Context, e *event.ArchiveEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.archive = append(p.archive, *e)
	return nil
}

func (p *fakePublisher) PublishPracticeEvent(_ context.Context, e *event.PracticeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.practice = append(p.practice, *e)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) missionTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var types []string
	for _, e := range p.mission {
		types = append(types, e.EventType)
	}
	return types
}

type fakeLocker struct {
	err      error
	acquired []string
	released int
}

func (l *fakeLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(context.Context) error, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.acquired = append(l.acquired, key)
	return func(context.Context) error {
		l.released++
		return nil
	}, nil
}

var _ lock.Locker = (*fakeLocker)(nil)

type fakePracticeRepo struct {
	sessions map[string]*model.PracticeSession
	order    []string
}

func newFakePracticeRepo() *fakePracticeRepo {
	return &fakePracticeRepo{sessions: map[string]*model.PracticeSession{}}
}

func clonePractice(s *model.PracticeSession) *model.PracticeSession {
	c := *s
	c.Questions = slices.Clone(s.Questions)
	c.Answers = slices.Clone(s.Answers)
	return &c
}

func (r *fakePracticeRepo) CreateSession(_ context.Context, s *model.PracticeSession) error {
	if _, ok := r.sessions[s.SessionID]; ok {
		return repository.ErrDuplicate
	}
	r.sessions[s.SessionID] = clonePractice(s)
	r.order = append(r.order, s.SessionID)
	return nil
}

func (r *fakePracticeRepo) FindSession(_ context.Context, id string) (*model.PracticeSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePractice(s), nil
}

func (r *fakePracticeRepo) UpdateSession(_ context.Context, s *model.PracticeSession) error {
	if _, ok := r.sessions[s.SessionID]; !ok {
		return repository.ErrNotFound
	}
	r.sessions[s.SessionID] = clonePractice(s)
	return nil
}

func (r *fakePracticeRepo) GetUserSessions(_ context.Context, userID string, status *model.PracticeSessionStatus, limit int) ([]model.PracticeSession, error) {
	var out []model.PracticeSession
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		s := r.sessions[r.order[i]]
		if s.UserID != userID || (status != nil && s.Status != *status) {
			continue
		}
		out = append(out, *clonePractice(s))
	}
	return out, nil
}

func (r *fakePracticeRepo) GetUserStats(_ context.Context, userID string) (*model.PracticeStats, error) {
	stats := &model.PracticeStats{TopicsPracticed: []string{}}
	for _, s := range r.sessions {
		if s.UserID == userID && s.Status == model.PracticeCompleted {
			stats.TotalSessions++
		}
	}
	return stats, nil
}

type fakeTutor struct {
	enabled bool
	err     error
	asked   []string
}

func (t *fakeTutor) Enabled() bool { return t.enabled }

func (t *fakeTutor) ExplainMistake(_ context.Context, q *model.Question, userAnswerID string) (*TutorExplanation, error) {
	if t.err != nil {
		return nil, t.err
	}
	t.asked = append(t.asked, q.QuestionID+":"+userAnswerID)
	return &TutorExplanation{Explanation: "Because " + q.CorrectAnswerID, Tip: "Read carefully."}, nil
}

var errBoom = errors.New("boom")
