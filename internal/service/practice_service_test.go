package service

import (
	"context"
	"strings"
	"testing"

	"github.com/lshigami/dailyquest/internal/event"
	"github.com/lshigami/dailyquest/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPracticeService(repo *fakePracticeRepo, pub *fakePublisher) *practiceService {
	// 9 questions: 3 per skill area
	catalog := newFakeCatalog(testQuestions(9))
	return &practiceService{repo: repo, catalog: catalog, publisher: pub, now: clock(fixedNow)}
}

func TestCreatePracticeSession(t *testing.T) {
	repo := newFakePracticeRepo()
	svc := newTestPracticeService(repo, &fakePublisher{})

	s, err := svc.CreateSession(context.Background(), "u1", "Grammar", 2)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(s.SessionID, "PRACTICE_"))
	assert.Equal(t, model.PracticeInProgress, s.Status)
	assert.Len(t, s.Questions, 2)
	for _, q := range s.Questions {
		assert.Equal(t, "Grammar", q.SkillArea)
	}
	_, err = repo.FindSession(context.Background(), s.SessionID)
	assert.NoError(t, err)
}

func TestCreatePracticeSessionValidation(t *testing.T) {
	svc := newTestPracticeService(newFakePracticeRepo(), &fakePublisher{})
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, "u1", "Grammar", 0)
	assert.ErrorIs(t, err, ErrInvalidQuestionCount)

	_, err = svc.CreateSession(ctx, "u1", "Grammar", 21)
	assert.ErrorIs(t, err, ErrInvalidQuestionCount)

	_, err = svc.CreateSession(ctx, "u1", "Grammar", 4)
	assert.ErrorIs(t, err, ErrInsufficientQuestions)

	_, err = svc.CreateSession(ctx, "u1", "Astronomy", 1)
	assert.ErrorIs(t, err, ErrInsufficientQuestions)
}

func TestPracticeSubmitUntilComplete(t *testing.T) {
	repo := newFakePracticeRepo()
	pub := &fakePublisher{}
	svc := newTestPracticeService(repo, pub)
	ctx := context.Background()

	s, err := svc.CreateSession(ctx, "u1", "Reading", 2)
	require.NoError(t, err)

	fb, err := svc.SubmitAnswer(ctx, s.SessionID, s.Questions[0].QuestionID, "b")
	require.NoError(t, err)
	assert.True(t, fb.IsCorrect)
	assert.False(t, fb.SessionComplete)
	assert.Equal(t, &PracticeProgress{Answered: 1, Total: 2}, fb.Progress)

	again, err := svc.SubmitAnswer(ctx, s.SessionID, s.Questions[0].QuestionID, "A")
	require.NoError(t, err)
	assert.True(t, again.AlreadyAnswered)
	assert.True(t, again.IsCorrect)
	assert.Equal(t, "b", again.UserAnswer)

	fb, err = svc.SubmitAnswer(ctx, s.SessionID, s.Questions[1].QuestionID, "A")
	require.NoError(t, err)
	assert.False(t, fb.IsCorrect)
	assert.True(t, fb.SessionComplete)

	stored, err := svc.GetSession(ctx, s.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.PracticeCompleted, stored.Status)
	assert.Equal(t, 1, stored.CorrectCount)
	require.NotNil(t, stored.CompletedAt)

	require.Len(t, pub.practice, 1)
	assert.Equal(t, event.EventTypePracticeCompleted, pub.practice[0].EventType)
	assert.InDelta(t, 50.0, pub.practice[0].Accuracy, 0.001)

	_, err = svc.SubmitAnswer(ctx, s.SessionID, s.Questions[1].QuestionID, "B")
	assert.ErrorIs(t, err, ErrSessionAlreadyCompleted)

	summary, err := svc.GetSummary(ctx, s.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.QuestionsAnswered)
	assert.Equal(t, 1, summary.CorrectAnswers)
	assert.InDelta(t, 100.0, summary.Score.CompletionRate, 0.001)
}

func TestPracticeSubmitErrors(t *testing.T) {
	svc := newTestPracticeService(newFakePracticeRepo(), &fakePublisher{})
	ctx := context.Background()

	_, err := svc.SubmitAnswer(ctx, "PRACTICE_MISSING", "Qa1", "B")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	s, err := svc.CreateSession(ctx, "u1", "Grammar", 1)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, s.SessionID, "not-in-session", "B")
	assert.ErrorIs(t, err, ErrQuestionNotInSession)
}

func TestListTopics(t *testing.T) {
	svc := newTestPracticeService(newFakePracticeRepo(), &fakePublisher{})

	topics, err := svc.ListTopics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.TopicInfo{
		{Name: "Grammar", QuestionCount: 3, Available: true},
		{Name: "Reading", QuestionCount: 3, Available: true},
		{Name: "Vocabulary", QuestionCount: 3, Available: true},
	}, topics)
}

func TestListUserSessionsClampsLimit(t *testing.T) {
	repo := newFakePracticeRepo()
	svc := newTestPracticeService(repo, &fakePublisher{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateSession(ctx, "u1", "Grammar", 1)
		require.NoError(t, err)
	}
	_, err := svc.CreateSession(ctx, "u2", "Grammar", 1)
	require.NoError(t, err)

	all, err := svc.ListUserSessions(ctx, "u1", nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	two, err := svc.ListUserSessions(ctx, "u1", nil, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)

	completed := model.PracticeCompleted
	none, err := svc.ListUserSessions(ctx, "u1", &completed, 500)
	require.NoError(t, err)
	assert.Empty(t, none)
}
