package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/lshigami/dailyquest/config"
	adminctrl "github.com/lshigami/dailyquest/internal/controller/admin"
	userctrl "github.com/lshigami/dailyquest/internal/controller/user"
	"github.com/lshigami/dailyquest/internal/event"
	"github.com/lshigami/dailyquest/internal/model"
	"github.com/lshigami/dailyquest/internal/repository"
	"github.com/lshigami/dailyquest/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testAPI struct {
	router   *gin.Engine
	missions repository.MissionRepository
}

func catalogQuestions(n int) []model.Question {
	areas := []string{"Grammar", "Vocabulary"}
	qs := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, model.Question{
			QuestionID:      fmt.Sprintf("GATQ%03d", i+1),
			QuestionText:    fmt.Sprintf("Question %d", i+1),
			SkillArea:       areas[i%len(areas)],
			DifficultyLevel: i%3 + 1,
			Choices:         []model.ChoiceOption{{ID: "A", Text: "Alpha"}, {ID: "B", Text: "Bravo"}},
			CorrectAnswerID: "B",
			FeedbackText:    "Bravo fits.",
		})
	}
	return qs
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(repository.Models()...))

	cfg := &config.Config{Mission: config.Mission{MaxRetries: 3}}
	publisher, err := event.NewEventPublisher(cfg)
	require.NoError(t, err)
	tutor, err := service.NewGeminiTutorService(cfg)
	require.NoError(t, err)

	questionRepo := repository.NewQuestionRepository(db)
	require.NoError(t, questionRepo.UpsertQuestions(context.Background(), catalogQuestions(8)))
	missionRepo := repository.NewGormMissionRepository(db)
	practiceRepo := repository.NewGormPracticeRepository(db)
	questionSvc := service.NewQuestionService(questionRepo)

	ctrl := NewController(
		userctrl.NewMissionController(
			service.NewMissionService(missionRepo, questionRepo, publisher),
			service.NewAnswerService(missionRepo, publisher, cfg),
		),
		userctrl.NewReviewController(service.NewReviewService(missionRepo, tutor)),
		userctrl.NewPracticeController(service.NewPracticeService(practiceRepo, questionRepo, publisher)),
		userctrl.NewQuestionController(questionSvc),
		adminctrl.NewQuestionController(questionSvc),
	)
	router := gin.New()
	ctrl.RegisterRoutes(router)
	return &testAPI{router: router, missions: missionRepo}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) (envelope, T) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var data T
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &data))
	}
	return env, data
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","message":"API is healthy"}`, w.Body.String())
}

func TestDailyMissionFlow(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/missions/daily/u1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env, mission := decode[struct {
		Status    string `json:"status"`
		Questions []struct {
			QuestionID string `json:"question_id"`
		} `json:"questions"`
	}](t, w)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "not_started", mission.Status)
	require.Len(t, mission.Questions, model.MissionQuestionCount)

	// same mission on the second request
	w = api.do(t, http.MethodGet, "/api/missions/daily/u1", nil)
	_, again := decode[struct {
		Questions []struct {
			QuestionID string `json:"question_id"`
		} `json:"questions"`
	}](t, w)
	assert.Equal(t, mission.Questions, again.Questions)

	qid := mission.Questions[0].QuestionID
	w = api.do(t, http.MethodPost, "/api/missions/daily/u1/submit-answer", map[string]string{"question_id": qid, "answer": "A"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, fb := decode[service.AnswerFeedback](t, w)
	assert.False(t, fb.IsCorrect)
	assert.True(t, fb.CanRetry)
	assert.Equal(t, "B", fb.CorrectAnswer)

	w = api.do(t, http.MethodPost, "/api/missions/daily/u1/retry-question", map[string]string{"question_id": qid})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"status":"success","message":"Question reset for retry.","data":{"remaining_attempts":2}}`, w.Body.String())

	for _, q := range mission.Questions {
		w = api.do(t, http.MethodPost, "/api/missions/daily/u1/submit-answer", map[string]string{"question_id": q.QuestionID, "answer": "B"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		w = api.do(t, http.MethodPost, "/api/missions/daily/u1/mark-feedback-shown", map[string]string{"question_id": q.QuestionID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	_, status := decode[map[string]string](t, w)
	assert.Equal(t, "complete", status["mission_status"])

	// completed missions are locked for progress overwrites
	w = api.do(t, http.MethodPut, "/api/missions/daily/u1/progress", map[string]any{"current_question_index": 0, "answers": []any{}})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMissionErrors(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPost, "/api/missions/daily/ghost/submit-answer", map[string]string{"question_id": "GATQ001", "answer": "B"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodPost, "/api/missions/daily/ghost/submit-answer", map[string]string{"answer": "B"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	api.do(t, http.MethodGet, "/api/missions/daily/u1", nil)
	w = api.do(t, http.MethodPost, "/api/missions/daily/u1/retry-question", map[string]string{"question_id": "GATQ001"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errBody struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.Equal(t, model.RetryAnswerNotFound, errBody.Message)

	w = api.do(t, http.MethodPut, "/api/missions/daily/u1/progress", map[string]any{"answers": []any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgressUpdate(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodGet, "/api/missions/daily/u1", nil)
	_, mission := decode[struct {
		Questions []struct {
			QuestionID string `json:"question_id"`
		} `json:"questions"`
	}](t, w)

	body := map[string]any{
		"current_question_index": 1,
		"answers": []map[string]any{
			{"question_id": mission.Questions[0].QuestionID, "current_answer": "B", "feedback_shown": true},
		},
	}
	w = api.do(t, http.MethodPut, "/api/missions/daily/u1/progress", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, updated := decode[struct {
		Status               string `json:"status"`
		CurrentQuestionIndex int    `json:"current_question_index"`
		Answers              []struct {
			IsCorrect  bool `json:"is_correct"`
			IsComplete bool `json:"is_complete"`
		} `json:"answers"`
	}](t, w)
	assert.Equal(t, "in_progress", updated.Status)
	assert.Equal(t, 1, updated.CurrentQuestionIndex)
	require.Len(t, updated.Answers, 1)
	assert.True(t, updated.Answers[0].IsCorrect)
	assert.True(t, updated.Answers[0].IsComplete)
}

func TestReviewMistakesEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/review-mistakes/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env, empty := decode[service.MistakesResult](t, w)
	assert.Equal(t, "Great job! You have no mistakes to review right now.", env.Message)
	assert.Zero(t, empty.TotalMistakes)

	w = api.do(t, http.MethodGet, "/api/review-mistakes/u1?items_per_page=51", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/review-mistakes/u1/grouped", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/review-mistakes/u1/grouped?group_by=week", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// finish a mission with one wrong answer
	w = api.do(t, http.MethodGet, "/api/missions/daily/u1", nil)
	_, mission := decode[struct {
		Questions []struct {
			QuestionID string `json:"question_id"`
		} `json:"questions"`
	}](t, w)
	for i, q := range mission.Questions {
		answer := "B"
		if i == 0 {
			answer = "A"
		}
		for attempt := 0; attempt < 3; attempt++ {
			api.do(t, http.MethodPost, "/api/missions/daily/u1/submit-answer", map[string]string{"question_id": q.QuestionID, "answer": answer})
		}
		api.do(t, http.MethodPost, "/api/missions/daily/u1/mark-feedback-shown", map[string]string{"question_id": q.QuestionID})
	}

	w = api.do(t, http.MethodGet, "/api/review-mistakes/u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env, result := decode[service.MistakesResult](t, w)
	assert.Empty(t, env.Message)
	require.Equal(t, 1, result.TotalMistakes)
	assert.Equal(t, mission.Questions[0].QuestionID, result.Mistakes[0].QuestionID)
	assert.Equal(t, "Alpha", result.Mistakes[0].UserAnswerText)
	assert.Equal(t, 3, result.Mistakes[0].AttemptCount)

	w = api.do(t, http.MethodGet, "/api/review-mistakes/u1/grouped?group_by=topic", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, grouped := decode[service.MistakesResult](t, w)
	require.Len(t, grouped.Groups, 1)
	assert.Equal(t, result.Mistakes[0].SkillArea, grouped.Groups[0].Key)

	w = api.do(t, http.MethodGet, "/api/review-mistakes/u1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, stats := decode[service.MistakeStats](t, w)
	assert.Equal(t, 1, stats.TotalMistakes)

	w = api.do(t, http.MethodPost, "/api/review-mistakes/u1/explain", map[string]string{"question_id": mission.Questions[0].QuestionID, "mission_date": "2024-01-15"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = api.do(t, http.MethodPost, "/api/review-mistakes/u1/explain", map[string]string{"question_id": "x", "mission_date": "15/01/2024"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPracticeEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/practice/topics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, topics := decode[[]model.TopicInfo](t, w)
	assert.Len(t, topics, 2)

	w = api.do(t, http.MethodPost, "/api/practice/sessions", map[string]any{"topic": "Grammar"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "user_id is required")

	w = api.do(t, http.MethodPost, "/api/practice/sessions?user_id=u1", map[string]any{"topic": "Grammar", "question_count": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/api/practice/sessions?user_id=u1", map[string]any{"topic": "Grammar", "question_count": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	_, session := decode[struct {
		SessionID string `json:"session_id"`
		Status    string `json:"status"`
		Questions []struct {
			QuestionID string `json:"question_id"`
		} `json:"questions"`
	}](t, w)
	assert.Equal(t, "in_progress", session.Status)
	require.Len(t, session.Questions, 2)

	for _, q := range session.Questions {
		w = api.do(t, http.MethodPost, "/api/practice/sessions/"+session.SessionID+"/submit-answer", map[string]string{"question_id": q.QuestionID, "answer": "B"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	_, fb := decode[service.PracticeFeedback](t, w)
	assert.True(t, fb.SessionComplete)

	w = api.do(t, http.MethodPost, "/api/practice/sessions/"+session.SessionID+"/submit-answer", map[string]string{"question_id": session.Questions[0].QuestionID, "answer": "B"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/practice/sessions/"+session.SessionID+"/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, summary := decode[service.PracticeSummary](t, w)
	assert.Equal(t, 2, summary.CorrectAnswers)

	w = api.do(t, http.MethodGet, "/api/practice/users/u1/sessions?status=completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, list := decode[[]map[string]any](t, w)
	assert.Len(t, list, 1)

	w = api.do(t, http.MethodGet, "/api/practice/users/u1/sessions?status=paused", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/practice/sessions/PRACTICE_NOPE0000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuestionEndpoints(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/questions/GATQ001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var q struct {
		QuestionID string `json:"question_id"`
		SkillArea  string `json:"skill_area"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	assert.Equal(t, "GATQ001", q.QuestionID)

	w = api.do(t, http.MethodGet, "/api/questions/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := map[string]any{"questions": []map[string]any{{
		"question_id":       "NEW001",
		"question_text":     "New one",
		"skill_area":        "Reading",
		"difficulty_level":  2,
		"choices":           []map[string]string{{"id": "A", "text": "a"}, {"id": "B", "text": "b"}},
		"correct_answer_id": "C",
	}}}
	w = api.do(t, http.MethodPost, "/api/admin/questions", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body["questions"].([]map[string]any)[0]["correct_answer_id"] = "A"
	w = api.do(t, http.MethodPost, "/api/admin/questions", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"status":"success","message":"Questions imported successfully.","data":{"imported":1}}`, w.Body.String())

	w = api.do(t, http.MethodGet, "/api/questions/NEW001", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
