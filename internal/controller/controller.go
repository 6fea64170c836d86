package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	adminctrl "github.com/lshigami/dailyquest/internal/controller/admin"
	userctrl "github.com/lshigami/dailyquest/internal/controller/user"
	"github.com/lshigami/dailyquest/internal/dto"
	"github.com/lshigami/dailyquest/internal/metrics"
)

// Controller groups every HTTP handler the API serves.
type Controller struct {
	missions  *userctrl.MissionController
	review    *userctrl.ReviewController
	practice  *userctrl.PracticeController
	questions *userctrl.QuestionController
	admin     *adminctrl.QuestionController
}

func NewController(
	missions *userctrl.MissionController,
	review *userctrl.ReviewController,
	practice *userctrl.PracticeController,
	questions *userctrl.QuestionController,
	admin *adminctrl.QuestionController,
) *Controller {
	return &Controller{
		missions:  missions,
		review:    review,
		practice:  practice,
		questions: questions,
		admin:     admin,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", Health)
	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api")
	{
		missions := api.Group("/missions/daily/:user_id")
		missions.GET("", ctrl.missions.GetDailyMission)
		missions.PUT("/progress", ctrl.missions.UpdateProgress)
		missions.POST("/submit-answer", ctrl.missions.SubmitAnswer)
		missions.POST("/mark-feedback-shown", ctrl.missions.MarkFeedbackShown)
		missions.POST("/retry-question", ctrl.missions.RetryQuestion)

		review := api.Group("/review-mistakes/:user_id")
		review.GET("", ctrl.review.GetMistakes)
		review.GET("/grouped", ctrl.review.GetGroupedMistakes)
		review.GET("/skill-areas", ctrl.review.GetSkillAreas)
		review.GET("/stats", ctrl.review.GetStats)
		review.POST("/explain", ctrl.review.ExplainMistake)

		practice := api.Group("/practice")
		practice.GET("/topics", ctrl.practice.GetTopics)
		practice.POST("/sessions", ctrl.practice.CreateSession)
		practice.GET("/sessions/:session_id", ctrl.practice.GetSession)
		practice.POST("/sessions/:session_id/submit-answer", ctrl.practice.SubmitAnswer)
		practice.GET("/sessions/:session_id/summary", ctrl.practice.GetSummary)
		practice.GET("/users/:user_id/sessions", ctrl.practice.GetUserSessions)
		practice.GET("/users/:user_id/stats", ctrl.practice.GetUserStats)

		api.GET("/questions/:question_id", ctrl.questions.GetQuestion)

		api.POST("/admin/questions", ctrl.admin.ImportQuestions)
	}
}

// Health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Message: "API is healthy"})
}
