package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/dailyquest/internal/dto"
	"github.com/lshigami/dailyquest/internal/model"
	"github.com/lshigami/dailyquest/internal/service"
)

const defaultPracticeQuestionCount = 5

type PracticeController struct {
	practiceService service.PracticeService
}

func NewPracticeController(ps service.PracticeService) *PracticeController {
	return &PracticeController{practiceService: ps}
}

// GetTopics godoc
// @Summary Practice topics
// @Tags Practice
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]model.TopicInfo}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /practice/topics [get]
func (c *PracticeController) GetTopics(ctx *gin.Context) {
	topics, err := c.practiceService.ListTopics(ctx.Request.Context())
	if err != nil {
		abortWithError(ctx, "Failed to get practice topics", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("Practice topics retrieved successfully.", topics))
}

// CreateSession godoc
// @Summary Start a practice session
// @Tags Practice
// @Accept json
// @Produce json
// @Param user_id query string true "User ID"
// @Param session body dto.CreatePracticeSessionRequest true "Topic and question count (1-20, default 5)"
// @Success 201 {object} dto.APIResponse{data=dto.PracticeSessionResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request or not enough questions"
// @Router /practice/sessions [post]
func (c *PracticeController) CreateSession(ctx *gin.Context) {
	userID := ctx.Query("user_id")
	if userID == "" {
		badRequest(ctx, "user_id query parameter is required", errors.New("missing user_id"))
		return
	}
	var req dto.CreatePracticeSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	if req.QuestionCount == 0 {
		req.QuestionCount = defaultPracticeQuestionCount
	}

	session, err := c.practiceService.CreateSession(ctx.Request.Context(), userID, req.Topic, req.QuestionCount)
	if err != nil {
		abortWithError(ctx, "Failed to create practice session", err)
		return
	}
	resp, err := dto.NewPracticeSessionResponse(session)
	if err != nil {
		abortWithError(ctx, "Failed to build practice session response", err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.Success("Practice session created successfully.", resp))
}

// GetSession godoc
// @Summary Get a practice session
// @Tags Practice
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.APIResponse{data=dto.PracticeSessionResponse}
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /practice/sessions/{session_id} [get]
func (c *PracticeController) GetSession(ctx *gin.Context) {
	session, err := c.practiceService.GetSession(ctx.Request.Context(), ctx.Param("session_id"))
	if err != nil {
		abortWithError(ctx, "Failed to get practice session", err)
		return
	}
	resp, err := dto.NewPracticeSessionResponse(session)
	if err != nil {
		abortWithError(ctx, "Failed to build practice session response", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("Practice session retrieved successfully.", resp))
}

// SubmitAnswer godoc
// @Summary Answer a practice question
// @Description One answer per question. Repeating a question returns the stored feedback.
// @Tags Practice
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param answer body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.APIResponse{data=service.PracticeFeedback}
// @Failure 400 {object} dto.ErrorResponse "Session already completed"
// @Failure 404 {object} dto.ErrorResponse "Session or question not found"
// @Router /practice/sessions/{session_id}/submit-answer [post]
func (c *PracticeController) SubmitAnswer(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	feedback, err := c.practiceService.SubmitAnswer(ctx.Request.Context(), ctx.Param("session_id"), req.QuestionID, req.Answer)
	if err != nil {
		abortWithError(ctx, "Failed to submit answer", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("Answer submitted successfully.", feedback))
}

// GetSummary godoc
// @Summary Practice session summary
// @Tags Practice
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} dto.APIResponse{data=service.PracticeSummary}
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /practice/sessions/{session_id}/summary [get]
func (c *PracticeController) GetSummary(ctx *gin.Context) {
	summary, err := c.practiceService.GetSummary(ctx.Request.Context(), ctx.Param("session_id"))
	if err != nil {
		abortWithError(ctx, "Failed to get session summary", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("Practice session summary retrieved successfully.", summary))
}

// GetUserSessions godoc
// @Summary List a user's practice sessions
// @Tags Practice
// @Produce json
// @Param user_id path string true "User ID"
// @Param status query string false "Filter by status" Enums(in_progress, completed, abandoned)
// @Param limit query int false "Max sessions (1-50)" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.PracticeSessionSummaryDTO}
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Router /practice/users/{user_id}/sessions [get]
func (c *PracticeController) GetUserSessions(ctx *gin.Context) {
	var q dto.UserSessionsQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, "Invalid query parameters", err)
		return
	}
	var status *model.PracticeSessionStatus
	if q.Status != "" {
		s, err := model.ParsePracticeSessionStatus(q.Status)
		if err != nil {
			badRequest(ctx, "Invalid status", err)
			return
		}
		status = &s
	}

	sessions, err := c.practiceService.ListUserSessions(ctx.Request.Context(), ctx.Param("user_id"), status, q.Limit)
	if err != nil {
		abortWithError(ctx, "Failed to get user sessions", err)
		return
	}
	resp, err := dto.NewPracticeSessionSummaries(sessions)
	if err != nil {
		abortWithError(ctx, "Failed to build session list", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("User practice sessions retrieved successfully.", resp))
}

// GetUserStats godoc
// @Summary Practice statistics for a user
// @Tags Practice
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=model.PracticeStats}
// @Router /practice/users/{user_id}/stats [get]
func (c *PracticeController) GetUserStats(ctx *gin.Context) {
	stats, err := c.practiceService.GetUserStats(ctx.Request.Context(), ctx.Param("user_id"))
	if err != nil {
		abortWithError(ctx, "Failed to get user practice stats", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("User practice statistics retrieved successfully.", stats))
}
