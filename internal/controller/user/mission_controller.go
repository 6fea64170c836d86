package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/dailyquest/internal/dto"
	"github.com/lshigami/dailyquest/internal/model"
	"github.com/lshigami/dailyquest/internal/service"
	"github.com/rs/zerolog/log"
)

type MissionController struct {
	missionService service.MissionService
	answerService  service.AnswerService
}

func NewMissionController(ms service.MissionService, as service.AnswerService) *MissionController {
	return &MissionController{missionService: ms, answerService: as}
}

func (c *MissionController) respondMission(ctx *gin.Context, message string, m *model.DailyMission) {
	resp, err := dto.NewMissionResponse(m)
	if err != nil {
		abortWithError(ctx, "Failed to build mission response", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(message, resp))
}

// GetDailyMission godoc
// @Summary Get today's mission
// @Description Returns the user's mission for the current UTC+7 day, generating it on first request.
// @Tags Missions
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.MissionResponse}
// @Failure 400 {object} dto.ErrorResponse "Catalog too small or generation failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /missions/daily/{user_id} [get]
func (c *MissionController) GetDailyMission(ctx *gin.Context) {
	userID := ctx.Param("user_id")
	mission, err := c.missionService.GetOrGenerate(ctx.Request.Context(), userID)
	if err != nil {
		abortWithError(ctx, "Failed to get daily mission", err)
		return
	}
	c.respondMission(ctx, "Daily mission retrieved successfully.", mission)
}

// UpdateProgress godoc
// @Summary Overwrite mission progress
// @Description Replaces the answer list and current question index of today's mission, then re-evaluates its status.
// @Tags Missions
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param progress body dto.ProgressUpdateRequest true "Progress snapshot"
// @Success 200 {object} dto.APIResponse{data=dto.MissionResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "No mission today"
// @Failure 409 {object} dto.ErrorResponse "Mission already finished"
// @Router /missions/daily/{user_id}/progress [put]
func (c *MissionController) UpdateProgress(ctx *gin.Context) {
	var req dto.ProgressUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	entries := make([]service.ProgressEntry, 0, len(req.Answers))
	for _, a := range req.Answers {
		answer := a.CurrentAnswer
		if answer == "" {
			answer = a.Answer
		}
		entries = append(entries, service.ProgressEntry{
			QuestionID:    a.QuestionID,
			Answer:        answer,
			FeedbackShown: a.FeedbackShown,
			IsCorrect:     a.IsCorrect,
			IsComplete:    a.IsComplete,
		})
	}

	userID := ctx.Param("user_id")
	mission, err := c.answerService.UpdateProgress(ctx.Request.Context(), userID, *req.CurrentQuestionIndex, entries)
	if err != nil {
		abortWithError(ctx, "Failed to update mission progress", err)
		return
	}
	c.respondMission(ctx, "Mission progress updated successfully.", mission)
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Grades an answer for today's mission and returns immediate feedback.
// @Tags Missions
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param answer body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.APIResponse{data=service.AnswerFeedback}
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "No mission today or unknown question"
// @Failure 409 {object} dto.ErrorResponse "Mission already finished"
// @Router /missions/daily/{user_id}/submit-answer [post]
func (c *MissionController) SubmitAnswer(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	feedback, err := c.answerService.SubmitAnswer(ctx.Request.Context(), ctx.Param("user_id"), req.QuestionID, req.Answer)
	if err != nil {
		abortWithError(ctx, "Failed to submit answer", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("Answer submitted successfully.", feedback))
}

// MarkFeedbackShown godoc
// @Summary Acknowledge feedback
// @Description Records that the learner has seen feedback for a question. May complete the mission.
// @Tags Missions
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param question body dto.QuestionRequest true "Question"
// @Success 200 {object} dto.APIResponse{data=dto.MissionStatusResponse}
// @Failure 404 {object} dto.ErrorResponse "No mission today or no answer for the question"
// @Failure 409 {object} dto.ErrorResponse "Mission already finished"
// @Router /missions/daily/{user_id}/mark-feedback-shown [post]
func (c *MissionController) MarkFeedbackShown(ctx *gin.Context) {
	var req dto.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	mission, err := c.answerService.MarkFeedbackShown(ctx.Request.Context(), ctx.Param("user_id"), req.QuestionID)
	if err != nil {
		abortWithError(ctx, "Failed to mark feedback as shown", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("Feedback marked as shown.", dto.MissionStatusResponse{MissionStatus: mission.Status.String()}))
}

// RetryQuestion godoc
// @Summary Reset a question for retry
// @Description Clears the visible answer so the learner can try again. Attempt history is kept.
// @Tags Missions
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param question body dto.QuestionRequest true "Question"
// @Success 200 {object} dto.APIResponse{data=dto.RetryResponse}
// @Failure 400 {object} dto.ErrorResponse "Retry not allowed"
// @Failure 404 {object} dto.ErrorResponse "No mission today"
// @Router /missions/daily/{user_id}/retry-question [post]
func (c *MissionController) RetryQuestion(ctx *gin.Context) {
	var req dto.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	userID := ctx.Param("user_id")
	result, err := c.answerService.ResetForRetry(ctx.Request.Context(), userID, req.QuestionID)
	if err != nil {
		abortWithError(ctx, "Failed to reset question", err)
		return
	}
	if !result.Success {
		log.Info().Str("userID", userID).Str("questionID", req.QuestionID).Str("reason", result.Reason).Msg("Retry rejected")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: result.Reason})
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("Question reset for retry.", dto.RetryResponse{RemainingAttempts: result.RemainingAttempts}))
}
