package user

import (
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/dailyquest/internal/dto"
	"github.com/lshigami/dailyquest/internal/service"
)

const noMistakesMessage = "Great job! You have no mistakes to review right now."

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(rs service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: rs}
}

func respondMistakes(ctx *gin.Context, result *service.MistakesResult) {
	message := ""
	if result.TotalMistakes == 0 {
		message = noMistakesMessage
	}
	ctx.JSON(http.StatusOK, dto.Success(message, result))
}

// GetMistakes godoc
// @Summary List mistakes
// @Description Paginated wrong final answers from the user's completed and archived missions, newest first.
// @Tags Review
// @Produce json
// @Param user_id path string true "User ID"
// @Param page query int false "Page number (1-based)" default(1)
// @Param items_per_page query int false "Items per page (max 50)" default(20)
// @Param skill_area query string false "Filter by skill area"
// @Success 200 {object} dto.APIResponse{data=service.MistakesResult}
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /review-mistakes/{user_id} [get]
func (c *ReviewController) GetMistakes(ctx *gin.Context) {
	var q dto.ReviewQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, "Invalid query parameters", err)
		return
	}

	result, err := c.reviewService.GetUserMistakes(ctx.Request.Context(), service.MistakeQuery{
		UserID:       ctx.Param("user_id"),
		Page:         q.Page,
		ItemsPerPage: q.ItemsPerPage,
		SkillArea:    q.SkillArea,
	})
	if err != nil {
		abortWithError(ctx, "Failed to fetch review mistakes", err)
		return
	}
	respondMistakes(ctx, result)
}

// GetGroupedMistakes godoc
// @Summary List mistakes grouped by date or topic
// @Description Groups are paginated. group_counts covers every group.
// @Tags Review
// @Produce json
// @Param user_id path string true "User ID"
// @Param group_by query string true "date or topic" Enums(date, topic)
// @Param page query int false "Page number (1-based)" default(1)
// @Param items_per_page query int false "Groups per page (max 20)" default(10)
// @Param skill_area query string false "Filter by skill area"
// @Success 200 {object} dto.APIResponse{data=service.MistakesResult}
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /review-mistakes/{user_id}/grouped [get]
func (c *ReviewController) GetGroupedMistakes(ctx *gin.Context) {
	var q dto.GroupedReviewQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, "Invalid query parameters", err)
		return
	}
	groupBy, err := service.ParseGroupBy(q.GroupBy)
	if err != nil {
		abortWithError(ctx, "Invalid group_by", err)
		return
	}

	result, err := c.reviewService.GetUserMistakes(ctx.Request.Context(), service.MistakeQuery{
		UserID:       ctx.Param("user_id"),
		Page:         q.Page,
		ItemsPerPage: q.ItemsPerPage,
		GroupBy:      groupBy,
		SkillArea:    q.SkillArea,
	})
	if err != nil {
		abortWithError(ctx, "Failed to fetch grouped review mistakes", err)
		return
	}
	respondMistakes(ctx, result)
}

// GetSkillAreas godoc
// @Summary Skill areas with mistakes
// @Tags Review
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /review-mistakes/{user_id}/skill-areas [get]
func (c *ReviewController) GetSkillAreas(ctx *gin.Context) {
	areas, err := c.reviewService.GetAvailableSkillAreas(ctx.Request.Context(), ctx.Param("user_id"))
	if err != nil {
		abortWithError(ctx, "Failed to fetch skill areas", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("", areas))
}

// GetStats godoc
// @Summary Mistake statistics
// @Tags Review
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=service.MistakeStats}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /review-mistakes/{user_id}/stats [get]
func (c *ReviewController) GetStats(ctx *gin.Context) {
	stats, err := c.reviewService.GetMistakeStats(ctx.Request.Context(), ctx.Param("user_id"))
	if err != nil {
		abortWithError(ctx, "Failed to fetch review stats", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("", stats))
}

// ExplainMistake godoc
// @Summary Explain a mistake
// @Description Asks the tutor model why the recorded answer was wrong.
// @Tags Review
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param request body dto.ExplainMistakeRequest true "Mistake to explain"
// @Success 200 {object} dto.APIResponse{data=service.MistakeExplanation}
// @Failure 400 {object} dto.ErrorResponse "Invalid request or not a mistake"
// @Failure 404 {object} dto.ErrorResponse "Mission or question not found"
// @Failure 503 {object} dto.ErrorResponse "Explanations are not configured"
// @Router /review-mistakes/{user_id}/explain [post]
func (c *ReviewController) ExplainMistake(ctx *gin.Context) {
	var req dto.ExplainMistakeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}
	date, err := civil.ParseDate(req.MissionDate)
	if err != nil {
		badRequest(ctx, "mission_date must be YYYY-MM-DD", err)
		return
	}

	out, err := c.reviewService.ExplainMistake(ctx.Request.Context(), ctx.Param("user_id"), date, req.QuestionID)
	if err != nil {
		abortWithError(ctx, "Failed to explain mistake", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("", out))
}
