package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/dailyquest/internal/dto"
	"github.com/lshigami/dailyquest/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(qs service.QuestionService) *QuestionController {
	return &QuestionController{questionService: qs}
}

// ImportQuestions godoc
// @Summary (Admin) Import catalog questions
// @Description Upserts questions by question_id. The whole batch is rejected if any question is invalid.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param questions body dto.QuestionImportDTO true "Questions to import"
// @Success 200 {object} dto.APIResponse{data=dto.QuestionImportResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/questions [post]
func (c *QuestionController) ImportQuestions(ctx *gin.Context) {
	var req dto.QuestionImportDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin ImportQuestions: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	questions, err := req.ToQuestions()
	if err != nil {
		log.Error().Err(err).Msg("Admin ImportQuestions: Failed to map request")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to import questions"})
		return
	}

	n, err := c.questionService.ImportQuestions(ctx.Request.Context(), questions)
	if errors.Is(err, service.ErrInvalidQuestion) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to import questions", Details: []string{err.Error()}})
		return
	}
	if err != nil {
		log.Error().Err(err).Int("count", len(req.Questions)).Msg("Admin ImportQuestions: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to import questions"})
		return
	}
	ctx.JSON(http.StatusOK, dto.Success("Questions imported successfully.", dto.QuestionImportResponse{Imported: n}))
}
