package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/dailyquest/internal/dto"
	"github.com/lshigami/dailyquest/internal/service"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(qs service.QuestionService) *QuestionController {
	return &QuestionController{questionService: qs}
}

// GetQuestion godoc
// @Summary Get question details
// @Description Full question text, choices and feedback by catalog id.
// @Tags Questions
// @Produce json
// @Param question_id path string true "Question ID" example(GATQ001)
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{question_id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	q, err := c.questionService.GetQuestion(ctx.Request.Context(), ctx.Param("question_id"))
	if err != nil {
		abortWithError(ctx, "Failed to get question", err)
		return
	}
	resp, err := dto.NewQuestionResponse(q)
	if err != nil {
		abortWithError(ctx, "Failed to build question response", err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
