package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/dailyquest/internal/dto"
	"github.com/lshigami/dailyquest/internal/service"
	"github.com/rs/zerolog/log"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNoActiveMission),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrAnswerNotFound),
		errors.Is(err, service.ErrMissionNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrQuestionNotInSession),
		errors.Is(err, service.ErrQuestionNotInCatalog):
		return http.StatusNotFound
	case errors.Is(err, service.ErrMissionLocked),
		errors.Is(err, service.ErrMissionAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrNoQuestionsAvailable),
		errors.Is(err, service.ErrMissionGeneration),
		errors.Is(err, service.ErrInvalidProgress),
		errors.Is(err, service.ErrInvalidGroupBy),
		errors.Is(err, service.ErrNotAMistake),
		errors.Is(err, service.ErrInvalidQuestionCount),
		errors.Is(err, service.ErrInsufficientQuestions),
		errors.Is(err, service.ErrSessionAlreadyCompleted):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrExplainerDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// abortWithError writes err as a dto.ErrorResponse. Internal errors keep
// their details out of the response body.
func abortWithError(ctx *gin.Context, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg(message)
		ctx.JSON(status, dto.ErrorResponse{Message: message})
		return
	}
	log.Warn().Err(err).Str("path", ctx.FullPath()).Msg(message)
	ctx.JSON(status, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
}

func badRequest(ctx *gin.Context, message string, err error) {
	log.Warn().Err(err).Str("path", ctx.FullPath()).Msg(message)
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
}
