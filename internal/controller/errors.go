package controller

import (
	"errors"
	"net/http"

	"senior_living_backend/internal/config"
	"senior_living_backend/internal/quiz"
	"senior_living_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError maps service and engine errors onto the response envelope.
func respondError(ctx *gin.Context, err error, site config.SiteConfig) {
	var (
		validationErr *quiz.ValidationError
		submissionErr *quiz.SubmissionError
		loadErr       *quiz.DefinitionLoadError
	)

	switch {
	case errors.As(err, &validationErr):
		util.UnprocessableEntity(ctx, validationErr.Message, gin.H{"questionId": validationErr.QuestionID})
	case errors.As(err, &submissionErr):
		util.ErrorWithData(ctx, http.StatusBadGateway, "We couldn't save your answers. Please try again.", gin.H{
			"retryable": submissionErr.Retryable(),
		})
	case errors.As(err, &loadErr):
		util.ErrorWithData(ctx, http.StatusServiceUnavailable, "This page is temporarily unavailable.", gin.H{
			"contactPhone": site.ContactPhone,
			"contactEmail": site.ContactEmail,
		})
	case errors.Is(err, quiz.ErrContactEmailRequired):
		util.UnprocessableEntity(ctx, err.Error(), gin.H{"field": "email"})
	case errors.Is(err, quiz.ErrUnknownQuestion),
		errors.Is(err, quiz.ErrUnknownOption),
		errors.Is(err, quiz.ErrAnswerTypeMismatch),
		errors.Is(err, quiz.ErrScaleOutOfRange):
		util.UnprocessableEntity(ctx, err.Error(), nil)
	case errors.Is(err, quiz.ErrInvalidTransition):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrLandingPageNotFound),
		errors.Is(err, util.ErrCommunityNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
