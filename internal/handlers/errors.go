package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/stackit/backend/internal/store"
	"github.com/emilythestrangee/stackit/backend/internal/submission"
	"github.com/emilythestrangee/stackit/backend/internal/voting"
)

// respondError maps domain errors to HTTP responses. Unknown errors are
// attached to the context for the request logger and reported as 500.
func respondError(c *gin.Context, err error) {
	var ve *submission.ValidationError
	var fe *submission.FailureError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "validation_failed",
			"title":       ve.Title,
			"description": ve.Description,
		})
	case errors.Is(err, store.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
	case errors.Is(err, store.ErrAnswerNotFound), errors.Is(err, voting.ErrAnswerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
	case errors.Is(err, store.ErrNotAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the question's author can accept an answer"})
	case errors.Is(err, submission.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "A submission for this form is already in progress"})
	case errors.As(err, &fe):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":       "submission_failed",
			"title":       fe.Title(),
			"description": fe.Description(),
		})
	case errors.Is(err, store.ErrInvalidSort),
		errors.Is(err, store.ErrInvalidTarget),
		errors.Is(err, voting.ErrInvalidChoice),
		errors.Is(err, submission.ErrInvalidForm):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
