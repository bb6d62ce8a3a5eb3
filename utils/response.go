package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joy095/shareit/logger"
)

const unexpectedErrorMessage = "unexpected error occurred"

// StatusFor maps an error onto the HTTP status it is surfaced as.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotAvailable), errors.Is(err, ErrValidation), errors.Is(err, ErrUserIDNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as {"error": message} and aborts the chain.
// Unclassified errors are logged and replaced by an opaque message.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorLogger.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(status, gin.H{"error": unexpectedErrorMessage})
		return
	}

	logger.WarnLogger.Warnf("%s %s rejected (%d): %v", c.Request.Method, c.Request.URL.Path, status, err)
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
