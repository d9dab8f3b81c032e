package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/FileExplorer/internal/domain/explorer"
	"github.com/GriffinCanCode/FileExplorer/internal/providers/filesystem"
)

// statusFor maps engine errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, filesystem.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, filesystem.ErrExists):
		return http.StatusConflict
	case errors.Is(err, filesystem.ErrNotText):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, filesystem.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, filesystem.ErrInvalidPath),
		errors.Is(err, filesystem.ErrIsDirectory),
		errors.Is(err, explorer.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), gin.H{"detail": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": msg})
}
