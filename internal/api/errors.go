package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cktlab/drawdeck/internal/artifact"
	"github.com/cktlab/drawdeck/internal/demo"
	"github.com/cktlab/drawdeck/internal/history"
	"github.com/cktlab/drawdeck/internal/project"
	"github.com/cktlab/drawdeck/internal/render"
	"github.com/cktlab/drawdeck/internal/style"
)

// Error codes returned in the response body.
const (
	codeNotFound       = "not_found"
	codeNoHistory      = "no_history"
	codeRenderError    = "render_error"
	codeValidation     = "validation_error"
	codeCorruptArchive = "corrupt_archive"
	codeInternal       = "internal_error"
)

// ErrorResponse is the error response body.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// writeError maps the engine's typed errors onto HTTP statuses. Every
// failure is a precise, closed variant; nothing is thrown opaquely.
func writeError(c *gin.Context, err error) {
	var validation *style.ValidationError
	var renderErr *render.Error
	switch {
	case errors.Is(err, artifact.ErrNotFound),
		errors.Is(err, history.ErrNotFound),
		errors.Is(err, style.ErrNotFound),
		errors.Is(err, demo.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: codeNotFound, Message: err.Error()})
	case errors.Is(err, history.ErrNoHistory):
		c.JSON(http.StatusConflict, ErrorResponse{Error: codeNoHistory, Message: err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   codeValidation,
			Message: validation.Error(),
			Details: validation.Details(),
		})
	case errors.As(err, &renderErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeRenderError, Message: renderErr.Error()})
	case errors.Is(err, project.ErrCorruptArchive):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: codeCorruptArchive, Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: codeInternal, Message: err.Error()})
	}
}
