package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/benefits_service/internal/apperrors"
	"github.com/SscSPs/benefits_service/internal/dto"
	"github.com/SscSPs/benefits_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForError maps the service error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes an ErrorResponse for err. Client errors carry the error text;
// server errors only carry fallbackMsg.
func respondWithError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		msg = fallbackMsg
	} else {
		logger.Warn("Request failed", slog.Int("status", status), slog.String("error", err.Error()))
	}

	c.JSON(status, dto.NewErrorResponse(status, msg))
}

// respondBadRequest writes a 400 for malformed input that never reached a service.
func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, msg))
}
