package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/domain/entities"
)

// sessionIDFromContext extracts the session id placed by the session
// middleware.
func sessionIDFromContext(c echo.Context) string {
	id, ok := c.Get("session_id").(string)
	if !ok {
		return ""
	}
	return id
}

// domainError maps domain errors onto HTTP status codes. Validation
// failures and the edit limit are recoverable client errors; unknown
// ids are reported rather than silently ignored.
func domainError(err error) error {
	var ve *entities.ValidationError
	if errors.As(err, &ve) {
		return echo.NewHTTPError(http.StatusBadRequest, ve.Message)
	}

	switch {
	case errors.Is(err, entities.ErrEditLimitReached):
		return echo.NewHTTPError(http.StatusConflict, "task has reached its edit limit")
	case errors.Is(err, entities.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	case errors.Is(err, entities.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	case errors.Is(err, entities.ErrBoardNotFound),
		errors.Is(err, entities.ErrFolderNotFound),
		errors.Is(err, entities.ErrTaskNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
