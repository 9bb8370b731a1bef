package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/application/services"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// SessionHandler handles login and logout
type SessionHandler struct {
	sessionService *services.SessionService
	directory      ports.UserDirectory
	logger         *logger.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *services.SessionService, directory ports.UserDirectory, logger *logger.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		directory:      directory,
		logger:         logger,
	}
}

// Login opens a session for a directory user
func (h *SessionHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	info, err := h.sessionService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.Warn("Login failed", "error", err, "display_name", req.DisplayName)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, info)
}

// Logout saves the store a final time and closes the session
func (h *SessionHandler) Logout(c echo.Context) error {
	sessionID := sessionIDFromContext(c)

	if err := h.sessionService.Logout(c.Request().Context(), sessionID); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CurrentUser returns the logged-in user of the session
func (h *SessionHandler) CurrentUser(c echo.Context) error {
	info, err := h.sessionService.Resolve(sessionIDFromContext(c))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, info.User)
}

// ListUsers returns the fixed user directory
func (h *SessionHandler) ListUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.directory.List())
}
