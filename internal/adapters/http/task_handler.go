package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/application/services"
	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// TaskHandler handles task requests
type TaskHandler struct {
	storeService *services.StoreService
	logger       *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(storeService *services.StoreService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		storeService: storeService,
		logger:       logger,
	}
}

// CreateTask adds a task to a folder
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.TaskFields
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.storeService.AddTask(c.Request().Context(), sessionIDFromContext(c), c.Param("id"), c.Param("folderId"), req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask returns a task with its ancestors
func (h *TaskHandler) GetTask(c echo.Context) error {
	loc, err := h.storeService.FindTask(sessionIDFromContext(c), c.Param("id"))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, loc)
}

// UpdateTask overwrites a task's fields, consuming one edit
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	var req ports.TaskFields
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.storeService.EditTask(c.Request().Context(), sessionIDFromContext(c), c.Param("id"), req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	if err := h.storeService.DeleteTask(c.Request().Context(), sessionIDFromContext(c), c.Param("id")); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// SetStatus changes a task's status without consuming an edit
func (h *TaskHandler) SetStatus(c echo.Context) error {
	var req ports.SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.storeService.SetTaskStatus(c.Request().Context(), sessionIDFromContext(c), c.Param("id"), entities.Status(req.Status))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// GetCountdown returns the task's current remaining or overdue time
func (h *TaskHandler) GetCountdown(c echo.Context) error {
	cd, err := h.storeService.TaskCountdown(sessionIDFromContext(c), c.Param("id"))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, cd)
}
