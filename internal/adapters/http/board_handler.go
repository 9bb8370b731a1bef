package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/application/services"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// BoardHandler handles board and folder requests
type BoardHandler struct {
	storeService *services.StoreService
	logger       *logger.Logger
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(storeService *services.StoreService, logger *logger.Logger) *BoardHandler {
	return &BoardHandler{
		storeService: storeService,
		logger:       logger,
	}
}

// GetTree returns the session's full board tree
func (h *BoardHandler) GetTree(c echo.Context) error {
	tree, err := h.storeService.Tree(sessionIDFromContext(c))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, tree)
}

// CreateBoard adds a board to the end of the board sequence
func (h *BoardHandler) CreateBoard(c echo.Context) error {
	var req ports.CreateBoardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	board, err := h.storeService.AddBoard(c.Request().Context(), sessionIDFromContext(c), req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, board)
}

// GetBoard returns one board by id
func (h *BoardHandler) GetBoard(c echo.Context) error {
	board, err := h.storeService.FindBoard(sessionIDFromContext(c), c.Param("id"))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, board)
}

// DeleteBoard removes a board and all of its descendants
func (h *BoardHandler) DeleteBoard(c echo.Context) error {
	if err := h.storeService.DeleteBoard(c.Request().Context(), sessionIDFromContext(c), c.Param("id")); err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateFolder adds a folder to a board
func (h *BoardHandler) CreateFolder(c echo.Context) error {
	var req ports.CreateFolderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	folder, err := h.storeService.AddFolder(c.Request().Context(), sessionIDFromContext(c), c.Param("id"), req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, folder)
}

// GetFolder returns a folder with its owning board
func (h *BoardHandler) GetFolder(c echo.Context) error {
	loc, err := h.storeService.FindFolder(sessionIDFromContext(c), c.Param("folderId"))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, loc)
}

// DeleteFolder removes a folder and its tasks
func (h *BoardHandler) DeleteFolder(c echo.Context) error {
	err := h.storeService.DeleteFolder(c.Request().Context(), sessionIDFromContext(c), c.Param("id"), c.Param("folderId"))
	if err != nil {
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
