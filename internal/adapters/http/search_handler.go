package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/application/services"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// SearchHandler handles tree search requests
type SearchHandler struct {
	searchService *services.SearchService
	logger        *logger.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *services.SearchService, logger *logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search filters the session's tree by query and scope
func (h *SearchHandler) Search(c echo.Context) error {
	req := ports.SearchRequest{
		Query: c.QueryParam("q"),
		Scope: ports.SearchScope(c.QueryParam("scope")),
	}

	result, err := h.searchService.Search(sessionIDFromContext(c), req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// Highlight annotates a text with match markers for a query
func (h *SearchHandler) Highlight(c echo.Context) error {
	highlighted := h.searchService.Highlight(c.QueryParam("text"), c.QueryParam("q"))

	return c.JSON(http.StatusOK, map[string]string{"highlighted": highlighted})
}
