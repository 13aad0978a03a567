package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/david/eu-project-explorer/internal/catalog"
	"github.com/david/eu-project-explorer/internal/models"
	"github.com/david/eu-project-explorer/internal/timeline"
	"github.com/david/eu-project-explorer/internal/views"
	"github.com/labstack/echo/v4"
)

type listResponse struct {
	Projects     []models.ProjectCard  `json:"projects"`
	Count        int                   `json:"count"`
	Total        int                   `json:"total"`
	Query        catalog.Query         `json:"query"`
	Facets       catalog.Facets        `json:"facets"`
	BudgetRanges []catalog.BudgetRange `json:"budget_ranges"`
	SortKeys     []string              `json:"sort_keys"`
}

func (s *Server) handleListProjects(c echo.Context) error {
	q := catalog.ParseQuery(c.QueryParams())
	if q.Sort != nil && !catalog.IsSortKey(q.Sort.Key) {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("unknown sort key %q (valid: %s)", q.Sort.Key, strings.Join(catalog.SortKeys, ", ")),
		})
	}

	cards, err := s.Loader.LoadProjectCards(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to load projects: %v", err)
		return errorJSON(c, http.StatusBadGateway, err)
	}

	filtered := catalog.Apply(cards, q)
	if q.Filters == nil {
		q.Filters = []catalog.Filter{}
	}

	return c.JSON(http.StatusOK, listResponse{
		Projects:     filtered,
		Count:        len(filtered),
		Total:        len(cards),
		Query:        q,
		Facets:       catalog.FacetValues(cards),
		BudgetRanges: catalog.BudgetRanges(),
		SortKeys:     catalog.SortKeys,
	})
}

func (s *Server) handleSearchProjects(c echo.Context) error {
	query := c.QueryParam("q")
	results, err := s.Loader.SearchProjects(c.Request().Context(), query)
	if err != nil {
		c.Logger().Errorf("Search failed: %v", err)
		return errorJSON(c, http.StatusBadGateway, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}

func (s *Server) handleAvailableProjects(c echo.Context) error {
	ids := s.Loader.AvailableProjects(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"projects": ids,
		"total":    len(ids),
		"base_url": s.Loader.BaseURL(),
	})
}

func (s *Server) projectError(c echo.Context, err error) error {
	code := loadErrorStatus(err)
	if code >= http.StatusInternalServerError {
		c.Logger().Errorf("Failed to load project %s: %v", c.Param("id"), err)
	}
	return errorJSON(c, code, err)
}

func (s *Server) handleGetProject(c echo.Context) error {
	p, err := s.Loader.LoadProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.projectError(c, err)
	}
	return c.JSON(http.StatusOK, views.Detail(c.Param("id"), p, s.now()))
}

func (s *Server) handleGetTimeline(c echo.Context) error {
	p, err := s.Loader.LoadProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.projectError(c, err)
	}
	return c.JSON(http.StatusOK, timeline.Build(p, s.now()))
}

func (s *Server) handleGetParticipants(c echo.Context) error {
	p, err := s.Loader.LoadProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.projectError(c, err)
	}
	return c.JSON(http.StatusOK, views.Participants(p))
}

func (s *Server) handleGetDeliverables(c echo.Context) error {
	p, err := s.Loader.LoadProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.projectError(c, err)
	}
	return c.JSON(http.StatusOK, views.Deliverables(p))
}
