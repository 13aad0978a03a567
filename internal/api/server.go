package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/david/eu-project-explorer/internal/config"
	"github.com/david/eu-project-explorer/internal/loader"
	"github.com/david/eu-project-explorer/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ProjectSource is the part of the data loader the API depends on.
type ProjectSource interface {
	LoadProject(ctx context.Context, id string) (*models.Project, error)
	LoadProjectCards(ctx context.Context) ([]models.ProjectCard, error)
	SearchProjects(ctx context.Context, query string) ([]models.ProjectCard, error)
	AvailableProjects(ctx context.Context) []string
	GenerateManifest(ctx context.Context) (models.Manifest, error)
	ForceReload(ctx context.Context) ([]models.ProjectCard, error)
	ClearCache()
	CachedIDs() []string
	BaseURL() string
}

type Server struct {
	Loader ProjectSource
	Echo   *echo.Echo

	// now is replaced in tests to pin the current-month marker.
	now func() time.Time

	// Background job tracking
	jobMu      sync.Mutex
	runningJob *backgroundJob
}

type backgroundJob struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"` // running, completed, failed
	StartedAt time.Time          `json:"started_at"`
	EndedAt   time.Time          `json:"ended_at,omitempty"`
	Result    any                `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
	Cancel    context.CancelFunc `json:"-"`
}

func NewServer(l ProjectSource, cfg config.Server) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// CORS: local dev origins plus CORS_ORIGINS
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	s := &Server{
		Loader: l,
		Echo:   e,
		now:    time.Now,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)
	api := s.Echo.Group("/api/v1")
	api.GET("/projects", s.handleListProjects)
	api.GET("/projects/search", s.handleSearchProjects)
	api.GET("/projects/available", s.handleAvailableProjects)
	api.GET("/projects/:id", s.handleGetProject)
	api.GET("/projects/:id/timeline", s.handleGetTimeline)
	api.GET("/projects/:id/participants", s.handleGetParticipants)
	api.GET("/projects/:id/deliverables", s.handleGetDeliverables)

	// Admin Routes (cache & discovery)
	admin := api.Group("/admin")
	admin.POST("/cache/clear", s.handleClearCache)
	admin.GET("/cache", s.handleCacheStatus)
	admin.POST("/reload", s.handleReload)
	admin.GET("/job/:id", s.handleJobStatus)
	admin.GET("/manifest", s.handleGenerateManifest)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

// Shutdown cancels a running reload job and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.jobMu.Lock()
	if s.runningJob != nil && s.runningJob.Status == "running" && s.runningJob.Cancel != nil {
		s.runningJob.Cancel()
	}
	s.jobMu.Unlock()
	return s.Echo.Shutdown(ctx)
}

// loadErrorStatus maps loader failures to HTTP status codes.
func loadErrorStatus(err error) int {
	switch {
	case errors.Is(err, loader.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, loader.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func errorJSON(c echo.Context, code int, err error) error {
	return c.JSON(code, map[string]string{"error": err.Error()})
}
