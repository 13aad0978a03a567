package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const reloadTimeout = 10 * time.Minute

func (s *Server) handleClearCache(c echo.Context) error {
	cached := len(s.Loader.CachedIDs())
	s.Loader.ClearCache()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Cache cleared",
		"evicted": cached,
	})
}

func (s *Server) handleCacheStatus(c echo.Context) error {
	ids := s.Loader.CachedIDs()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"cached":   ids,
		"count":    len(ids),
		"base_url": s.Loader.BaseURL(),
	})
}

func (s *Server) handleGenerateManifest(c echo.Context) error {
	m, err := s.Loader.GenerateManifest(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("Failed to generate manifest: %v", err)
		return errorJSON(c, http.StatusBadGateway, err)
	}
	return c.JSON(http.StatusOK, m)
}

// handleReload clears the caches and rebuilds the project list in the
// background. Only one reload runs at a time.
func (s *Server) handleReload(c echo.Context) error {
	s.jobMu.Lock()
	if s.runningJob != nil && s.runningJob.Status == "running" {
		job := s.runningJob
		s.jobMu.Unlock()
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"error":  "A reload job is already running",
			"job_id": job.ID,
		})
	}

	// context.WithoutCancel detaches from the request; the job gets its own timeout.
	jobCtx, jobCancel := context.WithTimeout(
		context.WithoutCancel(c.Request().Context()), reloadTimeout,
	)

	jobID := uuid.New().String()[:8]
	job := &backgroundJob{
		ID:        jobID,
		Status:    "running",
		StartedAt: time.Now(),
		Cancel:    jobCancel,
	}
	s.runningJob = job
	s.jobMu.Unlock()

	go func() {
		defer jobCancel()

		cards, err := s.Loader.ForceReload(jobCtx)
		if err != nil {
			s.jobMu.Lock()
			job.Status = "failed"
			job.Error = err.Error()
			job.EndedAt = time.Now()
			s.jobMu.Unlock()
			log.Printf("[reload-job %s] failed: %v", jobID, err)
			return
		}

		s.jobMu.Lock()
		job.Status = "completed"
		job.EndedAt = time.Now()
		job.Result = map[string]interface{}{
			"projects": len(cards),
			"cached":   len(s.Loader.CachedIDs()),
		}
		s.jobMu.Unlock()
		log.Printf("[reload-job %s] completed: projects=%d", jobID, len(cards))
	}()

	return c.JSON(http.StatusAccepted, map[string]interface{}{
		"message": "Reload job started",
		"job_id":  jobID,
		"poll":    fmt.Sprintf("/api/v1/admin/job/%s", jobID),
	})
}

func (s *Server) handleJobStatus(c echo.Context) error {
	queried := c.Param("id")

	s.jobMu.Lock()
	defer s.jobMu.Unlock()

	job := s.runningJob
	if job == nil || job.ID != queried {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "job not found"})
	}

	resp := map[string]interface{}{
		"id":         job.ID,
		"status":     job.Status,
		"started_at": job.StartedAt,
	}
	if !job.EndedAt.IsZero() {
		resp["ended_at"] = job.EndedAt
		resp["duration"] = job.EndedAt.Sub(job.StartedAt).String()
	}
	if job.Result != nil {
		resp["result"] = job.Result
	}
	if job.Error != "" {
		resp["error"] = job.Error
	}
	return c.JSON(http.StatusOK, resp)
}
