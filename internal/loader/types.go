package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrLoad is wrapped by every failure to produce a project record.
	ErrLoad = errors.New("load error")
	// ErrNotFound marks a project id the data host does not serve.
	ErrNotFound = errors.New("project not found")
	// ErrInvalidID is returned for ids that cannot name a data file.
	ErrInvalidID = errors.New("invalid project id")
	// ErrNoProjects is returned by callers that need at least one project.
	ErrNoProjects = errors.New("no projects found")
)

// FetchedDocument represents the raw result of a fetch operation.
type FetchedDocument struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        io.ReadCloser
	FetchedAt   time.Time
	Headers     map[string][]string
}

// Fetcher retrieves data files from the data host.
type Fetcher interface {
	// Fetch issues a GET. Non-2xx responses are returned as *StatusError.
	Fetch(ctx context.Context, url string) (*FetchedDocument, error)
	// Head reports the status code of a HEAD request.
	Head(ctx context.Context, url string) (int, error)
}

// StatusError is returned by fetchers when the data host answers with a non-success status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d for %s", e.StatusCode, e.URL)
}

// LoadError describes a failed project load. Its message always names the project id.
type LoadError struct {
	ID  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load project data for %s: %v", e.ID, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
