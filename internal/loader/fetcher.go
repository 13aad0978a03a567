package loader

import (
	"fmt"
	"strings"
	"time"
)

const (
	BackendHTTP  = "http"
	BackendColly = "colly"
)

// NewFetcher picks the fetcher for a data base URL. file:// bases always read
// from disk; otherwise backend selects between net/http and Colly.
func NewFetcher(baseURL, backend string, timeout time.Duration) (Fetcher, error) {
	if strings.HasPrefix(strings.ToLower(baseURL), "file://") {
		return FileFetcher{}, nil
	}

	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendHTTP:
		return NewHTTPFetcher(timeout), nil
	case BackendColly:
		return NewCollyFetcher(timeout), nil
	default:
		return nil, fmt.Errorf("unknown fetch backend: %s", backend)
	}
}
