package loader

import (
	"fmt"

	"github.com/david/eu-project-explorer/internal/config"
)

// NewFromConfig wires a DataLoader from runtime settings: fetcher backend,
// candidate registry and probe pacing.
func NewFromConfig(cfg config.Data) (*DataLoader, error) {
	fetcher, err := NewFetcher(cfg.BaseURL, cfg.FetchBackend, cfg.FetchTimeout)
	if err != nil {
		return nil, err
	}
	reg, err := LoadRegistry(cfg.CandidatesFile)
	if err != nil {
		return nil, err
	}

	l, err := New(Options{
		BaseURL:        cfg.BaseURL,
		Fetcher:        fetcher,
		Registry:       reg,
		ProbeBatchSize: cfg.ProbeBatchSize,
		ProbePause:     cfg.ProbePause,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create loader: %w", err)
	}
	return l, nil
}
