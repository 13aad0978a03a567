package cli

import (
	"fmt"
	"sync"

	"github.com/david/eu-project-explorer/internal/config"
	"github.com/david/eu-project-explorer/internal/loader"
)

// App holds the shared dependencies for commands, built on first use.
type App struct {
	baseURL string
	backend string

	once   sync.Once
	cfg    *config.Config
	loader *loader.DataLoader
	err    error
}

func (a *App) init() {
	a.once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			a.err = fmt.Errorf("failed to load config: %w", err)
			return
		}
		if a.baseURL != "" {
			cfg.Data.BaseURL = a.baseURL
		}
		if a.backend != "" {
			cfg.Data.FetchBackend = a.backend
		}
		a.cfg = cfg

		a.loader, a.err = loader.NewFromConfig(cfg.Data)
	})
}

// Config returns the resolved configuration.
func (a *App) Config() (*config.Config, error) {
	a.init()
	if a.cfg == nil {
		return nil, a.err
	}
	return a.cfg, nil
}

// Loader returns the data loader for the configured data host.
func (a *App) Loader() (*loader.DataLoader, error) {
	a.init()
	return a.loader, a.err
}
