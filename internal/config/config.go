// Package config reads runtime settings from environment variables.
package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Data holds settings for reaching the project data host.
type Data struct {
	BaseURL        string        `envconfig:"EU_DATA_BASE_URL" default:"http://localhost:8080/eu-data"`
	FetchBackend   string        `envconfig:"FETCH_BACKEND" default:"http"`
	FetchTimeout   time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`
	ProbeBatchSize int           `envconfig:"PROBE_BATCH_SIZE" default:"10"`
	ProbePause     time.Duration `envconfig:"PROBE_PAUSE" default:"50ms"`
	CandidatesFile string        `envconfig:"CANDIDATES_FILE"`
	// DataDir is the local directory the manifest tool scans.
	DataDir string `envconfig:"DATA_DIR" default:"public/eu-data"`
}

// Server holds settings for the HTTP API.
type Server struct {
	Port        string   `envconfig:"PORT" default:"8081"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS"`
}

type Config struct {
	Data   Data
	Server Server
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg.Data); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, err
	}
	cfg.Server.CORSOrigins = trimAll(cfg.Server.CORSOrigins)
	return &cfg, nil
}

// DefaultCORSOrigins are always allowed in addition to CORS_ORIGINS.
var DefaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"http://localhost:8080",
	"http://127.0.0.1:5173",
}

// AllowedOrigins merges the default local origins with the configured ones.
func (s Server) AllowedOrigins() []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, o := range append(append([]string{}, DefaultCORSOrigins...), s.CORSOrigins...) {
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		out = append(out, o)
	}
	return out
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
