// Package manifest regenerates projects-manifest.json from a directory of
// project data files.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/david/eu-project-explorer/internal/models"
)

// Scan lists the project ids in dir: every *.json file except the manifest
// itself, without extension, sorted.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	ids := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" || name == models.ManifestFileName {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Build wraps ids in a manifest document dated now (UTC).
func Build(ids []string, generatedBy string, now time.Time) models.Manifest {
	projects := make([]string, len(ids))
	copy(projects, ids)
	return models.Manifest{
		Projects:      projects,
		LastUpdated:   now.UTC().Format("2006-01-02"),
		Description:   models.ManifestDescription,
		GeneratedBy:   generatedBy,
		TotalProjects: len(projects),
	}
}

// Write stores m as two-space indented JSON at path and, when backupPath is
// set, at backupPath too. Parent directories are created as needed.
func Write(path, backupPath string, m models.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	targets := []string{path}
	if backupPath != "" {
		targets = append(targets, backupPath)
	}
	for _, target := range targets {
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", target, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
	}
	return nil
}

// Read loads a manifest document from path.
func Read(path string) (models.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m models.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return models.Manifest{}, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return m, nil
}
