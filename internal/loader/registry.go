package loader

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/candidates.yaml
var candidatesYAML embed.FS

// Registry holds the candidate project ids probed by brute-force discovery.
type Registry struct {
	Groups []CandidateGroup `yaml:"groups"`
}

// CandidateGroup is a named block of candidate ids (known projects, bigrams, ...).
type CandidateGroup struct {
	Name string   `yaml:"name"`
	IDs  []string `yaml:"ids"`
}

// LoadRegistry reads the candidate list. An empty path selects the embedded
// config/candidates.yaml; otherwise the file at path replaces it.
func LoadRegistry(path string) (*Registry, error) {
	var (
		data []byte
		err  error
	)
	if strings.TrimSpace(path) != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = candidatesYAML.ReadFile("config/candidates.yaml")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate registry: %w", err)
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse candidate registry: %w", err)
	}
	return &reg, nil
}

// Candidates flattens all groups in file order, dropping blanks and duplicates.
func (r *Registry) Candidates() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, g := range r.Groups {
		for _, id := range g.IDs {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
