package loader

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/david/eu-project-explorer/internal/models"
	"golang.org/x/sync/errgroup"
)

// ProjectIDs resolves the available project ids. The manifest is authoritative
// when it lists at least one id; each listed id is confirmed with a HEAD
// request and dropped when the data file is missing. Without a usable manifest
// the loader falls back to probing the candidate registry.
func (l *DataLoader) ProjectIDs(ctx context.Context) ([]string, error) {
	if ids, ok := l.manifestIDs(ctx); ok {
		return ids, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Printf("[discovery] Manifest unavailable, probing %d candidate ids (deprecated fallback; publish %s)",
		len(l.candidates), models.ManifestFileName)
	return l.probe(ctx, l.candidates)
}

// AvailableProjects is ProjectIDs for diagnostics: failures yield an empty list.
func (l *DataLoader) AvailableProjects(ctx context.Context) []string {
	ids, err := l.ProjectIDs(ctx)
	if err != nil {
		log.Printf("[discovery] Failed to get available projects: %v", err)
		return []string{}
	}
	return ids
}

func (l *DataLoader) manifestIDs(ctx context.Context) ([]string, bool) {
	manifestURL := l.baseURL + "/" + models.ManifestFileName
	doc, err := l.fetcher.Fetch(ctx, manifestURL)
	if err != nil {
		log.Printf("[discovery] No manifest at %s: %v", manifestURL, err)
		return nil, false
	}
	defer doc.Body.Close()

	var manifest models.Manifest
	if err := json.NewDecoder(doc.Body).Decode(&manifest); err != nil {
		log.Printf("[discovery] Malformed manifest at %s: %v", manifestURL, err)
		return nil, false
	}
	if len(manifest.Projects) == 0 {
		log.Printf("[discovery] Manifest at %s lists no projects", manifestURL)
		return nil, false
	}

	verified := make([]string, 0, len(manifest.Projects))
	for _, id := range manifest.Projects {
		if !projectIDPattern.MatchString(id) {
			log.Printf("[discovery] Ignoring invalid manifest entry %q", id)
			continue
		}
		if l.exists(ctx, id) {
			verified = append(verified, id)
		} else {
			log.Printf("[discovery] Project %s listed in manifest but not found", id)
		}
	}

	log.Printf("[discovery] Verified %d/%d projects from manifest", len(verified), len(manifest.Projects))
	return verified, true
}

func (l *DataLoader) exists(ctx context.Context, id string) bool {
	code, err := l.fetcher.Head(ctx, l.projectURL(id))
	return err == nil && isSuccess(code)
}

// probe HEAD-requests candidates in fixed-size concurrent batches with a
// pause between batches. The result is sorted and free of duplicates.
func (l *DataLoader) probe(ctx context.Context, candidates []string) ([]string, error) {
	var (
		mu    sync.Mutex
		found = make(map[string]struct{})
	)

	for start := 0; start < len(candidates); start += l.batchSize {
		end := start + l.batchSize
		if end > len(candidates) {
			end = len(candidates)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, id := range candidates[start:end] {
			if !projectIDPattern.MatchString(id) {
				continue
			}
			g.Go(func() error {
				if l.exists(gctx, id) {
					mu.Lock()
					found[id] = struct{}{}
					mu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait()

		if end < len(candidates) && l.pause > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(l.pause):
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	ids := make([]string, 0, len(found))
	for id := range found {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	log.Printf("[discovery] Discovered %d available projects", len(ids))
	return ids, nil
}

// GenerateManifest probes the candidate registry and returns a manifest
// document listing every project found.
func (l *DataLoader) GenerateManifest(ctx context.Context) (models.Manifest, error) {
	ids, err := l.probe(ctx, l.candidates)
	if err != nil {
		return models.Manifest{}, err
	}
	return models.Manifest{
		Projects:      ids,
		LastUpdated:   time.Now().UTC().Format("2006-01-02"),
		Description:   models.ManifestDescription,
		GeneratedBy:   "loader.GenerateManifest",
		TotalProjects: len(ids),
	}, nil
}
