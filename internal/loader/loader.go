package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/david/eu-project-explorer/internal/models"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultProbeBatchSize = 10
	DefaultProbePause     = 50 * time.Millisecond

	// sharedLoadTimeout bounds a coalesced load once it no longer belongs to
	// a single caller.
	sharedLoadTimeout = 5 * time.Minute

	cardsFlightKey = "\x00cards"
)

var projectIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Options configures a DataLoader.
type Options struct {
	BaseURL        string
	Fetcher        Fetcher
	Registry       *Registry
	ProbeBatchSize int
	ProbePause     time.Duration
}

// DataLoader loads project files from the data host and keeps them for the
// lifetime of the process. Entries only leave the caches through ClearCache.
type DataLoader struct {
	baseURL    string
	fetcher    Fetcher
	candidates []string
	batchSize  int
	pause      time.Duration

	mu       sync.RWMutex
	projects map[string]*models.Project
	cards    []models.ProjectCard
	hasCards bool
	// gen advances on ClearCache; loads started under an older gen do not
	// write to the caches.
	gen uint64

	flight singleflight.Group
}

func New(opts Options) (*DataLoader, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("loader: fetcher is required")
	}
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("loader: base URL is required")
	}
	if opts.ProbeBatchSize <= 0 {
		opts.ProbeBatchSize = DefaultProbeBatchSize
	}
	if opts.ProbePause < 0 {
		opts.ProbePause = 0
	}

	return &DataLoader{
		baseURL:    base,
		fetcher:    opts.Fetcher,
		candidates: opts.Registry.Candidates(),
		batchSize:  opts.ProbeBatchSize,
		pause:      opts.ProbePause,
		projects:   make(map[string]*models.Project),
	}, nil
}

func (l *DataLoader) BaseURL() string {
	return l.baseURL
}

func (l *DataLoader) projectURL(id string) string {
	return fmt.Sprintf("%s/%s.json", l.baseURL, id)
}

func (l *DataLoader) cachedProject(id string) (*models.Project, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.projects[id]
	return p, ok
}

func (l *DataLoader) generation() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.gen
}

func flightKey(gen uint64, key string) string {
	return fmt.Sprintf("%d/%s", gen, key)
}

// shared runs fn once for all concurrent callers of key. fn runs detached
// from the caller that started it; every caller still returns as soon as its
// own ctx is done.
func (l *DataLoader) shared(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ch := l.flight.DoChan(key, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()
		return fn(fctx)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// LoadProject returns the project stored under id, fetching <base>/<id>.json
// on a cache miss. Concurrent misses for one id share a single fetch.
func (l *DataLoader) LoadProject(ctx context.Context, id string) (*models.Project, error) {
	if p, ok := l.cachedProject(id); ok {
		return p, nil
	}
	if !projectIDPattern.MatchString(id) {
		return nil, &LoadError{ID: id, Err: ErrInvalidID}
	}

	gen := l.generation()
	v, err := l.shared(ctx, flightKey(gen, id), func(fctx context.Context) (interface{}, error) {
		if p, ok := l.cachedProject(id); ok {
			return p, nil
		}
		p, err := l.fetchProject(fctx, id)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		if l.gen == gen {
			l.projects[id] = p
		}
		l.mu.Unlock()
		return p, nil
	})
	if err != nil {
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			err = &LoadError{ID: id, Err: err}
		}
		log.Printf("[loader] Error loading project %s: %v", id, err)
		return nil, err
	}
	return v.(*models.Project), nil
}

func (l *DataLoader) fetchProject(ctx context.Context, id string) (*models.Project, error) {
	doc, err := l.fetcher.Fetch(ctx, l.projectURL(id))
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, &LoadError{ID: id, Err: fmt.Errorf("%w: %w", ErrNotFound, err)}
		}
		return nil, &LoadError{ID: id, Err: err}
	}
	defer doc.Body.Close()

	var project models.Project
	if err := json.NewDecoder(doc.Body).Decode(&project); err != nil {
		return nil, &LoadError{ID: id, Err: fmt.Errorf("decode failed: %w", err)}
	}
	return &project, nil
}

// LoadProjectCards resolves the project id list, loads every project and
// returns their cards sorted by acronym. Projects that fail to load are
// logged and skipped. The result is cached until ClearCache.
func (l *DataLoader) LoadProjectCards(ctx context.Context) ([]models.ProjectCard, error) {
	if cards, ok := l.cachedCards(); ok {
		return cards, nil
	}

	gen := l.generation()
	v, err := l.shared(ctx, flightKey(gen, cardsFlightKey), func(fctx context.Context) (interface{}, error) {
		if cards, ok := l.cachedCards(); ok {
			return cards, nil
		}
		cards, err := l.buildCards(fctx)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		if l.gen == gen {
			l.cards = cards
			l.hasCards = true
		}
		l.mu.Unlock()
		return cards, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load project cards: %w", err)
	}
	return cloneCards(v.([]models.ProjectCard)), nil
}

func (l *DataLoader) cachedCards() ([]models.ProjectCard, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.hasCards {
		return nil, false
	}
	return cloneCards(l.cards), true
}

func (l *DataLoader) buildCards(ctx context.Context) ([]models.ProjectCard, error) {
	ids, err := l.ProjectIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		log.Printf("[loader] No projects found under %s", l.baseURL)
		return []models.ProjectCard{}, nil
	}

	slots := make([]*models.ProjectCard, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.batchSize)
	for i, id := range ids {
		g.Go(func() error {
			project, err := l.LoadProject(gctx, id)
			if err != nil {
				log.Printf("[loader] Skipping project %s: %v", id, err)
				return nil
			}
			card := models.NewProjectCard(id, project)
			card.Summary = PlainText(card.Summary)
			slots[i] = &card
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cards := make([]models.ProjectCard, 0, len(ids))
	for _, c := range slots {
		if c != nil {
			cards = append(cards, *c)
		}
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return strings.ToLower(cards[i].Acronym) < strings.ToLower(cards[j].Acronym)
	})

	log.Printf("[loader] Loaded %d projects from %d discovered files", len(cards), len(ids))
	return cards, nil
}

// SearchProjects matches query case-insensitively against acronym, title and
// summary. A blank query matches nothing.
func (l *DataLoader) SearchProjects(ctx context.Context, query string) ([]models.ProjectCard, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.ProjectCard{}, nil
	}

	cards, err := l.LoadProjectCards(ctx)
	if err != nil {
		return nil, err
	}

	results := []models.ProjectCard{}
	for _, c := range cards {
		if strings.Contains(strings.ToLower(c.Acronym), q) ||
			strings.Contains(strings.ToLower(c.Title), q) ||
			strings.Contains(strings.ToLower(c.Summary), q) {
			results = append(results, c)
		}
	}
	return results, nil
}

// ClearCache drops every cached project and the card list. Loads already in
// flight finish for their callers but are not cached.
func (l *DataLoader) ClearCache() {
	l.mu.Lock()
	l.gen++
	l.projects = make(map[string]*models.Project)
	l.cards = nil
	l.hasCards = false
	l.mu.Unlock()
	log.Printf("[loader] Cache cleared")
}

// ForceReload clears the caches and loads the card list again.
func (l *DataLoader) ForceReload(ctx context.Context) ([]models.ProjectCard, error) {
	l.ClearCache()
	return l.LoadProjectCards(ctx)
}

// CachedIDs lists the ids currently held in the project cache, sorted.
func (l *DataLoader) CachedIDs() []string {
	l.mu.RLock()
	ids := make([]string, 0, len(l.projects))
	for id := range l.projects {
		ids = append(ids, id)
	}
	l.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

func cloneCards(cards []models.ProjectCard) []models.ProjectCard {
	out := make([]models.ProjectCard, len(cards))
	copy(out, cards)
	return out
}
