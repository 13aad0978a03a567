package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/david/eu-project-explorer/internal/config"
	"github.com/david/eu-project-explorer/internal/loader"
	"github.com/stretchr/testify/require"
)

func projectJSON(acronym, country, amount string, participants int) string {
	parts := make([]string, 0, participants)
	for i := 1; i <= participants; i++ {
		role := "Beneficiary"
		if i == 1 {
			role = "Coordinator"
		}
		parts = append(parts, fmt.Sprintf(`{"no": %d, "role": %q, "shortName": "P%d", "country": %q, "countryCode": "XX"}`, i, role, i, country))
	}
	return fmt.Sprintf(`{
		"projectInfo": {
			"acronym": %q, "title": "%s project", "summary": "About <i>%s</i>",
			"maxAmount": %q, "duration": "24 Months", "startDate": "2024-01-01", "endDate": "2025-12-31",
			"coordinator": {"name": "Coord %s", "location": %q}
		},
		"participants": [%s],
		"workPackagesWithTasks": [{"no": 1, "title": "Management", "leader": "P1", "start": 1, "end": 24, "tasks": []}],
		"deliverables": [{"no": "D1.1", "name": "Plan", "wp": 1, "type": "Report", "level": "Public", "due": 3}],
		"milestones": [{"no": 1, "name": "Kick-off", "wp": 1, "leader": "P1", "due": 1}]
	}`, acronym, acronym, acronym, amount, acronym, country, strings.Join(parts, ","))
}

// dataHost serves project files; while gate is non-nil manifest requests block on it.
type dataHost struct {
	mu    sync.Mutex
	files map[string]string
	gate  chan struct{}
}

func (h *dataHost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/eu-data/")
	h.mu.Lock()
	body, ok := h.files[name]
	gate := h.gate
	h.mu.Unlock()

	if gate != nil && strings.HasPrefix(name, "projects-manifest") {
		<-gate
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodHead {
		_, _ = w.Write([]byte(body))
	}
}

func newTestServer(t *testing.T) (*Server, *dataHost) {
	t.Helper()
	host := &dataHost{files: map[string]string{
		"projects-manifest.json": `{"projects": ["alchemy", "maestro", "reuman"]}`,
		"alchemy.json":           projectJSON("ALCHEMY", "Greece", "€1,000,000", 3),
		"maestro.json":           projectJSON("MAESTRO", "Spain", "€20,000,000", 18),
		"reuman.json":            projectJSON("REUMAN", "Greece", "€500,000", 8),
		"broken.json":            `{`,
	}}
	data := httptest.NewServer(host)
	t.Cleanup(data.Close)

	reg, err := loader.LoadRegistry("")
	require.NoError(t, err)
	l, err := loader.New(loader.Options{
		BaseURL:  data.URL + "/eu-data",
		Fetcher:  loader.NewHTTPFetcher(5 * time.Second),
		Registry: reg,
	})
	require.NoError(t, err)

	s := NewServer(l, config.Server{})
	s.now = func() time.Time { return time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC) }
	return s, host
}

func do(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func acronyms(t *testing.T, items any) []string {
	t.Helper()
	list, ok := items.([]any)
	require.True(t, ok, "expected a list, got %T", items)
	out := []string{}
	for _, it := range list {
		out = append(out, it.(map[string]any)["acronym"].(string))
	}
	return out
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestListProjects(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/projects")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, []string{"ALCHEMY", "MAESTRO", "REUMAN"}, acronyms(t, body["projects"]))
	require.Equal(t, float64(3), body["total"])
	require.Len(t, body["budget_ranges"], 5)
	facets := body["facets"].(map[string]any)
	require.Equal(t, []any{"Greece", "Spain"}, facets["countries"])

	rec = do(t, s, http.MethodGet, "/api/v1/projects?country=Greece&sort=maxAmount&dir=desc")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	require.Equal(t, []string{"ALCHEMY", "REUMAN"}, acronyms(t, body["projects"]))
	require.Equal(t, float64(2), body["count"])

	rec = do(t, s, http.MethodGet, "/api/v1/projects?participantSize=medium")
	require.Equal(t, []string{"REUMAN"}, acronyms(t, decode(t, rec)["projects"]))

	rec = do(t, s, http.MethodGet, "/api/v1/projects?budget=20000000-Infinity")
	require.Equal(t, []string{"MAESTRO"}, acronyms(t, decode(t, rec)["projects"]))

	rec = do(t, s, http.MethodGet, "/api/v1/projects?sort=colour")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchProjects(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/projects/search?q=maes")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"MAESTRO"}, acronyms(t, decode(t, rec)["results"]))

	rec = do(t, s, http.MethodGet, "/api/v1/projects/search?q=")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode(t, rec)["results"])
}

func TestAvailableProjects(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/v1/projects/available")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []any{"alchemy", "maestro", "reuman"}, decode(t, rec)["projects"])
}

func TestGetProject(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/projects/alchemy")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	overview := body["overview"].(map[string]any)
	require.Equal(t, "ALCHEMY", overview["acronym"])
	require.Equal(t, "1.000,000", overview["amount"])
	tl := body["timeline"].(map[string]any)
	require.Equal(t, float64(4), tl["currentMonth"])

	for _, sub := range []string{"timeline", "participants", "deliverables"} {
		rec = do(t, s, http.MethodGet, "/api/v1/projects/maestro/"+sub)
		require.Equal(t, http.StatusOK, rec.Code, sub)
	}
	rec = do(t, s, http.MethodGet, "/api/v1/projects/maestro/participants")
	require.Equal(t, float64(18), decode(t, rec)["totalParticipants"])
}

func TestGetProject_Errors(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/projects/ghost")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, decode(t, rec)["error"], "ghost")

	rec = do(t, s, http.MethodGet, "/api/v1/projects/broken")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, decode(t, rec)["error"], "broken")

	rec = do(t, s, http.MethodGet, "/api/v1/projects/..%2Fsecret/timeline")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminCache(t *testing.T) {
	s, _ := newTestServer(t)

	do(t, s, http.MethodGet, "/api/v1/projects/alchemy")
	rec := do(t, s, http.MethodGet, "/api/v1/admin/cache")
	require.Equal(t, []any{"alchemy"}, decode(t, rec)["cached"])

	rec = do(t, s, http.MethodPost, "/api/v1/admin/cache/clear")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(1), decode(t, rec)["evicted"])

	rec = do(t, s, http.MethodGet, "/api/v1/admin/cache")
	require.Equal(t, float64(0), decode(t, rec)["count"])
}

func TestAdminManifest(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/v1/admin/manifest")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	// Generated from the embedded candidate registry, which knows these ids.
	require.Contains(t, body["projects"], "alchemy")
	require.Contains(t, body["projects"], "maestro")
	require.Equal(t, "loader.GenerateManifest", body["generatedBy"])
}

func TestAdminReloadJob(t *testing.T) {
	s, host := newTestServer(t)

	gate := make(chan struct{})
	host.mu.Lock()
	host.gate = gate
	host.mu.Unlock()

	rec := do(t, s, http.MethodPost, "/api/v1/admin/reload")
	require.Equal(t, http.StatusAccepted, rec.Code)
	body := decode(t, rec)
	jobID := body["job_id"].(string)
	require.Len(t, jobID, 8)
	require.Equal(t, "/api/v1/admin/job/"+jobID, body["poll"])

	rec = do(t, s, http.MethodPost, "/api/v1/admin/reload")
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, jobID, decode(t, rec)["job_id"])

	rec = do(t, s, http.MethodGet, "/api/v1/admin/job/"+jobID)
	require.Equal(t, "running", decode(t, rec)["status"])

	close(gate)
	require.Eventually(t, func() bool {
		rec := do(t, s, http.MethodGet, "/api/v1/admin/job/"+jobID)
		return decode(t, rec)["status"] == "completed"
	}, 5*time.Second, 20*time.Millisecond)

	rec = do(t, s, http.MethodGet, "/api/v1/admin/job/"+jobID)
	result := decode(t, rec)["result"].(map[string]any)
	require.Equal(t, float64(3), result["projects"])

	rec = do(t, s, http.MethodGet, "/api/v1/admin/job/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
