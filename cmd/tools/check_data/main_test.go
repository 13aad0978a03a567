package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/david/eu-project-explorer/internal/loader"
	"github.com/stretchr/testify/require"
)

func TestCheckProjects(t *testing.T) {
	dir := t.TempDir()
	project := `{"projectInfo": {"acronym": "ALCHEMY", "duration": "48 Months"},
		"participants": [{"no": 1, "role": "Coordinator", "shortName": "NTUA"}],
		"workPackagesWithTasks": [], "deliverables": [], "milestones": []}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alchemy.json"), []byte(project), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{`), 0o644))

	l, err := loader.New(loader.Options{BaseURL: "file://" + filepath.ToSlash(dir), Fetcher: loader.FileFetcher{}})
	require.NoError(t, err)

	var out bytes.Buffer
	failed := checkProjects(context.Background(), l, []string{"alchemy", "broken"}, &out)
	require.Equal(t, 1, failed)

	text := strings.ToLower(out.String())
	require.Contains(t, text, "load time")
	require.NotContains(t, text, "duration")
	require.Contains(t, text, "alchemy")
	require.Contains(t, text, "failed")
}
