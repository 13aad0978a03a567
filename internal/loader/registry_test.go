package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistry_Embedded(t *testing.T) {
	reg, err := LoadRegistry("")
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	candidates := reg.Candidates()
	if len(candidates) == 0 {
		t.Fatal("expected embedded candidates")
	}
	if candidates[0] != "alchemy" {
		t.Fatalf("expected known projects first, got %s", candidates[0])
	}

	seen := map[string]bool{}
	for _, c := range candidates {
		if seen[c] {
			t.Fatalf("duplicate candidate %q", c)
		}
		seen[c] = true
	}
	// "no" and "on" are YAML 1.1 booleans; they must survive as ids.
	for _, want := range []string{"trineflex", "no", "on", "ze"} {
		if !seen[want] {
			t.Errorf("missing candidate %q", want)
		}
	}
}

func TestLoadRegistry_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.yaml")
	content := "groups:\n  - name: mine\n    ids: [alpha, beta, alpha, \" \"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	got := reg.Candidates()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Fatalf("unexpected candidates %v", got)
	}
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	if _, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing registry file")
	}
}
