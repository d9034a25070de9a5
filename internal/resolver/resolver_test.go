package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/srrd-research/srrd-mcp/internal/config"
)

func TestResolve_ExplicitArgumentWins(t *testing.T) {
	r := New("")
	got, err := r.Resolve("/tmp/explicit-project", nil, true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "/tmp/explicit-project" {
		t.Errorf("got %s, want /tmp/explicit-project", got)
	}
}

func TestResolve_OverrideBeatsEnvAndAncestor(t *testing.T) {
	t.Setenv("SRRD_PROJECT_PATH", "/tmp/env-project")

	r := New("")
	ov := &Override{}
	ov.Set("/tmp/override-project")

	got, err := r.Resolve("", ov, true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "/tmp/override-project" {
		t.Errorf("got %s, want override to win", got)
	}
}

func TestResolve_EnvVarTier(t *testing.T) {
	t.Setenv("SRRD_PROJECT_PATH", "/tmp/env-project")

	r := New("")
	got, err := r.Resolve("", &Override{}, true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "/tmp/env-project" {
		t.Errorf("got %s, want env var project", got)
	}
}

func TestResolve_AncestorMarkerSearch(t *testing.T) {
	t.Setenv("SRRD_PROJECT_PATH", "")

	root := t.TempDir()
	if err := os.MkdirAll(config.SRRDPath(root), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(config.ConfigPath(root), []byte(`{"name":"x"}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll nested: %v", err)
	}

	old, _ := os.Getwd()
	defer os.Chdir(old)
	if err := os.Chdir(nested); err != nil {
		t.Fatalf("Chdir: %v", err)
	}

	r := New("")
	got, err := r.Resolve("", &Override{}, true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != root {
		t.Errorf("got %s, want ancestor root %s", got, root)
	}
}

func TestResolve_GlobalHomeProjectNeutralState(t *testing.T) {
	t.Setenv("SRRD_PROJECT_PATH", "")

	dir := t.TempDir()
	old, _ := os.Getwd()
	defer os.Chdir(old)
	os.Chdir(dir)

	r := New("/tmp/home-project")
	got, err := r.Resolve("", &Override{}, true)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "/tmp/home-project" {
		t.Errorf("got %s, want global home project", got)
	}
}

func TestResolve_ContextMissingWhenNothingResolves(t *testing.T) {
	t.Setenv("SRRD_PROJECT_PATH", "")

	dir := t.TempDir()
	old, _ := os.Getwd()
	defer os.Chdir(old)
	os.Chdir(dir)

	r := New("")
	_, err := r.Resolve("", &Override{}, true)
	if err != ErrContextMissing {
		t.Errorf("err = %v, want ErrContextMissing", err)
	}
}

func TestResolve_NotRequiredReturnsEmptyNeutral(t *testing.T) {
	t.Setenv("SRRD_PROJECT_PATH", "")

	dir := t.TempDir()
	old, _ := os.Getwd()
	defer os.Chdir(old)
	os.Chdir(dir)

	r := New("")
	got, err := r.Resolve("", &Override{}, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "" {
		t.Errorf("got %s, want empty neutral state", got)
	}
}

func TestOverride_IsolatedPerInstance(t *testing.T) {
	connA := &Override{}
	connB := &Override{}

	connA.Set("/tmp/project-a")
	if connB.Get() != "" {
		t.Error("connB should not see connA's override")
	}

	connA.Reset()
	if connA.Get() != "" {
		t.Error("Reset should clear the override")
	}
}
