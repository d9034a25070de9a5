package capability

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_DirectResolution(t *testing.T) {
	r := New(true, false)
	if !r.Has(LaTeX) {
		t.Error("LaTeX should be installed")
	}
	if r.Has(VectorDB) {
		t.Error("VectorDB should not be installed")
	}
}

func TestLoad_ManifestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "installed_features.json")
	if err := os.WriteFile(path, []byte(`{"latex": true, "vector_db": true}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r, err := Load(path, nil, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !r.Has(LaTeX) || !r.Has(VectorDB) {
		t.Error("both capabilities should be installed from manifest")
	}
}

func TestLoad_OverrideWinsOverManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "installed_features.json")
	if err := os.WriteFile(path, []byte(`{"latex": true}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	no := false
	r, err := Load(path, &no, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Has(LaTeX) {
		t.Error("override should force LaTeX false despite manifest saying true")
	}
}

func TestLoad_MissingManifestIsNotAnError(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "missing.json"), nil, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Has(LaTeX) || r.Has(VectorDB) {
		t.Error("missing manifest with no overrides should default to no capabilities")
	}
}

func TestSatisfies(t *testing.T) {
	r := New(true, false)

	if !r.Satisfies(nil) {
		t.Error("empty requirement set should always be satisfied")
	}
	if !r.Satisfies([]Name{LaTeX}) {
		t.Error("LaTeX requirement should be satisfied")
	}
	if r.Satisfies([]Name{VectorDB}) {
		t.Error("VectorDB requirement should not be satisfied")
	}
	if r.Satisfies([]Name{LaTeX, VectorDB}) {
		t.Error("combined requirement should fail when one capability is missing")
	}
}
