package config

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestNewProjectConfig_SetsDefaults(t *testing.T) {
	cfg := NewProjectConfig("my-research", "A cool project", "physics")

	if cfg.Name != "my-research" {
		t.Errorf("Name = %s, want my-research", cfg.Name)
	}
	if cfg.Domain != "physics" {
		t.Errorf("Domain = %s, want physics", cfg.Domain)
	}
	if cfg.Version != "0.1.0" {
		t.Errorf("Version = %s, want 0.1.0", cfg.Version)
	}
	if cfg.NovelTheory {
		t.Error("NovelTheory should default to false")
	}
	if cfg.CreatedAt == "" || cfg.UpdatedAt == "" {
		t.Error("timestamps should be set")
	}
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	store := NewFileStore()
	original := NewProjectConfig("roundtrip", "desc", "biology")
	original.Methodology = "empirical"
	original.NovelTheory = true

	if err := store.Save(tmpDir, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(ConfigPath(tmpDir)); os.IsNotExist(err) {
		t.Fatalf("config file not created at %s", ConfigPath(tmpDir))
	}

	loaded, err := store.Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != original.Name || loaded.Domain != original.Domain {
		t.Errorf("loaded = %+v, want name/domain to match %+v", loaded, original)
	}
	if loaded.Methodology != original.Methodology {
		t.Errorf("Methodology = %s, want %s", loaded.Methodology, original.Methodology)
	}
	if !loaded.NovelTheory {
		t.Error("NovelTheory should round-trip as true")
	}
}

func TestFileStore_SaveCreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewFileStore()
	cfg := NewProjectConfig("x", "y", "chemistry")

	if err := store.Save(tmpDir, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	for _, dir := range []string{SRRDPath(tmpDir), WorkPath(tmpDir), PublicationsPath(tmpDir)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("%s not created: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", dir)
		}
	}
}

func TestFileStore_SaveWritesValidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewFileStore()
	cfg := NewProjectConfig("json-test", "testing JSON output", "mathematics")

	if err := store.Save(tmpDir, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(ConfigPath(tmpDir))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
	if name, _ := parsed["name"].(string); name != "json-test" {
		t.Errorf("JSON name = %v, want json-test", parsed["name"])
	}
}

func TestFileStore_Load_NotInitialized(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewFileStore()

	_, err := store.Load(tmpDir)
	if err == nil {
		t.Fatal("Load should fail when no config exists")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("unexpected error: %s", err.Error())
	}
}

func TestFileStore_Load_CorruptJSON(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.MkdirAll(SRRDPath(tmpDir), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(ConfigPath(tmpDir), []byte("not json"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store := NewFileStore()
	_, err := store.Load(tmpDir)
	if err == nil {
		t.Fatal("Load should fail on corrupt JSON")
	}
	if !strings.Contains(err.Error(), "parsing config.json") {
		t.Errorf("unexpected error: %s", err.Error())
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	if Exists(tmpDir) {
		t.Error("Exists should return false for empty directory")
	}

	store := NewFileStore()
	if err := store.Save(tmpDir, NewProjectConfig("x", "y", "psychology")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !Exists(tmpDir) {
		t.Error("Exists should return true after Save")
	}
}
