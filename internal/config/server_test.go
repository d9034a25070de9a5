package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServerConfig_MissingExplicitFileErrors(t *testing.T) {
	t.Setenv("SRRD_CONFIG", "")
	t.Setenv("SRRD_MCP_PORT", "")
	t.Setenv("SRRD_LATEX_INSTALLED", "")
	t.Setenv("SRRD_VECTOR_DB_INSTALLED", "")

	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		// explicit path that doesn't exist should error via toml.DecodeFile
		t.Fatalf("expected error for missing explicit config file, got cfg=%+v", cfg)
	}
}

func TestLoadServerConfig_FileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "srrd.toml")
	content := `
mcp_port = 9000
mcp_host = "0.0.0.0"
log_level = "debug"

[features]
latex = true
vector_db = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("SRRD_MCP_PORT", "9100")
	t.Setenv("SRRD_VECTOR_DB_INSTALLED", "true")

	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("LoadServerConfig: %v", err)
	}

	if cfg.MCPPort != 9100 {
		t.Errorf("MCPPort = %d, want 9100 (env should win over file)", cfg.MCPPort)
	}
	if cfg.MCPHost != "0.0.0.0" {
		t.Errorf("MCPHost = %s, want 0.0.0.0 (from file)", cfg.MCPHost)
	}
	if !cfg.Features.LaTeX {
		t.Error("Features.LaTeX should be true from file")
	}
	if !cfg.Features.VectorDB {
		t.Error("Features.VectorDB should be true (env override)")
	}
}

func TestLoadServerConfig_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("SRRD_CONFIG", "")
	t.Setenv("SRRD_MCP_PORT", "")
	t.Setenv("SRRD_LATEX_INSTALLED", "")
	t.Setenv("SRRD_VECTOR_DB_INSTALLED", "")

	dir := t.TempDir()
	old, _ := os.Getwd()
	defer os.Chdir(old)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}

	cfg, err := LoadServerConfig("")
	if err != nil {
		t.Fatalf("LoadServerConfig: %v", err)
	}
	if cfg.MCPPort != 8765 {
		t.Errorf("MCPPort = %d, want default 8765", cfg.MCPPort)
	}
	if cfg.MCPHost != "127.0.0.1" {
		t.Errorf("MCPHost = %s, want default 127.0.0.1", cfg.MCPHost)
	}
}
