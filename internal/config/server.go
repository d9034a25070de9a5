package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ServerConfig holds process-wide settings for the MCP server: transport
// bind address, logging, optional feature capabilities, and the embedding
// model identifier passed to knowledge-search collaborators.
//
// Precedence: environment variables > config file > defaults, matching
// the layering used across this codebase's other configuration surfaces.
type ServerConfig struct {
	MCPPort           int            `toml:"mcp_port"`
	MCPHost           string         `toml:"mcp_host"`
	LogLevel          string         `toml:"log_level"`
	Features          FeaturesConfig `toml:"features"`
	EmbeddingModel    string         `toml:"embedding_model"`
	GlobalHomeProject string         `toml:"global_home_project"`
}

// FeaturesConfig records which optional capability groups are enabled.
type FeaturesConfig struct {
	LaTeX    bool `toml:"latex"`
	VectorDB bool `toml:"vector_db"`
}

// LoadServerConfig builds a ServerConfig by layering defaults, an optional
// TOML file, and environment variable overrides (env always wins).
//
// Config file search order (first found wins):
//  1. explicit path (e.g. from a --config flag)
//  2. SRRD_CONFIG environment variable
//  3. ./srrd.toml
//  4. ~/.config/srrd/srrd.toml
func LoadServerConfig(explicitPath string) (*ServerConfig, error) {
	cfg := &ServerConfig{
		MCPPort:           8765,
		MCPHost:           "127.0.0.1",
		LogLevel:          "info",
		EmbeddingModel:    "local-minilm",
		GlobalHomeProject: "",
	}

	if err := cfg.loadFile(explicitPath); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if cfg.MCPPort <= 0 || cfg.MCPPort > 65535 {
		return nil, fmt.Errorf("invalid mcp_port: %d", cfg.MCPPort)
	}
	return cfg, nil
}

func (c *ServerConfig) loadFile(explicit string) error {
	path := resolveServerConfigPath(explicit)
	if path == "" {
		return nil
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return nil
}

func resolveServerConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("SRRD_CONFIG"); p != "" {
		return p
	}
	if _, err := os.Stat("srrd.toml"); err == nil {
		return "srrd.toml"
	}
	if home, err := os.UserHomeDir(); err == nil {
		p := home + "/.config/srrd/srrd.toml"
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyEnv overlays SRRD_* environment variables, matching the wire-level
// names given in the external-interfaces contract.
func (c *ServerConfig) applyEnv() {
	if v := os.Getenv("SRRD_MCP_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil && port > 0 {
			c.MCPPort = port
		}
	}
	if v := os.Getenv("SRRD_LATEX_INSTALLED"); v != "" {
		c.Features.LaTeX = v == "true" || v == "1"
	}
	if v := os.Getenv("SRRD_VECTOR_DB_INSTALLED"); v != "" {
		c.Features.VectorDB = v == "true" || v == "1"
	}
	// SRRD_PROJECT_PATH does not belong to ServerConfig directly — it is
	// read by the Context Resolver (tier 3) at resolution time, not here.
}
