// Package capability implements the Capability Registry: a read-only,
// startup-resolved set of boolean predicates for optional feature groups
// (LaTeX compilation, vector-backed knowledge search).
package capability

import (
	"encoding/json"
	"os"
)

// Name identifies an optional feature group a tool may require.
type Name string

const (
	LaTeX    Name = "latex"
	VectorDB Name = "vector_db"
)

// manifest mirrors the on-disk installed_features.json shape.
type manifest struct {
	LaTeX    bool `json:"latex"`
	VectorDB bool `json:"vector_db"`
}

// Registry exposes boolean predicates for each optional capability. It is
// built once, at startup, after configuration is loaded — tool bodies
// never read capability state directly or perform their own registration
// time file I/O; they only see the outcome of Has.
type Registry struct {
	installed map[Name]bool
}

// Load builds a Registry from an installed_features.json manifest at
// manifestPath (if present) combined with explicit overrides — typically
// the already-resolved ServerConfig.Features values, which themselves may
// have come from SRRD_LATEX_INSTALLED / SRRD_VECTOR_DB_INSTALLED env vars.
// Overrides always win over the manifest file.
func Load(manifestPath string, latexOverride, vectorDBOverride *bool) (*Registry, error) {
	m := manifest{}

	if manifestPath != "" {
		data, err := os.ReadFile(manifestPath)
		if err == nil {
			if err := json.Unmarshal(data, &m); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if latexOverride != nil {
		m.LaTeX = *latexOverride
	}
	if vectorDBOverride != nil {
		m.VectorDB = *vectorDBOverride
	}

	return &Registry{installed: map[Name]bool{
		LaTeX:    m.LaTeX,
		VectorDB: m.VectorDB,
	}}, nil
}

// New builds a Registry directly from resolved booleans, bypassing any
// manifest file — the common path when the server already has a fully
// resolved ServerConfig.Features.
func New(latex, vectorDB bool) *Registry {
	return &Registry{installed: map[Name]bool{
		LaTeX:    latex,
		VectorDB: vectorDB,
	}}
}

// Has reports whether the named capability is installed.
func (r *Registry) Has(n Name) bool {
	return r.installed[n]
}

// Satisfies reports whether every capability in required is installed.
// An empty required set is trivially satisfied.
func (r *Registry) Satisfies(required []Name) bool {
	for _, n := range required {
		if !r.Has(n) {
			return false
		}
	}
	return true
}
