// Package resolver implements the Context Resolver: it determines which
// project a tool call is scoped to, trying explicit arguments, the
// connection's override, an environment variable, an ancestor-directory
// marker search, and finally a configured neutral project.
package resolver

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/srrd-research/srrd-mcp/internal/config"
)

// ErrContextMissing is returned when no tier resolves a project path and
// the caller marked context as required.
var ErrContextMissing = errors.New("context_missing: no project context could be resolved")

// Resolver holds only the configured neutral "global home project" path. It never keeps a global variable — every
// caller (including each WebSocket connection) supplies its own override
// slot explicitly.
type Resolver struct {
	globalHomeProject string
}

// New creates a Resolver with the given global home project (may be empty).
func New(globalHomeProject string) *Resolver {
	return &Resolver{globalHomeProject: globalHomeProject}
}

// Override is the per-connection mutable slot for switch_project_context.
// A stdio session and each WebSocket connection own one instance each —
// they are never shared, so overrides never leak between connections.
type Override struct {
	path string
}

// Set records p as this connection's override.
func (o *Override) Set(p string) { o.path = p }

// Reset clears this connection's override.
func (o *Override) Reset() { o.path = "" }

// Get returns the current override, or "" if none is set.
func (o *Override) Get() string { return o.path }

// SessionSlot is a connection's current active research session id, set by
// start_research_session and read by every subsequent call on that
// connection until the session ends or is reset. Like Override, one
// instance belongs to exactly one connection and is never shared.
type SessionSlot struct {
	id string
}

// Set records id as the connection's active session.
func (s *SessionSlot) Set(id string) { s.id = id }

// Clear drops the connection's active session.
func (s *SessionSlot) Clear() { s.id = "" }

// Get returns the connection's active session id, or "" if none.
func (s *SessionSlot) Get() string { return s.id }

// Resolve computes current_project_path for one dispatched call, trying
// tiers in order:
//  1. explicitPath — the tool call's own project_path argument.
//  2. override — this connection's switch_project_context state.
//  3. SRRD_PROJECT_PATH environment variable.
//  4. nearest ancestor of cwd containing a .srrd marker.
//  5. r.globalHomeProject.
//
// contextRequired controls what happens when none of these resolve: if
// true, ErrContextMissing is returned; if false, "" is returned with a nil
// error (the neutral, unscoped state).
func (r *Resolver) Resolve(explicitPath string, override *Override, contextRequired bool) (string, error) {
	if explicitPath != "" {
		if abs, err := filepath.Abs(explicitPath); err == nil {
			return abs, nil
		}
		return explicitPath, nil
	}

	if override != nil && override.Get() != "" {
		return override.Get(), nil
	}

	if env := os.Getenv("SRRD_PROJECT_PATH"); env != "" {
		return env, nil
	}

	if root, ok := findProjectRoot(); ok {
		return root, nil
	}

	if r.globalHomeProject != "" {
		return r.globalHomeProject, nil
	}

	if contextRequired {
		return "", ErrContextMissing
	}
	return "", nil
}

// findProjectRoot walks up from the current working directory looking for
// a .srrd project marker, mirroring the ancestor-search pattern used
// elsewhere in this codebase for locating a project root from any
// subdirectory.
func findProjectRoot() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}

	current := dir
	for {
		candidate := filepath.Join(current, config.SRRDDir, config.ConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return current, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}
