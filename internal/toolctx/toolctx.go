// Package toolctx carries the per-call state the Dispatcher resolves
// before invoking a tool body — the resolved project path, its Store, and
// the session id the call is scoped to — as context.Context values, so
// tool bodies never reach into dispatcher internals directly.
package toolctx

import (
	"context"
	"log/slog"

	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/config"
	"github.com/srrd-research/srrd-mcp/internal/framework"
	"github.com/srrd-research/srrd-mcp/internal/knowledge"
	"github.com/srrd-research/srrd-mcp/internal/resolver"
	"github.com/srrd-research/srrd-mcp/internal/store"
	"github.com/srrd-research/srrd-mcp/internal/templates"
	"github.com/srrd-research/srrd-mcp/internal/workflow"
)

type key int

const callKey key = 0

// Call bundles everything a tool body may need beyond its own parameters.
type Call struct {
	// ProjectPath is the resolved current_project_path, or "" when no
	// context was required and none resolved.
	ProjectPath string

	// ProjectConfig is the loaded .srrd/config.json, or nil if the project
	// has never been initialized.
	ProjectConfig *config.ProjectConfig

	// Store is the project-scoped relational Store, or nil when
	// ProjectPath is "".
	Store *store.Store

	// SessionID is the session this call is grouped under, if any tool in
	// the call chain opened one via start_research_session.
	SessionID string

	// Caps is the read-only Capability Registry resolved at startup.
	Caps *capability.Registry

	// Framework is the static research-act taxonomy.
	Framework *framework.Framework

	// Workflow computes progress/velocity/guidance/recommendations/
	// milestones/journey from Store data.
	Workflow *workflow.Engine

	// ServerConfig carries the few process-wide settings tool bodies read
	// directly (embedding model identifier, global home project).
	ServerConfig *config.ServerConfig

	// Logger is the structured logger threaded from the composition root.
	Logger *slog.Logger

	// Override is this connection's switch_project_context slot.
	// switch_project_context/reset_project_context are the only tools
	// that mutate it.
	Override *resolver.Override

	// Session is this connection's active-session slot, mutated by
	// start_research_session.
	Session *resolver.SessionSlot

	// Knowledge hands out the project-scoped embedded vector collection.
	// The Dispatcher sets it whether or not vector_db is installed; the
	// tools that use it declare the vector_db capability, so the Dispatcher
	// rejects them before Execute when that capability is absent.
	Knowledge *knowledge.Manager

	// Templates renders LaTeX/bibliography documents, gated by the latex
	// capability for the tools that shell out to a LaTeX engine.
	Templates *templates.Renderer
}

// With returns a new context carrying c.
func With(ctx context.Context, c *Call) context.Context {
	return context.WithValue(ctx, callKey, c)
}

// From extracts the Call a Dispatcher attached to ctx. Returns nil if none
// was attached — tool bodies should treat that as a programmer error, not
// a recoverable condition, since the Dispatcher always attaches one.
func From(ctx context.Context) *Call {
	c, _ := ctx.Value(callKey).(*Call)
	return c
}
