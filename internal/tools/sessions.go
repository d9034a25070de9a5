package tools

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/registry"
	"github.com/srrd-research/srrd-mcp/internal/toolctx"
)

// StartResearchSessionTool is start_research_session: opens a session row
// against the resolved project's Store and pins this connection's
// SessionSlot to it, so every subsequent call on the connection groups its
// tool_usage/interactions rows under the same session id until the session
// is reset.
type StartResearchSessionTool struct{}

func (StartResearchSessionTool) Name() string         { return "start_research_session" }
func (StartResearchSessionTool) ContextRequired() bool { return requireContext }
func (StartResearchSessionTool) Capabilities() []capability.Name { return capNone }

func (StartResearchSessionTool) Description() string {
	return "Open a new research session, grouping subsequent tool activity on this connection under one session id."
}

func (StartResearchSessionTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"session_type": enumProp("string", "The kind of session being opened.", "research", "exploration", "validation"),
			"user":         prop("string", "Identifies who is driving this session, if known."),
			"project_path": prop("string", "Explicit project path override."),
		},
	}
}

func (StartResearchSessionTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	call := toolctx.From(ctx)
	if call == nil || call.Store == nil {
		return registry.ErrorResult("no project store available to open a session against"), nil
	}

	sessionType := str(args, "session_type", "research")
	user := str(args, "user", "")
	id := uuid.NewString()

	if err := call.Store.SessionOpen(id, sessionType, user); err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}
	if call.Session != nil {
		call.Session.Set(id)
	}

	return registry.TextResult(fmt.Sprintf("Started session %s (%s).", id, sessionType)), nil
}

// SwitchProjectContextTool is switch_project_context: sets this
// connection's Override to a new project path, so every subsequent call
// that does not supply its own explicit project_path resolves against it
// instead of falling through to the environment or ancestor-search tiers.
type SwitchProjectContextTool struct{}

func (SwitchProjectContextTool) Name() string         { return "switch_project_context" }
func (SwitchProjectContextTool) ContextRequired() bool { return noContext }
func (SwitchProjectContextTool) Capabilities() []capability.Name { return capNone }

func (SwitchProjectContextTool) Description() string {
	return "Switch this connection's active project context to a different project path."
}

func (SwitchProjectContextTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"project_path": prop("string", "The project path to switch this connection's context to."),
		},
		Required: []string{"project_path"},
	}
}

func (SwitchProjectContextTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	call := toolctx.From(ctx)
	if call == nil || call.Override == nil {
		return registry.ErrorResult("no connection override slot available"), nil
	}

	path := str(args, "project_path", "")
	call.Override.Set(path)
	if call.Session != nil {
		call.Session.Clear()
	}
	return registry.TextResult(fmt.Sprintf("Switched active project context to %s.", path)), nil
}

// ResetProjectContextTool is reset_project_context: clears this
// connection's Override and active session, returning context resolution
// to the environment/ancestor-search/global-home tiers.
type ResetProjectContextTool struct{}

func (ResetProjectContextTool) Name() string         { return "reset_project_context" }
func (ResetProjectContextTool) ContextRequired() bool { return noContext }
func (ResetProjectContextTool) Capabilities() []capability.Name { return capNone }

func (ResetProjectContextTool) Description() string {
	return "Clear this connection's project context override and active session."
}

func (ResetProjectContextTool) ParamSchema() registry.Schema {
	return registry.Schema{Type: "object", Properties: map[string]registry.Property{}}
}

func (ResetProjectContextTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	call := toolctx.From(ctx)
	if call == nil {
		return registry.TextResult("Context reset."), nil
	}
	if call.Override != nil {
		call.Override.Reset()
	}
	if call.Session != nil {
		call.Session.Clear()
	}
	return registry.TextResult("Project context override and active session cleared."), nil
}
