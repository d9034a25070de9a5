package tools

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/srrd-research/srrd-mcp/internal/resolver"
	"github.com/srrd-research/srrd-mcp/internal/store"
	"github.com/srrd-research/srrd-mcp/internal/toolctx"
)

func newCallWithStore(t *testing.T) (*toolctx.Call, *resolver.Override, *resolver.SessionSlot) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	override := &resolver.Override{}
	session := &resolver.SessionSlot{}
	call := &toolctx.Call{
		ProjectPath: t.TempDir(),
		Store:       s,
		Override:    override,
		Session:     session,
	}
	return call, override, session
}

func TestStartResearchSessionTool_PinsSessionSlot(t *testing.T) {
	call, _, session := newCallWithStore(t)
	ctx := toolctx.With(context.Background(), call)

	_, err := StartResearchSessionTool{}.Execute(ctx, map[string]any{"session_type": "research"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if session.Get() == "" {
		t.Errorf("expected SessionSlot to be set after starting a session")
	}
}

func TestSwitchProjectContextTool_SetsOverride(t *testing.T) {
	call, override, session := newCallWithStore(t)
	session.Set("prior-session")
	ctx := toolctx.With(context.Background(), call)

	_, err := SwitchProjectContextTool{}.Execute(ctx, map[string]any{"project_path": "/tmp/other-project"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if override.Get() != "/tmp/other-project" {
		t.Errorf("Override.Get() = %q, want /tmp/other-project", override.Get())
	}
	if session.Get() != "" {
		t.Errorf("switching project context should clear the active session")
	}
}

func TestResetProjectContextTool_ClearsOverrideAndSession(t *testing.T) {
	call, override, session := newCallWithStore(t)
	override.Set("/tmp/some-project")
	session.Set("active-session")
	ctx := toolctx.With(context.Background(), call)

	_, err := ResetProjectContextTool{}.Execute(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if override.Get() != "" {
		t.Errorf("expected override to be reset")
	}
	if session.Get() != "" {
		t.Errorf("expected session to be cleared")
	}
}
