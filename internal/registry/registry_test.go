package registry

import (
	"context"
	"testing"

	"github.com/srrd-research/srrd-mcp/internal/capability"
)

type fakeTool struct {
	name string
	caps []capability.Name
}

func (f fakeTool) Name() string                        { return f.name }
func (f fakeTool) Description() string                 { return "a fake tool" }
func (f fakeTool) ParamSchema() Schema                  { return Schema{Type: "object"} }
func (f fakeTool) Capabilities() []capability.Name      { return f.caps }
func (f fakeTool) ContextRequired() bool                { return false }
func (f fakeTool) Execute(ctx context.Context, params map[string]any) (*Result, error) {
	return TextResult("ok"), nil
}

func TestRegister_DuplicateNamePanics(t *testing.T) {
	r := New()
	r.Register(fakeTool{name: "clarify_research_goals"})

	defer func() {
		if rec := recover(); rec == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	r.Register(fakeTool{name: "clarify_research_goals"})
}

func TestList_FiltersByCapability(t *testing.T) {
	r := New()
	r.Register(fakeTool{name: "clarify_research_goals"})
	r.Register(fakeTool{name: "compile_latex", caps: []capability.Name{capability.LaTeX}})

	caps := capability.New(false, false)
	defs := r.List(caps)

	if len(defs) != 1 || defs[0].Name != "clarify_research_goals" {
		t.Errorf("defs = %+v, want only clarify_research_goals listed", defs)
	}

	caps = capability.New(true, false)
	defs = r.List(caps)
	if len(defs) != 2 {
		t.Errorf("defs = %+v, want both tools listed once LaTeX is installed", defs)
	}
}

func TestGet_UnknownToolReturnsNil(t *testing.T) {
	r := New()
	if r.Get("does_not_exist") != nil {
		t.Error("Get should return nil for unknown tool")
	}
}

func TestNames_IgnoresCapabilityGating(t *testing.T) {
	r := New()
	r.Register(fakeTool{name: "compile_latex", caps: []capability.Name{capability.LaTeX}})

	names := r.Names()
	if len(names) != 1 || names[0] != "compile_latex" {
		t.Errorf("Names = %v, want [compile_latex] regardless of capability gating", names)
	}
}
