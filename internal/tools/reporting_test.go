package tools

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/srrd-research/srrd-mcp/internal/framework"
	"github.com/srrd-research/srrd-mcp/internal/store"
	"github.com/srrd-research/srrd-mcp/internal/toolctx"
	"github.com/srrd-research/srrd-mcp/internal/workflow"
)

func newReportingCall(t *testing.T) *toolctx.Call {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.RecordToolUsage("clarify_research_goals", "clarified the goal", ""); err != nil {
		t.Fatalf("RecordToolUsage: %v", err)
	}

	fw := framework.New()
	return &toolctx.Call{
		ProjectPath: t.TempDir(),
		Store:       s,
		Workflow:    workflow.New(fw),
		Framework:   fw,
	}
}

func TestGetResearchProgressTool_ReportsRecordedUsage(t *testing.T) {
	call := newReportingCall(t)
	ctx := toolctx.With(context.Background(), call)

	result, err := GetResearchProgressTool{}.Execute(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected a successful progress report, got error: %v", result.Content)
	}
	report, ok := result.Content[0].JSON.(*workflow.ProgressReport)
	if !ok {
		t.Fatalf("expected a *workflow.ProgressReport, got %T", result.Content[0].JSON)
	}
	if report.TotalInvocations != 1 {
		t.Errorf("expected 1 recorded invocation, got %d", report.TotalInvocations)
	}
}

func TestGetResearchProgressTool_MissingWorkflowIsError(t *testing.T) {
	call := &toolctx.Call{ProjectPath: t.TempDir()}
	ctx := toolctx.With(context.Background(), call)

	result, err := GetResearchProgressTool{}.Execute(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.IsError {
		t.Errorf("expected an error result when no workflow engine is wired in")
	}
}

func TestGetActGuidanceTool_CanonicalizesHistoricalActAlias(t *testing.T) {
	call := newReportingCall(t)
	ctx := toolctx.With(context.Background(), call)

	result, err := GetActGuidanceTool{}.Execute(ctx, map[string]any{"act": "analysis", "experience": "beginner"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected act guidance to succeed, got error: %v", result.Content)
	}
	guidance, ok := result.Content[0].JSON.(*workflow.ActGuidance)
	if !ok {
		t.Fatalf("expected a *workflow.ActGuidance, got %T", result.Content[0].JSON)
	}
	if guidance.Act != framework.AnalysisSynthesis {
		t.Errorf("Act = %s, want %s", guidance.Act, framework.AnalysisSynthesis)
	}
}

func TestReportingTools_RequireContext(t *testing.T) {
	tools := []interface {
		ContextRequired() bool
	}{
		GetResearchProgressTool{},
		DetectAndCelebrateMilestonesTool{},
		GetContextualRecommendationsTool{},
		GetResearchJourneyTool{},
		GetActGuidanceTool{},
	}
	for _, tool := range tools {
		if !tool.ContextRequired() {
			t.Errorf("%T should require project context", tool)
		}
	}
}
