package tools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/srrd-research/srrd-mcp/internal/store"
	"github.com/srrd-research/srrd-mcp/internal/toolctx"
)

func TestSuggestMethodologyTool_RoutesByGoalKeywords(t *testing.T) {
	tool := SuggestMethodologyTool{}

	result, err := tool.Execute(context.Background(), map[string]any{
		"research_goal": "simulate fluid turbulence at high Reynolds numbers",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(result.Content[0].Text, "computational") {
		t.Errorf("expected a simulation goal to suggest computational methodology, got %s", result.Content[0].Text)
	}

	result, err = tool.Execute(context.Background(), map[string]any{
		"research_goal": "understand participants' lived experience of chronic pain through interviews",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(result.Content[0].Text, "qualitative") {
		t.Errorf("expected an interview-based goal to suggest qualitative methodology, got %s", result.Content[0].Text)
	}
}

func TestEqualTreatmentScore(t *testing.T) {
	even := equalTreatmentScore("a well-supported theory with broad consensus", "an alternative theory with its own evidence base")
	if even < 8 {
		t.Errorf("expected comparably described framings to score highly, got %d", even)
	}

	dismissive := equalTreatmentScore("the mainstream consensus view", "obviously wrong pseudoscience that nobody takes seriously")
	if dismissive >= even {
		t.Errorf("expected dismissive language to lower the score below %d, got %d", even, dismissive)
	}

	empty := equalTreatmentScore("", "something")
	if empty != 0 {
		t.Errorf("expected an empty framing to score 0, got %d", empty)
	}
}

func TestCompareParadigmsTool_PersistsComparison(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	call := &toolctx.Call{ProjectPath: t.TempDir(), Store: s}
	ctx := toolctx.With(context.Background(), call)

	tool := CompareParadigmsTool{}
	result, err := tool.Execute(ctx, map[string]any{
		"mainstream":  "standard model cosmology",
		"alternative": "modified gravity without dark matter",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected comparison to succeed and persist, got error result: %v", result.Content)
	}
	if !strings.Contains(result.Content[0].Text, "Equal-treatment score") {
		t.Errorf("expected output to report an equal-treatment score, got %s", result.Content[0].Text)
	}
}

func TestCompareParadigmsTool_RequiresContext(t *testing.T) {
	if !(CompareParadigmsTool{}).ContextRequired() {
		t.Errorf("compare_paradigms should require project context to persist its comparison")
	}
}

func TestPlanResearchTimelineTool_DistributesWeeksAcrossActs(t *testing.T) {
	tool := PlanResearchTimelineTool{}
	result, err := tool.Execute(context.Background(), map[string]any{
		"research_goal":   "characterize novel alloy fatigue behavior",
		"weeks_available": 20,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	text := result.Content[0].Text
	for _, act := range actOrder {
		if !strings.Contains(text, act) {
			t.Errorf("expected timeline to mention act %q, got %s", act, text)
		}
	}
}
