package workflow

import (
	"path/filepath"
	"testing"

	"github.com/srrd-research/srrd-mcp/internal/framework"
	"github.com/srrd-research/srrd-mcp/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(framework.New()), s
}

func TestProgress_EmptyProject(t *testing.T) {
	e, s := newTestEngine(t)

	report, err := e.Progress(s)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	for _, a := range report.Acts {
		if a.Completion != 0 {
			t.Errorf("act %s completion = %v, want 0 for empty project", a.Act, a.Completion)
		}
	}
}

func TestProgress_Monotonicity(t *testing.T) {
	e, s := newTestEngine(t)

	tools := framework.New().ToolsForAct(framework.Conceptualization)
	var prev float64
	for _, tool := range tools {
		if err := s.RecordToolUsage(tool, "", ""); err != nil {
			t.Fatalf("RecordToolUsage: %v", err)
		}
		report, err := e.Progress(s)
		if err != nil {
			t.Fatalf("Progress: %v", err)
		}
		var got float64
		for _, a := range report.Acts {
			if a.Act == framework.Conceptualization {
				got = a.Completion
			}
		}
		if got < prev {
			t.Errorf("completion decreased: %v -> %v", prev, got)
		}
		prev = got
	}
	if prev != 100 {
		t.Errorf("final completion = %v, want 100 after using every conceptualization tool", prev)
	}
}

func TestProgress_ScenarioFour(t *testing.T) {
	e, s := newTestEngine(t)

	for _, tool := range []string{"clarify_research_goals", "assess_foundational_assumptions", "generate_critical_questions"} {
		if err := s.RecordToolUsage(tool, "", ""); err != nil {
			t.Fatalf("RecordToolUsage: %v", err)
		}
	}

	report, err := e.Progress(s)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	for _, a := range report.Acts {
		if a.Act == framework.Conceptualization {
			if a.Completion != 100 {
				t.Errorf("conceptualization completion = %v, want 100", a.Completion)
			}
		} else if a.Completion != 0 {
			t.Errorf("act %s completion = %v, want 0", a.Act, a.Completion)
		}
	}
}

func TestVelocity_SingleDayWindow(t *testing.T) {
	e, s := newTestEngine(t)
	if err := s.RecordToolUsage("clarify_research_goals", "", ""); err != nil {
		t.Fatalf("RecordToolUsage: %v", err)
	}

	v, err := e.Velocity(s, 1)
	if err != nil {
		t.Fatalf("Velocity: %v", err)
	}
	if len([]rune(v.Sparkline)) != 1 {
		t.Errorf("sparkline = %q, want a single bar", v.Sparkline)
	}
}

func TestDetectMilestones_ScenarioFive(t *testing.T) {
	e, s := newTestEngine(t)

	tools := []string{
		"clarify_research_goals", "explore_research_domain", "assess_foundational_assumptions",
		"generate_critical_questions", "suggest_methodology", "compare_paradigms",
		"plan_research_timeline", "search_knowledge", "index_document", "start_research_session",
	}
	for _, tool := range tools {
		if err := s.RecordToolUsage(tool, "", ""); err != nil {
			t.Fatalf("RecordToolUsage(%s): %v", tool, err)
		}
	}

	milestones, err := e.DetectMilestones(s)
	if err != nil {
		t.Fatalf("DetectMilestones: %v", err)
	}

	var haveThreshold, haveExplorer bool
	for _, m := range milestones {
		if m.Title == "10 Tools Used Milestone" {
			haveThreshold = true
		}
		if m.Title == "Research Tool Explorer" {
			haveExplorer = true
		}
		if m.Icon == "" || m.Title == "" || m.Description == "" || m.Significance == "" {
			t.Errorf("milestone %+v missing required fields", m)
		}
	}
	if !haveThreshold || !haveExplorer {
		t.Errorf("milestones = %+v, want both threshold and explorer milestones", milestones)
	}
}

func TestDetectMilestones_EmptyProject(t *testing.T) {
	e, s := newTestEngine(t)

	milestones, err := e.DetectMilestones(s)
	if err != nil {
		t.Fatalf("DetectMilestones: %v", err)
	}
	if len(milestones) != 1 || milestones[0].Title != "Just Getting Started" {
		t.Errorf("milestones = %+v, want only the Just Getting Started milestone", milestones)
	}
}

func TestContextualRecommendations_ScenarioSix(t *testing.T) {
	e, s := newTestEngine(t)

	for _, tool := range []string{"clarify_research_goals", "suggest_methodology"} {
		if err := s.RecordToolUsage(tool, "", ""); err != nil {
			t.Fatalf("RecordToolUsage: %v", err)
		}
	}

	recs, err := e.ContextualRecommendations(s, 5)
	if err != nil {
		t.Fatalf("ContextualRecommendations: %v", err)
	}
	if recs.PatternType != "logical_progression" {
		t.Errorf("pattern_type = %s, want logical_progression", recs.PatternType)
	}
	if len(recs.PrioritizedRecommendations) == 0 {
		t.Fatal("expected at least one recommendation")
	}
	for _, r := range recs.PrioritizedRecommendations {
		if r.Rationale == "" {
			t.Errorf("recommendation %+v missing rationale", r)
		}
	}
}

func TestContextualRecommendations_NoActivity(t *testing.T) {
	e, s := newTestEngine(t)

	recs, err := e.ContextualRecommendations(s, 5)
	if err != nil {
		t.Fatalf("ContextualRecommendations: %v", err)
	}
	if recs.PatternType != "no_activity" {
		t.Errorf("pattern_type = %s, want no_activity", recs.PatternType)
	}
}

func TestActGuidance_AdvanceRecommendedWhenActComplete(t *testing.T) {
	e, s := newTestEngine(t)
	for _, tool := range framework.New().ToolsForAct(framework.Conceptualization) {
		if err := s.RecordToolUsage(tool, "", ""); err != nil {
			t.Fatalf("RecordToolUsage: %v", err)
		}
	}

	g, err := e.ActGuidance(s, framework.Conceptualization, "intermediate")
	if err != nil {
		t.Fatalf("ActGuidance: %v", err)
	}
	if !g.AdvanceRecommended {
		t.Error("expected AdvanceRecommended once every tool in the act has been used")
	}
	if len(g.SmartNextTools) != 0 {
		t.Errorf("SmartNextTools = %+v, want none once act is complete", g.SmartNextTools)
	}
}

func TestJourney_DomainEvolutionFromStoredInteractions(t *testing.T) {
	e, s := newTestEngine(t)

	if err := s.RecordToolUsage("clarify_research_goals", "", ""); err != nil {
		t.Fatalf("RecordToolUsage: %v", err)
	}
	for _, domain := range []string{"physics", "physics", "computer_science", "biology"} {
		if err := s.RecordInteraction(store.Interaction{
			Type:    "enhanced_tool_usage",
			Content: "{}",
			Domain:  domain,
		}); err != nil {
			t.Fatalf("RecordInteraction(%s): %v", domain, err)
		}
	}

	report, err := e.Journey(s, "all_time", nil, false)
	if err != nil {
		t.Fatalf("Journey: %v", err)
	}
	want := []string{"physics", "computer_science", "biology"}
	if len(report.DomainEvolution) != len(want) {
		t.Fatalf("DomainEvolution = %v, want %v", report.DomainEvolution, want)
	}
	for i, d := range want {
		if report.DomainEvolution[i] != d {
			t.Errorf("DomainEvolution[%d] = %s, want %s", i, report.DomainEvolution[i], d)
		}
	}
}

func TestJourney_DomainEvolutionFocusFilter(t *testing.T) {
	e, s := newTestEngine(t)

	if err := s.RecordToolUsage("clarify_research_goals", "", ""); err != nil {
		t.Fatalf("RecordToolUsage: %v", err)
	}
	for _, domain := range []string{"physics", "computer_science", "biology"} {
		if err := s.RecordInteraction(store.Interaction{
			Type:    "enhanced_tool_usage",
			Content: "{}",
			Domain:  domain,
		}); err != nil {
			t.Fatalf("RecordInteraction(%s): %v", domain, err)
		}
	}

	report, err := e.Journey(s, "all_time", []string{"biology"}, false)
	if err != nil {
		t.Fatalf("Journey: %v", err)
	}
	if len(report.DomainEvolution) != 1 || report.DomainEvolution[0] != "biology" {
		t.Errorf("DomainEvolution = %v, want [biology]", report.DomainEvolution)
	}
}
