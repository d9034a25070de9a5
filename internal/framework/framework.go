// Package framework implements the Research Framework: a static taxonomy
// mapping tool names to categories and categories to research acts.
package framework

import "fmt"

// Act is one of the six high-level phases of a research workflow.
type Act string

const (
	Conceptualization    Act = "conceptualization"
	DesignPlanning       Act = "design_planning"
	KnowledgeAcquisition Act = "knowledge_acquisition"
	AnalysisSynthesis    Act = "analysis_synthesis"
	ValidationRefinement Act = "validation_refinement"
	Communication        Act = "communication"
)

// Acts lists every act in canonical, chronological order — the "act chain"
// Workflow Intelligence's journey predictions walk.
var Acts = []Act{
	Conceptualization,
	DesignPlanning,
	KnowledgeAcquisition,
	AnalysisSynthesis,
	ValidationRefinement,
	Communication,
}

// historicalAliases maps legacy act names, seen only in previously stored
// tool_usage rows, to their canonical name. The framework never writes an
// alias — only canonical names are assigned to newly registered tools —
// but classification of old data accepts either.
var historicalAliases = map[string]Act{
	"implementation": KnowledgeAcquisition,
	"analysis":       AnalysisSynthesis,
	"synthesis":      ValidationRefinement,
	"publication":    Communication,
}

// CanonicalAct resolves a possibly-historical act name to its canonical
// form. Unknown names are returned unchanged (as Act), which is what
// callers reaching for category lookups expect if the name isn't an act.
func CanonicalAct(name string) Act {
	if canon, ok := historicalAliases[name]; ok {
		return canon
	}
	return Act(name)
}

// Category groups a set of tool names under one act.
type Category struct {
	Act   Act
	Name  string
	Tools []string
}

// Framework is the total tool-name → category → act mapping.
type Framework struct {
	categories []Category
	toolToCat  map[string]*Category
}

// New builds the canonical SRRD taxonomy. This mapping is authoritative —
// every tool registered in the Tool Registry must appear here exactly
// once, checked by Verify.
func New() *Framework {
	categories := []Category{
		{Act: Conceptualization, Name: "goal_setting", Tools: []string{
			"clarify_research_goals",
		}},
		{Act: Conceptualization, Name: "assumption_checking", Tools: []string{
			"assess_foundational_assumptions", "generate_critical_questions",
		}},
		{Act: DesignPlanning, Name: "methodology", Tools: []string{
			"suggest_methodology", "compare_paradigms",
		}},
		{Act: DesignPlanning, Name: "planning", Tools: []string{
			"plan_research_timeline",
		}},
		{Act: KnowledgeAcquisition, Name: "search", Tools: []string{
			"explore_research_domain", "search_knowledge", "index_document",
		}},
		{Act: KnowledgeAcquisition, Name: "sessions", Tools: []string{
			"start_research_session", "switch_project_context", "reset_project_context",
		}},
		{Act: AnalysisSynthesis, Name: "analysis", Tools: []string{
			"analyze_findings", "synthesize_themes",
		}},
		{Act: ValidationRefinement, Name: "validation", Tools: []string{
			"validate_novel_theory", "run_quality_checks",
		}},
		{Act: Communication, Name: "reporting", Tools: []string{
			"get_research_progress", "detect_and_celebrate_milestones",
			"get_contextual_recommendations", "get_research_journey", "get_act_guidance",
		}},
		{Act: Communication, Name: "documents", Tools: []string{
			"generate_bibliography", "generate_latex_document", "compile_latex",
		}},
	}

	f := &Framework{categories: categories, toolToCat: make(map[string]*Category)}
	for i := range categories {
		c := &categories[i]
		for _, tool := range c.Tools {
			f.toolToCat[tool] = c
		}
	}
	return f
}

// ActOf returns the act a tool belongs to, and whether it is known.
func (f *Framework) ActOf(toolName string) (Act, bool) {
	c, ok := f.toolToCat[toolName]
	if !ok {
		return "", false
	}
	return c.Act, true
}

// CategoryOf returns the category a tool belongs to, and whether it is known.
func (f *Framework) CategoryOf(toolName string) (*Category, bool) {
	c, ok := f.toolToCat[toolName]
	return c, ok
}

// ToolsForAct returns every tool name assigned to act a (T_a in the
// progress formula).
func (f *Framework) ToolsForAct(a Act) []string {
	var out []string
	for _, c := range f.categories {
		if c.Act == a {
			out = append(out, c.Tools...)
		}
	}
	return out
}

// CategoriesForAct returns every category under act a.
func (f *Framework) CategoriesForAct(a Act) []Category {
	var out []Category
	for _, c := range f.categories {
		if c.Act == a {
			out = append(out, c)
		}
	}
	return out
}

// Verify checks that every name in registeredTools appears in exactly one
// category. It is not fatal — mismatches are returned as warning strings
// for the caller to log, per the startup consistency check in the design.
func (f *Framework) Verify(registeredTools []string) (warnings []string) {
	seen := make(map[string]bool, len(registeredTools))
	for _, name := range registeredTools {
		seen[name] = true
		if _, ok := f.toolToCat[name]; !ok {
			warnings = append(warnings, fmt.Sprintf("tool %q is registered but has no act/category assignment", name))
		}
	}
	for name := range f.toolToCat {
		if !seen[name] {
			warnings = append(warnings, fmt.Sprintf("tool %q has an act/category assignment but is not registered", name))
		}
	}
	return warnings
}
