package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/registry"
	"github.com/srrd-research/srrd-mcp/internal/toolctx"
)

var methodologyCatalog = map[string]string{
	"empirical":      "Collect and statistically analyze observational or experimental data against a falsifiable hypothesis.",
	"theoretical":    "Derive consequences from a formal model and check internal consistency before seeking empirical support.",
	"qualitative":    "Interview, observe, or code textual/behavioral data for emergent themes rather than numeric effect sizes.",
	"mixed_methods":  "Pair a qualitative phase (theme discovery) with a quantitative phase (effect confirmation).",
	"computational":  "Simulate the system under study and validate the simulation against known analytic or empirical limits.",
	"meta_analytic":  "Aggregate effect sizes across prior published studies using a documented inclusion/exclusion protocol.",
}

// SuggestMethodologyTool is suggest_methodology: recommends one or more
// research methodologies for a stated goal and domain, drawing on a small
// fixed catalog rather than a general-purpose planner.
type SuggestMethodologyTool struct{}

func (SuggestMethodologyTool) Name() string         { return "suggest_methodology" }
func (SuggestMethodologyTool) ContextRequired() bool { return noContext }
func (SuggestMethodologyTool) Capabilities() []capability.Name { return capNone }

func (SuggestMethodologyTool) Description() string {
	return "Suggest candidate research methodologies for a stated research goal and domain."
}

func (SuggestMethodologyTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"research_goal": prop("string", "What the research is trying to establish."),
			"domain":        prop("string", "The subject domain (e.g. physics, psychology)."),
			"project_path":  prop("string", "Explicit project path override."),
		},
		Required: []string{"research_goal"},
	}
}

func (SuggestMethodologyTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	goal := str(args, "research_goal", "")
	domain := str(args, "domain", "")

	lower := strings.ToLower(goal)
	var candidates []string
	switch {
	case strings.Contains(lower, "simulat") || strings.Contains(lower, "model"):
		candidates = []string{"computational", "theoretical"}
	case strings.Contains(lower, "interview") || strings.Contains(lower, "experience") || strings.Contains(lower, "perception"):
		candidates = []string{"qualitative", "mixed_methods"}
	case strings.Contains(lower, "prior studies") || strings.Contains(lower, "literature") || strings.Contains(lower, "review"):
		candidates = []string{"meta_analytic"}
	default:
		candidates = []string{"empirical", "mixed_methods"}
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("# Methodology suggestions for: %s\n\n", goal))
	if domain != "" {
		out.WriteString(fmt.Sprintf("Domain: %s\n\n", domain))
	}
	for _, c := range candidates {
		out.WriteString(fmt.Sprintf("- **%s** — %s\n", c, methodologyCatalog[c]))
	}
	return registry.TextResult(out.String()), nil
}

// CompareParadigmsTool is compare_paradigms: records a side-by-side
// comparison between a mainstream framing and an alternative one,
// scoring how even-handedly the two are being treated. Persists to the
// paradigm_comparisons table so novel-theory projects can review their
// comparison history.
type CompareParadigmsTool struct{}

func (CompareParadigmsTool) Name() string         { return "compare_paradigms" }
func (CompareParadigmsTool) ContextRequired() bool { return requireContext }
func (CompareParadigmsTool) Capabilities() []capability.Name { return capNone }

func (CompareParadigmsTool) Description() string {
	return "Compare a mainstream paradigm against an alternative framing and record an equal-treatment score."
}

func (CompareParadigmsTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"mainstream":   prop("string", "The mainstream/consensus framing."),
			"alternative":  prop("string", "The alternative framing being considered."),
			"project_path": prop("string", "Explicit project path override."),
		},
		Required: []string{"mainstream", "alternative"},
	}
}

func (CompareParadigmsTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	mainstream := str(args, "mainstream", "")
	alternative := str(args, "alternative", "")

	score := equalTreatmentScore(mainstream, alternative)

	call := toolctx.From(ctx)
	if call != nil && call.Store != nil {
		if err := call.Store.RecordParadigmComparison(mainstream, alternative, score); err != nil {
			return registry.ErrorResult(fmt.Sprintf("comparison computed but not recorded: %v", err)), nil
		}
	}

	var out strings.Builder
	out.WriteString("# Paradigm comparison\n\n")
	out.WriteString(fmt.Sprintf("**Mainstream:** %s\n\n", mainstream))
	out.WriteString(fmt.Sprintf("**Alternative:** %s\n\n", alternative))
	out.WriteString(fmt.Sprintf("Equal-treatment score: %d/10 — the nearer to 10, the more symmetrically both framings were described.\n", score))
	return registry.TextResult(out.String()), nil
}

// equalTreatmentScore is a deliberately simple heuristic: framings
// described with comparable length and without one-sided dismissive
// language score higher. It is not a judgment of which paradigm is
// correct.
func equalTreatmentScore(mainstream, alternative string) int {
	score := 10
	lower := strings.ToLower(mainstream + " " + alternative)
	dismissive := []string{"obviously wrong", "pseudoscience", "debunked", "nonsense"}
	for _, d := range dismissive {
		if strings.Contains(lower, d) {
			score -= 3
		}
	}
	lenA, lenB := len(mainstream), len(alternative)
	if lenA == 0 || lenB == 0 {
		return 0
	}
	ratio := float64(lenA) / float64(lenB)
	if ratio > 3 || ratio < 1.0/3 {
		score -= 2
	}
	if score < 0 {
		score = 0
	}
	return score
}

// PlanResearchTimelineTool is plan_research_timeline: breaks a research
// goal into the act sequence from the Research Framework with rough
// duration guidance per act.
type PlanResearchTimelineTool struct{}

func (PlanResearchTimelineTool) Name() string         { return "plan_research_timeline" }
func (PlanResearchTimelineTool) ContextRequired() bool { return noContext }
func (PlanResearchTimelineTool) Capabilities() []capability.Name { return capNone }

func (PlanResearchTimelineTool) Description() string {
	return "Lay out a research act sequence with rough duration guidance for a stated goal."
}

func (PlanResearchTimelineTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"research_goal":   prop("string", "The overall research goal being planned."),
			"weeks_available": prop("integer", "Total weeks available for the project."),
			"project_path":    prop("string", "Explicit project path override."),
		},
		Required: []string{"research_goal"},
	}
}

var actWeight = map[string]float64{
	"conceptualization":    0.10,
	"design_planning":      0.15,
	"knowledge_acquisition": 0.20,
	"analysis_synthesis":   0.30,
	"validation_refinement": 0.15,
	"communication":        0.10,
}

var actOrder = []string{
	"conceptualization", "design_planning", "knowledge_acquisition",
	"analysis_synthesis", "validation_refinement", "communication",
}

func (PlanResearchTimelineTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	goal := str(args, "research_goal", "")
	weeks := intArg(args, "weeks_available", 12)

	var out strings.Builder
	out.WriteString(fmt.Sprintf("# Timeline for: %s\n\n", goal))
	out.WriteString(fmt.Sprintf("Total: %d weeks\n\n", weeks))
	for _, act := range actOrder {
		w := actWeight[act] * float64(weeks)
		out.WriteString(fmt.Sprintf("- **%s** — ~%.1f weeks\n", act, w))
	}
	return registry.TextResult(out.String()), nil
}
