package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/registry"
)

// AssessFoundationalAssumptionsTool is assess_foundational_assumptions: it
// enumerates the unstated premises a described approach rests on, so they
// can be examined before design work commits to them.
type AssessFoundationalAssumptionsTool struct{}

func (AssessFoundationalAssumptionsTool) Name() string         { return "assess_foundational_assumptions" }
func (AssessFoundationalAssumptionsTool) ContextRequired() bool { return noContext }
func (AssessFoundationalAssumptionsTool) Capabilities() []capability.Name { return capNone }

func (AssessFoundationalAssumptionsTool) Description() string {
	return "List the foundational assumptions a described research approach rests on, and flag which are untested."
}

func (AssessFoundationalAssumptionsTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"research_approach": prop("string", "The methodology or theoretical approach under examination."),
			"current_assumptions": prop("string", "Assumptions the researcher already knows they're making."),
			"project_path":       prop("string", "Explicit project path override."),
		},
		Required: []string{"research_approach"},
	}
}

func (AssessFoundationalAssumptionsTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	approach := str(args, "research_approach", "")
	stated := str(args, "current_assumptions", "")

	var out strings.Builder
	out.WriteString(fmt.Sprintf("# Foundational assumptions in %q\n\n", approach))
	if stated != "" {
		out.WriteString(fmt.Sprintf("Stated assumptions: %s\n\n", stated))
	}
	out.WriteString("## Categories to examine\n\n")
	out.WriteString("- **Ontological** — what does this approach assume exists, or can be measured at all?\n")
	out.WriteString("- **Methodological** — what does it assume about cause, correlation, or the validity of the instrument?\n")
	out.WriteString("- **Scope** — what population, timeframe, or boundary condition is assumed to hold?\n")
	out.WriteString("- **Paradigm** — which disciplinary consensus does this approach take for granted rather than defend?\n\n")
	out.WriteString("Each of these is worth restating as a falsifiable claim: if it turned out false, what would change in the conclusions?\n")
	return registry.TextResult(out.String()), nil
}

// GenerateCriticalQuestionsTool is generate_critical_questions: produces a
// Socratic question set targeted at a specific claim or finding, the
// sharper counterpart to clarify_research_goals once a position exists to
// interrogate.
type GenerateCriticalQuestionsTool struct{}

func (GenerateCriticalQuestionsTool) Name() string         { return "generate_critical_questions" }
func (GenerateCriticalQuestionsTool) ContextRequired() bool { return noContext }
func (GenerateCriticalQuestionsTool) Capabilities() []capability.Name { return capNone }

func (GenerateCriticalQuestionsTool) Description() string {
	return "Generate critical, challenge-oriented questions about a specific claim, finding, or theoretical position."
}

func (GenerateCriticalQuestionsTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"claim":        prop("string", "The claim, finding, or position to interrogate."),
			"rigor":        enumProp("string", "How aggressively to challenge the claim.", "standard", "adversarial"),
			"project_path": prop("string", "Explicit project path override."),
		},
		Required: []string{"claim"},
	}
}

func (GenerateCriticalQuestionsTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	claim := str(args, "claim", "")
	rigor := str(args, "rigor", "standard")

	qs := []string{
		fmt.Sprintf("What evidence would falsify %q, and has anyone looked for it?", claim),
		"What alternative explanation accounts for the same observations?",
		"Is the sample, method, or argument generalizable beyond the case it was built on?",
	}
	if rigor == "adversarial" {
		qs = append(qs,
			"If a skeptical reviewer wanted to reject this claim outright, what would they attack first?",
			"What result would this claim predict that, if absent, should count strongly against it?",
		)
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("# Critical questions for: %s\n\n", claim))
	for i, q := range qs {
		out.WriteString(fmt.Sprintf("%d. %s\n", i+1, q))
	}
	return registry.TextResult(out.String()), nil
}
