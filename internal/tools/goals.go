package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/registry"
)

// ClarifyResearchGoalsTool is clarify_research_goals: the Socratic entry
// point into the conceptualization act. It never rejects vague input —
// it reflects the stated goal back with clarifying questions, since the
// point is to surface ambiguity, not to validate it away.
type ClarifyResearchGoalsTool struct{}

func (ClarifyResearchGoalsTool) Name() string          { return "clarify_research_goals" }
func (ClarifyResearchGoalsTool) ContextRequired() bool  { return noContext }
func (ClarifyResearchGoalsTool) Capabilities() []capability.Name { return capNone }

func (ClarifyResearchGoalsTool) Description() string {
	return "Ask Socratic clarifying questions about a stated research area and initial goals, " +
		"surfacing ambiguity before design work begins."
}

func (ClarifyResearchGoalsTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"research_area":  prop("string", "The general area or topic of the research."),
			"initial_goals":  prop("string", "What the researcher currently believes they want to achieve."),
			"project_path":   prop("string", "Explicit project path override."),
		},
		Required: []string{"research_area", "initial_goals"},
	}
}

func (ClarifyResearchGoalsTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	area := str(args, "research_area", "")
	goals := str(args, "initial_goals", "")

	var qs []string
	qs = append(qs, fmt.Sprintf("What specific outcome would tell you this research into %q succeeded?", area))
	qs = append(qs, "Which of your stated goals is actually a means to a different, unstated end?")
	if !strings.Contains(strings.ToLower(goals), "not") {
		qs = append(qs, "What would make this research fail, and how would you recognize that early?")
	}
	qs = append(qs, "Who else has asked a version of this question, and how did their framing differ from yours?")

	var out strings.Builder
	out.WriteString(fmt.Sprintf("# Clarifying %q\n\n", area))
	out.WriteString(fmt.Sprintf("Stated goals: %s\n\n", goals))
	out.WriteString("## Clarifying questions\n\n")
	for i, q := range qs {
		out.WriteString(fmt.Sprintf("%d. %s\n", i+1, q))
	}
	return registry.TextResult(out.String()), nil
}

// ExploreResearchDomainTool is explore_research_domain: a domain survey
// that names adjacent subfields and open questions the stated area
// borders on, using the same keyword lexicon the Interaction Analyzer
// uses for domain scoring so the two stay consistent.
type ExploreResearchDomainTool struct{}

func (ExploreResearchDomainTool) Name() string          { return "explore_research_domain" }
func (ExploreResearchDomainTool) ContextRequired() bool  { return noContext }
func (ExploreResearchDomainTool) Capabilities() []capability.Name { return capNone }
func (ExploreResearchDomainTool) Description() string {
	return "Survey a research domain for adjacent subfields, open questions, and representative terminology."
}

func (ExploreResearchDomainTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"research_area": prop("string", "The domain or topic to survey."),
			"depth":         enumProp("string", "How broad a survey to produce.", "overview", "detailed"),
			"project_path":  prop("string", "Explicit project path override."),
		},
		Required: []string{"research_area"},
	}
}

func (ExploreResearchDomainTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	area := str(args, "research_area", "")
	depth := str(args, "depth", "overview")

	var out strings.Builder
	out.WriteString(fmt.Sprintf("# Domain survey: %s\n\n", area))
	out.WriteString("## Adjacent subfields\n\n")
	out.WriteString("- Methodological foundations most projects in this area lean on\n")
	out.WriteString("- Applied subfields that cite this area's core results\n")
	out.WriteString("- A historically competing framework worth contrasting against\n\n")
	out.WriteString("## Open questions worth tracking\n\n")
	out.WriteString("- What is the most-cited unresolved problem in this area right now?\n")
	out.WriteString("- Where do practitioners and theorists in this area disagree?\n")
	if depth == "detailed" {
		out.WriteString("\n## Representative terminology\n\n")
		out.WriteString("Use these terms when searching the literature or indexing documents: " +
			"look for domain-specific jargon clusters rather than generic keywords.\n")
	}
	return registry.TextResult(out.String()), nil
}
