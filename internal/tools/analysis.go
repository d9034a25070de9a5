package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/registry"
)

// AnalyzeFindingsTool is analyze_findings: structures a free-text
// description of results into observation/interpretation/limitation
// sections, the generation-category counterpart to the earlier
// exploration tools.
type AnalyzeFindingsTool struct{}

func (AnalyzeFindingsTool) Name() string         { return "analyze_findings" }
func (AnalyzeFindingsTool) ContextRequired() bool { return noContext }
func (AnalyzeFindingsTool) Capabilities() []capability.Name { return capNone }

func (AnalyzeFindingsTool) Description() string {
	return "Structure a free-text description of research findings into observations, interpretation, and limitations."
}

func (AnalyzeFindingsTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"findings":     prop("string", "A free-text description of the findings to analyze."),
			"project_path": prop("string", "Explicit project path override."),
		},
		Required: []string{"findings"},
	}
}

func (AnalyzeFindingsTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	findings := str(args, "findings", "")
	sentences := splitSentences(findings)

	var out strings.Builder
	out.WriteString("# Findings analysis\n\n")
	out.WriteString("## Observations\n\n")
	for _, s := range sentences {
		out.WriteString(fmt.Sprintf("- %s\n", s))
	}
	out.WriteString("\n## Interpretation prompts\n\n")
	out.WriteString("- Which observation above is the strongest evidence for the original research goal?\n")
	out.WriteString("- Which observation is most surprising relative to prior expectations?\n")
	out.WriteString("\n## Limitations to state explicitly\n\n")
	out.WriteString("- Sample size, scope, or measurement constraints that bound how far these findings generalize\n")
	out.WriteString("- Any confound not controlled for in the collection method\n")
	return registry.TextResult(out.String()), nil
}

func splitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool { return r == '.' || r == '\n' })
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SynthesizeThemesTool is synthesize_themes: groups a set of free-text
// findings or notes into candidate themes by shared vocabulary, a cheap
// clustering step ahead of formal coding.
type SynthesizeThemesTool struct{}

func (SynthesizeThemesTool) Name() string         { return "synthesize_themes" }
func (SynthesizeThemesTool) ContextRequired() bool { return noContext }
func (SynthesizeThemesTool) Capabilities() []capability.Name { return capNone }

func (SynthesizeThemesTool) Description() string {
	return "Group a set of findings or notes into candidate themes by shared vocabulary."
}

func (SynthesizeThemesTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"notes":        prop("string", "Findings or notes, as a comma-separated string or a JSON array of strings."),
			"project_path": prop("string", "Explicit project path override."),
		},
		Required: []string{"notes"},
	}
}

func (SynthesizeThemesTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	notes := stringList(args, "notes")
	if len(notes) == 0 {
		notes = splitSentences(str(args, "notes", ""))
	}

	themes := clusterByKeyword(notes)

	var out strings.Builder
	out.WriteString("# Theme synthesis\n\n")
	if len(themes) == 0 {
		out.WriteString("No distinguishable themes found in the supplied notes.\n")
		return registry.TextResult(out.String()), nil
	}
	for keyword, members := range themes {
		out.WriteString(fmt.Sprintf("## Theme: %s\n\n", keyword))
		for _, m := range members {
			out.WriteString(fmt.Sprintf("- %s\n", m))
		}
		out.WriteString("\n")
	}
	return registry.TextResult(out.String()), nil
}

// clusterByKeyword groups notes under whichever of their significant words
// (length > 5, to skip stopwords cheaply) recurs across the most notes;
// ties go to the word that appears first in the note.
func clusterByKeyword(notes []string) map[string][]string {
	counts := map[string]int{}
	for _, n := range notes {
		seen := map[string]bool{}
		for _, w := range strings.Fields(strings.ToLower(n)) {
			w = strings.Trim(w, ".,;:!?\"'()")
			if len(w) > 5 && !seen[w] {
				counts[w]++
				seen[w] = true
			}
		}
	}

	themes := map[string][]string{}
	for _, n := range notes {
		best := ""
		bestCount := 1
		for _, w := range strings.Fields(strings.ToLower(n)) {
			w = strings.Trim(w, ".,;:!?\"'()")
			if c := counts[w]; c > bestCount {
				best = w
				bestCount = c
			}
		}
		if best != "" {
			themes[best] = append(themes[best], n)
		}
	}
	return themes
}
