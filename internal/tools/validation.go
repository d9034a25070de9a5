package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/registry"
	"github.com/srrd-research/srrd-mcp/internal/toolctx"
)

// novelTheoryChecklist mirrors the equal-treatment stance compare_paradigms
// takes: a novel theory is evaluated on falsifiability and evidentiary
// support, never dismissed for contradicting consensus.
var novelTheoryChecklist = []string{
	"falsifiability: does the theory make a prediction a future observation could contradict?",
	"evidentiary_support: is there at least one cited observation consistent with the theory?",
	"internal_consistency: does the theory avoid contradicting its own stated premises?",
	"scope_clarity: does the theory state what it does and does not claim to explain?",
}

// ValidateNovelTheoryTool is validate_novel_theory: scores a described
// alternative theory against a fixed checklist and persists the result,
// so a project's novel-theory track record accumulates over time.
type ValidateNovelTheoryTool struct{}

func (ValidateNovelTheoryTool) Name() string         { return "validate_novel_theory" }
func (ValidateNovelTheoryTool) ContextRequired() bool { return requireContext }
func (ValidateNovelTheoryTool) Capabilities() []capability.Name { return capNone }

func (ValidateNovelTheoryTool) Description() string {
	return "Evaluate a described alternative/novel theory against a falsifiability and evidentiary-support checklist."
}

func (ValidateNovelTheoryTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"description":       prop("string", "The novel theory being evaluated."),
			"supporting_evidence": prop("string", "Evidence or observations cited in support."),
			"development_stage": enumProp("string", "How mature the theory currently is.", "proposed", "developing", "tested"),
			"project_path":      prop("string", "Explicit project path override."),
		},
		Required: []string{"description"},
	}
}

func (ValidateNovelTheoryTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	description := str(args, "description", "")
	evidence := str(args, "supporting_evidence", "")
	stage := str(args, "development_stage", "proposed")

	lower := strings.ToLower(description + " " + evidence)
	results := make(map[string]bool, len(novelTheoryChecklist))
	results["falsifiability"] = strings.Contains(lower, "predict") || strings.Contains(lower, "if ") || strings.Contains(lower, "would show")
	results["evidentiary_support"] = evidence != ""
	results["internal_consistency"] = !strings.Contains(lower, "contradict")
	results["scope_clarity"] = strings.Contains(lower, "does not") || strings.Contains(lower, "limited to") || strings.Contains(lower, "applies to")

	passed := 0
	for _, ok := range results {
		if ok {
			passed++
		}
	}

	call := toolctx.From(ctx)
	warning := false
	if call != nil && call.Store != nil {
		blob, _ := json.Marshal(results)
		if err := call.Store.RecordNovelTheory(description, string(blob), stage); err != nil {
			warning = true
		}
	}

	var out strings.Builder
	out.WriteString("# Novel theory validation\n\n")
	out.WriteString(fmt.Sprintf("%d/%d checklist items satisfied (stage: %s).\n\n", passed, len(novelTheoryChecklist), stage))
	for _, item := range novelTheoryChecklist {
		key := strings.SplitN(item, ":", 2)[0]
		mark := "✗"
		if results[key] {
			mark = "✓"
		}
		out.WriteString(fmt.Sprintf("- [%s] %s\n", mark, item))
	}
	res := registry.TextResult(out.String())
	res.PersistenceWarning = warning
	return res, nil
}

// qualityChecks is a fixed set of cheap textual quality gates run against
// a piece of research writing before it moves toward publication.
var qualityChecks = []struct {
	kind  string
	check func(lower string) bool
	why   string
}{
	{"cites_evidence", func(l string) bool { return strings.Contains(l, "et al") || strings.Contains(l, "(20") || strings.Contains(l, "[1]") },
		"no recognizable citation marker found"},
	{"states_limitations", func(l string) bool { return strings.Contains(l, "limitation") || strings.Contains(l, "however") },
		"no limitations or caveats section detected"},
	{"avoids_overclaiming", func(l string) bool { return !strings.Contains(l, "proves") && !strings.Contains(l, "definitively") },
		"language overclaims certainty (\"proves\"/\"definitively\")"},
}

// RunQualityChecksTool is run_quality_checks: runs a fixed set of textual
// quality gates against a document or section and persists each outcome.
type RunQualityChecksTool struct{}

func (RunQualityChecksTool) Name() string         { return "run_quality_checks" }
func (RunQualityChecksTool) ContextRequired() bool { return requireContext }
func (RunQualityChecksTool) Capabilities() []capability.Name { return capNone }

func (RunQualityChecksTool) Description() string {
	return "Run a fixed set of quality gates (citation presence, stated limitations, overclaiming) against a document."
}

func (RunQualityChecksTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"content":      prop("string", "The document or section text to check."),
			"project_path": prop("string", "Explicit project path override."),
		},
		Required: []string{"content"},
	}
}

func (RunQualityChecksTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	content := str(args, "content", "")
	lower := strings.ToLower(content)

	call := toolctx.From(ctx)
	var out strings.Builder
	out.WriteString("# Quality checks\n\n")

	allPassed := true
	for _, qc := range qualityChecks {
		passed := qc.check(lower)
		if !passed {
			allPassed = false
		}
		mark := "PASS"
		if !passed {
			mark = "FAIL"
		}
		details := ""
		if !passed {
			details = qc.why
		}
		out.WriteString(fmt.Sprintf("- [%s] %s", mark, qc.kind))
		if details != "" {
			out.WriteString(fmt.Sprintf(" — %s", details))
		}
		out.WriteString("\n")

		if call != nil && call.Store != nil {
			_ = call.Store.RecordQualityCheck(qc.kind, passed, details)
		}
	}

	if allPassed {
		out.WriteString("\nAll checks passed.\n")
	}
	return registry.TextResult(out.String()), nil
}
