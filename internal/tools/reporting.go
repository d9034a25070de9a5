package tools

import (
	"context"
	"fmt"

	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/framework"
	"github.com/srrd-research/srrd-mcp/internal/registry"
	"github.com/srrd-research/srrd-mcp/internal/toolctx"
)

func engineAndStore(ctx context.Context) (*toolctx.Call, error) {
	call := toolctx.From(ctx)
	if call == nil || call.Store == nil || call.Workflow == nil {
		return nil, fmt.Errorf("workflow intelligence is not available for this call")
	}
	return call, nil
}

// GetResearchProgressTool is get_research_progress: per-act completion
// fractions computed from the project's recorded tool usage.
type GetResearchProgressTool struct{}

func (GetResearchProgressTool) Name() string         { return "get_research_progress" }
func (GetResearchProgressTool) ContextRequired() bool { return requireContext }
func (GetResearchProgressTool) Capabilities() []capability.Name { return capNone }

func (GetResearchProgressTool) Description() string {
	return "Report per-act completion fractions for the current project based on recorded tool usage."
}

func (GetResearchProgressTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"project_path": prop("string", "Explicit project path override."),
		},
	}
}

func (GetResearchProgressTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	call, err := engineAndStore(ctx)
	if err != nil {
		return registry.ErrorResult(err.Error()), nil
	}
	report, err := call.Workflow.Progress(call.Store)
	if err != nil {
		return nil, fmt.Errorf("computing progress: %w", err)
	}
	return registry.JSONResult(report), nil
}

// DetectAndCelebrateMilestonesTool is detect_and_celebrate_milestones:
// runs act-completion, usage-threshold, and momentum milestone detectors.
type DetectAndCelebrateMilestonesTool struct{}

func (DetectAndCelebrateMilestonesTool) Name() string         { return "detect_and_celebrate_milestones" }
func (DetectAndCelebrateMilestonesTool) ContextRequired() bool { return requireContext }
func (DetectAndCelebrateMilestonesTool) Capabilities() []capability.Name { return capNone }

func (DetectAndCelebrateMilestonesTool) Description() string {
	return "Detect progress milestones (act completion, usage thresholds, momentum) reached by the current project."
}

func (DetectAndCelebrateMilestonesTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"project_path": prop("string", "Explicit project path override."),
		},
	}
}

func (DetectAndCelebrateMilestonesTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	call, err := engineAndStore(ctx)
	if err != nil {
		return registry.ErrorResult(err.Error()), nil
	}
	milestones, err := call.Workflow.DetectMilestones(call.Store)
	if err != nil {
		return nil, fmt.Errorf("detecting milestones: %w", err)
	}
	return registry.JSONResult(map[string]any{"milestones": milestones}), nil
}

// GetContextualRecommendationsTool is get_contextual_recommendations:
// classifies the recent invocation pattern and proposes next tools.
type GetContextualRecommendationsTool struct{}

func (GetContextualRecommendationsTool) Name() string         { return "get_contextual_recommendations" }
func (GetContextualRecommendationsTool) ContextRequired() bool { return requireContext }
func (GetContextualRecommendationsTool) Capabilities() []capability.Name { return capNone }

func (GetContextualRecommendationsTool) Description() string {
	return "Classify the recent tool-use pattern for the current project and recommend prioritized next tools."
}

func (GetContextualRecommendationsTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"lookback":     prop("integer", "How many recent invocations to consider (default 5)."),
			"project_path": prop("string", "Explicit project path override."),
		},
	}
}

func (GetContextualRecommendationsTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	call, err := engineAndStore(ctx)
	if err != nil {
		return registry.ErrorResult(err.Error()), nil
	}
	k := intArg(args, "lookback", 5)
	recs, err := call.Workflow.ContextualRecommendations(call.Store, k)
	if err != nil {
		return nil, fmt.Errorf("computing recommendations: %w", err)
	}
	return registry.JSONResult(recs), nil
}

// GetResearchJourneyTool is get_research_journey: timeline, domain
// evolution, sophistication trend, and productivity pattern over a period.
type GetResearchJourneyTool struct{}

func (GetResearchJourneyTool) Name() string         { return "get_research_journey" }
func (GetResearchJourneyTool) ContextRequired() bool { return requireContext }
func (GetResearchJourneyTool) Capabilities() []capability.Name { return capNone }

func (GetResearchJourneyTool) Description() string {
	return "Report the current project's research journey: timeline, domain evolution, and productivity pattern."
}

func (GetResearchJourneyTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"period":       enumProp("string", "The reporting window.", "last_week", "last_month", "all_time"),
			"domains":      prop("string", "Comma-separated domains to restrict the domain evolution to, if set."),
			"predict":      prop("boolean", "Whether to predict the next likely research act."),
			"project_path": prop("string", "Explicit project path override."),
		},
	}
}

func (GetResearchJourneyTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	call, err := engineAndStore(ctx)
	if err != nil {
		return registry.ErrorResult(err.Error()), nil
	}
	period := str(args, "period", "all_time")
	domains := stringList(args, "domains")
	predict := boolArg(args, "predict", true)

	report, err := call.Workflow.Journey(call.Store, period, domains, predict)
	if err != nil {
		return nil, fmt.Errorf("computing journey: %w", err)
	}
	return registry.JSONResult(report), nil
}

// GetActGuidanceTool is get_act_guidance: purpose, key activities, success
// criteria, and smart-next-tools for a named research act.
type GetActGuidanceTool struct{}

func (GetActGuidanceTool) Name() string         { return "get_act_guidance" }
func (GetActGuidanceTool) ContextRequired() bool { return requireContext }
func (GetActGuidanceTool) Capabilities() []capability.Name { return capNone }

func (GetActGuidanceTool) Description() string {
	return "Report purpose, success criteria, and smart next tools for one research act, adapted to experience level."
}

func (GetActGuidanceTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"act": enumProp("string", "The research act to get guidance for.",
				"conceptualization", "design_planning", "knowledge_acquisition",
				"analysis_synthesis", "validation_refinement", "communication"),
			"experience":   enumProp("string", "The researcher's experience level.", "beginner", "intermediate", "expert"),
			"project_path": prop("string", "Explicit project path override."),
		},
		Required: []string{"act"},
	}
}

func (GetActGuidanceTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	call, err := engineAndStore(ctx)
	if err != nil {
		return registry.ErrorResult(err.Error()), nil
	}
	act := framework.CanonicalAct(str(args, "act", ""))
	experience := str(args, "experience", "intermediate")

	guidance, err := call.Workflow.ActGuidance(call.Store, act, experience)
	if err != nil {
		return nil, fmt.Errorf("computing act guidance: %w", err)
	}
	return registry.JSONResult(guidance), nil
}
