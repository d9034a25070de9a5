package workflow

import (
	"github.com/srrd-research/srrd-mcp/internal/framework"
	"github.com/srrd-research/srrd-mcp/internal/store"
)

// canonicalProgressions are small 2-tool sequences recognized as "logical
// progression" when they appear, in order, as the last two tool invocations.
var canonicalProgressions = [][2]string{
	{"clarify_research_goals", "suggest_methodology"},
	{"clarify_research_goals", "explore_research_domain"},
	{"suggest_methodology", "plan_research_timeline"},
	{"search_knowledge", "analyze_findings"},
	{"analyze_findings", "synthesize_themes"},
	{"synthesize_themes", "validate_novel_theory"},
	{"run_quality_checks", "generate_bibliography"},
}

// Recommendation is one suggested next tool with its rationale.
type Recommendation struct {
	Tool      string `json:"tool"`
	Rationale string `json:"rationale"`
}

// ContextualRecommendations is the structured response of
// get_contextual_recommendations.
type ContextualRecommendations struct {
	PatternType                string            `json:"pattern_type"`
	PrioritizedRecommendations []Recommendation  `json:"prioritized_recommendations"`
	AlternativePaths            []string          `json:"alternative_paths"`
}

// ContextualRecommendations inspects the last k (default 5) invocations
// for the project, classifies the sequence, and proposes next tools.
func (e *Engine) ContextualRecommendations(s *store.Store, k int) (*ContextualRecommendations, error) {
	if k <= 0 {
		k = 5
	}

	recent, err := s.RecentToolNames(k)
	if err != nil {
		return nil, err
	}

	if len(recent) == 0 {
		return &ContextualRecommendations{
			PatternType:                "no_activity",
			PrioritizedRecommendations: []Recommendation{{Tool: "clarify_research_goals", Rationale: "Nothing has run yet — start by clarifying the research goal."}},
		}, nil
	}

	pattern := classifyPattern(recent)

	lastTool := recent[0]
	act, ok := e.fw.ActOf(lastTool)
	if !ok {
		act = framework.Conceptualization
	}

	used := make(map[string]bool, len(recent))
	for _, t := range recent {
		used[t] = true
	}

	profile := actProfiles[act]
	var recs []Recommendation
	for _, tool := range profile.progression {
		if used[tool] {
			continue
		}
		recs = append(recs, Recommendation{Tool: tool, Rationale: profile.rationales[tool]})
	}
	if len(recs) == 0 {
		// This act is exhausted — point at the next act in the chain.
		if next, ok := nextAct(act); ok {
			nextProfile := actProfiles[next]
			if len(nextProfile.progression) > 0 {
				first := nextProfile.progression[0]
				recs = append(recs, Recommendation{Tool: first, Rationale: nextProfile.rationales[first]})
			}
		}
	}

	alternatives := alternativePaths(act)

	return &ContextualRecommendations{
		PatternType:                pattern,
		PrioritizedRecommendations: recs,
		AlternativePaths:           alternatives,
	}, nil
}

// classifyPattern implements the pattern_type classifier: a small set of
// canonical 2-tool progressions checked first, then a diversity ratio
// fallback (diversity > 0.8 -> exploratory; < 0.5 -> deepening_focus).
func classifyPattern(recent []string) string {
	if len(recent) == 1 {
		return "initial"
	}

	last, prev := recent[0], recent[1]
	for _, p := range canonicalProgressions {
		if p[0] == prev && p[1] == last {
			return "logical_progression"
		}
	}

	distinct := make(map[string]bool, len(recent))
	for _, t := range recent {
		distinct[t] = true
	}
	diversity := float64(len(distinct)) / float64(len(recent))

	switch {
	case diversity > 0.8:
		return "exploratory"
	case diversity < 0.5:
		return "deepening_focus"
	default:
		return "logical_progression"
	}
}

func nextAct(a framework.Act) (framework.Act, bool) {
	for i, act := range framework.Acts {
		if act == a && i+1 < len(framework.Acts) {
			return framework.Acts[i+1], true
		}
	}
	return "", false
}

func alternativePaths(a framework.Act) []string {
	paths := map[framework.Act][]string{
		framework.Conceptualization:    {"Go deeper on assumptions before moving to design", "Explore the domain more broadly first"},
		framework.DesignPlanning:       {"Compare a second methodology before settling", "Skip straight to a timeline if methodology is obvious"},
		framework.KnowledgeAcquisition: {"Index a batch of documents before searching", "Start a new session for a distinct sub-question"},
		framework.AnalysisSynthesis:    {"Revisit earlier findings before synthesizing", "Bring in new knowledge search results first"},
		framework.ValidationRefinement: {"Run quality checks before validating a novel theory", "Validate the novel theory before broader quality checks"},
		framework.Communication:        {"Generate the bibliography before the full document", "Review the journey report before writing"},
	}
	if p, ok := paths[a]; ok {
		return p
	}
	return nil
}
