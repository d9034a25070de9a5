package workflow

import (
	"github.com/srrd-research/srrd-mcp/internal/framework"
	"github.com/srrd-research/srrd-mcp/internal/store"
)

// actProfile is the static, hand-authored guidance content for one act.
type actProfile struct {
	purpose           string
	successCriteria   []string
	commonChallenges  []string
	adaptations       map[string]string // experience level -> adaptation text
	progression       []string          // fixed act-specific tool ordering
	rationales        map[string]string // tool -> one-line rationale
}

var actProfiles = map[framework.Act]actProfile{
	framework.Conceptualization: {
		purpose: "Form a clear, falsifiable research question and surface the assumptions underneath it before any design work begins.",
		successCriteria: []string{
			"Research goals are stated in one or two unambiguous sentences",
			"Foundational assumptions are named and challenged",
		},
		commonChallenges: []string{"goals stay vague", "assumptions go unexamined until late"},
		adaptations: map[string]string{
			"beginner":     "Work through each clarifying question one at a time; don't skip ahead.",
			"intermediate": "Focus on the assumptions you're least confident about.",
			"expert":       "Move quickly; use the critical-questions tool to pressure-test edge cases only.",
		},
		progression: []string{"clarify_research_goals", "assess_foundational_assumptions", "generate_critical_questions"},
		rationales: map[string]string{
			"clarify_research_goals":          "Start here — everything downstream depends on a stated goal.",
			"assess_foundational_assumptions": "Name what you're taking for granted.",
			"generate_critical_questions":     "Stress-test the goal and assumptions together.",
		},
	},
	framework.DesignPlanning: {
		purpose: "Choose a methodology that fits the research question and lay out a realistic timeline.",
		successCriteria: []string{"a named methodology with a stated rationale", "a timeline with concrete milestones"},
		commonChallenges: []string{"methodology chosen by habit rather than fit", "timelines with no buffer"},
		adaptations: map[string]string{
			"beginner":     "Compare two methodologies side by side before picking one.",
			"intermediate": "Validate the methodology against your novel-theory flag, if set.",
			"expert":       "Go straight to timeline planning if the methodology is already settled.",
		},
		progression: []string{"suggest_methodology", "compare_paradigms", "plan_research_timeline"},
		rationales: map[string]string{
			"suggest_methodology":   "Get a methodology recommendation grounded in your stated goals.",
			"compare_paradigms":     "Check the recommendation against an alternative framing.",
			"plan_research_timeline": "Turn the chosen methodology into milestones.",
		},
	},
	framework.KnowledgeAcquisition: {
		purpose: "Gather and index the literature and data the research question depends on.",
		successCriteria: []string{"relevant sources are searchable", "a session is tracking this phase of work"},
		commonChallenges: []string{"knowledge scattered across untracked sessions", "duplicate indexing"},
		adaptations: map[string]string{
			"beginner":     "Start a session before searching so your work is grouped together.",
			"intermediate": "Index primary sources as you find them, not in a batch at the end.",
			"expert":       "Switch project context explicitly when working across multiple projects.",
		},
		progression: []string{"start_research_session", "explore_research_domain", "search_knowledge", "index_document", "switch_project_context"},
		rationales: map[string]string{
			"start_research_session":  "Open a session so subsequent searches are grouped together.",
			"explore_research_domain": "Survey adjacent work before searching or indexing anything specific.",
			"search_knowledge":        "Search what's already indexed before adding more.",
			"index_document":          "Add new sources to the project's knowledge base.",
			"switch_project_context":  "Only needed when moving between projects.",
			"reset_project_context":   "Return to the ambient project context.",
		},
	},
	framework.AnalysisSynthesis: {
		purpose: "Turn gathered material into findings and identify the themes connecting them.",
		successCriteria: []string{"findings are stated with supporting evidence", "themes connect at least two findings"},
		commonChallenges: []string{"findings left as raw notes", "themes forced before enough findings exist"},
		adaptations: map[string]string{
			"beginner":     "Write down each finding as a single sentence before looking for themes.",
			"intermediate": "Look for contradictions between findings, not just agreement.",
			"expert":       "Synthesize themes across multiple sessions, not just the current one.",
		},
		progression: []string{"analyze_findings", "synthesize_themes"},
		rationales: map[string]string{
			"analyze_findings":  "Record what you found before trying to connect it to anything else.",
			"synthesize_themes": "Connect findings into higher-level themes.",
		},
	},
	framework.ValidationRefinement: {
		purpose: "Check findings and any novel theory against quality and rigor standards before publication.",
		successCriteria: []string{"quality checks pass", "a novel theory (if any) has validation results on record"},
		commonChallenges: []string{"skipping validation under time pressure", "validating too late to act on the results"},
		adaptations: map[string]string{
			"beginner":     "Run quality checks as soon as you have a first draft of findings.",
			"intermediate": "Treat a failed quality check as a todo list, not a blocker.",
			"expert":       "Validate novel theories against the mainstream paradigm explicitly, not just internally.",
		},
		progression: []string{"validate_novel_theory", "run_quality_checks"},
		rationales: map[string]string{
			"validate_novel_theory": "Only relevant when the project's novel_theory flag is set.",
			"run_quality_checks":    "Run this on every project before moving to communication.",
		},
	},
	framework.Communication: {
		purpose: "Turn validated findings into a document, track progress, and recognize milestones along the way.",
		successCriteria: []string{"a bibliography or document artifact exists", "progress and milestones have been reviewed"},
		commonChallenges: []string{"publishing before validation finishes", "losing sight of overall progress"},
		adaptations: map[string]string{
			"beginner":     "Check get_research_progress before starting a document — know what's left.",
			"intermediate": "Generate the bibliography before the full document so citations are ready.",
			"expert":       "Use get_research_journey to confirm the narrative arc before writing.",
		},
		progression: []string{"get_research_progress", "generate_bibliography", "generate_latex_document", "compile_latex"},
		rationales: map[string]string{
			"get_research_progress":           "Confirm what's complete before writing it up.",
			"detect_and_celebrate_milestones": "A quick motivational checkpoint.",
			"get_contextual_recommendations":  "See what the system suggests doing next.",
			"get_research_journey":            "Review the whole arc before committing it to a document.",
			"get_act_guidance":                "Ask for guidance on any act that still feels unclear.",
			"generate_bibliography":           "Produce citations before assembling the full document.",
			"generate_latex_document":         "Render the document body once citations are ready.",
			"compile_latex":                   "Compile the rendered document to PDF.",
		},
	},
}

// SmartNextTool is one recommended next tool within an act, with its
// one-line rationale.
type SmartNextTool struct {
	Tool      string `json:"tool"`
	Rationale string `json:"rationale"`
}

// ActGuidance is the structured response to "what should I do in act X".
type ActGuidance struct {
	Act                  framework.Act   `json:"act"`
	Purpose              string          `json:"purpose"`
	KeyActivities        []string        `json:"key_activities"`
	SuccessCriteria      []string        `json:"success_criteria"`
	CommonChallenges      []string        `json:"common_challenges"`
	ExperienceAdaptation string          `json:"experience_adaptation"`
	SmartNextTools       []SmartNextTool `json:"smart_next_tools"`
	AdvanceRecommended   bool            `json:"advance_recommended"`
}

// ActGuidance computes guidance for one act at the given experience level
// (beginner|intermediate|expert, defaulting to intermediate).
func (e *Engine) ActGuidance(s *store.Store, act framework.Act, experience string) (*ActGuidance, error) {
	profile, ok := actProfiles[act]
	if !ok {
		profile = actProfile{purpose: "No guidance profile is registered for this act yet."}
	}

	used, err := s.DistinctToolNames()
	if err != nil {
		return nil, err
	}
	usedSet := make(map[string]bool, len(used))
	for _, name := range used {
		usedSet[name] = true
	}

	allTools := e.fw.ToolsForAct(act)
	allSet := make(map[string]bool, len(allTools))
	for _, t := range allTools {
		allSet[t] = true
	}

	adaptation := profile.adaptations[normalizeExperience(experience)]

	var remaining []string
	for _, tool := range profile.progression {
		if allSet[tool] && !usedSet[tool] {
			remaining = append(remaining, tool)
		}
	}

	advance := len(allTools) > 0 && len(remaining) == 0
	for _, tool := range allTools {
		if !usedSet[tool] {
			advance = false
		}
	}

	var smart []SmartNextTool
	for _, tool := range remaining {
		if len(smart) >= 3 {
			break
		}
		smart = append(smart, SmartNextTool{Tool: tool, Rationale: profile.rationales[tool]})
	}

	return &ActGuidance{
		Act:                  act,
		Purpose:              profile.purpose,
		KeyActivities:        profile.progression,
		SuccessCriteria:      profile.successCriteria,
		CommonChallenges:     profile.commonChallenges,
		ExperienceAdaptation: adaptation,
		SmartNextTools:       smart,
		AdvanceRecommended:   advance,
	}, nil
}

func normalizeExperience(level string) string {
	switch level {
	case "beginner", "expert":
		return level
	default:
		return "intermediate"
	}
}
