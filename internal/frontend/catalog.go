// Package frontend implements the Frontend Contract: a static catalog of
// tool metadata and a per-tool default-arguments map that browser UIs load
// independently of tools/list, so a UI can render tool pickers and argument
// forms before ever opening a connection to the server.
package frontend

// ToolMeta is one catalog entry: everything a UI needs to present a tool to
// a human without calling tools/list first.
type ToolMeta struct {
	Title    string   `json:"title"`
	Purpose  string   `json:"purpose"`
	Usage    string   `json:"usage"`
	Examples []string `json:"examples"`
	Tags     []string `json:"tags"`
}

// Catalog is the static tool-metadata table, keyed by tool name. It is kept
// by hand alongside internal/tools rather than generated, mirroring how
// methodologyCatalog and novelTheoryChecklist in that package are also
// small fixed tables rather than computed data.
var Catalog = map[string]ToolMeta{
	"clarify_research_goals": {
		Title:    "Clarify Research Goals",
		Purpose:  "Ask Socratic questions that sharpen a vague research goal into a testable one.",
		Usage:    "Call with a short description of the research area and any initial goals.",
		Examples: []string{`{"research_area":"neutrino oscillation","initial_goals":"measure the mixing angle"}`},
		Tags:     []string{"conceptualization", "socratic"},
	},
	"explore_research_domain": {
		Title:    "Explore Research Domain",
		Purpose:  "Survey a research domain's key questions, open problems, and terminology.",
		Usage:    "Call with a research_area and an optional depth of overview or detailed.",
		Examples: []string{`{"research_area":"topology","depth":"detailed"}`},
		Tags:     []string{"knowledge_acquisition"},
	},
	"assess_foundational_assumptions": {
		Title:    "Assess Foundational Assumptions",
		Purpose:  "List the unstated premises a research approach rests on.",
		Usage:    "Call with research_approach and optionally the assumptions already known.",
		Examples: []string{`{"research_approach":"randomized controlled trial"}`},
		Tags:     []string{"conceptualization", "critique"},
	},
	"generate_critical_questions": {
		Title:    "Generate Critical Questions",
		Purpose:  "Produce challenge-oriented questions about a specific claim or finding.",
		Usage:    "Call with claim and an optional rigor of standard or adversarial.",
		Examples: []string{`{"claim":"the catalyst doubles reaction yield","rigor":"adversarial"}`},
		Tags:     []string{"conceptualization", "critique"},
	},
	"suggest_methodology": {
		Title:    "Suggest Methodology",
		Purpose:  "Recommend candidate research methodologies for a stated goal and domain.",
		Usage:    "Call with research_goal and an optional domain.",
		Examples: []string{`{"research_goal":"characterize alloy fatigue","domain":"materials science"}`},
		Tags:     []string{"design_planning"},
	},
	"compare_paradigms": {
		Title:    "Compare Paradigms",
		Purpose:  "Compare a mainstream framing against an alternative and score equal treatment.",
		Usage:    "Call with mainstream and alternative descriptions; requires project context.",
		Examples: []string{`{"mainstream":"standard model cosmology","alternative":"modified gravity"}`},
		Tags:     []string{"design_planning", "novel_theory"},
	},
	"plan_research_timeline": {
		Title:    "Plan Research Timeline",
		Purpose:  "Lay out a research act sequence with rough duration guidance.",
		Usage:    "Call with research_goal and optionally weeks_available.",
		Examples: []string{`{"research_goal":"characterize alloy fatigue","weeks_available":20}`},
		Tags:     []string{"design_planning"},
	},
	"search_knowledge": {
		Title:    "Search Knowledge",
		Purpose:  "Search the project's embedded vector knowledge collection for relevant documents.",
		Usage:    "Call with query and optionally limit; requires the vector_db capability.",
		Examples: []string{`{"query":"palladium cross-coupling","limit":5}`},
		Tags:     []string{"knowledge_acquisition", "vector_db"},
	},
	"index_document": {
		Title:    "Index Document",
		Purpose:  "Add a document's content to the project's embedded vector knowledge collection.",
		Usage:    "Call with title and content; requires the vector_db capability.",
		Examples: []string{`{"title":"Catalysis Overview","content":"Palladium catalysts accelerate..."}`},
		Tags:     []string{"knowledge_acquisition", "vector_db"},
	},
	"start_research_session": {
		Title:    "Start Research Session",
		Purpose:  "Open a new research session grouping subsequent activity under one session id.",
		Usage:    "Call with an optional session_type and user; requires project context.",
		Examples: []string{`{"session_type":"research"}`},
		Tags:     []string{"knowledge_acquisition", "session"},
	},
	"switch_project_context": {
		Title:    "Switch Project Context",
		Purpose:  "Switch this connection's active project context to a different project path.",
		Usage:    "Call with project_path.",
		Examples: []string{`{"project_path":"/home/user/research/project-a"}`},
		Tags:     []string{"knowledge_acquisition", "session"},
	},
	"reset_project_context": {
		Title:    "Reset Project Context",
		Purpose:  "Clear this connection's project context override and active session.",
		Usage:    "Call with no arguments.",
		Examples: []string{`{}`},
		Tags:     []string{"knowledge_acquisition", "session"},
	},
	"analyze_findings": {
		Title:    "Analyze Findings",
		Purpose:  "Structure a free-text description of findings into observations and limitations.",
		Usage:    "Call with findings as free text.",
		Examples: []string{`{"findings":"Yield increased with temperature."}`},
		Tags:     []string{"analysis_synthesis"},
	},
	"synthesize_themes": {
		Title:    "Synthesize Themes",
		Purpose:  "Group findings or notes into candidate themes by shared vocabulary.",
		Usage:    "Call with notes as a comma-separated list, JSON array, or free text.",
		Examples: []string{`{"notes":"temperature increases yield, catalyst choice had no effect"}`},
		Tags:     []string{"analysis_synthesis"},
	},
	"validate_novel_theory": {
		Title:    "Validate Novel Theory",
		Purpose:  "Evaluate an alternative theory against a falsifiability and evidentiary-support checklist.",
		Usage:    "Call with description and optionally supporting_evidence and development_stage; requires project context.",
		Examples: []string{`{"description":"...","supporting_evidence":"...","development_stage":"developing"}`},
		Tags:     []string{"validation_refinement", "novel_theory"},
	},
	"run_quality_checks": {
		Title:    "Run Quality Checks",
		Purpose:  "Run fixed textual quality gates (citations, stated limitations, overclaiming) against writing.",
		Usage:    "Call with content; requires project context.",
		Examples: []string{`{"content":"Smith et al (2021) found a similar trend, however..."}`},
		Tags:     []string{"validation_refinement"},
	},
	"get_research_progress": {
		Title:    "Get Research Progress",
		Purpose:  "Report per-act completion fractions based on recorded tool usage.",
		Usage:    "Call with no required arguments; requires project context.",
		Examples: []string{`{}`},
		Tags:     []string{"communication", "reporting"},
	},
	"detect_and_celebrate_milestones": {
		Title:    "Detect And Celebrate Milestones",
		Purpose:  "Detect progress milestones reached by the current project.",
		Usage:    "Call with no required arguments; requires project context.",
		Examples: []string{`{}`},
		Tags:     []string{"communication", "reporting"},
	},
	"get_contextual_recommendations": {
		Title:    "Get Contextual Recommendations",
		Purpose:  "Classify the recent tool-use pattern and recommend prioritized next tools.",
		Usage:    "Call with an optional lookback count; requires project context.",
		Examples: []string{`{"lookback":5}`},
		Tags:     []string{"communication", "reporting"},
	},
	"get_research_journey": {
		Title:    "Get Research Journey",
		Purpose:  "Report the project's research journey: timeline, domain evolution, productivity pattern.",
		Usage:    "Call with an optional period, domains, and predict flag; requires project context.",
		Examples: []string{`{"period":"last_month","predict":true}`},
		Tags:     []string{"communication", "reporting"},
	},
	"get_act_guidance": {
		Title:    "Get Act Guidance",
		Purpose:  "Report purpose, success criteria, and smart next tools for one research act.",
		Usage:    "Call with act and an optional experience level; requires project context.",
		Examples: []string{`{"act":"analysis_synthesis","experience":"beginner"}`},
		Tags:     []string{"communication", "reporting"},
	},
	"generate_bibliography": {
		Title:    "Generate Bibliography",
		Purpose:  "Render a list of references into a LaTeX bibliography fragment.",
		Usage:    "Call with references, one per line: Author, Year, Title, Venue; requires the latex capability.",
		Examples: []string{`{"references":"Jane Doe, 2019, A Study of Things, Journal of Studies"}`},
		Tags:     []string{"communication", "latex"},
	},
	"generate_latex_document": {
		Title:    "Generate LaTeX Document",
		Purpose:  "Render a titled document with an abstract and sections into LaTeX source.",
		Usage:    "Call with title and optionally author, abstract, sections, bibliography; requires the latex capability.",
		Examples: []string{`{"title":"Quantum Foam Revisited","abstract":"We revisit...","sections":"Introduction: Background."}`},
		Tags:     []string{"communication", "latex"},
	},
	"compile_latex": {
		Title:    "Compile LaTeX",
		Purpose:  "Compile a generated LaTeX source file to PDF using the installed LaTeX engine.",
		Usage:    "Call with source_path and an optional engine; requires the latex capability.",
		Examples: []string{`{"source_path":"quantum-foam-revisited.tex","engine":"pdflatex"}`},
		Tags:     []string{"communication", "latex"},
	},
}

// Defaults is the per-tool default-arguments map UIs pre-fill a tool's form
// with before the user has typed anything.
var Defaults = map[string]map[string]any{
	"clarify_research_goals":          {"research_area": "", "initial_goals": ""},
	"explore_research_domain":         {"research_area": "", "depth": "overview"},
	"assess_foundational_assumptions": {"research_approach": "", "current_assumptions": ""},
	"generate_critical_questions":     {"claim": "", "rigor": "standard"},
	"suggest_methodology":             {"research_goal": "", "domain": ""},
	"compare_paradigms":               {"mainstream": "", "alternative": ""},
	"plan_research_timeline":          {"research_goal": "", "weeks_available": 12},
	"search_knowledge":                {"query": "", "limit": 5},
	"index_document":                  {"title": "", "content": ""},
	"start_research_session":         {"session_type": "research"},
	"switch_project_context":         {"project_path": ""},
	"reset_project_context":          map[string]any{},
	"analyze_findings":               {"findings": ""},
	"synthesize_themes":              {"notes": ""},
	"validate_novel_theory":          {"description": "", "supporting_evidence": "", "development_stage": "proposed"},
	"run_quality_checks":             {"content": ""},
	"get_research_progress":          map[string]any{},
	"detect_and_celebrate_milestones": map[string]any{},
	"get_contextual_recommendations":  {"lookback": 5},
	"get_research_journey":            {"period": "all_time", "predict": true},
	"get_act_guidance":                {"act": "conceptualization", "experience": "intermediate"},
	"generate_bibliography":           {"references": ""},
	"generate_latex_document":         {"title": "", "author": "", "abstract": "", "sections": ""},
	"compile_latex":                   {"source_path": "", "engine": "pdflatex"},
}

// Validate checks that both Catalog and Defaults are supersets of names,
// the server's currently registered tool names under its installed
// capabilities. It returns one message per missing name; UIs (and the
// server at startup) log these rather than failing hard, since a stale
// catalog should not stop the server from serving tools/list and
// tools/call correctly.
func Validate(names []string) []string {
	var problems []string
	for _, name := range names {
		if _, ok := Catalog[name]; !ok {
			problems = append(problems, "frontend catalog is missing metadata for tool "+name)
		}
		if _, ok := Defaults[name]; !ok {
			problems = append(problems, "frontend defaults are missing an entry for tool "+name)
		}
	}
	return problems
}
