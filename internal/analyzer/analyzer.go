// Package analyzer implements the Interaction Analyzer: cheap,
// explainable keyword/regex heuristics that extract semantic features
// from the free-text fields of a tool call. It never blocks a tool's
// primary result — callers treat its output as best-effort.
package analyzer

import (
	"regexp"
	"strings"
)

// FreeTextFields lists the parameter names the analyzer inspects. A tool
// call is analyzed when its params contain at least one of these with a
// non-empty string value.
var FreeTextFields = []string{
	"research_area", "initial_goals", "research_goals", "research_context",
	"theory_description", "query", "content", "hypothesis", "methodology",
	"current_understanding", "user_response", "search_query",
}

// domainLexicons is the fixed per-domain keyword set used for primary
// domain scoring.
var domainLexicons = map[string][]string{
	"physics": {"quantum", "particle", "energy", "force", "relativity", "thermodynamics", "field", "mechanics"},
	"computer_science": {"algorithm", "computation", "software", "network", "data structure", "complexity", "programming", "machine learning"},
	"biology":          {"cell", "organism", "gene", "evolution", "protein", "ecosystem", "species", "dna"},
	"psychology":       {"cognition", "behavior", "perception", "memory", "emotion", "personality", "motivation"},
	"chemistry":        {"molecule", "reaction", "compound", "bond", "catalyst", "synthesis", "element"},
	"mathematics":      {"theorem", "proof", "equation", "function", "matrix", "topology", "integral"},
}

// domainOrder fixes the tie-break order for primary domain scoring: first
// match in this order wins a tie.
var domainOrder = []string{"physics", "computer_science", "biology", "psychology", "chemistry", "mathematics"}

var sophisticationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\w+tion\b`),
	regexp.MustCompile(`\w+ical\b`),
	regexp.MustCompile(`\w+ology\b`),
	regexp.MustCompile(`\w+metric\b`),
	regexp.MustCompile(`\bmulti\w+`),
	regexp.MustCompile(`\bquasi\w+`),
}

var specificityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+(\.\d+)?\b`),           // numeric values
	regexp.MustCompile(`\b[A-Z][a-z]+ et al\.?\b`),  // citations
	regexp.MustCompile(`\bfigure \d+\b`),
	regexp.MustCompile(`\bequation \d+\b`),
	regexp.MustCompile(`\b(specifically|precisely|exactly)\b`),
}

var intentKeywords = map[string]map[string]float64{
	"exploration":      {"explore": 1, "investigate": 1, "what if": 1.5, "curious": 1, "wonder": 1},
	"validation":       {"verify": 1, "confirm": 1, "validate": 1.5, "test": 1, "check": 0.5},
	"application":      {"apply": 1, "use": 0.5, "implement": 1.5, "build": 1, "deploy": 1},
	"general_inquiry":  {"what is": 1, "how does": 1, "explain": 1},
}

var intentToolBonus = map[string]string{
	"validate_novel_theory": "validation",
	"run_quality_checks":    "validation",
	"explore_research_domain": "exploration",
	"search_knowledge":      "exploration",
}

var novelTheoryPhrases = []string{
	"novel theory", "alternative framework", "paradigm shift", "unconventional hypothesis",
	"challenges the mainstream", "new model of",
}

var expertMarkers = []string{"asymptotic", "eigenvalue", "meta-analysis", "differential", "stochastic"}
var intermediateMarkers = []string{"hypothesis", "methodology", "correlation", "variable"}
var beginnerMarkers = []string{"what is", "how do i", "simple explanation", "basics of"}

var uncertaintyMarkers = []string{"maybe", "not sure", "i think", "possibly", "might be", "unclear", "uncertain"}

// categoryByTool partitions tool names into four interaction categories
// used for progression analysis, independent of the Research Framework's
// act taxonomy.
var categoryByTool = map[string]string{
	"clarify_research_goals":          "planning",
	"plan_research_timeline":          "planning",
	"suggest_methodology":             "planning",
	"explore_research_domain":         "discovery",
	"search_knowledge":                "discovery",
	"index_document":                  "discovery",
	"assess_foundational_assumptions": "validation",
	"validate_novel_theory":           "validation",
	"run_quality_checks":              "validation",
	"generate_critical_questions":     "validation",
	"generate_bibliography":           "generation",
	"generate_latex_document":         "generation",
	"synthesize_themes":               "generation",
	"analyze_findings":                "generation",
}

// Analysis is the semantic feature bundle extracted from one free-text field.
type Analysis struct {
	WordCount              int      `json:"word_count"`
	CharCount              int      `json:"char_count"`
	PrimaryDomain          string   `json:"primary_domain"`
	TechnicalSophistication float64 `json:"technical_sophistication"`
	ResearchIntent         string   `json:"research_intent"`
	NovelTheoryIndicators  *string  `json:"novel_theory_indicators,omitempty"`
	KnowledgeLevel         string   `json:"knowledge_level"`
	UncertaintyMarkers     int      `json:"uncertainty_markers"`
	Specificity            float64  `json:"specificity"`
}

// ProgressionTransition is one step in the progression analysis.
type ProgressionTransition struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Progression summarizes the last five tool names across the four-category
// partition.
type Progression struct {
	Categories  []string                 `json:"categories"`
	Transitions []ProgressionTransition  `json:"transitions"`
}

// Analyze extracts Analysis from the first non-empty recognized free-text
// field in params, plus a bonus from toolName for intent classification.
// Returns false if no recognized field had text to analyze.
func Analyze(toolName string, params map[string]any) (*Analysis, bool) {
	text, ok := firstFreeText(params)
	if !ok {
		return nil, false
	}

	lower := strings.ToLower(text)
	words := strings.Fields(text)
	wordCount := len(words)

	return &Analysis{
		WordCount:               wordCount,
		CharCount:               len(text),
		PrimaryDomain:           primaryDomain(lower),
		TechnicalSophistication: scoreSophistication(lower, wordCount),
		ResearchIntent:          researchIntent(lower, toolName),
		NovelTheoryIndicators:   novelTheoryIndicators(lower),
		KnowledgeLevel:          knowledgeLevel(lower),
		UncertaintyMarkers:      countMarkers(lower, uncertaintyMarkers),
		Specificity:             scoreSpecificity(text, wordCount),
	}, true
}

func firstFreeText(params map[string]any) (string, bool) {
	for _, field := range FreeTextFields {
		if v, ok := params[field]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s, true
			}
		}
	}
	return "", false
}

func primaryDomain(lower string) string {
	best := ""
	bestScore := 0
	for _, domain := range domainOrder {
		score := 0
		for _, kw := range domainLexicons[domain] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = domain
		}
	}
	if best == "" {
		return "interdisciplinary"
	}
	return best
}

func scoreSophistication(lower string, wordCount int) float64 {
	return clippedRegexScore(sophisticationPatterns, lower, wordCount)
}

func scoreSpecificity(text string, wordCount int) float64 {
	return clippedRegexScore(specificityPatterns, text, wordCount)
}

func clippedRegexScore(patterns []*regexp.Regexp, text string, wordCount int) float64 {
	if wordCount == 0 {
		return 0
	}
	matches := 0
	for _, p := range patterns {
		matches += len(p.FindAllString(text, -1))
	}
	score := float64(matches) / float64(wordCount) * 10
	if score > 1 {
		score = 1
	}
	return round2(score)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func researchIntent(lower, toolName string) string {
	scores := map[string]float64{}
	for intent, keywords := range intentKeywords {
		for kw, weight := range keywords {
			if strings.Contains(lower, kw) {
				scores[intent] += weight
			}
		}
	}
	if bonus, ok := intentToolBonus[toolName]; ok {
		scores[bonus] += 0.5
	}

	best := "general_inquiry"
	bestScore := 0.0
	for _, intent := range []string{"exploration", "validation", "application", "general_inquiry"} {
		if scores[intent] > bestScore {
			bestScore = scores[intent]
			best = intent
		}
	}
	return best
}

func novelTheoryIndicators(lower string) *string {
	for _, phrase := range novelTheoryPhrases {
		if strings.Contains(lower, phrase) {
			summary := "text contains novel-theory framing (\"" + phrase + "\")"
			return &summary
		}
	}
	return nil
}

func knowledgeLevel(lower string) string {
	if countMarkers(lower, expertMarkers) > 0 {
		return "expert"
	}
	inter := countMarkers(lower, intermediateMarkers)
	begin := countMarkers(lower, beginnerMarkers)
	if inter > begin {
		return "intermediate"
	}
	if begin > 0 {
		return "beginner"
	}
	return "intermediate"
}

func countMarkers(lower string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(lower, m) {
			n++
		}
	}
	return n
}

// AnalyzeProgression classifies the last five tool names (most recent
// first) into the four-category partition and lists transitions between
// consecutive calls.
func AnalyzeProgression(recentToolNames []string) Progression {
	n := len(recentToolNames)
	if n > 5 {
		recentToolNames = recentToolNames[:5]
		n = 5
	}

	categories := make([]string, n)
	for i, tool := range recentToolNames {
		categories[i] = categoryFor(tool)
	}

	var transitions []ProgressionTransition
	// recentToolNames is most-recent-first; walk chronologically (oldest
	// to newest) for the transition list.
	for i := n - 1; i > 0; i-- {
		transitions = append(transitions, ProgressionTransition{
			From: categories[i],
			To:   categories[i-1],
		})
	}

	return Progression{Categories: categories, Transitions: transitions}
}

func categoryFor(tool string) string {
	if c, ok := categoryByTool[tool]; ok {
		return c
	}
	return "discovery"
}
