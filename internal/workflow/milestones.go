package workflow

import (
	"fmt"

	"github.com/srrd-research/srrd-mcp/internal/store"
)

// Milestone is a detected progress achievement.
type Milestone struct {
	Icon          string `json:"icon"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Significance  string `json:"significance"`
	SuggestedNext string `json:"suggested_next,omitempty"`
}

var actIcons = map[string]string{
	"conceptualization":     "🎯",
	"design_planning":       "🗺️",
	"knowledge_acquisition":  "📚",
	"analysis_synthesis":    "🔍",
	"validation_refinement": "✅",
	"communication":         "📝",
}

var usageThresholds = []int{10, 25, 50, 100, 200}

// DetectMilestones runs the three detectors described in the workflow
// intelligence design: act completion, usage thresholds (plus a
// tool-diversity threshold), and momentum.
func (e *Engine) DetectMilestones(s *store.Store) ([]Milestone, error) {
	var milestones []Milestone

	progress, err := e.Progress(s)
	if err != nil {
		return nil, err
	}

	if progress.TotalInvocations == 0 {
		return []Milestone{{
			Icon:         "🌱",
			Title:        "Just Getting Started",
			Description:  "No tools have been used yet in this project.",
			Significance: "Every research journey starts with a single question.",
		}}, nil
	}

	// Act completion detector.
	for _, a := range progress.Acts {
		if a.Completion >= 80 {
			icon := actIcons[string(a.Act)]
			milestones = append(milestones, Milestone{
				Icon:         icon,
				Title:        fmt.Sprintf("%s Act Completed", actTitle(string(a.Act))),
				Description:  fmt.Sprintf("%.0f%% of %s tools have been used.", a.Completion, a.Act),
				Significance: "This phase of the research workflow is substantially complete.",
			})
		}
	}

	// Usage threshold detector.
	for _, threshold := range usageThresholds {
		if progress.TotalInvocations >= threshold {
			milestones = append(milestones, Milestone{
				Icon:         "🏆",
				Title:        fmt.Sprintf("%d Tools Used Milestone", threshold),
				Description:  fmt.Sprintf("This project has recorded %d or more tool invocations.", threshold),
				Significance: "Sustained engagement with the research tools.",
			})
		}
	}

	// Tool-diversity milestone.
	if progress.UniqueTools >= 10 {
		milestones = append(milestones, Milestone{
			Icon:         "🧭",
			Title:        "Research Tool Explorer",
			Description:  fmt.Sprintf("%d distinct tools have been used.", progress.UniqueTools),
			Significance: "Broad engagement across the research workflow, not just one corner of it.",
		})
	}

	// Momentum detector: >= 5 days in the trailing 7-day window with >= 3
	// invocations each.
	byDate, err := s.UsageByDate(7)
	if err != nil {
		return nil, err
	}
	activeDays := 0
	for _, d := range byDate {
		if d.Count >= 3 {
			activeDays++
		}
	}
	if activeDays >= 5 {
		milestones = append(milestones, Milestone{
			Icon:         "🔥",
			Title:        "Consistent Research Momentum",
			Description:  fmt.Sprintf("%d of the last 7 days had 3 or more tool invocations.", activeDays),
			Significance: "Consistency compounds — this pace is building real progress.",
			SuggestedNext: "Keep the streak going, or use get_research_journey to see how far you've come.",
		})
	}

	if len(milestones) == 0 {
		milestones = append(milestones, Milestone{
			Icon:         "👣",
			Title:        "Keep Going",
			Description:  "No milestones reached yet, but progress is being recorded.",
			Significance: "Every invocation moves the project forward.",
		})
	}

	return milestones, nil
}

func actTitle(act string) string {
	switch act {
	case "conceptualization":
		return "Conceptualization"
	case "design_planning":
		return "Design & Planning"
	case "knowledge_acquisition":
		return "Knowledge Acquisition"
	case "analysis_synthesis":
		return "Analysis & Synthesis"
	case "validation_refinement":
		return "Validation & Refinement"
	case "communication":
		return "Communication"
	default:
		return act
	}
}
