package workflow

import (
	"time"

	"github.com/srrd-research/srrd-mcp/internal/framework"
	"github.com/srrd-research/srrd-mcp/internal/store"
)

// TimelineEntry maps one invocation to its act in chronological order.
type TimelineEntry struct {
	Tool      string        `json:"tool"`
	Act       framework.Act `json:"act"`
	Timestamp string        `json:"timestamp"`
}

// JourneyReport is the structured response of get_research_journey.
type JourneyReport struct {
	Period               string          `json:"period"`
	Timeline             []TimelineEntry `json:"timeline"`
	// DomainEvolution is the chronological sequence of distinct domains
	// the Interaction Analyzer classified this project's free-text tool
	// calls under, not the caller's focus-filter argument.
	DomainEvolution      []string        `json:"domain_evolution"`
	SophisticationTrend  string          `json:"sophistication_trend"`
	ProductivityPatterns string          `json:"productivity_patterns"`
	NextLikelyAct        framework.Act   `json:"next_likely_act,omitempty"`
}

// Journey produces journey analytics for period (last_week|last_month|
// all_time). When predict is true, NextLikelyAct is filled in from the
// canonical act chain plus a simple focus-evolution heuristic: the first
// act, starting at the most recently touched act and moving forward, whose
// completion isn't yet 100%.
func (e *Engine) Journey(s *store.Store, period string, domains []string, predict bool) (*JourneyReport, error) {
	since := periodStart(period)

	usage, err := s.UsageSince(since)
	if err != nil {
		return nil, err
	}

	report := &JourneyReport{Period: normalizePeriod(period)}

	if len(usage) == 0 {
		report.ProductivityPatterns = "no_activity"
		report.SophisticationTrend = "n/a"
		return report, nil
	}

	for _, u := range usage {
		act, ok := e.fw.ActOf(u.ToolName)
		if !ok {
			act = framework.CanonicalAct(u.ToolName)
		}
		report.Timeline = append(report.Timeline, TimelineEntry{
			Tool: u.ToolName, Act: act, Timestamp: u.CreatedAt,
		})
	}

	domainRows, err := s.DomainsSince(since)
	if err != nil {
		return nil, err
	}
	report.DomainEvolution = domainEvolution(domainRows, domains)
	report.SophisticationTrend = sophisticationTrendLabel(len(usage))
	report.ProductivityPatterns = productivityLabel(usage)

	if predict {
		progress, err := e.Progress(s)
		if err != nil {
			return nil, err
		}
		report.NextLikelyAct = predictNextAct(progress, report.Timeline)
	}

	return report, nil
}

// domainEvolution collapses a chronological run of interaction domains into
// the sequence of distinct domains the project's focus passed through,
// optionally restricted to a caller-supplied focus list. Consecutive
// repeats of the same domain collapse to one entry so the sequence reads
// as an evolution, not a tally.
func domainEvolution(entries []store.InteractionDomain, focus []string) []string {
	var focusSet map[string]bool
	if len(focus) > 0 {
		focusSet = make(map[string]bool, len(focus))
		for _, d := range focus {
			focusSet[d] = true
		}
	}

	var out []string
	last := ""
	for _, e := range entries {
		if focusSet != nil && !focusSet[e.Domain] {
			continue
		}
		if e.Domain == last && len(out) > 0 {
			continue
		}
		out = append(out, e.Domain)
		last = e.Domain
	}
	return out
}

func periodStart(period string) time.Time {
	now := time.Now().UTC()
	switch period {
	case "last_week":
		return now.AddDate(0, 0, -7)
	case "last_month":
		return now.AddDate(0, -1, 0)
	default:
		return time.Unix(0, 0).UTC()
	}
}

func normalizePeriod(period string) string {
	switch period {
	case "last_week", "last_month":
		return period
	default:
		return "all_time"
	}
}

// sophisticationTrendLabel is a coarse proxy: more invocations over the
// window reads as deepening engagement. The label is computed from the
// invocation count alone; it does not read the Interaction Analyzer's
// per-interaction sophistication scores.
func sophisticationTrendLabel(n int) string {
	switch {
	case n >= 20:
		return "deepening"
	case n >= 5:
		return "steady"
	default:
		return "early"
	}
}

func productivityLabel(usage []store.ToolUsage) string {
	if len(usage) == 0 {
		return "no_activity"
	}
	days := make(map[string]bool)
	for _, u := range usage {
		if len(u.CreatedAt) >= 10 {
			days[u.CreatedAt[:10]] = true
		}
	}
	switch {
	case len(days) >= 5:
		return "consistent"
	case len(days) >= 2:
		return "intermittent"
	default:
		return "burst"
	}
}

// predictNextAct walks the canonical act chain from the act of the most
// recent invocation (inclusive) and returns the first act that is not yet
// fully covered, or the last act when every act from there on is complete
// — a simple "keep moving forward" heuristic.
func predictNextAct(progress *ProgressReport, timeline []TimelineEntry) framework.Act {
	completion := make(map[framework.Act]float64, len(progress.Acts))
	for _, a := range progress.Acts {
		completion[a.Act] = a.Completion
	}

	startIdx := 0
	if len(timeline) > 0 {
		last := timeline[len(timeline)-1].Act
		for i, act := range framework.Acts {
			if act == last {
				startIdx = i
				break
			}
		}
	}

	for i := startIdx; i < len(framework.Acts); i++ {
		if completion[framework.Acts[i]] < 100 {
			return framework.Acts[i]
		}
	}
	return framework.Acts[len(framework.Acts)-1]
}
