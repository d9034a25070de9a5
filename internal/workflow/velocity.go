package workflow

import (
	"strings"

	"github.com/srrd-research/srrd-mcp/internal/store"
)

// VelocityReport is invocations-per-day over a rolling window.
type VelocityReport struct {
	WindowDays  int                    `json:"window_days"`
	DailyCounts []store.ToolUsageByDate `json:"daily_counts"`
	Sparkline   string                 `json:"sparkline"`
	Trend       string                 `json:"trend"` // rising | flat | falling
}

// sparkBars are the eight Unicode block levels used to render the ASCII
// (well, Unicode) velocity sparkline.
var sparkBars = []rune("▁▂▃▄▅▆▇█")

// Velocity computes invocations-per-day over the trailing windowDays days
// (default 7), plus a normalized sparkline and a moving-average trend.
func (e *Engine) Velocity(s *store.Store, windowDays int) (*VelocityReport, error) {
	if windowDays <= 0 {
		windowDays = 7
	}

	byDate, err := s.UsageByDate(windowDays)
	if err != nil {
		return nil, err
	}

	return &VelocityReport{
		WindowDays:  windowDays,
		DailyCounts: byDate,
		Sparkline:   sparkline(byDate),
		Trend:       trend(byDate),
	}, nil
}

// sparkline renders a single bar per day when there is only one day of
// data (boundary behavior for window N=1), or a normalized multi-bar
// sparkline otherwise.
func sparkline(days []store.ToolUsageByDate) string {
	if len(days) == 0 {
		return ""
	}
	if len(days) == 1 {
		return string(sparkBars[len(sparkBars)-1])
	}

	max := 0
	for _, d := range days {
		if d.Count > max {
			max = d.Count
		}
	}
	if max == 0 {
		return strings.Repeat(string(sparkBars[0]), len(days))
	}

	var b strings.Builder
	for _, d := range days {
		level := d.Count * (len(sparkBars) - 1) / max
		if level >= len(sparkBars) {
			level = len(sparkBars) - 1
		}
		b.WriteRune(sparkBars[level])
	}
	return b.String()
}

// trend compares the average of the second half of the window against the
// first half to label the moving-average direction.
func trend(days []store.ToolUsageByDate) string {
	if len(days) < 2 {
		return "flat"
	}

	mid := len(days) / 2
	firstAvg := average(days[:mid])
	secondAvg := average(days[mid:])

	switch {
	case secondAvg > firstAvg*1.1:
		return "rising"
	case secondAvg < firstAvg*0.9:
		return "falling"
	default:
		return "flat"
	}
}

func average(days []store.ToolUsageByDate) float64 {
	if len(days) == 0 {
		return 0
	}
	sum := 0
	for _, d := range days {
		sum += d.Count
	}
	return float64(sum) / float64(len(days))
}
