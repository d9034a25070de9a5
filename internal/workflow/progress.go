// Package workflow implements Workflow Intelligence: progress reports,
// velocity, act guidance, contextual recommendations, milestone detection,
// and journey analytics, all computed from Store data plus the static
// Research Framework taxonomy.
package workflow

import (
	"fmt"
	"sort"

	"github.com/srrd-research/srrd-mcp/internal/framework"
	"github.com/srrd-research/srrd-mcp/internal/store"
)

// Engine computes workflow intelligence over one project's Store.
type Engine struct {
	fw *framework.Framework
}

// New builds an Engine backed by the given Research Framework taxonomy.
func New(fw *framework.Framework) *Engine {
	return &Engine{fw: fw}
}

// ActProgress is the completion fraction for one research act.
type ActProgress struct {
	Act        framework.Act `json:"act"`
	Completion float64       `json:"completion"`
	ToolsUsed  []string      `json:"tools_used"`
	ToolsTotal int           `json:"tools_total"`
}

// ProgressReport summarizes progress across every act.
type ProgressReport struct {
	Acts             []ActProgress   `json:"acts"`
	TotalInvocations int             `json:"total_invocations"`
	UniqueTools      int             `json:"unique_tools"`
	LastActivity     string          `json:"last_activity,omitempty"`
	Velocity         *VelocityReport `json:"velocity,omitempty"`
}

// Progress computes the progress report: for each act a, completion(a) =
// |U_a| / |T_a| * 100, where U_a is the set of distinct tool names from
// T_a that appear at least once in tool_usage for this project.
func (e *Engine) Progress(s *store.Store) (*ProgressReport, error) {
	used, err := s.DistinctToolNames()
	if err != nil {
		return nil, err
	}
	usedSet := make(map[string]bool, len(used))
	for _, name := range used {
		usedSet[name] = true
	}

	total, err := s.TotalInvocations()
	if err != nil {
		return nil, err
	}

	last, err := s.LastActivity()
	if err != nil {
		return nil, err
	}

	report := &ProgressReport{TotalInvocations: total, UniqueTools: len(used), LastActivity: last}

	velocity, err := e.Velocity(s, 7)
	if err != nil {
		return nil, err
	}
	report.Velocity = velocity

	for _, act := range framework.Acts {
		toolsTotal := e.fw.ToolsForAct(act)
		var toolsUsed []string
		for _, tool := range toolsTotal {
			if usedSet[tool] {
				toolsUsed = append(toolsUsed, tool)
			}
		}

		completion := 0.0
		if len(toolsTotal) > 0 {
			completion = float64(len(toolsUsed)) / float64(len(toolsTotal)) * 100
		}

		report.Acts = append(report.Acts, ActProgress{
			Act:        act,
			Completion: completion,
			ToolsUsed:  toolsUsed,
			ToolsTotal: len(toolsTotal),
		})
	}

	return report, nil
}

// RenderMarkdown formats a ProgressReport as a Markdown summary, including
// per-act completion bars.
func (r *ProgressReport) RenderMarkdown() string {
	out := "# Research Progress\n\n"
	out += fmt.Sprintf("**Total invocations:** %d | **Unique tools:** %d\n\n", r.TotalInvocations, r.UniqueTools)
	if r.LastActivity != "" {
		out += fmt.Sprintf("_Last activity: %s_\n\n", r.LastActivity)
	}
	if r.Velocity != nil && r.Velocity.Sparkline != "" {
		out += fmt.Sprintf("**Velocity (last %dd):** %s %s\n\n", r.Velocity.WindowDays, r.Velocity.Sparkline, r.Velocity.Trend)
	}

	acts := make([]ActProgress, len(r.Acts))
	copy(acts, r.Acts)
	sort.SliceStable(acts, func(i, j int) bool { return acts[i].Act < acts[j].Act })

	for _, a := range acts {
		bar := progressBar(a.Completion)
		out += fmt.Sprintf("**%s**: %s %.1f%% (%d/%d tools)\n", a.Act, bar, a.Completion, len(a.ToolsUsed), a.ToolsTotal)
	}
	return out
}

func progressBar(pct float64) string {
	const width = 20
	filled := int(pct / 100 * width)
	if filled > width {
		filled = width
	}
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "#"
		} else {
			bar += "-"
		}
	}
	return "[" + bar + "]"
}
