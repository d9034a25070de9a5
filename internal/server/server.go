// Package server wires all SRRD-MCP components and builds the Dispatcher.
//
// This is the composition root: it creates concrete implementations and
// injects them into the Tool Registry and Dispatcher. No business logic
// lives here — only wiring, mirroring the teacher repo's server.New shape.
package server

import (
	"fmt"
	"log/slog"

	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/config"
	"github.com/srrd-research/srrd-mcp/internal/dispatcher"
	"github.com/srrd-research/srrd-mcp/internal/framework"
	"github.com/srrd-research/srrd-mcp/internal/frontend"
	"github.com/srrd-research/srrd-mcp/internal/knowledge"
	"github.com/srrd-research/srrd-mcp/internal/registry"
	"github.com/srrd-research/srrd-mcp/internal/resolver"
	"github.com/srrd-research/srrd-mcp/internal/store"
	"github.com/srrd-research/srrd-mcp/internal/templates"
	"github.com/srrd-research/srrd-mcp/internal/tools"
	"github.com/srrd-research/srrd-mcp/internal/workflow"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Cleanup closes every per-project resource the server opened. Always
// non-nil and safe to call even if New partially failed.
type Cleanup func()

// New builds the Dispatcher and every component it depends on, reading
// serverCfg for capability defaults and the global home project. This is
// the single place where all dependencies are resolved.
func New(serverCfg *config.ServerConfig, logger *slog.Logger) (*dispatcher.Dispatcher, Cleanup, error) {
	caps := capability.New(serverCfg.Features.LaTeX, serverCfg.Features.VectorDB)

	fw := framework.New()
	wf := workflow.New(fw)
	res := resolver.New(serverCfg.GlobalHomeProject)
	stores := store.NewManager()
	knowledgeMgr := knowledge.NewManager()
	projects := config.NewFileStore()

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, noop, fmt.Errorf("creating document renderer: %w", err)
	}

	tr := registry.New()
	registerTools(tr)

	if warnings := fw.Verify(tr.Names()); len(warnings) > 0 {
		for _, w := range warnings {
			logger.Warn("research framework consistency check", "warning", w)
		}
	}

	listed := tr.List(caps)
	listedNames := make([]string, len(listed))
	for i, def := range listed {
		listedNames[i] = def.Name
	}
	if problems := frontend.Validate(listedNames); len(problems) > 0 {
		for _, p := range problems {
			logger.Warn("frontend contract check", "warning", p)
		}
	}

	d := &dispatcher.Dispatcher{
		Tools:     tr,
		Caps:      caps,
		Framework: fw,
		Resolver:  res,
		Stores:    stores,
		Knowledge: knowledgeMgr,
		Workflow:  wf,
		Projects:  projects,
		ServerCfg: serverCfg,
		Templates: renderer,
		Logger:    logger,
	}

	cleanup := func() {
		stores.CloseAll()
	}
	return d, cleanup, nil
}

func noop() {}

// registerTools registers every SRRD-MCP tool. Order matches the Research
// Framework's category ordering in internal/framework, so tools/list
// returns tools grouped the way the framework documents them.
func registerTools(r *registry.Registry) {
	r.Register(tools.ClarifyResearchGoalsTool{})
	r.Register(tools.AssessFoundationalAssumptionsTool{})
	r.Register(tools.GenerateCriticalQuestionsTool{})
	r.Register(tools.SuggestMethodologyTool{})
	r.Register(tools.CompareParadigmsTool{})
	r.Register(tools.PlanResearchTimelineTool{})
	r.Register(tools.ExploreResearchDomainTool{})
	r.Register(tools.SearchKnowledgeTool{})
	r.Register(tools.IndexDocumentTool{})
	r.Register(tools.StartResearchSessionTool{})
	r.Register(tools.SwitchProjectContextTool{})
	r.Register(tools.ResetProjectContextTool{})
	r.Register(tools.AnalyzeFindingsTool{})
	r.Register(tools.SynthesizeThemesTool{})
	r.Register(tools.ValidateNovelTheoryTool{})
	r.Register(tools.RunQualityChecksTool{})
	r.Register(tools.GetResearchProgressTool{})
	r.Register(tools.DetectAndCelebrateMilestonesTool{})
	r.Register(tools.GetContextualRecommendationsTool{})
	r.Register(tools.GetResearchJourneyTool{})
	r.Register(tools.GetActGuidanceTool{})
	r.Register(tools.GenerateBibliographyTool{})
	r.Register(tools.GenerateLaTeXDocumentTool{})
	r.Register(tools.CompileLaTeXTool{})
}
