package tools

import (
	"context"
	"fmt"

	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/config"
	"github.com/srrd-research/srrd-mcp/internal/registry"
	"github.com/srrd-research/srrd-mcp/internal/toolctx"
)

// IndexDocumentTool is index_document: adds a document's content to the
// project's embedded vector collection, gated by the vector_db capability.
type IndexDocumentTool struct{}

func (IndexDocumentTool) Name() string         { return "index_document" }
func (IndexDocumentTool) ContextRequired() bool { return requireContext }
func (IndexDocumentTool) Capabilities() []capability.Name { return capVector }

func (IndexDocumentTool) Description() string {
	return "Index a document's content into the project's embedded vector knowledge collection."
}

func (IndexDocumentTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"title":        prop("string", "A short title for the document."),
			"content":      prop("string", "The document's full text content to index."),
			"document_id":  prop("string", "Stable id; auto-generated from the title if omitted."),
			"project_path": prop("string", "Explicit project path override."),
		},
		Required: []string{"title", "content"},
	}
}

func (IndexDocumentTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	call := toolctx.From(ctx)
	if call == nil || call.Knowledge == nil {
		return registry.ErrorResult("vector knowledge store is not available"), nil
	}

	title := str(args, "title", "")
	content := str(args, "content", "")
	id := str(args, "document_id", title)

	vs, err := call.Knowledge.Get(call.ProjectPath, config.KnowledgeDBPath(call.ProjectPath))
	if err != nil {
		return nil, fmt.Errorf("opening knowledge store: %w", err)
	}
	if err := vs.Index(ctx, id, title, content, nil); err != nil {
		return nil, fmt.Errorf("indexing document: %w", err)
	}

	warning := false
	if call.Store != nil {
		if err := call.Store.RecordKnowledgeDocument(title, vs.CollectionName()); err != nil {
			warning = true
		}
	}

	res := registry.TextResult(fmt.Sprintf("Indexed %q into collection %q.", title, vs.CollectionName()))
	res.PersistenceWarning = warning
	return res, nil
}

// SearchKnowledgeTool is search_knowledge: queries the project's embedded
// vector collection for documents nearest to a free-text query.
type SearchKnowledgeTool struct{}

func (SearchKnowledgeTool) Name() string         { return "search_knowledge" }
func (SearchKnowledgeTool) ContextRequired() bool { return requireContext }
func (SearchKnowledgeTool) Capabilities() []capability.Name { return capVector }

func (SearchKnowledgeTool) Description() string {
	return "Search the project's embedded vector knowledge collection for documents relevant to a query."
}

func (SearchKnowledgeTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"query":        prop("string", "The search query."),
			"limit":        prop("integer", "Maximum number of results to return."),
			"project_path": prop("string", "Explicit project path override."),
		},
		Required: []string{"query"},
	}
}

func (SearchKnowledgeTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	call := toolctx.From(ctx)
	if call == nil || call.Knowledge == nil {
		return registry.ErrorResult("vector knowledge store is not available"), nil
	}

	query := str(args, "query", "")
	limit := intArg(args, "limit", 5)

	vs, err := call.Knowledge.Get(call.ProjectPath, config.KnowledgeDBPath(call.ProjectPath))
	if err != nil {
		return nil, fmt.Errorf("opening knowledge store: %w", err)
	}

	matches, err := vs.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching knowledge store: %w", err)
	}

	return registry.JSONResult(map[string]any{
		"query":   query,
		"matches": matches,
	}), nil
}
