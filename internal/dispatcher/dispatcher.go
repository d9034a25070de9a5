// Package dispatcher implements the JSON-RPC 2.0 tool dispatcher: method
// routing, parameter validation, capability gating, context resolution,
// usage recording, and error shaping. Both transports (stdio, WebSocket)
// call the same Dispatcher.Handle — there is exactly one dispatch path.
package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/srrd-research/srrd-mcp/internal/analyzer"
	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/config"
	"github.com/srrd-research/srrd-mcp/internal/framework"
	"github.com/srrd-research/srrd-mcp/internal/knowledge"
	"github.com/srrd-research/srrd-mcp/internal/registry"
	"github.com/srrd-research/srrd-mcp/internal/resolver"
	"github.com/srrd-research/srrd-mcp/internal/store"
	"github.com/srrd-research/srrd-mcp/internal/templates"
	"github.com/srrd-research/srrd-mcp/internal/toolctx"
	"github.com/srrd-research/srrd-mcp/internal/workflow"
)

// ─── Wire shapes ─────────────────────────────────────────────────────────

// Request is one JSON-RPC 2.0 request or notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether this request carries no id and therefore
// expects no reply.
func (r Request) IsNotification() bool { return len(r.ID) == 0 }

// Response is one JSON-RPC 2.0 response. Exactly one of Result/Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is the standard JSON-RPC error shape, extended with the
// application-level "kind" field the spec's error taxonomy requires.
type RPCError struct {
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Data    ErrorData `json:"data"`
}

// ErrorData carries the stable error kind and optional diagnostic details.
type ErrorData struct {
	Kind    string `json:"kind"`
	Details string `json:"details,omitempty"`
}

func (e *RPCError) Error() string { return fmt.Sprintf("%s: %s", e.Data.Kind, e.Message) }

// Standard and application error codes (spec.md §6-7).
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeToolUnavailable = -32000
	CodeContextMissing  = -32001
	CodeStoreUnavailable = -32002
)

func newErr(code int, kind, message string) *RPCError {
	return &RPCError{Code: code, Message: message, Data: ErrorData{Kind: kind}}
}

// ─── Dispatcher ──────────────────────────────────────────────────────────

// Dispatcher routes tools/list and tools/call against a Tool Registry,
// resolving project context and recording usage through the Store Manager.
// One Dispatcher is shared by every transport and every connection; the
// only per-connection state is the resolver.Override and
// resolver.SessionSlot each caller supplies.
type Dispatcher struct {
	Tools     *registry.Registry
	Caps      *capability.Registry
	Framework *framework.Framework
	Resolver  *resolver.Resolver
	Stores    *store.Manager
	Knowledge *knowledge.Manager
	Workflow  *workflow.Engine
	Projects  *config.FileStore
	ServerCfg *config.ServerConfig
	Templates *templates.Renderer
	Logger    *slog.Logger
}

// ServerInfo is returned from the initialize handshake.
type ServerInfo struct {
	Name         string         `json:"name"`
	Version      string         `json:"version"`
	Capabilities map[string]bool `json:"capabilities"`
}

// Handle processes one decoded Request and returns the Response to send
// back, or nil if req was a notification with no reply expected. Handle
// never panics outward: any tool-body panic or unexpected error is caught
// and mapped to internal_error.
func (d *Dispatcher) Handle(ctx context.Context, override *resolver.Override, session *resolver.SessionSlot, req Request) *Response {
	reply := func(result any, rpcErr *RPCError) *Response {
		if req.IsNotification() {
			return nil
		}
		resp := &Response{JSONRPC: "2.0", ID: req.ID}
		if rpcErr != nil {
			resp.Error = rpcErr
		} else {
			resp.Result = result
		}
		return resp
	}

	switch req.Method {
	case "initialize":
		return reply(d.handleInitialize(), nil)
	case "tools/list":
		return reply(d.handleToolsList(), nil)
	case "tools/call":
		return d.handleToolsCall(ctx, override, session, req, reply)
	default:
		return reply(nil, newErr(CodeMethodNotFound, "method_not_found", "unknown method: "+req.Method))
	}
}

func (d *Dispatcher) handleInitialize() *ServerInfo {
	return &ServerInfo{
		Name:    "srrd-mcp",
		Version: "0.1.0",
		Capabilities: map[string]bool{
			"tools":             true,
			"latex":             d.Caps.Has(capability.LaTeX),
			"vector_db":         d.Caps.Has(capability.VectorDB),
		},
	}
}

// toolsListResult is the tools/list wire shape.
type toolsListResult struct {
	Tools []registry.Definition `json:"tools"`
}

func (d *Dispatcher) handleToolsList() *toolsListResult {
	return &toolsListResult{Tools: d.Tools.List(d.Caps)}
}

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (d *Dispatcher) handleToolsCall(ctx context.Context, override *resolver.Override, session *resolver.SessionSlot, req Request, reply func(any, *RPCError) *Response) *Response {
	var params toolsCallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return reply(nil, newErr(CodeInvalidParams, "invalid_params", "malformed tools/call params: "+err.Error()))
		}
	}

	tool := d.Tools.Get(params.Name)
	if tool == nil {
		return reply(nil, newErr(CodeMethodNotFound, "method_not_found", "unknown tool: "+params.Name))
	}

	if !d.Caps.Satisfies(tool.Capabilities()) {
		return reply(nil, newErr(CodeToolUnavailable, "tool_unavailable", fmt.Sprintf("tool %q requires a capability that is not installed", tool.Name())))
	}

	explicitPath, _ := params.Arguments["project_path"].(string)
	projectPath, err := d.Resolver.Resolve(explicitPath, override, tool.ContextRequired())
	if err != nil {
		return reply(nil, newErr(CodeContextMissing, "context_missing", err.Error()))
	}

	if missing := validateRequired(tool.ParamSchema(), params.Arguments); missing != "" {
		return reply(nil, newErr(CodeInvalidParams, "invalid_params", "missing required parameter: "+missing))
	}

	call := &toolctx.Call{
		ProjectPath:  projectPath,
		Caps:         d.Caps,
		Framework:    d.Framework,
		Workflow:     d.Workflow,
		ServerConfig: d.ServerCfg,
		Logger:       d.Logger,
		Override:     override,
		Session:      session,
		SessionID:    session.Get(),
		Knowledge:    d.Knowledge,
		Templates:    d.Templates,
	}

	if projectPath != "" {
		if cfg, err := d.Projects.Load(projectPath); err == nil {
			call.ProjectConfig = cfg
		}
		s, err := d.Stores.Get(projectPath, config.SessionsDBPath(projectPath))
		if err != nil {
			return reply(nil, newErr(CodeStoreUnavailable, "store_unavailable", err.Error()))
		}
		call.Store = s
	}

	result, execErr := d.safeExecute(toolctx.With(ctx, call), tool, params.Arguments)
	if execErr != nil {
		if rpcErr, ok := execErr.(*RPCError); ok {
			return reply(nil, rpcErr)
		}
		return reply(nil, newErr(CodeInternalError, "internal_error", execErr.Error()))
	}

	persistenceWarning := false
	if call.Store != nil {
		call.SessionID = session.Get()
		summary := summarize(result)
		if err := call.Store.RecordToolUsage(tool.Name(), summary, call.SessionID); err != nil {
			persistenceWarning = true
			d.logf("tool_usage write failed for %s: %v", tool.Name(), err)
		}
		if analysis, ok := analyzer.Analyze(tool.Name(), params.Arguments); ok {
			d.recordInteraction(call, tool.Name(), params.Arguments, analysis)
		}
	}

	out := map[string]any{
		"content": result.Content,
		"isError": result.IsError,
	}
	if persistenceWarning || result.PersistenceWarning {
		out["persistence_warning"] = true
	}
	return reply(out, nil)
}

// safeExecute runs the tool body, converting any panic into an
// internal_error so a single misbehaving tool never takes down a
// connection's dispatch loop.
func (d *Dispatcher) safeExecute(ctx context.Context, tool registry.Tool, args map[string]any) (res *registry.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newErr(CodeInternalError, "internal_error", fmt.Sprintf("tool %q panicked: %v", tool.Name(), r))
		}
	}()
	return tool.Execute(ctx, args)
}

func (d *Dispatcher) recordInteraction(call *toolctx.Call, toolName string, args map[string]any, analysis *analyzer.Analysis) {
	recent, err := call.Store.RecentToolNames(5)
	if err != nil {
		d.logf("progression lookup failed for %s: %v", toolName, err)
		return
	}
	progression := analyzer.AnalyzeProgression(recent)

	content, _ := json.Marshal(args)
	metadata, _ := json.Marshal(map[string]any{
		"semantic_analysis":     analysis,
		"progression_analysis":  progression,
	})

	in := store.Interaction{
		SessionID: call.SessionID,
		Type:      "enhanced_tool_usage",
		Content:   string(content),
		Domain:    analysis.PrimaryDomain,
		Metadata:  string(metadata),
	}
	if call.ProjectConfig != nil && call.ProjectConfig.NovelTheory && analysis.NovelTheoryIndicators != nil {
		in.NovelTheoryContext = *analysis.NovelTheoryIndicators
	}
	if err := call.Store.RecordInteraction(in); err != nil {
		d.logf("interaction write failed for %s: %v", toolName, err)
	}
}

func (d *Dispatcher) logf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Warn(fmt.Sprintf(format, args...))
	}
}

func summarize(r *registry.Result) string {
	for _, c := range r.Content {
		if c.Type == "text" && c.Text != "" {
			if len(c.Text) > 200 {
				return c.Text[:200]
			}
			return c.Text
		}
	}
	return ""
}

// validateRequired checks that every name in schema.Required is present and
// non-nil in args. Returns the first missing parameter name, or "" if all
// are present.
func validateRequired(schema registry.Schema, args map[string]any) string {
	for _, name := range schema.Required {
		v, ok := args[name]
		if !ok || v == nil {
			return name
		}
		if s, isStr := v.(string); isStr && s == "" {
			return name
		}
	}
	return ""
}

// NewConnectionID mints an opaque id for a fresh transport connection or
// session, using the teacher's uuid dependency.
func NewConnectionID() string {
	return uuid.NewString()
}
