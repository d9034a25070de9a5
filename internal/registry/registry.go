// Package registry implements the Tool Registry: the catalog of callable
// MCP tools, each carrying a declared parameter schema, a capability
// requirement set, and a context-required flag.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/srrd-research/srrd-mcp/internal/capability"
)

// Property describes one JSON-Schema-shaped parameter property.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Default     any      `json:"default,omitempty"`
}

// Schema is the declared parameter shape for a tool, serialized verbatim
// into tools/list's inputSchema field.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Content is one block of a tool's result, matching the wire shape
// {"type":"text","text":...} or {"type":"json","json":...}.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	JSON any    `json:"json,omitempty"`
}

// Result is what a tool body returns to the Dispatcher.
type Result struct {
	Content           []Content `json:"content"`
	IsError           bool      `json:"isError"`
	PersistenceWarning bool     `json:"-"`
}

// TextResult builds a successful, single-block text Result.
func TextResult(text string) *Result {
	return &Result{Content: []Content{{Type: "text", Text: text}}}
}

// JSONResult builds a successful, single-block structured Result.
func JSONResult(v any) *Result {
	return &Result{Content: []Content{{Type: "json", JSON: v}}}
}

// ErrorResult builds an isError:true Result carrying a human-readable
// message, used for domain-level (validation_failed-style) rejections
// that are not JSON-RPC protocol errors.
func ErrorResult(message string) *Result {
	return &Result{Content: []Content{{Type: "text", Text: message}}, IsError: true}
}

// Tool is the interface every registered MCP tool implements.
type Tool interface {
	// Name returns the tool's unique name (e.g. "clarify_research_goals").
	Name() string

	// Description returns a human-readable summary of what the tool does.
	Description() string

	// ParamSchema returns the declared parameter schema.
	ParamSchema() Schema

	// Capabilities returns the capability names this tool requires to be
	// listed and callable. An empty slice means no capability is required.
	Capabilities() []capability.Name

	// ContextRequired reports whether this tool fails with context_missing
	// when no project context can be resolved.
	ContextRequired() bool

	// Execute runs the tool body. params has already been validated against
	// ParamSchema by the Dispatcher.
	Execute(ctx context.Context, params map[string]any) (*Result, error)
}

// Definition is the serializable tools/list entry for one tool.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"inputSchema"`
}

// Registry holds every registered tool, keyed by name, in registration
// order. Registration is rejected for duplicate names — a clean startup
// panic rather than a silently shadowed tool.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Panics if a tool with the same name is already
// registered — this is a startup-time programmer error, not a runtime
// condition tool bodies need to handle.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := t.Name()
	if _, exists := r.tools[name]; exists {
		panic(fmt.Sprintf("tool %q already registered", name))
	}
	r.tools[name] = t
	r.order = append(r.order, name)
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// List returns the definitions of every tool whose capabilities are
// currently satisfied by caps, in registration order.
func (r *Registry) List(caps *capability.Registry) []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		if caps != nil && !caps.Satisfies(t.Capabilities()) {
			continue
		}
		defs = append(defs, Definition{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: t.ParamSchema(),
		})
	}
	return defs
}

// Names returns every registered tool name regardless of capability gating
// — used by the Research Framework's startup consistency check.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
