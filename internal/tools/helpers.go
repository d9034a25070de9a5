// Package tools implements the catalog of MCP tools the Tool Registry
// exposes: Socratic questioning, methodology guidance, novel-theory
// validation, progress/recommendation/milestone/journey reporting, and
// document generation. Every tool is a small registry.Tool whose body
// reads its resolved scope from toolctx.From(ctx).
package tools

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/registry"
)

// prop builds a registry.Property inline, trimming the call sites below.
func prop(typ, desc string) registry.Property {
	return registry.Property{Type: typ, Description: desc}
}

func enumProp(typ, desc string, values ...string) registry.Property {
	return registry.Property{Type: typ, Description: desc, Enum: values}
}

// str reads a string parameter with a default, loosely coercing non-string
// JSON values (numbers, bools) the way the teacher's params arrive over
// the wire — matching the cast dependency's role in SPEC_FULL's DOMAIN
// STACK table.
func str(args map[string]any, key, def string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return def
	}
	if s, err := cast.ToStringE(v); err == nil && s != "" {
		return s
	}
	return def
}

func boolArg(args map[string]any, key string, def bool) bool {
	v, ok := args[key]
	if !ok || v == nil {
		return def
	}
	if b, err := cast.ToBoolE(v); err == nil {
		return b
	}
	return def
}

func intArg(args map[string]any, key string, def int) int {
	v, ok := args[key]
	if !ok || v == nil {
		return def
	}
	if n, err := cast.ToIntE(v); err == nil {
		return n
	}
	return def
}

func stringList(args map[string]any, key string) []string {
	v, ok := args[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, err := cast.ToStringE(item); err == nil {
				out = append(out, s)
			}
		}
		return out
	case string:
		parts := strings.Split(t, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		return parts
	default:
		return nil
	}
}

// capNone, capLaTeX, capVector are the three capability sets tools declare.
var (
	capNone   = []capability.Name{}
	capLaTeX  = []capability.Name{capability.LaTeX}
	capVector = []capability.Name{capability.VectorDB}
)

// noContext/requireContext document the ContextRequired() bool return
// inline at each tool's declaration site.
const (
	noContext      = false
	requireContext = true
)
