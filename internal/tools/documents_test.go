package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/config"
	"github.com/srrd-research/srrd-mcp/internal/store"
	"github.com/srrd-research/srrd-mcp/internal/templates"
	"github.com/srrd-research/srrd-mcp/internal/toolctx"
)

func newDocumentsCall(t *testing.T) *toolctx.Call {
	t.Helper()
	projectPath := t.TempDir()
	if err := os.MkdirAll(config.PublicationsPath(projectPath), 0o755); err != nil {
		t.Fatalf("MkdirAll publications: %v", err)
	}

	s, err := store.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("templates.NewRenderer: %v", err)
	}

	return &toolctx.Call{ProjectPath: projectPath, Store: s, Templates: renderer}
}

func TestParseBibEntries_GeneratesKeyFromSurnameAndYear(t *testing.T) {
	entries := parseBibEntries([]string{"Jane Doe, 2019, A Study of Things, Journal of Studies"})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Authors != "Jane Doe" || e.Year != "2019" || e.Title != "A Study of Things" || e.Venue != "Journal of Studies" {
		t.Errorf("unexpected entry fields: %+v", e)
	}
	if e.Key != "doe2019" {
		t.Errorf("Key = %q, want doe2019", e.Key)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"A Study of Quantum Foam!": "a-study-of-quantum-foam",
		"":                         "document",
		"Already-Slug":             "already-slug",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseSections_SplitsHeadingAndBody(t *testing.T) {
	sections := parseSections("Introduction: This study examines X.\nMethods: We used Y.\n")
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Heading != "Introduction" || sections[0].Body != "This study examines X." {
		t.Errorf("unexpected first section: %+v", sections[0])
	}
}

func TestGenerateBibliographyTool_RendersAndPersists(t *testing.T) {
	call := newDocumentsCall(t)
	ctx := toolctx.With(context.Background(), call)

	result, err := GenerateBibliographyTool{}.Execute(ctx, map[string]any{
		"references": "Jane Doe, 2019, A Study of Things, Journal of Studies\nJohn Smith, 2020, Another Study, Proceedings of Studies",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.PersistenceWarning {
		t.Errorf("expected the bibliography file write and store record to succeed")
	}
	if !strings.Contains(result.Content[0].Text, "\\bibitem") {
		t.Errorf("expected rendered output to contain bibitem entries, got %s", result.Content[0].Text)
	}

	outPath := filepath.Join(config.PublicationsPath(call.ProjectPath), "bibliography.tex")
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("expected bibliography.tex to be written: %v", err)
	}
}

func TestGenerateLaTeXDocumentTool_RendersTitledDocument(t *testing.T) {
	call := newDocumentsCall(t)
	ctx := toolctx.With(context.Background(), call)

	result, err := GenerateLaTeXDocumentTool{}.Execute(ctx, map[string]any{
		"title":    "Quantum Foam Revisited",
		"author":   "J. Doe",
		"abstract": "We revisit quantum foam.",
		"sections": "Introduction: Background material.\nConclusion: Summary of findings.",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.PersistenceWarning {
		t.Errorf("expected document generation to succeed without a persistence warning")
	}

	payload, ok := result.Content[0].JSON.(map[string]any)
	if !ok {
		t.Fatalf("expected a JSON map result, got %T", result.Content[0].JSON)
	}
	path, _ := payload["path"].(string)
	if !strings.HasSuffix(path, "quantum-foam-revisited.tex") {
		t.Errorf("expected output path to be slugified from the title, got %q", path)
	}
}

func TestDocumentTools_RequireContextAndLaTeXCapability(t *testing.T) {
	for _, tool := range []interface {
		ContextRequired() bool
		Capabilities() []capability.Name
	}{
		GenerateBibliographyTool{}, GenerateLaTeXDocumentTool{}, CompileLaTeXTool{},
	} {
		if !tool.ContextRequired() {
			t.Errorf("%T should require project context", tool)
		}
		if caps := tool.Capabilities(); len(caps) != 1 || caps[0] != capability.LaTeX {
			t.Errorf("%T capabilities = %v, want [latex]", tool, caps)
		}
	}
}
