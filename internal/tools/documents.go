package tools

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/srrd-research/srrd-mcp/internal/capability"
	"github.com/srrd-research/srrd-mcp/internal/config"
	"github.com/srrd-research/srrd-mcp/internal/registry"
	"github.com/srrd-research/srrd-mcp/internal/templates"
	"github.com/srrd-research/srrd-mcp/internal/toolctx"
)

// splitLines splits on newlines only, trimming blanks — unlike
// splitSentences, it must not treat the commas and periods inside a
// citation line as field separators.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseBibEntries turns a loose "Author, Year, Title, Venue" per-line
// format into BibEntry values, generating a stable citation key from the
// first author's surname and the year.
func parseBibEntries(lines []string) []templates.BibEntry {
	entries := make([]templates.BibEntry, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		var entry templates.BibEntry
		if len(parts) > 0 {
			entry.Authors = parts[0]
		}
		if len(parts) > 1 {
			entry.Year = parts[1]
		}
		if len(parts) > 2 {
			entry.Title = parts[2]
		}
		if len(parts) > 3 {
			entry.Venue = strings.Join(parts[3:], ", ")
		}
		surname := strings.Fields(entry.Authors)
		key := "ref"
		if len(surname) > 0 {
			key = strings.ToLower(surname[len(surname)-1])
		}
		entry.Key = key + entry.Year
		entries = append(entries, entry)
	}
	return entries
}

// GenerateBibliographyTool is generate_bibliography: renders a list of
// loosely formatted references into a LaTeX thebibliography fragment.
type GenerateBibliographyTool struct{}

func (GenerateBibliographyTool) Name() string         { return "generate_bibliography" }
func (GenerateBibliographyTool) ContextRequired() bool { return requireContext }
func (GenerateBibliographyTool) Capabilities() []capability.Name { return capLaTeX }

func (GenerateBibliographyTool) Description() string {
	return "Render a list of references (one per line: Author, Year, Title, Venue) into a LaTeX bibliography."
}

func (GenerateBibliographyTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"references":   prop("string", "References, one per line: Author, Year, Title, Venue."),
			"project_path": prop("string", "Explicit project path override."),
		},
		Required: []string{"references"},
	}
}

func (GenerateBibliographyTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	call := toolctx.From(ctx)
	if call == nil || call.Templates == nil {
		return registry.ErrorResult("document renderer is not available"), nil
	}

	lines := splitLines(str(args, "references", ""))
	if raw, ok := args["references"].([]any); ok && len(raw) > 0 {
		lines = stringList(args, "references")
	}
	entries := parseBibEntries(lines)

	rendered, err := call.Templates.Render(templates.Bibliography, templates.BibliographyData{Entries: entries})
	if err != nil {
		return nil, fmt.Errorf("rendering bibliography: %w", err)
	}

	outPath := filepath.Join(config.PublicationsPath(call.ProjectPath), "bibliography.tex")
	warning := false
	if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
		warning = true
	} else if call.Store != nil {
		if err := call.Store.RecordDocument("bibliography", "bibliography", outPath); err != nil {
			warning = true
		}
	}

	res := registry.TextResult(rendered)
	res.PersistenceWarning = warning
	return res, nil
}

// GenerateLaTeXDocumentTool is generate_latex_document: renders a titled
// document with an abstract and sections (and an optional embedded
// bibliography) into LaTeX source.
type GenerateLaTeXDocumentTool struct{}

func (GenerateLaTeXDocumentTool) Name() string         { return "generate_latex_document" }
func (GenerateLaTeXDocumentTool) ContextRequired() bool { return requireContext }
func (GenerateLaTeXDocumentTool) Capabilities() []capability.Name { return capLaTeX }

func (GenerateLaTeXDocumentTool) Description() string {
	return "Render a titled document with an abstract and sections into LaTeX source."
}

func (GenerateLaTeXDocumentTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"title":        prop("string", "Document title."),
			"author":       prop("string", "Document author."),
			"abstract":     prop("string", "Document abstract."),
			"sections":     prop("string", "Sections as 'Heading: body' pairs, one per line."),
			"bibliography": prop("string", "Pre-rendered bibliography fragment to embed, if any."),
			"project_path": prop("string", "Explicit project path override."),
		},
		Required: []string{"title"},
	}
}

func parseSections(raw string) []templates.Section {
	var out []templates.Section
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		sec := templates.Section{Heading: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			sec.Body = strings.TrimSpace(parts[1])
		}
		out = append(out, sec)
	}
	return out
}

func (GenerateLaTeXDocumentTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	call := toolctx.From(ctx)
	if call == nil || call.Templates == nil {
		return registry.ErrorResult("document renderer is not available"), nil
	}

	data := templates.LaTeXDocumentData{
		Title:        str(args, "title", ""),
		Author:       str(args, "author", ""),
		Abstract:     str(args, "abstract", ""),
		Sections:     parseSections(str(args, "sections", "")),
		Bibliography: str(args, "bibliography", ""),
	}

	rendered, err := call.Templates.Render(templates.LaTeXDocument, data)
	if err != nil {
		return nil, fmt.Errorf("rendering LaTeX document: %w", err)
	}

	filename := slugify(data.Title) + ".tex"
	outPath := filepath.Join(config.PublicationsPath(call.ProjectPath), filename)
	warning := false
	if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
		warning = true
	} else if call.Store != nil {
		if err := call.Store.RecordDocument(data.Title, "latex_source", outPath); err != nil {
			warning = true
		}
	}

	res := registry.JSONResult(map[string]any{"path": outPath, "source": rendered})
	res.PersistenceWarning = warning
	return res, nil
}

func slugify(title string) string {
	if title == "" {
		return "document"
	}
	lower := strings.ToLower(title)
	var b strings.Builder
	lastDash := false
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// CompileLaTeXTool is compile_latex: invokes a LaTeX engine as a
// subprocess against a previously generated .tex source file and reports
// whether the compilation succeeded. This is the one tool whose
// dependency is an external binary rather than a Go library — the latex
// capability gates it for exactly that reason.
type CompileLaTeXTool struct{}

func (CompileLaTeXTool) Name() string         { return "compile_latex" }
func (CompileLaTeXTool) ContextRequired() bool { return requireContext }
func (CompileLaTeXTool) Capabilities() []capability.Name { return capLaTeX }

func (CompileLaTeXTool) Description() string {
	return "Compile a generated LaTeX source file to PDF using the installed LaTeX engine."
}

func (CompileLaTeXTool) ParamSchema() registry.Schema {
	return registry.Schema{
		Type: "object",
		Properties: map[string]registry.Property{
			"source_path":  prop("string", "Path to the .tex file to compile, relative to the project's publications directory."),
			"engine":       enumProp("string", "Which LaTeX engine to invoke.", "pdflatex", "xelatex", "lualatex"),
			"project_path": prop("string", "Explicit project path override."),
		},
		Required: []string{"source_path"},
	}
}

func (CompileLaTeXTool) Execute(ctx context.Context, args map[string]any) (*registry.Result, error) {
	call := toolctx.From(ctx)
	if call == nil {
		return registry.ErrorResult("no project context available"), nil
	}

	engine := str(args, "engine", "pdflatex")
	sourcePath := str(args, "source_path", "")
	if !filepath.IsAbs(sourcePath) {
		sourcePath = filepath.Join(config.PublicationsPath(call.ProjectPath), sourcePath)
	}
	if _, err := os.Stat(sourcePath); err != nil {
		return registry.ErrorResult(fmt.Sprintf("source file not found: %v", err)), nil
	}

	runCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	cmd := exec.CommandContext(runCtx, engine,
		"-interaction=nonstopmode",
		"-output-directory", filepath.Dir(sourcePath),
		sourcePath,
	)
	output, runErr := cmd.CombinedOutput()

	pdfPath := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + ".pdf"
	success := runErr == nil

	if call.Store != nil {
		details := ""
		if !success {
			details = runErr.Error()
		}
		_ = call.Store.RecordQualityCheck("latex_compile", success, details)
		if success {
			_ = call.Store.RecordDocument(filepath.Base(pdfPath), "pdf", pdfPath)
		}
	}

	if !success {
		return registry.ErrorResult(fmt.Sprintf("%s failed: %v\n\n%s", engine, runErr, truncate(string(output), 4000))), nil
	}
	return registry.TextResult(fmt.Sprintf("Compiled %s to %s.", filepath.Base(sourcePath), pdfPath)), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
