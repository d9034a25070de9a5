// Package templates renders the publication-facing documents the
// communication-act tools produce: a LaTeX document body and a
// bibliography. It follows the teacher repo's embedded-template,
// text/template-based renderer shape, generalized from SDD artifact
// templates to research-document templates.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed files/*.tmpl
var files embed.FS

// Kind names one renderable template.
type Kind string

const (
	LaTeXDocument Kind = "latex_document"
	Bibliography  Kind = "bibliography"
)

var filenames = map[Kind]string{
	LaTeXDocument: "files/latex_document.tmpl",
	Bibliography:  "files/bibliography.tmpl",
}

// LaTeXDocumentData is the data for the LaTeXDocument template.
type LaTeXDocumentData struct {
	Title       string
	Author      string
	Abstract    string
	Sections    []Section
	Bibliography string // pre-rendered \bibitem block, or ""
}

// Section is one \section{...} body in a rendered document.
type Section struct {
	Heading string
	Body    string
}

// BibliographyData is the data for the Bibliography template.
type BibliographyData struct {
	Entries []BibEntry
}

// BibEntry is one bibliography entry in author-year-title-venue shape.
type BibEntry struct {
	Key     string
	Authors string
	Year    string
	Title   string
	Venue   string
}

// Renderer renders templates embedded at build time.
type Renderer struct {
	tmpls map[Kind]*template.Template
}

// NewRenderer parses every embedded template once at startup.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{tmpls: make(map[Kind]*template.Template, len(filenames))}
	for kind, path := range filenames {
		data, err := files.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", path, err)
		}
		tmpl, err := template.New(string(kind)).Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", path, err)
		}
		r.tmpls[kind] = tmpl
	}
	return r, nil
}

// Render executes the named template against data.
func (r *Renderer) Render(kind Kind, data any) (string, error) {
	tmpl, ok := r.tmpls[kind]
	if !ok {
		return "", fmt.Errorf("unknown template kind %q", kind)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", kind, err)
	}
	return buf.String(), nil
}
