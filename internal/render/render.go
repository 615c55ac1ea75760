// Package render turns a snapshot into the markup of each dashboard
// section. Each section has a view model builder, usable by any output
// target, and a Renderer method producing HTML from it.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed templates/*
var templateFS embed.FS

// Section names, also used as template names and metric labels.
const (
	SectionHeader      = "header"
	SectionOverview    = "overview"
	SectionRatios      = "ratios"
	SectionTrends      = "trends"
	SectionPeers       = "peers"
	SectionRedFlags    = "redflags"
	SectionIndustry    = "industry"
	SectionEvents      = "events"
	SectionTranscripts = "transcripts"
	SectionNews        = "news"
	SectionRates       = "rates"
)

// Sections lists every section in the order the controller renders them.
var Sections = []string{
	SectionHeader, SectionOverview, SectionRatios, SectionTrends, SectionPeers,
	SectionRedFlags, SectionIndustry, SectionEvents, SectionTranscripts,
	SectionNews, SectionRates,
}

// Renderer executes the section templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded section templates.
func New() (*Renderer, error) {
	subFS, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("accessing embedded templates: %w", err)
	}
	return NewWithFS(subFS)
}

// NewWithFS parses section templates from fsys.
// This is useful for testing or custom template sources.
func NewWithFS(fsys fs.FS) (*Renderer, error) {
	tmpl, err := template.ParseFS(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing section templates: %w", err)
	}
	for _, name := range Sections {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("missing section template %q", name)
		}
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Must is like New but panics on error.
func Must() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Metric is a labelled, formatted value.
type Metric struct {
	ID    string
	Label string
	Value string
}
