package render

import (
	"html/template"

	"github.com/newthinker/treasury/internal/core"
)

// Events renders upcoming events or the empty notice.
func (r *Renderer) Events(s *core.FinancialSnapshot) (template.HTML, error) {
	var events []core.Event
	if s != nil {
		events = s.Events
	}
	return r.execute(SectionEvents, events)
}

// TranscriptView holds one link per transcript source.
type TranscriptView struct {
	SeekingAlpha string
	Fool         string
	Yahoo        string
}

// BuildTranscripts substitutes "#" for missing links.
func BuildTranscripts(links *core.TranscriptLinks) TranscriptView {
	if links == nil {
		links = &core.TranscriptLinks{}
	}
	return TranscriptView{
		SeekingAlpha: orHash(links.SeekingAlpha),
		Fool:         orHash(links.Fool),
		Yahoo:        orHash(links.Yahoo),
	}
}

// Transcripts renders the transcript link buttons.
func (r *Renderer) Transcripts(s *core.FinancialSnapshot) (template.HTML, error) {
	var links *core.TranscriptLinks
	if s != nil {
		links = s.TranscriptLinks
	}
	return r.execute(SectionTranscripts, BuildTranscripts(links))
}

func orHash(link string) string {
	if link == "" {
		return "#"
	}
	return link
}
