package dashboard

import (
	"html/template"
	"time"

	"github.com/newthinker/treasury/internal/core"
)

// Status is the fetch state of a dashboard.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusDisplayed
	StatusErrorShown
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusDisplayed:
		return "displayed"
	case StatusErrorShown:
		return "error"
	default:
		return "unknown"
	}
}

// State is everything the page needs besides the rendered markup.
// The Controller is its only writer.
type State struct {
	Status Status
	// Ticker is the last ticker fetched successfully. Exports use it.
	Ticker string
	// Pending is the ticker of the fetch in flight, if any.
	Pending string
	// Snapshot is the last dataset rendered. A failed fetch keeps it.
	Snapshot  *core.FinancialSnapshot
	FetchedAt time.Time

	Category core.Category
	Tab      core.Tab

	// Error is the single message shown to the user, empty when none.
	Error          string
	ContentVisible bool
	SubmitEnabled  bool
}

// Loading reports whether a fetch is in flight.
func (s State) Loading() bool {
	return s.Status == StatusLoading
}

// View holds the rendered markup of every display region.
type View struct {
	Header      template.HTML
	Overview    template.HTML
	Ratios      template.HTML
	Trends      template.HTML
	Peers       template.HTML
	RedFlags    template.HTML
	Industry    template.HTML
	Events      template.HTML
	Transcripts template.HTML
	News        template.HTML
	Rates       template.HTML
}
