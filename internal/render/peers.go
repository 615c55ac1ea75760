package render

import (
	"html/template"

	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/format"
)

// PeerRow is a formatted peer.
type PeerRow struct {
	Symbol       string
	Name         string
	PERatio      string
	CurrentRatio string
	MarketCap    string
	DebtToEquity string
	// Highlight marks the queried company.
	Highlight bool
}

// BuildPeers formats the peer table. It returns nil when there are no peers.
func BuildPeers(pc *core.PeerComparison) []PeerRow {
	if pc == nil || len(pc.Peers) == 0 {
		return nil
	}

	rows := make([]PeerRow, 0, len(pc.Peers))
	for i, p := range pc.Peers {
		rows = append(rows, PeerRow{
			Symbol:       p.Symbol,
			Name:         p.Name,
			PERatio:      format.Number(p.PERatio.Float(), 2),
			CurrentRatio: format.Number(p.CurrentRatio.Float(), 2),
			MarketCap:    format.LargeNumber(p.MarketCap.Float()),
			DebtToEquity: format.Number(p.DebtToEquity.Float(), 2),
			Highlight:    i == 0,
		})
	}
	return rows
}

// Peers renders the peer comparison table.
func (r *Renderer) Peers(s *core.FinancialSnapshot) (template.HTML, error) {
	var pc *core.PeerComparison
	if s != nil {
		pc = s.PeerComparison
	}
	return r.execute(SectionPeers, BuildPeers(pc))
}
