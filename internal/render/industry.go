package render

import (
	"html/template"

	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/derive"
	"github.com/newthinker/treasury/internal/format"
)

// IndustryView compares the company against its peer averages.
type IndustryView struct {
	Sector    string
	Industry  string
	Available bool

	AvgPERatio          string
	CompanyPERatio      string
	AvgCurrentRatio     string
	CompanyCurrentRatio string
	Valuation           string
	Liquidity           string
}

// BuildIndustry computes the industry analysis. Averages are only
// available when at least one peer besides the company is present.
func BuildIndustry(s *core.FinancialSnapshot) IndustryView {
	if s == nil {
		return IndustryView{Sector: orNA(""), Industry: orNA("")}
	}

	view := IndustryView{Sector: orNA(s.Sector), Industry: orNA(s.Industry)}
	if s.PeerComparison == nil {
		return view
	}

	avg, ok := derive.PeerAverages(s.PeerComparison.Peers)
	if !ok {
		return view
	}

	pe, cr := s.PERatio.Float(), s.CurrentRatio.Float()
	view.Available = true
	view.AvgPERatio = format.Number(avg.PERatio, 2)
	view.CompanyPERatio = format.Number(pe, 2)
	view.AvgCurrentRatio = format.Number(avg.CurrentRatio, 2)
	view.CompanyCurrentRatio = format.Number(cr, 2)

	if pe > avg.PERatio {
		view.Valuation = "Company trades at a premium to peers."
	} else {
		view.Valuation = "Company trades at a discount to peers."
	}
	if cr > avg.CurrentRatio {
		view.Liquidity = "Liquidity position is stronger than peer average."
	} else {
		view.Liquidity = "Liquidity position is weaker than peer average."
	}

	return view
}

// Industry renders the industry pane.
func (r *Renderer) Industry(s *core.FinancialSnapshot) (template.HTML, error) {
	return r.execute(SectionIndustry, BuildIndustry(s))
}
