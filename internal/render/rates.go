package render

import (
	"html/template"

	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/derive"
)

// YieldRow is a treasury yield with its change direction.
type YieldRow struct {
	Maturity string
	Yield    string
	Change   string
	Move     derive.YieldMove
}

// InflationRow is an inflation rate with its threshold level.
type InflationRow struct {
	Country    string
	Rate       string
	LastUpdate string
	Level      derive.InflationLevel
}

// RatesView holds the three independent tables; a nil slice means that
// table is not rendered.
type RatesView struct {
	Treasury    []YieldRow
	CentralBank []core.CentralBankRate
	Inflation   []InflationRow
}

// Empty reports whether no table has data.
func (v RatesView) Empty() bool {
	return len(v.Treasury) == 0 && len(v.CentralBank) == 0 && len(v.Inflation) == 0
}

// BuildRates classifies treasury changes and inflation rates.
func BuildRates(rates *core.InterestRates) RatesView {
	var view RatesView
	if rates == nil {
		return view
	}

	for _, y := range rates.TreasuryYields {
		change := y.Change
		if change == "" {
			change = "-"
		}
		view.Treasury = append(view.Treasury, YieldRow{
			Maturity: y.Maturity,
			Yield:    y.Yield,
			Change:   change,
			Move:     derive.ClassifyYieldChange(y.Change),
		})
	}

	if len(rates.CentralBankRates) > 0 {
		view.CentralBank = rates.CentralBankRates
	}

	for _, inf := range rates.InflationRates {
		view.Inflation = append(view.Inflation, InflationRow{
			Country:    inf.Country,
			Rate:       inf.Rate,
			LastUpdate: inf.LastUpdate,
			Level:      derive.ClassifyInflation(inf.Rate),
		})
	}

	return view
}

// Rates renders the treasury, central bank and inflation tables.
func (r *Renderer) Rates(s *core.FinancialSnapshot) (template.HTML, error) {
	var rates *core.InterestRates
	if s != nil {
		rates = s.InterestRates
	}
	return r.execute(SectionRates, BuildRates(rates))
}
