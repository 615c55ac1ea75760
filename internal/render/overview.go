package render

import (
	"html/template"

	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/format"
)

// BuildOverview lists the headline metrics of the overview pane.
func BuildOverview(s *core.FinancialSnapshot) []Metric {
	if s == nil {
		s = &core.FinancialSnapshot{}
	}
	return []Metric{
		{ID: "marketCap", Label: "Market Cap", Value: format.LargeNumber(s.MarketCap.Float())},
		{ID: "peRatio", Label: "P/E Ratio", Value: format.Number(s.PERatio.Float(), 2)},
		{ID: "eps", Label: "EPS", Value: format.Currency(s.EPS.Float())},
		{ID: "beta", Label: "Beta", Value: format.Number(s.Beta.Float(), 2)},
		{ID: "dividendYield", Label: "Dividend Yield", Value: format.Percent(s.DividendYield.Float())},
		{ID: "high52", Label: "52-Week High", Value: format.Currency(s.High52.Float())},
		{ID: "low52", Label: "52-Week Low", Value: format.Currency(s.Low52.Float())},
		{ID: "volume", Label: "Volume", Value: format.Volume(s.Volume.Float())},
		{ID: "avgVolume", Label: "Avg Volume", Value: format.Volume(s.AvgVolume.Float())},
		{ID: "sharpeRatio", Label: "Sharpe Ratio (3Y)", Value: format.Number(s.SharpeRatio.Float(), 2)},
	}
}

// Overview renders the overview metric grid.
func (r *Renderer) Overview(s *core.FinancialSnapshot) (template.HTML, error) {
	return r.execute(SectionOverview, BuildOverview(s))
}
