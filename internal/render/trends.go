package render

import (
	"html/template"

	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/derive"
	"github.com/newthinker/treasury/internal/format"
)

// TrendPointView is a displayed observation.
type TrendPointView struct {
	Date  string
	Value string
}

// TrendBlock is the view of one named series.
type TrendBlock struct {
	ID        string
	Label     string
	Empty     bool
	Points    []TrendPointView
	Direction string
	Arrow     string
	Class     string
	Change    string
}

type trendSeries struct {
	id     string
	label  string
	points []core.TrendPoint
	// ratio series are plain numbers, the rest are dollar amounts
	ratio bool
}

// BuildTrends returns one block per series: free cash flow, P/E ratio,
// debt and revenue, in that order.
func BuildTrends(trends core.Trends) []TrendBlock {
	all := []trendSeries{
		{id: "fcfTrend", label: "Free Cash Flow", points: trends.FreeCashFlow},
		{id: "peTrend", label: "P/E Ratio", points: trends.PERatio, ratio: true},
		{id: "debtTrend", label: "Debt", points: trends.Debt},
		{id: "revenueTrend", label: "Revenue", points: trends.Revenue},
	}

	blocks := make([]TrendBlock, 0, len(all))
	for _, ts := range all {
		blocks = append(blocks, buildTrendBlock(ts))
	}
	return blocks
}

func buildTrendBlock(ts trendSeries) TrendBlock {
	block := TrendBlock{ID: ts.id, Label: ts.label}

	trend, ok := derive.AnalyzeTrend(ts.points)
	if !ok {
		block.Empty = true
		return block
	}

	for _, p := range trend.Recent {
		value := format.LargeNumber(p.Value.Float())
		if ts.ratio {
			value = format.Number(p.Value.Float(), 2)
		}
		block.Points = append(block.Points, TrendPointView{Date: p.Date, Value: value})
	}

	block.Direction = trend.Direction.String()
	if trend.Direction == derive.Increasing {
		block.Arrow, block.Class = "↑", "trend-up"
	} else {
		block.Arrow, block.Class = "↓", "trend-down"
	}
	block.Change = format.Signed(trend.ChangePercent, 1) + "%"

	return block
}

// Trends renders the four trend blocks.
func (r *Renderer) Trends(s *core.FinancialSnapshot) (template.HTML, error) {
	var trends core.Trends
	if s != nil {
		trends = s.Trends
	}
	return r.execute(SectionTrends, BuildTrends(trends))
}
