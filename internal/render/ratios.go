package render

import (
	"html/template"

	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/derive"
	"github.com/newthinker/treasury/internal/format"
)

// RatioRow is one metric of a ratio category.
type RatioRow struct {
	Label string
	Hint  string
	Value string
	// Implied marks values derived for display rather than reported.
	Implied bool
}

// RatioView is the ratio table for a single category.
type RatioView struct {
	Category core.Category
	Rows     []RatioRow
}

// BuildRatios returns the metric set of category. Categories never share
// rows. An unknown category is a validation error.
func BuildRatios(s *core.FinancialSnapshot, category core.Category) (RatioView, error) {
	if s == nil {
		s = &core.FinancialSnapshot{}
	}

	var rows []RatioRow
	switch category {
	case core.CategoryValuation:
		rows = []RatioRow{
			{Label: "P/E Ratio", Hint: "Lower generally better", Value: format.Number(s.PERatio.Float(), 2)},
			{Label: "EPS (Earnings Per Share)", Hint: "Higher better", Value: format.Currency(s.EPS.Float())},
			{Label: "Market Cap", Hint: "Informational", Value: format.LargeNumber(s.MarketCap.Float())},
		}
	case core.CategoryProfitability:
		rows = []RatioRow{
			{Label: "Gross Profit Margin", Hint: "Higher better", Value: format.Percent(s.GrossMargin.Float())},
			{Label: "Operating Profit Margin", Hint: "Higher better", Value: format.Percent(s.OperatingMargin.Float())},
			{Label: "Net Profit Margin", Hint: "Higher better", Value: format.Percent(s.NetMargin.Float())},
			{Label: "Return on Equity (ROE)", Hint: "Higher better", Value: format.Percent(s.ROE.Float())},
		}
	case core.CategoryLiquidity:
		rows = []RatioRow{
			{Label: "Current Ratio", Hint: "Higher better, >1 ideal", Value: format.Number(s.CurrentRatio.Float(), 2)},
			{Label: "Quick Ratio", Hint: "Higher better, >1 ideal", Value: format.Number(s.QuickRatio.Float(), 2)},
			{Label: "Working Capital", Hint: "Higher better", Value: format.LargeNumber(derive.WorkingCapital(s)), Implied: true},
		}
	case core.CategoryLeverage:
		rows = []RatioRow{
			{Label: "Debt-to-Equity Ratio", Hint: "Lower better, <1 ideal", Value: format.Number(s.DebtToEquity.Float(), 2)},
			{Label: "Total Debt", Hint: "Lower better", Value: format.LargeNumber(derive.TotalDebt(s)), Implied: true},
			{Label: "Shareholders Equity", Hint: "Higher better", Value: format.LargeNumber(s.ShareholdersEquity.Float())},
		}
	case core.CategoryEfficiency:
		rows = []RatioRow{
			{Label: "Asset Turnover", Hint: "Higher better", Value: format.Number(s.AssetTurnover.Float(), 2)},
			{Label: "Inventory Turnover", Hint: "Higher better", Value: format.Number(s.InventoryTurnover.Float(), 2)},
			{Label: "Receivables Turnover", Hint: "Higher better", Value: format.Number(s.ReceivablesTurnover.Float(), 2)},
		}
	default:
		_, err := core.ParseCategory(string(category))
		return RatioView{}, err
	}

	return RatioView{Category: category, Rows: rows}, nil
}

// Ratios renders the ratio table for category.
func (r *Renderer) Ratios(s *core.FinancialSnapshot, category core.Category) (template.HTML, error) {
	view, err := BuildRatios(s, category)
	if err != nil {
		return "", err
	}
	return r.execute(SectionRatios, view)
}
