package derive

import "github.com/newthinker/treasury/internal/core"

// TotalDebt is the debt implied by debt-to-equity and shareholders equity.
// It is a presentation estimate, not a reported figure.
func TotalDebt(s *core.FinancialSnapshot) float64 {
	return s.DebtToEquity.Float() * s.ShareholdersEquity.Float()
}

// WorkingCapital is the working capital implied by the current ratio and
// total liabilities. It is a presentation estimate, not a reported figure.
func WorkingCapital(s *core.FinancialSnapshot) float64 {
	return (s.CurrentRatio.Float() - 1) * s.TotalLiabilities.Float()
}

// InflationLevel buckets an inflation rate such as "3.2%".
type InflationLevel string

const (
	InflationHigh     InflationLevel = "high"
	InflationElevated InflationLevel = "elevated"
	InflationLow      InflationLevel = "low"
)

// ClassifyInflation applies the fixed ladder: >= 3.0 high, >= 2.0
// elevated, anything else (including unparseable rates) low.
func ClassifyInflation(rate string) InflationLevel {
	v, ok := core.ParseLeadingFloat(rate)
	switch {
	case ok && v >= 3.0:
		return InflationHigh
	case ok && v >= 2.0:
		return InflationElevated
	default:
		return InflationLow
	}
}

// YieldMove is the direction of a treasury yield change string.
type YieldMove string

const (
	YieldUp   YieldMove = "up"
	YieldDown YieldMove = "down"
	YieldFlat YieldMove = "flat"
)

// ClassifyYieldChange reads the sign prefix of a change such as "+0.03".
func ClassifyYieldChange(change string) YieldMove {
	switch {
	case len(change) > 0 && change[0] == '+':
		return YieldUp
	case len(change) > 0 && change[0] == '-':
		return YieldDown
	default:
		return YieldFlat
	}
}
