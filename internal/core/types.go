package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Number is a metric value from the snapshot payload. The backend may send
// null, omit the field, or send a numeric string; all of these decode
// without error and null or absent means zero.
type Number float64

// UnmarshalJSON accepts numbers, null and numeric strings.
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		*n = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("invalid number %s: %w", s, err)
		}
		if v, ok := ParseLeadingFloat(unquoted); ok {
			*n = Number(v)
		} else {
			*n = 0
		}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", s, err)
	}
	*n = Number(v)
	return nil
}

// Float returns the value as a float64.
func (n Number) Float() float64 { return float64(n) }

// ParseLeadingFloat parses the longest numeric prefix of s, so "3.2%"
// yields 3.2. It reports false when s does not start with a number.
func ParseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	seenDigit, seenDot, seenExp := false, false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
			end = i + 1
		case (c == '+' || c == '-') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
		default:
			i = len(s)
		}
	}
	if !seenDigit {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FinancialSnapshot is the payload returned by GET /api/stock/{ticker}.
// A snapshot is never modified after it is decoded.
type FinancialSnapshot struct {
	Symbol        string `json:"symbol"`
	CompanyName   string `json:"companyName"`
	Sector        string `json:"sector"`
	Industry      string `json:"industry"`
	Timestamp     string `json:"timestamp"`
	Price         Number `json:"price"`
	Change        Number `json:"change"`
	ChangePercent Number `json:"changePercent"`

	MarketCap           Number `json:"marketCap"`
	PERatio             Number `json:"peRatio"`
	EPS                 Number `json:"eps"`
	Beta                Number `json:"beta"`
	DividendYield       Number `json:"dividendYield"`
	High52              Number `json:"high52"`
	Low52               Number `json:"low52"`
	Volume              Number `json:"volume"`
	AvgVolume           Number `json:"avgVolume"`
	SharpeRatio         Number `json:"sharpeRatio"`
	GrossMargin         Number `json:"grossMargin"`
	OperatingMargin     Number `json:"operatingMargin"`
	NetMargin           Number `json:"netMargin"`
	ROE                 Number `json:"roe"`
	CurrentRatio        Number `json:"currentRatio"`
	QuickRatio          Number `json:"quickRatio"`
	DebtToEquity        Number `json:"debtToEquity"`
	ShareholdersEquity  Number `json:"shareholdersEquity"`
	TotalLiabilities    Number `json:"totalLiabilities"`
	AssetTurnover       Number `json:"assetTurnover"`
	InventoryTurnover   Number `json:"inventoryTurnover"`
	ReceivablesTurnover Number `json:"receivablesTurnover"`

	Trends          Trends           `json:"trends"`
	PeerComparison  *PeerComparison  `json:"peerComparison"`
	RedFlags        []RedFlag        `json:"redFlags"`
	Events          []Event          `json:"events"`
	News            []NewsItem       `json:"news"`
	TranscriptLinks *TranscriptLinks `json:"transcriptLinks"`
	InterestRates   *InterestRates   `json:"interestRates"`

	// Error is set by the backend instead of the fields above when the
	// ticker could not be resolved.
	Error string `json:"error,omitempty"`
}

// TrendPoint is one observation of a trend series.
type TrendPoint struct {
	Date  string `json:"date"`
	Value Number `json:"value"`
}

// Trends holds the named series, each ordered oldest first.
type Trends struct {
	FreeCashFlow []TrendPoint `json:"freeCashFlow"`
	PERatio      []TrendPoint `json:"peRatio"`
	Debt         []TrendPoint `json:"debt"`
	Revenue      []TrendPoint `json:"revenue"`
}

// Peer is a row of the peer comparison.
type Peer struct {
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	PERatio      Number `json:"peRatio"`
	CurrentRatio Number `json:"currentRatio"`
	MarketCap    Number `json:"marketCap"`
	DebtToEquity Number `json:"debtToEquity"`
}

// PeerComparison lists peers; the first entry is the queried company.
type PeerComparison struct {
	Peers    []Peer `json:"peers"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

// RedFlag is a flagged financial-health concern.
type RedFlag struct {
	Category string `json:"category"`
	Severity string `json:"severity"` // "high", "medium", "low"
	Message  string `json:"message"`
}

// Event is an upcoming corporate event.
type Event struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// NewsItem is a headline; Time is in epoch seconds.
type NewsItem struct {
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Link      string `json:"link"`
	Time      Number `json:"time"`
}

// TranscriptLinks holds earnings call transcript URLs by source.
type TranscriptLinks struct {
	SeekingAlpha string `json:"seekingAlpha"`
	Fool         string `json:"fool"`
	Yahoo        string `json:"yahoo"`
}

// TreasuryYield is a row of the treasury yields table.
type TreasuryYield struct {
	Maturity string `json:"maturity"`
	Yield    string `json:"yield"`
	Change   string `json:"change"`
}

// CentralBankRate is a row of the policy rates table.
type CentralBankRate struct {
	Country    string `json:"country"`
	Bank       string `json:"bank"`
	Rate       string `json:"rate"`
	LastChange string `json:"lastChange"`
}

// InflationRate is a row of the inflation table.
type InflationRate struct {
	Country    string `json:"country"`
	Rate       string `json:"rate"`
	LastUpdate string `json:"lastUpdate"`
}

// InterestRates groups the three rates tables.
type InterestRates struct {
	TreasuryYields   []TreasuryYield   `json:"treasuryYields"`
	CentralBankRates []CentralBankRate `json:"centralBankRates"`
	InflationRates   []InflationRate   `json:"inflationRates"`
}

// Category is a ratio grouping shown in the ratios panel.
type Category string

const (
	CategoryValuation     Category = "valuation"
	CategoryProfitability Category = "profitability"
	CategoryLiquidity     Category = "liquidity"
	CategoryLeverage      Category = "leverage"
	CategoryEfficiency    Category = "efficiency"
)

// Categories lists the ratio categories in selector order.
var Categories = []Category{
	CategoryValuation,
	CategoryProfitability,
	CategoryLiquidity,
	CategoryLeverage,
	CategoryEfficiency,
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", NewError(ErrValidation, fmt.Sprintf("unknown ratio category: %q", s))
}

// Tab identifies a dashboard pane.
type Tab string

const (
	TabOverview Tab = "overview"
	TabRatios   Tab = "ratios"
	TabTrends   Tab = "trends"
	TabPeers    Tab = "peers"
	TabRedFlags Tab = "redflags"
	TabIndustry Tab = "industry"
	TabEvents   Tab = "events"
	TabNews     Tab = "news"
	TabRates    Tab = "rates"
)

// Tabs lists the panes in display order.
var Tabs = []Tab{
	TabOverview, TabRatios, TabTrends, TabPeers, TabRedFlags,
	TabIndustry, TabEvents, TabNews, TabRates,
}

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", NewError(ErrValidation, fmt.Sprintf("unknown tab: %q", s))
}
