package render

import (
	"html/template"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/newthinker/treasury/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() *core.FinancialSnapshot {
	return &core.FinancialSnapshot{
		Symbol:              "AAPL",
		CompanyName:         "Apple Inc.",
		Sector:              "Technology",
		Industry:            "Consumer Electronics",
		Price:               189.5,
		Change:              1.234,
		ChangePercent:       0.65,
		MarketCap:           2.95e12,
		PERatio:             29.5,
		EPS:                 6.42,
		Beta:                1.28,
		DividendYield:       0.52,
		High52:              199.62,
		Low52:               164.08,
		Volume:              1_500_000,
		AvgVolume:           58_000_000,
		SharpeRatio:         1.1,
		GrossMargin:         45.03,
		OperatingMargin:     30.1,
		NetMargin:           25.3,
		ROE:                 160.1,
		CurrentRatio:        0.9,
		QuickRatio:          0.85,
		DebtToEquity:        1.5,
		ShareholdersEquity:  2e9,
		TotalLiabilities:    4e9,
		AssetTurnover:       1.09,
		InventoryTurnover:   35.2,
		ReceivablesTurnover: 13.4,
		Trends: core.Trends{
			Revenue: []core.TrendPoint{{Date: "2023", Value: 100}, {Date: "2024", Value: 150}},
			PERatio: []core.TrendPoint{{Date: "2023", Value: 31.256}, {Date: "2024", Value: 29.5}},
		},
		PeerComparison: &core.PeerComparison{Peers: []core.Peer{
			{Symbol: "AAPL", Name: "Apple", PERatio: 10, CurrentRatio: 0.9},
			{Symbol: "MSFT", Name: "Microsoft", PERatio: 20, CurrentRatio: 1.2},
			{Symbol: "GOOGL", Name: "Alphabet", PERatio: 30, CurrentRatio: 2.0},
		}},
		RedFlags: []core.RedFlag{
			{Category: "Liquidity", Severity: "medium", Message: "Current ratio of 0.90 below 1.0"},
		},
		Events: []core.Event{{Type: "Earnings Call", Date: "2026-10-30", Description: "Q4 results"}},
		News: []core.NewsItem{
			{Title: "apple ships", Publisher: "Reuters", Link: "https://example.com/a", Time: 1_700_000_000 - 2*86400},
			{},
		},
		TranscriptLinks: &core.TranscriptLinks{SeekingAlpha: "https://seekingalpha.com/symbol/AAPL/earnings/transcripts"},
		InterestRates: &core.InterestRates{
			TreasuryYields: []core.TreasuryYield{
				{Maturity: "1 Month", Yield: "4.42%", Change: "+0.03"},
				{Maturity: "6 Month", Yield: "4.38%", Change: "-0.01"},
				{Maturity: "1 Year", Yield: "4.28%"},
			},
			InflationRates: []core.InflationRate{
				{Country: "United Kingdom", Rate: "3.5%", LastUpdate: "Jan 2026"},
				{Country: "Germany", Rate: "2.8%", LastUpdate: "Jan 2026"},
				{Country: "China", Rate: "0.8%", LastUpdate: "Jan 2026"},
			},
		},
	}
}

func doc(t *testing.T, html template.HTML) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	require.NoError(t, err)
	return d
}

func TestNew_ParsesAllSections(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	for _, name := range Sections {
		assert.NotNil(t, r.tmpl.Lookup(name), name)
	}
}

func TestNewWithFS_MissingSection(t *testing.T) {
	fsys := fstest.MapFS{
		"header.html": {Data: []byte(`{{define "header"}}x{{end}}`)},
	}
	_, err := NewWithFS(fsys)
	assert.Error(t, err)
}

func TestHeader(t *testing.T) {
	view := BuildHeader(fixture())
	assert.Equal(t, "Apple Inc.", view.Name)
	assert.Equal(t, "Technology | Consumer Electronics", view.Info)
	assert.Equal(t, "$189.50", view.Price)
	assert.Equal(t, "+1.23 (+0.65%)", view.Change)
	assert.Equal(t, "positive", view.ChangeClass)

	s := fixture()
	s.CompanyName = ""
	s.Change, s.ChangePercent = -2, -1.05
	view = BuildHeader(s)
	assert.Equal(t, "AAPL", view.Name)
	assert.Equal(t, "-2.00 (-1.05%)", view.Change)
	assert.Equal(t, "negative", view.ChangeClass)

	html, err := Must().Header(fixture())
	require.NoError(t, err)
	assert.Equal(t, "$189.50", doc(t, html).Find("#price").Text())
}

func TestOverview(t *testing.T) {
	html, err := Must().Overview(fixture())
	require.NoError(t, err)
	d := doc(t, html)

	assert.Equal(t, "$2.95T", d.Find("#marketCap").Text())
	assert.Equal(t, "29.50", d.Find("#peRatio").Text())
	assert.Equal(t, "0.52%", d.Find("#dividendYield").Text())
	assert.Equal(t, "1.50M", d.Find("#volume").Text())
	assert.Equal(t, "58.00M", d.Find("#avgVolume").Text())
}

func TestOverview_EmptySnapshot(t *testing.T) {
	metrics := BuildOverview(&core.FinancialSnapshot{})
	byID := map[string]string{}
	for _, m := range metrics {
		byID[m.ID] = m.Value
	}
	assert.Equal(t, "$0.00B", byID["marketCap"])
	assert.Equal(t, "$0.00", byID["eps"])
	assert.Equal(t, "0", byID["volume"])
	assert.Equal(t, "0.00%", byID["dividendYield"])
}

func TestRatios_CategoriesAreDisjoint(t *testing.T) {
	s := fixture()
	seen := map[string]core.Category{}
	for _, c := range core.Categories {
		view, err := BuildRatios(s, c)
		require.NoError(t, err)
		require.NotEmpty(t, view.Rows, c)
		for _, row := range view.Rows {
			if prev, ok := seen[row.Label]; ok {
				t.Errorf("row %q appears in %s and %s", row.Label, prev, c)
			}
			seen[row.Label] = c
		}
	}
}

func TestRatios_ImpliedRows(t *testing.T) {
	s := fixture()

	view, err := BuildRatios(s, core.CategoryLeverage)
	require.NoError(t, err)
	assert.Equal(t, "Total Debt", view.Rows[1].Label)
	assert.Equal(t, "$3.00B", view.Rows[1].Value)
	assert.True(t, view.Rows[1].Implied)

	view, err = BuildRatios(s, core.CategoryLiquidity)
	require.NoError(t, err)
	assert.Equal(t, "-$400.00M", view.Rows[2].Value)

	html, err := Must().Ratios(s, core.CategoryLeverage)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Total Debt (implied)")
}

func TestRatios_UnknownCategory(t *testing.T) {
	_, err := Must().Ratios(fixture(), core.Category("growth"))
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestRatios_Profitability(t *testing.T) {
	html, err := Must().Ratios(fixture(), core.CategoryProfitability)
	require.NoError(t, err)
	d := doc(t, html)

	assert.Equal(t, 4, d.Find("tr").Length())
	assert.Equal(t, "45.03%", d.Find("tr").First().Find("td").Last().Text())
	assert.NotContains(t, string(html), "P/E Ratio")
}

func TestTrends(t *testing.T) {
	blocks := BuildTrends(fixture().Trends)
	require.Len(t, blocks, 4)

	assert.True(t, blocks[0].Empty, "free cash flow has no data")

	pe := blocks[1]
	assert.Equal(t, "31.26", pe.Points[0].Value)
	assert.Equal(t, "Decreasing", pe.Direction)
	assert.Equal(t, "trend-down", pe.Class)

	revenue := blocks[3]
	assert.Equal(t, "$100.00", revenue.Points[0].Value)
	assert.Equal(t, "Increasing", revenue.Direction)
	assert.Equal(t, "+50.0%", revenue.Change)

	html, err := Must().Trends(fixture())
	require.NoError(t, err)
	d := doc(t, html)
	assert.Contains(t, d.Find("#fcfTrend").Text(), "No trend data available")
	assert.Contains(t, d.Find("#revenueTrend .trend-summary").Text(), "↑ Increasing (+50.0% over period)")
}

func TestPeers(t *testing.T) {
	html, err := Must().Peers(fixture())
	require.NoError(t, err)
	d := doc(t, html)

	rows := d.Find("tbody tr")
	assert.Equal(t, 3, rows.Length())
	assert.True(t, rows.First().HasClass("highlight"))
	assert.False(t, rows.Eq(1).HasClass("highlight"))

	html, err = Must().Peers(&core.FinancialSnapshot{})
	require.NoError(t, err)
	assert.Contains(t, string(html), "No peer data available")
}

func TestRedFlags(t *testing.T) {
	html, err := Must().RedFlags(fixture())
	require.NoError(t, err)
	d := doc(t, html)
	assert.Equal(t, 1, d.Find(".red-flag-item.medium").Length())

	html, err = Must().RedFlags(&core.FinancialSnapshot{})
	require.NoError(t, err)
	d = doc(t, html)
	assert.Equal(t, 1, d.Find(".no-flags").Length())
	assert.Equal(t, 0, d.Find("table").Length())
}

func TestIndustry(t *testing.T) {
	view := BuildIndustry(fixture())
	require.True(t, view.Available)
	assert.Equal(t, "25.00", view.AvgPERatio)
	assert.Equal(t, "1.60", view.AvgCurrentRatio)
	assert.Equal(t, "Company trades at a premium to peers.", view.Valuation)
	assert.Equal(t, "Liquidity position is weaker than peer average.", view.Liquidity)

	s := fixture()
	s.PeerComparison.Peers = s.PeerComparison.Peers[:1]
	html, err := Must().Industry(s)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Industry peer comparison data not available.")
}

func TestEventsAndTranscripts(t *testing.T) {
	html, err := Must().Events(fixture())
	require.NoError(t, err)
	assert.Equal(t, "Earnings Call", doc(t, html).Find(".event-type").Text())

	html, err = Must().Events(nil)
	require.NoError(t, err)
	assert.Contains(t, string(html), "No upcoming events currently scheduled")

	view := BuildTranscripts(fixture().TranscriptLinks)
	assert.Equal(t, "#", view.Fool)
	assert.Equal(t, "#", BuildTranscripts(nil).Yahoo)
}

func TestNews(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	views := BuildNews(fixture().News, now)
	require.Len(t, views, 2)

	assert.Equal(t, "A", views[0].Initial)
	assert.Equal(t, "2 days ago", views[0].TimeAgo)

	assert.Equal(t, "Financial News Update 2", views[1].Title)
	assert.Equal(t, "Financial News", views[1].Publisher)
	assert.Equal(t, "https://finance.yahoo.com", views[1].Link)
	assert.Equal(t, "Recently", views[1].TimeAgo)

	html, err := Must().News(fixture(), now)
	require.NoError(t, err)
	d := doc(t, html)
	d.Find("a.news-item-large").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		assert.True(t, ok)
		assert.NotEmpty(t, href)
	})
	assert.NotContains(t, string(html), "onclick")
}

func TestNews_UnsafeLinkIsNeutralised(t *testing.T) {
	s := &core.FinancialSnapshot{News: []core.NewsItem{{Title: "x", Link: "javascript:alert(1)"}}}
	html, err := Must().News(s, time.Now())
	require.NoError(t, err)
	assert.NotContains(t, string(html), "javascript:")
}

func TestNews_Empty(t *testing.T) {
	html, err := Must().News(&core.FinancialSnapshot{}, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(html), "No recent news available")
	assert.Contains(t, string(html), "https://www.bloomberg.com")
}

func TestRates(t *testing.T) {
	html, err := Must().Rates(fixture())
	require.NoError(t, err)
	d := doc(t, html)

	assert.Equal(t, 1, d.Find("#treasuryTable").Length())
	assert.Equal(t, 0, d.Find("#centralBankRatesTable").Length(), "empty table is omitted")
	assert.Equal(t, 1, d.Find("#inflationRatesTable").Length())

	assert.Equal(t, 1, d.Find(".change-up").Length())
	assert.Equal(t, 1, d.Find(".change-down").Length())
	assert.Equal(t, "-", d.Find(".change-flat").Text())

	assert.Equal(t, "3.5%", d.Find(".inflation-high").Text())
	assert.Equal(t, "2.8%", d.Find(".inflation-elevated").Text())
	assert.Equal(t, "0.8%", d.Find(".inflation-low").Text())
}

func TestRates_NoData(t *testing.T) {
	html, err := Must().Rates(&core.FinancialSnapshot{})
	require.NoError(t, err)
	assert.Contains(t, string(html), "No interest rate data available.")
}

func TestRenderers_NilSnapshot(t *testing.T) {
	r := Must()
	calls := map[string]func() (template.HTML, error){
		SectionHeader:      func() (template.HTML, error) { return r.Header(nil) },
		SectionOverview:    func() (template.HTML, error) { return r.Overview(nil) },
		SectionRatios:      func() (template.HTML, error) { return r.Ratios(nil, core.CategoryValuation) },
		SectionTrends:      func() (template.HTML, error) { return r.Trends(nil) },
		SectionPeers:       func() (template.HTML, error) { return r.Peers(nil) },
		SectionRedFlags:    func() (template.HTML, error) { return r.RedFlags(nil) },
		SectionIndustry:    func() (template.HTML, error) { return r.Industry(nil) },
		SectionEvents:      func() (template.HTML, error) { return r.Events(nil) },
		SectionTranscripts: func() (template.HTML, error) { return r.Transcripts(nil) },
		SectionNews:        func() (template.HTML, error) { return r.News(nil, time.Now()) },
		SectionRates:       func() (template.HTML, error) { return r.Rates(nil) },
	}

	for name, call := range calls {
		html, err := call()
		assert.NoError(t, err, name)
		assert.NotEmpty(t, html, name)
	}
}
