package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/newthinker/treasury/internal/core"
)

// TableSections are the sections WriteTables can print.
var TableSections = []string{
	SectionHeader, SectionOverview, SectionRatios, SectionTrends,
	SectionPeers, SectionRedFlags, SectionRates,
}

// TableOptions selects what WriteTables prints.
type TableOptions struct {
	Category core.Category
	// Sections defaults to TableSections.
	Sections []string
}

// WriteTables prints the terminal view of a snapshot from the same view
// models as the HTML sections.
func WriteTables(w io.Writer, s *core.FinancialSnapshot, opts TableOptions) error {
	if opts.Category == "" {
		opts.Category = core.CategoryValuation
	}
	sections := opts.Sections
	if len(sections) == 0 {
		sections = TableSections
	}

	for _, section := range sections {
		var err error
		switch section {
		case SectionHeader:
			writeHeader(w, BuildHeader(s))
		case SectionOverview:
			writeOverview(w, BuildOverview(s))
		case SectionRatios:
			err = writeRatios(w, s, opts.Category)
		case SectionTrends:
			var trends core.Trends
			if s != nil {
				trends = s.Trends
			}
			writeTrends(w, BuildTrends(trends))
		case SectionPeers:
			var pc *core.PeerComparison
			if s != nil {
				pc = s.PeerComparison
			}
			writePeers(w, BuildPeers(pc))
		case SectionRedFlags:
			var flags []core.RedFlag
			if s != nil {
				flags = s.RedFlags
			}
			writeRedFlags(w, flags)
		case SectionRates:
			var rates *core.InterestRates
			if s != nil {
				rates = s.InterestRates
			}
			writeRates(w, BuildRates(rates))
		default:
			err = core.NewError(core.ErrValidation, "Unknown section: "+section)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func newTable(w io.Writer, title string) table.Writer {
	fmt.Fprintln(w)
	fmt.Fprintln(w, text.Bold.Sprint(strings.ToUpper(title)))

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.SeparateRows = false
	return tw
}

func rightAlign(cols ...int) []table.ColumnConfig {
	cfgs := make([]table.ColumnConfig, 0, len(cols))
	for _, n := range cols {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignRight})
	}
	return cfgs
}

func writeHeader(w io.Writer, v HeaderView) {
	fmt.Fprintf(w, "%s  %s\n", text.Bold.Sprint(v.Name), v.Info)
	change := text.FgGreen
	if v.ChangeClass == "negative" {
		change = text.FgRed
	}
	fmt.Fprintf(w, "%s  %s\n", v.Price, change.Sprint(v.Change))
}

func writeOverview(w io.Writer, metrics []Metric) {
	tw := newTable(w, "Overview")
	tw.AppendHeader(table.Row{"Metric", "Value"})
	for _, m := range metrics {
		tw.AppendRow(table.Row{m.Label, m.Value})
	}
	tw.SetColumnConfigs(rightAlign(2))
	tw.Render()
}

func writeRatios(w io.Writer, s *core.FinancialSnapshot, category core.Category) error {
	view, err := BuildRatios(s, category)
	if err != nil {
		return err
	}

	tw := newTable(w, "Ratios: "+string(view.Category))
	tw.AppendHeader(table.Row{"Ratio", "Value", "Guide"})
	for _, row := range view.Rows {
		label := row.Label
		if row.Implied {
			label += " (implied)"
		}
		tw.AppendRow(table.Row{label, row.Value, row.Hint})
	}
	tw.SetColumnConfigs(rightAlign(2))
	tw.Render()
	return nil
}

func writeTrends(w io.Writer, blocks []TrendBlock) {
	tw := newTable(w, "Trends")
	tw.AppendHeader(table.Row{"Series", "Recent", "Trend"})
	for _, b := range blocks {
		if b.Empty {
			tw.AppendRow(table.Row{b.Label, "-", "no data"})
			continue
		}
		points := make([]string, 0, len(b.Points))
		for _, p := range b.Points {
			points = append(points, p.Date+" "+p.Value)
		}
		color := text.FgGreen
		if b.Class == "trend-down" {
			color = text.FgRed
		}
		tw.AppendRow(table.Row{
			b.Label,
			strings.Join(points, "\n"),
			color.Sprintf("%s %s (%s)", b.Arrow, b.Direction, b.Change),
		})
	}
	tw.Render()
}

func writePeers(w io.Writer, rows []PeerRow) {
	tw := newTable(w, "Peers")
	if len(rows) == 0 {
		fmt.Fprintln(w, "No peer data available")
		return
	}
	tw.AppendHeader(table.Row{"Symbol", "Name", "P/E", "Current", "Market Cap", "D/E"})
	for _, r := range rows {
		symbol := r.Symbol
		if r.Highlight {
			symbol = text.Bold.Sprint(symbol)
		}
		tw.AppendRow(table.Row{symbol, r.Name, r.PERatio, r.CurrentRatio, r.MarketCap, r.DebtToEquity})
	}
	tw.SetColumnConfigs(rightAlign(3, 4, 5, 6))
	tw.Render()
}

func writeRedFlags(w io.Writer, flags []core.RedFlag) {
	tw := newTable(w, "Red Flags")
	if len(flags) == 0 {
		fmt.Fprintln(w, "No Major Red Flags Detected")
		return
	}
	tw.AppendHeader(table.Row{"Severity", "Category", "Message"})
	for _, f := range flags {
		tw.AppendRow(table.Row{strings.ToUpper(f.Severity), f.Category, f.Message})
	}
	tw.Render()
}

func writeRates(w io.Writer, v RatesView) {
	if v.Empty() {
		newTable(w, "Interest Rates")
		fmt.Fprintln(w, "No interest rate data available.")
		return
	}

	if len(v.Treasury) > 0 {
		tw := newTable(w, "Treasury Yields")
		tw.AppendHeader(table.Row{"Maturity", "Yield", "Change"})
		for _, y := range v.Treasury {
			tw.AppendRow(table.Row{y.Maturity, y.Yield, y.Change})
		}
		tw.SetColumnConfigs(rightAlign(2, 3))
		tw.Render()
	}
	if len(v.CentralBank) > 0 {
		tw := newTable(w, "Central Bank Rates")
		tw.AppendHeader(table.Row{"Country", "Central Bank", "Policy Rate", "Last Change"})
		for _, c := range v.CentralBank {
			tw.AppendRow(table.Row{c.Country, c.Bank, c.Rate, c.LastChange})
		}
		tw.SetColumnConfigs(rightAlign(3, 4))
		tw.Render()
	}
	if len(v.Inflation) > 0 {
		tw := newTable(w, "Inflation Rates")
		tw.AppendHeader(table.Row{"Country", "CPI Inflation", "Level", "Last Update"})
		for _, i := range v.Inflation {
			tw.AppendRow(table.Row{i.Country, i.Rate, string(i.Level), i.LastUpdate})
		}
		tw.SetColumnConfigs(rightAlign(2))
		tw.Render()
	}
}
