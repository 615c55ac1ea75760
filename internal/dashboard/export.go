package dashboard

import (
	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/export"
)

// Year selection presets.
const (
	PresetAll    = "all"
	PresetRecent = "recent"
	PresetNone   = "none"
)

// ExportForm is a snapshot of the export form.
type ExportForm struct {
	Years     []YearOption
	Statement export.StatementType
	Format    export.Format
}

// YearOption is one year checkbox.
type YearOption struct {
	Year    int
	Checked bool
}

// ExportForm returns the current export form state.
func (c *Controller) ExportForm() ExportForm {
	c.mu.Lock()
	defer c.mu.Unlock()

	form := ExportForm{Statement: c.selection.Statement, Format: c.selection.Format}
	for _, y := range c.selection.Available() {
		form.Years = append(form.Years, YearOption{Year: y, Checked: c.selection.Checked(y)})
	}
	return form
}

// ApplyYearPreset runs one of the bulk year helpers.
func (c *Controller) ApplyYearPreset(preset string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch preset {
	case PresetAll:
		c.selection.SelectAll()
	case PresetRecent:
		c.selection.SelectRecent(c.recentSince)
	case PresetNone:
		c.selection.Clear()
	default:
		return core.NewError(core.ErrValidation, "Unknown year selection: "+preset)
	}
	return nil
}

// SetYears replaces the checked years.
func (c *Controller) SetYears(years []int) {
	c.mu.Lock()
	c.selection.SetYears(years)
	c.mu.Unlock()
}

// SetStatement changes the statement type of the financials export.
func (c *Controller) SetStatement(name string) error {
	st, err := export.ParseStatementType(name)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.selection.Statement = st
	c.mu.Unlock()
	return nil
}

// SetFormat changes the file format of both exports.
func (c *Controller) SetFormat(name string) error {
	f, err := export.ParseFormat(name)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.selection.Format = f
	c.mu.Unlock()
	return nil
}

// ExportFinancials builds the statement download for the last fetched
// ticker. A validation failure is also shown as the dashboard error.
func (c *Controller) ExportFinancials() (export.FinancialsRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req, err := export.NewFinancialsRequest(c.state.Ticker, c.selection)
	if err != nil {
		c.state.Error = core.UserMessage(err)
		return export.FinancialsRequest{}, err
	}
	return req, nil
}

// ExportRates builds the interest rates download in format, or in the
// selected format when format is empty. It needs no ticker.
func (c *Controller) ExportRates(format string) (export.RatesRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f := c.selection.Format
	if format != "" {
		f = export.Format(format)
	}
	req, err := export.NewRatesRequest(f)
	if err != nil {
		c.state.Error = core.UserMessage(err)
		return export.RatesRequest{}, err
	}
	return req, nil
}
