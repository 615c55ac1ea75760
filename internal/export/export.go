// Package export validates download selections and builds the requests
// sent to the backend's download endpoints.
package export

import (
	"errors"
	"slices"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/newthinker/treasury/internal/core"
)

// StatementType selects the financial statement to download.
type StatementType string

const (
	StatementIncome   StatementType = "income"
	StatementBalance  StatementType = "balance"
	StatementCashFlow StatementType = "cashflow"
)

// StatementTypes lists the selectable statements.
var StatementTypes = []StatementType{StatementIncome, StatementBalance, StatementCashFlow}

// Format is the downloaded file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Formats lists the selectable formats.
var Formats = []Format{FormatXLSX, FormatCSV}

// RecentSince is the first year selected by the "recent" helper.
const RecentSince = 2020

// Validation messages shown to the user.
const (
	MsgNoTicker = "Please search for a company first"
	MsgNoYears  = "Please select at least one year"
)

// Selection is the export form state. It is only changed by explicit
// user actions, never by a fetch.
type Selection struct {
	Statement StatementType
	Format    Format
	available []int
	checked   map[int]bool
}

// NewSelection creates a selection over the available years, listed in
// display order, with no year checked.
func NewSelection(years []int, statement StatementType, format Format) *Selection {
	return &Selection{
		Statement: statement,
		Format:    format,
		available: slices.Clone(years),
		checked:   make(map[int]bool),
	}
}

// Available returns the selectable years in display order.
func (s *Selection) Available() []int {
	return slices.Clone(s.available)
}

// Checked reports whether year is selected.
func (s *Selection) Checked(year int) bool {
	return s.checked[year]
}

// Set checks or unchecks a single year. Unknown years are ignored.
func (s *Selection) Set(year int, on bool) {
	if !slices.Contains(s.available, year) {
		return
	}
	if on {
		s.checked[year] = true
	} else {
		delete(s.checked, year)
	}
}

// SetYears replaces the checked set.
func (s *Selection) SetYears(years []int) {
	s.checked = make(map[int]bool, len(years))
	for _, y := range years {
		s.Set(y, true)
	}
}

// SelectAll checks every available year.
func (s *Selection) SelectAll() {
	s.SetYears(s.available)
}

// SelectRecent checks exactly the years from since onwards.
func (s *Selection) SelectRecent(since int) {
	s.checked = make(map[int]bool)
	for _, y := range s.available {
		if y >= since {
			s.checked[y] = true
		}
	}
}

// Clear unchecks every year.
func (s *Selection) Clear() {
	s.checked = make(map[int]bool)
}

// Years returns the checked years in display order.
func (s *Selection) Years() []string {
	var years []string
	for _, y := range s.available {
		if s.checked[y] {
			years = append(years, strconv.Itoa(y))
		}
	}
	return years
}

// FinancialsRequest is a validated statement download.
type FinancialsRequest struct {
	Ticker    string        `validate:"required"`
	Statement StatementType `validate:"oneof=income balance cashflow"`
	Years     []string      `validate:"min=1,dive,numeric,len=4"`
	Format    Format        `validate:"oneof=xlsx csv"`
}

// RatesRequest is a validated interest rates download.
type RatesRequest struct {
	Format Format `validate:"oneof=xlsx csv"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewFinancialsRequest checks that a ticker has been fetched and at least
// one year is selected. Failures are validation errors carrying the
// message to show; nothing should be downloaded.
func NewFinancialsRequest(ticker string, sel *Selection) (FinancialsRequest, error) {
	if ticker == "" {
		return FinancialsRequest{}, core.NewError(core.ErrValidation, MsgNoTicker)
	}
	if sel == nil || len(sel.Years()) == 0 {
		return FinancialsRequest{}, core.NewError(core.ErrValidation, MsgNoYears)
	}

	req := FinancialsRequest{
		Ticker:    ticker,
		Statement: sel.Statement,
		Years:     sel.Years(),
		Format:    sel.Format,
	}
	if err := validate.Struct(req); err != nil {
		return FinancialsRequest{}, validationError(err)
	}
	return req, nil
}

// NewRatesRequest validates a rates download. It does not depend on any
// fetched ticker.
func NewRatesRequest(format Format) (RatesRequest, error) {
	req := RatesRequest{Format: format}
	if err := validate.Struct(req); err != nil {
		return RatesRequest{}, validationError(err)
	}
	return req, nil
}

// ParseStatementType validates a statement type.
func ParseStatementType(s string) (StatementType, error) {
	t := StatementType(s)
	if !slices.Contains(StatementTypes, t) {
		return "", core.NewError(core.ErrValidation, "Unknown statement type: "+s)
	}
	return t, nil
}

// ParseFormat validates a file format.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !slices.Contains(Formats, f) {
		return "", core.NewError(core.ErrValidation, "Unknown file format: "+s)
	}
	return f, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return core.NewError(core.ErrValidation, "Invalid "+fe.Field()+": "+fe.Tag())
	}
	return core.WrapError(core.ErrValidation, err)
}
