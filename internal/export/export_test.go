package export

import (
	"errors"
	"testing"

	"github.com/newthinker/treasury/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var years = []int{2024, 2023, 2022, 2021, 2020, 2019, 2018}

func TestSelection_Helpers(t *testing.T) {
	sel := NewSelection(years, StatementIncome, FormatXLSX)
	assert.Empty(t, sel.Years())

	sel.SelectAll()
	assert.Len(t, sel.Years(), len(years))

	sel.SelectRecent(RecentSince)
	assert.Equal(t, []string{"2024", "2023", "2022", "2021", "2020"}, sel.Years())

	sel.Clear()
	assert.Empty(t, sel.Years())
}

func TestSelection_SetKeepsDisplayOrder(t *testing.T) {
	sel := NewSelection(years, StatementIncome, FormatXLSX)
	sel.Set(2018, true)
	sel.Set(2023, true)
	sel.Set(1999, true)

	assert.Equal(t, []string{"2023", "2018"}, sel.Years())
	assert.False(t, sel.Checked(1999))

	sel.Set(2023, false)
	assert.Equal(t, []string{"2018"}, sel.Years())
}

func TestNewFinancialsRequest(t *testing.T) {
	sel := NewSelection(years, StatementBalance, FormatCSV)
	sel.SetYears([]int{2022, 2024})

	req, err := NewFinancialsRequest("AAPL", sel)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", req.Ticker)
	assert.Equal(t, StatementBalance, req.Statement)
	assert.Equal(t, []string{"2024", "2022"}, req.Years)
	assert.Equal(t, FormatCSV, req.Format)
}

func TestNewFinancialsRequest_NoTicker(t *testing.T) {
	sel := NewSelection(years, StatementIncome, FormatXLSX)
	sel.SelectAll()

	_, err := NewFinancialsRequest("", sel)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrValidation))
	assert.Equal(t, MsgNoTicker, core.UserMessage(err))
}

func TestNewFinancialsRequest_NoYears(t *testing.T) {
	sel := NewSelection(years, StatementIncome, FormatXLSX)

	_, err := NewFinancialsRequest("AAPL", sel)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrValidation))
	assert.Equal(t, MsgNoYears, core.UserMessage(err))
}

func TestNewFinancialsRequest_BadStatement(t *testing.T) {
	sel := NewSelection(years, StatementType("equity"), FormatXLSX)
	sel.SelectAll()

	_, err := NewFinancialsRequest("AAPL", sel)
	assert.True(t, errors.Is(err, core.ErrValidation))
}

func TestNewRatesRequest(t *testing.T) {
	req, err := NewRatesRequest(FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, req.Format)

	_, err = NewRatesRequest(Format("pdf"))
	assert.True(t, errors.Is(err, core.ErrValidation))
}

func TestParse(t *testing.T) {
	st, err := ParseStatementType("cashflow")
	require.NoError(t, err)
	assert.Equal(t, StatementCashFlow, st)
	_, err = ParseStatementType("equity")
	assert.Error(t, err)

	f, err := ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}
