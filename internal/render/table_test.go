package render

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/newthinker/treasury/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	text.DisableColors()
	os.Exit(m.Run())
}

func TestWriteTables_AllSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTables(&buf, fixture(), TableOptions{}))
	out := buf.String()

	for _, want := range []string{
		"Apple Inc.",
		"Technology | Consumer Electronics",
		"$189.50",
		"OVERVIEW",
		"$2.95T",
		"RATIOS: VALUATION",
		"P/E Ratio",
		"Lower generally better",
		"TRENDS",
		"↑ Increasing (+50.0%)",
		"PEERS",
		"MSFT",
		"RED FLAGS",
		"MEDIUM",
		"TREASURY YIELDS",
		"INFLATION RATES",
		"elevated",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "CENTRAL BANK RATES")
}

func TestWriteTables_RatioCategory(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTables(&buf, fixture(), TableOptions{
		Category: core.CategoryLiquidity,
		Sections: []string{SectionRatios},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Working Capital (implied)")
	assert.NotContains(t, out, "P/E Ratio")
	assert.NotContains(t, out, "OVERVIEW")
}

func TestWriteTables_EmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTables(&buf, nil, TableOptions{}))

	out := buf.String()
	assert.Contains(t, out, "No data")
	assert.Contains(t, out, "No peer data available")
	assert.Contains(t, out, "No Major Red Flags Detected")
	assert.Contains(t, out, "No interest rate data available.")
}

func TestWriteTables_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := WriteTables(&buf, fixture(), TableOptions{Sections: []string{"charts"}})
	assert.True(t, errors.Is(err, core.ErrValidation))

	err = WriteTables(&buf, fixture(), TableOptions{Category: "momentum", Sections: []string{SectionRatios}})
	assert.True(t, errors.Is(err, core.ErrValidation))
}
