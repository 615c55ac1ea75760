package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{`12.5`, 12.5},
		{`null`, 0},
		{`"42.10"`, 42.1},
		{`"3.2%"`, 3.2},
		{`"n/a"`, 0},
		{`-7`, -7},
	}

	for _, tc := range tests {
		var n Number
		require.NoError(t, json.Unmarshal([]byte(tc.input), &n), tc.input)
		assert.Equal(t, tc.want, n.Float(), tc.input)
	}
}

func TestNumber_UnmarshalJSON_Invalid(t *testing.T) {
	var n Number
	assert.Error(t, json.Unmarshal([]byte(`true`), &n))
}

func TestParseLeadingFloat(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"3.2%", 3.2, true},
		{"4.25-4.50%", 4.25, true},
		{" -0.5", -0.5, true},
		{".75", 0.75, true},
		{"1e3x", 1000, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}

	for _, tc := range tests {
		got, ok := ParseLeadingFloat(tc.input)
		assert.Equal(t, tc.wantOK, ok, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}
}

func TestFinancialSnapshot_DecodeSparse(t *testing.T) {
	payload := `{
		"symbol": "AAPL",
		"price": 189.5,
		"peRatio": null,
		"trends": {"revenue": [{"date": "2023", "value": 100}, {"date": "2024", "value": 150}]},
		"peerComparison": {"peers": [{"symbol": "AAPL", "peRatio": 30}]},
		"news": [{"title": "Earnings beat", "time": 1700000000}]
	}`

	var snap FinancialSnapshot
	require.NoError(t, json.Unmarshal([]byte(payload), &snap))

	assert.Equal(t, "AAPL", snap.Symbol)
	assert.Equal(t, 189.5, snap.Price.Float())
	assert.Zero(t, snap.PERatio.Float())
	assert.Len(t, snap.Trends.Revenue, 2)
	assert.Nil(t, snap.Trends.Debt)
	require.NotNil(t, snap.PeerComparison)
	assert.Len(t, snap.PeerComparison.Peers, 1)
	assert.Nil(t, snap.InterestRates)
	assert.Equal(t, 1700000000.0, snap.News[0].Time.Float())
}

func TestFinancialSnapshot_DecodeError(t *testing.T) {
	var snap FinancialSnapshot
	require.NoError(t, json.Unmarshal([]byte(`{"error": "Not found"}`), &snap))
	assert.Equal(t, "Not found", snap.Error)
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("growth")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestParseTab(t *testing.T) {
	got, err := ParseTab("rates")
	require.NoError(t, err)
	assert.Equal(t, TabRates, got)

	_, err = ParseTab("charts")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestCategories_Order(t *testing.T) {
	expected := []string{"valuation", "profitability", "liquidity", "leverage", "efficiency"}
	require.Len(t, Categories, len(expected))
	for i, c := range Categories {
		assert.Equal(t, expected[i], string(c))
	}
}
