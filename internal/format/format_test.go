package format

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{189.456, "$189.46"},
		{-12, "-$12.00"},
		{1234567.891, "$1,234,567.89"},
		{0.5, "$0.50"},
		{math.NaN(), "$0.00"},
		{1e17, "$100,000,000,000,000,000.00"},
		{-1e17, "-$100,000,000,000,000,000.00"},
		{123456789012345678, "$123,456,789,012,345,680.00"},
		{1e15, "$1,000,000,000,000,000.00"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Currency(tc.in), "Currency(%v)", tc.in)
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "0.00", Number(0, 2))
	assert.Equal(t, "28.57", Number(28.5678, 2))
	assert.Equal(t, "1234567.00", Number(1234567, 2))
	assert.Equal(t, "50.0", Number(50, 1))
	assert.Equal(t, "-3.1", Number(-3.14, 1))
	assert.Equal(t, "NaN", Number(math.NaN(), 2))
	assert.Equal(t, "Infinity", Number(math.Inf(1), 2))
}

func TestFixed_RoundsStoredValue(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"below tie", Number(1.005, 2), "1.00"},
		{"below tie again", Number(2.675, 2), "2.67"},
		{"exact tie", Number(0.125, 2), "0.13"},
		{"negative tie", Number(-0.125, 2), "-0.13"},
		{"negative to zero", Number(-0.001, 2), "-0.00"},
		{"negative zero", Number(math.Copysign(0, -1), 2), "0.00"},
		{"percent", Percent(2.675), "2.67%"},
		{"large", LargeNumber(1_005_000_000), "$1.00B"},
		{"above tie", LargeNumber(12_345), "$12.35K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0.00%", Percent(0))
	assert.Equal(t, "45.03%", Percent(45.031))
	assert.Equal(t, "-2.50%", Percent(-2.5))
}

func TestSigned(t *testing.T) {
	assert.Equal(t, "+1.23", Signed(1.234, 2))
	assert.Equal(t, "+0.00", Signed(0, 2))
	assert.Equal(t, "-0.45", Signed(-0.45, 2))
}

func TestLargeNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00B"},
		{2_500_000_000, "$2.50B"},
		{-999, "-$999.00"},
		{3_000_000_000_000, "$3.00T"},
		{-3_100_000, "-$3.10M"},
		{12_345, "$12.35K"},
		{999.994, "$999.99"},
		{1_000, "$1.00K"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, LargeNumber(tc.in), "LargeNumber(%v)", tc.in)
	}
}

func TestVolume(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1_500_000, "1.50M"},
		{500, "500"},
		{12_000, "12.00K"},
		{2_000_000_000, "2.00B"},
		{999.6, "1000"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Volume(tc.in), "Volume(%v)", tc.in)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tests := []struct {
		name  string
		epoch int64
		want  string
	}{
		{"missing", 0, "Recently"},
		{"minutes", now.Unix() - 600, "Recently"},
		{"one hour", now.Unix() - 3600, "1 hour ago"},
		{"hours", now.Unix() - 5*3600, "5 hours ago"},
		{"one day", now.Unix() - 86400 - 10, "1 day ago"},
		{"days", now.Unix() - 3*86400, "3 days ago"},
		{"one week", now.Unix() - 604800, "1 week ago"},
		{"weeks", now.Unix() - 3*604800, "3 weeks ago"},
		{"future", now.Unix() + 3600, "Recently"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RelativeTime(tc.epoch, now))
		})
	}
}
