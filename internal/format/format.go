// Package format turns raw metric values into display strings. Every
// function is total: zero, NaN and infinities never panic.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	usd      = money.New(0, money.USD).Currency()
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// Currency formats v as US dollars with thousands separators and exactly
// two fraction digits, e.g. "$1,234.50" or "-$12.00". Zero is "$0.00".
func Currency(v float64) string {
	if v == 0 || !finite(v) {
		return "$0.00"
	}
	rounded := decimal.NewFromFloat(v).Round(int32(usd.Fraction))
	cents := rounded.Shift(int32(usd.Fraction))
	if cents.Abs().Cmp(maxCents) <= 0 {
		return usd.Formatter().Format(cents.IntPart())
	}
	// Beyond int64 minor units go-money would wrap, so group the digits here.
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(int32(usd.Fraction)), ".")
	return sign + usd.Grapheme + group(whole, usd.Thousand) + usd.Decimal + frac
}

func group(digits, sep string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Number formats v with a fixed number of decimals and no separators.
func Number(v float64, decimals int) string {
	return fixed(v, decimals)
}

// Percent formats v (already in percent units) as "12.34%".
func Percent(v float64) string {
	return fixed(v, 2) + "%"
}

// Signed formats v with an explicit "+" for non-negative values.
func Signed(v float64, decimals int) string {
	if v >= 0 {
		return "+" + fixed(v, decimals)
	}
	return fixed(v, decimals)
}

type bucket struct {
	min  float64
	unit string
}

var largeBuckets = []bucket{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// LargeNumber abbreviates a dollar amount by magnitude: "$2.50B",
// "-$3.10M", "-$999.00". Zero is "$0.00B".
func LargeNumber(v float64) string {
	if v == 0 || !finite(v) {
		return "$0.00B"
	}
	sign := ""
	if v < 0 {
		sign = "-"
	}
	abs := math.Abs(v)
	for _, b := range largeBuckets {
		if abs >= b.min {
			return fmt.Sprintf("%s$%s%s", sign, fixed(abs/b.min, 2), b.unit)
		}
	}
	return fmt.Sprintf("%s$%s", sign, fixed(abs, 2))
}

var volumeBuckets = []bucket{
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// Volume abbreviates a share count: "1.50M", "12.00K", "500". Zero is "0".
// Counts below one thousand are shown without decimals.
func Volume(v float64) string {
	if v == 0 || !finite(v) {
		return "0"
	}
	for _, b := range volumeBuckets {
		if v >= b.min {
			return fixed(v/b.min, 2) + b.unit
		}
	}
	return fixed(v, 0)
}

// RelativeTime labels an epoch-seconds timestamp relative to now using
// whole weeks, then days, then hours. Anything newer, missing or in the
// future is "Recently".
func RelativeTime(epoch int64, now time.Time) string {
	if epoch <= 0 {
		return "Recently"
	}
	diff := now.Unix() - epoch
	if diff <= 0 {
		return "Recently"
	}
	switch {
	case diff/604800 > 0:
		return plural(diff/604800, "week")
	case diff/86400 > 0:
		return plural(diff/86400, "day")
	case diff/3600 > 0:
		return plural(diff/3600, "hour")
	}
	return "Recently"
}

func plural(n int64, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss ago", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// fixed rounds the exact binary value of v half away from zero, so 1.005
// (stored just below the tie) gives "1.00". Negative values that round to
// zero keep their sign.
func fixed(v float64, decimals int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if decimals < 0 {
		decimals = 0
	}
	out := decimal.NewFromFloatWithExponent(v, -int32(decimals)).StringFixed(int32(decimals))
	if v < 0 && !strings.HasPrefix(out, "-") {
		out = "-" + out
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
