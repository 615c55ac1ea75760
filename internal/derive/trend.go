// Package derive computes the values the dashboard shows that are not
// present verbatim in a snapshot.
package derive

import (
	"math"

	"github.com/newthinker/treasury/internal/core"
)

// TrendWindow is how many of the most recent points a trend block shows.
const TrendWindow = 8

// Direction is the overall movement of a series.
type Direction int

const (
	Decreasing Direction = iota
	Increasing
)

func (d Direction) String() string {
	if d == Increasing {
		return "Increasing"
	}
	return "Decreasing"
}

// Trend summarises a chronological series.
type Trend struct {
	Direction Direction
	// ChangePercent is (last-first)/|first|*100 over the whole series.
	// It is 0 when the first value is 0, which does not mean "no change".
	ChangePercent float64
	// Recent is the displayed window of at most TrendWindow points.
	Recent []core.TrendPoint
}

// AnalyzeTrend reports direction and change for series, which must be
// ordered oldest first. It returns false for an empty series.
func AnalyzeTrend(series []core.TrendPoint) (Trend, bool) {
	if len(series) == 0 {
		return Trend{}, false
	}

	first := series[0].Value.Float()
	last := series[len(series)-1].Value.Float()

	t := Trend{Direction: Decreasing}
	if first < last {
		t.Direction = Increasing
	}
	if first != 0 {
		t.ChangePercent = (last - first) / math.Abs(first) * 100
	}

	start := 0
	if len(series) > TrendWindow {
		start = len(series) - TrendWindow
	}
	t.Recent = series[start:]

	return t, true
}
