// Package resample turns raw provider history into the ordered Series shape
// and synthesizes a stand-in series when real data cannot be fetched.
package resample

import (
	"sort"
	"strconv"
	"strings"

	"stockview/internal/provider"
	"stockview/internal/stock"
)

// Series converts raw bars into an ordered window for the period:
// re-sort ascending (provider order is never trusted), drop duplicate
// timestamps keeping the later bar, then keep the last N provider-native
// points of the period budget. Bars are never re-aggregated; fewer points
// than the budget is fine, padding is not.
func Series(raw provider.RawSeries, period stock.Period, interval stock.Interval) (stock.Series, error) {
	byTime := make(map[int64]stock.SeriesPoint, len(raw.Bars))
	for _, bar := range raw.Bars {
		point, ok := parseBar(bar)
		if !ok {
			continue
		}
		// Later bars overwrite earlier ones at the same timestamp.
		byTime[point.Timestamp.Unix()] = point
	}
	if len(byTime) == 0 {
		return stock.Series{}, stock.Errf(stock.KindMalformed, "no usable historical points for %q", raw.Symbol)
	}

	points := make([]stock.SeriesPoint, 0, len(byTime))
	for _, p := range byTime {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	if n := period.Points(); n > 0 && len(points) > n {
		points = points[len(points)-n:]
	}

	return stock.Series{
		Symbol:   strings.ToUpper(strings.TrimSpace(raw.Symbol)),
		Period:   period,
		Interval: interval,
		Points:   points,
	}, nil
}

// parseBar accepts a bar if at least the close parses; open/high/low fall
// back to the close so partially filled bars still chart.
func parseBar(bar provider.RawBar) (stock.SeriesPoint, bool) {
	if bar.Timestamp.IsZero() {
		return stock.SeriesPoint{}, false
	}
	closePx, err := strconv.ParseFloat(strings.TrimSpace(bar.Close), 64)
	if err != nil {
		return stock.SeriesPoint{}, false
	}
	point := stock.SeriesPoint{
		Timestamp: bar.Timestamp.UTC(),
		Open:      numOr(bar.Open, closePx),
		High:      numOr(bar.High, closePx),
		Low:       numOr(bar.Low, closePx),
		Close:     closePx,
	}
	point.Volume, _ = strconv.ParseInt(strings.TrimSpace(bar.Volume), 10, 64)
	return point, true
}

func numOr(value string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return v
}
