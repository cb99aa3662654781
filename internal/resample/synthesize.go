package resample

import (
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"stockview/internal/stock"
)

// maxStep bounds each synthetic step to +-3%, roughly the noise of a real
// daily close.
const maxStep = 0.03

// Synthesize generates a plausible stand-in series for when the history call
// failed: a bounded random walk around base (the last known price, or a
// seeded price derived from the symbol when none is known). The result is
// always flagged IsSynthetic; sinks must surface that.
func Synthesize(symbol string, period stock.Period, interval stock.Interval, base float64) stock.Series {
	return synthesize(symbol, period, interval, base, time.Now().UTC(), rand.New(rand.NewSource(time.Now().UnixNano())))
}

func synthesize(symbol string, period stock.Period, interval stock.Interval, base float64, now time.Time, rng *rand.Rand) stock.Series {
	n := period.Points()
	if n == 0 {
		// "max" has no budget; a trading year is enough to look real.
		n = 252
	}
	if base <= 0 {
		base = seededBase(symbol)
	}

	stamps := timestamps(now, n, interval)
	points := make([]stock.SeriesPoint, 0, n)
	price := base
	for i := 0; i < n; i++ {
		open := price
		step := (rng.Float64()*2 - 1) * maxStep
		price = open * (1 + step)
		high := math.Max(open, price) * (1 + rng.Float64()*0.01)
		low := math.Min(open, price) * (1 - rng.Float64()*0.01)
		points = append(points, stock.SeriesPoint{
			Timestamp: stamps[i],
			Open:      round2(open),
			High:      round2(high),
			Low:       round2(low),
			Close:     round2(price),
			Volume:    int64(1_000_000 * (0.5 + rng.Float64())),
		})
	}

	return stock.Series{
		Symbol:      strings.ToUpper(strings.TrimSpace(symbol)),
		Period:      period,
		Interval:    interval,
		Points:      points,
		IsSynthetic: true,
	}
}

// timestamps walks backward from now and returns n bar timestamps in
// ascending order. Daily bars land on weekdays only.
func timestamps(now time.Time, n int, interval stock.Interval) []time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := n - 1; i >= 0; i-- {
		switch interval {
		case stock.IntervalWeekly:
			out[i] = day
			day = day.AddDate(0, 0, -7)
		case stock.IntervalMonthly:
			out[i] = day
			day = day.AddDate(0, -1, 0)
		default:
			for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				day = day.AddDate(0, 0, -1)
			}
			out[i] = day
			day = day.AddDate(0, 0, -1)
		}
	}
	return out
}

// seededBase derives a stable price in the $20-$520 range from the symbol,
// so repeated fallbacks for one ticker stay in the same neighborhood.
func seededBase(symbol string) float64 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToUpper(strings.TrimSpace(symbol))))
	return 20 + float64(h.Sum32()%50_000)/100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
