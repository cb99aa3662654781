package stock

import "strings"

// Period is a named historical window requested by the caller.
type Period string

const (
	Period1D  Period = "1d"
	Period5D  Period = "5d"
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
	PeriodMax Period = "max"
)

// pointBudget maps each period to the number of provider-native points kept,
// counted in trading days (21 per month, 252 per year). 0 means keep all.
var pointBudget = map[Period]int{
	Period1D:  1,
	Period5D:  5,
	Period1Mo: 21,
	Period3Mo: 63,
	Period6Mo: 126,
	Period1Y:  252,
	Period2Y:  504,
	Period5Y:  1260,
	PeriodMax: 0,
}

// ParsePeriod validates a caller-supplied period string. Anything outside the
// fixed set is rejected before any network call is made.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := pointBudget[p]; !ok {
		return "", Errf(KindInvalidPeriod, "invalid period %q (accepted: 1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, max)", s)
	}
	return p, nil
}

// Points returns the point budget for the period. 0 means unbounded.
func (p Period) Points() int { return pointBudget[p] }

// Interval is the native granularity of the historical points.
type Interval string

const (
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
)

// ParseInterval validates a caller-supplied interval string. The empty string
// defaults to daily.
func ParseInterval(s string) (Interval, error) {
	switch iv := Interval(strings.ToLower(strings.TrimSpace(s))); iv {
	case "":
		return IntervalDaily, nil
	case IntervalDaily, IntervalWeekly, IntervalMonthly:
		return iv, nil
	default:
		return "", Errf(KindInvalidPeriod, "invalid interval %q (accepted: daily, weekly, monthly)", s)
	}
}
