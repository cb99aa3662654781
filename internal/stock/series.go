package stock

import "time"

// SeriesPoint is one provider-native OHLCV bar.
type SeriesPoint struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// Series is an ordered historical window for one symbol. Points are strictly
// ascending by timestamp with no duplicates.
//
// IsSynthetic is a first-class field, not an annotation: a sink may not treat
// synthetic and real series identically without checking it.
type Series struct {
	Symbol      string
	Period      Period
	Interval    Interval
	Points      []SeriesPoint
	IsSynthetic bool
}

// Last returns the most recent point, if any.
func (s Series) Last() (SeriesPoint, bool) {
	if len(s.Points) == 0 {
		return SeriesPoint{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Closes returns the close prices in timestamp order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}
