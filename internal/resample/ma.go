package resample

import "stockview/internal/stock"

// MovingAverage returns the trailing average of close prices over the
// window. The first value covers points[0:window], so the result aligns
// with points[window-1:]; fewer points than the window yields nil.
func MovingAverage(points []stock.SeriesPoint, window int) []float64 {
	if window <= 0 || len(points) < window {
		return nil
	}
	out := make([]float64, 0, len(points)-window+1)
	var sum float64
	for i, p := range points {
		sum += p.Close
		if i >= window {
			sum -= points[i-window].Close
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}
