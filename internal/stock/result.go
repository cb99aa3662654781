package stock

import "errors"

// Status tags the three possible fetch outcomes.
type Status string

const (
	StatusOK      Status = "ok"
	StatusPartial Status = "partial"
	StatusErr     Status = "error"
)

// FetchResult is the tri-state contract every rendering sink branches on:
// StatusOK carries a quote and a real series, StatusPartial carries a quote
// with a synthetic series and a warning, StatusErr carries a classified
// error and nothing renderable.
type FetchResult struct {
	Status  Status
	Quote   *Quote
	Series  *Series
	Warning string
	Err     *Error
}

// OK wraps a fully real quote and series.
func OK(q Quote, s Series) FetchResult {
	return FetchResult{Status: StatusOK, Quote: &q, Series: &s}
}

// Partial wraps a real quote with a synthetic series. The warning must not
// be empty; sinks surface it verbatim.
func Partial(q Quote, s Series, warning string) FetchResult {
	return FetchResult{Status: StatusPartial, Quote: &q, Series: &s, Warning: warning}
}

// Fail wraps a terminal error, classifying it if the lower layers did not.
func Fail(err error) FetchResult {
	var e *Error
	if !errors.As(err, &e) {
		e = WrapErr(KindNetwork, err, "fetch failed")
	}
	return FetchResult{Status: StatusErr, Err: e}
}
