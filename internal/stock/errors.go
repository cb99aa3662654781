package stock

import (
	"errors"
	"fmt"
)

// ErrorKind classifies fetch failures so that rendering sinks can show an
// actionable message instead of a generic one.
type ErrorKind string

const (
	KindInvalidPeriod ErrorKind = "invalid_period"
	KindNotFound      ErrorKind = "not_found"
	KindNetwork       ErrorKind = "network_error"
	KindRateLimited   ErrorKind = "rate_limited"
	KindAuth          ErrorKind = "auth_error"
	KindMalformed     ErrorKind = "malformed_data"
)

// Error is a kind-carrying error. The kind is preserved end to end; callers
// must never collapse it to a generic failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Errf builds a classified error with a formatted message.
func Errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapErr classifies an underlying error, keeping it on the unwrap chain.
func WrapErr(kind ErrorKind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind carried by err, or KindNetwork for errors that
// were never classified (transport-level failures from lower layers).
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNetwork
}
