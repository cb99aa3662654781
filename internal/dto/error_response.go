package dto

import (
	"time"

	"stockview/internal/stock"
)

// ErrorResponse is the JSON error shape. Kind carries the classified error
// so clients can distinguish "symbol not found" from "rate limit, try again
// in a minute" without parsing the message.
type ErrorResponse struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewErrorResponse(err *stock.Error) ErrorResponse {
	return ErrorResponse{
		Kind:      string(err.Kind),
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}
