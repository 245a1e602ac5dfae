package ports

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx answer from the remote API. Message holds the
// human-readable text from the error body, if any.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("shop api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("shop api: status %d: %s", e.StatusCode, e.Message)
}

// MessageOr returns the server-provided message carried by err, or fallback
// when there is none.
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
