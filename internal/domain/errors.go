package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedJSON means the service answered 200 with a body that is not JSON.
	ErrMalformedJSON = errors.New("failed to parse API response")

	// ErrInvalidResponseFormat means the JSON parsed but the text blob at
	// [0].output.message.content[0].text is missing or empty.
	ErrInvalidResponseFormat = errors.New("invalid response format")

	// ErrNoCachedResponse is returned when a cached run is requested but none exists.
	ErrNoCachedResponse = errors.New("no cached response for this file")
)

// HTTPStatusError reports a non-200 answer from the validation service.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("API request failed with status code: %d", e.StatusCode)
}

// NetworkError wraps connection, DNS and timeout failures.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ErrorKind classifies an upstream error for logs, history and API payloads.
func ErrorKind(err error) string {
	var httpErr *HTTPStatusError
	var netErr *NetworkError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &httpErr):
		return "http_status"
	case errors.As(err, &netErr):
		return "network"
	case errors.Is(err, ErrMalformedJSON):
		return "malformed_json"
	case errors.Is(err, ErrInvalidResponseFormat):
		return "invalid_format"
	default:
		return "internal"
	}
}
