package directory

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for directory fetches.
type ErrorCategory string

const (
	// ErrorUnavailable: the request could not be sent or the connection failed.
	ErrorUnavailable ErrorCategory = "unavailable"

	// ErrorTimeout: the directory did not answer in time.
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorUpstreamStatus: the directory answered with a non-2xx status.
	ErrorUpstreamStatus ErrorCategory = "upstream_status"

	// ErrorBadData: the body was not the expected JSON shape.
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorCircuitOpen: the circuit breaker rejected the call without trying.
	ErrorCircuitOpen ErrorCategory = "circuit_open"

	// ErrorCancelled: the caller's context ended before the directory answered.
	// Not counted against the circuit breaker.
	ErrorCancelled ErrorCategory = "cancelled"
)

// FetchError wraps a failed directory fetch with its category.
type FetchError struct {
	Category   ErrorCategory
	StatusCode int
	Underlying error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("directory [%s]: status %d", e.Category, e.StatusCode)
	case e.Underlying != nil:
		return fmt.Sprintf("directory [%s]: %v", e.Category, e.Underlying)
	default:
		return fmt.Sprintf("directory [%s]", e.Category)
	}
}

func (e *FetchError) Unwrap() error { return e.Underlying }

// Category extracts the category of a fetch error, or "" if err is not one.
func Category(err error) ErrorCategory {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Category
	}
	return ""
}
