package fetch

import (
	"fmt"
	"net/http"
)

// Error is a failed request to an upstream data source. Status is 0 when no
// HTTP response was received.
type Error struct {
	Source string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Source, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the request may succeed: network
// failures, throttling and server errors.
func (e *Error) Retryable() bool {
	return e.Status == 0 || e.Status == http.StatusTooManyRequests || e.Status >= 500
}
