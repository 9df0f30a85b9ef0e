package api

import "fmt"

// NetworkError covers transport failures, timeouts and 5xx responses.
// The request may be retried by the caller; nothing is retried
// automatically.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s: server returned status %d", e.Op, e.StatusCode)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is a 4xx rejection. The request is wrong as-is and
// must not be retried unchanged; the server message is surfaced to the
// cashier.
type ValidationError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	}

	return fmt.Sprintf("%s: rejected with status %d", e.Op, e.StatusCode)
}
