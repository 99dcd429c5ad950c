package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no place matches a query.
	ErrNotFound = errors.New("place not found")

	// ErrNetwork is returned when an upstream service is unreachable or
	// answers with a non-success status.
	ErrNetwork = errors.New("network error")

	// ErrMalformedInput is returned when a render step receives an
	// incomplete observation.
	ErrMalformedInput = errors.New("malformed observation")
)

// NotFoundError carries the original query text for user display.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cannot find city %q", e.Query)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NetworkError describes a failed call to an upstream service.
// StatusCode is zero when the transport itself failed.
type NetworkError struct {
	Op         string
	Subject    string
	StatusCode int
	Status     string
	Err        error
}

func (e *NetworkError) Error() string {
	msg := e.Op
	if e.Subject != "" {
		msg = fmt.Sprintf("%s for %s", msg, e.Subject)
	}
	switch {
	case e.StatusCode != 0 && e.Status != "":
		return fmt.Sprintf("%s: %s", msg, e.Status)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *NetworkError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, e.Err}
}
