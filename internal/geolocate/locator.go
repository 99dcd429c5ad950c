// Package geolocate models the device's one-shot position request.
package geolocate

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("location request timed out")
	ErrUnsupported         = errors.New("geolocation not supported")
)

// Position is a device coordinate pair.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Locator answers a single position request. Implementations should honour
// ctx cancellation.
type Locator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// Locate asks l for the position and bounds the wait by ctx. Any failure is
// classified into one of the package errors.
func Locate(ctx context.Context, l Locator) (Position, error) {
	if l == nil {
		return Position{}, ErrUnsupported
	}

	type result struct {
		pos Position
		err error
	}
	ch := make(chan result, 1)
	go func() {
		pos, err := l.CurrentPosition(ctx)
		ch <- result{pos, err}
	}()

	select {
	case <-ctx.Done():
		return Position{}, ErrTimeout
	case r := <-ch:
		if r.err != nil {
			return Position{}, classify(r.err)
		}
		return r.pos, nil
	}
}

func classify(err error) error {
	switch {
	case errors.Is(err, ErrPermissionDenied),
		errors.Is(err, ErrPositionUnavailable),
		errors.Is(err, ErrTimeout),
		errors.Is(err, ErrUnsupported):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrPositionUnavailable, err)
}

// StaticLocator reports a fixed, configured device position.
type StaticLocator struct {
	Allowed  bool
	Position *Position
}

func (s StaticLocator) CurrentPosition(ctx context.Context) (Position, error) {
	if !s.Allowed {
		return Position{}, ErrPermissionDenied
	}
	if s.Position == nil {
		return Position{}, ErrPositionUnavailable
	}
	if err := ctx.Err(); err != nil {
		return Position{}, ErrTimeout
	}
	return *s.Position, nil
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (Position, error)

func (f LocatorFunc) CurrentPosition(ctx context.Context) (Position, error) {
	return f(ctx)
}
