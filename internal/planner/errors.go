package planner

import (
	"errors"
	"fmt"
)

// Failure taxonomy for mission builds. Every build failure wraps exactly one
// of these sentinels, so callers can classify with errors.Is.
var (
	// Degenerate or self-intersecting field, runway, or NFZ geometry.
	ErrInvalidInput = errors.New("invalid input geometry")
	// The external planner cannot produce a coverage path for the inputs.
	ErrCoveragePlanning = errors.New("coverage planning failed")
	// A single swath's mix demand exceeds tank capacity; no feasible
	// segmentation exists.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// No feasible runway-to-swath path avoiding the no-fly zones.
	ErrTransitUnreachable = errors.New("transit unreachable")
)

// BuildError carries the taxonomy kind plus a human-readable diagnostic.
// Builds fail atomically; the diagnostic describes the first fatal condition.
type BuildError struct {
	Kind error
	Msg  string
}

func (e *BuildError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *BuildError) Unwrap() error { return e.Kind }

func invalidf(format string, args ...any) error {
	return &BuildError{Kind: ErrInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func planningf(format string, args ...any) error {
	return &BuildError{Kind: ErrCoveragePlanning, Msg: fmt.Sprintf(format, args...)}
}

func capacityf(format string, args ...any) error {
	return &BuildError{Kind: ErrCapacityExceeded, Msg: fmt.Sprintf(format, args...)}
}

func unreachablef(format string, args ...any) error {
	return &BuildError{Kind: ErrTransitUnreachable, Msg: fmt.Sprintf(format, args...)}
}
