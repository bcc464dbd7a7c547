package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a configuration name has no catalog match.
	ErrNotFound = errors.New("configuration not found in the release catalog")

	// ErrMalformedSource is returned when an expected table or cell is absent.
	ErrMalformedSource = errors.New("release page has an unexpected structure")

	// ErrNetworkFailure wraps every failure of the portal fetch layer.
	ErrNetworkFailure = errors.New("release portal is unreachable")
)

// NoPathError reports that no further upgrade step exists from Reached.
type NoPathError struct {
	Start   string
	Reached string
	Hops    int
}

func (e *NoPathError) Error() string {
	if e.Hops == 0 {
		return fmt.Sprintf("no upgrade step found from version %s", e.Start)
	}
	return fmt.Sprintf(
		"%d upgrades completed up to version %s, no further upgrade step found",
		e.Hops, e.Reached,
	)
}

// TruncatedError reports that the hop bound was exhausted before the target.
type TruncatedError struct {
	Reached string
	Hops    int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf(
		"upgrade path truncated after %d steps at version %s",
		e.Hops, e.Reached,
	)
}
