// Package domain defines domain-level errors for the auction feature.
package domain

import "errors"

var (
	// ErrUpstream indicates the Spices Board site was unreachable or answered
	// with a non-success status. Surfaced as a gateway-style failure so callers
	// can tell an external outage from an internal bug.
	ErrUpstream = errors.New("spices board fetch failed")

	// ErrNoArchiveTable indicates the fetched page contained no table at all.
	ErrNoArchiveTable = errors.New("could not locate archive table on page")
)
