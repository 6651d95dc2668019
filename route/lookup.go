// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package route

// Provider statuses with defined non-failure semantics. Any other status is
// a lookup failure.
const (
	// StatusOK means the provider returned a path.
	StatusOK = "OK"

	// StatusZeroResults means the provider explicitly found no route.
	// It is an empty result, not an error.
	StatusZeroResults = "ZERO_RESULTS"
)

// StatusError is a failed provider lookup, carrying the provider's status
// code verbatim.
type StatusError struct {
	Status string
}

func (e *StatusError) Error() string {
	return "route: provider lookup failed: " + e.Status
}

// FromLookup classifies a provider directions response. A successful lookup
// returns the decoded route; an explicit zero-results response returns
// (nil, nil); any other status fails with a StatusError.
func FromLookup(status, encodedPath string) (*Route, error) {
	switch status {
	case StatusOK:
		points, err := DecodePolyline(encodedPath)
		if err != nil {
			return nil, err
		}
		return New(points), nil
	case StatusZeroResults:
		return nil, nil
	default:
		return nil, &StatusError{Status: status}
	}
}
