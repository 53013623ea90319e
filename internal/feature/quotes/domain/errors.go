// Package domain defines domain-level errors for the quotes feature.
package domain

import "errors"

var (
	// ErrMissingAPIKey indicates that no market-data API key is configured.
	// A run aborts before any fetch or insert when this is returned.
	ErrMissingAPIKey = errors.New("alpha vantage API key is not configured")

	// ErrRunInProgress indicates that another run holds the run lock.
	ErrRunInProgress = errors.New("another fetch run is in progress")
)
