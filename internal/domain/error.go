package domain

import "errors"

var (
	// ErrNoAnswer is returned by AI adapters when the provider answered with
	// a non-success status or an empty completion. The router substitutes the
	// localized fallback string; nothing retries.
	ErrNoAnswer = errors.New("no answer from model")

	ErrInvalidArgument = errors.New("invalid argument")
)
