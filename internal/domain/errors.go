package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrEmptyQuery is returned when the query is empty after sanitization
	ErrEmptyQuery = errors.New("query is required")

	// ErrNoStoresSelected is returned when the request names no stores
	ErrNoStoresSelected = errors.New("at least one store is required")

	// ErrUnknownStore is returned when a store id is not in the directory
	ErrUnknownStore = errors.New("unknown store")

	// ErrUpstreamFailure is returned when an upstream request cannot be completed
	ErrUpstreamFailure = errors.New("upstream request failed")

	// ErrUpstreamStatus is returned when an upstream answers with an error status
	ErrUpstreamStatus = errors.New("upstream returned error status")

	// ErrNoAdapter is returned when a store's adapter kind has no implementation
	ErrNoAdapter = errors.New("no adapter registered for store kind")
)
