package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when an authenticated catalog request
	// has no usable token, or the catalog API rejected it.
	ErrNotAuthenticated = errors.New("not authenticated with catalog API")
	// ErrDecode wraps catalog API payloads that could not be decoded.
	ErrDecode = errors.New("decode catalog API response")
	// ErrEmptyResponse is returned when the catalog API answered 2xx with
	// no body for a call that needs a result.
	ErrEmptyResponse = errors.New("empty catalog API response")

	ErrCatalogUnavailable = errors.New("catalog not loaded")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidChoice      = errors.New("invalid choice")
	// ErrSuperseded is returned to a load whose response arrived after a
	// newer load for different collections had started.
	ErrSuperseded = errors.New("catalog load superseded by a newer load")
)

// APIError is a non-2xx answer from the catalog API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog API request failed: status %d: %s", e.Status, e.Message)
}
