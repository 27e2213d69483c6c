package domain

import "errors"

// Domain errors represent pipeline failures the caller may want to treat
// differently. These are distinct from infrastructure errors.
var (
	// ErrConfiguration indicates a required credential or setting is
	// missing. Raised before any network call is made.
	ErrConfiguration = errors.New("configuration invalid")

	// ErrProviderUnavailable indicates a network or connection failure
	// reaching an embedding or completion backend. Safe to retry with
	// backoff; the wrapped message names the backend and its endpoint.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderResponseInvalid indicates the backend was reachable but
	// returned an unusable payload, or the returned count did not match
	// the request. Not retried; a hard failure for the request.
	ErrProviderResponseInvalid = errors.New("provider response invalid")

	// ErrIndexUnavailable indicates the vector store could not be opened
	// or queried.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrInvalidInput indicates malformed or invalid input, such as an
	// embedding whose dimension does not match the collection.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
