package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates a malformed token stream or invalid
	// arguments. The run aborts; the input must be fixed, not retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptySelection indicates filtering matched no words.
	// Non-fatal: callers decide whether an empty list is acceptable.
	ErrEmptySelection = errors.New("empty selection")

	// ErrStorageFailure indicates a persistence write failed.
	// The in-memory analysis result stays valid, so the write can be
	// retried without recomputation.
	ErrStorageFailure = errors.New("storage failure")

	// ErrNotImplemented indicates a service dependency is not wired.
	ErrNotImplemented = errors.New("not implemented")

	// Collaborator Errors.

	// ErrSegmenterUnavailable indicates the external segmenter command
	// could not be run.
	ErrSegmenterUnavailable = errors.New("segmenter unavailable")

	// ErrCollectionUnavailable indicates the flashcard collection could
	// not be opened.
	ErrCollectionUnavailable = errors.New("flashcard collection unavailable")

	// ErrMalformedBook indicates an ebook container that could not be
	// parsed into chapters.
	ErrMalformedBook = errors.New("malformed ebook")
)
