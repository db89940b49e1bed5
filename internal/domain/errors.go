package domain

import "errors"

// Error kinds every boundary failure is converted to before it reaches the
// top level. The transport edge picks the user-facing reply with errors.Is.
var (
	// ErrTranscriptionFailed is fatal to the request: no list is created.
	ErrTranscriptionFailed = errors.New("transcription failed")

	// ErrExtractionFailed is non-fatal: the pipeline degrades to echoing
	// the resolved text.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrStoreUnavailable covers any persistence failure.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidInput marks a user mistake (e.g. a bad delete index),
	// surfaced as a corrective message rather than a generic apology.
	ErrInvalidInput = errors.New("invalid input")
)
