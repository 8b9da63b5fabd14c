package prd

import "errors"

var (
	// ErrConfiguration is returned when no generation credential is configured.
	// It is never absorbed by the fallback generator.
	ErrConfiguration = errors.New("generation endpoint is not configured")
	// ErrTransport is returned when the call to the generation endpoint fails.
	ErrTransport = errors.New("generation endpoint call failed")
	// ErrEmptyResponse is returned when the endpoint answered without any text payload.
	ErrEmptyResponse = errors.New("generation endpoint returned no text")
	// ErrParse is returned when no JSON object could be recovered from the reply.
	ErrParse = errors.New("generation reply could not be parsed")
	// ErrValidation is returned when a parsed document misses required fields.
	ErrValidation = errors.New("generated document is incomplete")
	// ErrSectionExtraction is returned when a regenerated fragment has no
	// recognizable fields for its section. The stored document is left untouched.
	ErrSectionExtraction = errors.New("regenerated section could not be extracted")
	// ErrArchiveUnavailable is returned by archive requests when no object
	// storage is configured.
	ErrArchiveUnavailable = errors.New("object storage is not configured")
	// ErrPersistence wraps failures of the document store.
	ErrPersistence = errors.New("document store operation failed")
	// ErrNotFound is returned when a document does not exist or is not owned by the caller.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput is returned for empty ideas, empty feedback or unknown sections.
	ErrInvalidInput = errors.New("invalid input")
)
