package rag

import "errors"

var (
	// ErrInvalidInput is returned when the query is empty.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmbeddingService is returned when the embedding service call fails.
	ErrEmbeddingService = errors.New("embedding service error")
	// ErrStoreUnavailable is returned when the paper store cannot be reached.
	ErrStoreUnavailable = errors.New("paper store unavailable")
	// ErrGenerationService is returned when the generation service call
	// fails. It is never masked as an empty answer: an ungrounded answer
	// must not be presented as a real one.
	ErrGenerationService = errors.New("generation service error")
)
