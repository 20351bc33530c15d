package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates an invalid configuration combination,
	// such as chunk_overlap >= chunk_size or top_k <= 0.
	// Configuration errors are fatal at pipeline construction time.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedFormat indicates a file extension with no registered loader.
	// Recorded per document during ingestion, never fatal to the batch.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtraction indicates a corrupt or unreadable source file.
	// Recorded per document during ingestion, never fatal to the batch.
	ErrExtraction = errors.New("text extraction failed")

	// ErrEmbedding indicates the embedding provider is unreachable or
	// returned an invalid response. Fatal for the current batch since no
	// chunk can be indexed without it.
	ErrEmbedding = errors.New("embedding failed")

	// ErrDimensionMismatch indicates a vector whose length does not match
	// the dimensionality the index was configured with.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexUnavailable indicates a vector store failure: unreachable
	// storage or a failed write. Fatal and surfaced to the caller; a failed
	// upsert is never reported as success.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrLLMUnavailable indicates no LLM service is configured.
	// Queries still return retrieved context without generation.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
