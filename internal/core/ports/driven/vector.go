package driven

import (
	"context"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

// VectorIndex persists embedded chunks and serves similarity queries.
// All mutating operations are durable before they return successfully.
type VectorIndex interface {
	// Upsert inserts or replaces vectors keyed by ID. Upserting an
	// existing ID replaces its vector, text and metadata rather than
	// duplicating, which is what makes re-ingestion idempotent.
	Upsert(ctx context.Context, vectors []domain.IndexedVector) error

	// Exists reports whether an entry with the given ID is indexed.
	Exists(ctx context.Context, id string) (bool, error)

	// ContentHash returns the stored content hash for an ID.
	// Fails with domain.ErrNotFound when the ID is not indexed.
	ContentHash(ctx context.Context, id string) (string, error)

	// Query returns at most topK entries ranked by descending cosine
	// similarity to the given vector. Ties are broken by insertion order.
	// An empty index returns an empty slice, never an error.
	// topK <= 0 fails with domain.ErrInvalidConfig.
	Query(ctx context.Context, embedding []float32, topK int) ([]VectorHit, error)

	// Count returns the number of indexed entries.
	Count(ctx context.Context) (int, error)

	// DeleteBySource removes all entries originating from a source file.
	DeleteBySource(ctx context.Context, sourceFile string) error

	// Reset removes all entries.
	Reset(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ID is the matched chunk.
	ID string

	// Text is the chunk content.
	Text string

	// Metadata identifies the chunk's origin.
	Metadata domain.ChunkMetadata

	// Score is the cosine similarity, higher = more similar.
	Score float64
}
