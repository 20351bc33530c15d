// Package memory provides an in-memory VectorIndex for tests and
// ephemeral runs. It mirrors the semantics of the SQLite index: idempotent
// upserts, cosine similarity over normalised vectors, insertion-order
// tie-breaking.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry is one stored vector. Entries keep their slot in the entries slice
// across upserts, preserving insertion order.
type entry struct {
	id          string
	embedding   []float32
	text        string
	contentHash string
	metadata    domain.ChunkMetadata
}

// Index is an in-memory vector index.
type Index struct {
	mu         sync.RWMutex
	dimensions int
	entries    []*entry
	byID       map[string]*entry
}

// NewIndex creates an in-memory index for vectors of the given dimensionality.
func NewIndex(dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %d",
			domain.ErrInvalidConfig, dimensions)
	}
	return &Index{
		dimensions: dimensions,
		byID:       make(map[string]*entry),
	}, nil
}

// Upsert inserts or replaces vectors keyed by ID.
func (x *Index) Upsert(_ context.Context, vectors []domain.IndexedVector) error {
	for _, v := range vectors {
		if len(v.Embedding) != x.dimensions {
			return fmt.Errorf("%w: vector %s has %d dimensions, index expects %d",
				domain.ErrDimensionMismatch, v.ID, len(v.Embedding), x.dimensions)
		}
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	for _, v := range vectors {
		e, ok := x.byID[v.ID]
		if !ok {
			e = &entry{id: v.ID}
			x.byID[v.ID] = e
			x.entries = append(x.entries, e)
		}
		e.embedding = normalise(v.Embedding)
		e.text = v.Text
		e.contentHash = v.ContentHash
		e.metadata = v.Metadata
	}
	return nil
}

// Exists reports whether an entry with the given ID is indexed.
func (x *Index) Exists(_ context.Context, id string) (bool, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, ok := x.byID[id]
	return ok, nil
}

// ContentHash returns the stored content hash for an ID.
func (x *Index) ContentHash(_ context.Context, id string) (string, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	e, ok := x.byID[id]
	if !ok {
		return "", domain.ErrNotFound
	}
	return e.contentHash, nil
}

// Query returns the topK most similar entries in descending score order.
func (x *Index) Query(_ context.Context, embedding []float32, topK int) ([]driven.VectorHit, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive, got %d", domain.ErrInvalidConfig, topK)
	}
	if len(embedding) != x.dimensions {
		return nil, fmt.Errorf("%w: query vector has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, len(embedding), x.dimensions)
	}

	query := normalise(embedding)

	x.mu.RLock()
	defer x.mu.RUnlock()

	hits := make([]driven.VectorHit, 0, len(x.entries))
	for _, e := range x.entries {
		hits = append(hits, driven.VectorHit{
			ID:       e.id,
			Text:     e.text,
			Metadata: e.metadata,
			Score:    dot(e.embedding, query),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if topK < len(hits) {
		hits = hits[:topK]
	}
	return hits, nil
}

// Count returns the number of indexed entries.
func (x *Index) Count(_ context.Context) (int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries), nil
}

// DeleteBySource removes all entries originating from a source file.
func (x *Index) DeleteBySource(_ context.Context, sourceFile string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	kept := x.entries[:0]
	for _, e := range x.entries {
		if e.metadata.SourceFile == sourceFile {
			delete(x.byID, e.id)
			continue
		}
		kept = append(kept, e)
	}
	x.entries = kept
	return nil
}

// Reset removes all entries.
func (x *Index) Reset(_ context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.entries = nil
	x.byID = make(map[string]*entry)
	return nil
}

// Close releases resources. It is a no-op for the in-memory index.
func (x *Index) Close() error {
	return nil
}

func normalise(v []float32) []float32 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)

	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(float64(f) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
