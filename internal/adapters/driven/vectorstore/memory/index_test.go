package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

func vec(id, source string, embedding []float32) domain.IndexedVector {
	return domain.IndexedVector{
		ID:          id,
		Embedding:   embedding,
		Text:        "text for " + id,
		ContentHash: domain.ContentHash("text for " + id),
		Metadata: domain.ChunkMetadata{
			SourceFile: source,
			FileType:   domain.FileTypeTXT,
		},
	}
}

func TestNewIndex_InvalidDimensions(t *testing.T) {
	_, err := NewIndex(0)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestUpsert_Idempotent(t *testing.T) {
	ctx := context.Background()
	idx, err := NewIndex(2)
	require.NoError(t, err)

	v := vec("c1", "a.txt", []float32{1, 0})
	require.NoError(t, idx.Upsert(ctx, []domain.IndexedVector{v}))
	require.NoError(t, idx.Upsert(ctx, []domain.IndexedVector{v}))

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpsert_PreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	idx, err := NewIndex(2)
	require.NoError(t, err)

	require.NoError(t, idx.Upsert(ctx, []domain.IndexedVector{
		vec("first", "a.txt", []float32{1, 1}),
		vec("second", "a.txt", []float32{1, 1}),
	}))
	// Re-upserting the first entry must not move it behind the second.
	require.NoError(t, idx.Upsert(ctx, []domain.IndexedVector{
		vec("first", "a.txt", []float32{1, 1}),
	}))

	hits, err := idx.Query(ctx, []float32{1, 1}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "first", hits[0].ID)
	assert.Equal(t, "second", hits[1].ID)
}

func TestQuery_Ranking(t *testing.T) {
	ctx := context.Background()
	idx, err := NewIndex(2)
	require.NoError(t, err)

	require.NoError(t, idx.Upsert(ctx, []domain.IndexedVector{
		vec("east", "a.txt", []float32{1, 0}),
		vec("north", "a.txt", []float32{0, 1}),
	}))

	hits, err := idx.Query(ctx, []float32{2, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "east", hits[0].ID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-5)
	assert.InDelta(t, 0.0, hits[1].Score, 1e-5)
}

func TestQuery_EmptyIndex(t *testing.T) {
	idx, err := NewIndex(2)
	require.NoError(t, err)

	hits, err := idx.Query(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestQuery_Validation(t *testing.T) {
	idx, err := NewIndex(2)
	require.NoError(t, err)

	_, err = idx.Query(context.Background(), []float32{1, 0}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = idx.Query(context.Background(), []float32{1, 0, 0}, 5)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestDeleteBySource(t *testing.T) {
	ctx := context.Background()
	idx, err := NewIndex(2)
	require.NoError(t, err)

	require.NoError(t, idx.Upsert(ctx, []domain.IndexedVector{
		vec("a-0", "a.txt", []float32{1, 0}),
		vec("a-1", "a.txt", []float32{0, 1}),
		vec("b-0", "b.txt", []float32{1, 1}),
	}))

	require.NoError(t, idx.DeleteBySource(ctx, "a.txt"))

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	ok, err := idx.Exists(ctx, "b-0")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	idx, err := NewIndex(2)
	require.NoError(t, err)

	require.NoError(t, idx.Upsert(ctx, []domain.IndexedVector{vec("a", "a.txt", []float32{1, 0})}))
	require.NoError(t, idx.Reset(ctx))

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	ok, err := idx.Exists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}
