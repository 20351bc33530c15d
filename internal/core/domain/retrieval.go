package domain

// RetrievalResult is one ranked hit returned for a query.
// Results are ephemeral, produced per query, never persisted.
type RetrievalResult struct {
	// Content is the chunk text.
	Content string

	// Metadata identifies the chunk's origin, for citation.
	Metadata ChunkMetadata

	// Score is the cosine similarity between the query vector and the
	// chunk vector, in [-1, 1]. Higher means more similar. Vectors are
	// L2-normalised before comparison, so the score is a dot product.
	Score float64

	// Rank is the 1-based position within the returned top-k.
	Rank int
}
