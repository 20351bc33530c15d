package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driven"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driving"
	"github.com/intellirag/intellirag-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService answers similarity queries: embed the query, search the
// index, attach dense ranks.
type RetrievalService struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(embedder driven.EmbeddingService, index driven.VectorIndex) *RetrievalService {
	return &RetrievalService{
		embedder: embedder,
		index:    index,
	}
}

// Retrieve returns the topK most similar chunks for the query.
// A blank query returns no results without touching the provider.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, topK int) ([]domain.RetrievalResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.RetrievalResult{}, nil
	}
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive, got %d", domain.ErrInvalidConfig, topK)
	}

	logger.Section("Retrieval")
	logger.Debug("Query: %q (top %d)", query, topK)
	defer logger.Elapsed("Retrieval")()

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := s.index.Query(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	results := make([]domain.RetrievalResult, len(hits))
	for i, hit := range hits {
		results[i] = domain.RetrievalResult{
			Content:  hit.Text,
			Metadata: hit.Metadata,
			Score:    hit.Score,
			Rank:     i + 1,
		}
		logger.Debug("  #%d %s (score %.4f)", i+1, hit.Metadata.SourceFile, hit.Score)
	}

	return results, nil
}

// Count returns the number of indexed chunks.
func (s *RetrievalService) Count(ctx context.Context) (int, error) {
	return s.index.Count(ctx)
}
