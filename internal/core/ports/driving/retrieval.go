package driving

import (
	"context"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

// RetrievalService answers similarity queries over the indexed corpus.
type RetrievalService interface {
	// Retrieve embeds the query and returns the topK most similar chunks,
	// ranked 1..N by descending similarity. Never mutates the index.
	Retrieve(ctx context.Context, query string, topK int) ([]domain.RetrievalResult, error)

	// Count returns the number of indexed chunks.
	Count(ctx context.Context) (int, error)
}

// AnswerService assembles an LLM answer from retrieved chunks.
type AnswerService interface {
	// Answer retrieves context for the query and generates an answer.
	// When no LLM is configured it fails with domain.ErrLLMUnavailable;
	// callers fall back to showing the retrieved context.
	Answer(ctx context.Context, query string, results []domain.RetrievalResult) (string, error)
}
