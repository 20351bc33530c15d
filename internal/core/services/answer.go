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

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// AnswerService turns retrieved chunks into a prompt and asks the LLM.
type AnswerService struct {
	llm driven.LLMService
}

// NewAnswerService creates a new answer service. llm may be nil, in which
// case Answer fails with domain.ErrLLMUnavailable and callers fall back to
// showing retrieved context directly.
func NewAnswerService(llm driven.LLMService) *AnswerService {
	return &AnswerService{llm: llm}
}

// Answer generates an answer grounded in the retrieved chunks.
func (s *AnswerService) Answer(ctx context.Context, query string, results []domain.RetrievalResult) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	prompt := BuildPrompt(query, results)
	logger.Debug("Prompt: %d chars, %d context chunks", len(prompt), len(results))

	answer, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	return answer, nil
}

// BuildPrompt assembles the grounding prompt: retrieved chunks joined by
// blank lines, then the question.
func BuildPrompt(query string, results []domain.RetrievalResult) string {
	contents := make([]string, len(results))
	for i, r := range results {
		contents[i] = r.Content
	}
	return fmt.Sprintf("Context:\n%s\n\nQuestion: %s\nAnswer:",
		strings.Join(contents, "\n\n"), query)
}
