package driven

import "context"

// LLMService generates text completions for answer assembly.
// This is an optional service - when nil, queries return retrieved
// context without a generated answer.
type LLMService interface {
	// Generate produces a completion for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
