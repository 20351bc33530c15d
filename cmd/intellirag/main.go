// Command intellirag indexes local documents and answers questions about
// them using retrieval augmented generation.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/intellirag/intellirag-cli/internal/adapters/driven/embedding"
	embollama "github.com/intellirag/intellirag-cli/internal/adapters/driven/embedding/ollama"
	embopenai "github.com/intellirag/intellirag-cli/internal/adapters/driven/embedding/openai"
	llmollama "github.com/intellirag/intellirag-cli/internal/adapters/driven/llm/ollama"
	"github.com/intellirag/intellirag-cli/internal/adapters/driven/vectorstore/sqlite"
	"github.com/intellirag/intellirag-cli/internal/adapters/driving/cli"
	"github.com/intellirag/intellirag-cli/internal/chunker"
	"github.com/intellirag/intellirag-cli/internal/config"
	"github.com/intellirag/intellirag-cli/internal/core/domain"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driven"
	"github.com/intellirag/intellirag-cli/internal/core/services"
	"github.com/intellirag/intellirag-cli/internal/loaders"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	cli.SetVersion(version)
	cli.SetInitializer(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildServices wires adapters to services from the loaded configuration.
func buildServices(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	embedder = embedding.NewRateLimited(embedder, embedding.RateLimitConfig{
		RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
		BurstSize:         cfg.Embedding.BurstSize,
	})

	index, err := sqlite.NewIndex(cfg.Storage.VectorstorePath, cfg.Embedding.Dimensions)
	if err != nil {
		return err
	}

	splitter, err := chunker.New(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap)
	if err != nil {
		return err
	}

	ingest := services.NewIngestService(
		loaders.NewDefaultRegistry(), splitter, embedder, index, cfg.Embedding.BatchSize)
	retrieval := services.NewRetrievalService(embedder, index)

	var llm driven.LLMService
	if cfg.LLM.Enabled {
		llm = llmollama.NewLLMService(llmollama.Config{
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		})
	}
	answer := services.NewAnswerService(llm)

	cli.SetServices(ingest, retrieval, answer, cfg.Retrieval.TopK)
	return nil
}

func buildEmbedder(cfg *config.Config) (driven.EmbeddingService, error) {
	switch domain.AIProvider(cfg.Embedding.Provider) {
	case domain.AIProviderOpenAI:
		return embopenai.NewEmbeddingService(embopenai.Config{
			APIKey:     os.Getenv("OPENAI_API_KEY"),
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
	default:
		return embollama.NewEmbeddingService(embollama.Config{
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Device:     domain.EmbeddingDevice(cfg.Embedding.Device),
		}), nil
	}
}
