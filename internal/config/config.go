// Package config loads and validates the IntelliRAG configuration file.
// Configuration lives in a TOML file, defaulting to ~/.intellirag/config.toml;
// every field has a working default so a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

// Default values applied before the file is read.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultTopK         = 5
	DefaultBatchSize    = 32
	DefaultDimensions   = 768
)

// Config is the full configuration surface.
type Config struct {
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Storage   StorageConfig   `toml:"storage"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
}

// ChunkingConfig controls how documents are split.
type ChunkingConfig struct {
	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is how many characters consecutive chunks share.
	ChunkOverlap int `toml:"chunk_overlap"`
}

// RetrievalConfig controls similarity search.
type RetrievalConfig struct {
	// TopK is the number of chunks returned per query.
	TopK int `toml:"top_k"`
}

// StorageConfig controls where the vector index lives.
type StorageConfig struct {
	// VectorstorePath is the directory holding the index database.
	// A leading ~ expands to the user's home directory.
	VectorstorePath string `toml:"vectorstore_path"`
}

// EmbeddingConfig selects and tunes the embedding provider.
type EmbeddingConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`

	// Model overrides the provider's default embedding model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// Device is "cpu" or "accelerated". Only meaningful for local
	// providers; remote providers ignore it.
	Device string `toml:"device"`

	// Dimensions pins the expected embedding dimensionality.
	Dimensions int `toml:"dimensions"`

	// BatchSize is how many chunk texts are embedded per provider call.
	BatchSize int `toml:"batch_size"`

	// RequestsPerSecond and BurstSize bound the request rate to the
	// provider. Zero selects the built-in default.
	RequestsPerSecond float64 `toml:"requests_per_second"`
	BurstSize         int     `toml:"burst_size"`
}

// LLMConfig selects the answer-generation model.
type LLMConfig struct {
	// Enabled turns answer generation on. When false, queries show
	// retrieved context only.
	Enabled bool `toml:"enabled"`

	// Provider is "ollama" (the only supported LLM provider).
	Provider string `toml:"provider"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Chunking: ChunkingConfig{
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
		},
		Retrieval: RetrievalConfig{
			TopK: DefaultTopK,
		},
		Storage: StorageConfig{
			VectorstorePath: "~/.intellirag/vectorstore",
		},
		Embedding: EmbeddingConfig{
			Provider:   string(domain.AIProviderOllama),
			Device:     string(domain.DeviceCPU),
			Dimensions: DefaultDimensions,
			BatchSize:  DefaultBatchSize,
		},
		LLM: LLMConfig{
			Enabled:  true,
			Provider: string(domain.AIProviderOllama),
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".intellirag", "config.toml"), nil
}

// Load reads the config file at path, layering it over defaults and
// validating the result. A missing file yields the defaults. An empty
// path uses DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrInvalidConfig, path, err)
	}

	expanded, err := expandHome(cfg.Storage.VectorstorePath)
	if err != nil {
		return nil, err
	}
	cfg.Storage.VectorstorePath = expanded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on any invalid field, before a single document is
// touched.
func (c *Config) Validate() error {
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive, got %d",
			domain.ErrInvalidConfig, c.Chunking.ChunkSize)
	}
	if c.Chunking.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk_overlap must not be negative, got %d",
			domain.ErrInvalidConfig, c.Chunking.ChunkOverlap)
	}
	if c.Chunking.ChunkOverlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("%w: chunk_overlap (%d) must be smaller than chunk_size (%d)",
			domain.ErrInvalidConfig, c.Chunking.ChunkOverlap, c.Chunking.ChunkSize)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d",
			domain.ErrInvalidConfig, c.Retrieval.TopK)
	}
	if c.Storage.VectorstorePath == "" {
		return fmt.Errorf("%w: vectorstore_path must not be empty", domain.ErrInvalidConfig)
	}
	if !domain.AIProvider(c.Embedding.Provider).IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q",
			domain.ErrInvalidConfig, c.Embedding.Provider)
	}
	if !domain.EmbeddingDevice(c.Embedding.Device).IsValid() {
		return fmt.Errorf("%w: embedding device must be %q or %q, got %q",
			domain.ErrInvalidConfig, domain.DeviceCPU, domain.DeviceAccelerated, c.Embedding.Device)
	}
	if c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %d",
			domain.ErrInvalidConfig, c.Embedding.Dimensions)
	}
	if c.Embedding.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be positive, got %d",
			domain.ErrInvalidConfig, c.Embedding.BatchSize)
	}
	if c.LLM.Enabled && !domain.AIProvider(c.LLM.Provider).IsValid() {
		return fmt.Errorf("%w: unknown llm provider %q",
			domain.ErrInvalidConfig, c.LLM.Provider)
	}
	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
