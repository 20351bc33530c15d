package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultChunkSize, cfg.Chunking.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, cfg.Chunking.ChunkOverlap)
	assert.Equal(t, DefaultTopK, cfg.Retrieval.TopK)
	assert.Equal(t, string(domain.AIProviderOllama), cfg.Embedding.Provider)
	assert.Equal(t, string(domain.DeviceCPU), cfg.Embedding.Device)
	assert.True(t, cfg.LLM.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[chunking]
chunk_size = 500
chunk_overlap = 50

[retrieval]
top_k = 3

[embedding]
provider = "openai"
device = "accelerated"
dimensions = 1536
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Chunking.ChunkSize)
	assert.Equal(t, 50, cfg.Chunking.ChunkOverlap)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "accelerated", cfg.Embedding.Device)
	assert.Equal(t, 1536, cfg.Embedding.Dimensions)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultBatchSize, cfg.Embedding.BatchSize)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "chunk_size = [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoad_ExpandsHome(t *testing.T) {
	path := writeConfig(t, `
[storage]
vectorstore_path = "~/custom/store"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "custom", "store"), cfg.Storage.VectorstorePath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero chunk size", func(c *Config) { c.Chunking.ChunkSize = 0 }},
		{"negative chunk size", func(c *Config) { c.Chunking.ChunkSize = -1 }},
		{"negative overlap", func(c *Config) { c.Chunking.ChunkOverlap = -1 }},
		{"overlap equals chunk size", func(c *Config) { c.Chunking.ChunkOverlap = c.Chunking.ChunkSize }},
		{"overlap exceeds chunk size", func(c *Config) { c.Chunking.ChunkOverlap = c.Chunking.ChunkSize + 1 }},
		{"zero top_k", func(c *Config) { c.Retrieval.TopK = 0 }},
		{"empty vectorstore path", func(c *Config) { c.Storage.VectorstorePath = "" }},
		{"unknown embedding provider", func(c *Config) { c.Embedding.Provider = "aliens" }},
		{"unknown device", func(c *Config) { c.Embedding.Device = "quantum" }},
		{"zero dimensions", func(c *Config) { c.Embedding.Dimensions = 0 }},
		{"zero batch size", func(c *Config) { c.Embedding.BatchSize = 0 }},
		{"unknown llm provider", func(c *Config) { c.LLM.Provider = "aliens" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_LLMDisabledSkipsProviderCheck(t *testing.T) {
	cfg := Default()
	cfg.LLM.Enabled = false
	cfg.LLM.Provider = "whatever"

	assert.NoError(t, cfg.Validate())
}
