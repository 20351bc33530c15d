package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileTypeFromPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected FileType
		ok       bool
	}{
		{name: "pdf", path: "/data/report.pdf", expected: FileTypePDF, ok: true},
		{name: "uppercase extension", path: "NOTES.TXT", expected: FileTypeTXT, ok: true},
		{name: "docx", path: "letter.docx", expected: FileTypeDOCX, ok: true},
		{name: "csv", path: "table.csv", expected: FileTypeCSV, ok: true},
		{name: "xlsx", path: "sheet.xlsx", expected: FileTypeXLSX, ok: true},
		{name: "unknown", path: "image.png", ok: false},
		{name: "no extension", path: "README", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ft, ok := FileTypeFromPath(tc.path)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, ft)
			}
		})
	}
}

func TestEmbeddingDevice(t *testing.T) {
	assert.True(t, DeviceCPU.IsValid())
	assert.True(t, DeviceAccelerated.IsValid())
	assert.False(t, EmbeddingDevice("tpu").IsValid())
	assert.Equal(t, "Accelerated (GPU)", DeviceAccelerated.Description())
}

func TestAIProvider(t *testing.T) {
	assert.True(t, AIProviderOllama.IsValid())
	assert.True(t, AIProviderOpenAI.IsValid())
	assert.False(t, AIProvider("cohere").IsValid())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.False(t, AIProviderOllama.RequiresAPIKey())
}
