package loaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

func TestDefaultRegistry_SupportedTypes(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Equal(t, []domain.FileType{
		domain.FileTypeCSV,
		domain.FileTypeDOCX,
		domain.FileTypePDF,
		domain.FileTypeTXT,
		domain.FileTypeXLSX,
	}, r.SupportedTypes())
}

func TestResolve(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name string
		path string
	}{
		{name: "txt", path: "/data/notes.txt"},
		{name: "pdf", path: "report.pdf"},
		{name: "docx", path: "letter.DOCX"},
		{name: "csv", path: "table.csv"},
		{name: "xlsx", path: "sheet.xlsx"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loader, err := r.Resolve(tc.path)
			require.NoError(t, err)
			assert.NotNil(t, loader)
		})
	}
}

func TestResolve_UnknownExtension(t *testing.T) {
	r := NewDefaultRegistry()

	_, err := r.Resolve("image.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestResolve_EmptyRegistry(t *testing.T) {
	r := NewRegistry()

	_, err := r.Resolve("notes.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
