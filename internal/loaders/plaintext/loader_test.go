package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

func TestFileTypes(t *testing.T) {
	assert.Equal(t, []domain.FileType{domain.FileTypeTXT}, New().FileTypes())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world\nsecond line"), 0600))

	doc, err := New().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", doc.SourceFile)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, domain.FileTypeTXT, doc.FileType)
	assert.Equal(t, "hello world\nsecond line", doc.Text)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New().Load(context.Background(), "/nonexistent/file.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}
