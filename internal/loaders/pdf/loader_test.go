package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func touchPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paper.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0600))
	return path
}

func TestFileTypes(t *testing.T) {
	assert.Equal(t, []domain.FileType{domain.FileTypePDF}, New().FileTypes())
}

func TestLoad(t *testing.T) {
	path := touchPDF(t)
	loader := NewWithRunner(&mockRunner{output: []byte("  Extracted text.\n")})

	doc, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "paper.pdf", doc.SourceFile)
	assert.Equal(t, domain.FileTypePDF, doc.FileType)
	assert.Equal(t, "Extracted text.", doc.Text)
}

func TestLoad_ToolFailure(t *testing.T) {
	path := touchPDF(t)
	loader := NewWithRunner(&mockRunner{err: errors.New("exit status 1")})

	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
	assert.Contains(t, err.Error(), "pdftotext")
}

func TestLoad_MissingFile(t *testing.T) {
	loader := NewWithRunner(&mockRunner{output: []byte("text")})

	_, err := loader.Load(context.Background(), "/nonexistent/paper.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Loader = (*Loader)(nil)
}
