// Package pdf loads PDF files by shelling out to the poppler pdftotext tool.
package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// CommandRunner executes an external command and returns its stdout.
// It exists so tests can substitute a fake pdftotext.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs real commands.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Loader handles PDF documents via pdftotext.
type Loader struct {
	runner CommandRunner
}

// New creates a new PDF loader using the system pdftotext binary.
func New() *Loader {
	return &Loader{runner: execRunner{}}
}

// NewWithRunner creates a PDF loader with a custom command runner.
func NewWithRunner(runner CommandRunner) *Loader {
	return &Loader{runner: runner}
}

// FileTypes returns the file types this loader handles.
func (l *Loader) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypePDF}
}

// Load extracts text with `pdftotext -layout <file> -`.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrExtraction, path, err)
	}

	out, err := l.runner.Run(ctx, "pdftotext", "-layout", path, "-")
	if err != nil {
		return nil, fmt.Errorf("%w: pdftotext failed for %s: %w\n%s",
			domain.ErrExtraction, path, err, InstallInstructions())
	}

	return &domain.Document{
		SourceFile: filepath.Base(path),
		Path:       path,
		FileType:   domain.FileTypePDF,
		Text:       strings.TrimSpace(string(out)),
	}, nil
}

// InstallInstructions returns guidance for installing pdftotext.
func InstallInstructions() string {
	return `pdftotext is required for PDF ingestion.
Install poppler:
  macOS:  brew install poppler
  Debian: apt install poppler-utils`
}
