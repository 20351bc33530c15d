// Package xlsx loads XLSX workbooks by extracting cell text from the
// worksheet XML, resolving shared strings.
package xlsx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles XLSX workbooks.
type Loader struct{}

// New creates a new XLSX loader.
func New() *Loader {
	return &Loader{}
}

// FileTypes returns the file types this loader handles.
func (l *Loader) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeXLSX}
}

// Load opens the XLSX container and renders each worksheet as tab-separated
// rows, sheets separated by blank lines.
func (l *Loader) Load(_ context.Context, path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrExtraction, path, err)
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a valid XLSX container: %w",
			domain.ErrExtraction, path, err)
	}

	shared, err := readSharedStrings(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: extracting %s: %w", domain.ErrExtraction, path, err)
	}

	text, err := extractSheets(reader, shared)
	if err != nil {
		return nil, fmt.Errorf("%w: extracting %s: %w", domain.ErrExtraction, path, err)
	}

	return &domain.Document{
		SourceFile: filepath.Base(path),
		Path:       path,
		FileType:   domain.FileTypeXLSX,
		Text:       text,
	}, nil
}

// sharedStringsXML represents xl/sharedStrings.xml.
type sharedStringsXML struct {
	Items []sharedString `xml:"si"`
}

type sharedString struct {
	Text string      `xml:"t"`
	Runs []stringRun `xml:"r"`
}

type stringRun struct {
	Text string `xml:"t"`
}

// worksheetXML represents an xl/worksheets/sheetN.xml file.
type worksheetXML struct {
	Rows []rowXML `xml:"sheetData>row"`
}

type rowXML struct {
	Cells []cellXML `xml:"c"`
}

type cellXML struct {
	Type  string `xml:"t,attr"`
	Value string `xml:"v"`
	// Inline strings live under is>t rather than v.
	Inline string `xml:"is>t"`
}

// readSharedStrings parses the shared string table, if present.
func readSharedStrings(reader *zip.Reader) ([]string, error) {
	for _, file := range reader.File {
		if file.Name != "xl/sharedStrings.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, err
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}

		var table sharedStringsXML
		if err := xml.Unmarshal(content, &table); err != nil {
			return nil, err
		}

		strs := make([]string, len(table.Items))
		for i, item := range table.Items {
			if item.Text != "" {
				strs[i] = item.Text
				continue
			}
			var b strings.Builder
			for _, r := range item.Runs {
				b.WriteString(r.Text)
			}
			strs[i] = b.String()
		}
		return strs, nil
	}

	// Workbooks without string cells have no shared string table.
	return nil, nil
}

// extractSheets renders all worksheets in name order.
func extractSheets(reader *zip.Reader, shared []string) (string, error) {
	var sheetFiles []*zip.File
	for _, file := range reader.File {
		if strings.HasPrefix(file.Name, "xl/worksheets/") && strings.HasSuffix(file.Name, ".xml") {
			sheetFiles = append(sheetFiles, file)
		}
	}
	sort.Slice(sheetFiles, func(i, j int) bool {
		return sheetFiles[i].Name < sheetFiles[j].Name
	})

	var b strings.Builder
	for i, file := range sheetFiles {
		rc, err := file.Open()
		if err != nil {
			return "", err
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}

		var sheet worksheetXML
		if err := xml.Unmarshal(content, &sheet); err != nil {
			return "", err
		}

		if i > 0 {
			b.WriteString("\n\n")
		}
		writeSheet(&b, &sheet, shared)
	}

	return strings.TrimSpace(b.String()), nil
}

// writeSheet renders one worksheet as tab-separated rows.
func writeSheet(b *strings.Builder, sheet *worksheetXML, shared []string) {
	for i, row := range sheet.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		for j, cell := range row.Cells {
			if j > 0 {
				b.WriteString("\t")
			}
			b.WriteString(cellValue(cell, shared))
		}
	}
}

// cellValue resolves the display value of a cell. Shared string cells
// (t="s") hold an index into the shared string table.
func cellValue(cell cellXML, shared []string) string {
	switch cell.Type {
	case "s":
		idx, err := strconv.Atoi(cell.Value)
		if err != nil || idx < 0 || idx >= len(shared) {
			return ""
		}
		return shared[idx]
	case "inlineStr":
		return cell.Inline
	default:
		return cell.Value
	}
}
