package xlsx

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

// writeXLSX builds a minimal XLSX container from the given entries.
func writeXLSX(t *testing.T, files map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "sheet.xlsx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

func TestLoad_SharedStrings(t *testing.T) {
	path := writeXLSX(t, map[string]string{
		"xl/sharedStrings.xml": `<?xml version="1.0"?>
<sst><si><t>name</t></si><si><t>alice</t></si></sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?>
<worksheet><sheetData>
  <row><c t="s"><v>0</v></c><c><v>42</v></c></row>
  <row><c t="s"><v>1</v></c><c><v>30</v></c></row>
</sheetData></worksheet>`,
	})

	doc, err := New().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, domain.FileTypeXLSX, doc.FileType)
	assert.Equal(t, "name\t42\nalice\t30", doc.Text)
}

func TestLoad_InlineStrings(t *testing.T) {
	path := writeXLSX(t, map[string]string{
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?>
<worksheet><sheetData>
  <row><c t="inlineStr"><is><t>hello</t></is></c></row>
</sheetData></worksheet>`,
	})

	doc, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "hello", doc.Text)
}

func TestLoad_MultipleSheets(t *testing.T) {
	path := writeXLSX(t, map[string]string{
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData><row><c><v>1</v></c></row></sheetData></worksheet>`,
		"xl/worksheets/sheet2.xml": `<worksheet><sheetData><row><c><v>2</v></c></row></sheetData></worksheet>`,
	})

	doc, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "1\n\n2", doc.Text)
}

func TestLoad_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))

	_, err := New().Load(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestLoad_OutOfRangeSharedIndex(t *testing.T) {
	path := writeXLSX(t, map[string]string{
		"xl/sharedStrings.xml":     `<sst><si><t>only</t></si></sst>`,
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData><row><c t="s"><v>7</v></c></row></sheetData></worksheet>`,
	})

	doc, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, doc.Text)
}
