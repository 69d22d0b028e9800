package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-jobmatch/internal/extract/extracttest"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestExtractTextPDF(t *testing.T) {
	path := writeTemp(t, "resume.pdf", extracttest.PDF("Jane Doe", "Skills: Python, React, Docker."))

	text, err := ExtractText(context.Background(), path, PDF)
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Python, React, Docker")

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "extractor must leave the file in place")
}

func TestExtractTextDOCX(t *testing.T) {
	path := writeTemp(t, "resume.docx", extracttest.DOCX("Jane Doe", "Proficient in Go & Kubernetes"))

	text, err := ExtractText(context.Background(), path, DOCX)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nProficient in Go & Kubernetes", text)
}

func TestExtractTextCorruptedFiles(t *testing.T) {
	garbage := []byte("this is not a document at all")

	for _, ft := range []FileType{PDF, DOCX} {
		t.Run(string(ft), func(t *testing.T) {
			path := writeTemp(t, "broken."+string(ft), garbage)

			_, err := ExtractText(context.Background(), path, ft)
			require.Error(t, err)

			var extractErr *ExtractionError
			require.True(t, errors.As(err, &extractErr))
			assert.Equal(t, ft, extractErr.Type)
			assert.Contains(t, err.Error(), "failed to extract text from "+ft.Label())
		})
	}
}

func TestExtractTextDOCXWithoutDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := writeTemp(t, "notes.docx", buf.Bytes())
	_, err = ExtractText(context.Background(), path, DOCX)

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
}

func TestExtractTextUnsupportedType(t *testing.T) {
	path := writeTemp(t, "notes.txt", []byte("plain"))
	_, err := ExtractText(context.Background(), path, FileType("txt"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported file type"))
}

func TestExtractTextHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExtractText(ctx, "/does/not/matter.pdf", PDF)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileTypeFromExt(t *testing.T) {
	cases := map[string]struct {
		want FileType
		ok   bool
	}{
		".pdf":  {PDF, true},
		"PDF":   {PDF, true},
		".DocX": {DOCX, true},
		".doc":  {"", false},
		".txt":  {"", false},
		"":      {"", false},
	}
	for ext, tc := range cases {
		got, ok := FileTypeFromExt(ext)
		assert.Equal(t, tc.ok, ok, ext)
		assert.Equal(t, tc.want, got, ext)
	}
}

func TestStripDocxXMLHandlesBreaksAndTabs(t *testing.T) {
	raw := `<w:document xmlns:w="w"><w:body><w:p><w:r><w:t>Go</w:t><w:tab/><w:t>Rust</w:t><w:br/><w:t>SQL</w:t></w:r></w:p></w:body></w:document>`
	got, err := stripDocxXML(raw)
	require.NoError(t, err)
	assert.Equal(t, "Go\tRust\nSQL", got)
}
