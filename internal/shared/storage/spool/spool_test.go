package spool

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveWritesRandomNameAndMetadata(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	f, err := s.Save(context.Background(), "../../etc/My Resume.PDF", strings.NewReader("%PDF-1.4 hello"))
	require.NoError(t, err)

	assert.Equal(t, "My Resume.PDF", f.OriginalName)
	assert.Equal(t, ".pdf", f.Ext)
	assert.Equal(t, int64(len("%PDF-1.4 hello")), f.Size)
	assert.Equal(t, "application/pdf", f.MimeType)
	assert.Equal(t, s.Dir(), filepath.Dir(f.Path))
	assert.NotContains(t, filepath.Base(f.Path), "Resume")

	data, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 hello", string(data))
}

func TestRemoveIsIdempotent(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	f, err := s.Save(context.Background(), "cv.docx", bytes.NewReader([]byte("PK")))
	require.NoError(t, err)

	require.NoError(t, f.Remove())
	require.NoError(t, f.Remove())

	_, statErr := os.Stat(f.Path)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))
}

func TestSaveHonoursCancelledContext(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Save(ctx, "cv.pdf", strings.NewReader("x"))
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestSaveRemovesPartialFileOnReadError(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "cv.pdf", failingReader{})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"resume.pdf":          "resume.pdf",
		`C:\Users\me\cv.docx`: "cv.docx",
		"a/b/c.pdf":           "c.pdf",
		"  spaced.pdf  ":      "spaced.pdf",
		"bad\x00name.pdf":     "badname.pdf",
		"..":                  "",
		"my..resume.pdf":      "my..resume.pdf",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFileName(in), "input %q", in)
	}
}
