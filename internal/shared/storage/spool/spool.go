// Package spool holds uploaded files on transient local storage for the
// duration of one request.
package spool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Spool writes uploads under a single directory.
type Spool struct {
	dir string
}

// New creates the spool directory if needed.
func New(dir string) (*Spool, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("spool directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("mkdir spool: %w", err)
	}
	return &Spool{dir: dir}, nil
}

// Dir returns the directory uploads are written to.
func (s *Spool) Dir() string {
	return s.dir
}

// File is an upload held on transient storage.
type File struct {
	Path         string
	OriginalName string
	Ext          string
	MimeType     string
	Size         int64

	once      sync.Once
	removeErr error
}

// Save streams r to a new randomly named file. The on-disk name never
// contains caller-supplied text.
func (s *Spool) Save(ctx context.Context, originalName string, r io.Reader) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := SanitizeFileName(originalName)
	ext := strings.ToLower(filepath.Ext(name))

	fullPath := filepath.Join(s.dir, uuid.NewString()+".upload")
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open spool file: %w", err)
	}

	uploaded := &File{Path: fullPath, OriginalName: name, Ext: ext}
	size, mimeType, err := copySniff(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = uploaded.Remove()
		return nil, fmt.Errorf("write spool file: %w", err)
	}

	uploaded.Size = size
	uploaded.MimeType = mimeType
	return uploaded, nil
}

// Remove deletes the file from transient storage. Repeated calls are no-ops
// returning the first result; a file already gone counts as removed.
func (f *File) Remove() error {
	if f == nil {
		return nil
	}
	f.once.Do(func() {
		err := os.Remove(f.Path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			f.removeErr = err
		}
	})
	return f.removeErr
}

func copySniff(w io.Writer, r io.Reader) (int64, string, error) {
	var sniff [512]byte
	n, readErr := io.ReadFull(r, sniff[:])
	if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
		return 0, "", readErr
	}
	mimeType := http.DetectContentType(sniff[:n])

	size := int64(0)
	if n > 0 {
		if _, err := w.Write(sniff[:n]); err != nil {
			return 0, "", err
		}
		size += int64(n)
	}

	written, err := io.Copy(w, r)
	if err != nil {
		return 0, "", err
	}
	return size + written, mimeType, nil
}

// SanitizeFileName reduces a client-supplied name to a bare display name:
// directory parts, path separators and control characters are dropped.
func SanitizeFileName(name string) string {
	s := strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if s == "." || s == ".." {
		return ""
	}
	return s
}
