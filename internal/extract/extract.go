package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// FileType is a document format the extractor understands.
type FileType string

const (
	PDF  FileType = "pdf"
	DOCX FileType = "docx"
)

// Label returns the upper-case name used in user-facing messages.
func (t FileType) Label() string {
	return strings.ToUpper(string(t))
}

// FileTypeFromExt maps a file extension (with or without the dot, any case)
// to a supported FileType.
func FileTypeFromExt(ext string) (FileType, bool) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), ".")) {
	case "pdf":
		return PDF, true
	case "docx":
		return DOCX, true
	default:
		return "", false
	}
}

// ExtractionError reports a file that could not be turned into text.
type ExtractionError struct {
	Type  FileType
	Cause error
}

func (e *ExtractionError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("failed to extract text from %s", e.Type.Label())
	}
	return fmt.Sprintf("failed to extract text from %s: %v", e.Type.Label(), e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ExtractText reads the file at path and returns its plain text. It never
// modifies or removes the file.
// Libraries used: github.com/ledongthuc/pdf (PDF) and github.com/nguyenthenguyen/docx (DOCX).
func ExtractText(ctx context.Context, path string, fileType FileType) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch fileType {
	case PDF:
		text, err = extractPDF(path)
	case DOCX:
		text, err = extractDOCX(path)
	default:
		return "", &ExtractionError{Type: fileType, Cause: fmt.Errorf("unsupported file type %q", string(fileType))}
	}
	if err != nil {
		return "", &ExtractionError{Type: fileType, Cause: err}
	}
	return text, nil
}

// extractPDF recovers from decoder panics, which malformed files can trigger.
func extractPDF(path string) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("corrupt pdf: %v", rec)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	raw := doc.Editable().GetContent()
	if strings.TrimSpace(raw) == "" {
		return "", errors.New("document.xml is empty")
	}
	return stripDocxXML(raw)
}

// stripDocxXML keeps character data and turns paragraph, line-break and tab
// elements into whitespace.
func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
