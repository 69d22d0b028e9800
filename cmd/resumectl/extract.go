package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resume-jobmatch/internal/extract"
	"resume-jobmatch/internal/resumes"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the plain text of a PDF or DOCX resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readResume(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func readResume(ctx context.Context, path string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	fileType, ok := extract.FileTypeFromExt(filepath.Ext(path))
	if !ok {
		return "", fmt.Errorf("%s: %w", path, resumes.ErrInvalidFileType)
	}
	text, err := extract.ExtractText(ctx, path, fileType)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", &extract.ExtractionError{Type: fileType, Cause: resumes.ErrEmptyText}
	}
	return text, nil
}
