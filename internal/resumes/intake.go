package resumes

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"resume-jobmatch/internal/extract"
	"resume-jobmatch/internal/shared/metrics"
	"resume-jobmatch/internal/shared/storage/spool"
	"resume-jobmatch/internal/shared/telemetry"
)

// Stage is the furthest point an upload reached.
type Stage string

const (
	StageReceived        Stage = "received"
	StageValidated       Stage = "validated"
	StageTextExtracted   Stage = "text_extracted"
	StageSkillsExtracted Stage = "skills_extracted"
	StagePersisted       Stage = "persisted"
	StageResponded       Stage = "responded"
	StageFailed          Stage = "failed"
)

// TextExtractor turns a stored document into plain text.
type TextExtractor func(ctx context.Context, path string, fileType extract.FileType) (string, error)

// SkillExtractor never fails; an empty slice is a valid answer.
type SkillExtractor interface {
	Extract(ctx context.Context, text string) []string
}

// Pipeline runs one upload from receipt to persistence.
type Pipeline struct {
	Spool       *spool.Spool
	ExtractText TextExtractor
	Skills      SkillExtractor
	Service     *Service
}

// Intake is the result of a pipeline run. Stage and FileName are set even
// when Run fails; FailedAt then holds the last stage that completed.
type Intake struct {
	Stage    Stage
	FailedAt Stage
	FileName string
	FileType extract.FileType
	Skills   []string
	Persist  PersistOutcome
}

// Run spools body, validates its extension, extracts text and skills, and
// saves the result. The spooled file is removed on every return path.
//
// Errors are ErrInvalidFileType, *extract.ExtractionError, or an unexpected
// infrastructure error.
func (p *Pipeline) Run(ctx context.Context, fileName string, body io.Reader) (in Intake, err error) {
	start := time.Now()
	metrics.IncUploads()
	in = Intake{Stage: StageReceived, FileName: spool.SanitizeFileName(fileName)}
	defer func() {
		if err != nil {
			in.FailedAt = in.Stage
			in.Stage = StageFailed
			metrics.IncUploadsFailed()
			telemetry.Warn("resumes.intake_failed", map[string]any{
				"failed_at": string(in.FailedAt),
				"file_name": in.FileName,
				"error":     err,
			})
		}
		metrics.ObserveIntakeDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	file, err := p.Spool.Save(ctx, fileName, body)
	if err != nil {
		return in, fmt.Errorf("spool upload: %w", err)
	}
	defer func() {
		if rmErr := file.Remove(); rmErr != nil {
			telemetry.Error("resumes.cleanup_failed", map[string]any{
				"path":  file.Path,
				"error": rmErr,
			})
		}
	}()

	fileType, ok := extract.FileTypeFromExt(file.Ext)
	if !ok {
		return in, ErrInvalidFileType
	}
	in.FileType = fileType
	in.Stage = StageValidated

	text, err := p.ExtractText(ctx, file.Path, fileType)
	if err != nil {
		return in, err
	}
	if strings.TrimSpace(text) == "" {
		return in, &extract.ExtractionError{Type: fileType, Cause: ErrEmptyText}
	}
	in.Stage = StageTextExtracted

	in.Skills = p.Skills.Extract(ctx, text)
	if in.Skills == nil {
		in.Skills = []string{}
	}
	in.Stage = StageSkillsExtracted

	in.Persist = p.Service.Save(ctx, in.Skills, in.FileName)
	in.Stage = StagePersisted

	telemetry.Info("resumes.intake", map[string]any{
		"resume_id":  in.Persist.ID,
		"file_type":  string(fileType),
		"size_bytes": file.Size,
		"mime_type":  file.MimeType,
		"skills":     len(in.Skills),
		"db_status":  in.Persist.DBStatus(),
	})
	return in, nil
}
