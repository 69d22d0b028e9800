package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume row.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    skills,
    file_name,
    upload_date
) VALUES ($1, $2, $3, $4)`

	skills := resume.Skills
	if skills == nil {
		skills = []string{}
	}
	var fileName sql.NullString
	if resume.FileName != "" {
		fileName = sql.NullString{String: resume.FileName, Valid: true}
	}

	if _, err := r.DB.ExecContext(ctx, query, resume.ID, pq.Array(skills), fileName, resume.UploadedAt); err != nil {
		return fmt.Errorf("%w: insert resume: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// GetByID fetches a resume by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	const query = `
SELECT id, skills, file_name, upload_date
FROM resumes
WHERE id = $1
LIMIT 1`

	var resume Resume
	var skills []string
	var fileName sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&resume.ID,
		pq.Array(&skills),
		&fileName,
		&resume.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, fmt.Errorf("%w: select resume: %v", ErrStoreUnavailable, err)
	}
	if skills == nil {
		skills = []string{}
	}
	resume.Skills = skills
	if fileName.Valid {
		resume.FileName = fileName.String
	}
	return resume, nil
}

// Ping reports whether the database answers.
func (r *PGRepo) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

var _ Repo = (*PGRepo)(nil)
