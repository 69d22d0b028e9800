package resumes

import "context"

// Repo defines persistence operations for resumes. Records are written once
// and never updated.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, id string) (Resume, error)
}
