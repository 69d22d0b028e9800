package resumes

import (
	"context"
	"fmt"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo used in dev and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Resume),
	}
}

// Create stores a copy of the resume.
func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	resume.Skills = append([]string{}, resume.Skills...)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[resume.ID] = resume
	return nil
}

// GetByID returns a copy of the stored resume.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.data[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	resume.Skills = append([]string{}, resume.Skills...)
	return resume, nil
}

// UnavailableRepo stands in for a database that could not be reached at
// startup. Every call fails with ErrStoreUnavailable.
type UnavailableRepo struct {
	Cause error
}

func (r UnavailableRepo) err() error {
	if r.Cause == nil {
		return ErrStoreUnavailable
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, r.Cause)
}

// Create always fails.
func (r UnavailableRepo) Create(context.Context, Resume) error { return r.err() }

// GetByID always fails.
func (r UnavailableRepo) GetByID(context.Context, string) (Resume, error) {
	return Resume{}, r.err()
}

var (
	_ Repo = (*MemoryRepo)(nil)
	_ Repo = UnavailableRepo{}
)
