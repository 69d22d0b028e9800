package resumes

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-jobmatch/internal/events"
	"resume-jobmatch/internal/shared/metrics"
	"resume-jobmatch/internal/shared/telemetry"
)

// SyntheticIDPrefix marks identifiers handed out when persistence failed.
const SyntheticIDPrefix = "local-"

const publishTimeout = 5 * time.Second

// DB status values reported to clients.
const (
	DBStatusSuccess = "success"
	DBStatusFailed  = "failed"
)

// PersistOutcome is either Persisted(ID) or Degraded(synthetic ID, Err).
type PersistOutcome struct {
	ID        string
	Persisted bool
	Err       error
}

// DBStatus renders the outcome for the upload response.
func (o PersistOutcome) DBStatus() string {
	if o.Persisted {
		return DBStatusSuccess
	}
	return DBStatusFailed
}

// IsSyntheticID reports whether id was issued without a stored record.
func IsSyntheticID(id string) bool {
	return strings.HasPrefix(id, SyntheticIDPrefix)
}

// SyntheticID builds a local identifier from the current time.
func SyntheticID(now time.Time) string {
	return SyntheticIDPrefix + strconv.FormatInt(now.UnixMilli(), 10)
}

// Service coordinates resume persistence and lookup.
type Service struct {
	Repo      Repo
	Publisher events.Publisher

	now   func() time.Time
	newID func() string
}

// NewService constructs a Service. A nil publisher drops events.
func NewService(repo Repo, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{
		Repo:      repo,
		Publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Save persists a new resume. It never fails: a store error yields a degraded
// outcome carrying a synthetic identifier.
func (s *Service) Save(ctx context.Context, skills []string, fileName string) PersistOutcome {
	now := s.now()
	resume := Resume{
		ID:         s.newID(),
		Skills:     append([]string{}, skills...),
		FileName:   fileName,
		UploadedAt: now,
	}

	if err := s.Repo.Create(ctx, resume); err != nil {
		outcome := PersistOutcome{ID: SyntheticID(now), Err: err}
		metrics.IncPersistDegraded()
		telemetry.Warn("resumes.persist_degraded", map[string]any{
			"resume_id": outcome.ID,
			"error":     err,
		})
		return outcome
	}

	s.publish(ctx, resume)
	return PersistOutcome{ID: resume.ID, Persisted: true}
}

func (s *Service) publish(ctx context.Context, resume Resume) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := s.Publisher.PublishResumeProcessed(pubCtx, events.ResumeProcessed{
		ResumeID:   resume.ID,
		FileName:   resume.FileName,
		Skills:     resume.Skills,
		UploadedAt: resume.UploadedAt,
	})
	if err != nil {
		metrics.IncEventsPublishFailed()
		telemetry.Warn("events.publish_failed", map[string]any{
			"resume_id": resume.ID,
			"error":     err,
		})
	}
}

// FindByID loads a stored resume. Synthetic and malformed identifiers are
// reported as ErrNotFound without touching the store.
func (s *Service) FindByID(ctx context.Context, id string) (Resume, error) {
	id = strings.TrimSpace(id)
	if id == "" || IsSyntheticID(id) {
		return Resume{}, ErrNotFound
	}
	if _, err := uuid.Parse(id); err != nil {
		return Resume{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// ParseSkillsParam splits a comma-separated list, trimming entries and
// dropping empties.
func ParseSkillsParam(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ResolveJobSkills picks the skills to search jobs with: those stored for id
// when it resolves, otherwise the caller-supplied fallback. An id that is not a
// well-formed UUID is treated like an unknown record, so without fallback
// skills it yields ErrUnresolvable (404), not a validation error.
func (s *Service) ResolveJobSkills(ctx context.Context, id string, fallback []string) ([]string, error) {
	id = strings.TrimSpace(id)

	var skills []string
	switch {
	case id == "" || id == "undefined" || id == "null":
		if len(fallback) == 0 {
			return nil, ErrNoResumeID
		}
		skills = fallback
	case IsSyntheticID(id):
		if len(fallback) == 0 {
			return nil, ErrNoSkillsAvailable
		}
		skills = fallback
	default:
		resume, err := s.FindByID(ctx, id)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				telemetry.Warn("resumes.lookup_failed", map[string]any{
					"resume_id": id,
					"error":     err,
				})
			}
			if len(fallback) == 0 {
				return nil, ErrUnresolvable
			}
			skills = fallback
		} else {
			skills = resume.Skills
		}
	}

	if len(skills) == 0 {
		return nil, ErrNoSkillsToMatch
	}
	return skills, nil
}
