package health

import (
	"context"
	"time"
)

// Database modes reported by Status.
const (
	DatabasePostgres    = "postgres"
	DatabaseMemory      = "memory"
	DatabaseUnavailable = "unavailable"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB and the Postgres repository.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Report is the health payload.
type Report struct {
	OK       bool   `json:"ok"`
	Database string `json:"database" enums:"postgres,memory,unavailable"`
	LLM      string `json:"llm"`
	Jobs     string `json:"jobs" enums:"configured,unconfigured"`
}

// Service encapsulates health-related checks.
type Service struct {
	db             Pinger
	dbMode         string
	llm            string
	jobsConfigured bool
}

// NewService constructs a health service. db may be nil when the process runs
// without Postgres; dbMode then says why.
func NewService(db Pinger, dbMode, llmName string, jobsConfigured bool) *Service {
	if dbMode == "" {
		dbMode = DatabaseMemory
	}
	if llmName == "" {
		llmName = "none"
	}
	return &Service{db: db, dbMode: dbMode, llm: llmName, jobsConfigured: jobsConfigured}
}

// Status reports dependency state. Only an unreachable Postgres flips OK to
// false; missing AI or job-search credentials are degraded, not unhealthy.
func (s *Service) Status(ctx context.Context) Report {
	report := Report{OK: true, Database: s.dbMode, LLM: s.llm, Jobs: "unconfigured"}
	if s.jobsConfigured {
		report.Jobs = "configured"
	}

	switch {
	case s.dbMode == DatabaseUnavailable:
		report.OK = false
	case s.db != nil:
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := s.db.Ping(pingCtx); err != nil {
			report.OK = false
			report.Database = DatabaseUnavailable
		}
	}
	return report
}
