package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"resume-jobmatch/internal/events"
	"resume-jobmatch/internal/extract"
	"resume-jobmatch/internal/jobs"
	"resume-jobmatch/internal/llm"
	"resume-jobmatch/internal/llm/gemini"
	"resume-jobmatch/internal/llm/openai"
	"resume-jobmatch/internal/resumes"
	"resume-jobmatch/internal/services/health"
	"resume-jobmatch/internal/skills"
	"resume-jobmatch/internal/shared/config"
	"resume-jobmatch/internal/shared/server"
	"resume-jobmatch/internal/shared/storage/db"
	"resume-jobmatch/internal/shared/storage/spool"
	"resume-jobmatch/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	DBMode    string
	Spool     *spool.Spool
	LLM       llm.Completer
	Skills    *skills.Extractor
	Jobs      *jobs.AdzunaClient
	Publisher events.Publisher
	Resumes   *resumes.Service
	Pipeline  *resumes.Pipeline
	Handler   *resumes.Handler
	Health    *health.Service
}

// Build prepares shared dependencies and the router. A missing or unreachable
// database never fails startup: dev-like environments fall back to memory,
// everything else answers uploads with synthetic ids.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	sqlDB, repo, mode := buildStore(ctx, cfg)
	app.DB = sqlDB
	app.DBMode = mode

	sp, err := spool.New(cfg.UploadDir)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	app.Spool = sp

	app.LLM = BuildCompleter(ctx, cfg)
	app.Skills = skills.NewExtractor(app.LLM, cfg.LLMTimeout)
	app.Jobs = BuildJobs(cfg)
	app.Publisher = buildPublisher(cfg)

	app.Resumes = resumes.NewService(repo, app.Publisher)
	app.Pipeline = &resumes.Pipeline{
		Spool:       app.Spool,
		ExtractText: extract.ExtractText,
		Skills:      app.Skills,
		Service:     app.Resumes,
	}
	app.Handler = resumes.NewHandler(app.Pipeline, app.Resumes, app.Jobs, cfg.MaxUploadBytes)

	var pinger health.Pinger
	if pg, ok := repo.(*resumes.PGRepo); ok {
		pinger = pg
	}
	app.Health = health.NewService(pinger, mode, llm.NameOf(app.LLM), app.Jobs.Configured())

	if app.Handler == nil || app.Health == nil {
		app.Close()
		return nil, errors.New("failed to initialize handlers")
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		ResumeHandler: app.Handler,
		Health:        app.Health,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":      cfg.Env,
		"database": mode,
		"llm":      llm.NameOf(app.LLM),
		"jobs":     app.Jobs.Configured(),
	})
	return app, nil
}

// Close releases the database pool and the event connection.
func (a *App) Close() error {
	var errs []error
	if a.Publisher != nil {
		errs = append(errs, a.Publisher.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}

func buildStore(ctx context.Context, cfg config.Config) (*sql.DB, resumes.Repo, string) {
	fallback := func(cause error) (*sql.DB, resumes.Repo, string) {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db_memory", map[string]any{"error": cause})
			return nil, resumes.NewMemoryRepo(), health.DatabaseMemory
		}
		telemetry.Error("bootstrap.db_unavailable", map[string]any{"error": cause})
		return nil, resumes.UnavailableRepo{Cause: cause}, health.DatabaseUnavailable
	}

	if cfg.DatabaseURL == "" {
		return fallback(errors.New("DATABASE_URL is empty"))
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return fallback(err)
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return fallback(fmt.Errorf("run migrations: %w", err))
	}
	return sqlDB, &resumes.PGRepo{DB: sqlDB}, health.DatabasePostgres
}

// BuildCompleter returns the configured model client. Missing credentials or
// a failed construction yield the placeholder, which always routes skill
// extraction to the keyword fallback.
func BuildCompleter(ctx context.Context, cfg config.Config) llm.Completer {
	var (
		client llm.Completer
		err    error
	)
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			err = llm.ErrNotConfigured
			break
		}
		client, err = gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			err = llm.ErrNotConfigured
			break
		}
		client, err = openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	default:
		return llm.PlaceholderClient{}
	}
	if err != nil {
		telemetry.Warn("bootstrap.llm_placeholder", map[string]any{
			"provider": cfg.LLMProvider,
			"error":    err,
		})
		return llm.PlaceholderClient{}
	}
	return client
}

// BuildJobs returns the Adzuna client from configuration.
func BuildJobs(cfg config.Config) *jobs.AdzunaClient {
	return jobs.NewAdzunaClient(jobs.Options{
		AppID:          cfg.AdzunaAppID,
		APIKey:         cfg.AdzunaAPIKey,
		BaseURL:        cfg.AdzunaBaseURL,
		Country:        cfg.AdzunaCountry,
		ResultsPerPage: cfg.AdzunaResultsPerPage,
		Timeout:        cfg.JobsTimeout,
	})
}

func buildPublisher(cfg config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NoopPublisher{}
	}
	pub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		telemetry.Warn("bootstrap.events_disabled", map[string]any{"error": err})
		return events.NoopPublisher{}
	}
	return pub
}
