package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"resume-jobmatch/internal/shared/telemetry"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"

	defaultMaxUploadBytes = 10 << 20
)

// Config holds application configuration.
type Config struct {
	Port            string   `validate:"required,numeric"`
	Env             string   `validate:"oneof=dev local staging production"`
	CORSAllowOrigin []string `validate:"min=1,dive,required"`
	DatabaseURL     string
	UploadDir       string `validate:"required"`
	MaxUploadBytes  int64  `validate:"gt=0"`

	LLMProvider  string        `validate:"oneof=gemini openai none"`
	LLMModel     string
	GeminiAPIKey string
	OpenAIAPIKey string
	LLMTimeout   time.Duration `validate:"gt=0"`

	AdzunaAppID          string
	AdzunaAPIKey         string
	AdzunaBaseURL        string        `validate:"required,url"`
	AdzunaCountry        string        `validate:"len=2,alpha"`
	AdzunaResultsPerPage int           `validate:"min=1,max=50"`
	JobsTimeout          time.Duration `validate:"gt=0"`

	AMQPURL      string
	AMQPExchange string `validate:"required"`
}

// Load reads configuration from environment variables with sensible defaults.
// Invalid values are logged and replaced with their defaults.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")

	cfg := Config{
		Port:                 getEnv("PORT", "5000"),
		Env:                  normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:      splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		DatabaseURL:          strings.TrimSpace(os.Getenv("DATABASE_URL")),
		UploadDir:            getEnv("UPLOAD_DIR", filepath.Join(os.TempDir(), "resume-uploads")),
		MaxUploadBytes:       getEnvInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		LLMProvider:          normalizeProvider(getEnv("LLM_PROVIDER", ProviderGemini)),
		LLMModel:             strings.TrimSpace(os.Getenv("LLM_MODEL")),
		GeminiAPIKey:         strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		OpenAIAPIKey:         strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		LLMTimeout:           getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		AdzunaAppID:          strings.TrimSpace(os.Getenv("ADZUNA_APP_ID")),
		AdzunaAPIKey:         strings.TrimSpace(os.Getenv("ADZUNA_API_KEY")),
		AdzunaBaseURL:        getEnv("ADZUNA_BASE_URL", "https://api.adzuna.com/v1/api/jobs"),
		AdzunaCountry:        strings.ToLower(getEnv("ADZUNA_COUNTRY", "in")),
		AdzunaResultsPerPage: int(getEnvInt64("ADZUNA_RESULTS_PER_PAGE", 10)),
		JobsTimeout:          getEnvDuration("JOBS_TIMEOUT", 15*time.Second),
		AMQPURL:              strings.TrimSpace(os.Getenv("AMQP_URL")),
		AMQPExchange:         getEnv("AMQP_EXCHANGE", "resume_events"),
	}

	if cfg.LLMModel == "" {
		cfg.LLMModel = DefaultModel(cfg.LLMProvider)
	}

	return sanitize(cfg)
}

// Defaults returns the configuration used when nothing is set in the environment.
func Defaults() Config {
	return Config{
		Port:                 "5000",
		Env:                  "dev",
		CORSAllowOrigin:      []string{"*"},
		UploadDir:            filepath.Join(os.TempDir(), "resume-uploads"),
		MaxUploadBytes:       defaultMaxUploadBytes,
		LLMProvider:          ProviderGemini,
		LLMModel:             DefaultModel(ProviderGemini),
		LLMTimeout:           30 * time.Second,
		AdzunaBaseURL:        "https://api.adzuna.com/v1/api/jobs",
		AdzunaCountry:        "in",
		AdzunaResultsPerPage: 10,
		JobsTimeout:          15 * time.Second,
		AMQPExchange:         "resume_events",
	}
}

// DefaultModel returns the model used for a provider when LLM_MODEL is unset.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderGemini:
		return "gemini-2.0-flash"
	default:
		return ""
	}
}

// LLMAPIKey returns the credential for the configured provider.
func (c Config) LLMAPIKey() string {
	switch c.LLMProvider {
	case ProviderGemini:
		return c.GeminiAPIKey
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	default:
		return ""
	}
}

// JobsConfigured reports whether both job-search credentials are present.
func (c Config) JobsConfigured() bool {
	return c.AdzunaAppID != "" && c.AdzunaAPIKey != ""
}

// IsDevLike reports whether the environment tolerates in-memory fallbacks.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

var validate = validator.New()

func sanitize(cfg Config) Config {
	err := validate.Struct(cfg)
	if err == nil {
		return cfg
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		telemetry.Error("config.invalid", map[string]any{"error": err})
		return cfg
	}

	defaults := Defaults()
	for _, fe := range verrs {
		telemetry.Warn("config.invalid_value", map[string]any{
			"field": fe.Field(),
			"rule":  fe.Tag(),
			"value": fe.Value(),
		})
		switch fe.StructField() {
		case "Port":
			cfg.Port = defaults.Port
		case "Env":
			cfg.Env = defaults.Env
		case "CORSAllowOrigin":
			cfg.CORSAllowOrigin = defaults.CORSAllowOrigin
		case "UploadDir":
			cfg.UploadDir = defaults.UploadDir
		case "MaxUploadBytes":
			cfg.MaxUploadBytes = defaults.MaxUploadBytes
		case "LLMProvider":
			cfg.LLMProvider = ProviderNone
		case "LLMTimeout":
			cfg.LLMTimeout = defaults.LLMTimeout
		case "AdzunaBaseURL":
			cfg.AdzunaBaseURL = defaults.AdzunaBaseURL
		case "AdzunaCountry":
			cfg.AdzunaCountry = defaults.AdzunaCountry
		case "AdzunaResultsPerPage":
			cfg.AdzunaResultsPerPage = defaults.AdzunaResultsPerPage
		case "JobsTimeout":
			cfg.JobsTimeout = defaults.JobsTimeout
		case "AMQPExchange":
			cfg.AMQPExchange = defaults.AMQPExchange
		}
	}
	return cfg
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "error": err})
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "error": err})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini", "google":
		return ProviderGemini
	case "openai":
		return ProviderOpenAI
	case "none", "off", "disabled":
		return ProviderNone
	default:
		return strings.ToLower(strings.TrimSpace(raw))
	}
}
