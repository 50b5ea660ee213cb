package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"

	"formulator-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string   `env:"PORT" envDefault:"8080"`
	Env             string   `env:"ENV" envDefault:"dev"`
	LogLevel        string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowOrigin []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`

	// The gateway key is read per request; an empty value is reported to
	// callers as a configuration error instead of failing startup.
	GatewayAPIKey  string `env:"AI_GATEWAY_API_KEY"`
	GatewayURL     string `env:"AI_GATEWAY_URL" envDefault:"https://ai.gateway.lovable.dev/v1/chat/completions"`
	Model          string `env:"AI_MODEL" envDefault:"google/gemini-2.5-flash"`
	TimeoutSeconds int    `env:"AI_TIMEOUT_SECONDS" envDefault:"60"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0.5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`

	DatabaseURL        string `env:"DATABASE_URL"`
	JWTSecret          string `env:"JWT_SECRET"`
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`
	UIRedirectURL      string `env:"UI_REDIRECT_URL"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	cfg, err := Parse()
	if err != nil {
		telemetry.Warn("config.parse_failed", map[string]any{"error": err.Error()})
	}
	return cfg
}

// Parse loads local env files (best effort) and parses the environment.
func Parse() (Config, error) {
	loadEnvFiles(".env", "cmd/.env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return normalize(cfg), fmt.Errorf("parse env: %w", err)
	}
	return normalize(cfg), nil
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		// Missing files are expected outside local development.
		_ = godotenv.Load(path)
	}
}

func normalize(cfg Config) Config {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.GatewayAPIKey = strings.TrimSpace(cfg.GatewayAPIKey)
	cfg.CORSAllowOrigin = trimAll(cfg.CORSAllowOrigin)
	if len(cfg.CORSAllowOrigin) == 0 {
		cfg.CORSAllowOrigin = []string{"*"}
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 60
	}
	return cfg
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
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

// IsDevLike reports whether env allows in-memory fallbacks.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}
