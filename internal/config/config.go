package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the client-side settings. The HTTP client carries no timeout
// of its own; the remote service's behavior is inherited as-is.
type Config struct {
	// APIBaseURL is the remote service prefix, e.g. http://localhost:8000/api.
	APIBaseURL string
	// StateDir is where the session entries are persisted.
	StateDir string
	LogLevel slog.Level
}

// StubConfig holds the settings for the development stub server.
type StubConfig struct {
	Port        string
	JWTSecret   string
	Environment string
	LogLevel    slog.Level
}

// Load reads client configuration from the environment, with a .env overlay
// when one is present in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL: getEnv("PORTAL_API_URL", "http://localhost:8000/api"),
		LogLevel:   parseLevel(os.Getenv("PORTAL_LOG_LEVEL")),
	}

	cfg.StateDir = os.Getenv("PORTAL_STATE_DIR")
	if cfg.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state dir: %w", err)
		}
		cfg.StateDir = filepath.Join(base, "student-portal")
	}

	return cfg, nil
}

// LoadStub reads the stub server configuration from the environment.
func LoadStub() (*StubConfig, error) {
	_ = godotenv.Load()

	cfg := &StubConfig{
		Port:        getEnv("PORT", "8000"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-only-secret"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLevel(os.Getenv("PORTAL_LOG_LEVEL")),
	}
	if cfg.Environment == "production" && cfg.JWTSecret == "dev-only-secret" {
		return nil, fmt.Errorf("JWT_SECRET must be set outside development")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
