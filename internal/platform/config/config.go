package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	AllowedOrigins    []string
	GeminiAPIKey      string
	GeminiModel       string
	AITimeout         time.Duration
	DBPath            string
	Environment       string
	LogLevel          string
	MaxBodyBytes      int64
	AnalyzeRatePerMin int
	MetricsEnabled    bool
	LedgerFontPath    string
	// TrustProxy keys rate limits on X-Forwarded-For.
	TrustProxy bool
}

// Load reads the process environment. A .env file in the working directory,
// or the one named by envPath, is applied first without overriding variables
// that are already set.
func Load(envPath ...string) (Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	return Config{
		Port:              getEnv("PORT", "8000"),
		AllowedOrigins:    getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AITimeout:         getEnvDuration("AI_TIMEOUT", 30*time.Second),
		DBPath:            getEnv("DB_PATH", "yukyu.db"),
		Environment:       getEnv("APP_ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 10*1024*1024)),
		AnalyzeRatePerMin: getEnvInt("ANALYZE_RATE_LIMIT_PER_MINUTE", 20),
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", true),
		LedgerFontPath:    getEnv("LEDGER_FONT_PATH", ""),
		TrustProxy:        getEnvBool("TRUST_PROXY", false),
	}, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) AIConfigured() bool {
	return strings.TrimSpace(c.GeminiAPIKey) != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	port := strings.TrimPrefix(c.Addr(), ":")
	if idx := strings.LastIndex(port, ":"); idx >= 0 {
		port = port[idx+1:]
	}
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("PORT must be a valid TCP port, got %q", c.Port)
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.AnalyzeRatePerMin < 0 {
		return fmt.Errorf("ANALYZE_RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}
	if c.Environment == "production" {
		for _, origin := range c.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf("ALLOWED_ORIGINS must list explicit origins in production")
			}
		}
	}
	return nil
}
