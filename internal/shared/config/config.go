package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"agrirevive-backend/internal/shared/telemetry"
)

const (
	defaultLLMURL       = "https://api.groq.com/openai/v1/chat/completions"
	defaultLLMModel     = "llama-3.3-70b-versatile"
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
)

// Config holds application configuration.
type Config struct {
	Port               string
	CORSAllowOrigin    []string
	DatabaseURL        string
	Env                string
	LogLevel           string
	JWTSecret          string
	LLMAPIKey          string
	LLMURL             string
	LLMModel           string
	LLMTimeout         time.Duration
	NominatimURL       string
	NominatimUserAgent string
	FallbackTablePath  string
	LLMRateLimitRPS    float64
	SearchDebounce     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	if err := LoadDotEnv(".env", "cmd/.env"); err != nil {
		telemetry.Warn("config.dotenv_failed", map[string]any{"error": err})
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:        dbURL,
		Env:                env,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		LLMAPIKey:          getEnv("GROQ_API_KEY", ""),
		LLMURL:             getEnv("GROQ_API_URL", defaultLLMURL),
		LLMModel:           getEnv("LLM_MODEL", defaultLLMModel),
		LLMTimeout:         getDuration("LLM_TIMEOUT", 20*time.Second),
		NominatimURL:       getEnv("NOMINATIM_URL", defaultNominatimURL),
		NominatimUserAgent: getEnv("NOMINATIM_USER_AGENT", "agrirevive-backend/1.0"),
		FallbackTablePath:  getEnv("FALLBACK_TABLE", ""),
		LLMRateLimitRPS:    getFloat("RATE_LIMIT_LLM_RPS", 0.5),
		SearchDebounce:     getDuration("SEARCH_DEBOUNCE", 300*time.Millisecond),
	}
}

// IsDevLike reports whether env permits in-memory fallbacks for missing infrastructure.
func IsDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	// plain integers are seconds, matching the older *_SECONDS variables
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "value": raw})
	return def
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		telemetry.Warn("config.invalid_float", map[string]any{"key": key, "value": raw})
		return def
	}
	return v
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
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
