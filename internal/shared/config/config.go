package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port                string
	Env                 string
	CORSAllowOrigin     []string
	LogLevel            string
	LLMProvider         string
	LLMModel            string
	GeminiAPIKey        string
	LLMTimeout          time.Duration
	UpstreamTimeout     time.Duration
	DatabaseURL         string
	CacheSQLitePath     string
	CacheTTL            time.Duration
	OpenMeteoURL        string
	OpenMeteoArchiveURL string
	OpenElevationURL    string
	NominatimURL        string
	UserAgent           string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	provider := normalizeProvider(getEnv("LLM_PROVIDER", "gemini"))
	apiKey := os.Getenv("GEMINI_API_KEY")

	if env == "production" && provider == "gemini" && apiKey == "" {
		log.Printf("GEMINI_API_KEY is required in production")
	}

	return Config{
		Port:                getEnv("PORT", "8000"),
		Env:                 env,
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LLMProvider:         provider,
		LLMModel:            getEnv("LLM_MODEL", "gemini-2.5-flash"),
		GeminiAPIKey:        apiKey,
		LLMTimeout:          getSeconds("LLM_TIMEOUT_SECONDS", 60*time.Second),
		UpstreamTimeout:     getSeconds("UPSTREAM_TIMEOUT_SECONDS", 10*time.Second),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		CacheSQLitePath:     os.Getenv("CACHE_SQLITE_PATH"),
		CacheTTL:            getDuration("CACHE_TTL", 6*time.Hour),
		OpenMeteoURL:        getEnv("OPEN_METEO_URL", "https://api.open-meteo.com"),
		OpenMeteoArchiveURL: getEnv("OPEN_METEO_ARCHIVE_URL", "https://archive-api.open-meteo.com"),
		OpenElevationURL:    getEnv("OPEN_ELEVATION_URL", "https://api.open-elevation.com"),
		NominatimURL:        getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		UserAgent:           getEnv("USER_AGENT", "FarmAI/1.0 (contact@farmai.app)"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		log.Printf("config %s invalid seconds %q, using %s", key, raw, def)
		return def
	}
	return time.Duration(parsed) * time.Second
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed < 0 {
		log.Printf("config %s invalid duration %q, using %s", key, raw, def)
		return def
	}
	return parsed
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

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "none", "off", "disabled":
		return "none"
	default:
		return "gemini"
	}
}
