package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultGeminiModel       = "gemini-2.0-flash"
	DefaultGeminiTemperature = float32(0.5)
	DefaultJobSearchLocation = "India"
	DefaultJobSearchRows     = 60
	DefaultApifyBaseURL      = "https://api.apify.com"
	DefaultApifyActorID      = "BHzefUZlZRKWxkTck"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	GeminiModel       string
	GeminiTemperature float32
	GeminiBaseURL     string
	ApifyBaseURL      string
	JobSearchLocation string
	JobSearchRows     int
	SessionTTL        time.Duration
	MaxUploadBytes    int64
}

// Load reads configuration from environment variables with sensible defaults.
// Credentials are not part of Config; they are looked up when first needed.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		GeminiModel:       getEnv("GEMINI_MODEL", DefaultGeminiModel),
		GeminiTemperature: getFloat32("GEMINI_TEMPERATURE", DefaultGeminiTemperature),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", ""),
		ApifyBaseURL:      strings.TrimRight(getEnv("APIFY_BASE_URL", DefaultApifyBaseURL), "/"),
		JobSearchLocation: getEnv("JOB_SEARCH_LOCATION", DefaultJobSearchLocation),
		JobSearchRows:     getInt("JOB_SEARCH_ROWS", DefaultJobSearchRows),
		SessionTTL:        getDuration("SESSION_TTL", time.Hour),
		MaxUploadBytes:    int64(getInt("MAX_UPLOAD_BYTES", 0)),
	}
}

// GeminiAPIKey returns the first non-empty of GOOGLE_API_KEY and GEMINI_API_KEY.
func GeminiAPIKey() (string, error) {
	for _, key := range []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"} {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val, nil
		}
	}
	return "", &ConfigurationError{Settings: []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"}}
}

// ApifyToken returns APIFY_API_TOKEN.
func ApifyToken() (string, error) {
	if val := strings.TrimSpace(os.Getenv("APIFY_API_TOKEN")); val != "" {
		return val, nil
	}
	return "", &ConfigurationError{Settings: []string{"APIFY_API_TOKEN"}}
}

// ApifyActorID returns the LinkedIn scraper actor, honouring APIFY_LINKEDIN_ACTOR_ID.
func ApifyActorID() string {
	return getEnv("APIFY_LINKEDIN_ACTOR_ID", DefaultApifyActorID)
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		log.Printf("config: ignoring invalid %s=%q", key, raw)
		return def
	}
	return parsed
}

func getFloat32(key string, def float32) float32 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		log.Printf("config: ignoring invalid %s=%q", key, raw)
		return def
	}
	return float32(parsed)
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		log.Printf("config: ignoring invalid %s=%q", key, raw)
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
	default:
		return "dev"
	}
}
