package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	RedisURI          string
	GeminiAPIKey      string
	GeminiModel       string
	EncryptionKey     string
	Port              string
	FrontendURL       string
	AllowedOrigins    []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s); must include production frontend origin
	Environment       string   // ENV: production, development, etc.
	Timezone          string   // IANA name; calendar days (streaks, daily buckets) are computed in this zone
	DefaultWindowDays int      // insights lookback when the request does not pass one
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	// CORS: allow multiple origins so the production frontend works alongside local dev
	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" && !containsOrigin(allowedOrigins, u) {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	return &Config{
		RedisURI:          getEnv("REDIS_URI", "redis://localhost:6379/0"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", ""),
		EncryptionKey:     getEnv("ENCRYPTION_KEY", ""),
		Environment:       env,
		Port:              getEnv("PORT", "8080"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins:    allowedOrigins,
		Timezone:          getEnv("TIMEZONE", ""),
		DefaultWindowDays: getEnvInt("INSIGHTS_DEFAULT_WINDOW_DAYS", 30),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
