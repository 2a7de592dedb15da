package config

import "time"

// Config holds runtime configuration for the API service.
type Config struct {
	Environment   string
	Addr          string
	DatabaseURL   string
	SessionSecret string
	SessionCookie string
	SessionTTL    time.Duration
	SecureCookies bool
}

// Load constructs a Config from environment variables.
func Load() Config {
	return Config{
		Environment:   GetString("APP_ENV", "development"),
		Addr:          GetString("API_ADDR", ":4000"),
		DatabaseURL:   GetString("DATABASE_URL", "postgres://newsstand:newsstand@db:5432/newsstand?sslmode=disable"),
		SessionSecret: GetString("SESSION_SECRET", "supersecuresecret"),
		SessionCookie: GetString("SESSION_COOKIE", "newsstand_session"),
		SessionTTL:    time.Duration(GetInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		SecureCookies: GetBool("SECURE_COOKIES", false),
	}
}
