// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// AutoMigrate applies pending goose migrations on startup.
	AutoMigrate bool

	// APIBaseURL is the public URL of this API, used in emailed confirmation links.
	APIBaseURL string

	// WebBaseURL is the front-end URL confirmations redirect to.
	WebBaseURL string

	// DateLocale selects the long date layout used in emails (e.g. en_US, pt_BR).
	DateLocale string

	Mail Mail
}

// Mail configures the outbound SMTP transport.
// The defaults target SendGrid's SMTP relay, which authenticates with the
// literal username "apikey" and the API key as password.
type Mail struct {
	Host        string
	Port        int
	Username    string
	APIKey      string // SENDGRID_API_KEY. Required.
	Timeout     time.Duration
	FromName    string
	FromAddress string

	// Concurrency bounds how many participant emails are sent at once.
	Concurrency int
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first variable that fails to parse.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		APIBaseURL:  strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		WebBaseURL:  strings.TrimRight(getEnv("WEB_BASE_URL", "http://localhost:5173"), "/"),
		DateLocale:  getEnv("DATE_LOCALE", "en_US"),
		Mail: Mail{
			Host:        getEnv("SMTP_HOST", "smtp.sendgrid.net"),
			Username:    getEnv("SMTP_USERNAME", "apikey"),
			FromName:    getEnv("MAIL_FROM_NAME", "plann.er"),
			FromAddress: getEnv("MAIL_FROM_ADDRESS", "no-reply@plann.er"),
		},
	}

	var err error
	if cfg.MaxBodyBytes, err = getInt64("MAX_BODY_BYTES", 1<<20); err != nil {
		return Config{}, err
	}
	if cfg.AutoMigrate, err = getBool("AUTO_MIGRATE", false); err != nil {
		return Config{}, err
	}
	if cfg.Mail.Port, err = getInt("SMTP_PORT", 587); err != nil {
		return Config{}, err
	}
	if cfg.Mail.Concurrency, err = getInt("MAIL_CONCURRENCY", 4); err != nil {
		return Config{}, err
	}
	if cfg.Mail.Timeout, err = getDuration("SMTP_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.Mail.APIKey = os.Getenv("SENDGRID_API_KEY")
	if cfg.Mail.APIKey == "" {
		missing = append(missing, "SENDGRID_API_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// WriteTimeout is the HTTP write deadline. ConfirmTrip answers only once
// every invitation has settled: up to maxSends messages, Mail.Concurrency at
// a time, each bounded by Mail.Timeout. The budget covers that plus 10s for
// the database work.
func (c Config) WriteTimeout(maxSends int) time.Duration {
	conc := max(c.Mail.Concurrency, 1)
	perSend := c.Mail.Timeout
	if perSend <= 0 {
		// go-mail's own default when no timeout is configured.
		perSend = 15 * time.Second
	}
	rounds := (max(maxSends, 1) + conc - 1) / conc
	return 10*time.Second + time.Duration(rounds)*perSend
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func getInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
