package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backend names accepted in STORE_BACKEND.
const (
	BackendSheets   = "sheets"
	BackendExcel    = "excel"
	BackendPostgres = "postgres"
)

// Config holds every setting the service reads from the environment.
// It is built once in Load and passed by reference afterwards; nothing
// reads os.Getenv after startup.
type Config struct {
	Port         string
	StoreBackend string

	// Google Sheets backend
	GoogleSheetID         string
	GoogleCredentialsFile string
	SheetName             string

	// Local .xlsx backend
	ExcelFile string

	// Postgres backend
	DatabaseURL string

	Groups              []string
	MaxStudentsPerGroup int

	RecaptchaSecretKey string
	RecaptchaSiteKey   string

	// Optional roster cache. Empty RedisAddr disables caching entirely.
	RedisAddr      string
	RosterCacheTTL time.Duration
}

// Load reads the configuration from the environment. Missing or invalid
// mandatory settings are fatal: a half-configured service would accept
// registrations it cannot persist.
func Load() *Config {
	cfg := &Config{
		Port:                  getenv("PORT", "8080"),
		StoreBackend:          getenv("STORE_BACKEND", BackendSheets),
		GoogleSheetID:         os.Getenv("GOOGLE_SHEET_ID"),
		GoogleCredentialsFile: getenv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		SheetName:             getenv("SHEET_NAME", "Registrations"),
		ExcelFile:             getenv("EXCEL_FILE", "./storage/registrations.xlsx"),
		DatabaseURL:           os.Getenv("DB_URL"),
		Groups:                splitGroups(getenv("GROUPS", "Group 1,Group 2,Group 3")),
		MaxStudentsPerGroup:   getenvInt("MAX_STUDENTS_PER_GROUP", 25),
		RecaptchaSecretKey:    os.Getenv("RECAPTCHA_SECRET_KEY"),
		RecaptchaSiteKey:      os.Getenv("RECAPTCHA_SITE_KEY"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RosterCacheTTL:        time.Duration(getenvInt("ROSTER_CACHE_TTL", 5)) * time.Second,
	}

	switch cfg.StoreBackend {
	case BackendSheets:
		if cfg.GoogleSheetID == "" {
			slog.Error("GOOGLE_SHEET_ID environment variable not set")
			os.Exit(1)
		}
	case BackendExcel:
		// ExcelFile always has a default, nothing to check.
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			slog.Error("DB_URL environment variable not set")
			os.Exit(1)
		}
	default:
		slog.Error("Unknown STORE_BACKEND value", "value", cfg.StoreBackend)
		os.Exit(1)
	}

	if len(cfg.Groups) == 0 {
		slog.Error("GROUPS environment variable is empty")
		os.Exit(1)
	}
	if cfg.MaxStudentsPerGroup <= 0 {
		slog.Error("MAX_STUDENTS_PER_GROUP must be positive", "value", cfg.MaxStudentsPerGroup)
		os.Exit(1)
	}
	if cfg.RecaptchaSecretKey == "" {
		slog.Warn("RECAPTCHA_SECRET_KEY not set, captcha verification is disabled")
	}

	return cfg
}

// HasGroup reports whether name is one of the configured groups.
func (c *Config) HasGroup(name string) bool {
	for _, g := range c.Groups {
		if g == name {
			return true
		}
	}
	return false
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Error("Invalid integer in environment variable", "key", key, "value", v)
		os.Exit(1)
	}
	return n
}

func splitGroups(raw string) []string {
	var groups []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			groups = append(groups, name)
		}
	}
	return groups
}
