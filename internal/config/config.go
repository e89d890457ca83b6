package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth. Empty disables authentication.
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Chunking defaults
	DefaultMaxChars int
	MaxCharsCap     int

	// Institution detection. Empty means the built-in list.
	BankNames []string

	// Stats window for /api/stats.
	StatsWindow time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("FINCHUNK_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DefaultMaxChars: envInt("DEFAULT_MAX_CHARS", 12000),
		MaxCharsCap:     envInt("MAX_CHARS_CAP", 60000),

		BankNames: envList("BANK_NAMES"),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.DefaultMaxChars <= 0 {
		cfg.DefaultMaxChars = 12000
	}
	if cfg.MaxCharsCap <= 0 {
		cfg.MaxCharsCap = 60000
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
