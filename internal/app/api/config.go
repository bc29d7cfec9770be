package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port             string
	DatabaseURL      string
	SMTPHost         string
	SMTPPort         int
	EmailUser        string
	EmailPass        string
	ReportRecipients []string
	CORSOrigins      []string
}

// LoadConfig reads environment variables, applies defaults, and validates
// basic constraints. A missing database URL is an error so the process can
// refuse to start without its store.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        envDefault("PORT", "3000"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SMTPHost:    envDefault("SMTP_HOST", "smtp.gmail.com"),
		EmailUser:   strings.TrimSpace(os.Getenv("EMAIL_USER")),
		EmailPass:   strings.TrimSpace(os.Getenv("EMAIL_PASS")),
		CORSOrigins: splitCSV(envDefault("CORS_ORIGINS", "http://localhost:3000")),
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	port, err := strconv.Atoi(envDefault("SMTP_PORT", "587"))
	if err != nil || port <= 0 {
		return Config{}, fmt.Errorf("SMTP_PORT must be a positive integer")
	}
	cfg.SMTPPort = port
	cfg.ReportRecipients = splitCSV(os.Getenv("REPORT_RECIPIENTS"))
	if len(cfg.ReportRecipients) == 0 && cfg.EmailUser != "" {
		cfg.ReportRecipients = []string{cfg.EmailUser}
	}
	return cfg, nil
}

// MailerConfigured reports whether the SMTP credentials are present.
func (c Config) MailerConfigured() bool {
	return c.EmailUser != "" && c.EmailPass != ""
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
