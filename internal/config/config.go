package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	defaultPort          = "8000"
	defaultDatabaseURL   = "fileshare.db"
	defaultBaseURL       = "http://localhost:8000"
	defaultUploadDir     = "uploads"
	defaultMaxUploadSize = "5000000" // 5 MB
	defaultSMTPAddr      = "127.0.0.1:1025"
	defaultMailFrom      = "do-not-reply@filesharing.com"
	defaultMailEnabled   = "true"
)

type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	BaseURL       string
	UploadDir     string
	MaxUploadSize int64
	SMTPAddr      string
	MailFrom      string
	MailEnabled   bool
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(getEnv("BASE_URL", defaultBaseURL)), "/")
	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))
	cfg.SMTPAddr = strings.TrimSpace(getEnv("SMTP_ADDR", defaultSMTPAddr))
	cfg.MailFrom = strings.TrimSpace(getEnv("MAIL_FROM", defaultMailFrom))
	cfg.MailEnabled = parseBoolEnv("MAIL_ENABLED", defaultMailEnabled)

	var err error
	cfg.MaxUploadSize, err = parseInt64Env("MAX_UPLOAD_SIZE", defaultMaxUploadSize)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if cfg.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be > 0")
	}
	if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BASE_URL must be an absolute URL, got %q", cfg.BaseURL)
	}
	if cfg.MailEnabled && cfg.SMTPAddr == "" {
		return fmt.Errorf("SMTP_ADDR must not be empty when MAIL_ENABLED=true")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseInt64Env(key, fallback string) (int64, error) {
	raw := getEnv(key, fallback)
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return v, nil
}

func parseBoolEnv(key, fallback string) bool {
	raw := strings.TrimSpace(getEnv(key, fallback))
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback == "true"
	}
	return v
}
