package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultServerAddr      = ":8080"
	defaultAccessTTL       = "24h"  // 1 day
	defaultRefreshTTL      = "120h" // 5 days
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultSignedURLExpiry = "168h" // 7 days
	defaultLogLevel        = "info"
)

// Config is built once in main and handed to constructors explicitly; no
// layer reads the environment on its own.
type Config struct {
	AppEnv     string
	ServerAddr string

	DatabaseURL string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	LogLevel string

	// CORSAllowedOrigins narrows cross-origin access to an allowlist;
	// empty means any origin.
	CORSAllowedOrigins []string

	Storage StorageConfig
}

// StorageConfig points at the S3-compatible bucket incident images live in.
// Endpoint is optional and only set for MinIO-style deployments.
type StorageConfig struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKey       string
	SecretKey       string
	SignedURLExpiry time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(getEnv("APP_ENV", "dev"))
	cfg.AppEnv = strings.ToLower(appEnv)
	cfg.ServerAddr = getEnv("SERVER_ADDR", defaultServerAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", "loxea.db")
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.LogLevel = getEnv("LOG_LEVEL", defaultLogLevel)
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.AccessTTL, err = parseDurationEnv("ACCESS_TOKEN_TTL", defaultAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TOKEN_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}

	cfg.Storage = StorageConfig{
		Region:    getEnv("STORAGE_REGION", "eu-west-1"),
		Bucket:    getEnv("STORAGE_BUCKET", "loxea-incidents"),
		Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
		AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
	}
	cfg.Storage.SignedURLExpiry, err = parseDurationEnv("STORAGE_SIGNED_URL_EXPIRY", defaultSignedURLExpiry)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be > 0")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod JWT_SECRET must be set and not default")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
