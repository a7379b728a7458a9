// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers selectable through STORE_DRIVER.
const (
	DriverVercel = "vercel"
	DriverMinio  = "minio"
	DriverMemory = "memory"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	// EnvFileLoaded reports whether a .env file was read. Load runs before
	// logging is configured, so callers log it and Warnings once the logger is up.
	EnvFileLoaded bool
	// Warnings lists settings that were invalid and fell back to defaults.
	Warnings []string

	// JWTSecret enables bearer authentication on mutating routes when set.
	JWTSecret string

	StoreDriver    string
	StoreTimeout   time.Duration
	MaxUploadBytes int64
	DisplayZone    *time.Location

	// Vercel Blob
	BlobToken   string
	BlobAPIURL  string
	BlobStoreID string
	BlobRegion  string
	BlobBaseURL string

	// Object storage (S3-compatible: MinIO locally, any S3 provider in production)
	StorageEndpoint   string
	StorageAccessKey  string
	StorageSecretKey  string
	StorageBucket     string
	StorageRegion     string
	StorageUseSSL     bool
	StoragePublicBase string // browser-accessible base URL, e.g. "http://localhost:9000/pdfs"
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() *Config {
	envErr := godotenv.Load()
	env := &envReader{}

	cfg := &Config{
		EnvFileLoaded: envErr == nil,

		Port:     getEnv("PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		StoreDriver:    getEnv("STORE_DRIVER", DriverVercel),
		StoreTimeout:   env.duration("STORE_TIMEOUT", 30*time.Second),
		MaxUploadBytes: env.int64("MAX_UPLOAD_BYTES", 10<<20),
		DisplayZone:    env.location("DISPLAY_TIMEZONE", time.UTC),

		BlobToken:   getEnv("BLOB_READ_WRITE_TOKEN", ""),
		BlobAPIURL:  getEnv("BLOB_API_URL", "https://blob.vercel-storage.com"),
		BlobStoreID: getEnv("BLOB_STORE_ID", ""),
		BlobRegion:  getEnv("BLOB_REGION", ""),
		BlobBaseURL: getEnv("BLOB_BASE_URL", ""),

		StorageEndpoint:   getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey:  getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
		StorageSecretKey:  getEnv("STORAGE_SECRET_KEY", "minioadmin"),
		StorageBucket:     getEnv("STORAGE_BUCKET", "pdfs"),
		StorageRegion:     getEnv("STORAGE_REGION", ""),
		StorageUseSSL:     getEnv("STORAGE_USE_SSL", "false") == "true",
		StoragePublicBase: getEnv("STORAGE_PUBLIC_BASE", "http://localhost:9000/pdfs"),
	}
	cfg.Warnings = env.warnings
	return cfg
}

// Validate checks that the settings required by the selected store driver are
// present. Values are treated as opaque and never parsed.
func (c *Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case DriverVercel:
		if c.BlobAPIURL == "" {
			errs = append(errs, errors.New("BLOB_API_URL is required"))
		}
	case DriverMinio:
		if c.StorageEndpoint == "" {
			errs = append(errs, errors.New("STORAGE_ENDPOINT is required"))
		}
		if c.StorageBucket == "" {
			errs = append(errs, errors.New("STORAGE_BUCKET is required"))
		}
		if c.StorageAccessKey == "" || c.StorageSecretKey == "" {
			errs = append(errs, errors.New("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// TokenPresent reports whether a store credential is configured. It is the
// flag logged next to every store failure.
func (c *Config) TokenPresent() bool {
	switch c.StoreDriver {
	case DriverVercel:
		return c.BlobToken != ""
	case DriverMinio:
		return c.StorageAccessKey != "" && c.StorageSecretKey != ""
	}
	return true
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envReader parses typed settings, remembering each value it had to reject.
type envReader struct {
	warnings []string
}

func (e *envReader) warn(key, value, what string) {
	e.warnings = append(e.warnings, fmt.Sprintf("%s=%q: %s, using default", key, value, what))
}

func (e *envReader) int64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		e.warn(key, v, "invalid integer")
		return fallback
	}
	return n
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.warn(key, v, "invalid duration")
		return fallback
	}
	return d
}

func (e *envReader) location(key string, fallback *time.Location) *time.Location {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	loc, err := time.LoadLocation(v)
	if err != nil {
		e.warn(key, v, "unknown time zone")
		return fallback
	}
	return loc
}
