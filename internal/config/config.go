// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server    ServerConfig
	Upload    UploadConfig
	Run       RunConfig
	Rate      RateLimitConfig
	Security  SecurityConfig
	Logging   LoggingConfig
	Reconcile ReconcileConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig holds spreadsheet upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed size of one uploaded file in bytes (default: 20MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"20971520"`
}

// RunConfig holds reconciliation run settings.
type RunConfig struct {
	// MaxConcurrent is the maximum number of parallel reconciliation runs (default: 4)
	MaxConcurrent int `env:"RUN_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for a run slot (default: 15s)
	MaxWaitTime time.Duration `env:"RUN_MAX_WAIT_TIME" default:"15s"`

	// Timeout is the maximum duration for a single run (default: 2m)
	Timeout time.Duration `env:"RUN_TIMEOUT" default:"2m"`

	// TTL is how long a finished run stays downloadable (default: 30m)
	TTL time.Duration `env:"RUN_TTL" default:"30m"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// ReconcileConfig selects a reconciliation profile and optionally overrides
// its settings. Zero values mean "keep the profile value".
type ReconcileConfig struct {
	// Profile is the built-in profile key (default: csod_sap)
	Profile string `env:"RECON_PROFILE" default:"csod_sap"`

	SourceALabel          string `env:"SOURCE_A_LABEL"`
	SourceAIDColumn       string `env:"SOURCE_A_ID_COLUMN"`
	SourceAPositionColumn string `env:"SOURCE_A_POSITION_COLUMN"`

	SourceBLabel          string `env:"SOURCE_B_LABEL"`
	SourceBIDColumn       string `env:"SOURCE_B_ID_COLUMN"`
	SourceBPositionColumn string `env:"SOURCE_B_POSITION_COLUMN"`
	SourceBSkipRows       int    `env:"SOURCE_B_SKIP_ROWS"`

	// MinIDDigits is the minimum digit-run length accepted as an identifier
	MinIDDigits int `env:"MIN_ID_DIGITS"`

	// InvalidIDPrefixes is a comma-separated prefix list; a single "-" clears it
	InvalidIDPrefixes []string `env:"INVALID_ID_PREFIXES"`

	StatusColumn string `env:"STATUS_COLUMN"`
	StatusMarker string `env:"STATUS_MARKER"`

	// HeaderScanRows is how many leading rows of Source A are searched for the header
	HeaderScanRows int `env:"HEADER_SCAN_ROWS"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}
