// Package config provides centralized configuration management for the application.
// Settings come from struct-tag defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in that order of precedence.
// Everything is validated on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig       `yaml:"app"`
	Server   ServerConfig    `yaml:"server"`
	Upload   UploadConfig    `yaml:"upload"`
	Rate     RateLimitConfig `yaml:"rate"`
	Security SecurityConfig  `yaml:"security"`
	Logging  LoggingConfig   `yaml:"logging"`
	Audit    AuditConfig     `yaml:"audit"`
	Archive  ArchiveConfig   `yaml:"archive"`
}

// AppConfig holds application identity settings.
type AppConfig struct {
	// Name is shown on the dashboard and in logs
	Name string `yaml:"name" env:"APP_NAME" default:"YouTube Audience Analyzer"`

	// Debug enables debug logging regardless of LOG_LEVEL
	Debug bool `yaml:"debug" env:"DEBUG" default:"false"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `yaml:"host" env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8000)
	Port int `yaml:"port" env:"SERVER_PORT" envAlt:"PORT" default:"8000"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig holds CSV upload processing settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 10MB)
	MaxFileSize int64 `yaml:"max_file_size" env:"UPLOAD_MAX_FILE_SIZE" envAlt:"MAX_FILE_SIZE" default:"10485760"`

	// AllowedExtensions lists accepted file extensions (default: .csv)
	AllowedExtensions []string `yaml:"allowed_extensions" env:"UPLOAD_ALLOWED_EXTENSIONS" default:".csv"`

	// MaxConcurrent is the maximum number of parallel uploads (default: 5)
	MaxConcurrent int `yaml:"max_concurrent" env:"UPLOAD_MAX_CONCURRENT" default:"5"`

	// MaxWaitTime is how long to wait for an upload slot (default: 30s)
	MaxWaitTime time.Duration `yaml:"max_wait_time" env:"UPLOAD_MAX_WAIT_TIME" default:"30s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	Enabled bool `yaml:"enabled" env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// UploadLimit is requests per minute for the upload endpoint (default: 10)
	UploadLimit int `yaml:"upload_limit" env:"RATE_LIMIT_UPLOAD" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// AllowedOrigins is the CORS origin allow-list (default: *)
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" default:"*"`

	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `yaml:"trusted_proxies" env:"TRUSTED_PROXIES"`

	// RequireAPIKey enables X-API-Key checks on /api routes
	RequireAPIKey bool `yaml:"require_api_key" env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `yaml:"api_keys" env:"API_KEYS"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `yaml:"enable_csp" env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `yaml:"level" env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `yaml:"format" env:"LOG_FORMAT" default:"text"`
}

// Audit drivers.
const (
	AuditNone     = "none"
	AuditMemory   = "memory"
	AuditPostgres = "postgres"
	AuditMySQL    = "mysql"
)

// AuditConfig selects where upload audit entries are written.
type AuditConfig struct {
	// Driver is one of none, memory, postgres, mysql (default: none)
	Driver string `yaml:"driver" env:"AUDIT_DRIVER" default:"none"`

	// URL is the database connection string for postgres or the DSN for mysql
	URL string `yaml:"url" env:"AUDIT_DATABASE_URL" envAlt:"DATABASE_URL"`

	MaxConns        int           `yaml:"max_conns" env:"AUDIT_DB_MAX_CONNS" default:"10"`
	MinConns        int           `yaml:"min_conns" env:"AUDIT_DB_MIN_CONNS" default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"AUDIT_DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"AUDIT_DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// Archive backends.
const (
	ArchiveNone  = "none"
	ArchiveLocal = "local"
	ArchiveMinio = "minio"
)

// ArchiveConfig selects where processed files are kept.
type ArchiveConfig struct {
	// Backend is one of none, local, minio (default: local)
	Backend string `yaml:"backend" env:"ARCHIVE_BACKEND" default:"local"`

	// Dir is the directory used by the local backend (default: ./uploads)
	Dir string `yaml:"dir" env:"UPLOAD_DIR" default:"./uploads"`

	MinioEndpoint  string `yaml:"minio_endpoint" env:"MINIO_ENDPOINT"`
	MinioRegion    string `yaml:"minio_region" env:"MINIO_REGION" default:"us-east-1"`
	MinioBucket    string `yaml:"minio_bucket" env:"MINIO_BUCKET" default:"processed-uploads"`
	MinioAccessKey string `yaml:"minio_access_key" env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `yaml:"minio_secret_key" env:"MINIO_SECRET_KEY"`
	MinioUseSSL    bool   `yaml:"minio_use_ssl" env:"MINIO_USE_SSL" default:"false"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
