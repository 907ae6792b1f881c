package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Mailer    MailerConfig    `yaml:"mailer"`
	Workers   WorkersConfig   `yaml:"workers"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Import    ImportConfig    `yaml:"import"`
	LogLevel  string          `yaml:"log_level"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// DatabaseConfig holds PostgreSQL connection configuration
type DatabaseConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// RedisConfig holds Redis connection configuration. Redis is optional;
// when Addr is empty, locking falls back to PG advisory locks and the
// rate limiter is disabled.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AuthConfig holds JWT authentication configuration
type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// TokenTTL returns the configured token lifetime as a duration
func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// MailerConfig holds email delivery configuration
type MailerConfig struct {
	Provider       string `yaml:"provider"` // "ses" or "log"
	Region         string `yaml:"region"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c MailerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// WorkersConfig holds background worker configuration
type WorkersConfig struct {
	SendWorkers          int `yaml:"send_workers"`
	SendBatchSize        int `yaml:"send_batch_size"`
	SendIntervalSeconds  int `yaml:"send_interval_seconds"`
	JobIntervalSeconds   int `yaml:"job_interval_seconds"`
	RecurringIntervalSec int `yaml:"recurring_interval_seconds"`
	StaleLockMinutes     int `yaml:"stale_lock_minutes"`
}

// SendInterval returns the send worker poll interval as a duration
func (c WorkersConfig) SendInterval() time.Duration {
	return time.Duration(c.SendIntervalSeconds) * time.Second
}

// JobInterval returns the job scheduler poll interval as a duration
func (c WorkersConfig) JobInterval() time.Duration {
	return time.Duration(c.JobIntervalSeconds) * time.Second
}

// RecurringInterval returns the recurring scheduler tick as a duration
func (c WorkersConfig) RecurringInterval() time.Duration {
	return time.Duration(c.RecurringIntervalSec) * time.Second
}

// StaleLockAge returns how long a claimed send may sit before reclaim
func (c WorkersConfig) StaleLockAge() time.Duration {
	return time.Duration(c.StaleLockMinutes) * time.Minute
}

// RateLimitConfig holds API rate limiting configuration
type RateLimitConfig struct {
	Enabled       bool `yaml:"enabled"`
	RequestsPerMin int `yaml:"requests_per_min"`
}

// ImportConfig holds contact CSV import configuration
type ImportConfig struct {
	TempDir     string `yaml:"temp_dir"`
	MaxFileSize int64  `yaml:"max_file_size"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Auth.TokenTTLHours == 0 {
		cfg.Auth.TokenTTLHours = 24
	}
	if cfg.Mailer.Provider == "" {
		cfg.Mailer.Provider = "log"
	}
	if cfg.Mailer.Region == "" {
		cfg.Mailer.Region = "us-west-2"
	}
	if cfg.Mailer.TimeoutSeconds == 0 {
		cfg.Mailer.TimeoutSeconds = 30
	}
	if cfg.Workers.SendWorkers == 0 {
		cfg.Workers.SendWorkers = 4
	}
	if cfg.Workers.SendBatchSize == 0 {
		cfg.Workers.SendBatchSize = 50
	}
	if cfg.Workers.SendIntervalSeconds == 0 {
		cfg.Workers.SendIntervalSeconds = 5
	}
	if cfg.Workers.JobIntervalSeconds == 0 {
		cfg.Workers.JobIntervalSeconds = 10
	}
	if cfg.Workers.RecurringIntervalSec == 0 {
		cfg.Workers.RecurringIntervalSec = 60
	}
	if cfg.Workers.StaleLockMinutes == 0 {
		cfg.Workers.StaleLockMinutes = 10
	}
	if cfg.RateLimit.RequestsPerMin == 0 {
		cfg.RateLimit.RequestsPerMin = 300
	}
	if cfg.Import.TempDir == "" {
		cfg.Import.TempDir = os.TempDir()
	}
	if cfg.Import.MaxFileSize == 0 {
		cfg.Import.MaxFileSize = 10 << 20 // 10 MiB
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars on ECS.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.Auth.TokenTTLHours = hours
		}
	}
	if provider := os.Getenv("MAILER_PROVIDER"); provider != "" {
		cfg.Mailer.Provider = provider
	}
	if region := os.Getenv("AWS_SES_REGION"); region != "" {
		cfg.Mailer.Region = region
	}
	if dir := os.Getenv("IMPORT_TEMP_DIR"); dir != "" {
		cfg.Import.TempDir = dir
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}
