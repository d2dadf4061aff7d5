// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetStaticDir() string
	GetChatRateLimitPerMinute() int
}

// JWTConfig provides admin token validation settings for middleware.
type JWTConfig interface {
	GetJWTAdminSecret() string
}

// AdminConfig provides settings needed by the admin login flow.
type AdminConfig interface {
	JWTConfig
	GetAdminPasswordHash() string
	GetJWTAdminTTL() time.Duration
}

// LLMConfig provides settings for the OpenAI-compatible chat relay.
type LLMConfig interface {
	GetOpenAIAPIKey() string
	GetOpenAIBaseURL() string
	GetOpenAIModel() string
	GetOpenAITimeout() time.Duration
	IsLLMConfigured() bool
}

// CalendlyConfig provides settings for the Calendly event type passthrough.
type CalendlyConfig interface {
	GetCalendlyAPIKey() string
	GetCalendlyUserURI() string
	IsCalendlyConfigured() bool
}

// RatesConfig provides settings for the rate sheet store.
type RatesConfig interface {
	GetRatesCacheTTL() time.Duration
	GetDefaultFixedRate() float64
}

// BrokerConfig provides the brokerage contact details shown to leads.
type BrokerConfig interface {
	GetBrokerPhone() string
	GetBrokerEmail() string
}

// RedisConfig provides the Redis connection used by caches.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// SchedulerConfig provides settings for the asynq job queue.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// EmailConfig provides settings for SMTP email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketLeadExports() string
	IsMinIOEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                    string
	HTTPAddr               string
	DatabaseURL            string
	CORSAllowAll           bool
	CORSOrigins            []string
	StaticDir              string
	ChatRateLimitPerMinute int
	OpenAIAPIKey           string
	OpenAIBaseURL          string
	OpenAIModel            string
	OpenAITimeout          time.Duration
	CalendlyAPIKey         string
	CalendlyUserURI        string
	AdminPasswordHash      string
	JWTAdminSecret         string
	JWTAdminTTL            time.Duration
	RatesCacheTTL          time.Duration
	DefaultFixedRate       float64
	BrokerPhone            string
	BrokerEmail            string
	RedisURL               string
	RedisTLSInsecure       bool
	AsynqQueueName         string
	AsynqConcurrency       int
	EmailEnabled           bool
	SMTPHost               string
	SMTPPort               int
	SMTPUsername           string
	SMTPPassword           string
	EmailFromName          string
	EmailFromAddress       string
	MinIOEndpoint          string
	MinIOAccessKey         string
	MinIOSecretKey         string
	MinIOUseSSL            bool
	MinIOMaxFileSize       int64
	MinioBucketLeadExports string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string            { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool          { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string       { return c.CORSOrigins }
func (c *Config) GetStaticDir() string           { return c.StaticDir }
func (c *Config) GetChatRateLimitPerMinute() int { return c.ChatRateLimitPerMinute }

// JWTConfig / AdminConfig implementation
func (c *Config) GetJWTAdminSecret() string     { return c.JWTAdminSecret }
func (c *Config) GetAdminPasswordHash() string  { return c.AdminPasswordHash }
func (c *Config) GetJWTAdminTTL() time.Duration { return c.JWTAdminTTL }

// LLMConfig implementation
func (c *Config) GetOpenAIAPIKey() string         { return c.OpenAIAPIKey }
func (c *Config) GetOpenAIBaseURL() string        { return c.OpenAIBaseURL }
func (c *Config) GetOpenAIModel() string          { return c.OpenAIModel }
func (c *Config) GetOpenAITimeout() time.Duration { return c.OpenAITimeout }
func (c *Config) IsLLMConfigured() bool           { return c.OpenAIAPIKey != "" }

// CalendlyConfig implementation
func (c *Config) GetCalendlyAPIKey() string  { return c.CalendlyAPIKey }
func (c *Config) GetCalendlyUserURI() string { return c.CalendlyUserURI }
func (c *Config) IsCalendlyConfigured() bool {
	return c.CalendlyAPIKey != "" && c.CalendlyUserURI != ""
}

// RatesConfig implementation
func (c *Config) GetRatesCacheTTL() time.Duration { return c.RatesCacheTTL }
func (c *Config) GetDefaultFixedRate() float64    { return c.DefaultFixedRate }

// BrokerConfig implementation
func (c *Config) GetBrokerPhone() string { return c.BrokerPhone }
func (c *Config) GetBrokerEmail() string { return c.BrokerEmail }

// RedisConfig / SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string   { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string  { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string  { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool       { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64 { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketLeadExports() string {
	return c.MinioBucketLeadExports
}
func (c *Config) IsMinIOEnabled() bool { return c.MinIOEndpoint != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "*"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:                    getEnv("APP_ENV", "development"),
		HTTPAddr:               getEnv("HTTP_ADDR", ":"+getEnv("PORT", "5000")),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		CORSAllowAll:           corsAllowAll,
		CORSOrigins:            corsOrigins,
		StaticDir:              getEnv("STATIC_DIR", "static"),
		ChatRateLimitPerMinute: mustInt(getEnv("CHAT_RATE_LIMIT_PER_MINUTE", "30")),
		OpenAIAPIKey:           getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:          getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:            getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAITimeout:          mustDuration(getEnv("OPENAI_TIMEOUT", "30s")),
		CalendlyAPIKey:         getEnv("CALENDLY_API_KEY", ""),
		CalendlyUserURI:        getEnv("CALENDLY_USER_URI", ""),
		AdminPasswordHash:      getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTAdminSecret:         getEnv("JWT_ADMIN_SECRET", ""),
		JWTAdminTTL:            mustDuration(getEnv("JWT_ADMIN_TTL", "12h")),
		RatesCacheTTL:          mustDuration(getEnv("RATES_CACHE_TTL", "5m")),
		DefaultFixedRate:       mustFloat(getEnv("DEFAULT_FIXED_RATE", "5.5")),
		BrokerPhone:            getEnv("BROKER_PHONE", "(604) 555-0123"),
		BrokerEmail:            getEnv("BROKER_EMAIL", ""),
		RedisURL:               getEnv("REDIS_URL", ""),
		RedisTLSInsecure:       strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:         getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:       mustInt(getEnv("ASYNQ_CONCURRENCY", "5")),
		EmailEnabled:           emailEnabled && smtpHost != "",
		SMTPHost:               smtpHost,
		SMTPPort:               mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:           getEnv("SMTP_USERNAME", ""),
		SMTPPassword:           getEnv("SMTP_PASSWORD", ""),
		EmailFromName:          getEnv("EMAIL_FROM_NAME", "Burnaby Home Loans"),
		EmailFromAddress:       getEnv("EMAIL_FROM_ADDRESS", ""),
		MinIOEndpoint:          getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:         getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:         getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:            strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:       mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "52428800")),
		MinioBucketLeadExports: getEnv("MINIO_BUCKET_LEAD_EXPORTS", "lead-exports"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AdminPasswordHash != "" && cfg.JWTAdminSecret == "" {
		return nil, fmt.Errorf("JWT_ADMIN_SECRET is required when ADMIN_PASSWORD_HASH is set")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.OpenAITimeout <= 0 {
		return nil, fmt.Errorf("OPENAI_TIMEOUT must be a positive duration")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
