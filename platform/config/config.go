// Package config provides environment-driven configuration for the application.
// This is part of the platform layer and contains no business logic.
//
// Consumers should depend on the narrow getter interfaces below rather than the
// full Config struct, so each module sees only the settings it needs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig exposes database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig exposes HTTP server settings.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RedisConfig exposes redis connection settings shared by the session store
// and the task queue.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// SessionConfig exposes conversation session store settings.
type SessionConfig interface {
	RedisConfig
	GetSessionTTL() time.Duration
}

// SchedulerConfig exposes asynq queue settings.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// AIConfig exposes generative model settings.
type AIConfig interface {
	GetAIProvider() string
	GetMoonshotAPIKey() string
	GetMoonshotBaseURL() string
	GetMoonshotModel() string
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetAITimeout() time.Duration
	GetAIMaxTokens() int
	GetAITemperature() float64
}

// EmailConfig exposes SMTP settings for handoff notifications.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetIntakeTeamAddress() string
}

// EngineConfig exposes tunables for the slot-filling engine.
type EngineConfig interface {
	GetGazetteerFile() string
}

// Config holds all application configuration loaded from the environment.
type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL string

	RedisURL         string
	RedisTLSInsecure bool
	SessionTTL       time.Duration

	AsynqQueueName   string
	AsynqConcurrency int

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	AIProvider      string
	MoonshotAPIKey  string
	MoonshotBaseURL string
	MoonshotModel   string
	GeminiAPIKey    string
	GeminiModel     string
	AITimeout       time.Duration
	AIMaxTokens     int
	AITemperature   float64

	EmailEnabled      bool
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	EmailFromName     string
	EmailFromAddress  string
	IntakeTeamAddress string

	GazetteerFile string
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "false"), "true")

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:         getEnv("REDIS_URL", ""),
		RedisTLSInsecure: strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		SessionTTL:       mustDuration(getEnv("SESSION_TTL", "24h")),

		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),

		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),

		AIProvider:      strings.ToLower(getEnv("AI_PROVIDER", "moonshot")),
		MoonshotAPIKey:  getEnv("MOONSHOT_API_KEY", ""),
		MoonshotBaseURL: getEnv("MOONSHOT_BASE_URL", ""),
		MoonshotModel:   getEnv("MOONSHOT_MODEL", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AITimeout:       mustDuration(getEnv("AI_TIMEOUT", "10s")),
		AIMaxTokens:     mustInt(getEnv("AI_MAX_TOKENS", "150")),
		AITemperature:   mustFloat(getEnv("AI_TEMPERATURE", "0.7")),

		EmailEnabled:      emailEnabled,
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", "SpaceMatch"),
		EmailFromAddress:  getEnv("EMAIL_FROM_ADDRESS", ""),
		IntakeTeamAddress: getEnv("INTAKE_TEAM_ADDRESS", ""),

		GazetteerFile: getEnv("GAZETTEER_FILE", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.EmailEnabled && (cfg.SMTPHost == "" || cfg.EmailFromAddress == "" || cfg.IntakeTeamAddress == "") {
		return nil, fmt.Errorf("SMTP_HOST, EMAIL_FROM_ADDRESS and INTAKE_TEAM_ADDRESS are required when EMAIL_ENABLED is true")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	switch cfg.AIProvider {
	case "moonshot", "gemini", "none":
	default:
		return nil, fmt.Errorf("AI_PROVIDER must be one of moonshot, gemini, none")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func mustFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Database getters
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTP getters
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// Redis / session getters
func (c *Config) GetRedisURL() string          { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool    { return c.RedisTLSInsecure }
func (c *Config) GetSessionTTL() time.Duration { return c.SessionTTL }

// Scheduler getters
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// AI getters
func (c *Config) GetAIProvider() string       { return c.AIProvider }
func (c *Config) GetMoonshotAPIKey() string   { return c.MoonshotAPIKey }
func (c *Config) GetMoonshotBaseURL() string  { return c.MoonshotBaseURL }
func (c *Config) GetMoonshotModel() string    { return c.MoonshotModel }
func (c *Config) GetGeminiAPIKey() string     { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string      { return c.GeminiModel }
func (c *Config) GetAITimeout() time.Duration { return c.AITimeout }
func (c *Config) GetAIMaxTokens() int         { return c.AIMaxTokens }
func (c *Config) GetAITemperature() float64   { return c.AITemperature }

// Email getters
func (c *Config) GetEmailEnabled() bool        { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string          { return c.SMTPHost }
func (c *Config) GetSMTPPort() int             { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string      { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string      { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string     { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string  { return c.EmailFromAddress }
func (c *Config) GetIntakeTeamAddress() string { return c.IntakeTeamAddress }

// Engine getters
func (c *Config) GetGazetteerFile() string { return c.GazetteerFile }
