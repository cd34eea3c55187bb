package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Email     EmailConfig
	LLM       LLMConfig
	Pipeline  PipelineConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	App       AppConfig
	Log       LogConfig
	Scheduler SchedulerConfig
	Vault     VaultConfig
	Redis     RedisConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host         string
	Port         string
	TimeoutRead  time.Duration
	TimeoutWrite time.Duration
	TimeoutIdle  time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

// JWTConfig holds signing configuration for admin session tokens
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// AdminConfig holds the operator credentials
type AdminConfig struct {
	Username     string
	PasswordHash string // bcrypt hash
}

// EmailConfig holds email-related configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	Timeout      time.Duration
}

// LLMConfig holds inference service configuration
type LLMConfig struct {
	Provider    string // "openai" or "ollama"
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
	Enabled     bool
}

// PipelineConfig holds settings for background report generation
type PipelineConfig struct {
	Workers   int
	QueueSize int
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Duration time.Duration

	// TrustedProxies are IPs or CIDRs whose forwarding headers name the client
	TrustedProxies []string
}

// AppConfig holds general application configuration
type AppConfig struct {
	Env     string
	Name    string
	Version string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	PendingSweepInterval   time.Duration // how often to look for submissions stuck in "new"
	PendingAge             time.Duration // minimum age before a "new" submission is re-enqueued
	PendingBatchSize       int
	SessionCleanupInterval time.Duration
	EnablePendingSweep     bool
	EnableSessionCleanup   bool
}

// VaultConfig holds Vault-related configuration
type VaultConfig struct {
	Address    string
	Token      string
	KVMount    string
	SecretPath string
	Enabled    bool
}

// RedisConfig holds configuration for the distributed pipeline lock
type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
	LockTTL  time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// godotenv doesn't override already-set variables, so order matters
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnv("SERVER_PORT", "8080"),
			TimeoutRead:  getDurationEnv("SERVER_TIMEOUT_READ", 15*time.Second),
			TimeoutWrite: getDurationEnv("SERVER_TIMEOUT_WRITE", 90*time.Second),
			TimeoutIdle:  getDurationEnv("SERVER_TIMEOUT_IDLE", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "problemsolver"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "problemsolver_db"),
			SSLMode:         getEnv("DB_SSLMODE", "prefer"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			MigrationsPath:  getEnv("DB_MIGRATIONS_PATH", "./migrations"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			Expiration: getDurationEnv("JWT_EXPIRATION", 8*time.Hour),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			SMTPFrom:     getEnv("SMTP_FROM", "insights@problemsolver.example"),
			Timeout:      getDurationEnv("SMTP_TIMEOUT", 20*time.Second),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
			BaseURL:     getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			APIKey:      getEnv("LLM_API_KEY", ""),
			Model:       getEnv("LLM_MODEL", "gpt-4"),
			Timeout:     getDurationEnv("LLM_TIMEOUT", 45*time.Second),
			MaxTokens:   getIntEnv("LLM_MAX_TOKENS", 1500),
			Temperature: getFloatEnv("LLM_TEMPERATURE", 0.7),
			Enabled:     getBoolEnv("LLM_ENABLED", true),
		},
		Pipeline: PipelineConfig{
			Workers:   getIntEnv("PIPELINE_WORKERS", 4),
			QueueSize: getIntEnv("PIPELINE_QUEUE_SIZE", 100),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			AllowedMethods:   getSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "OPTIONS"}),
			AllowedHeaders:   getSliceEnv("CORS_ALLOWED_HEADERS", []string{"Accept", "Authorization", "Content-Type"}),
			ExposedHeaders:   getSliceEnv("CORS_EXPOSED_HEADERS", []string{"Link"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", true),
			MaxAge:           getIntEnv("CORS_MAX_AGE", 300),
		},
		RateLimit: RateLimitConfig{
			Enabled:  getBoolEnv("RATE_LIMIT_ENABLED", true),
			Requests: getIntEnv("RATE_LIMIT_REQUESTS", 100),
			Duration: getDurationEnv("RATE_LIMIT_DURATION", 1*time.Minute),

			TrustedProxies: getSliceEnv("TRUSTED_PROXIES", nil),
		},
		App: AppConfig{
			Env:     getEnv("APP_ENV", "development"),
			Name:    getEnv("APP_NAME", "ProblemSolver"),
			Version: getEnv("APP_VERSION", "1.0.0"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Scheduler: SchedulerConfig{
			PendingSweepInterval:   getDurationEnv("SCHEDULER_PENDING_SWEEP_INTERVAL", 5*time.Minute),
			PendingAge:             getDurationEnv("SCHEDULER_PENDING_AGE", 10*time.Minute),
			PendingBatchSize:       getIntEnv("SCHEDULER_PENDING_BATCH_SIZE", 50),
			SessionCleanupInterval: getDurationEnv("SCHEDULER_SESSION_CLEANUP_INTERVAL", time.Hour),
			EnablePendingSweep:     getBoolEnv("SCHEDULER_ENABLE_PENDING_SWEEP", true),
			EnableSessionCleanup:   getBoolEnv("SCHEDULER_ENABLE_SESSION_CLEANUP", true),
		},
		Vault: VaultConfig{
			Address:    getEnv("VAULT_ADDR", "http://localhost:8200"),
			Token:      getEnv("VAULT_TOKEN", ""),
			KVMount:    getEnv("VAULT_KV_MOUNT", "secret"),
			SecretPath: getEnv("VAULT_SECRET_PATH", "problem-solver"),
			Enabled:    getBoolEnv("VAULT_ENABLED", false),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			LockTTL:  getDurationEnv("REDIS_LOCK_TTL", 2*time.Minute),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Database.Password == "" && c.App.Env == "production" {
		return fmt.Errorf("DB_PASSWORD is required in production")
	}
	// Secrets may still arrive from Vault
	if !c.Vault.Enabled && c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	if c.LLM.Provider != "openai" && c.LLM.Provider != "ollama" {
		return fmt.Errorf("LLM_PROVIDER must be openai or ollama, got %q", c.LLM.Provider)
	}
	if c.Pipeline.Workers < 1 {
		return fmt.Errorf("PIPELINE_WORKERS must be at least 1")
	}
	return nil
}

// ApplySecrets overrides secret values with those read from a secret store.
// Keys match the environment variable names.
func (c *Config) ApplySecrets(secrets map[string]string) {
	if v := secrets["LLM_API_KEY"]; v != "" {
		c.LLM.APIKey = v
	}
	if v := secrets["SMTP_PASSWORD"]; v != "" {
		c.Email.SMTPPassword = v
	}
	if v := secrets["ADMIN_PASSWORD_HASH"]; v != "" {
		c.Admin.PasswordHash = v
	}
	if v := secrets["DB_PASSWORD"]; v != "" {
		c.Database.Password = v
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		// Split by comma and trim whitespace
		parts := strings.Split(value, ",")
		var result []string
		for _, v := range parts {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
