package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	devSessionSecret = "dev-session-secret-change-me"
)

type Config struct {
	Server    ServerConfig
	Session   SessionConfig
	Quota     QuotaConfig
	RateLimit RateLimitConfig
	Request   RequestConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
	LogLevel    string // empty keeps the environment default
}

type SessionConfig struct {
	Secret                 string
	TTLHours               int
	ResetTokenTTLHours     int
	CleanupIntervalMinutes int // 0 disables the background sweep
}

type QuotaConfig struct {
	Enforce bool // reject tasks that would overflow a finite quota
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
}

type RequestConfig struct {
	MaxBytes int64
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // seconds
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ENVIRONMENT", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "")

	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL_HOURS", 30*24)
	v.SetDefault("RESET_TOKEN_TTL_HOURS", 24)
	v.SetDefault("SESSION_CLEANUP_INTERVAL_MINUTES", 0)

	v.SetDefault("QUOTA_ENFORCE", false)

	v.SetDefault("RATE_LIMIT_GENERAL_RPS", 20)
	v.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)
	v.SetDefault("MAX_REQUEST_BYTES", 10<<20)

	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Accept,Authorization,X-Request-ID")
	v.SetDefault("CORS_EXPOSED_HEADERS", "X-Request-ID,Content-Disposition")
	v.SetDefault("CORS_ALLOW_CREDENTIALS", true)
	v.SetDefault("CORS_MAX_AGE", 12*60*60)
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		log.Printf("Warning: config file .env not found. Falling back to environment variables only.")
	}

	cfg := fromViper(v)
	if cfg.Session.Secret == "" && !cfg.IsProduction() {
		cfg.Session.Secret = devSessionSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:        v.GetString("SERVER_PORT"),
			Host:        v.GetString("SERVER_HOST"),
			Environment: v.GetString("ENVIRONMENT"),
			LogLevel:    v.GetString("LOG_LEVEL"),
		},
		Session: SessionConfig{
			Secret:                 v.GetString("SESSION_SECRET"),
			TTLHours:               v.GetInt("SESSION_TTL_HOURS"),
			ResetTokenTTLHours:     v.GetInt("RESET_TOKEN_TTL_HOURS"),
			CleanupIntervalMinutes: v.GetInt("SESSION_CLEANUP_INTERVAL_MINUTES"),
		},
		Quota: QuotaConfig{
			Enforce: v.GetBool("QUOTA_ENFORCE"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   v.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: v.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		Request: RequestConfig{
			MaxBytes: v.GetInt64("MAX_REQUEST_BYTES"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods:   splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders:   splitList(v.GetString("CORS_ALLOWED_HEADERS")),
			ExposedHeaders:   splitList(v.GetString("CORS_EXPOSED_HEADERS")),
			AllowCredentials: v.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           v.GetInt("CORS_MAX_AGE"),
		},
	}
}

// Default returns the development configuration without consulting the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)
	cfg.Session.Secret = devSessionSecret
	return cfg
}

func (c *Config) Validate() error {
	if c.IsProduction() && (c.Session.Secret == "" || c.Session.Secret == devSessionSecret) {
		return errors.New("SESSION_SECRET must be set in production")
	}
	if c.Session.Secret == "" {
		return errors.New("SESSION_SECRET must not be empty")
	}
	if c.Session.TTLHours <= 0 {
		return errors.New("SESSION_TTL_HOURS must be positive")
	}
	if c.Session.ResetTokenTTLHours <= 0 {
		return errors.New("RESET_TOKEN_TTL_HOURS must be positive")
	}
	if c.Session.CleanupIntervalMinutes < 0 {
		return errors.New("SESSION_CLEANUP_INTERVAL_MINUTES must not be negative")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLHours) * time.Hour
}

func (c *Config) ResetTokenTTL() time.Duration {
	return time.Duration(c.Session.ResetTokenTTLHours) * time.Hour
}

func (c *Config) CleanupInterval() time.Duration {
	return time.Duration(c.Session.CleanupIntervalMinutes) * time.Minute
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
