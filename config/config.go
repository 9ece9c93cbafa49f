// Package config loads service configuration from environment variables.
//
// A .env file in the working directory is loaded first when present, so
// local development does not need exported variables. Values already set in
// the process environment take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret signs session tokens when JWT_SECRET is unset outside
// production. Validate rejects a production config without JWT_SECRET, so
// this value is never used there.
const DevJWTSecret = "dev-only-secret-change-me"

// Auth modes select how the caller identity is resolved.
const (
	AuthModeLocal     = "local"
	AuthModeDelegated = "delegated"
)

// Config is the root configuration object.
type Config struct {
	Service   ServiceConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Logging   LoggingConfig
	Tracing   TracingConfig
	Profiling ProfilingConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Shutdown  ShutdownConfig
}

type ServiceConfig struct {
	Name    string
	Version string
	Env     string
	Port    string
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32
}

type AuthConfig struct {
	Mode string
	// JWTSecret is empty when JWT_SECRET is unset; use SigningSecret.
	JWTSecret      string
	BcryptCost     int
	ProviderIssuer string
	ProviderSecret string
}

type LoggingConfig struct {
	Level string
}

type TracingConfig struct {
	Enabled    bool
	Endpoint   string
	SampleRate float64
}

type ProfilingConfig struct {
	Enabled  bool
	Endpoint string
}

type RedisConfig struct {
	URL               string
	AttemptsPerWindow int
	AttemptWindow     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type ShutdownConfig struct {
	Timeout             string
	ReadinessDrainDelay string
}

// Load reads configuration from the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Service: ServiceConfig{
			Name:    getEnv("SERVICE_NAME", "noteslite"),
			Version: getEnv("SERVICE_VERSION", "dev"),
			Env:     getEnv("ENV", "development"),
			Port:    getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			MaxConns: int32(getEnvAsInt("DB_MAX_CONNS", 10)),
		},
		Auth: AuthConfig{
			Mode:           strings.ToLower(getEnv("AUTH_MODE", AuthModeLocal)),
			JWTSecret:      os.Getenv("JWT_SECRET"),
			BcryptCost:     getEnvAsInt("BCRYPT_COST", 12),
			ProviderIssuer: getEnv("AUTH_PROVIDER_ISSUER", ""),
			ProviderSecret: getEnv("AUTH_PROVIDER_SECRET", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Tracing: TracingConfig{
			Enabled:    getEnvAsBool("TRACING_ENABLED", false),
			Endpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			SampleRate: getEnvAsFloat("OTEL_SAMPLE_RATE", 1.0),
		},
		Profiling: ProfilingConfig{
			Enabled:  getEnvAsBool("PROFILING_ENABLED", false),
			Endpoint: getEnv("PYROSCOPE_ENDPOINT", "http://localhost:4040"),
		},
		Redis: RedisConfig{
			URL:               getEnv("REDIS_URL", ""),
			AttemptsPerWindow: getEnvAsInt("LOGIN_ATTEMPTS_PER_WINDOW", 10),
			AttemptWindow:     getEnv("LOGIN_ATTEMPT_WINDOW", "15m"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Shutdown: ShutdownConfig{
			Timeout:             getEnv("SHUTDOWN_TIMEOUT", "10s"),
			ReadinessDrainDelay: getEnv("READINESS_DRAIN_DELAY", "0s"),
		},
	}
}

// IsProduction reports whether production-only behaviors apply.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Service.Env) {
	case "production", "prod":
		return true
	}
	return false
}

// SigningSecret returns the session signing secret. Outside production an
// unset JWT_SECRET falls back to DevJWTSecret.
func (c *Config) SigningSecret() (string, error) {
	if c.Auth.JWTSecret != "" {
		return c.Auth.JWTSecret, nil
	}
	if c.IsProduction() {
		return "", errors.New("JWT_SECRET must be set in production")
	}
	return DevJWTSecret, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if c.Service.Port == "" {
		return errors.New("PORT is required")
	}
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	switch c.Auth.Mode {
	case AuthModeLocal:
		if _, err := c.SigningSecret(); err != nil {
			return err
		}
		if c.Auth.BcryptCost < 10 || c.Auth.BcryptCost > 31 {
			return fmt.Errorf("BCRYPT_COST must be between 10 and 31, got %d", c.Auth.BcryptCost)
		}
	case AuthModeDelegated:
		if c.Auth.ProviderIssuer == "" || c.Auth.ProviderSecret == "" {
			return errors.New("AUTH_PROVIDER_ISSUER and AUTH_PROVIDER_SECRET are required in delegated mode")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.Auth.Mode)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be within [0, 1], got %v", c.Tracing.SampleRate)
	}
	if c.Redis.URL != "" && c.Redis.AttemptsPerWindow <= 0 {
		return errors.New("LOGIN_ATTEMPTS_PER_WINDOW must be positive")
	}
	for name, v := range map[string]string{
		"SHUTDOWN_TIMEOUT":      c.Shutdown.Timeout,
		"READINESS_DRAIN_DELAY": c.Shutdown.ReadinessDrainDelay,
		"LOGIN_ATTEMPT_WINDOW":  c.Redis.AttemptWindow,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, v, err)
		}
	}
	return nil
}

// GetShutdownTimeoutDuration returns the graceful shutdown timeout.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return parseDuration(c.Shutdown.Timeout, 10*time.Second)
}

// GetReadinessDrainDelayDuration returns how long /ready reports 503 before
// the HTTP server stops accepting connections.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return parseDuration(c.Shutdown.ReadinessDrainDelay, 0)
}

// GetAttemptWindowDuration returns the login throttling window.
func (c *Config) GetAttemptWindowDuration() time.Duration {
	return parseDuration(c.Redis.AttemptWindow, 15*time.Minute)
}

func parseDuration(v string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
