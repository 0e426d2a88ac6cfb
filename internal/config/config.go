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

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds game-related configuration
type GameConfig struct {
	RetryEscalationThreshold int
	QuizPassPercent          int
	// TimingScale multiplies every scripted delay; 1 is real time
	TimingScale        float64
	SessionIdleTimeout time.Duration
	CleanupInterval    time.Duration
	// Seed fixes item sampling when non-zero
	Seed uint64
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load reads an optional .env file and then builds configuration from
// environment variables with defaults
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds configuration from the process environment only
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Env:  getEnv("ENV", "development"),
		},
		Game: GameConfig{
			RetryEscalationThreshold: getEnvInt("RETRY_ESCALATION_THRESHOLD", 2),
			QuizPassPercent:          getEnvInt("QUIZ_PASS_PERCENT", 70),
			TimingScale:              getEnvFloat("TIMING_SCALE", 1),
			SessionIdleTimeout:       time.Duration(getEnvInt("SESSION_IDLE_TIMEOUT_MINUTES", 120)) * time.Minute,
			CleanupInterval:          time.Duration(getEnvInt("CLEANUP_INTERVAL_MINUTES", 10)) * time.Minute,
			Seed:                     uint64(getEnvInt("SEED", 0)),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
	}
}

// Validate rejects values the games cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.Game.RetryEscalationThreshold < 1 {
		errs = append(errs, fmt.Errorf("RETRY_ESCALATION_THRESHOLD must be at least 1, got %d", c.Game.RetryEscalationThreshold))
	}
	if c.Game.QuizPassPercent < 1 || c.Game.QuizPassPercent > 100 {
		errs = append(errs, fmt.Errorf("QUIZ_PASS_PERCENT must be within 1-100, got %d", c.Game.QuizPassPercent))
	}
	if c.Game.TimingScale <= 0 {
		errs = append(errs, fmt.Errorf("TIMING_SCALE must be positive, got %g", c.Game.TimingScale))
	}
	if c.Game.SessionIdleTimeout <= 0 {
		errs = append(errs, errors.New("SESSION_IDLE_TIMEOUT_MINUTES must be positive"))
	}
	if c.Game.CleanupInterval <= 0 {
		errs = append(errs, errors.New("CLEANUP_INTERVAL_MINUTES must be positive"))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as an integer or a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat returns an environment variable as a float or a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
