package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"netif-console/internal/domain/constants"
	"netif-console/internal/domain/errors"
)

// Store backends
const (
	StoreBackendFile  = "file"
	StoreBackendMySQL = "mysql"
)

// Config is a struct that holds application configuration
type Config struct {
	Store    StoreConfig
	Database DatabaseConfig
	Agent    AgentConfig
	Health   HealthConfig
	Language string
}

// StoreConfig selects and locates the configuration service backend
type StoreConfig struct {
	Backend     string
	Path        string
	ComponentID string
	// BackupKeep is the number of snapshot backups kept by the file backend; 0 disables backups
	BackupKeep int
}

// DatabaseConfig is a struct that holds database configuration for the mysql backend
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// AgentConfig is a struct that holds audit agent configuration
type AgentConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	Backoff      BackoffConfig
}

// BackoffConfig controls exponential backoff of the audit loop after failures
type BackoffConfig struct {
	Enabled     bool
	MaxInterval time.Duration
	Multiplier  float64
}

// HealthConfig is a struct that holds health check configuration
type HealthConfig struct {
	Port string
}

// ConfigLoader is an interface for loading configuration
type ConfigLoader interface {
	Load() (*Config, error)
}

// EnvironmentConfigLoader is an implementation that loads configuration from environment variables
type EnvironmentConfigLoader struct{}

// NewEnvironmentConfigLoader creates a new EnvironmentConfigLoader
func NewEnvironmentConfigLoader() ConfigLoader {
	return &EnvironmentConfigLoader{}
}

// Load loads configuration from environment variables
func (l *EnvironmentConfigLoader) Load() (*Config, error) {
	pollInterval := getEnvDurationOrDefault("POLL_INTERVAL", 30*time.Second)

	config := &Config{
		Store: StoreConfig{
			Backend:     strings.ToLower(getEnvOrDefault("STORE_BACKEND", constants.DefaultStoreBackend)),
			Path:        getEnvOrDefault("STORE_PATH", constants.DefaultStorePath),
			ComponentID: getEnvOrDefault("COMPONENT_PID", constants.NetworkConfigurationServicePID),
			BackupKeep:  getEnvIntOrDefault("STORE_BACKUP_KEEP", constants.DefaultBackupKeep),
		},
		Database: DatabaseConfig{
			Host:         getEnvOrDefault("DB_HOST", "localhost"),
			Port:         getEnvOrDefault("DB_PORT", "3306"),
			User:         getEnvOrDefault("DB_USER", "root"),
			Password:     getEnvOrDefault("DB_PASSWORD", ""),
			Database:     getEnvOrDefault("DB_NAME", "netif"),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvDurationOrDefault("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Agent: AgentConfig{
			PollInterval: pollInterval,
			MaxRetries:   getEnvIntOrDefault("MAX_RETRIES", 3),
			RetryDelay:   getEnvDurationOrDefault("RETRY_DELAY", 2*time.Second),
			Backoff: BackoffConfig{
				Enabled:     getEnvBoolOrDefault("BACKOFF_ENABLED", true),
				MaxInterval: getEnvDurationOrDefault("BACKOFF_MAX_INTERVAL", 10*pollInterval),
				Multiplier:  getEnvFloatOrDefault("BACKOFF_MULTIPLIER", 2.0),
			},
		},
		Health: HealthConfig{
			Port: getEnvOrDefault("HEALTH_PORT", constants.DefaultHealthPort),
		},
		Language: getEnvOrDefault("LANGUAGE", constants.DefaultLanguage),
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for the selected store backend
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreBackendFile:
		if c.Store.Path == "" {
			return errors.NewValidationError("store path not configured", nil)
		}
		if c.Store.BackupKeep < 0 {
			return errors.NewValidationError("invalid snapshot backup count", nil)
		}
	case StoreBackendMySQL:
		if c.Database.Host == "" {
			return errors.NewValidationError("database host not configured", nil)
		}
		if c.Database.Port == "" {
			return errors.NewValidationError("database port not configured", nil)
		}
		if c.Database.User == "" {
			return errors.NewValidationError("database user not configured", nil)
		}
		if c.Database.Database == "" {
			return errors.NewValidationError("database name not configured", nil)
		}
	default:
		return errors.NewValidationError("unknown store backend: "+c.Store.Backend, nil)
	}

	if c.Store.ComponentID == "" {
		return errors.NewValidationError("component PID not configured", nil)
	}

	// Validate agent configuration
	if c.Agent.PollInterval <= 0 {
		return errors.NewValidationError("invalid polling interval", nil)
	}
	if c.Agent.MaxRetries < 0 {
		return errors.NewValidationError("invalid max retry count", nil)
	}
	if c.Agent.Backoff.Enabled && c.Agent.Backoff.MaxInterval < c.Agent.PollInterval {
		return errors.NewValidationError("backoff max interval is shorter than polling interval", nil)
	}

	// Validate health check configuration
	if c.Health.Port == "" {
		return errors.NewValidationError("health check port not configured", nil)
	}

	return nil
}

// Environment variable helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
