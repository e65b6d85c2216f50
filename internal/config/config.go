package config

import (
	"os"
	"strconv"
	"time"

	"bridgelens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig `validate:"required"`
	Solver   SolverConfig   `validate:"required"`
	Roster   RosterConfig
	Output   OutputConfig
	Analysis AnalysisConfig
}

// DatabaseConfig holds deal database connection settings
type DatabaseConfig struct {
	DSN string `validate:"required"`
}

// SolverConfig holds double-dummy solver settings
type SolverConfig struct {
	URL     string `validate:"required"`
	Timeout time.Duration
}

// RosterConfig holds master point roster settings
type RosterConfig struct {
	Enabled bool
	URL     string
}

// OutputConfig holds report output settings
type OutputConfig struct {
	Dir string
}

// AnalysisConfig holds analysis pipeline settings
type AnalysisConfig struct {
	Workers int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	dbConfig, err := loadDatabaseConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load database configuration")
	}
	config.Database = *dbConfig

	config.Solver = *loadSolverConfig()
	config.Roster = *loadRosterConfig()
	config.Output = *loadOutputConfig()
	config.Analysis = *loadAnalysisConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() (*DatabaseConfig, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}
	return &DatabaseConfig{DSN: dsn}, nil
}

// loadSolverConfig leaves the URL empty when unset; only commands that
// contact the solver require it, via RequireSolver.
func loadSolverConfig() *SolverConfig {
	return &SolverConfig{
		URL:     getEnvOrDefault("SOLVER_URL", ""),
		Timeout: getEnvDurationOrDefault("SOLVER_TIMEOUT", 2*time.Minute),
	}
}

func loadRosterConfig() *RosterConfig {
	return &RosterConfig{
		Enabled: getEnvBoolOrDefault("ROSTER_ENABLED", true),
		URL:     getEnvOrDefault("ROSTER_URL", ""),
	}
}

func loadOutputConfig() *OutputConfig {
	return &OutputConfig{
		Dir: getEnvOrDefault("OUTPUT_DIR", "./reports"),
	}
}

func loadAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		Workers: getEnvIntOrDefault("ANALYSIS_WORKERS", 4),
	}
}

func validateConfig(config *Config) error {
	if config.Database.DSN == "" {
		return errors.ConfigInvalid("database DSN is required")
	}
	if config.Analysis.Workers < 1 {
		return errors.ConfigInvalid("analysis worker count must be positive")
	}
	return nil
}

// RequireSolver validates the solver settings for commands that contact it.
func (c *Config) RequireSolver() error {
	if c.Solver.URL == "" {
		return errors.ConfigInvalid("SOLVER_URL is required")
	}
	return nil
}

// Helper functions for environment variable parsing
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
