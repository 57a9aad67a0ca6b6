package config

import (
	"os"
	"strconv"

	"synaptology/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data      DataConfig
	Analysis  AnalysisConfig
	Stability StabilityConfig
	Swap      SwapConfig
}

// DataConfig holds input locations
type DataConfig struct {
	MeasurementDir     string
	MeasurementPattern string
	SubjectTable       string
	Workers            int
}

// AnalysisConfig holds latency correction settings
type AnalysisConfig struct {
	DeepRadialCorrectionMs float64
}

// StabilityConfig holds amplitude stability thresholds
type StabilityConfig struct {
	MinSupport int
	SlopeLimit float64
	CVLimit    float64
}

// SwapConfig holds swap randomization settings for association and loop analysis
type SwapConfig struct {
	ReferenceSets int
	Seed          int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:      *loadDataConfig(),
		Analysis:  *loadAnalysisConfig(),
		Stability: *loadStabilityConfig(),
		Swap:      *loadSwapConfig(),
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		MeasurementDir:     getEnvOrDefault("SYN_DATA_DIR", "./data_raw"),
		MeasurementPattern: getEnvOrDefault("SYN_MEASUREMENT_PATTERN", "*.dat"),
		SubjectTable:       getEnvOrDefault("SYN_SUBJECT_TABLE", "./data_synaptology/Synaptology_HQ_tidy.csv"),
		Workers:            getEnvIntOrDefault("SYN_WORKERS", 4),
	}
}

func loadAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		DeepRadialCorrectionMs: getEnvFloatOrDefault("SYN_DR_CORRECTION_MS", 1.7),
	}
}

func loadStabilityConfig() *StabilityConfig {
	return &StabilityConfig{
		MinSupport: getEnvIntOrDefault("SYN_MIN_SUPPORT", 20),
		SlopeLimit: getEnvFloatOrDefault("SYN_SLOPE_LIMIT", 0.20),
		CVLimit:    getEnvFloatOrDefault("SYN_CV_LIMIT", 0.30),
	}
}

func loadSwapConfig() *SwapConfig {
	return &SwapConfig{
		ReferenceSets: getEnvIntOrDefault("SYN_REFERENCE_SETS", 100000),
		Seed:          int64(getEnvIntOrDefault("SYN_SWAP_SEED", 1)),
	}
}

// Validate checks values that flags may also have overridden.
func (c *Config) Validate() error {
	if c.Data.MeasurementPattern == "" {
		return errors.ConfigInvalid("measurement pattern is required")
	}
	if c.Data.Workers < 1 {
		return errors.ConfigInvalid("workers must be at least 1")
	}
	if c.Analysis.DeepRadialCorrectionMs < 0 {
		return errors.ConfigInvalid("deep radial correction cannot be negative")
	}
	if c.Stability.MinSupport < 2 {
		return errors.ConfigInvalid("minimum support must be at least 2 samples")
	}
	if c.Swap.ReferenceSets < 1 {
		return errors.ConfigInvalid("reference sets must be at least 1")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
