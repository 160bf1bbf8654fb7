// Package config loads and validates codegraph configuration from
// .codegraph/config.json under the scan root.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigDirName is the per-project directory holding config, cache and logs.
const ConfigDirName = ".codegraph"

// Config represents the complete codegraph configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Scan     ScanConfig     `json:"scan" mapstructure:"scan"`
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Cache    CacheConfig    `json:"cache" mapstructure:"cache"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// ScanConfig controls directory walking and file parsing
type ScanConfig struct {
	// IgnoreDirs are directory names skipped during the walk
	IgnoreDirs []string `json:"ignoreDirs" mapstructure:"ignoreDirs"`

	// MaxFileSizeBytes skips files larger than this (0 disables the guard)
	MaxFileSizeBytes int64 `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`

	// FollowHidden includes dot-directories in the walk when true
	FollowHidden bool `json:"followHidden" mapstructure:"followHidden"`
}

// AnalysisConfig controls graph enrichment
type AnalysisConfig struct {
	// PartitionSeed seeds community detection for reproducible output
	PartitionSeed int64 `json:"partitionSeed" mapstructure:"partitionSeed"`

	// LouvainMaxIterations bounds the community detection outer loop
	LouvainMaxIterations int `json:"louvainMaxIterations" mapstructure:"louvainMaxIterations"`

	// LouvainResolution tunes community granularity (1.0 = classic modularity)
	LouvainResolution float64 `json:"louvainResolution" mapstructure:"louvainResolution"`

	// TopN is how many entries stats rankings carry
	TopN int `json:"topN" mapstructure:"topN"`
}

// CacheConfig controls the scan cache
type CacheConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Scan: ScanConfig{
			IgnoreDirs:       []string{"build", "cmake-build-debug", "cmake-build-release", "out", "third_party", "external", "node_modules"},
			MaxFileSizeBytes: 2000000,
			FollowHidden:     false,
		},
		Analysis: AnalysisConfig{
			PartitionSeed:        42,
			LouvainMaxIterations: 50,
			LouvainResolution:    1.0,
			TopN:                 5,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <root>/.codegraph/config.json.
// A missing config file yields the defaults, not an error.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ConfigDirName))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to <root>/.codegraph/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Analysis.LouvainResolution <= 0 {
		return &ConfigError{Field: "analysis.louvainResolution", Message: "must be positive"}
	}
	if c.Analysis.TopN < 0 {
		return &ConfigError{Field: "analysis.topN", Message: "must be non-negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
