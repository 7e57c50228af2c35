package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/aspscan/internal/constants"
	"github.com/spf13/viper"
)

// Default scan settings
const (
	// DefaultFailOn is the severity at or above which the scan exits non-zero
	DefaultFailOn = "critical"

	// DefaultMinSeverity is the minimum severity reported
	DefaultMinSeverity = "low"

	// DefaultTimeoutSeconds bounds one full scan invocation
	DefaultTimeoutSeconds = 300
)

// Config represents the main configuration structure
type Config struct {
	// Scan holds file enumeration configuration
	Scan ScanConfig `json:"scan" mapstructure:"scan" yaml:"scan"`

	// Rules holds rule selection configuration
	Rules RulesConfig `json:"rules" mapstructure:"rules" yaml:"rules"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Performance holds parallelism configuration
	Performance PerformanceConfig `json:"performance" mapstructure:"performance" yaml:"performance"`
}

// ScanConfig holds configuration for file enumeration
type ScanConfig struct {
	// Extensions are the file extensions to scan
	Extensions []string `json:"extensions" mapstructure:"extensions" yaml:"extensions"`

	// ExcludeDirs are directory names excluded at any depth
	ExcludeDirs []string `json:"exclude_dirs" mapstructure:"exclude_dirs" yaml:"exclude_dirs"`

	// RespectGitignore enables .gitignore handling at the scan root
	RespectGitignore bool `json:"respect_gitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`
}

// RulesConfig holds configuration for rule selection
type RulesConfig struct {
	// Disabled lists rule IDs that must not run
	Disabled []string `json:"disabled" mapstructure:"disabled" yaml:"disabled"`

	// MinSeverity is the minimum severity level to report
	MinSeverity string `json:"min_severity" mapstructure:"min_severity" yaml:"min_severity"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: console, json, markdown
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// FailOn is the severity at or above which the process exits non-zero
	FailOn string `json:"fail_on" mapstructure:"fail_on" yaml:"fail_on"`
}

// PerformanceConfig holds parallelism configuration
type PerformanceConfig struct {
	// MaxGoroutines is the number of files scanned in parallel (0 = NumCPU)
	MaxGoroutines int `json:"max_goroutines" mapstructure:"max_goroutines" yaml:"max_goroutines"`

	// TimeoutSeconds bounds one full scan invocation (0 = default)
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Extensions: []string{".cs"},
			ExcludeDirs: []string{
				// Build outputs
				"bin",
				"obj",
				"TestResults",
				// Package caches
				"packages",
				"node_modules",
				// IDE and version control
				".vs",
				".git",
				// Generated artifacts
				"Migrations",
			},
			RespectGitignore: true,
		},
		Rules: RulesConfig{
			Disabled:    []string{},
			MinSeverity: DefaultMinSeverity,
		},
		Output: OutputConfig{
			Format: "console",
			FailOn: DefaultFailOn,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  0,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// If no config path is given, one is discovered from the target upward.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// A new viper instance per load avoids shared state between calls
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common
// locations, searching upward from the scan target first.
func findDefaultConfig(targetPath string) string {
	candidates := constants.ConfigFileCandidates

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			// Search from target directory up to the filesystem root
			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, constants.ToolName), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if config := searchConfigInDirectory(filepath.Join(home, ".config", constants.ToolName), candidates); config != "" {
			return config
		}
	}

	// ASPSCAN_CONFIG environment variable as final fallback
	if envConfig := os.Getenv(constants.EnvVarConfig); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	validFormats := map[string]bool{
		"console":  true,
		"json":     true,
		"markdown": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: console, json, markdown", c.Output.Format)
	}

	validSeverities := map[string]bool{
		"critical": true,
		"high":     true,
		"medium":   true,
		"low":      true,
	}
	if !validSeverities[c.Output.FailOn] {
		return fmt.Errorf("invalid output.fail_on '%s', must be one of: critical, high, medium, low", c.Output.FailOn)
	}
	if !validSeverities[c.Rules.MinSeverity] {
		return fmt.Errorf("invalid rules.min_severity '%s', must be one of: critical, high, medium, low", c.Rules.MinSeverity)
	}

	if len(c.Scan.Extensions) == 0 {
		return fmt.Errorf("scan.extensions cannot be empty")
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}
	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("scan", config.Scan)
	v.Set("rules", config.Rules)
	v.Set("output", config.Output)
	v.Set("performance", config.Performance)

	return v.WriteConfig()
}
