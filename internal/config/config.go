// Package config loads docgenie settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxRetriesLimit caps generator.max_retries.
const MaxRetriesLimit = 10

// FileNames are the config file names looked up by LoadFromDir, in order.
var FileNames = []string{".docgenie.yaml", "docgenie.yaml"}

// Config holds all configuration for docgenie.
type Config struct {
	Scan      ScanConfig      `yaml:"scan"`
	Coverage  CoverageConfig  `yaml:"coverage"`
	Generator GeneratorConfig `yaml:"generator"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ScanConfig holds diff scanning configuration.
type ScanConfig struct {
	Staged       bool     `yaml:"staged"`
	ContextLines int      `yaml:"context_lines"` // -U value passed to git diff
	Extensions   []string `yaml:"extensions"`
	Excludes     []string `yaml:"excludes"` // doublestar globs relative to the root
	MaxFileBytes int64    `yaml:"max_file_bytes"`
}

// CoverageConfig holds coverage report configuration.
type CoverageConfig struct {
	Threshold float64 `yaml:"threshold"` // percent; 0 disables the check
	Format    string  `yaml:"format"`    // "table", "json", "markdown", "html"
	Output    string  `yaml:"output"`    // file path; empty writes to stdout
	Workers   int     `yaml:"workers"`
}

// GeneratorConfig holds documentation generator configuration.
type GeneratorConfig struct {
	Provider    string        `yaml:"provider"` // "openai", "ollama", "anthropic"
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	APIKeyEnv   string        `yaml:"api_key_env"` // Environment variable for API key
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
	Concurrency int           `yaml:"concurrency"`
	MaxRetries  int           `yaml:"max_retries"`
}

// CacheConfig holds generation cache configuration.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // relative paths resolve against the project dir
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			ContextLines: 1,
			Extensions:   []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".mts", ".cts"},
			Excludes:     []string{"**/node_modules/**", "**/dist/**"},
			MaxFileBytes: 10 << 20,
		},
		Coverage: CoverageConfig{
			Format:  "table",
			Workers: 8,
		},
		Generator: GeneratorConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   1024,
			APIKeyEnv:   "OPENAI_API_KEY",
			Timeout:     60 * time.Second,
			Concurrency: 4,
			MaxRetries:  3,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    filepath.Join(".docgenie", "cache.db"),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) // #nosec G304 - config path is chosen by the operator
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads the first of FileNames found in dir, or defaults.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return DefaultConfig(), nil
}

// Validate checks values that cannot be corrected silently.
func (c *Config) Validate() error {
	if c.Scan.ContextLines < 0 {
		return fmt.Errorf("scan.context_lines must not be negative, got %d", c.Scan.ContextLines)
	}

	if err := ValidateThreshold(c.Coverage.Threshold); err != nil {
		return fmt.Errorf("coverage.%w", err)
	}

	switch strings.ToLower(c.Coverage.Format) {
	case "table", "json", "markdown", "md", "html":
	default:
		return fmt.Errorf("coverage.format %q is not supported", c.Coverage.Format)
	}

	switch strings.ToLower(c.Generator.Provider) {
	case "openai", "ollama", "anthropic", "claude":
	default:
		return fmt.Errorf("generator.provider %q is not supported", c.Generator.Provider)
	}

	if c.Generator.Concurrency < 1 {
		c.Generator.Concurrency = 1
	}

	c.Generator.MaxRetries = min(max(c.Generator.MaxRetries, 0), MaxRetriesLimit)

	if c.Coverage.Workers < 1 {
		c.Coverage.Workers = 1
	}

	return nil
}

// ValidateThreshold checks a coverage threshold percentage.
func ValidateThreshold(threshold float64) error {
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("threshold must be within [0, 100], got %g", threshold)
	}

	return nil
}

// CachePath resolves the cache database path against dir.
func (c *Config) CachePath(dir string) string {
	if filepath.IsAbs(c.Cache.Path) {
		return c.Cache.Path
	}

	return filepath.Join(dir, c.Cache.Path)
}

// APIKey returns the generator API key from the configured environment
// variable.
func (c *Config) APIKey() string {
	if c.Generator.APIKeyEnv == "" {
		return ""
	}

	return os.Getenv(c.Generator.APIKeyEnv)
}
