// Package config loads runtime configuration for the surrounding system:
// servers, fetching, extraction, history. The engine's weight and threshold
// tables are compiled-in constants and deliberately not configurable.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable runtime parameters.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Extract ExtractConfig `yaml:"extract"`
	History HistoryConfig `yaml:"history"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// FetchConfig configures document fetching.
type FetchConfig struct {
	TimeoutSeconds int  `yaml:"timeout_seconds"`
	Render         bool `yaml:"render"`
}

// ExtractConfig configures the extraction collaborator.
type ExtractConfig struct {
	Model      string `yaml:"model"`
	DisableLLM bool   `yaml:"disable_llm"`
}

// HistoryConfig configures the analysis history store.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// FetchTimeout returns the configured fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8090},
		Fetch:   FetchConfig{TimeoutSeconds: 30},
		Extract: ExtractConfig{},
		History: HistoryConfig{Path: defaultHistoryPath()},
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "poliscan.db"
	}
	return filepath.Join(home, ".poliscan", "history.db")
}

// DefaultPath returns ~/.poliscan/config.yaml, or "" when the home directory
// is unavailable.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".poliscan", "config.yaml")
}

// Load reads configuration from a YAML file. Empty path falls back to the
// default location. Missing file returns defaults. Invalid YAML returns an
// error.
func Load(path string) (*Config, error) {
	cfg, _, err := LoadWithHash(path)
	return cfg, err
}

// LoadWithHash loads configuration and returns the SHA-256 of the raw YAML
// bytes on disk, for change detection. Defaults hash as empty input.
func LoadWithHash(path string) (*Config, string, error) {
	if path == "" {
		path = DefaultPath()
	}

	emptyHash := func() string {
		h := sha256.Sum256(nil)
		return "sha256:" + hex.EncodeToString(h[:])
	}

	if path == "" {
		return Default(), emptyHash(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), emptyHash(), nil
		}
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	h := sha256.Sum256(data)
	hash := "sha256:" + hex.EncodeToString(h[:])

	// Start with defaults, YAML overwrites only specified fields
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, hash, nil
}

// DefaultYAML returns a commented YAML string for init-config.
func DefaultYAML() string {
	return `# poliscan configuration
# Generated by: poliscan init-config

# HTTP API server.
server:
  port: 8090

# Document fetching.
# render: true routes URL fetches through a headless browser for
# JavaScript-heavy policy pages (slower, requires Chrome).
fetch:
  timeout_seconds: 30
  render: false

# Statement extraction.
# model: Anthropic model used when ANTHROPIC_API_KEY is set.
# disable_llm: true forces the deterministic heuristic extractor.
extract:
  model: ""
  disable_llm: false

# Analysis history database (SQLite). Empty path disables history.
history:
  path: ""
`
}
