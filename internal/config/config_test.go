package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 8090 {
		t.Errorf("expected default port 8090, got %d", cfg.Server.Port)
	}
	if cfg.Fetch.TimeoutSeconds != 30 {
		t.Errorf("expected default fetch timeout 30s, got %d", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Fetch.Render {
		t.Error("render should default to off")
	}
	if cfg.Extract.DisableLLM {
		t.Error("llm extraction should default to enabled")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("expected defaults, got port %d", cfg.Server.Port)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `server:
  port: 9000
fetch:
  render: true
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if !cfg.Fetch.Render {
		t.Error("expected render enabled")
	}
	// Unspecified fields keep defaults
	if cfg.Fetch.TimeoutSeconds != 30 {
		t.Errorf("expected default timeout preserved, got %d", cfg.Fetch.TimeoutSeconds)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unterminated"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestLoadWithHashChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, h1, err := LoadWithHash(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(h1, "sha256:") {
		t.Errorf("expected sha256 prefix, got %q", h1)
	}

	if err := os.WriteFile(path, []byte("server:\n  port: 9001\n"), 0600); err != nil {
		t.Fatal(err)
	}
	_, h2, err := LoadWithHash(path)
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Error("expected hash to change with content")
	}
}

func TestDefaultYAMLParses(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(DefaultYAML()), &cfg); err != nil {
		t.Fatalf("default yaml does not parse: %v", err)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("expected port 8090 in default yaml, got %d", cfg.Server.Port)
	}
}
