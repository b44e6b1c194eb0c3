package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunInitConfig(t *testing.T) {
	tmpDir := t.TempDir()

	configPath = filepath.Join(tmpDir, "config.yaml")
	defer func() { configPath = "" }()

	if err := runInitConfig(nil, nil); err != nil {
		t.Fatalf("runInitConfig failed: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("config.yaml not created: %v", err)
	}
	for _, want := range []string{"server:", "fetch:", "extract:", "history:"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("config.yaml missing %q section", want)
		}
	}
}

func TestRunInitConfigNoOverwrite(t *testing.T) {
	tmpDir := t.TempDir()

	configPath = filepath.Join(tmpDir, "config.yaml")
	defer func() { configPath = "" }()

	if err := os.WriteFile(configPath, []byte("server:\n  port: 1234\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runInitConfig(nil, nil); err == nil {
		t.Fatal("expected error for existing config")
	}

	data, _ := os.ReadFile(configPath)
	if !strings.Contains(string(data), "1234") {
		t.Error("existing config was overwritten")
	}
}
