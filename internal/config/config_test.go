package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	if err != nil {
		t.Fatalf("Expected no error for missing file, got: %v", err)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("Expected default listen addr, got %s", cfg.ListenAddr)
	}
	if cfg.PurgeRetentionDays != DefaultPurgeRetentionDays {
		t.Errorf("Expected default retention, got %d", cfg.PurgeRetentionDays)
	}
	if cfg.PurgeBatchSize != DefaultPurgeBatchSize {
		t.Errorf("Expected default batch size, got %d", cfg.PurgeBatchSize)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic.yaml")
	content := "listen_addr: \":9090\"\npurge_retention_days: 30\npurge_batch_size: 100\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("Expected :9090, got %s", cfg.ListenAddr)
	}
	if cfg.PurgeRetentionDays != 30 {
		t.Errorf("Expected 30, got %d", cfg.PurgeRetentionDays)
	}
	if cfg.PurgeBatchSize != 100 {
		t.Errorf("Expected 100, got %d", cfg.PurgeBatchSize)
	}
}

func TestLoad_PartialFileKeepsRemainingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic.yaml")
	if err := os.WriteFile(path, []byte("purge_retention_days: 90\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("Expected default listen addr, got %s", cfg.ListenAddr)
	}
	if cfg.PurgeRetentionDays != 90 {
		t.Errorf("Expected 90, got %d", cfg.PurgeRetentionDays)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: [broken\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}

func TestPurgeRetention(t *testing.T) {
	cfg := Config{PurgeRetentionDays: 30}

	if got := cfg.PurgeRetention(); got != 30*24*time.Hour {
		t.Errorf("Expected 720h, got %s", got)
	}
}
