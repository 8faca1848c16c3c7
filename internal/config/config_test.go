package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Database.Path == "" {
		t.Error("expected default database path")
	}
	if cfg.CacheTTL() != 60*time.Second {
		t.Errorf("expected 60s cache TTL, got %v", cfg.CacheTTL())
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "botadmin.yaml")
	data := []byte("database:\n  path: /tmp/bots.db\ncache:\n  ttl_seconds: 30\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != path {
		t.Errorf("expected loaded path %q, got %q", path, loaded)
	}
	if cfg.Database.Path != "/tmp/bots.db" {
		t.Errorf("unexpected db path %q", cfg.Database.Path)
	}
	if cfg.CacheTTL() != 30*time.Second {
		t.Errorf("expected 30s TTL, got %v", cfg.CacheTTL())
	}
}

func TestLoadFromPathAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "botadmin.yaml")
	if err := os.WriteFile(path, []byte("database:\n  path: /tmp/x.db\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Cache.TTLSeconds != 60 {
		t.Errorf("expected default TTL 60, got %d", cfg.Cache.TTLSeconds)
	}
}

func TestLoadFromPathBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "botadmin.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFindConfigPathEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BOTADMIN_CONFIG", path)
	if got := FindConfigPath(); got != path {
		t.Errorf("expected %q, got %q", path, got)
	}
}
