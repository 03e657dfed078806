package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	content := `
server:
  listen: ":9090"
  postgresDsn: "host=localhost user=postgres"
  redisAddr: "localhost:6379"
  memcachedAddr: "localhost:11211"
auth:
  tokenTTLHours: 12
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Listen != ":9090" {
		t.Errorf("listen = %q", cfg.Server.Listen)
	}
	if cfg.Auth.TokenTTLHours != 12 {
		t.Errorf("tokenTTLHours = %d", cfg.Auth.TokenTTLHours)
	}
	if cfg.Server.UploadDir != "uploads" {
		t.Errorf("uploadDir default = %q", cfg.Server.UploadDir)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Listen != ":8000" {
		t.Errorf("listen default = %q", cfg.Server.Listen)
	}
	if cfg.Auth.TokenTTLHours != 24 {
		t.Errorf("tokenTTLHours default = %d", cfg.Auth.TokenTTLHours)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
