package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 8080
database:
  host: db.internal
  port: 5432
  user: florist
  password: s3cret
  database: florist
rabbitmq:
  host: mq.internal
  port: 5672
  user: guest
  password: guest
auth:
  jwt_secret: topsecret
  token_ttl_hours: 24
upload:
  dir: /srv/uploads
  max_file_bytes: 1048576
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Errorf("http port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host = %s, want db.internal", cfg.Database.Host)
	}
	if cfg.Auth.TokenTTLHours != 24 {
		t.Errorf("token ttl = %d, want 24", cfg.Auth.TokenTTLHours)
	}
	if cfg.Upload.Dir != "/srv/uploads" {
		t.Errorf("upload dir = %s, want /srv/uploads", cfg.Upload.Dir)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: topsecret
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Port != 3000 {
		t.Errorf("default port = %d, want 3000", cfg.HTTP.Port)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("default max conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Auth.TokenTTLHours != 168 {
		t.Errorf("default ttl = %d, want 168", cfg.Auth.TokenTTLHours)
	}
	if cfg.Upload.PublicPath != "/uploads" {
		t.Errorf("default public path = %s, want /uploads", cfg.Upload.PublicPath)
	}
	if cfg.Upload.MaxFileBytes != 2<<20 {
		t.Errorf("default max file bytes = %d, want %d", cfg.Upload.MaxFileBytes, 2<<20)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 8080
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want missing jwt_secret error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() error = nil, want read error")
	}
}
