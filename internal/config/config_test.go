package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "STORE_DRIVER", "DATABASE_URL", "SQLITE_PATH", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/developers")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.StoreDriver != DriverPostgres || cfg.SQLitePath != "developers.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" || cfg.ShutdownTimeout != 15*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Fatalf("cors origins: %v", cfg.CORSOrigins)
	}
	if cfg.HTTPAddress() != ":8080" {
		t.Fatalf("address: %s", cfg.HTTPAddress())
	}
}

func TestLoadPostgresRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)
	if _, err := Load(""); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("SHUTDOWN_TIMEOUT", "garbage")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.StoreDriver != DriverMemory {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"https://a.example.com", "https://b.example.com"}) {
		t.Fatalf("cors origins: %v", cfg.CORSOrigins)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Fatalf("invalid timeout should fall back, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadYAMLOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "postgres")

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `port: "7070"
store_driver: sqlite
sqlite_path: /tmp/dev.db
cors_origins:
  - https://app.example.com
log_level: debug
shutdown_timeout: 5s
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7070" || cfg.StoreDriver != DriverSQLite || cfg.SQLitePath != "/tmp/dev.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"https://app.example.com"}) {
		t.Fatalf("cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "memory")

	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("empty file should be accepted: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "memory")
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	base := Config{Port: "8080", StoreDriver: DriverMemory, ShutdownTimeout: time.Second}
	if err := base.Validate(); err != nil {
		t.Fatalf("memory config: %v", err)
	}

	unknown := base
	unknown.StoreDriver = "mongo"
	if err := unknown.Validate(); err == nil {
		t.Fatal("expected error for unknown driver")
	}

	sqlite := base
	sqlite.StoreDriver = DriverSQLite
	if err := sqlite.Validate(); err == nil {
		t.Fatal("expected error for sqlite without path")
	}

	noTimeout := base
	noTimeout.ShutdownTimeout = 0
	if err := noTimeout.Validate(); err == nil {
		t.Fatal("expected error for zero shutdown timeout")
	}
}
