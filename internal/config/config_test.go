package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amonks/tasklist/internal/config"
	"github.com/amonks/tasklist/internal/testsupport"
)

func writeGlobalConfig(t *testing.T, homeDir, content string) {
	t.Helper()

	configDir := filepath.Join(homeDir, ".config", "tasklist")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}
}

func writeProjectConfig(t *testing.T, dir, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, config.ProjectFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}
}

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Server.Addr != "" {
		t.Errorf("expected empty Addr, got %q", cfg.Server.Addr)
	}
	if cfg.Log.Level != "" {
		t.Errorf("expected empty Level, got %q", cfg.Log.Level)
	}
	if !cfg.Store.SeedEnabled() {
		t.Error("expected seeding to default to enabled")
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `
[server]
addr = " 127.0.0.1:9000 "

[log]
level = "debug"
json = true

[store]
seed = false
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q, expected %q", cfg.Server.Addr, "127.0.0.1:9000")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, expected %q", cfg.Log.Level, "debug")
	}
	if !cfg.Log.JSON {
		t.Error("expected JSON logging")
	}
	if cfg.Store.SeedEnabled() {
		t.Error("expected seeding disabled")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `this is not valid toml [`)

	if _, err := config.Load(tmpDir); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	writeProjectConfig(t, tmpDir, `
[server]
adr = "typo"
`)

	if _, err := config.Load(tmpDir); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoad_UsesGlobalWhenProjectMissing(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	writeGlobalConfig(t, homeDir, `
[server]
addr = ":7000"

[store]
seed = false
`)

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Addr != ":7000" {
		t.Errorf("Addr = %q, expected %q", cfg.Server.Addr, ":7000")
	}
	if cfg.Store.SeedEnabled() {
		t.Error("expected global seed=false to apply")
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	writeGlobalConfig(t, homeDir, `
[server]
addr = ":7000"

[log]
level = "warn"
json = true

[store]
seed = false
`)

	projectDir := t.TempDir()
	writeProjectConfig(t, projectDir, `
[log]
json = false

[store]
seed = true
`)

	cfg, err := config.Load(projectDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Addr != ":7000" {
		t.Errorf("Addr = %q, expected global %q", cfg.Server.Addr, ":7000")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Level = %q, expected global %q", cfg.Log.Level, "warn")
	}
	if cfg.Log.JSON {
		t.Error("expected project json=false to override global")
	}
	if !cfg.Store.SeedEnabled() {
		t.Error("expected project seed=true to override global")
	}
}

func TestLoad_ProjectEmptyOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	writeGlobalConfig(t, homeDir, `
[server]
addr = ":7000"
`)

	projectDir := t.TempDir()
	writeProjectConfig(t, projectDir, `
[server]
addr = ""
`)

	cfg, err := config.Load(projectDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Addr != "" {
		t.Errorf("Addr = %q, expected empty string", cfg.Server.Addr)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	testsupport.SetupTestHome(t)
	projectDir := t.TempDir()
	writeProjectConfig(t, projectDir, `
[server]
addr = ":7000"

[log]
level = "warn"
`)

	t.Setenv(config.EnvAddr, ":9100")
	t.Setenv(config.EnvLogLevel, "debug")

	cfg, err := config.Load(projectDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Addr != ":9100" {
		t.Errorf("Addr = %q, expected %q", cfg.Server.Addr, ":9100")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, expected %q", cfg.Log.Level, "debug")
	}
}
