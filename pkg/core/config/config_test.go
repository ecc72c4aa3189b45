package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	xterror "github.com/msto63/xentpl/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{5 * time.Minute}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "5m0s" {
		t.Errorf("MarshalText() = %v, want 5m0s", string(result))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.Name != "xentpl" {
		t.Errorf("General.Name = %v, want xentpl", cfg.General.Name)
	}
	if cfg.General.LogLevel != "info" {
		t.Errorf("General.LogLevel = %v, want info", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "text" {
		t.Errorf("General.LogFormat = %v, want text", cfg.General.LogFormat)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should default to true")
	}
	if cfg.Cache.Path != filepath.Join("./data", "templates.db") {
		t.Errorf("Cache.Path = %v", cfg.Cache.Path)
	}
	if cfg.Cache.MemoryTTL.Duration != 10*time.Minute {
		t.Errorf("Cache.MemoryTTL = %v, want 10m", cfg.Cache.MemoryTTL.Duration)
	}
	if cfg.Cache.MemoryMaxItems != 1000 {
		t.Errorf("Cache.MemoryMaxItems = %v, want 1000", cfg.Cache.MemoryMaxItems)
	}
	if cfg.Phrases.Locale != "en" {
		t.Errorf("Phrases.Locale = %v, want en", cfg.Phrases.Locale)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %v, want empty", cfg.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "xentpl.toml")

	content := `
[general]
name = "forum"
data_dir = "/var/lib/forum"
log_level = "debug"

[compiler]
max_stack_depth = 64
max_input_length = 4096

[cache]
enabled = false
memory_ttl = "30s"

[phrases]
locale = "de"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.Name != "forum" {
		t.Errorf("General.Name = %v, want forum", cfg.General.Name)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Compiler.MaxStackDepth != 64 || cfg.Compiler.MaxInputLength != 4096 {
		t.Errorf("Compiler = %+v", cfg.Compiler)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be false")
	}
	if cfg.Cache.MemoryTTL.Duration != 30*time.Second {
		t.Errorf("Cache.MemoryTTL = %v, want 30s", cfg.Cache.MemoryTTL.Duration)
	}
	// defaults derive from loaded values
	if cfg.Cache.Path != filepath.Join("/var/lib/forum", "templates.db") {
		t.Errorf("Cache.Path = %v", cfg.Cache.Path)
	}
	if cfg.Phrases.Locale != "de" {
		t.Errorf("Phrases.Locale = %v, want de", cfg.Phrases.Locale)
	}
	if cfg.Path != configPath {
		t.Errorf("Path = %v, want %v", cfg.Path, configPath)
	}
}

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "xentpl.yaml")

	content := `
general:
  log_format: json
cache:
  path: /tmp/cache.db
  memory_ttl: 2m
  memory_max_items: 50
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogFormat != "json" {
		t.Errorf("General.LogFormat = %v, want json", cfg.General.LogFormat)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should keep its default")
	}
	if cfg.Cache.Path != "/tmp/cache.db" {
		t.Errorf("Cache.Path = %v", cfg.Cache.Path)
	}
	if cfg.Cache.MemoryTTL.Duration != 2*time.Minute {
		t.Errorf("Cache.MemoryTTL = %v, want 2m", cfg.Cache.MemoryTTL.Duration)
	}
	if cfg.Cache.MemoryMaxItems != 50 {
		t.Errorf("Cache.MemoryMaxItems = %v, want 50", cfg.Cache.MemoryMaxItems)
	}
}

func TestLoad_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := Load(filepath.Join(tmpDir, "missing.toml")); !xterror.HasCode(err, xterror.CodeNotFound) {
		t.Errorf("Load(missing) error = %v, want not found", err)
	}

	broken := filepath.Join(tmpDir, "broken.toml")
	if err := os.WriteFile(broken, []byte("[general\nname ="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(broken); !xterror.HasCode(err, xterror.CodeConfigError) {
		t.Errorf("Load(broken) error = %v, want config error", err)
	}

	invalid := filepath.Join(tmpDir, "invalid.toml")
	if err := os.WriteFile(invalid, []byte("[general]\nlog_level = \"loud\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !xterror.HasCode(err, xterror.CodeInvalidConfig) {
		t.Errorf("Load(invalid) error = %v, want invalid config", err)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XENTPL_TEST_DIR", tmpDir)

	configPath := filepath.Join(tmpDir, "xentpl.toml")
	content := "[cache]\npath = \"$XENTPL_TEST_DIR/t.db\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("$XENTPL_TEST_DIR/xentpl.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.Path != tmpDir+"/t.db" {
		t.Errorf("Cache.Path = %v", cfg.Cache.Path)
	}
}

func TestLoadFromEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "env.toml")
	if err := os.WriteFile(configPath, []byte("[general]\nname = \"from-env\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvConfigPath, configPath)
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "from-env" {
		t.Errorf("General.Name = %v, want from-env", cfg.General.Name)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"log level", func(c *Config) { c.General.LogLevel = "chatty" }, "general.log_level"},
		{"log format", func(c *Config) { c.General.LogFormat = "xml" }, "general.log_format"},
		{"stack depth", func(c *Config) { c.Compiler.MaxStackDepth = -1 }, "compiler.max_stack_depth"},
		{"input length", func(c *Config) { c.Compiler.MaxInputLength = -1 }, "compiler.max_input_length"},
		{"ttl", func(c *Config) { c.Cache.MemoryTTL.Duration = -time.Second }, "cache.memory_ttl"},
		{"max items", func(c *Config) { c.Cache.MemoryMaxItems = -5 }, "cache.memory_max_items"},
		{"cache path", func(c *Config) { c.Cache.Path = " " }, "cache.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			var xerr *xterror.Error
			if err == nil || !errors.As(err, &xerr) {
				t.Fatalf("Validate() error = %v, want *error.Error", err)
			}
			if xerr.Code() != xterror.CodeInvalidConfig {
				t.Errorf("code = %s", xerr.Code())
			}
			if xerr.Details()["field"] != tt.field {
				t.Errorf("field = %v, want %v", xerr.Details()["field"], tt.field)
			}
		})
	}

	cfg := Default()
	cfg.Cache.Enabled = false
	cfg.Cache.Path = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled cache needs no path: %v", err)
	}
}
