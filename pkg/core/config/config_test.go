package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/argtree/foundation/core/error"
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

	if cfg.General.Name != "argtree" {
		t.Errorf("General.Name = %v, want argtree", cfg.General.Name)
	}
	if cfg.General.LogLevel != "info" {
		t.Errorf("General.LogLevel = %v, want info", cfg.General.LogLevel)
	}
	if cfg.Commands.Workers != 4 {
		t.Errorf("Commands.Workers = %v, want 4", cfg.Commands.Workers)
	}
	if cfg.Audit.Path != filepath.Join("./data", "audit.db") {
		t.Errorf("Audit.Path = %v", cfg.Audit.Path)
	}
	if cfg.Audit.Retention.Duration != 30*24*time.Hour {
		t.Errorf("Audit.Retention = %v", cfg.Audit.Retention.Duration)
	}
	if cfg.Shell.Prompt != "> " {
		t.Errorf("Shell.Prompt = %q", cfg.Shell.Prompt)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "argtree.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("ARGTREE_TEST_DATA", "/var/lib/argtree")

	path := writeConfig(t, `
[general]
name = "test"
data_dir = "$ARGTREE_TEST_DATA"
log_format = "json"

[commands]
definitions = "commands.yaml"
strip_slash = true
workers = 8
timeout = "2s"
permissions = ["cmd.*"]

[audit]
enabled = true
retention = "24h"

[shell]
watch = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.DataDir != "/var/lib/argtree" {
		t.Errorf("General.DataDir = %v", cfg.General.DataDir)
	}
	if cfg.Commands.Definitions != filepath.Join(filepath.Dir(path), "commands.yaml") {
		t.Errorf("Commands.Definitions = %v", cfg.Commands.Definitions)
	}
	if !cfg.Commands.StripSlash || cfg.Commands.Workers != 8 || cfg.Commands.Timeout.Duration != 2*time.Second {
		t.Errorf("Commands = %+v", cfg.Commands)
	}
	if cfg.Audit.Path != "/var/lib/argtree/audit.db" {
		t.Errorf("Audit.Path = %v", cfg.Audit.Path)
	}
	if cfg.Audit.Retention.Duration != 24*time.Hour {
		t.Errorf("Audit.Retention = %v", cfg.Audit.Retention.Duration)
	}
	if !cfg.Shell.Watch {
		t.Error("Shell.Watch = false, want true")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode mdwerror.Code
	}{
		{"syntax error", "[general\nname = 1", mdwerror.CodeInvalidConfig},
		{"unknown key", "[general]\ncolour = \"red\"", mdwerror.CodeInvalidConfig},
		{"negative workers", "[commands]\nworkers = -1", mdwerror.CodeInvalidConfig},
		{"bad log format", "[general]\nlog_format = \"xml\"", mdwerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !mdwerror.HasCode(err, tt.wantCode) {
				t.Errorf("Load() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !mdwerror.HasCode(err, mdwerror.CodeConfigError) {
		t.Errorf("Load(missing) error = %v, want %s", err, mdwerror.CodeConfigError)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "[general]\nname = \"from-env\"\n")
	t.Setenv("ARGTREE_CONFIG", path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "from-env" {
		t.Errorf("General.Name = %v, want from-env", cfg.General.Name)
	}
}

func TestHasPermission(t *testing.T) {
	cfg := &Config{Commands: CommandsConfig{Permissions: []string{"cmd.tp", "admin.*"}}}

	tests := []struct {
		permission string
		want       bool
	}{
		{"cmd.tp", true},
		{"cmd.ban", false},
		{"admin.ban", true},
		{"admin.user.kick", true},
		{"administrator", false},
	}
	for _, tt := range tests {
		if got := cfg.HasPermission(tt.permission); got != tt.want {
			t.Errorf("HasPermission(%q) = %v, want %v", tt.permission, got, tt.want)
		}
	}

	if !(&Config{Commands: CommandsConfig{Permissions: []string{"*"}}}).HasPermission("anything") {
		t.Error("wildcard should grant everything")
	}
}
