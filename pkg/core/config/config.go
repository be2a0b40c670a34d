package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	mdwerror "github.com/msto63/argtree/foundation/core/error"
)

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Commands CommandsConfig `toml:"commands"`
	Audit    AuditConfig    `toml:"audit"`
	Shell    ShellConfig    `toml:"shell"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	DataDir   string `toml:"data_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// CommandsConfig holds command tree and execution settings
type CommandsConfig struct {
	// Definitions is the YAML or TOML file describing the command tree
	Definitions string   `toml:"definitions"`
	StripSlash  bool     `toml:"strip_slash"`
	Workers     int      `toml:"workers"`
	Timeout     Duration `toml:"timeout"`
	// Permissions granted to the local sender
	Permissions []string `toml:"permissions"`
	AuditLog    bool     `toml:"audit_log"`
}

// AuditConfig holds outcome store settings
type AuditConfig struct {
	Enabled   bool     `toml:"enabled"`
	Path      string   `toml:"path"`
	Retention Duration `toml:"retention"`
}

// ShellConfig holds interactive shell settings
type ShellConfig struct {
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history_file"`
	Watch       bool   `toml:"watch"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerror.Newf("config file not found: %s", path).
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("path", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, mdwerror.Newf("unknown config keys: %s", strings.Join(keys, ", ")).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	cfg.resolvePaths(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the ARGTREE_CONFIG environment
// variable or a default location. Without a file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("ARGTREE_CONFIG")
	if path == "" {
		defaultPaths := []string{
			"./configs/argtree.toml",
			"./argtree.toml",
			filepath.Join(os.Getenv("HOME"), ".config/argtree/argtree.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "argtree"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Commands
	if c.Commands.Definitions == "" {
		c.Commands.Definitions = "./commands.yaml"
	}
	if c.Commands.Workers == 0 {
		c.Commands.Workers = 4
	}

	// Audit
	if c.Audit.Path == "" {
		c.Audit.Path = filepath.Join(c.General.DataDir, "audit.db")
	}
	if c.Audit.Retention.Duration == 0 {
		c.Audit.Retention.Duration = 30 * 24 * time.Hour
	}

	// Shell
	if c.Shell.Prompt == "" {
		c.Shell.Prompt = "> "
	}
	if c.Shell.HistoryFile == "" {
		c.Shell.HistoryFile = filepath.Join(c.General.DataDir, "history")
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Commands.Definitions = os.ExpandEnv(c.Commands.Definitions)
	c.Audit.Path = os.ExpandEnv(c.Audit.Path)
	c.Shell.HistoryFile = os.ExpandEnv(c.Shell.HistoryFile)
}

// resolvePaths makes the definitions path relative to the config file
func (c *Config) resolvePaths(dir string) {
	if !filepath.IsAbs(c.Commands.Definitions) {
		c.Commands.Definitions = filepath.Join(dir, c.Commands.Definitions)
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var problems []string

	if c.Commands.Workers < 1 {
		problems = append(problems, fmt.Sprintf("commands.workers must be positive, got %d", c.Commands.Workers))
	}
	if c.Commands.Timeout.Duration < 0 {
		problems = append(problems, "commands.timeout must not be negative")
	}
	if c.Audit.Retention.Duration < 0 {
		problems = append(problems, "audit.retention must not be negative")
	}
	if c.Audit.Enabled && c.Audit.Path == "" {
		problems = append(problems, "audit.path is required when audit is enabled")
	}
	switch strings.ToLower(c.General.LogFormat) {
	case "json", "text", "console":
	default:
		problems = append(problems, fmt.Sprintf("general.log_format %q is not one of json, text, console", c.General.LogFormat))
	}

	if len(problems) > 0 {
		return mdwerror.New("invalid configuration: " + strings.Join(problems, "; ")).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("problems", len(problems))
	}
	return nil
}

// HasPermission reports whether the local sender is granted permission.
// A granted "*" covers everything and "a.*" covers every permission below a.
func (c *Config) HasPermission(permission string) bool {
	for _, granted := range c.Commands.Permissions {
		switch {
		case granted == "*", granted == permission:
			return true
		case strings.HasSuffix(granted, ".*") && strings.HasPrefix(permission, strings.TrimSuffix(granted, "*")):
			return true
		}
	}
	return false
}
