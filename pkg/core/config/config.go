package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	xterror "github.com/msto63/xentpl/foundation/core/error"
	xtlog "github.com/msto63/xentpl/foundation/core/log"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "XENTPL_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General  GeneralConfig  `toml:"general" yaml:"general"`
	Compiler CompilerConfig `toml:"compiler" yaml:"compiler"`
	Cache    CacheConfig    `toml:"cache" yaml:"cache"`
	Phrases  PhrasesConfig  `toml:"phrases" yaml:"phrases"`

	// Path is the file the configuration was loaded from, empty for defaults
	Path string `toml:"-" yaml:"-"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	DataDir   string `toml:"data_dir" yaml:"data_dir"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

// CompilerConfig holds template compiler limits. Zero selects the
// compiler defaults.
type CompilerConfig struct {
	MaxStackDepth  int `toml:"max_stack_depth" yaml:"max_stack_depth"`
	MaxInputLength int `toml:"max_input_length" yaml:"max_input_length"`
}

// CacheConfig holds compiled template cache settings
type CacheConfig struct {
	Enabled        bool     `toml:"enabled" yaml:"enabled"`
	Path           string   `toml:"path" yaml:"path"`
	MemoryTTL      Duration `toml:"memory_ttl" yaml:"memory_ttl"`
	MemoryMaxItems int      `toml:"memory_max_items" yaml:"memory_max_items"`
}

// PhrasesConfig holds localisation settings
type PhrasesConfig struct {
	Locale string `toml:"locale" yaml:"locale"`
	Dir    string `toml:"dir" yaml:"dir"`
}

// Duration wraps time.Duration for TOML and YAML parsing
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

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{
		Cache: CacheConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension.
// Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		code := xterror.CodeConfigError
		if os.IsNotExist(err) {
			code = xterror.CodeNotFound
		}
		return nil, xterror.Wrap(err, "failed to read config").
			WithCode(code).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg := &Config{Cache: CacheConfig{Enabled: true}}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, cfg)
	default:
		_, err = toml.Decode(string(content), cfg)
	}
	if err != nil {
		return nil, xterror.Wrap(err, "failed to parse config").
			WithCode(xterror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg.Path = path
	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by XENTPL_CONFIG, else the first file
// found in the default locations. Without any file the defaults apply.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// DefaultPaths lists the locations searched for a config file
func DefaultPaths() []string {
	paths := []string{
		"./xentpl.toml",
		"./configs/xentpl.toml",
		"./xentpl.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "xentpl", "config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "xentpl"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Cache
	if c.Cache.Path == "" {
		c.Cache.Path = filepath.Join(c.General.DataDir, "templates.db")
	}
	if c.Cache.MemoryTTL.Duration == 0 {
		c.Cache.MemoryTTL.Duration = 10 * time.Minute
	}
	if c.Cache.MemoryMaxItems == 0 {
		c.Cache.MemoryMaxItems = 1000
	}

	// Phrases
	if c.Phrases.Locale == "" {
		c.Phrases.Locale = "en"
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.Cache.Path = os.ExpandEnv(c.Cache.Path)
	c.Phrases.Dir = os.ExpandEnv(c.Phrases.Dir)
}

// Validate checks the configuration for values no component accepts
func (c *Config) Validate() error {
	invalid := func(field string, value interface{}, msg string) error {
		return xterror.New(msg).
			WithCode(xterror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("field", field).
			WithDetail("value", value)
	}

	if _, err := xtlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, "unknown log level")
	}
	if _, err := xtlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat, "unknown log format")
	}
	if c.Compiler.MaxStackDepth < 0 {
		return invalid("compiler.max_stack_depth", c.Compiler.MaxStackDepth, "limit must not be negative")
	}
	if c.Compiler.MaxInputLength < 0 {
		return invalid("compiler.max_input_length", c.Compiler.MaxInputLength, "limit must not be negative")
	}
	if c.Cache.MemoryTTL.Duration < 0 {
		return invalid("cache.memory_ttl", c.Cache.MemoryTTL.String(), "ttl must not be negative")
	}
	if c.Cache.MemoryMaxItems < 0 {
		return invalid("cache.memory_max_items", c.Cache.MemoryMaxItems, "limit must not be negative")
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Path) == "" {
		return invalid("cache.path", c.Cache.Path, "cache path required when the cache is enabled")
	}
	return nil
}
