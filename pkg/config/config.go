// Package config resolves runtime settings from defaults, an optional YAML
// file, an optional .env file, and the process environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvAPIURL       = "OBESENSE_API_URL"
	EnvPredictPath  = "OBESENSE_PREDICT_PATH"
	EnvTimeout      = "OBESENSE_TIMEOUT"
	EnvAddr         = "OBESENSE_ADDR"
	EnvSchemaFile   = "OBESENSE_SCHEMA_FILE"
	EnvLogLevel     = "OBESENSE_LOG_LEVEL"
	EnvThemeVariant = "OBESENSE_THEME_VARIANT"
	EnvBareLabels   = "OBESENSE_BARE_LABELS"
)

// ErrMissingAPIURL is returned by RequireAPI when no service URL is set.
var ErrMissingAPIURL = errors.New("config: prediction service URL is not configured (set " + EnvAPIURL + ")")

// Config holds every runtime setting.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Server ServerConfig `yaml:"server"`
	Schema SchemaConfig `yaml:"schema"`
	Log    LogConfig    `yaml:"log"`
	Theme  ThemeConfig  `yaml:"theme"`
}

// APIConfig points at the remote prediction service.
type APIConfig struct {
	URL        string        `yaml:"url"`
	Path       string        `yaml:"path"`
	Timeout    time.Duration `yaml:"timeout"`
	BareLabels bool          `yaml:"bare_labels"`
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SchemaConfig optionally replaces the built-in attribute schema.
type SchemaConfig struct {
	File string `yaml:"file"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// ThemeConfig selects the page theme.
type ThemeConfig struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

// Defaults returns the settings used when nothing overrides them.
func Defaults() Config {
	return Config{
		API: APIConfig{
			Path:    "/predict",
			Timeout: 10 * time.Second,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{Level: "info"},
		Theme: ThemeConfig{
			Name:    "obesense",
			Variant: "light",
		},
	}
}

// LoadOptions names the optional inputs to Load.
type LoadOptions struct {
	// File is a YAML config file. Empty skips it; a missing file is an error.
	File string
	// EnvFiles are dotenv files. Missing files are skipped.
	EnvFiles []string
	// Lookup reads environment variables; defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Load resolves the configuration. Process environment wins over dotenv
// files, which win over the YAML file.
func Load(opts LoadOptions) (Config, error) {
	cfg := Defaults()

	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", opts.File, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", opts.File, err)
		}
	}

	dotenv, err := readEnvFiles(opts.EnvFiles)
	if err != nil {
		return Config{}, err
	}
	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		if value, ok := lookup(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}

	if err := cfg.applyEnv(get); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readEnvFiles(files []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
		for key, value := range values {
			if _, seen := out[key]; !seen {
				out[key] = value
			}
		}
	}
	return out, nil
}

func (c *Config) applyEnv(get func(string) (string, bool)) error {
	if v, ok := get(EnvAPIURL); ok {
		c.API.URL = strings.TrimSpace(v)
	}
	if v, ok := get(EnvPredictPath); ok && strings.TrimSpace(v) != "" {
		c.API.Path = strings.TrimSpace(v)
	}
	if v, ok := get(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		timeout, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvTimeout, err)
		}
		c.API.Timeout = timeout
	}
	if v, ok := get(EnvBareLabels); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			c.API.BareLabels = true
		case "", "0", "false", "no", "off":
			c.API.BareLabels = false
		default:
			return fmt.Errorf("config: %s: invalid boolean %q", EnvBareLabels, v)
		}
	}
	if v, ok := get(EnvAddr); ok && strings.TrimSpace(v) != "" {
		c.Server.Addr = strings.TrimSpace(v)
	}
	if v, ok := get(EnvSchemaFile); ok {
		c.Schema.File = strings.TrimSpace(v)
	}
	if v, ok := get(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Log.Level = strings.TrimSpace(v)
	}
	if v, ok := get(EnvThemeVariant); ok && strings.TrimSpace(v) != "" {
		c.Theme.Variant = strings.TrimSpace(v)
	}
	return nil
}

// Validate checks values that cannot be fixed up silently.
func (c Config) Validate() error {
	if c.API.Timeout < 0 {
		return fmt.Errorf("config: api timeout must not be negative")
	}
	if _, err := c.ZapLevel(); err != nil {
		return err
	}
	return nil
}

// RequireAPI reports ErrMissingAPIURL when the service URL is unset.
func (c Config) RequireAPI() error {
	if strings.TrimSpace(c.API.URL) == "" {
		return ErrMissingAPIURL
	}
	return nil
}

// ZapLevel parses Log.Level.
func (c Config) ZapLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("config: log level: %w", err)
	}
	return level, nil
}
