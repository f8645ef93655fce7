package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-obesense/pkg/config"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{Lookup: lookupFrom(nil)})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(config.Defaults(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(cfg.RequireAPI(), config.ErrMissingAPIURL) {
		t.Fatalf("expected missing API URL error")
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "obesense.yaml", `
api:
  url: http://from-yaml:5000
  timeout: 3s
server:
  addr: ":9000"
log:
  level: debug
`)
	envFile := writeFile(t, dir, ".env", "OBESENSE_API_URL=http://from-dotenv:5000\nOBESENSE_PREDICT_PATH=/api/predict\n")

	cfg, err := config.Load(config.LoadOptions{
		File:     file,
		EnvFiles: []string{envFile, filepath.Join(dir, "missing.env")},
		Lookup: lookupFrom(map[string]string{
			"OBESENSE_TIMEOUT":       "1500ms",
			"OBESENSE_THEME_VARIANT": "dark",
			"OBESENSE_BARE_LABELS":   "true",
		}),
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.API.URL != "http://from-dotenv:5000" {
		t.Fatalf("dotenv should override yaml, got %q", cfg.API.URL)
	}
	if cfg.API.Path != "/api/predict" {
		t.Fatalf("unexpected path %q", cfg.API.Path)
	}
	if cfg.API.Timeout != 1500*time.Millisecond {
		t.Fatalf("environment should override yaml timeout, got %s", cfg.API.Timeout)
	}
	if !cfg.API.BareLabels || cfg.Theme.Variant != "dark" || cfg.Server.Addr != ":9000" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	level, err := cfg.ZapLevel()
	if err != nil || level != zapcore.DebugLevel {
		t.Fatalf("expected debug level, got %v (%v)", level, err)
	}
	if err := cfg.RequireAPI(); err != nil {
		t.Fatalf("require api: %v", err)
	}
}

func TestProcessEnvironmentWinsOverDotenv(t *testing.T) {
	envFile := writeFile(t, t.TempDir(), ".env", "OBESENSE_API_URL=http://from-dotenv:5000\n")
	cfg, err := config.Load(config.LoadOptions{
		EnvFiles: []string{envFile},
		Lookup:   lookupFrom(map[string]string{"OBESENSE_API_URL": "http://from-env:5000"}),
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.URL != "http://from-env:5000" {
		t.Fatalf("unexpected url %q", cfg.API.URL)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"timeout":   {"OBESENSE_TIMEOUT": "soon"},
		"log level": {"OBESENSE_LOG_LEVEL": "chatty"},
		"boolean":   {"OBESENSE_BARE_LABELS": "maybe"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := config.Load(config.LoadOptions{Lookup: lookupFrom(env)}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := config.Load(config.LoadOptions{File: filepath.Join(t.TempDir(), "absent.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
