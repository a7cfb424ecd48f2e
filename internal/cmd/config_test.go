package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/lccn-predictor/lazyrating/internal/predictor"
)

func parseConfigFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addConfigFlags(flags)
	if err := flags.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return flags
}

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestResolveConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := resolveConfig(parseConfigFlags(t), envMap(nil))
	if err != nil {
		t.Fatalf("resolveConfig() error = %v", err)
	}
	want := Config{
		APIURL:   predictor.DefaultBaseURL,
		CacheTTL: predictor.DefaultCacheTTL,
		Timeout:  10 * time.Second,
	}
	if cfg != want {
		t.Fatalf("config = %+v, want %+v", cfg, want)
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	t.Parallel()

	env := envMap(map[string]string{
		envAPI:   "http://env.example/api/v1",
		envCache: "redis://env:6379/1",
	})

	tests := map[string]struct {
		args      []string
		wantAPI   string
		wantCache string
	}{
		"env fills unset flags": {
			wantAPI:   "http://env.example/api/v1",
			wantCache: "redis://env:6379/1",
		},
		"flags override env": {
			args:      []string{"--api", "http://flag.example", "--cache", "redis://flag:6379/0"},
			wantAPI:   "http://flag.example",
			wantCache: "redis://flag:6379/0",
		},
		"explicit empty cache disables env cache": {
			args:      []string{"--cache", ""},
			wantAPI:   "http://env.example/api/v1",
			wantCache: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg, err := resolveConfig(parseConfigFlags(t, tt.args...), env)
			if err != nil {
				t.Fatalf("resolveConfig() error = %v", err)
			}
			if cfg.APIURL != tt.wantAPI || cfg.CacheURL != tt.wantCache {
				t.Fatalf("api = %q cache = %q, want %q %q", cfg.APIURL, cfg.CacheURL, tt.wantAPI, tt.wantCache)
			}
		})
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	t.Parallel()

	if err := loadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("loadDotEnv() error = %v, want nil for a missing file", err)
	}
}

func TestNewSessionWritesLog(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "lazyrating.log")
	s, err := newSession(Config{APIURL: "http://127.0.0.1:1", Timeout: time.Second, LogFile: logPath})
	if err != nil {
		t.Fatalf("newSession() error = %v", err)
	}
	s.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}
}

func TestNewSessionRejectsBadURL(t *testing.T) {
	t.Parallel()

	if _, err := newSession(Config{APIURL: "ftp://example.com"}); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
	if _, err := newSession(Config{APIURL: predictor.DefaultBaseURL, CacheURL: "not a url"}); err == nil {
		t.Fatal("expected error for bad cache url")
	}
}
