package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/lccn-predictor/lazyrating/internal/devtools"
	"github.com/lccn-predictor/lazyrating/internal/predictor"
)

// Environment variables read when the matching flag is not set.
const (
	envAPI   = "LAZYRATING_API"
	envCache = "LAZYRATING_CACHE"
)

// Config holds the settings shared by every command.
type Config struct {
	APIURL   string
	CacheURL string
	CacheTTL time.Duration
	Timeout  time.Duration
	LogFile  string
}

func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("api", predictor.DefaultBaseURL, "prediction API base URL (env "+envAPI+")")
	flags.String("cache", "", "redis URL for response caching, e.g. redis://localhost:6379/0 (env "+envCache+")")
	flags.Duration("cache-ttl", predictor.DefaultCacheTTL, "how long cached responses stay valid")
	flags.Duration("timeout", 10*time.Second, "per-request timeout")
	flags.String("log", "", "write debug logs to file")
}

// loadDotEnv reads an optional .env file. Variables already in the
// environment win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// resolveConfig reads the flags, falling back to the environment for values
// the user did not pass explicitly.
func resolveConfig(flags *pflag.FlagSet, getenv func(string) string) (Config, error) {
	var cfg Config
	var err error

	if cfg.APIURL, err = flags.GetString("api"); err != nil {
		return Config{}, fmt.Errorf("parse api flag: %w", err)
	}
	if cfg.CacheURL, err = flags.GetString("cache"); err != nil {
		return Config{}, fmt.Errorf("parse cache flag: %w", err)
	}
	if cfg.CacheTTL, err = flags.GetDuration("cache-ttl"); err != nil {
		return Config{}, fmt.Errorf("parse cache-ttl flag: %w", err)
	}
	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return Config{}, fmt.Errorf("parse timeout flag: %w", err)
	}
	if cfg.LogFile, err = flags.GetString("log"); err != nil {
		return Config{}, fmt.Errorf("parse log flag: %w", err)
	}

	if !flags.Changed("api") {
		if v := getenv(envAPI); v != "" {
			cfg.APIURL = v
		}
	}
	if !flags.Changed("cache") {
		if v := getenv(envCache); v != "" {
			cfg.CacheURL = v
		}
	}
	return cfg, nil
}

// session bundles the long-lived resources a command needs.
type session struct {
	client  *predictor.Client
	tracker *devtools.Tracker
	logger  *slog.Logger
	closers []io.Closer
}

func newSession(cfg Config) (*session, error) {
	s := &session{
		tracker: devtools.NewTracker(),
		logger:  slog.New(slog.DiscardHandler),
	}

	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.closers = append(s.closers, file)
		s.logger = slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	opts := []predictor.Option{
		predictor.WithHTTPClient(&http.Client{Transport: s.tracker.Transport(http.DefaultTransport)}),
		predictor.WithTimeout(cfg.Timeout),
		predictor.WithLogger(s.logger),
	}
	if cfg.CacheURL != "" {
		cache, err := predictor.NewRedisCache(cfg.CacheURL, cfg.CacheTTL, s.tracker.Hook())
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("create cache: %w", err)
		}
		opts = append(opts, predictor.WithCache(cache))
	}

	client, err := predictor.NewClient(cfg.APIURL, opts...)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("create api client: %w", err)
	}
	s.client = client
	s.logger.Info("session started", "api", client.DisplayBaseURL(), "cache", cfg.CacheURL != "")
	return s, nil
}

// Close releases the client, the cache connection and the log file.
func (s *session) Close() {
	if s.client != nil {
		_ = s.client.Close()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
}
