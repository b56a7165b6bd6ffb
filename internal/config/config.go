package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListenAddr       = ":8081"
	defaultEngineURL        = "http://localhost:8080"
	defaultEngineListenAddr = ":8080"
	defaultProbeTimeout     = 3 * time.Second
	defaultGraceDelay       = time.Second
	defaultRateLimit        = 50

	envListenAddr       = "GATEWAY_LISTEN_ADDR"
	envEngineURL        = "ENGINE_URL"
	envDBPath           = "GATEWAY_DB_PATH"
	envLogLevel         = "GATEWAY_LOG_LEVEL"
	envProbeTimeout     = "GATEWAY_PROBE_TIMEOUT"
	envGraceDelay       = "GATEWAY_GRACE_DELAY"
	envRateLimit        = "GATEWAY_RATE_LIMIT"
	envEngineListenAddr = "ENGINE_LISTEN_ADDR"
	envEngineLatency    = "ENGINE_LATENCY"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	// EngineURL is the calculation engine base address, read once at startup.
	EngineURL string
	// DBPath selects the SQLite record store; empty means in-memory records.
	DBPath       string
	LogLevel     slog.Level
	ProbeTimeout time.Duration
	GraceDelay   time.Duration
	RateLimit    int

	EngineListenAddr string
	EngineLatency    time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	cfg := Config{
		ListenAddr:       defaultListenAddr,
		EngineURL:        defaultEngineURL,
		LogLevel:         slog.LevelInfo,
		ProbeTimeout:     defaultProbeTimeout,
		GraceDelay:       defaultGraceDelay,
		RateLimit:        defaultRateLimit,
		EngineListenAddr: defaultEngineListenAddr,
	}

	if v := os.Getenv(envListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(envEngineURL); v != "" {
		cfg.EngineURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv(envDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	if v := os.Getenv(envProbeTimeout); v != "" {
		cfg.ProbeTimeout = parseDuration(v, defaultProbeTimeout)
	}
	if v := os.Getenv(envGraceDelay); v != "" {
		cfg.GraceDelay = parseDuration(v, defaultGraceDelay)
	}
	if v := os.Getenv(envRateLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimit = n
		}
	}
	if v := os.Getenv(envEngineListenAddr); v != "" {
		cfg.EngineListenAddr = v
	}
	if v := os.Getenv(envEngineLatency); v != "" {
		cfg.EngineLatency = parseDuration(v, 0)
	}

	return cfg
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// parseDuration returns def for malformed or negative values.
func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return def
	}
	return d
}

// NewLogger creates a structured JSON logger writing to w at the configured level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
