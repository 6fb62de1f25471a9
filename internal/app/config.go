package app

import (
	"os"
	"strconv"
	"strings"

	"bounce-and-burst/sim/internal/telemetry"
)

const (
	defaultAddr     = ":8080"
	defaultTickRate = 60
	defaultLevelDir = "levels"
)

// Config carries the host process settings. Everything has a sensible default
// so `go run ./cmd/server` works from the repo root with no environment.
type Config struct {
	Addr     string
	TickRate int
	LevelDir string
	LogSinks []string
	LogPath  string
}

func DefaultConfig() Config {
	return Config{
		Addr:     defaultAddr,
		TickRate: defaultTickRate,
		LevelDir: defaultLevelDir,
		LogSinks: []string{"console"},
	}
}

// ConfigFromEnv overlays environment variables on the defaults. Invalid
// values are logged and ignored rather than fatal.
func ConfigFromEnv(logger telemetry.Logger) Config {
	cfg := DefaultConfig()

	if raw := os.Getenv("BOUNCE_ADDR"); raw != "" {
		cfg.Addr = raw
	}
	if raw := os.Getenv("BOUNCE_TICK_RATE"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.TickRate = value
		} else {
			logger.Printf("invalid BOUNCE_TICK_RATE=%q, keeping %d", raw, cfg.TickRate)
		}
	}
	if raw := os.Getenv("BOUNCE_LEVEL_DIR"); raw != "" {
		cfg.LevelDir = raw
	}
	if raw := os.Getenv("BOUNCE_LOG_SINKS"); raw != "" {
		var sinks []string
		for _, name := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				sinks = append(sinks, trimmed)
			}
		}
		if len(sinks) > 0 {
			cfg.LogSinks = sinks
		}
	}
	if raw := os.Getenv("BOUNCE_LOG_PATH"); raw != "" {
		cfg.LogPath = raw
	}

	return cfg
}
