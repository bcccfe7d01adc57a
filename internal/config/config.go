// Package config loads guacplay settings from the environment.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. A .env file in the working directory is
// read first when present.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/yammut/guacplay/internal/player"
)

type Config struct {
	// Lang selects the message language. Empty means detect from the system locale.
	Lang string `env:"LANG"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`

	// Playback defaults, overridable by flags.
	Speed    float64       `env:"SPEED" envDefault:"1"`
	Tick     time.Duration `env:"TICK" envDefault:"250ms"`
	SeekStep time.Duration `env:"SEEK_STEP" envDefault:"5s"`
}

// Load reads GUACPLAY_* variables, after loading .env if it exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "GUACPLAY_"}); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// Sanitize replaces out-of-range values with defaults.
func (c *Config) Sanitize() {
	if !(c.Speed > 0) {
		c.Speed = player.DefaultSpeed
	}
	if c.Tick <= 0 {
		c.Tick = player.DefaultTick
	}
	if c.SeekStep <= 0 {
		c.SeekStep = player.DefaultSeekStep
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// SlogLevel maps LogLevel to a slog level, defaulting to warn.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// PlayerConfig returns the playback settings as a player.Config.
func (c *Config) PlayerConfig() *player.Config {
	return &player.Config{
		Tick:     c.Tick,
		Speed:    c.Speed,
		SeekStep: c.SeekStep,
	}
}
