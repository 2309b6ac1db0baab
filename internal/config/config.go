package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/ingot/internal/cadence"
	"github.com/five82/ingot/internal/syncstatus"
)

// Config holds the settings ingot reads from config.toml.
type Config struct {
	Path     string // resolved file the config was loaded from
	APIBind  string
	APIToken string
	LogFile  string

	ActiveInterval    time.Duration
	IdleInterval      time.Duration
	IdleThreshold     time.Duration
	PauseInBackground bool
	StaleThreshold    time.Duration
}

const (
	defaultConfigPath = "~/.config/ingot/config.toml"
	defaultLogFile    = "~/.local/state/ingot/ingot.log"
	defaultAPIBind    = "127.0.0.1:8420"
)

type rawPolling struct {
	ActiveIntervalMS  *int64 `toml:"active_interval_ms"`
	IdleIntervalMS    *int64 `toml:"idle_interval_ms"`
	IdleThresholdMS   *int64 `toml:"idle_threshold_ms"`
	PauseInBackground *bool  `toml:"pause_in_background"`
	StaleThresholdMS  *int64 `toml:"stale_threshold_ms"`
}

type rawConfig struct {
	APIBind  string     `toml:"api_bind"`
	APIToken string     `toml:"api_token"`
	LogFile  string     `toml:"log_file"`
	Polling  rawPolling `toml:"polling"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	polling := cadence.DefaultConfig()
	return Config{
		APIBind:           defaultAPIBind,
		LogFile:           mustExpand(defaultLogFile),
		ActiveInterval:    polling.ActiveInterval,
		IdleInterval:      polling.IdleInterval,
		IdleThreshold:     polling.IdleThreshold,
		PauseInBackground: polling.PauseInBackground,
		StaleThreshold:    syncstatus.DefaultStaleAfter,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	cfg.Path = resolved

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if bind := strings.TrimSpace(raw.APIBind); bind != "" {
		cfg.APIBind = bind
	}
	cfg.APIToken = strings.TrimSpace(raw.APIToken)
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	// Polling values are taken literally, including ones that make little
	// sense (idle faster than active). Only absent keys fall back.
	p := raw.Polling
	if p.ActiveIntervalMS != nil {
		cfg.ActiveInterval = millis(*p.ActiveIntervalMS)
	}
	if p.IdleIntervalMS != nil {
		cfg.IdleInterval = millis(*p.IdleIntervalMS)
	}
	if p.IdleThresholdMS != nil {
		cfg.IdleThreshold = millis(*p.IdleThresholdMS)
	}
	if p.PauseInBackground != nil {
		cfg.PauseInBackground = *p.PauseInBackground
	}
	if p.StaleThresholdMS != nil {
		cfg.StaleThreshold = millis(*p.StaleThresholdMS)
	}

	return cfg, nil
}

// Polling returns the scheduler configuration.
func (c Config) Polling() cadence.Config {
	return cadence.Config{
		ActiveInterval:    c.ActiveInterval,
		IdleInterval:      c.IdleInterval,
		IdleThreshold:     c.IdleThreshold,
		PauseInBackground: c.PauseInBackground,
	}
}

// StaleAfter returns the staleness threshold for the sync status label.
func (c Config) StaleAfter() time.Duration {
	if c.StaleThreshold <= 0 {
		return syncstatus.DefaultStaleAfter
	}
	return c.StaleThreshold
}

// ResolvePath expands path, or the default config location when empty.
func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

// ExpandPath expands a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
