package cadence

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultActiveInterval = 15 * time.Second
	DefaultIdleInterval   = 60 * time.Second
	DefaultIdleThreshold  = 60 * time.Second
)

// Config is the polling configuration of one scheduler instance.
type Config struct {
	ActiveInterval    time.Duration
	IdleInterval      time.Duration
	IdleThreshold     time.Duration
	PauseInBackground bool
}

// DefaultConfig returns the stock polling configuration.
func DefaultConfig() Config {
	return Config{
		ActiveInterval:    DefaultActiveInterval,
		IdleInterval:      DefaultIdleInterval,
		IdleThreshold:     DefaultIdleThreshold,
		PauseInBackground: true,
	}
}

// Interval is a polling period, or Paused when the caller must not poll.
type Interval time.Duration

// Paused is the sentinel returned while backgrounded with pausing enabled.
const Paused = Interval(math.MinInt64)

// IsPaused reports whether polling is suspended.
func (i Interval) IsPaused() bool {
	return i == Paused
}

// Duration returns the polling period. It is zero when paused.
func (i Interval) Duration() time.Duration {
	if i.IsPaused() {
		return 0
	}
	return time.Duration(i)
}

func (i Interval) String() string {
	if i.IsPaused() {
		return "paused"
	}
	return fmt.Sprintf("every %s", time.Duration(i))
}

// Select derives the effective interval from the tracker flags.
func Select(idle, visible bool, cfg Config) Interval {
	if !visible && cfg.PauseInBackground {
		return Paused
	}
	if idle {
		return Interval(cfg.IdleInterval)
	}
	return Interval(cfg.ActiveInterval)
}
