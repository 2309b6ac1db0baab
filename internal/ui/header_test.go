package ui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/five82/ingot/internal/cadence"
	"github.com/five82/ingot/internal/vault"
)

func TestCadenceLabel(t *testing.T) {
	cases := []struct {
		name string
		st   cadence.State
		want string
	}{
		{"active", cadence.State{Interval: cadence.Interval(15 * time.Second)}, "every 15s"},
		{"idle", cadence.State{Interval: cadence.Interval(time.Minute), Idle: true}, "idle · every 1m"},
		{"paused", cadence.State{Interval: cadence.Paused, Idle: true}, "paused"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cadenceLabel(tc.st); got != tc.want {
				t.Fatalf("cadenceLabel = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestShortDuration(t *testing.T) {
	cases := map[time.Duration]string{
		15 * time.Second:          "15s",
		time.Minute:               "1m",
		90 * time.Second:          "1m30s",
		time.Hour:                 "1h",
		time.Hour + 5*time.Minute: "1h5m",
	}
	for in, want := range cases {
		if got := shortDuration(in); got != want {
			t.Errorf("shortDuration(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	if got := formatTimestamp(time.Time{}, now); got != "" {
		t.Fatalf("formatTimestamp zero = %q, want empty", got)
	}
	if got := formatTimestamp(now, now); got != "12:00:00 (now)" {
		t.Fatalf("formatTimestamp now = %q", got)
	}
	if got := formatTimestamp(now.Add(-90*time.Second), now); got != "11:58:30 (1m ago)" {
		t.Fatalf("formatTimestamp = %q", got)
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unauthorized", &vault.APIError{Path: "/api/wallet/summary", StatusCode: 401}, "UNAUTHORIZED"},
		{"server error", fmt.Errorf("fetch: %w", &vault.APIError{StatusCode: 503}), "HTTP 503"},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), "TIMEOUT"},
		{"dns", &net.DNSError{Err: "no such host", Name: "vault.local"}, "HOST NOT FOUND"},
		{"refused text", errors.New("dial tcp 127.0.0.1:8420: connect: connection refused"), "OFFLINE"},
		{"other", errors.New("boom"), "ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyError(tc.err); got != tc.want {
				t.Fatalf("classifyError = %q, want %q", got, tc.want)
			}
		})
	}
}
