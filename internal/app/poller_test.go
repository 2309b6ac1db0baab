package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/ingot/internal/cadence"
	"github.com/five82/ingot/internal/env/envtest"
	"github.com/five82/ingot/internal/state"
	"github.com/five82/ingot/internal/vault"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 15 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 15 * time.Second},
		{"negative failures", -1, 15 * time.Second},
		{"one failure", 1, 30 * time.Second},
		{"two failures", 2, time.Minute},
		{"three failures", 3, 2 * time.Minute},
		{"four failures", 4, 4 * time.Minute},
		{"five failures capped", 5, 5 * time.Minute}, // Would be 8m, capped to 5m
		{"many failures capped", 40, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 80; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestCalculateBackoff_BaseAboveCapUnchanged(t *testing.T) {
	if got := calculateBackoff(3, 10*time.Minute); got != 10*time.Minute {
		t.Fatalf("calculateBackoff = %v, want 10m", got)
	}
}

func TestNextWait(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		last     time.Time
		failures int
		want     time.Duration
	}{
		{"never fetched", time.Time{}, 0, 0},
		{"partway through interval", now.Add(-5 * time.Second), 0, 10 * time.Second},
		{"overdue", now.Add(-time.Minute), 0, 0},
		{"backoff stretches wait", now.Add(-5 * time.Second), 1, 25 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextWait(15*time.Second, tt.last, tt.failures, now); got != tt.want {
				t.Errorf("nextWait = %v, want %v", got, tt.want)
			}
		})
	}
}

type fakeFetcher struct {
	mu      sync.Mutex
	calls   int
	times   []time.Time
	err     error
	summary vault.Summary
}

func (f *fakeFetcher) FetchSummary(context.Context) (*vault.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.times = append(f.times, time.Now())
	if f.err != nil {
		return nil, f.err
	}
	sum := f.summary
	return &sum, nil
}

func (f *fakeFetcher) FetchTransactions(_ context.Context, limit int) ([]vault.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return []vault.Transaction{{ID: "tx-1", Type: "buy", Status: "completed"}}, nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeFetcher) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// Gaps returns the time between consecutive summary fetches.
func (f *fakeFetcher) Gaps() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	var gaps []time.Duration
	for i := 1; i < len(f.times); i++ {
		gaps = append(gaps, f.times[i].Sub(f.times[i-1]))
	}
	return gaps
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func slowConfig() cadence.Config {
	return cadence.Config{
		ActiveInterval:    time.Hour,
		IdleInterval:      time.Hour,
		IdleThreshold:     time.Hour,
		PauseInBackground: true,
	}
}

func startPoller(t *testing.T, fetcher vault.Fetcher, handle *cadence.Handle) (*Poller, *state.Store) {
	t.Helper()
	store := state.NewStore(nil)
	p := NewPoller(store, fetcher, handle, 0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		handle.Close()
	})
	return p, store
}

func TestPoller_FetchesImmediately(t *testing.T) {
	e := envtest.New(time.Now())
	fetcher := &fakeFetcher{summary: vault.Summary{Wallet: vault.Wallet{GoldGrams: 10}}}
	_, store := startPoller(t, fetcher, cadence.NewHandle(cadence.New(e, slowConfig())))

	waitFor(t, "first fetch", func() bool { return store.Snapshot().HasSummary })

	snap := store.Snapshot()
	if snap.Summary.Wallet.GoldGrams != 10 {
		t.Fatalf("gold grams = %v, want 10", snap.Summary.Wallet.GoldGrams)
	}
	if len(snap.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(snap.Transactions))
	}
	if snap.Fetching {
		t.Fatal("expected Fetching cleared after update")
	}
}

func TestPoller_PausedUntilVisible(t *testing.T) {
	e := envtest.New(time.Now())
	e.SetVisible(false)
	fetcher := &fakeFetcher{}
	startPoller(t, fetcher, cadence.NewHandle(cadence.New(e, slowConfig())))

	time.Sleep(50 * time.Millisecond)
	if got := fetcher.Calls(); got != 0 {
		t.Fatalf("fetches while paused = %d, want 0", got)
	}

	e.SetVisible(true)
	waitFor(t, "fetch after becoming visible", func() bool { return fetcher.Calls() == 1 })
}

func TestPoller_RefreshNowBypassesWait(t *testing.T) {
	e := envtest.New(time.Now())
	fetcher := &fakeFetcher{}
	p, _ := startPoller(t, fetcher, cadence.NewHandle(cadence.New(e, slowConfig())))

	waitFor(t, "first fetch", func() bool { return fetcher.Calls() == 1 })
	p.RefreshNow()
	waitFor(t, "manual refresh", func() bool { return fetcher.Calls() == 2 })
}

func TestPoller_RefreshNowWhilePaused(t *testing.T) {
	e := envtest.New(time.Now())
	e.SetVisible(false)
	fetcher := &fakeFetcher{}
	p, _ := startPoller(t, fetcher, cadence.NewHandle(cadence.New(e, slowConfig())))

	p.RefreshNow()
	waitFor(t, "manual refresh", func() bool { return fetcher.Calls() == 1 })
}

func TestPoller_ReplaceRecomputesWait(t *testing.T) {
	e := envtest.New(time.Now())
	fetcher := &fakeFetcher{}
	handle := cadence.NewHandle(cadence.New(e, slowConfig()))
	startPoller(t, fetcher, handle)

	waitFor(t, "first fetch", func() bool { return fetcher.Calls() == 1 })

	fast := slowConfig()
	fast.ActiveInterval = 10 * time.Millisecond
	handle.Replace(cadence.New(e, fast))

	waitFor(t, "fetches at the new cadence", func() bool { return fetcher.Calls() >= 3 })
}

func TestPoller_FailureKeepsErrorInStore(t *testing.T) {
	e := envtest.New(time.Now())
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	_, store := startPoller(t, fetcher, cadence.NewHandle(cadence.New(e, slowConfig())))

	waitFor(t, "failed fetch", func() bool { return store.Snapshot().LastError != nil })

	snap := store.Snapshot()
	if snap.HasSummary {
		t.Fatal("expected no summary after failure")
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
}

func TestPoller_BackoffGrowsAndResetsOnSuccess(t *testing.T) {
	e := envtest.New(time.Now())
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	cfg := slowConfig()
	cfg.ActiveInterval = 20 * time.Millisecond
	startPoller(t, fetcher, cadence.NewHandle(cadence.New(e, cfg)))

	// Waits after failures: 40ms, 80ms.
	waitFor(t, "three failed fetches", func() bool { return fetcher.Calls() >= 3 })
	fetcher.SetErr(nil)

	// The fourth fetch comes 160ms after the third and succeeds; the fifth
	// follows at the plain interval.
	waitFor(t, "fetch after recovery", func() bool { return fetcher.Calls() >= 5 })

	gaps := fetcher.Gaps()
	if gaps[1] <= gaps[0] {
		t.Fatalf("gap after second failure %v not longer than after first %v", gaps[1], gaps[0])
	}
	if gaps[0] < 40*time.Millisecond {
		t.Fatalf("gap after first failure = %v, want >= 40ms", gaps[0])
	}
	if gaps[3] >= gaps[2] {
		t.Fatalf("gap after success %v not shorter than backoff gap %v", gaps[3], gaps[2])
	}
}
