package app

import (
	"context"
	"log"
	"time"

	"github.com/five82/ingot/internal/cadence"
	"github.com/five82/ingot/internal/state"
	"github.com/five82/ingot/internal/vault"
)

const maxBackoff = 5 * time.Minute

// Poller refreshes the store at the cadence chosen by the current scheduler.
// It owns retry policy: consecutive failures stretch the wait with
// exponential backoff.
type Poller struct {
	store   *state.Store
	fetcher vault.Fetcher
	cadence *cadence.Handle
	limit   int

	refreshNow chan struct{}
}

// NewPoller builds a poller. limit is the number of transactions fetched
// per refresh; zero uses vault.DefaultTransactionLimit.
func NewPoller(store *state.Store, fetcher vault.Fetcher, handle *cadence.Handle, limit int) *Poller {
	if limit <= 0 {
		limit = vault.DefaultTransactionLimit
	}
	return &Poller{
		store:      store,
		fetcher:    fetcher,
		cadence:    handle,
		limit:      limit,
		refreshNow: make(chan struct{}, 1),
	}
}

// RefreshNow asks the poller to fetch immediately, even while paused.
func (p *Poller) RefreshNow() {
	select {
	case p.refreshNow <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled. The first refresh happens immediately
// unless the scheduler starts paused.
func (p *Poller) Run(ctx context.Context) {
	var (
		lastAttempt time.Time
		failures    int
		lastLogged  cadence.Interval
		logged      bool
	)

	for {
		sched := p.cadence.Current()
		interval := sched.EffectiveInterval()
		if !logged || interval != lastLogged {
			st := sched.State()
			log.Printf("cadence %s (idle=%t visible=%t)", interval, st.Idle, st.Visible)
			lastLogged, logged = interval, true
		}

		var timerC <-chan time.Time
		var timer *time.Timer
		if !interval.IsPaused() {
			timer = time.NewTimer(nextWait(interval.Duration(), lastAttempt, failures, time.Now()))
			timerC = timer.C
		}

		fire := false
		select {
		case <-ctx.Done():
			stopTimer(timer)
			return
		case <-timerC:
			fire = true
		case <-p.refreshNow:
			stopTimer(timer)
			fire = true
		case <-sched.Changes():
			stopTimer(timer)
		case <-p.cadence.Swapped():
			stopTimer(timer)
		}
		if !fire {
			continue
		}

		if err := p.refresh(ctx); err != nil {
			failures++
		} else {
			failures = 0
		}
		lastAttempt = time.Now()
	}
}

func (p *Poller) refresh(ctx context.Context) error {
	p.store.BeginFetch()

	summary, err := p.fetcher.FetchSummary(ctx)
	if err != nil {
		p.store.Update(nil, nil, err)
		log.Printf("summary poll failed: %v", err)
		return err
	}
	txns, err := p.fetcher.FetchTransactions(ctx, p.limit)
	if err != nil {
		p.store.Update(nil, nil, err)
		log.Printf("transactions poll failed: %v", err)
		return err
	}
	p.store.Update(summary, txns, nil)
	return nil
}

// nextWait returns how long to wait before the next refresh. The deadline
// is measured from the previous attempt so a shorter interval after a
// cadence change can make a refresh due immediately.
func nextWait(interval time.Duration, lastAttempt time.Time, failures int, now time.Time) time.Duration {
	if lastAttempt.IsZero() {
		return 0
	}
	due := lastAttempt.Add(calculateBackoff(failures, interval))
	if wait := due.Sub(now); wait > 0 {
		return wait
	}
	return 0
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff. A base above the cap is returned unchanged.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 || base >= maxBackoff {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff || d <= 0 {
			return maxBackoff
		}
	}
	return d
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}
