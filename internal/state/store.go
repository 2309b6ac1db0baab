package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/ingot/internal/syncstatus"
	"github.com/five82/ingot/internal/vault"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Summary             vault.Summary
	HasSummary          bool
	Transactions        []vault.Transaction
	Fetching            bool
	LastUpdated         time.Time // last attempt, successful or not
	LastSuccess         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// SyncInput describes the snapshot for the sync status projector.
func (s Snapshot) SyncInput(visible, pauseInBackground bool) syncstatus.Input {
	return syncstatus.Input{
		Fetching:          s.Fetching,
		Err:               s.LastError,
		LastSuccess:       s.LastSuccess,
		Visible:           visible,
		PauseInBackground: pauseInBackground,
	}
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time
}

// NewStore returns a Store stamping updates with now. A nil now uses the
// wall clock; the zero Store does the same.
func NewStore(now func() time.Time) *Store {
	return &Store{now: now}
}

// BeginFetch marks a refresh as in flight.
func (s *Store) BeginFetch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Fetching = true
}

// Update ends the in-flight refresh. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(summary *vault.Summary, txns []vault.Transaction, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	s.snapshot.Fetching = false
	s.snapshot.LastUpdated = now

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Transactions = cloneTransactions(txns)
	if summary != nil {
		s.snapshot.Summary = cloneSummary(*summary)
		s.snapshot.HasSummary = true
	} else {
		s.snapshot.HasSummary = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastSuccess = now
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Summary = cloneSummary(s.snapshot.Summary)
	snap.Transactions = cloneTransactions(s.snapshot.Transactions)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func cloneTransactions(items []vault.Transaction) []vault.Transaction {
	if len(items) == 0 {
		return nil
	}
	dup := make([]vault.Transaction, len(items))
	copy(dup, items)
	return dup
}

func cloneSummary(sum vault.Summary) vault.Summary {
	if len(sum.Vault.Holdings) > 0 {
		sum.Vault.Holdings = append([]vault.Holding(nil), sum.Vault.Holdings...)
	}
	if len(sum.Plans) > 0 {
		sum.Plans = append([]vault.Plan(nil), sum.Plans...)
	}
	return sum
}
