package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/five82/ingot/internal/cadence"
	"github.com/five82/ingot/internal/config"
	"github.com/five82/ingot/internal/env"
	"github.com/five82/ingot/internal/prefs"
	"github.com/five82/ingot/internal/state"
	"github.com/five82/ingot/internal/syncstatus"
)

// session owns the settings that can change while ingot runs: the file
// config (hot reloaded), the saved preferences (toggled from the UI) and
// the scheduler built from both.
type session struct {
	env     env.Environment
	cadence *cadence.Handle
	poller  *Poller
	opts    Options

	mu    sync.Mutex
	file  config.Config // as loaded, before preferences
	prefs prefs.Prefs
}

// newSession takes the file config before preferences and builds the first
// scheduler from the two combined.
func newSession(e env.Environment, cfg config.Config, opts Options) *session {
	p := prefs.Load(opts.PrefsPath)
	return &session{
		env:     e,
		cadence: cadence.NewHandle(cadence.New(e, p.Apply(cfg).Polling())),
		opts:    opts,
		file:    cfg,
		prefs:   p,
	}
}

// effectiveLocked returns the file config with preferences applied. Caller holds mu.
func (s *session) effectiveLocked() config.Config {
	return s.prefs.Apply(s.file)
}

// applyConfig is the config.Watch callback.
func (s *session) applyConfig(cfg config.Config) {
	cfg, err := applyOverrides(cfg, s.opts)
	if err != nil {
		log.Printf("config reload ignored: %v", err)
		return
	}
	s.mu.Lock()
	s.file = cfg
	next := s.effectiveLocked()
	s.mu.Unlock()

	if s.rebuild(next.Polling()) {
		log.Printf("config reloaded: polling %s active, %s idle after %s", next.ActiveInterval, next.IdleInterval, next.IdleThreshold)
	}
}

// rebuild replaces the scheduler when the polling config differs from the
// running one. Timers of the old scheduler are cancelled by Replace.
func (s *session) rebuild(pc cadence.Config) bool {
	if s.cadence.Current().Config() == pc {
		return false
	}
	s.cadence.Replace(cadence.New(s.env, pc))
	return true
}

// Prefs returns the current preferences.
func (s *session) Prefs() prefs.Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// RefreshNow asks the poller for an immediate fetch.
func (s *session) RefreshNow() {
	if s.poller != nil {
		s.poller.RefreshNow()
	}
}

// SetTheme persists the theme choice.
func (s *session) SetTheme(name string) error {
	s.mu.Lock()
	s.prefs.Theme = name
	p := s.prefs
	s.mu.Unlock()
	return s.save(p)
}

// SetPauseInBackground persists the override and rebuilds the scheduler.
func (s *session) SetPauseInBackground(v bool) error {
	s.mu.Lock()
	s.prefs = s.prefs.WithPauseInBackground(v)
	p := s.prefs
	next := s.effectiveLocked()
	s.mu.Unlock()

	s.rebuild(next.Polling())
	log.Printf("pause in background %t", v)
	return s.save(p)
}

// StaleAfter returns the configured staleness threshold.
func (s *session) StaleAfter() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.StaleAfter()
}

func (s *session) syncStatus(snap state.Snapshot) syncstatus.Status {
	sched := s.cadence.Current()
	in := snap.SyncInput(sched.IsVisible(), sched.Config().PauseInBackground)
	return syncstatus.NewProjector(s.StaleAfter()).Status(in)
}

func (s *session) save(p prefs.Prefs) error {
	if err := prefs.Save(s.opts.PrefsPath, p); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}
