package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ingot/internal/config"
	"github.com/five82/ingot/internal/env"
	"github.com/five82/ingot/internal/prefs"
	"github.com/five82/ingot/internal/state"
	"github.com/five82/ingot/internal/syncstatus"
	"github.com/five82/ingot/internal/ui"
	"github.com/five82/ingot/internal/vault"
)

// Options configure the ingot application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/ingot/prefs.toml
	APIBind    string // overrides api_bind from the config file
	LogFile    string // overrides log_file from the config file
	Headless   bool
}

// Run boots ingot until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadFileConfig(opts)
	if err != nil {
		return err
	}

	if !opts.Headless {
		f, err := openLog(cfg.LogFile)
		if err != nil {
			return err
		}
		defer f.Close()
	}

	client, err := vault.NewClient(cfg.APIBind, cfg.APIToken)
	if err != nil {
		return fmt.Errorf("init vault client: %w", err)
	}

	sysEnv := env.NewSystem()
	sess := newSession(sysEnv, cfg, opts)
	defer sess.cadence.Close()

	store := state.NewStore(nil)
	poller := NewPoller(store, client, sess.cadence, 0)
	sess.poller = poller

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go poller.Run(ctx)
	go func() {
		if err := config.Watch(ctx, cfg.Path, sess.applyConfig); err != nil {
			log.Printf("config watch disabled: %v", err)
		}
	}()

	log.Printf("ingot started (api %s, cadence %s)", client.BaseURL(), sess.cadence.Current().EffectiveInterval())

	if opts.Headless {
		runHeadless(ctx, store, sess, time.Second)
		return nil
	}

	return ui.Run(ui.Options{
		Context:    ctx,
		Env:        sysEnv,
		Cadence:    sess.cadence,
		Store:      store,
		Controller: sess,
		ThemeName:  sess.Prefs().Theme,
		LogFile:    cfg.LogFile,
		APIBase:    client.BaseURL(),
	})
}

// loadConfig is loadFileConfig with saved preferences overlaid.
func loadConfig(opts Options) (config.Config, error) {
	cfg, err := loadFileConfig(opts)
	if err != nil {
		return config.Config{}, err
	}
	return prefs.Load(opts.PrefsPath).Apply(cfg), nil
}

// loadFileConfig resolves the config file and applies command line
// overrides. Preferences are not applied.
func loadFileConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load ingot config: %w", err)
	}
	return applyOverrides(cfg, opts)
}

func applyOverrides(cfg config.Config, opts Options) (config.Config, error) {
	if opts.APIBind != "" {
		cfg.APIBind = opts.APIBind
	}
	if opts.LogFile != "" {
		path, err := config.ExpandPath(opts.LogFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("log file: %w", err)
		}
		cfg.LogFile = path
	}
	return cfg, nil
}

// openLog routes the standard logger into the log file so it does not
// corrupt the alternate screen.
func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "ingot")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// runHeadless logs sync status transitions until ctx is done.
func runHeadless(ctx context.Context, store *state.Store, sess *session, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var last syncstatus.Status = -1
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		status := sess.syncStatus(store.Snapshot())
		if status == last {
			continue
		}
		last = status
		snap := store.Snapshot()
		if snap.LastError != nil {
			log.Printf("sync %s: %v", status, snap.LastError)
			continue
		}
		log.Printf("sync %s (cadence %s)", status, sess.cadence.Current().EffectiveInterval())
	}
}
