package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/five82/ingot/internal/state"
	"github.com/five82/ingot/internal/syncstatus"
	"github.com/five82/ingot/internal/vault"
)

// Report is the output of a one-shot status check.
type Report struct {
	Status       string              `json:"status"`
	API          string              `json:"api"`
	CheckedAt    time.Time           `json:"checkedAt"`
	Summary      *vault.Summary      `json:"summary,omitempty"`
	Transactions []vault.Transaction `json:"transactions,omitempty"`
	Error        string              `json:"error,omitempty"`
}

// Status fetches once and writes a report to w. It returns the fetch error,
// after the report has been written, so callers can set an exit code.
func Status(ctx context.Context, opts Options, w io.Writer, asJSON bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	client, err := vault.NewClient(cfg.APIBind, cfg.APIToken)
	if err != nil {
		return fmt.Errorf("init vault client: %w", err)
	}

	report, fetchErr := check(ctx, client, client.BaseURL(), cfg.StaleAfter())
	if asJSON {
		data, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(data)); err != nil {
			return err
		}
	} else if err := writeReport(w, report); err != nil {
		return err
	}
	return fetchErr
}

func check(ctx context.Context, fetcher vault.Fetcher, api string, staleAfter time.Duration) (Report, error) {
	store := state.NewStore(nil)
	p := NewPoller(store, fetcher, nil, 0)
	err := p.refresh(ctx)

	snap := store.Snapshot()
	now := time.Now()
	report := Report{
		Status:    syncstatus.Classify(snap.SyncInput(true, false), now, staleAfter).String(),
		API:       api,
		CheckedAt: now,
	}
	if snap.HasSummary {
		sum := snap.Summary
		report.Summary = &sum
		report.Transactions = snap.Transactions
	}
	if err != nil {
		report.Error = err.Error()
	}
	return report, err
}

func writeReport(w io.Writer, r Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "status   %s\n", r.Status)
	fmt.Fprintf(&b, "api      %s\n", r.API)
	if r.Error != "" {
		fmt.Fprintf(&b, "error    %s\n", r.Error)
	}
	if s := r.Summary; s != nil {
		cur := s.Wallet.Currency
		fmt.Fprintf(&b, "wallet   %.3f g gold (%.3f g available), %.2f %s cash\n",
			s.Wallet.GoldGrams, s.Wallet.AvailableGrams(), s.Wallet.CashBalance, cur)
		fmt.Fprintf(&b, "price    %.2f %s/g (%+.2f%% 24h)\n", s.Price.PerGram, s.Price.Currency, s.Price.Change24h)
		fmt.Fprintf(&b, "value    %.2f %s\n", s.PortfolioValue(), cur)
		fmt.Fprintf(&b, "vault    %d bars, %.3f g\n", len(s.Vault.Holdings), s.Vault.TotalGrams)
		fmt.Fprintf(&b, "plans    %d\n", len(s.Plans))
		fmt.Fprintf(&b, "txns     %d recent\n", len(r.Transactions))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
