package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ingot/internal/vault"
)

// renderBody lays out the data panels. Before the first successful fetch it
// shows a placeholder instead.
func (m Model) renderBody(height int) string {
	styles := m.theme.Styles()

	if !m.snapshot.HasSummary {
		msg := "Connecting to " + m.opts.APIBase + "..."
		if m.snapshot.LastError != nil {
			msg = "Waiting for the wallet API. Retrying..."
		}
		return lipgloss.Place(m.width, max(height, 1), lipgloss.Center, lipgloss.Center,
			styles.WarningText.Render(msg))
	}

	sum := m.snapshot.Summary
	third := m.width / 3
	top := joinRow(
		m.panel("Wallet", m.walletContent(sum), third),
		m.panel("Gold price", m.priceContent(sum), third),
		m.panel("Vault", m.vaultContent(sum.Vault), m.width-2*third),
	)

	rows := []string{top}
	used := lipgloss.Height(top)

	if len(sum.Plans) > 0 {
		plans := m.panel("Buy now, sell later", m.plansContent(sum.Plans), m.width)
		rows = append(rows, plans)
		used += lipgloss.Height(plans)
	}

	eventsHeight := 0
	if m.showEvents {
		eventsHeight = max((height-used)/2, 5)
	}

	txHeight := max(height-used-eventsHeight, 4)
	rows = append(rows, m.panel("Recent transactions", m.transactionsContent(txHeight-3), m.width))

	if m.showEvents {
		rows = append(rows, m.panel("Events", m.eventsContent(eventsHeight-3), m.width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) walletContent(sum vault.Summary) string {
	styles := m.theme.Styles()
	w := sum.Wallet
	lines := []string{
		styles.GoldText.Render(formatGrams(w.GoldGrams)) + styles.MutedText.Render(" gold"),
		styles.MutedText.Render("available ") + styles.Text.Render(formatGrams(w.AvailableGrams())),
		styles.MutedText.Render("cash      ") + styles.Text.Render(formatMoney(w.CashBalance, w.Currency)),
		styles.MutedText.Render("value     ") + styles.Text.Render(formatMoney(sum.PortfolioValue(), w.Currency)),
	}
	return strings.Join(lines, "\n")
}

func (m Model) priceContent(sum vault.Summary) string {
	styles := m.theme.Styles()
	p := sum.Price

	change := styles.SuccessText
	if p.Change24h < 0 {
		change = styles.DangerText.UnsetBold()
	}
	lines := []string{
		styles.GoldText.Render(formatMoney(p.PerGram, p.Currency)) + styles.MutedText.Render(" / g"),
		change.Render(fmt.Sprintf("%+.2f%%", p.Change24h)) + styles.MutedText.Render(" 24h"),
	}
	if at := p.ParsedUpdatedAt(); !at.IsZero() {
		lines = append(lines, styles.FaintText.Render("quoted "+formatTimestamp(at, m.now)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) vaultContent(v vault.VaultSummary) string {
	styles := m.theme.Styles()
	lines := []string{
		styles.Text.Render(fmt.Sprintf("%d bars", len(v.Holdings))) +
			styles.MutedText.Render("  ") + styles.GoldText.Render(formatGrams(v.TotalGrams)),
	}
	const maxHoldings = 3
	for i, h := range v.Holdings {
		if i == maxHoldings {
			lines = append(lines, styles.FaintText.Render(fmt.Sprintf("+%d more", len(v.Holdings)-maxHoldings)))
			break
		}
		lines = append(lines, styles.MutedText.Render(truncate(h.BarSerial, 12))+" "+
			styles.Text.Render(formatGrams(h.Grams))+" "+
			styles.FaintText.Render(truncate(h.Location, 14)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) plansContent(plans []vault.Plan) string {
	styles := m.theme.Styles()
	lines := make([]string, 0, len(plans))
	for _, p := range plans {
		maturity := p.MaturityDate
		if t := p.ParsedMaturity(); !t.IsZero() {
			maturity = t.Format("2006-01-02")
		}
		lines = append(lines,
			styles.Text.Render(padRight(truncate(p.ID, 14), 15))+
				styles.StatusText(p.Status).Render(padRight(titleCase(p.Status), 10))+
				styles.GoldText.Render(padRight(formatGrams(p.Grams), 14))+
				styles.MutedText.Render("matures "+maturity))
	}
	return strings.Join(lines, "\n")
}

// transactionsContent renders up to rows transactions starting at the
// scroll offset.
func (m Model) transactionsContent(rows int) string {
	styles := m.theme.Styles()
	txns := m.snapshot.Transactions
	if len(txns) == 0 {
		return styles.FaintText.Render("No transactions yet")
	}
	rows = max(rows, 1)

	header := styles.MutedText.Render(
		padRight("WHEN", 20) + padRight("TYPE", 12) + padRight("STATUS", 12) +
			padRight("GRAMS", 14) + "AMOUNT")
	lines := []string{header}

	start := min(m.scroll, len(txns)-1)
	end := min(start+rows-1, len(txns))
	for i, tx := range txns[start:end] {
		when := tx.CreatedAt
		if t := tx.ParsedCreatedAt(); !t.IsZero() {
			when = t.Local().Format("2006-01-02 15:04")
		}
		row := padRight(truncate(when, 19), 20) +
			padRight(truncate(titleCase(tx.Type), 11), 12) +
			styles.StatusText(tx.Status).Render(padRight(truncate(titleCase(tx.Status), 11), 12)) +
			padRight(formatGrams(tx.Grams), 14) +
			formatMoney(tx.Amount, tx.Currency)
		if (start+i)%2 == 1 {
			row = styles.RowAlt.Render(row)
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}
