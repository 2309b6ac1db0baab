package ui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ingot/internal/cadence"
	"github.com/five82/ingot/internal/syncstatus"
	"github.com/five82/ingot/internal/vault"
)

// renderHeader renders the status bar: logo, sync badge, cadence, last
// success and the current error.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	compact := m.width < 100

	badge := m.status.String()
	if m.status == syncstatus.Syncing {
		badge = m.spinner.View() + badge
	}
	parts := []string{
		styles.Logo.Render("ingot"),
		styles.Badge(m.status.String()).Render(strings.ToUpper(badge)),
		styles.MutedText.Render(cadenceLabel(m.sched)),
	}

	if ts := formatTimestamp(m.snapshot.LastSuccess, m.now); ts != "" {
		parts = append(parts, styles.MutedText.Render("updated ")+styles.Text.Render(ts))
	}

	if m.snapshot.IsOffline() {
		parts = append(parts, styles.WarningText.Render(fmt.Sprintf("%d failures", m.snapshot.ConsecutiveFailures)))
	}

	if err := m.snapshot.LastError; err != nil {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			styles.DangerText.Render(classifyError(err))+" "+
				styles.DangerText.UnsetBold().Render(truncate(err.Error(), maxErr)))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

// cadenceLabel describes the current polling cadence.
func cadenceLabel(st cadence.State) string {
	if st.Interval.IsPaused() {
		return "paused"
	}
	every := "every " + shortDuration(st.Interval.Duration())
	if st.Idle {
		return "idle · " + every
	}
	return every
}

// shortDuration drops zero trailing units: 1m0s becomes 1m.
func shortDuration(d time.Duration) string {
	s := d.String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return s
}

// formatTimestamp formats a time with a relative indicator.
func formatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	ago := now.Sub(t)
	clock := t.Local().Format("15:04:05")
	if ago < time.Second {
		return clock + " (now)"
	}
	return clock + " (" + humanizeDuration(ago) + " ago)"
}

// classifyError returns a short description of a fetch error.
func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if vault.IsUnauthorized(err) {
		return "UNAUTHORIZED"
	}
	var apiErr *vault.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("HTTP %d", apiErr.StatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "TIMEOUT"
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "HOST NOT FOUND"
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return "OFFLINE"
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// panel wraps content in a titled, bordered box of the given outer width.
func (m Model) panel(title, content string, width int) string {
	styles := m.theme.Styles()
	inner := max(width-4, 1) // border + padding
	body := styles.PanelTitle.Render(truncate(title, inner)) + "\n" + content
	return styles.Panel.Width(width - 2).Render(body)
}

func joinRow(panels ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}
