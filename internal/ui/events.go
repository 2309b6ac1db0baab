package ui

import (
	"strings"

	"github.com/five82/ingot/internal/logtail"
)

// eventsContent renders the newest log entries that fit in rows lines.
func (m Model) eventsContent(rows int) string {
	styles := m.theme.Styles()
	if len(m.events) == 0 {
		if m.opts.LogFile == "" {
			return styles.FaintText.Render("Logging to stderr")
		}
		return styles.FaintText.Render("No events in " + truncate(m.opts.LogFile, 60))
	}
	rows = max(rows, 1)

	entries := m.events
	if len(entries) > rows {
		entries = entries[len(entries)-rows:]
	}
	width := max(m.width-6, 20)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, m.formatEntry(e, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) formatEntry(e logtail.Entry, width int) string {
	styles := m.theme.Styles()
	if e.Time.IsZero() {
		return styles.Text.Render(truncate(e.Raw, width))
	}
	stamp := e.Time.Format("15:04:05")
	msg := truncate(e.Message, width-len(stamp)-1)

	style := styles.Text
	switch {
	case strings.Contains(msg, "failed"):
		style = styles.DangerText.UnsetBold()
	case strings.HasPrefix(msg, "cadence"), strings.HasPrefix(msg, "config"):
		style = styles.AccentText
	}
	return styles.FaintText.Render(stamp) + " " + style.Render(msg)
}
