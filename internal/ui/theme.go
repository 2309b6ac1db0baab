package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the dashboard.
type Theme struct {
	Name string

	Background string // Outermost background
	Surface    string // Header, footer and panels
	SurfaceAlt string // Alternating table rows

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Gold    string
	Success string
	Warning string
	Danger  string
	Info    string

	// StatusColors keys sync statuses ("synced", "stale", ...) and
	// transaction statuses ("completed", "pending", ...).
	StatusColors map[string]string
}

// StatusColor returns the color for a status, falling back to Muted.
func (t Theme) StatusColor(status string) string {
	if c, ok := t.StatusColors[strings.ToLower(strings.TrimSpace(status))]; ok {
		return c
	}
	return t.Muted
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		GoldText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Gold)).Bold(true),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Gold)).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		RowAlt: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)),

		theme: t,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	GoldText    lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header     lipgloss.Style
	Footer     lipgloss.Style
	Logo       lipgloss.Style
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	RowAlt     lipgloss.Style

	theme Theme
}

// Badge returns an inverted style for a status badge.
func (s Styles) Badge(status string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.theme.Background)).
		Background(lipgloss.Color(s.theme.StatusColor(status))).
		Bold(true).
		Padding(0, 1)
}

// StatusText colors a status word without a background.
func (s Styles) StatusText(status string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.theme.StatusColor(status)))
}

// Theme definitions

var themes = map[string]Theme{
	"Bullion": bullionTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Bullion", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return bullionTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func bullionTheme() Theme {
	// Warm charcoal with gold accents.
	return Theme{
		Name: "Bullion",

		Background: "#16130F",
		Surface:    "#221D17",
		SurfaceAlt: "#2B251D",

		Border:      "#4A3F31",
		BorderFocus: "#D4AF37",

		Text:    "#F4EBDD",
		Muted:   "#A89880",
		Faint:   "#6E6252",
		Accent:  "#E6C466",
		Gold:    "#D4AF37", // metallic gold
		Success: "#7BC47F",
		Warning: "#E8A33D",
		Danger:  "#E0564A",
		Info:    "#7FB3D5",

		StatusColors: map[string]string{
			"synced":    "#7BC47F",
			"syncing":   "#7FB3D5",
			"stale":     "#E8A33D",
			"error":     "#E0564A",
			"paused":    "#6E6252",
			"completed": "#7BC47F",
			"pending":   "#E8A33D",
			"failed":    "#E0564A",
			"cancelled": "#6E6252",
			"active":    "#E6C466",
			"matured":   "#7BC47F",
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Gold:    "#f59e0b", // amber-500
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		StatusColors: map[string]string{
			"synced":    "#22c55e", // green-500
			"syncing":   "#38bdf8", // sky-400
			"stale":     "#f59e0b", // amber-500
			"error":     "#dc2626", // red-600
			"paused":    "#64748b", // slate-500
			"completed": "#16a34a", // green-600
			"pending":   "#ea580c", // orange-600
			"failed":    "#dc2626", // red-600
			"cancelled": "#64748b", // slate-500
			"active":    "#8b5cf6", // violet-500
			"matured":   "#14b8a6", // teal-500
		},
	}
}
