package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/ingot/internal/env"
)

// activityKind maps terminal input onto the activity kinds the scheduler
// listens for. Messages that are not user input report false.
func activityKind(msg tea.Msg) (env.Kind, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return env.KeyDown, true
	case tea.MouseMsg:
		ev := tea.MouseEvent(msg)
		switch {
		case ev.IsWheel():
			return env.Scroll, true
		case ev.Action == tea.MouseActionPress:
			return env.PointerDown, true
		case ev.Action == tea.MouseActionRelease:
			return env.Click, true
		case ev.Action == tea.MouseActionMotion:
			return env.PointerMove, true
		}
	}
	return 0, false
}
