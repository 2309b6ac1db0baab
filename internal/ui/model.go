package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ingot/internal/cadence"
	"github.com/five82/ingot/internal/env"
	"github.com/five82/ingot/internal/logtail"
	"github.com/five82/ingot/internal/state"
	"github.com/five82/ingot/internal/syncstatus"
)

const (
	uiTick      = time.Second
	eventsLimit = 200
)

// Host receives terminal input for the refresh scheduler.
type Host interface {
	EmitActivity(kind env.Kind)
	SetVisible(visible bool)
}

// Controller performs the actions the dashboard keys trigger.
type Controller interface {
	RefreshNow()
	SetTheme(name string) error
	SetPauseInBackground(v bool) error
	StaleAfter() time.Duration
}

// Options configure the dashboard.
type Options struct {
	Context    context.Context
	Env        Host
	Cadence    *cadence.Handle
	Store      *state.Store
	Controller Controller
	ThemeName  string
	LogFile    string
	APIBase    string
}

type tickMsg time.Time

// Model is the bubbletea model for the dashboard.
type Model struct {
	opts    Options
	theme   Theme
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int

	now      time.Time
	snapshot state.Snapshot
	sched    cadence.State
	status   syncstatus.Status

	showEvents bool
	events     []logtail.Entry
	scroll     int
	notice     string
}

// New builds a model and takes a first look at the store.
func New(opts Options) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	m := Model{
		opts:    opts,
		theme:   GetTheme(opts.ThemeName),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		width:   100,
		height:  30,
	}
	m.refresh(time.Now())
	return m
}

// Init starts the refresh tick and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.spinner.Tick)
}

func tick() tea.Cmd {
	return tea.Tick(uiTick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles messages. Every key press and mouse event is reported to
// the scheduler as activity before anything else.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kind, ok := activityKind(msg); ok && m.opts.Env != nil {
		m.opts.Env.EmitActivity(kind)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.FocusMsg:
		m.setVisible(true)
		return m, nil

	case tea.BlurMsg:
		m.setVisible(false)
		return m, nil

	case tickMsg:
		m.refresh(time.Time(msg))
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) setVisible(visible bool) {
	if m.opts.Env != nil {
		m.opts.Env.SetVisible(visible)
	}
	m.refresh(time.Now())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Refresh):
		if m.opts.Controller != nil {
			m.opts.Controller.RefreshNow()
		}
		m.notice = "refresh requested"

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.notice = "theme " + m.theme.Name
		if m.opts.Controller != nil {
			if err := m.opts.Controller.SetTheme(m.theme.Name); err != nil {
				m.notice = err.Error()
			}
		}

	case key.Matches(msg, m.keys.TogglePause):
		next := !m.sched.Config.PauseInBackground
		m.notice = pauseNotice(next)
		if m.opts.Controller != nil {
			if err := m.opts.Controller.SetPauseInBackground(next); err != nil {
				m.notice = err.Error()
			}
		}

	case key.Matches(msg, m.keys.ToggleEvents):
		m.showEvents = !m.showEvents

	case key.Matches(msg, m.keys.Up):
		if m.scroll > 0 {
			m.scroll--
		}

	case key.Matches(msg, m.keys.Down):
		if m.scroll < len(m.snapshot.Transactions)-1 {
			m.scroll++
		}

	default:
		return m, nil
	}
	m.refresh(time.Now())
	return m, nil
}

func pauseNotice(pause bool) string {
	if pause {
		return "pausing while unfocused"
	}
	return "polling while unfocused"
}

// refresh pulls fresh state from the store and the scheduler.
func (m *Model) refresh(now time.Time) {
	m.now = now
	if m.opts.Store != nil {
		m.snapshot = m.opts.Store.Snapshot()
	}
	if m.opts.Cadence != nil {
		m.sched = m.opts.Cadence.Current().State()
	}

	staleAfter := syncstatus.DefaultStaleAfter
	if m.opts.Controller != nil {
		staleAfter = m.opts.Controller.StaleAfter()
	}
	in := m.snapshot.SyncInput(m.sched.Visible, m.sched.Config.PauseInBackground)
	m.status = syncstatus.Classify(in, now, staleAfter)

	if m.showEvents && m.opts.LogFile != "" {
		if entries, err := logtail.ReadEntries(m.opts.LogFile, eventsLimit); err == nil {
			m.events = entries
		}
	}
	if m.scroll >= len(m.snapshot.Transactions) {
		m.scroll = max(len(m.snapshot.Transactions)-1, 0)
	}
}

// View renders the dashboard.
func (m Model) View() string {
	sections := []string{m.renderHeader()}

	bodyHeight := m.height - 2 // header + footer
	if m.help.ShowAll {
		bodyHeight -= 3
	}
	body := m.renderBody(bodyHeight)
	sections = append(sections, body)
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	line := m.help.View(m.keys)
	if m.notice != "" && !m.help.ShowAll {
		line += "  " + styles.AccentText.Render(m.notice)
	}
	return styles.Footer.Width(m.width).Render(line)
}

// Run starts the dashboard and blocks until the user quits or the context
// is cancelled.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	p := tea.NewProgram(New(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(opts.Context),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context.Err() != nil {
		return nil
	}
	return err
}
