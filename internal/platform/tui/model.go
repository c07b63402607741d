package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-badges/internal/tracker"
)

const (
	skipSecs     = 3600
	maxEventRows = 8
)

// Engine is the part of the tracker the simulator drives.
type Engine interface {
	Apply(userRef string, kind tracker.EventKind, secs int64) (tracker.Result, error)
	Snapshot(userRef string, secs int64) (tracker.Snapshot, error)
}

// Options configures the simulator.
type Options struct {
	TickRate  int   // Ticks per real second
	TickSecs  int64 // Play seconds added per tick
	StartSecs int64 // Initial play clock, usually the user's last stored clock
}

// Model is the Bubble Tea model for the badge simulator.
type Model struct {
	engine  Engine
	user    string
	opts    Options
	clock   int64
	paused  bool
	snap    tracker.Snapshot
	events  table.Model
	rows    []table.Row
	help    help.Model
	keys    PlayKeyMap
	theme   Theme
	message string
	err     error
	width   int

	quitting bool
}

// NewModel creates a simulator for one stored user.
func NewModel(engine Engine, user string, opts Options) Model {
	if opts.TickRate <= 0 {
		opts.TickRate = 10
	}
	m := Model{
		engine: engine,
		user:   user,
		opts:   opts,
		clock:  opts.StartSecs,
		help:   help.New(),
		keys:   DefaultPlayKeyMap(),
		theme:  DefaultTheme(),
		width:  80,
	}
	m.events = m.createTable()
	m.refresh()
	return m
}

// createTable creates the session event log.
func (m *Model) createTable() table.Model {
	columns := []table.Column{
		{Title: "Clock", Width: 10},
		{Title: "Event", Width: 16},
		{Title: "Badge", Width: 12},
		{Title: "Level", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(maxEventRows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init starts the clock.
func (m Model) Init() tea.Cmd {
	return clockTick(m.opts.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil
	case key.Matches(msg, m.keys.Skip):
		m.advanceClock(skipSecs)
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if kind, ok := m.keys.EventFor(msg); ok {
		m.apply(kind)
	}
	return m, nil
}

// handleTick advances the play clock.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		m.advanceClock(m.opts.TickSecs)
	}
	return m, clockTick(m.opts.TickRate)
}

// apply sends one event through the engine and logs the outcome.
func (m *Model) apply(kind tracker.EventKind) {
	res, err := m.engine.Apply(m.user, kind, m.clock)
	if err != nil {
		m.err = err
		m.message = ""
		return
	}
	m.err = nil

	badge := "-"
	if res.Unlocked() {
		badge = string(res.Badge)
		m.message = fmt.Sprintf("%s -> %s", kind, res.Badge)
	} else {
		m.message = fmt.Sprintf("%s: no change", kind)
	}

	row := table.Row{FormatDuration(m.clock), kind.String(), badge, fmt.Sprintf("%d", res.Level)}
	m.rows = append([]table.Row{row}, m.rows...)
	if len(m.rows) > maxEventRows {
		m.rows = m.rows[:maxEventRows]
	}
	m.events.SetRows(m.rows)
	m.refresh()
}

// refresh reloads the snapshot at the current clock.
func (m *Model) refresh() {
	snap, err := m.engine.Snapshot(m.user, m.clock)
	if err != nil {
		m.err = err
		return
	}
	m.snap = snap
}

// View renders the simulator.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	t := m.theme
	var b strings.Builder

	sep := t.HUDSeparator.Render("  |  ")
	clock := FormatDuration(m.clock)
	if m.paused {
		clock += " (paused)"
	}
	hud := t.HUDTitle.Render(m.user) + sep +
		"level " + t.HUDValue.Render(fmt.Sprintf("%d", m.snap.Level)) + sep +
		"clock " + t.HUDValue.Render(clock)
	if m.snap.Cats > 0 {
		hud += sep + t.Error.Render(fmt.Sprintf("grumpy cat x%d  hp %d", m.snap.Cats, m.snap.CatHP))
	}
	b.WriteString(hud)
	b.WriteString("\n\n")

	b.WriteString(RenderBoard(t, m.snap.Board))
	b.WriteString("\n\n")
	b.WriteString(RenderProgress(t, m.snap.Progress))
	b.WriteString("\n\n")

	if m.snap.Completed {
		b.WriteString(t.Message.Render("Level complete! Next: "))
		b.WriteString(RenderBoard(t, m.snap.NextBoard))
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(t.Error.Render(describeError(m.err)))
	case m.message != "":
		b.WriteString(t.Message.Render(m.message))
	}
	b.WriteString("\n\n")

	if len(m.rows) > 0 {
		b.WriteString(m.events.View())
		b.WriteString("\n\n")
	}

	b.WriteString(t.HUDControls.Render(m.help.View(m.keys)))
	return b.String()
}

func describeError(err error) string {
	if errors.Is(err, tracker.ErrClockBackwards) {
		return "clock is behind the stored play time"
	}
	return err.Error()
}

// Clock returns the current simulated play clock.
func (m Model) Clock() int64 {
	return m.clock
}

// Snapshot returns the last loaded snapshot.
func (m Model) Snapshot() tracker.Snapshot {
	return m.snap
}

// Err returns the error from the last engine call, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program for the given user.
func Run(engine Engine, user string, opts Options) error {
	model := NewModel(engine, user, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
