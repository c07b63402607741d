package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-badges/internal/tracker"
)

// PlayKeyMap defines the key bindings for the simulator.
type PlayKeyMap struct {
	GameStarted    key.Binding
	FormulaUpdated key.Binding
	Prompt         key.Binding
	Penalty        key.Binding
	Review         key.Binding
	ShooCat        key.Binding
	ForceOpen      key.Binding
	Pause          key.Binding
	Skip           key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Review, k.Penalty, k.ShooCat, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.GameStarted, k.FormulaUpdated, k.Prompt, k.Penalty, k.Review},
		{k.ShooCat, k.ForceOpen},
		{k.Pause, k.Skip, k.Help, k.Quit},
	}
}

// DefaultPlayKeyMap returns default key bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		GameStarted: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "game started"),
		),
		FormulaUpdated: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "formula updated"),
		),
		Prompt: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prompt"),
		),
		Penalty: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "penalty"),
		),
		Review: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "review"),
		),
		ShooCat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "shoo cat"),
		),
		ForceOpen: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "force open"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause clock"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip 1h"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// EventFor maps a key to the tracker event it sends.
func (k PlayKeyMap) EventFor(msg tea.KeyMsg) (tracker.EventKind, bool) {
	switch {
	case key.Matches(msg, k.GameStarted):
		return tracker.KindGameStarted, true
	case key.Matches(msg, k.FormulaUpdated):
		return tracker.KindFormulaUpdated, true
	case key.Matches(msg, k.Prompt):
		return tracker.KindPrompt, true
	case key.Matches(msg, k.Penalty):
		return tracker.KindPenalty, true
	case key.Matches(msg, k.Review):
		return tracker.KindReview, true
	case key.Matches(msg, k.ShooCat):
		return tracker.KindShooCat, true
	case key.Matches(msg, k.ForceOpen):
		return tracker.KindForceOpen, true
	}
	return 0, false
}
