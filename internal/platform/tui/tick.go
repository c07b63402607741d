// Package tui provides the Bubble Tea simulator for the badge engine.
// It drives a simulated play clock, maps keys to gameplay events and renders
// the board and progress.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg moves the simulated play clock forward by one step.
type TickMsg struct {
	At time.Time
}

// clockTick schedules the next clock step; rate is steps per real second.
func clockTick(rate int) tea.Cmd {
	if rate <= 0 {
		rate = 1
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}

// advanceClock adds play seconds and reloads the board at the new time.
// The clock never moves backwards.
func (m *Model) advanceClock(secs int64) {
	if secs <= 0 {
		return
	}
	m.clock += secs
	m.refresh()
}
