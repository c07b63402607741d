package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-badges/internal/badges"
)

// Theme contains the visual styles for boards and progress.
type Theme struct {
	// Cell styles
	Open       lipgloss.Style
	Locked     lipgloss.Style
	Cat        lipgloss.Style // active grumpy cat
	CatAsleep  lipgloss.Style // inactive cat slot
	LastMarker lipgloss.Style

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDControls  lipgloss.Style

	// Progress bar
	BarFull  lipgloss.Style
	BarEmpty lipgloss.Style

	Message lipgloss.Style
	Error   lipgloss.Style
}

// badgeColors gives each badge family its own hue when open.
var badgeColors = map[badges.BadgeID]lipgloss.Color{
	badges.BadgeF0: lipgloss.Color("135"), // Medium purple
	badges.BadgeS0: lipgloss.Color("226"), // Bright yellow
	badges.BadgeS1: lipgloss.Color("220"),
	badges.BadgeS2: lipgloss.Color("214"),
	badges.BadgeT0: lipgloss.Color("51"), // Bright cyan
	badges.BadgeC1: lipgloss.Color("46"), // Lime green
	badges.BadgeC2: lipgloss.Color("40"),
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Open:       lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Locked:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1),
		Cat:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")).Padding(0, 1),
		CatAsleep:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Padding(0, 1),
		LastMarker: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),

		HUDTitle:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		BarFull:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		BarEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		Message: lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// cellStyle picks the style for one board cell.
func (t Theme) cellStyle(c badges.Cell) lipgloss.Style {
	switch {
	case c.Badge == badges.BadgeC0 && c.IsActive:
		return t.Cat
	case c.Badge == badges.BadgeC0:
		return t.CatAsleep
	case c.IsActive:
		return t.Open.Foreground(badgeColors[c.Badge])
	default:
		return t.Locked
	}
}
