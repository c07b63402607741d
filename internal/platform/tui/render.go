package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-badges/internal/badges"
)

const barWidth = 20

// RenderBoard draws the board as one row of styled cells with a marker
// under the last modified cell.
func RenderBoard(t Theme, b badges.Board) string {
	cells := make([]string, len(b))
	markers := make([]string, len(b))
	for i, c := range b {
		label := string(c.Badge)
		if !c.IsActive && c.Badge != badges.BadgeC0 {
			label = "[" + label + "]"
		}
		cells[i] = t.cellStyle(c).Render(label)

		mark := ""
		if c.IsLastModified {
			mark = "^"
		}
		markers[i] = lipgloss.PlaceHorizontal(lipgloss.Width(cells[i]), lipgloss.Center, t.LastMarker.Render(mark))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cells...),
		lipgloss.JoinHorizontal(lipgloss.Top, markers...),
	)
}

// RenderProgress lists locked badge progress in vocabulary order.
func RenderProgress(t Theme, progress map[badges.BadgeID]badges.Progress) string {
	var sb strings.Builder
	for _, id := range badges.All() {
		p, ok := progress[id]
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteRune('\n')
		}
		fmt.Fprintf(&sb, "%-3s %s %3d%%  %s", id, renderBar(t, p.Pct), p.Pct, remaining(p))
	}
	if sb.Len() == 0 {
		return t.HUDControls.Render("nothing locked")
	}
	return sb.String()
}

func renderBar(t Theme, pct int) string {
	full := pct * barWidth / 100
	return t.BarFull.Render(strings.Repeat("█", full)) +
		t.BarEmpty.Render(strings.Repeat("░", barWidth-full))
}

// remaining describes what is left of a progress entry.
func remaining(p badges.Progress) string {
	switch {
	case p.RemainingTimeSecs != nil:
		return FormatDuration(*p.RemainingTimeSecs) + " left"
	case p.RemainingReviews != nil:
		if *p.RemainingReviews == 1 {
			return "1 review left"
		}
		return fmt.Sprintf("%d reviews left", *p.RemainingReviews)
	}
	return ""
}

// FormatDuration renders play seconds as a compact h/m/s string.
func FormatDuration(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	h, m, s := secs/3600, secs/60%60, secs%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
