package home

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockinterview/internal/ui/theme"
)

// contentWidth is the shared width of every section, clamped to 20..60
// after the frame border and padding.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

func center(s string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}

func line(c color.Color, cw int, text string) string {
	return center(lipgloss.NewStyle().Foreground(c).Render(text), cw)
}

func renderStats(st Stats, cw int, compact bool) string {
	done := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	avg := dim.Render("no scores yet")
	if st.Completed > 0 {
		avg = theme.ScoreColor(st.AverageScore).Render(fmt.Sprintf("avg %.1f/10", st.AverageScore))
	}

	completed, abandoned, sep := "✓ %d COMPLETED", "✗ %d ABANDONED", "  "
	if compact {
		completed, abandoned, sep = "✓%d", "✗%d", " "
	}
	text := strings.Join([]string{
		done.Render(fmt.Sprintf(completed, st.Completed)),
		dim.Render(fmt.Sprintf(abandoned, st.Abandoned)),
		avg,
	}, sep)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

const buttonWidth = 26

var (
	button = lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	buttonOn = button.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Primary).
			BorderForeground(theme.Primary)

	row   = lipgloss.NewStyle().Foreground(theme.Text)
	rowOn = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Primary).Bold(true)
)

// renderMenu draws bordered buttons when there is room, one line per
// entry otherwise. Each entry carries its number shortcut.
func renderMenu(entries []entry, selected, cw int, boxed bool) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		label := fmt.Sprintf("%d %s", i+1, e.label)
		style, indent := row, "   "
		if boxed {
			style, indent = button, ""
		}
		switch {
		case i == selected && boxed:
			lines[i] = buttonOn.Render("▸ " + label)
		case i == selected:
			lines[i] = rowOn.Render(" ▸ " + label + " ")
		case e.disabled:
			lines[i] = style.Foreground(theme.TextDim).Render(indent + label)
		default:
			lines[i] = style.Render(indent + label)
		}
	}
	return center(strings.Join(lines, "\n"), cw)
}

// renderFrame centers content inside a double border filling the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
