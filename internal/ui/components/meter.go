package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockinterview/internal/ui/theme"
)

// Meter draws Value out of Max as a bar of block characters.
type Meter struct {
	Label string
	Value float64
	Max   float64
	Width int

	// Readout appends "value/max" after the bar.
	Readout bool
	// Graded colours the fill by score band instead of the accent colour.
	Graded bool
}

// Fraction is Value/Max clamped to [0, 1].
func (m Meter) Fraction() float64 {
	if m.Max <= 0 {
		return 0
	}
	return min(max(m.Value/m.Max, 0), 1)
}

func (m Meter) View() string {
	var b strings.Builder
	if m.Label != "" {
		b.WriteString(theme.Body.Render(m.Label))
		b.WriteString(" ")
	}

	readout := ""
	if m.Readout {
		readout = fmt.Sprintf(" %.1f/%g", m.Value, m.Max)
	}

	cells := max(m.Width-lipgloss.Width(b.String())-len(readout), 4)
	filled := int(float64(cells)*m.Fraction() + 0.5)

	fill := lipgloss.NewStyle().Foreground(theme.Secondary)
	if m.Graded {
		fill = theme.ScoreColor(m.Value / max(m.Max, 1) * 10)
	}
	b.WriteString(fill.Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-filled)))
	if readout != "" {
		b.WriteString(theme.Hint.Render(readout))
	}
	return b.String()
}
