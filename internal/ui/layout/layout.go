// Package layout draws the chrome around every screen: a header bar with
// the screen title and interview status, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockinterview/internal/ui/theme"
)

// Smallest terminal the frame is drawn in.
const (
	MinWidth  = 80
	MinHeight = 24
)

type KeyHint struct {
	Key         string
	Description string
}

// Status is the right-hand side of the header.
type Status struct {
	CandidateID string
	Stage       string
	Recording   bool
}

// Frame is the header and footer content for one render.
type Frame struct {
	Title  string
	Status Status
	Hints  []KeyHint
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Render draws the frame and fills the space between header and footer
// with body, which is given the exact size it may use.
func (f Frame) Render(width, height int, body func(w, h int) string) string {
	if msg, small := TooSmall(width, height); small {
		return msg
	}
	header := f.header(width)
	footer := f.footer(width)
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := lipgloss.NewStyle().Width(width).Height(h).Render(body(width, h))
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// TooSmall returns a resize notice when the terminal is under MinWidth by
// MinHeight.
func TooSmall(width, height int) (string, bool) {
	if width >= MinWidth && height >= MinHeight {
		return "", false
	}
	msg := fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Align(lipgloss.Center).
		Width(width).
		Height(height).
		Render(msg), true
}

func (f Frame) header(width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Mock Interview")
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	status := f.Status.render()

	inner := max(width-4, 0)
	bw, tw, sw := lipgloss.Width(brand), lipgloss.Width(title), lipgloss.Width(status)
	// Center the title on the bar, not in the gap left by brand and status.
	lead := max((inner-tw)/2-bw, 1)
	trail := max(inner-bw-lead-tw-sw, 1)

	line := brand + strings.Repeat(" ", lead) + title + strings.Repeat(" ", trail) + status
	return bar.Width(width).Render(line)
}

func (s Status) render() string {
	var segs []string
	if s.Recording {
		segs = append(segs, theme.Recording.Render("● REC"))
	}
	if s.Stage != "" {
		segs = append(segs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.Stage))
	}
	if s.CandidateID != "" {
		segs = append(segs, lipgloss.NewStyle().Foreground(theme.Accent).Render("ID "+s.CandidateID))
	}
	return strings.Join(segs, "   ")
}

var (
	hintKey  = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	hintDesc = lipgloss.NewStyle().Foreground(theme.TextDim)
)

func (f Frame) footer(width int) string {
	parts := make([]string, len(f.Hints))
	for i, h := range f.Hints {
		parts[i] = hintKey.Render(h.Key) + " " + hintDesc.Render(h.Description)
	}
	return bar.Width(width).Render("  " + strings.Join(parts, "   "))
}
