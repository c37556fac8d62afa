package session

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/mockinterview/internal/session"
	"github.com/abhisek/mockinterview/internal/ui/components"
	"github.com/abhisek/mockinterview/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}

	inner := max(width-4, 10)
	s.input.SetWidth(inner - 4)

	var parts []string
	if p := s.renderProgress(inner); p != "" {
		parts = append(parts, p)
	}

	bottom := []string{
		"  " + s.renderStatus(),
		"  " + lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Width(inner).
			Render(s.input.View()),
	}

	used := len(parts) + lipgloss.Height(strings.Join(bottom, "\n"))
	logHeight := max(height-used, 1)
	parts = append(parts, lipgloss.NewStyle().PaddingLeft(2).Render(s.log.View(inner, logHeight)))
	parts = append(parts, bottom...)

	return strings.Join(parts, "\n")
}

// renderProgress shows the round progress bar during the rounds.
func (s *SessionScreen) renderProgress(width int) string {
	var done, total int
	var label string
	switch s.snap.Stage {
	case sess.StageHRRound:
		done, total, label = s.snap.HRIndex, len(s.snap.HRQuestions), "HR"
	case sess.StageTechRound:
		done, total, label = s.snap.TechIndex, len(s.snap.TechQuestions), "Technical"
	default:
		return ""
	}
	if total == 0 {
		return ""
	}
	title := fmt.Sprintf("%s %d/%d", label, min(done+1, total), total)
	bar := components.Meter{Label: title, Value: float64(done), Max: float64(total), Width: min(width, 60)}
	return "  " + bar.View()
}

func (s *SessionScreen) renderStatus() string {
	switch {
	case s.busy:
		return s.spin.View() + " " + theme.Hint.Render(s.busyLabel)
	case s.snap.RecordingActive:
		elapsed := time.Since(s.recStarted).Truncate(time.Second)
		return theme.Recording.Render("● Recording ") +
			theme.Body.Render(fmt.Sprintf("%s / %s", clock(elapsed), clock(s.opts.RecordMax))) +
			theme.Hint.Render("   Ctrl+S to stop and submit")
	case isRound(s.snap.Stage):
		return theme.Hint.Render("Press Ctrl+R to record your answer")
	}
	return ""
}

func clock(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End the interview early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Answers given so far will not be saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("[Y] Yes, end interview"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[N] No, keep going"))

	return b.String()
}
