package summary

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockinterview/internal/dashboard"
	"github.com/abhisek/mockinterview/internal/results"
	"github.com/abhisek/mockinterview/internal/ui/components"
	"github.com/abhisek/mockinterview/internal/ui/theme"
)

func (s *SummaryScreen) render(width int) string {
	r := s.opts.Report
	sum := r.Summary
	inner := max(width-4, 20)

	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Interview Performance Dashboard"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Candidate ID: %s | Domain: %s", r.CandidateID, r.Domain)))
	b.WriteString("\n\n")

	// Metric cards.
	cardW := max(inner/3-2, 18)
	card := theme.Card.Width(cardW)
	overall := theme.ScoreColor(sum.Average).Render(fmt.Sprintf("%.2f/10", sum.Average))
	if d := sum.DeltaLabel(); d != "" {
		overall += "\n" + deltaStyle(sum.Delta()).Render(d)
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card.Render(theme.Hint.Render("HR Score")+"\n"+
			theme.ScoreColor(sum.HRAverage).Render(fmt.Sprintf("%d/%d", sum.HRTotal, sum.HRMax()))),
		card.Render(theme.Hint.Render("Tech Score")+"\n"+
			theme.ScoreColor(sum.TechAverage).Render(fmt.Sprintf("%d/%d", sum.TechTotal, sum.TechMax()))),
		card.Render(theme.Hint.Render("Overall Average")+"\n"+overall),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, cards))
	b.WriteString("\n\n")

	barW := min(inner, 60)
	b.WriteString("  " + components.Meter{Label: "HR       ", Value: sum.HRAverage, Max: 10, Width: barW, Readout: true, Graded: true}.View())
	b.WriteString("\n")
	b.WriteString("  " + components.Meter{Label: "Technical", Value: sum.TechAverage, Max: 10, Width: barW, Readout: true, Graded: true}.View())
	b.WriteString("\n")

	b.WriteString(section("HR Round Feedback", inner))
	b.WriteString(renderEntries("HR Round", r.HR, inner))
	b.WriteString(section("Technical Round Feedback", inner))
	b.WriteString(renderEntries("Technical Round", r.Tech, inner))

	if s.opts.Advisor != nil {
		b.WriteString(section("Personalized Feedback", inner))
		b.WriteString(s.renderFeedback())
	}

	b.WriteString(section("Free Course Search Links", inner))
	b.WriteString(renderLinks(dashboard.CourseLinks(r.Domain)))

	b.WriteString(section(fmt.Sprintf("Job Recommendations (%s)", s.opts.Location), inner))
	if s.advice != nil {
		if s.advice.RolesErr != nil {
			b.WriteString("  " + theme.Hint.Render("Roles unavailable: "+s.advice.RolesErr.Error()) + "\n")
		} else if len(s.advice.Roles) > 0 {
			b.WriteString("  " + theme.Body.Render(strings.Join(s.advice.Roles, " · ")) + "\n\n")
		}
	}
	b.WriteString(renderLinks(dashboard.JobLinks(r.Domain, s.opts.Location)))

	if s.restart.Enabled() {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.restart.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(dashboard.Footer))
	return b.String()
}

func (s *SummaryScreen) renderFeedback() string {
	if s.waiting {
		return "  " + s.spin.View() + " " + theme.Hint.Render("Generating personalized feedback...") + "\n"
	}
	if s.advice == nil {
		return ""
	}
	if s.advice.FeedbackErr != nil {
		return "  " + theme.Hint.Render("Feedback unavailable: "+s.advice.FeedbackErr.Error()) + "\n"
	}
	fb := s.advice.Feedback
	if fb == nil {
		return ""
	}
	var b strings.Builder
	bullets(&b, "Focus topics", fb.TechnicalTopics)
	bullets(&b, "Soft skills", fb.SoftSkills)
	bullets(&b, "Career advice", fb.CareerAdvice)
	return b.String()
}

func section(title string, width int) string {
	return "\n" + theme.Heading.Render("  "+title) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Border).Render("  "+strings.Repeat("─", max(width-2, 1))) + "\n"
}

func renderEntries(label string, entries []results.Entry, width int) string {
	if len(entries) == 0 {
		return "  " + theme.Hint.Render(fmt.Sprintf("No %s data found.", label)) + "\n"
	}
	text := lipgloss.NewStyle().Foreground(theme.Text).Width(max(width-8, 10))
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Width(max(width-8, 10))

	var b strings.Builder
	for i, e := range entries {
		score := theme.ScoreColor(float64(e.Score)).Render(fmt.Sprintf("%2d/10", e.Score))
		b.WriteString(fmt.Sprintf("  %s  Q%d\n", score, i+1))
		b.WriteString(indent(text.Render(e.Question), 6))
		b.WriteString(indent(dim.Render("A: "+e.Answer), 6))
		b.WriteString(indent(dim.Italic(true).Render(e.Feedback), 6))
		b.WriteString("\n")
	}
	return b.String()
}

func bullets(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("  " + theme.Body.Bold(true).Render(title) + "\n")
	for _, it := range items {
		b.WriteString("    • " + theme.Body.Render(it) + "\n")
	}
}

func renderLinks(links []dashboard.Link) string {
	var b strings.Builder
	for _, l := range links {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			theme.Body.Bold(true).Width(13).Render(l.Name),
			lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true).Render(l.URL)))
	}
	return b.String()
}

func deltaStyle(d float64) lipgloss.Style {
	if d >= 0 {
		return lipgloss.NewStyle().Foreground(theme.Success)
	}
	return lipgloss.NewStyle().Foreground(theme.Error)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n") + "\n"
}
