// Package placeholder is shown in place of a feature that cannot run,
// such as the interview without an LLM key.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockinterview/internal/screen"
	"github.com/abhisek/mockinterview/internal/ui/layout"
	"github.com/abhisek/mockinterview/internal/ui/theme"
)

const defaultReason = "This feature is not available."

type PlaceholderScreen struct {
	title  string
	reason string
}

var (
	_ screen.Screen          = (*PlaceholderScreen)(nil)
	_ screen.KeyHintProvider = (*PlaceholderScreen)(nil)
)

// New returns a screen titled title that explains reason. An empty reason
// falls back to a generic message.
func New(title, reason string) *PlaceholderScreen {
	if reason == "" {
		reason = defaultReason
	}
	return &PlaceholderScreen{title: title, reason: reason}
}

func (p *PlaceholderScreen) Init() tea.Cmd                           { return nil }
func (p *PlaceholderScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }
func (p *PlaceholderScreen) Title() string                           { return p.title }

func (p *PlaceholderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (p *PlaceholderScreen) View(width, height int) string {
	card := theme.Card.Render(
		theme.Heading.Render(p.title+" unavailable") + "\n\n" + theme.Body.Render(p.reason),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
