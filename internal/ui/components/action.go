package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockinterview/internal/ui/theme"
)

// Action is one key-bound command drawn as a pill. A nil Run disables it.
type Action struct {
	Key   string
	Label string
	Run   func() tea.Cmd
}

func (a Action) Enabled() bool { return a.Run != nil }

// Handle runs the action when msg matches Key. The bool reports whether
// the key was consumed.
func (a Action) Handle(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	if !a.Enabled() || msg.String() != a.Key {
		return nil, false
	}
	return a.Run(), true
}

func (a Action) View() string {
	if !a.Enabled() {
		return theme.ButtonInactive.Render(a.Label)
	}
	return theme.ButtonActive.Render(keyGlyph(a.Key) + " " + a.Label)
}

func keyGlyph(key string) string {
	switch key {
	case "enter":
		return "⏎"
	case "esc":
		return "⎋"
	}
	return "[" + key + "]"
}
