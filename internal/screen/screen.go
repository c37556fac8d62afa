package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockinterview/internal/ui/layout"
)

// Screen is one page of the TUI. The router owns the stack of screens
// and the app draws the header and footer around View.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View renders the body only, sized to the space between header and
	// footer.
	View(width, height int) string
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscHandler is implemented by screens that handle Esc themselves, e.g.
// to confirm before abandoning work. While it reports true the app does
// not pop the screen on Esc.
type EscHandler interface {
	HandlesEsc() bool
}

// StatusProvider lets a screen show candidate and stage details in the
// header.
type StatusProvider interface {
	Status() layout.Status
}

// Leaver is told when its screen is removed from the stack, whether by
// Esc, a pop, a replace or shutdown. Used to abandon unfinished work.
type Leaver interface {
	Leave() tea.Cmd
}
