package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockinterview/internal/ui/theme"
)

// TextInput wraps bubbles/textinput as a single-line chat prompt.
// Submitted lines are kept so Up/Down can recall them.
type TextInput struct {
	Model    textinput.Model
	MaxWidth int
	Disabled bool

	history []string
	cursor  int
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{
		Model:    ti,
		MaxWidth: charLimit,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Up and Down walk the submitted history.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Disabled {
		return t, nil
	}
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "up":
			if t.cursor > 0 {
				t.cursor--
				t.Model.SetValue(t.history[t.cursor])
				t.Model.CursorEnd()
			}
			return t, nil
		case "down":
			if t.cursor < len(t.history)-1 {
				t.cursor++
				t.Model.SetValue(t.history[t.cursor])
				t.Model.CursorEnd()
			} else {
				t.cursor = len(t.history)
				t.Model.SetValue("")
			}
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// SetWidth sizes the field to the available columns.
func (t *TextInput) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	t.Model.SetWidth(w)
}

// View renders the text input.
func (t TextInput) View() string {
	if t.Disabled {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Model.Prompt + "…")
	}
	return t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Take returns the current line, records it in history and clears the field.
func (t *TextInput) Take() string {
	v := t.Model.Value()
	if strings.TrimSpace(v) != "" {
		t.history = append(t.history, v)
	}
	t.cursor = len(t.history)
	t.Model.Reset()
	return v
}

// SetSuggestions enables Tab completion from list.
func (t *TextInput) SetSuggestions(list []string) {
	t.Model.ShowSuggestions = len(list) > 0
	t.Model.SetSuggestions(list)
}
