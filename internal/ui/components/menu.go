package components

import tea "charm.land/bubbletea/v2"

// MenuItem is one entry of a Menu. Shortcut, when set, activates the item
// directly.
type MenuItem struct {
	Label    string
	Shortcut string
	Action   func() tea.Cmd
}

// Menu tracks the cursor over a vertical list. Rendering is left to the
// screen that owns it.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items ...MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the cursor (wrapping at both ends) and runs the selected
// item on enter or its shortcut.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}
	n := len(m.Items)
	switch k := key.String(); k {
	case "up", "k", "shift+tab":
		m.Selected = (m.Selected - 1 + n) % n
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % n
	case "home", "g":
		m.Selected = 0
	case "end", "G":
		m.Selected = n - 1
	case "enter", "space":
		return m, m.run(m.Selected)
	default:
		for i, it := range m.Items {
			if it.Shortcut != "" && it.Shortcut == k {
				m.Selected = i
				return m, m.run(i)
			}
		}
	}
	return m, nil
}

func (m Menu) run(i int) tea.Cmd {
	if a := m.Items[i].Action; a != nil {
		return a()
	}
	return nil
}
