// Package router keeps the stack of screens behind the TUI. Screens ask
// for navigation by returning one of the *Msg types below as a command.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockinterview/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen, e.g. welcome to
// home.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopToRootMsg closes everything above the first screen.
type PopToRootMsg struct{}

// Router is a stack of screens. The bottom screen is never popped.
// Screens implementing screen.Leaver are told when they leave the stack.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

func (r *Router) Pop() tea.Cmd {
	return r.truncate(len(r.stack) - 1)
}

func (r *Router) PopToRoot() tea.Cmd {
	return r.truncate(1)
}

func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	top := len(r.stack) - 1
	leaveCmd := leave(r.stack[top])
	r.stack[top] = s
	return tea.Batch(leaveCmd, s.Init())
}

// Unwind tells every screen it is leaving, top first, and empties the
// stack. Used on shutdown.
func (r *Router) Unwind() tea.Cmd {
	var cmds []tea.Cmd
	for i := len(r.stack) - 1; i >= 0; i-- {
		cmds = append(cmds, leave(r.stack[i]))
	}
	r.stack = nil
	return tea.Batch(cmds...)
}

// truncate drops screens above depth n, keeping at least one.
func (r *Router) truncate(n int) tea.Cmd {
	n = max(n, 1)
	var cmds []tea.Cmd
	for len(r.stack) > n {
		top := len(r.stack) - 1
		cmds = append(cmds, leave(r.stack[top]))
		r.stack = r.stack[:top]
	}
	return tea.Batch(cmds...)
}

func leave(s screen.Screen) tea.Cmd {
	if l, ok := s.(screen.Leaver); ok {
		return l.Leave()
	}
	return nil
}

// Active is the top screen, or nil after Unwind.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Trail lists the screen titles from the bottom up.
func (r *Router) Trail() []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		return r.PopToRoot()
	}

	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}
