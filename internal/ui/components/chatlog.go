package components

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockinterview/internal/ui/theme"
)

// Speaker identifies who wrote a chat line.
type Speaker int

const (
	SpeakerBot Speaker = iota
	SpeakerUser
	SpeakerSystem
)

// ChatLine is one rendered message.
type ChatLine struct {
	Speaker Speaker
	Text    string
}

// ChatLog is a scrollable transcript that follows new messages until the
// user scrolls up.
type ChatLog struct {
	BotName  string
	UserName string

	lines  []ChatLine
	vp     viewport.Model
	width  int
	dirty  bool
	follow bool
}

// NewChatLog creates an empty log.
func NewChatLog(botName, userName string) ChatLog {
	return ChatLog{
		BotName:  botName,
		UserName: userName,
		vp:       viewport.New(),
		follow:   true,
	}
}

// Append adds messages from one speaker.
func (c *ChatLog) Append(sp Speaker, texts ...string) {
	for _, t := range texts {
		c.lines = append(c.lines, ChatLine{Speaker: sp, Text: t})
	}
	c.dirty = true
	c.follow = true
}

// Lines returns the messages in order.
func (c *ChatLog) Lines() []ChatLine {
	return c.lines
}

// Clear drops every message.
func (c *ChatLog) Clear() {
	c.lines = nil
	c.dirty = true
	c.follow = true
}

// Update handles scrolling keys and mouse wheel.
func (c ChatLog) Update(msg tea.Msg) (ChatLog, tea.Cmd) {
	var cmd tea.Cmd
	c.vp, cmd = c.vp.Update(msg)
	c.follow = c.vp.AtBottom()
	return c, cmd
}

// View renders the log into a width x height box.
func (c *ChatLog) View(width, height int) string {
	if width != c.width {
		c.width = width
		c.dirty = true
	}
	c.vp.SetWidth(width)
	c.vp.SetHeight(height)
	if c.dirty {
		c.vp.SetContent(c.render(width))
		c.dirty = false
	}
	if c.follow {
		c.vp.GotoBottom()
	}
	return c.vp.View()
}

func (c *ChatLog) render(width int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(max(width-4, 10))
	var b strings.Builder
	for i, l := range c.lines {
		if i > 0 {
			b.WriteString("\n")
		}
		switch l.Speaker {
		case SpeakerUser:
			b.WriteString(theme.UserName.Render(c.UserName + ":"))
		case SpeakerSystem:
			b.WriteString(theme.Hint.Render(l.Text))
			b.WriteString("\n")
			continue
		default:
			b.WriteString(theme.AssistantName.Render(c.BotName + ":"))
		}
		b.WriteString("\n")
		b.WriteString(body.PaddingLeft(2).Render(l.Text))
		b.WriteString("\n")
	}
	return b.String()
}
