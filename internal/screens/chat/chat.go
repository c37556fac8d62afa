package chat

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockinterview/internal/chatbot"
	"github.com/abhisek/mockinterview/internal/llm"
	"github.com/abhisek/mockinterview/internal/screen"
	"github.com/abhisek/mockinterview/internal/ui/components"
	"github.com/abhisek/mockinterview/internal/ui/layout"
	"github.com/abhisek/mockinterview/internal/ui/theme"
)

const greeting = "Hi! Ask me about study topics, interview preparation or your job search."

// answerMsg carries the chatbot reply.
type answerMsg struct {
	Text string
}

// ChatScreen is the career and study chatbot.
type ChatScreen struct {
	bot   *chatbot.Chat
	log   components.ChatLog
	input components.TextInput
	spin  spinner.Model
	busy  bool
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a chat screen over bot. History lives in bot, so reopening
// the screen continues the conversation.
func New(bot *chatbot.Chat) *ChatScreen {
	s := &ChatScreen{
		bot:   bot,
		log:   components.NewChatLog("Assistant", "You"),
		input: components.NewTextInput("Ask a question...", 500),
		spin:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Hint)),
	}
	s.log.Append(components.SpeakerBot, greeting)
	for _, m := range bot.History() {
		sp := components.SpeakerBot
		if m.Role == llm.RoleUser {
			sp = components.SpeakerUser
		}
		s.log.Append(sp, m.Content)
	}
	return s
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return "Chatbot"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Ctrl+L", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		s.busy = false
		s.input.Disabled = false
		s.log.Append(components.SpeakerBot, msg.Text)
		return s, nil

	case spinner.TickMsg:
		if !s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		s.log, cmd = s.log.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s.send()
		case "ctrl+l":
			if s.busy {
				return s, nil
			}
			s.bot.Reset()
			s.log.Clear()
			s.log.Append(components.SpeakerBot, greeting)
			return s, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			s.log, cmd = s.log.Update(msg)
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) send() (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}
	text := strings.TrimSpace(s.input.Take())
	if text == "" {
		return s, nil
	}
	s.log.Append(components.SpeakerUser, text)
	s.busy = true
	s.input.Disabled = true

	bot := s.bot
	ask := func() tea.Msg {
		return answerMsg{Text: bot.Ask(context.Background(), text)}
	}
	return s, tea.Batch(ask, s.spin.Tick)
}

func (s *ChatScreen) View(width, height int) string {
	inner := max(width-4, 10)
	s.input.SetWidth(inner - 4)

	status := ""
	if s.busy {
		status = s.spin.View() + " " + theme.Hint.Render("Thinking...")
	}
	bottom := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(inner).
		Render(s.input.View())

	logHeight := max(height-lipgloss.Height(bottom)-1, 1)
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingLeft(2).Render(s.log.View(inner, logHeight)),
		"  "+status,
		"  "+bottom,
	)
}
