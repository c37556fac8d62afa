package history

import (
	"context"
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/mockinterview/internal/router"
	"github.com/abhisek/mockinterview/internal/screen"
	"github.com/abhisek/mockinterview/internal/store"
	"github.com/abhisek/mockinterview/internal/ui/layout"
	"github.com/abhisek/mockinterview/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []store.SessionEvent
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerEvent
	Err       error
}

// HistoryScreen lists finished and abandoned interviews with their answers.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionEvent
	answers   map[string][]store.AnswerEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		answers:   make(map[string][]store.AnswerEvent),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		events, err := repo.QuerySessionEvents(context.Background(), store.QueryOpts{Limit: 200})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: finished(events, 50)}
	}
}

// finished keeps the terminal event of each session, newest first.
func finished(events []store.SessionEvent, limit int) []store.SessionEvent {
	var out []store.SessionEvent
	for _, e := range events {
		if e.Action == store.ActionStart {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err == nil {
			s.answers[msg.SessionID] = msg.Answers
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected >= len(s.sessions) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.sessions[s.selected].SessionID
			if _, ok := s.answers[id]; ok || !s.expanded[s.selected] {
				return s, nil
			}
			return s, s.loadAnswers(id)
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.QueryAnswerEvents(context.Background(), sessionID)
		return answersLoadedMsg{SessionID: sessionID, Answers: answers, Err: err}
	}
}

var (
	cell     = lipgloss.NewStyle().Padding(0, 1).Foreground(theme.Text)
	header   = cell.Foreground(theme.Secondary).Bold(true)
	dimCell  = cell.Foreground(theme.TextDim)
	pickCell = cell.Foreground(theme.Primary).Bold(true)
	notice   = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
)

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return centered(width, lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg))
	case !s.loaded:
		return centered(width, notice.Render("Loading history..."))
	case len(s.sessions) == 0:
		return centered(width, notice.Render("No interviews yet. Start one from the home screen!"))
	}

	parts := []string{"", lipgloss.PlaceHorizontal(width, lipgloss.Center, s.sessionTable())}
	if s.expanded[s.selected] {
		parts = append(parts, "", lipgloss.PlaceHorizontal(width, lipgloss.Center, s.answerPanel()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func centered(width int, s string) string {
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// sessionTable lists one row per finished session. The cursor row is
// highlighted and abandoned sessions are dimmed.
func (s *HistoryScreen) sessionTable() string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("", "When", "Time", "Candidate", "Domain", "Answers", "Avg", "Outcome").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case row == s.selected:
				return pickCell
			case s.sessions[row].Action == store.ActionAbandon:
				return dimCell
			}
			return cell
		})

	for i, e := range s.sessions {
		cursor := " "
		if i == s.selected {
			cursor = "▸"
		}
		domain := e.Domain
		if domain == "" {
			domain = "no domain"
		}
		t.Row(
			cursor,
			e.Timestamp.Local().Format("Jan 02 15:04"),
			fmt.Sprintf("%d:%02d", e.DurationSecs/60, e.DurationSecs%60),
			e.CandidateID,
			clip(domain, 24),
			strconv.Itoa(e.QuestionsAnswered),
			fmt.Sprintf("%.1f", e.AverageScore),
			e.Action,
		)
	}
	return t.String()
}

// answerPanel shows the scored answers of the selected session.
func (s *HistoryScreen) answerPanel() string {
	answers, ok := s.answers[s.sessions[s.selected].SessionID]
	switch {
	case !ok:
		return notice.Render("Loading answers...")
	case len(answers) == 0:
		return notice.Render("No answers recorded")
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("Round", "#", "Score", "Question").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 2 {
				return theme.ScoreColor(float64(answers[row].Score)).Padding(0, 1)
			}
			return cell
		})
	for _, a := range answers {
		t.Row(a.Round, strconv.Itoa(a.QuestionIndex+1), strconv.Itoa(a.Score), clip(a.Question, 60))
	}
	return t.String()
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
