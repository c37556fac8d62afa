package session

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockinterview/internal/dashboard"
	"github.com/abhisek/mockinterview/internal/screen"
	"github.com/abhisek/mockinterview/internal/screens/summary"
)

// newSummaryScreenAdapter builds the dashboard for the finished interview.
func (s *SessionScreen) newSummaryScreenAdapter() screen.Screen {
	hr, tech := s.opts.Machine.Entries()
	rep := dashboard.NewReport(s.snap.CandidateID, s.snap.Domain, hr, tech)
	return summary.New(summary.Options{
		Report:    rep,
		Advisor:   s.opts.Advisor,
		Location:  s.opts.Location,
		Chat:      s.opts.Chat,
		OnRestart: func() tea.Msg { return restartMsg{} },
	})
}
