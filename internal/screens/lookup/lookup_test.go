package lookup

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/afero"

	"github.com/abhisek/mockinterview/internal/results"
	"github.com/abhisek/mockinterview/internal/router"
)

func newPair(t *testing.T) *results.Pair {
	t.Helper()
	p := results.OpenPair(afero.NewMemMapFs(), "/data")
	hr := []results.Entry{{CandidateID: "cand-abc123", Domain: "QA Engineer", Question: "Q", Answer: "A", Score: 7}}
	if err := p.Save(context.Background(), "cand-abc123", hr, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	return p
}

func typeText(s *LookupScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestLookupScreen_LoadsCandidates(t *testing.T) {
	s := New(Options{Store: newPair(t)})
	s.Update(candidatesMsg{IDs: []string{"cand-abc123"}})
	if !strings.Contains(s.View(100, 20), "1 saved candidates") {
		t.Error("expected the candidate count")
	}
}

func TestLookupScreen_OpensDashboard(t *testing.T) {
	s := New(Options{Store: newPair(t)})
	typeText(s, "cand-abc123")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	_, next := s.Update(cmd())
	if next == nil {
		t.Fatal("expected the dashboard to be pushed")
	}
	push, ok := next().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", next())
	}
	if push.Screen.Title() != "Dashboard" {
		t.Errorf("pushed %q", push.Screen.Title())
	}
}

func TestLookupScreen_Errors(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"missing", "", "Candidate ID is missing."},
		{"unknown", "cand-ffffff", "No interview data found."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Options{Store: newPair(t)})
			typeText(s, tt.id)
			_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			s.Update(cmd())
			if s.errMsg != tt.want {
				t.Errorf("errMsg = %q, want %q", s.errMsg, tt.want)
			}
			if !strings.Contains(s.View(100, 20), tt.want) {
				t.Error("view should show the error")
			}
		})
	}
}
