package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/config"
	"github.com/abhisek/mockinterview/internal/router"
	"github.com/abhisek/mockinterview/internal/screen"
	"github.com/abhisek/mockinterview/internal/ui/layout"
	"github.com/abhisek/mockinterview/internal/voice"
)

type stubScreen struct {
	title string
	esc   bool
	keys  []string
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) HandlesEsc() bool     { return s.esc }
func (s *stubScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "x", Description: "Stub"}}
}

func modelWith(screens ...screen.Screen) AppModel {
	r := router.New(screens[0])
	for _, s := range screens[1:] {
		r.Push(s)
	}
	return AppModel{router: r, width: 100, height: 30}
}

func escKey() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEscape} }

func TestEscPopsScreen(t *testing.T) {
	m := modelWith(&stubScreen{title: "root"}, &stubScreen{title: "top"})
	_, cmd := m.Update(escKey())
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestEscHandledByScreen(t *testing.T) {
	top := &stubScreen{title: "top", esc: true}
	m := modelWith(&stubScreen{title: "root"}, top)
	m.Update(escKey())
	if len(top.keys) != 1 || top.keys[0] != "esc" {
		t.Errorf("expected esc forwarded to screen, got %v", top.keys)
	}
}

type leavingScreen struct {
	stubScreen
	left bool
}

func (s *leavingScreen) Leave() tea.Cmd {
	s.left = true
	return nil
}

func TestCtrlCUnwindsScreens(t *testing.T) {
	top := &leavingScreen{stubScreen: stubScreen{title: "Interview"}}
	m := modelWith(&stubScreen{title: "root"}, top)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if !top.left {
		t.Error("ctrl+c should let the interview screen clean up")
	}
	if m.router.Depth() != 0 {
		t.Errorf("depth = %d, want 0", m.router.Depth())
	}
}

func TestFooterHintsFromScreen(t *testing.T) {
	top := &stubScreen{title: "top"}
	m := modelWith(top)
	hints := m.footerHints(top)
	if len(hints) != 2 || hints[0].Description != "Stub" || hints[1].Key != "Ctrl+C" {
		t.Errorf("hints = %+v", hints)
	}
}

func TestView_TooSmall(t *testing.T) {
	m := modelWith(&stubScreen{title: "root"})
	m.width, m.height = 10, 5
	if v := m.View(); v.Content == nil {
		t.Error("expected a size message")
	}
}

func testServices() *Services {
	cfg := config.Default()
	cfg.Storage.DataDir = "/data"
	return NewServices(context.Background(), &cfg, afero.NewMemMapFs(), nil, zap.NewNop())
}

func TestNewServices_NoProvider(t *testing.T) {
	s := testServices()
	if s.LLMReady() {
		t.Fatal("expected no provider without a key")
	}
	if s.ProviderErr == nil {
		t.Error("expected ProviderErr")
	}
	if _, err := s.NewMachine(); err == nil {
		t.Error("expected NewMachine to fail")
	}
	if s.ProviderLabel() != "" {
		t.Errorf("label = %q", s.ProviderLabel())
	}
}

func TestNewHome_WithoutProvider(t *testing.T) {
	h := newHome(testServices())
	if !strings.Contains(h.View(120, 40), "Set an LLM API key") {
		t.Error("expected the missing key banner")
	}
}

type fakeCapture struct {
	rec *voice.Recording
}

func (f *fakeCapture) Start(context.Context) bool     { return true }
func (f *fakeCapture) Stop() (*voice.Recording, bool) { return f.rec, true }
func (f *fakeCapture) IsRecording() bool              { return false }

func TestUnavailableTranscriber(t *testing.T) {
	_, err := unavailableTranscriber{err: errors.New("no key")}.Transcribe(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "no key") {
		t.Errorf("err = %v", err)
	}
}

func TestSavingCapture_SkipsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := &savingCapture{
		Capture: &fakeCapture{},
		fs:      fs,
		dir:     "rec",
		log:     zap.NewNop(),
	}
	if _, ok := c.Stop(); !ok {
		t.Fatal("expected ok")
	}
	if ok, _ := afero.DirExists(fs, "rec"); ok {
		t.Error("nothing should be written for an empty recording")
	}
}

func TestPreflight_ReportsMissingProvider(t *testing.T) {
	checks := testServices().Preflight()
	if len(checks) != 3 {
		t.Fatalf("got %d checks", len(checks))
	}
	names := []string{checks[0].Name, checks[1].Name, checks[2].Name}
	if strings.Join(names, ",") != "LLM,Microphone,Speech" {
		t.Errorf("names = %v", names)
	}
	if checks[0].OK || checks[0].Detail == "" {
		t.Errorf("LLM check = %+v, want a failure with a reason", checks[0])
	}
}
