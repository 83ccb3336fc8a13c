package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ioequiz/internal/router"
	"github.com/abhisek/ioequiz/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcome(name string) (*WelcomeScreen, *screen.Env, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	env := &screen.Env{Player: &screen.Player{Name: name}}
	return New(env, factory), env, &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func typeText(w *WelcomeScreen, s string) {
	for _, r := range s {
		w.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _, _ := newTestWelcome("Lan")

	if strings.Contains(w.View(80, 24), tagline) {
		t.Error("banner should not be visible at start")
	}

	sendTicks(w, 5)
	if w.elapsed != phase1End {
		t.Errorf("expected elapsed %v, got %v", phase1End, w.elapsed)
	}

	sendTicks(w, 10)
	if w.elapsed != phase2End {
		t.Errorf("expected elapsed %v, got %v", phase2End, w.elapsed)
	}
	if !strings.Contains(w.View(80, 24), tagline) {
		t.Error("banner should be visible after phase 2")
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, _, callCount := newTestWelcome("Lan")

	sendTicks(w, 45)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestKeypressWithKnownNameEmitsReplace(t *testing.T) {
	w, _, callCount := newTestWelcome("Lan")
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, _, callCount := newTestWelcome("Lan")

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestUnknownNamePromptsForName(t *testing.T) {
	w, env, callCount := newTestWelcome("")

	w.Update(tea.KeyPressMsg{Code: ' '})
	if !w.naming {
		t.Fatal("expected name prompt")
	}
	if !strings.Contains(w.View(80, 40), "What's your name?") {
		t.Error("name prompt should be rendered")
	}

	// Blank names are not accepted.
	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil || *callCount != 0 {
		t.Fatal("blank name should not transition")
	}

	typeText(w, "Minh")
	_, cmd = w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter with a name should transition")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if env.PlayerName() != "Minh" {
		t.Errorf("expected player name Minh, got %q", env.PlayerName())
	}
}

func TestNamePromptCreatesPlayer(t *testing.T) {
	env := &screen.Env{}
	w := New(env, func() screen.Screen { return &stubScreen{} })

	w.Update(tea.KeyPressMsg{Code: ' '})
	typeText(w, "An")
	w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if env.PlayerName() != "An" {
		t.Errorf("expected player name An, got %q", env.PlayerName())
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _, _ := newTestWelcome("Lan")
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
