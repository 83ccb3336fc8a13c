package home

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ioequiz/internal/question"
	"github.com/abhisek/ioequiz/internal/quiz"
	"github.com/abhisek/ioequiz/internal/router"
	"github.com/abhisek/ioequiz/internal/screen"
	sessionscreen "github.com/abhisek/ioequiz/internal/screens/session"
)

func testEnv(t *testing.T) *screen.Env {
	t.Helper()
	bank, err := question.LoadSample()
	require.NoError(t, err)
	return &screen.Env{Bank: bank, Player: &screen.Player{Name: "Lan"}}
}

func TestStartQuizPushesSession(t *testing.T) {
	h := New(testEnv(t))

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, isSession := msg.Screen.(*sessionscreen.SessionScreen)
	assert.True(t, isSession)
}

func TestExitQuits(t *testing.T) {
	h := New(testEnv(t))

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestEmptyBankDisablesStart(t *testing.T) {
	env := &screen.Env{Bank: &question.Bank{Title: "Empty"}}
	h := New(env)

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd, "selection starts on EXIT")
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestViewShowsBankStats(t *testing.T) {
	env := testEnv(t)
	view := New(env).View(120, 40)

	assert.Contains(t, view, "IOE GRADE 6 · 6 QUESTIONS")
	assert.Contains(t, view, "NOT PLAYED YET")
	assert.Contains(t, view, "START QUIZ")
}

func TestViewShowsBestAfterPasses(t *testing.T) {
	env := testEnv(t)
	env.History = []quiz.Summary{{Percent: 50, Rank: "C"}, {Percent: 83, Rank: "A"}}

	view := New(env).View(120, 40)
	assert.Contains(t, view, "BEST 83% · 2 PLAYED")
}

func TestMascotFor(t *testing.T) {
	assert.Equal(t, MascotIdle, MascotFor("", false))
	assert.Equal(t, MascotCelebrating, MascotFor("S+", true))
	assert.Equal(t, MascotAlert, MascotFor("C", true))
	assert.Equal(t, MascotIdle, MascotFor("B", true))
}
