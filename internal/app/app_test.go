package app

import (
	"math/rand/v2"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ioequiz/internal/audio"
	"github.com/abhisek/ioequiz/internal/logging"
	"github.com/abhisek/ioequiz/internal/question"
	"github.com/abhisek/ioequiz/internal/router"
	"github.com/abhisek/ioequiz/internal/screen"
	"github.com/abhisek/ioequiz/internal/screens/home"
	sessionscreen "github.com/abhisek/ioequiz/internal/screens/session"
)

func testModel(t *testing.T) AppModel {
	t.Helper()
	bank, err := question.LoadSample()
	require.NoError(t, err)
	env := &screen.Env{
		Bank:   bank,
		RNG:    rand.New(rand.NewPCG(7, 7)),
		Log:    logging.Discard(),
		Audio:  audio.Nop{},
		Player: &screen.Player{Name: "Lan"},
	}
	m := newAppModel(Options{Env: env})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

// apply feeds msg to the model and routes navigation commands back in.
func apply(m AppModel, msg tea.Msg) AppModel {
	updated, cmd := m.Update(msg)
	m = updated.(AppModel)
	if cmd == nil {
		return m
	}
	switch out := cmd().(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
		updated, _ = m.Update(out)
		m = updated.(AppModel)
	}
	return m
}

func TestStartsAtWelcome(t *testing.T) {
	m := testModel(t)
	assert.Equal(t, 1, m.router.Depth())
	assert.Equal(t, "", m.router.Active().Title())
}

func TestWelcomeToHomeToQuiz(t *testing.T) {
	m := testModel(t)

	m = apply(m, tea.KeyPressMsg{Code: ' '})
	_, isHome := m.router.Active().(*home.HomeScreen)
	require.True(t, isHome)
	assert.Equal(t, 1, m.router.Depth(), "welcome is replaced, not pushed")

	m = apply(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	_, isQuiz := m.router.Active().(*sessionscreen.SessionScreen)
	require.True(t, isQuiz)
	assert.Equal(t, 2, m.router.Depth())

	frame := m.render()
	assert.Contains(t, frame, "Lan")
	assert.Contains(t, frame, "★ 0")
}

func TestEscOnQuizOpensConfirmInsteadOfPopping(t *testing.T) {
	m := testModel(t)
	m = apply(m, tea.KeyPressMsg{Code: ' '})
	m = apply(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	m = apply(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 2, m.router.Depth())
	quiz := m.router.Active().(*sessionscreen.SessionScreen)
	assert.True(t, quiz.ShowingQuitConfirm)
}

func TestCtrlCQuits(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestTooSmall(t *testing.T) {
	m := testModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, updated.(AppModel).render(), "Terminal too small")
}
