package session

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ioequiz/internal/logging"
	"github.com/abhisek/ioequiz/internal/question"
	"github.com/abhisek/ioequiz/internal/quiz"
	"github.com/abhisek/ioequiz/internal/router"
	"github.com/abhisek/ioequiz/internal/screen"
	"github.com/abhisek/ioequiz/internal/screens/summary"
)

// recordingPlayer implements audio.Player and remembers what it played.
type recordingPlayer struct {
	played []string
}

func (p *recordingPlayer) Play(_ context.Context, url string) error {
	p.played = append(p.played, url)
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testQuestions(t *testing.T) []question.Question {
	t.Helper()
	mc, err := question.NewMultipleChoice(question.Base{
		ID: 1, Text: "Which animal says meow?", CorrectAnswer: "cat",
		Explanation: "Cats meow.", AudioURL: "https://example.com/meow.mp3",
	}, []string{"cat", "dog", "bird"})
	require.NoError(t, err)
	fill, err := question.NewFillInBlank(question.Base{
		ID: 2, Text: "I ___ to school every day.", CorrectAnswer: "go",
	})
	require.NoError(t, err)
	re, err := question.NewRearrange(question.Base{
		ID: 3, Text: "Put the words in order.", CorrectAnswer: "I go to school",
	}, []string{"school", "to", "go", "I"})
	require.NoError(t, err)
	return []question.Question{mc, fill, re}
}

func testEnv(t *testing.T) (*screen.Env, *[]quiz.Summary, *recordingPlayer) {
	t.Helper()
	var completed []quiz.Summary
	player := &recordingPlayer{}
	env := &screen.Env{
		Bank:   &question.Bank{Title: "Test", Questions: testQuestions(t)},
		RNG:    rand.New(rand.NewPCG(1, 1)),
		Log:    logging.Discard(),
		Audio:  player,
		Player: &screen.Player{Name: "Lan"},
		OnPassComplete: func(_ *quiz.Session, sum quiz.Summary) {
			completed = append(completed, sum)
		},
	}
	return env, &completed, player
}

func newTestScreen(t *testing.T) (*SessionScreen, *screen.Env, *[]quiz.Summary, *recordingPlayer) {
	t.Helper()
	env, completed, player := testEnv(t)
	return New(env, quiz.New(env.Bank.Questions)), env, completed, player
}

// send feeds msg to the screen and then runs any resulting screen-local
// command once, returning the last command produced.
func send(s *SessionScreen, msg tea.Msg) tea.Cmd {
	_, cmd := s.Update(msg)
	if cmd == nil {
		return nil
	}
	switch out := cmd().(type) {
	case feedbackDoneMsg, sessionEndMsg, audioDoneMsg:
		_, next := s.Update(out)
		return next
	}
	return cmd
}

func typeText(s *SessionScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func TestMultipleChoiceDigitSubmits(t *testing.T) {
	s, _, _, _ := newTestScreen(t)

	send(s, keyPress('1'))

	assert.True(t, s.ShowingFeedback)
	assert.True(t, s.last.Correct)
	assert.Equal(t, 10, s.Score())
	assert.Contains(t, s.View(100, 40), "Correct!")
	assert.Contains(t, s.View(100, 40), "Cats meow.")
}

func TestWrongAnswerShowsCorrectAnswer(t *testing.T) {
	s, _, _, _ := newTestScreen(t)

	send(s, keyPress('2'))

	assert.False(t, s.last.Correct)
	view := s.View(100, 40)
	assert.Contains(t, view, "Not quite")
	assert.Contains(t, view, "Correct answer: cat")
}

func TestFeedbackAnyKeyMovesToNextUnanswered(t *testing.T) {
	s, _, _, _ := newTestScreen(t)
	send(s, keyPress('1'))

	send(s, keyPress('x'))

	assert.False(t, s.ShowingFeedback)
	assert.Equal(t, 1, s.session.Cursor())
	assert.Equal(t, question.TypeFillInBlank, s.question.Type())
}

func TestFillInBlankIgnoresBlankSubmit(t *testing.T) {
	s, _, _, _ := newTestScreen(t)
	require.NoError(t, s.session.JumpTo(1))
	s.load()

	send(s, specialKey(tea.KeyEnter))
	assert.False(t, s.ShowingFeedback)

	typeText(s, " Go ")
	send(s, specialKey(tea.KeyEnter))
	assert.True(t, s.ShowingFeedback)
	assert.True(t, s.last.Correct, "grading ignores case and surrounding space")
}

func TestFillInBlankAcceptsLongAnswer(t *testing.T) {
	answer := strings.TrimSpace(strings.Repeat("very ", 20)) + " long"
	require.Greater(t, len(answer), minFillInChars)

	long, err := question.NewFillInBlank(question.Base{ID: 9, Text: "Say it all.", CorrectAnswer: answer})
	require.NoError(t, err)
	env, _, _ := testEnv(t)
	s := New(env, quiz.New([]question.Question{long}))

	typeText(s, answer)
	assert.Equal(t, answer, s.input.Value())

	send(s, specialKey(tea.KeyEnter))
	require.True(t, s.ShowingFeedback)
	assert.True(t, s.last.Correct)
}

func TestFillInCharLimit(t *testing.T) {
	short, err := question.NewFillInBlank(question.Base{ID: 1, Text: "q", CorrectAnswer: "go"})
	require.NoError(t, err)
	assert.Equal(t, minFillInChars, fillInCharLimit(short))

	long, err := question.NewFillInBlank(question.Base{ID: 2, Text: "q", CorrectAnswer: strings.Repeat("ab", 50)})
	require.NoError(t, err)
	assert.Equal(t, 200, fillInCharLimit(long))
}

func TestRearrangeChipsSubmit(t *testing.T) {
	s, _, _, _ := newTestScreen(t)
	require.NoError(t, s.session.JumpTo(2))
	s.load()

	for _, r := range "4321" {
		send(s, keyPress(r))
	}
	send(s, specialKey(tea.KeyEnter))

	require.True(t, s.ShowingFeedback)
	assert.True(t, s.last.Correct)
	assert.Equal(t, "I go to school", s.last.Response)
}

func TestSkipRecordsIncorrect(t *testing.T) {
	s, _, _, _ := newTestScreen(t)

	send(s, ctrlKey('s'))

	assert.True(t, s.last.Skipped())
	assert.False(t, s.last.Correct)
	assert.Contains(t, s.View(100, 40), "Skipped")
}

func TestHintShownOnTab(t *testing.T) {
	s, _, _, _ := newTestScreen(t)

	send(s, specialKey(tea.KeyTab))

	text, ok := s.hintText()
	require.True(t, ok)
	assert.Contains(t, text, "is incorrect")
	assert.NotContains(t, text, "\"cat\"")
	assert.Contains(t, s.View(100, 40), text)
}

func TestQuitConfirm(t *testing.T) {
	s, _, _, _ := newTestScreen(t)

	send(s, specialKey(tea.KeyEscape))
	assert.True(t, s.ShowingQuitConfirm)
	assert.Contains(t, s.View(100, 40), "Leave the quiz?")

	send(s, keyPress('n'))
	assert.False(t, s.ShowingQuitConfirm)

	send(s, specialKey(tea.KeyEscape))
	cmd := send(s, keyPress('y'))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok, "confirming pops the quiz screen")
}

func TestGridJump(t *testing.T) {
	s, _, _, _ := newTestScreen(t)

	send(s, ctrlKey('g'))
	require.True(t, s.ShowingGrid)
	assert.Contains(t, s.View(100, 40), "0 / 3 DONE")

	send(s, specialKey(tea.KeyRight))
	send(s, specialKey(tea.KeyRight))
	send(s, specialKey(tea.KeyEnter))

	assert.False(t, s.ShowingGrid)
	assert.Equal(t, 2, s.session.Cursor())
	assert.Equal(t, question.TypeRearrange, s.question.Type())
}

func TestJumpToAnsweredOpensFeedback(t *testing.T) {
	s, _, _, _ := newTestScreen(t)
	send(s, keyPress('2'))
	send(s, keyPress('x'))
	require.Equal(t, 1, s.session.Cursor())

	send(s, ctrlKey('g'))
	send(s, specialKey(tea.KeyLeft))
	send(s, specialKey(tea.KeyEnter))

	assert.Equal(t, 0, s.session.Cursor())
	assert.True(t, s.ShowingFeedback)
	assert.False(t, s.last.Correct)
}

func TestAudioPlaysClip(t *testing.T) {
	s, _, _, player := newTestScreen(t)

	send(s, ctrlKey('p'))

	assert.Equal(t, []string{"https://example.com/meow.mp3"}, player.played)
	assert.Empty(t, s.notice)
}

func TestCompletingPassShowsSummary(t *testing.T) {
	s, env, completed, _ := newTestScreen(t)

	send(s, keyPress('1'))
	send(s, keyPress('x'))
	typeText(s, "went")
	send(s, specialKey(tea.KeyEnter))
	send(s, keyPress('x'))
	for _, r := range "4321" {
		send(s, keyPress(r))
	}
	send(s, specialKey(tea.KeyEnter))
	require.True(t, s.session.IsComplete())

	cmd := send(s, keyPress('x'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	_, isSummary := msg.Screen.(*summary.SummaryScreen)
	assert.True(t, isSummary)

	require.Len(t, *completed, 1)
	sum := (*completed)[0]
	assert.Equal(t, 2, sum.Correct)
	assert.Equal(t, 1, sum.Incorrect)
	assert.Equal(t, "Lan", sum.Player)
	assert.Len(t, env.History, 1)
	assert.True(t, strings.Contains(msg.Screen.View(100, 40), "went"))
}

func TestEmptyPassGoesStraightToSummary(t *testing.T) {
	env, _, _ := testEnv(t)
	s := New(env, quiz.New(nil))

	assert.Contains(t, s.View(100, 40), "Nothing to answer")

	cmd := send(s, keyPress('x'))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.ReplaceScreenMsg)
	assert.True(t, ok)
}

func TestHandlesBack(t *testing.T) {
	s, _, _, _ := newTestScreen(t)
	assert.True(t, s.HandlesBack())
	assert.Equal(t, "Quiz", s.Title())
}
