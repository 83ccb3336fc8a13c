package session

import (
	"context"
	"errors"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/ioequiz/internal/hint"
	"github.com/abhisek/ioequiz/internal/question"
	"github.com/abhisek/ioequiz/internal/quiz"
	"github.com/abhisek/ioequiz/internal/router"
	"github.com/abhisek/ioequiz/internal/screen"
	"github.com/abhisek/ioequiz/internal/screens/summary"
	"github.com/abhisek/ioequiz/internal/ui/components"
	"github.com/abhisek/ioequiz/internal/ui/layout"
)

// minFillInChars is the smallest cap on typed fill-in answers.
const minFillInChars = 64

// fillInCharLimit leaves room for the canonical answer of q plus slack for
// extra spacing or punctuation.
func fillInCharLimit(q question.Question) int {
	return max(minFillInChars, 2*utf8.RuneCountInString(q.CorrectAnswer))
}

// SessionScreen implements screen.Screen for one pass of the quiz.
type SessionScreen struct {
	env     *screen.Env
	session *quiz.Session
	hints   *hint.Cache

	question question.Question
	mc       components.MultiChoice
	chips    components.Chips
	input    components.TextInput
	grid     components.Grid

	ShowingFeedback    bool
	ShowingQuitConfirm bool
	ShowingGrid        bool

	last   quiz.Answer
	notice string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.ScoreProvider = (*SessionScreen)(nil)
var _ screen.BackHandler = (*SessionScreen)(nil)

// New creates a SessionScreen playing s.
func New(env *screen.Env, s *quiz.Session) *SessionScreen {
	scr := &SessionScreen{
		env:     env,
		session: s,
		hints:   hint.NewCache(env.RNG),
	}
	scr.log().WithFields(logrus.Fields{
		"pass_id": s.ID(),
		"pass":    s.Pass(),
		"count":   s.Len(),
	}).Debug("session screen opened")
	scr.load()
	return scr
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.question.Type() == question.TypeFillInBlank {
		return s.input.Init()
	}
	return nil
}

func (s *SessionScreen) Title() string {
	if s.session.Pass() > 1 {
		return "Quiz · Retry"
	}
	return "Quiz"
}

// Session returns the pass being played.
func (s *SessionScreen) Session() *quiz.Session {
	return s.session
}

// Score reports the running score for the header.
func (s *SessionScreen) Score() int {
	return s.session.Score()
}

// HandlesBack reports that Esc opens the quit confirmation instead of
// popping the screen.
func (s *SessionScreen) HandlesBack() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.ShowingQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	case s.ShowingGrid:
		return []layout.KeyHint{
			{Key: "←↑↓→", Description: "Move"},
			{Key: "Enter", Description: "Jump"},
			{Key: "Esc", Description: "Close"},
		}
	case s.ShowingFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}

	hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
	switch s.question.Type() {
	case question.TypeMultipleChoice:
		hints = append(hints, layout.KeyHint{Key: "1-9", Description: "Pick"})
	case question.TypeRearrange:
		hints = append(hints,
			layout.KeyHint{Key: "1-9", Description: "Add word"},
			layout.KeyHint{Key: "⌫", Description: "Undo"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "Tab", Description: "Hint"},
		layout.KeyHint{Key: "Ctrl+S", Description: "Skip"},
		layout.KeyHint{Key: "Ctrl+G", Description: "Grid"})
	if s.question.HasAudio() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+P", Description: "Listen"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case audioDoneMsg:
		if msg.Err != nil && msg.QuestionID == s.question.ID {
			s.notice = "Audio unavailable: " + msg.Err.Error()
		}
		return s, nil

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case sessionEndMsg:
		s.log().WithFields(logrus.Fields{
			"pass_id":  s.session.ID(),
			"answered": s.session.Answered(),
		}).Info("quiz left early")
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	// Forward to input if active.
	if s.typing() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

// typing reports whether the fill-in text input owns the keyboard.
func (s *SessionScreen) typing() bool {
	return s.question.Type() == question.TypeFillInBlank &&
		!s.ShowingFeedback && !s.ShowingQuitConfirm && !s.ShowingGrid
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Quit confirmation dialog.
	if s.ShowingQuitConfirm {
		switch key {
		case "y", "Y":
			s.ShowingQuitConfirm = false
			return s, func() tea.Msg { return sessionEndMsg{} }
		case "n", "N", "esc":
			s.ShowingQuitConfirm = false
		}
		return s, nil
	}

	if key == "esc" && !s.ShowingGrid {
		s.ShowingQuitConfirm = true
		return s, nil
	}

	if s.ShowingGrid {
		return s.handleGridKey(msg)
	}

	// Feedback view, or an empty pass: any key moves on.
	if s.ShowingFeedback || s.question.Type() == "" {
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	switch key {
	case "tab":
		s.showHint()
		return s, nil
	case "ctrl+g":
		s.grid = components.NewGrid(s.session)
		s.ShowingGrid = true
		return s, nil
	case "ctrl+s":
		ans, err := s.session.Skip()
		return s.graded(ans, err)
	case "ctrl+p":
		return s, s.playAudio()
	}

	switch s.question.Type() {
	case question.TypeMultipleChoice:
		var choice string
		var ok bool
		s.mc, choice, ok = s.mc.Update(msg)
		if ok {
			return s.submit(choice)
		}
	case question.TypeRearrange:
		var answer string
		var ok bool
		s.chips, answer, ok = s.chips.Update(msg)
		if ok {
			return s.submit(answer)
		}
	case question.TypeFillInBlank:
		if key == "enter" {
			if s.input.Blank() {
				return s, nil
			}
			return s.submit(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *SessionScreen) handleGridKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		s.ShowingGrid = false
		return s, nil
	}

	var idx int
	var ok bool
	s.grid, idx, ok = s.grid.Update(msg)
	if !ok {
		return s, nil
	}

	s.ShowingGrid = false
	if err := s.session.JumpTo(idx); err != nil {
		s.notice = err.Error()
		return s, nil
	}
	s.log().WithFields(logrus.Fields{
		"pass_id": s.session.ID(),
		"cursor":  idx,
	}).Debug("jump")
	s.load()
	return s, s.Init()
}

// submit grades response against the current question.
func (s *SessionScreen) submit(response string) (screen.Screen, tea.Cmd) {
	ans, err := s.session.SubmitAnswer(response)
	return s.graded(ans, err)
}

func (s *SessionScreen) graded(ans quiz.Answer, err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		if errors.Is(err, quiz.ErrAlreadyAnswered) {
			s.notice = "Already answered."
		} else {
			s.notice = err.Error()
		}
		return s, nil
	}

	s.log().WithFields(logrus.Fields{
		"pass_id":     s.session.ID(),
		"question_id": ans.QuestionID,
		"correct":     ans.Correct,
		"skipped":     ans.Skipped(),
	}).Info("answer graded")

	s.last = ans
	s.notice = ""
	s.ShowingFeedback = true
	s.reveal(ans)
	return s, nil
}

// reveal puts the answer widgets into their graded state.
func (s *SessionScreen) reveal(ans quiz.Answer) {
	switch s.question.Type() {
	case question.TypeMultipleChoice:
		s.mc.Reveal(ans.Response, s.question.CorrectAnswer)
	case question.TypeRearrange:
		s.chips.Lock()
	case question.TypeFillInBlank:
		s.input.Submit(ans.Correct)
	}
}

func (s *SessionScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	s.ShowingFeedback = false

	if s.session.IsComplete() {
		sum := quiz.BuildSummary(s.session, s.env.PlayerName())
		s.env.RecordPass(s.session, sum)
		env := s.env
		result := summary.New(env, s.session, sum, func(next *quiz.Session) screen.Screen {
			return New(env, next)
		})
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: result} }
	}

	if idx, ok := s.session.NextUnanswered(); ok {
		// JumpTo only fails for an out-of-range index.
		_ = s.session.JumpTo(idx)
	}
	s.load()
	return s, s.Init()
}

// showHint reveals the hint for the current question.
func (s *SessionScreen) showHint() {
	if _, err := s.hints.For(s.question); err != nil {
		s.log().WithError(err).WithField("question_id", s.question.ID).Warn("hint unavailable")
		s.notice = "No hint for this question."
		return
	}
	s.log().WithField("question_id", s.question.ID).Debug("hint shown")
}

// hintText returns the hint shown for the current question, if any.
func (s *SessionScreen) hintText() (string, bool) {
	return s.hints.Cached(s.question.ID)
}

// playAudio starts the current question's clip without waiting for it.
func (s *SessionScreen) playAudio() tea.Cmd {
	q := s.question
	if !q.HasAudio() || s.env.Audio == nil {
		return nil
	}
	player := s.env.Audio
	log := s.log()
	return func() tea.Msg {
		err := player.Play(context.Background(), q.AudioURL)
		if err != nil {
			log.WithError(err).WithField("question_id", q.ID).Warn("audio playback failed")
		}
		return audioDoneMsg{QuestionID: q.ID, Err: err}
	}
}

// load resets the answer widgets for the question under the cursor. A
// question that was already answered opens straight into its feedback.
func (s *SessionScreen) load() {
	q, ok := s.session.Current()
	s.question = q
	s.notice = ""
	s.ShowingFeedback = false
	if !ok {
		return
	}

	s.mc = components.NewMultiChoice(q.Options())
	s.chips = components.NewChips(q.Parts())
	s.input = components.NewTextInput("Type your answer...", fillInCharLimit(q))

	if ans, done := s.session.AnswerFor(q.ID); done {
		s.last = ans
		s.ShowingFeedback = true
		s.reveal(ans)
	}
}

func (s *SessionScreen) log() *logrus.Logger {
	if s.env != nil && s.env.Log != nil {
		return s.env.Log
	}
	return logrus.StandardLogger()
}
