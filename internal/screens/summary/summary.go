package summary

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/ioequiz/internal/quiz"
	"github.com/abhisek/ioequiz/internal/router"
	"github.com/abhisek/ioequiz/internal/screen"
	"github.com/abhisek/ioequiz/internal/ui/components"
	"github.com/abhisek/ioequiz/internal/ui/layout"
	"github.com/abhisek/ioequiz/internal/ui/theme"
)

// SummaryScreen displays the score report of a finished pass and offers
// the retry modes.
type SummaryScreen struct {
	env     *screen.Env
	session *quiz.Session
	summary quiz.Summary
	next    func(*quiz.Session) screen.Screen
	buttons []components.Button
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. next builds the screen that plays the
// retry pass.
func New(env *screen.Env, s *quiz.Session, sum quiz.Summary, next func(*quiz.Session) screen.Screen) *SummaryScreen {
	r := &SummaryScreen{env: env, session: s, summary: sum, next: next}
	r.buttons = []components.Button{
		components.NewButton("Retry all", "a", true, func() tea.Cmd { return r.retry(quiz.RetryAll) }),
		components.NewButton("Retry wrong", "w", sum.Incorrect > 0, func() tea.Cmd { return r.retry(quiz.RetryWrong) }),
	}
	return r
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "A", Description: "Retry all"}}
	if s.summary.Incorrect > 0 {
		hints = append(hints, layout.KeyHint{Key: "W", Description: "Retry wrong"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

// Score reports the pass score for the header.
func (s *SummaryScreen) Score() int {
	return s.summary.Score
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if kmsg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, components.ButtonRow(s.buttons, msg)
}

func (s *SummaryScreen) retry(mode quiz.RetryMode) tea.Cmd {
	ns, err := s.session.Reset(mode)
	if err != nil && !errors.Is(err, quiz.ErrEmptyRetrySet) {
		s.log().WithError(err).Error("reset failed")
		return nil
	}
	s.log().WithFields(logrus.Fields{
		"mode":    mode.String(),
		"pass_id": ns.ID(),
		"pass":    ns.Pass(),
	}).Info("pass started")
	next := s.next(ns)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SummaryScreen) log() *logrus.Logger {
	if s.env != nil && s.env.Log != nil {
		return s.env.Log
	}
	return logrus.StandardLogger()
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	title := "Quiz complete!"
	if sum.Player != "" {
		title = fmt.Sprintf("Well done, %s!", sum.Player)
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), title))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(renderScoreRing(sum), width))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Correct: %d / %d        Score: %d        Rank: %s",
		sum.Correct, sum.Total, sum.Score, sum.Rank)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	if sum.Perfect() {
		b.WriteString(center(theme.Correct, "Perfect score! No mistakes to review."))
		b.WriteString("\n\n")
	} else if len(sum.Missed) > 0 {
		b.WriteString(layout.Centered(
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review"), width))
		b.WriteString("\n")
		b.WriteString(layout.Centered(divider, width))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(
			renderMissed(sum.Missed, min(width-8, 70), maxMissed(height)), width))
		b.WriteString("\n\n")
	}

	var buttons []string
	for i, btn := range s.buttons {
		if i > 0 {
			buttons = append(buttons, "   ")
		}
		buttons = append(buttons, btn.View())
	}
	b.WriteString(layout.Centered(
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...), width))

	return b.String()
}

// maxMissed is how many review entries fit in height rows.
func maxMissed(height int) int {
	n := (height - 16) / 4
	if n < 1 {
		n = 1
	}
	return n
}

// renderScoreRing renders the percentage in a box coloured by result band.
func renderScoreRing(sum quiz.Summary) string {
	c := bandColor(sum.Band)
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(c).
		Foreground(c).
		Bold(true).
		Padding(1, 4).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("%d%%\n%s", sum.Percent, sum.Rank))
}

// renderMissed lists up to limit missed questions with the learner's
// response and the canonical answer.
func renderMissed(missed []quiz.MissedItem, width, limit int) string {
	textStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width)
	wrongStyle := lipgloss.NewStyle().Foreground(theme.Error)
	rightStyle := lipgloss.NewStyle().Foreground(theme.Success)
	expStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(width)

	var entries []string
	for i, m := range missed {
		if i == limit {
			entries = append(entries, theme.Dim.Render(fmt.Sprintf("+ %d more", len(missed)-limit)))
			break
		}
		lines := []string{
			textStyle.Render(fmt.Sprintf("Q%d. %s", m.Question.ID, m.Question.Text)),
			wrongStyle.Render("You said: " + m.DisplayResponse()),
			rightStyle.Render("Answer:   " + m.Question.CorrectAnswer),
		}
		if m.Question.Explanation != "" {
			lines = append(lines, expStyle.Render(m.Question.Explanation))
		}
		entries = append(entries, strings.Join(lines, "\n"))
	}
	return strings.Join(entries, "\n\n")
}

// bandColor returns the theme color for a result band.
func bandColor(b quiz.Band) color.Color {
	switch b {
	case quiz.BandHigh:
		return theme.Success
	case quiz.BandMid:
		return theme.Accent
	default:
		return theme.Error
	}
}
