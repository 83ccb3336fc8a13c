package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ioequiz/internal/question"
	"github.com/abhisek/ioequiz/internal/ui/components"
	"github.com/abhisek/ioequiz/internal/ui/layout"
	"github.com/abhisek/ioequiz/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.ShowingQuitConfirm:
		return renderQuitConfirm(width, s.session.Answered())
	case s.ShowingGrid:
		return s.renderGrid(width)
	case s.question.Type() == "":
		return renderEmpty(width)
	}
	return s.renderQuestionView(width)
}

// renderQuestionView renders the info line, the question and its answer
// widget, followed by the feedback once graded.
func (s *SessionScreen) renderQuestionView(width int) string {
	q := s.question
	var b strings.Builder

	badge := lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(theme.Secondary).
		Bold(true).
		Padding(0, 1).
		Render(q.Type().DisplayName())
	if q.HasAudio() {
		badge += " " + lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render("♪ audio")
	}

	infoLeft := "  " + badge
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d",
			s.session.Cursor()+1,
			s.session.Len(),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.session.CorrectCount(),
		))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", s.session.Answered(), s.session.Len(), max(width-4, 10))
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(layout.Centered(questionStyle.Render(q.Text), width))
	b.WriteString("\n\n")

	b.WriteString(s.renderAnswerWidget(width))
	b.WriteString("\n\n")

	if text, ok := s.hintText(); ok {
		b.WriteString(layout.Centered(theme.Hint.Render(text), width))
		b.WriteString("\n\n")
	}

	if s.notice != "" {
		b.WriteString(layout.Centered(
			lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice), width))
		b.WriteString("\n\n")
	}

	if s.ShowingFeedback {
		b.WriteString(s.renderFeedback(width))
	}

	return b.String()
}

// renderAnswerWidget renders the input that matches the question type.
func (s *SessionScreen) renderAnswerWidget(width int) string {
	switch s.question.Type() {
	case question.TypeMultipleChoice:
		block := s.mc.View()
		if !s.ShowingFeedback {
			block += "\n" + theme.Dim.Render(fmt.Sprintf("Select (1-%d) or use arrows + Enter", len(s.mc.Options)))
		}
		return layout.Centered(block, width)
	case question.TypeRearrange:
		return layout.Centered(s.chips.View(), width)
	default:
		return layout.Centered("Answer: "+s.input.View(), width)
	}
}

// renderFeedback renders the verdict, the canonical answer and the
// explanation.
func (s *SessionScreen) renderFeedback(width int) string {
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	switch {
	case s.last.Correct:
		b.WriteString(center(theme.Correct, "Correct!"))
	case s.last.Skipped():
		b.WriteString(center(theme.Incorrect, "Skipped"))
	default:
		b.WriteString(center(theme.Incorrect, "Not quite"))
	}
	b.WriteString("\n")

	if !s.last.Correct {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("Correct answer: %s", s.question.CorrectAnswer)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.question.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(s.question.Explanation)
		b.WriteString(layout.Centered(exp, width))
		b.WriteString("\n\n")
	}

	next := "Press any key for the next question..."
	if s.session.IsComplete() {
		next = "Press any key to see your results..."
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), next))

	return b.String()
}

// renderGrid renders the question overview.
func (s *SessionScreen) renderGrid(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Questions"))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(s.grid.View(), width))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, answered int) string {
	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "Leave the quiz?"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Your %d answer(s) this pass will be lost.", answered)))
	b.WriteString("\n\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}

// renderEmpty renders a pass with no questions.
func renderEmpty(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Nothing to answer in this pass.\n\n  Press any key to see your results.")
}
