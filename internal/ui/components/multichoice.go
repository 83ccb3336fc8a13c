package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ioequiz/internal/grader"
	"github.com/abhisek/ioequiz/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. Options are picked with the
// arrows and Enter, or directly by number.
type MultiChoice struct {
	Options  []string
	Selected int

	// Set by Reveal once the answer has been graded.
	revealed bool
	chosen   string
	correct  string
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update handles navigation. It returns the chosen option text and true
// when the learner commits to an option.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, string, bool) {
	if m.revealed {
		return m, "", false
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, "", false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Options) > 0 {
			return m, m.Options[m.Selected], true
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				return m, m.Options[i], true
			}
		}
	}

	return m, "", false
}

// Reveal switches the component to its graded view: the correct option in
// green, a wrong pick in red, others dim.
func (m *MultiChoice) Reveal(chosen, correct string) {
	m.revealed = true
	m.chosen = chosen
	m.correct = correct
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.revealed && grader.Equal(opt, m.correct):
			style = theme.Correct
		case m.revealed && opt == m.chosen:
			style = theme.Incorrect
		case m.revealed:
			style = theme.Dim
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
