package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ioequiz/internal/quiz"
	"github.com/abhisek/ioequiz/internal/ui/theme"
)

// gridColumns is the number of cells per row.
const gridColumns = 10

// Grid is the question overview: one cell per active question coloured by
// status, plus a "N / M DONE" counter. Selecting a cell requests a jump.
type Grid struct {
	Statuses []quiz.Status
	Focus    int
}

// NewGrid builds a grid from the session, focused on the current question.
func NewGrid(s *quiz.Session) Grid {
	active := s.Active()
	statuses := make([]quiz.Status, len(active))
	for i, q := range active {
		statuses[i] = s.StatusOf(q.ID)
	}
	return Grid{Statuses: statuses, Focus: s.Cursor()}
}

// Done counts answered cells.
func (g Grid) Done() int {
	n := 0
	for _, st := range g.Statuses {
		if st == quiz.StatusCorrect || st == quiz.StatusIncorrect {
			n++
		}
	}
	return n
}

// Counter returns the "N / M DONE" label.
func (g Grid) Counter() string {
	return fmt.Sprintf("%d / %d DONE", g.Done(), len(g.Statuses))
}

// Update moves the focus. It returns the selected index and true on Enter.
func (g Grid) Update(msg tea.Msg) (Grid, int, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(g.Statuses) == 0 {
		return g, 0, false
	}

	last := len(g.Statuses) - 1
	switch kmsg.String() {
	case "left", "h":
		if g.Focus > 0 {
			g.Focus--
		}
	case "right", "l":
		if g.Focus < last {
			g.Focus++
		}
	case "up", "k":
		if g.Focus-gridColumns >= 0 {
			g.Focus -= gridColumns
		}
	case "down", "j":
		if g.Focus+gridColumns <= last {
			g.Focus += gridColumns
		}
	case "enter":
		return g, g.Focus, true
	}
	return g, 0, false
}

// View renders the cells in rows with the counter underneath.
func (g Grid) View() string {
	var rows []string
	for start := 0; start < len(g.Statuses); start += gridColumns {
		end := min(start+gridColumns, len(g.Statuses))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, g.cell(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	rows = append(rows, theme.Subtitle.Render(g.Counter()))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (g Grid) cell(i int) string {
	label := strconv.Itoa(i + 1)
	if i == g.Focus {
		label = "▸" + label
	}

	var style lipgloss.Style
	switch g.Statuses[i] {
	case quiz.StatusCurrent:
		style = theme.CellCurrent
	case quiz.StatusCorrect:
		style = theme.CellCorrect
	case quiz.StatusIncorrect:
		style = theme.CellIncorrect
	default:
		style = theme.CellTodo
	}
	return style.Render(label)
}
