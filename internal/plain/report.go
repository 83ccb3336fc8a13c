package plain

import (
	"fmt"
	"strings"

	"github.com/abhisek/ioequiz/internal/quiz"
)

// Grid renders the question grid on one line, e.g.
// "[1 ✓] [2 ✗] [>3] [4  ]  2 / 4 DONE".
func Grid(s *quiz.Session) string {
	var b strings.Builder
	for i, q := range s.Active() {
		switch s.StatusOf(q.ID) {
		case quiz.StatusCurrent:
			fmt.Fprintf(&b, "[>%d] ", i+1)
		case quiz.StatusCorrect:
			fmt.Fprintf(&b, "[%d ✓] ", i+1)
		case quiz.StatusIncorrect:
			fmt.Fprintf(&b, "[%d ✗] ", i+1)
		default:
			fmt.Fprintf(&b, "[%d  ] ", i+1)
		}
	}
	fmt.Fprintf(&b, " %d / %d DONE", s.Answered(), s.Len())
	return b.String()
}

// Report renders the end-of-pass summary.
func Report(sum quiz.Summary) string {
	var b strings.Builder

	b.WriteString("== Results ==\n")
	if sum.Player != "" {
		fmt.Fprintf(&b, "Player:  %s\n", sum.Player)
	}
	fmt.Fprintf(&b, "Score:   %d\n", sum.Score)
	fmt.Fprintf(&b, "Correct: %d / %d (%d%%)\n", sum.Correct, sum.Total, sum.Percent)
	fmt.Fprintf(&b, "Rank:    %s\n", sum.Rank)

	if len(sum.Missed) > 0 {
		b.WriteString("\nReview:\n")
		for _, m := range sum.Missed {
			fmt.Fprintf(&b, "- %s\n", m.Question.Text)
			fmt.Fprintf(&b, "  You said: %s\n", m.DisplayResponse())
			fmt.Fprintf(&b, "  Answer:   %s\n", m.Question.CorrectAnswer)
			if m.Question.Explanation != "" {
				fmt.Fprintf(&b, "  %s\n", m.Question.Explanation)
			}
		}
	} else if sum.Perfect() {
		b.WriteString("\nPerfect score!\n")
	}
	b.WriteString("\n")
	return b.String()
}
