package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ioequiz/internal/ui/theme"
)

// Chips assembles a sentence from word tokens. Each token can be picked
// once; picks are joined with single spaces in the order they were made.
type Chips struct {
	Parts []string
	Focus int

	picked []int
	locked bool
}

// NewChips creates a chip tray for the given tokens in presented order.
func NewChips(parts []string) Chips {
	return Chips{Parts: parts}
}

// Update handles chip picking. It returns the assembled answer and true
// when the learner submits a non-empty arrangement.
func (c Chips) Update(msg tea.Msg) (Chips, string, bool) {
	if c.locked {
		return c, "", false
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, "", false
	}

	key := kmsg.String()
	switch key {
	case "left", "h":
		if c.Focus > 0 {
			c.Focus--
		}
	case "right", "l":
		if c.Focus < len(c.Parts)-1 {
			c.Focus++
		}
	case "space", " ":
		c = c.pick(c.Focus)
	case "backspace":
		if n := len(c.picked); n > 0 {
			c.picked = c.picked[:n-1]
		}
	case "ctrl+u":
		c.picked = nil
	case "enter":
		if len(c.picked) > 0 {
			return c, c.Assembled(), true
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			c = c.pick(int(key[0] - '1'))
		}
	}

	return c, "", false
}

func (c Chips) pick(i int) Chips {
	if i < 0 || i >= len(c.Parts) || c.Used(i) {
		return c
	}
	c.picked = append(append([]int(nil), c.picked...), i)
	return c
}

// Used reports whether token i has already been picked.
func (c Chips) Used(i int) bool {
	for _, p := range c.picked {
		if p == i {
			return true
		}
	}
	return false
}

// Assembled returns the picked tokens joined with single spaces.
func (c Chips) Assembled() string {
	words := make([]string, len(c.picked))
	for i, p := range c.picked {
		words[i] = c.Parts[p]
	}
	return strings.Join(words, " ")
}

// Lock freezes the tray after grading.
func (c *Chips) Lock() {
	c.locked = true
}

// View renders the assembled line above the numbered token tray.
func (c Chips) View() string {
	line := c.Assembled()
	if line == "" {
		line = theme.Dim.Render("(pick words in order)")
	} else {
		line = theme.Body.Bold(true).Render(line)
	}

	chips := make([]string, len(c.Parts))
	for i, p := range c.Parts {
		label := string(rune('1'+i)) + " " + p
		if i >= 9 {
			label = p
		}
		switch {
		case c.Used(i):
			chips[i] = theme.ChipUsed.Render(label)
		case i == c.Focus && !c.locked:
			chips[i] = theme.ChipFocused.Render(label)
		default:
			chips[i] = theme.Chip.Render(label)
		}
	}

	return line + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}
