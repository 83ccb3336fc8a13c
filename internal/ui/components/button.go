package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ioequiz/internal/ui/theme"
)

// Button is a styled button bound to a key.
type Button struct {
	Label   string
	Key     string // key that presses the button, e.g. "a"
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label, key string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Key:     key,
		Active:  active,
		OnPress: onPress,
	}
}

// Update fires OnPress when the button's key is pressed.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if kmsg.String() == b.Key && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button with its key.
func (b Button) View() string {
	label := "[" + strings.ToUpper(b.Key) + "] " + b.Label
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Foreground(theme.TextDim).Render(label)
}

// ButtonRow forwards a message to every button and returns the first
// command produced.
func ButtonRow(buttons []Button, msg tea.Msg) tea.Cmd {
	for i := range buttons {
		var cmd tea.Cmd
		buttons[i], cmd = buttons[i].Update(msg)
		if cmd != nil {
			return cmd
		}
	}
	return nil
}
