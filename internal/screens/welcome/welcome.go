package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ioequiz/internal/config"
	"github.com/abhisek/ioequiz/internal/router"
	"github.com/abhisek/ioequiz/internal/screen"
	"github.com/abhisek/ioequiz/internal/ui/components"
	"github.com/abhisek/ioequiz/internal/ui/layout"
	"github.com/abhisek/ioequiz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const mascotArt = `    ╭─────────────╮
    │  A  B  C    │
    │   ◉     ◉   │
    │     ╰─╯     │
    ├─────────────┤
    │ ✎  a b c d  │
    ╰─────────────╯`

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"★", "✦"}

const tagline = "Ready for the IOE? Let's practise!"

type tickMsg time.Time

// WelcomeScreen shows a splash animation, asks for the player's name when
// it is not known yet, then replaces itself with the home screen.
type WelcomeScreen struct {
	env          *screen.Env
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool

	naming bool
	input  components.TextInput
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(env *screen.Env, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		env:         env,
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		if w.naming {
			return w, w.updateName(msg)
		}
		// Any key skips the rest of the animation.
		w.elapsed = totalDur
		if w.env.PlayerName() == "" {
			w.naming = true
			w.input = components.NewTextInput("your name", config.MaxPlayerNameLen)
			return w, w.input.Init()
		}
		return w, w.transition()
	}

	if w.naming {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *WelcomeScreen) updateName(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return cmd
	}
	if w.input.Blank() {
		return nil
	}
	name := strings.TrimSpace(w.input.Value())
	if w.env.Player == nil {
		w.env.Player = &screen.Player{}
	}
	w.env.Player.Name = name
	if w.env.Log != nil {
		w.env.Log.WithField("player", name).Info("player named")
	}
	return w.transition()
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

// KeyHints returns the footer hints for the current phase.
func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if w.naming {
		return []layout.KeyHint{{Key: "Enter", Description: "Start"}, {Key: "Ctrl+C", Description: "Quit"}}
	}
	return []layout.KeyHint{{Key: "any key", Description: "Continue"}, {Key: "Ctrl+C", Description: "Quit"}}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	mascotStyle := lipgloss.NewStyle().Foreground(theme.Primary)
	rendered := mascotStyle.Render(mascotArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]

		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		if len(lines) > 1 {
			lines[0] = s1 + "  " + lines[0] + "  " + s2
		}
		if len(lines) > 3 {
			lines[3] = s2 + "  " + lines[3] + "  " + s1
		}
		if len(lines) > 6 {
			lines[6] = s1 + "  " + lines[6] + "  " + s2
		}
		rendered = strings.Join(lines, "\n")
	}

	sections = append(sections, rendered)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(tagline))
		sections = append(sections, "")

		if w.naming {
			sections = append(sections,
				theme.Body.Render("What's your name?"),
				components.ArcadeCard(w.input.View(), components.ContentWidth(width)/2+8))
		} else {
			sections = append(sections, lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Italic(true).
				Render("press any key to continue"))
		}
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
