package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ioequiz/internal/quiz"
	"github.com/abhisek/ioequiz/internal/router"
	"github.com/abhisek/ioequiz/internal/screen"
	sessionscreen "github.com/abhisek/ioequiz/internal/screens/session"
	"github.com/abhisek/ioequiz/internal/ui/components"
	"github.com/abhisek/ioequiz/internal/ui/layout"
)

// HomeScreen is the main menu: bank stats, the mascot and the start button.
type HomeScreen struct {
	env  *screen.Env
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	items := []components.MenuItem{
		{Label: "START QUIZ", Action: func() tea.Cmd {
			s := quiz.New(env.Bank.Questions)
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: sessionscreen.New(env, s)}
			}
		}, Disabled: env.Bank == nil || len(env.Bank.Questions) == 0},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		env:  env,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := layout.IsCompact(width, termHeight)

	cw := components.ContentWidth(width)

	last, played := h.env.LastPass()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(MascotFor(last.Rank, played), cw))
	}
	if h.env.Bank != nil {
		sections = append(sections, renderStatsBar(h.env.Bank, len(h.env.History), h.env.BestPercent(), cw, compact))
	}
	sections = append(sections, h.menu.View(cw))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// KeyHints returns the home footer hints.
func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
