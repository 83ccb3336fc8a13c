package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ioequiz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // no pass yet, or an average one
	MascotCelebrating                      // last pass ranked S+
	MascotAlert                            // last pass ranked C
)

const mascotIdle = `┌──────┐
│ ◉  ◉ │
│  ▽   │
│ ABC  │
└──────┘`

const mascotCelebrating = `┌──────┐
│ ★  ★ │
│  ▿   │
│ ABC  │
└─╥══╥─┘
  ╚══╝`

const mascotAlert = `┌──────┐
│ ◉  ◉ │ ?
│  ﹏  │
│ ABC  │
└──────┘`

// MascotFor picks the variant for the rank of the last finished pass.
func MascotFor(rank string, played bool) MascotVariant {
	switch {
	case !played:
		return MascotIdle
	case rank == "S+":
		return MascotCelebrating
	case rank == "C":
		return MascotAlert
	}
	return MascotIdle
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
