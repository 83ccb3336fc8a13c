package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ioequiz/internal/question"
	"github.com/abhisek/ioequiz/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = ` ██╗ ██████╗ ███████╗    ██████╗ ██╗   ██╗██╗███████╗
 ██║██╔═══██╗██╔════╝   ██╔═══██╗██║   ██║██║╚══███╔╝
 ██║██║   ██║█████╗     ██║   ██║██║   ██║██║  ███╔╝
 ██║██║   ██║██╔══╝     ██║▄▄ ██║██║   ██║██║ ███╔╝
 ██║╚██████╔╝███████╗   ╚██████╔╝╚██████╔╝██║███████╗
 ╚═╝ ╚═════╝ ╚══════╝    ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝`

const arcadeTitleCompact = "I · O · E   Q · U · I · Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	art := arcadeTitleFull
	if compact || cw < 56 {
		art = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// typeShort is the stats bar label for each question type.
var typeShort = map[question.Type]string{
	question.TypeMultipleChoice: "CHOICE",
	question.TypeFillInBlank:    "BLANK",
	question.TypeRearrange:      "ORDER",
}

// bankStats counts the bank's questions per type, in display order.
func bankStats(b *question.Bank) string {
	counts := b.CountByType()
	var parts []string
	for _, t := range question.Types() {
		if counts[t] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[t], typeShort[t]))
		}
	}
	return strings.Join(parts, " · ")
}

// renderStatsBar renders the bank and pass stats in a bordered box matching
// content width.
func renderStatsBar(b *question.Bank, passes, best, cw int, compact bool) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	progress := dimStyle.Render("★ NOT PLAYED YET")
	if passes > 0 {
		progress = bestStyle.Render(fmt.Sprintf("★ BEST %d%% · %d PLAYED", best, passes))
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s · %d QUESTIONS", strings.ToUpper(b.Title), len(b.Questions))),
	}
	if !compact {
		lines = append(lines, dimStyle.Render(bankStats(b)))
	}
	lines = append(lines, progress)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
