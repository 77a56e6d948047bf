package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unowned-ai/jubiland/pkg/display"
	"github.com/unowned-ai/jubiland/pkg/journal"
)

// UI styles and layout settings
// Color palette "Blue Moon" from https://gogh-co.github.io/Gogh/
const (
	colorGray     = "#353b52"
	colorWhite    = "#ffffff"
	colorGreen    = "#acfab4"
	colorGreenDim = "#b4c4b4"
	colorRed      = "#e61f44"
	colorRedDim   = "#d06178"
	colorPurple   = "#b9a3eb"
	colorBlue     = "#89ddff"
	colorYellow   = "#ffd60a"

	bordersAndPaddingWidth = 4
	panelHeightPadding     = 3
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Background(lipgloss.Color(colorGray)).
			Padding(0, 2).Align(lipgloss.Center)
	subtitleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray)).
			Background(lipgloss.Color(colorGreen))
	dangerSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorGray)).
				Background(lipgloss.Color(colorRed))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWhite))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPurple))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	starStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray))
)

// TextStatusColorize colors text by status: 0 unknown, 1 ok, 2 failing.
func TextStatusColorize(text string, status int) string {
	switch status {
	case 1:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreenDim)).Render(text)
	case 2:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorRedDim)).Render(text)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)).Render(text)
	}
}

func moodLabel(rating int) string {
	style := display.Mood(rating)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(style.Color)).
		Render(fmt.Sprintf("%s %s", style.Emoji, style.Description))
}

func categoryLabel(c journal.Category) string {
	style := display.Category(c)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(style.Color)).
		Render(fmt.Sprintf("%s %s", style.Emoji, c))
}

func starMark(starred bool) string {
	if starred {
		return starStyle.Render("★")
	}
	return " "
}

// truncate shortens text to width, marking the cut with two dots.
func truncate(text string, width int) string {
	if width <= 3 || lipgloss.Width(text) <= width {
		return text
	}
	runes := []rune(text)
	if len(runes) > width-2 {
		runes = runes[:width-2]
	}
	return string(runes) + ".."
}

// distributionBar draws count as a bar scaled against total.
func distributionBar(count, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}
	filled := count * width / total
	if count > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// columnWidths splits width into list and detail columns (roughly 20/35/45).
func columnWidths(width int) (int, int, int) {
	left := width * 20 / 100
	middle := width * 35 / 100
	right := width - left - middle
	return left, middle, right
}

func confirmOptions(confirmIdx int) string {
	yesOpt, noOpt := "Yes", "No"
	if confirmIdx == 0 {
		yesOpt = dangerSelectedStyle.Render(" >" + yesOpt)
		noOpt = inactiveStyle.Render("  " + noOpt)
	} else {
		yesOpt = inactiveStyle.Render("  " + yesOpt)
		noOpt = selectedStyle.Render(" >" + noOpt)
	}
	return fmt.Sprintf("%s\n%s\n\n", yesOpt, noOpt)
}
