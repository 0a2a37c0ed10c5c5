package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	menuHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// pickList is the centered title, prompt, options and hint layout shared
// by the menus.
type pickList struct {
	title   string
	prompt  string
	options []string
	cursor  int
	hint    string
}

func (l pickList) render(width int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(l.title), width))
	b.WriteString("\n\n")
	b.WriteString(centerText(l.prompt, width))
	b.WriteString("\n\n")

	// pad options to one width so the column stays aligned when centered
	optW := 0
	for _, o := range l.options {
		optW = max(optW, lipgloss.Width(o))
	}
	for i, o := range l.options {
		o += strings.Repeat(" ", optW-lipgloss.Width(o))
		if i == l.cursor {
			o = menuPickStyle.Render("> " + o)
		} else {
			o = "  " + o
		}
		b.WriteString(centerText(o, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render(l.hint), width))
	b.WriteString("\n")

	return b.String()
}

// centerText centers text within width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// moveCursor steps c by delta, clamped to [0, n).
func moveCursor(c, delta, n int) int {
	return max(0, min(c+delta, n-1))
}
