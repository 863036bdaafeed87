package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderFormSection draws content inside a rounded box whose top border
// carries the title and an optional parenthesized hint:
//
//	╭─ Title (hint) ─────╮
//	│ content            │
//	╰────────────────────╯
func RenderFormSection(content []string, title, hint string, width int, focused bool, focusColor lipgloss.TerminalColor) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = focusColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(TextPrimaryColor).Bold(focused)
	hintStyle := lipgloss.NewStyle().Foreground(TextMutedColor)

	inner := max(width-2, 1)

	var top string
	if title == "" {
		top = border.Render("╭" + strings.Repeat("─", inner) + "╮")
	} else {
		label := title
		if hint != "" {
			label += " (" + hint + ")"
		}
		// "─ " before the label and at least one "─" after it.
		label = ansi.Truncate(label, max(inner-4, 1), "…")
		styled := titleStyle.Render(label)
		if hint != "" && strings.HasSuffix(label, ")") {
			styled = titleStyle.Render(title) + hintStyle.Render(" ("+hint+")")
		}
		fill := max(inner-3-ansi.StringWidth(label), 1)
		top = border.Render("╭─ ") + styled + border.Render(" "+strings.Repeat("─", fill)+"╮")
	}

	lines := []string{top}
	for _, line := range content {
		line = ansi.Truncate(line, inner, "")
		pad := max(inner-ansi.StringWidth(line), 0)
		lines = append(lines, border.Render("│")+line+strings.Repeat(" ", pad)+border.Render("│"))
	}
	lines = append(lines, border.Render("╰"+strings.Repeat("─", inner)+"╯"))

	return strings.Join(lines, "\n")
}

// TruncateString shortens s to width cells with an ellipsis.
func TruncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
