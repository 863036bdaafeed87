package dropdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/applytrack/applytrack/internal/ui/styles"
)

const (
	caretClosed  = "▾"
	caretOpen    = "▴"
	markSelected = "✓"
	markCursor   = "›"
)

type viewStyles struct {
	box, focusedBox               lipgloss.Style
	placeholder, group, option    lipgloss.Style
	disabled, highlight, selected lipgloss.Style
}

// newViewStyles reads the palette at render time so theme changes apply.
func newViewStyles() viewStyles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor).
		Padding(0, 1)
	return viewStyles{
		box:         box,
		focusedBox:  box.BorderForeground(styles.BorderHighlightFocusColor),
		placeholder: lipgloss.NewStyle().Foreground(styles.TextMutedColor),
		group:       lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Bold(true),
		option:      lipgloss.NewStyle().Foreground(styles.TextPrimaryColor),
		disabled:    lipgloss.NewStyle().Foreground(styles.TextMutedColor).Faint(true),
		highlight:   lipgloss.NewStyle().Foreground(styles.SelectionForegroundColor).Background(styles.SelectionBackgroundColor),
		selected:    lipgloss.NewStyle().Foreground(styles.StatusSuccessColor),
	}
}

// View renders the label box and, while open, the options panel beneath it.
// Regions are marked for bubblezone; the caller's top-level View must pass
// through zone.Scan.
func (m Model) View() string {
	if !m.Ready() {
		return ""
	}

	st := newViewStyles()
	inner := max(m.cfg.Width-4, 4) // borders and padding

	caret := caretClosed
	if m.open {
		caret = caretOpen
	}
	text := runewidth.Truncate(m.Label(), inner-2, "…")
	var label string
	if m.selected < 0 {
		label = st.placeholder.Render(text)
	} else {
		label = st.option.Render(text)
	}
	label = padRight(label, inner-1) + caret

	box := st.box
	if m.focused {
		box = st.focusedBox
	}
	out := zone.Mark(m.labelZone(), box.Width(inner+2).Render(label))

	if m.open {
		out = lipgloss.JoinVertical(lipgloss.Left, out, m.renderPanel(st, inner))
	}
	return zone.Mark(m.id, out)
}

func (m Model) renderPanel(st viewStyles, inner int) string {
	var lines []string
	if len(m.entries) == 0 {
		lines = append(lines, st.placeholder.Render(padRight("(no options)", inner)))
	}
	for _, sec := range m.sections {
		indent := ""
		if sec.label != "" {
			lines = append(lines, st.group.Render(padRight(runewidth.Truncate(sec.label, inner, "…"), inner)))
			indent = " "
		}
		for _, idx := range sec.entries {
			lines = append(lines, zone.Mark(m.optionZone(idx), m.renderOption(st, idx, indent, inner)))
		}
	}

	return zone.Mark(m.listboxZone(), st.box.Width(inner+2).Render(strings.Join(lines, "\n")))
}

func (m Model) renderOption(st viewStyles, idx int, indent string, inner int) string {
	e := m.entries[idx]

	mark := " "
	if idx == m.selected {
		mark = markSelected
	}
	cursor := " "
	if idx == m.highlight {
		cursor = markCursor
	}

	prefix := cursor + indent + mark + " "
	text := runewidth.Truncate(e.Text, max(inner-ansi.StringWidth(prefix), 1), "…")
	line := padRight(prefix+text, inner)

	switch {
	case e.Disabled:
		return st.disabled.Render(line)
	case idx == m.highlight:
		return st.highlight.Render(line)
	case idx == m.selected:
		return st.selected.Render(line)
	default:
		return st.option.Render(line)
	}
}

// padRight pads s with spaces to width cells, measuring ANSI-aware.
func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
