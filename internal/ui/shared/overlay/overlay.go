// Package overlay composites a foreground block on top of a rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position selects where the foreground lands vertically.
type Position int

const (
	Center Position = iota
	Top
)

// topMargin is the row used by Top.
const topMargin = 2

// Config sizes the composited screen.
type Config struct {
	Width    int
	Height   int
	Position Position
}

// Place draws fg over bg, horizontally centered. Background cells outside
// the foreground are kept; bg is padded to cfg.Height rows if shorter.
func Place(cfg Config, fg, bg string) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, "")
	}

	fgLines := strings.Split(fg, "\n")
	fgWidth := lipgloss.Width(fg)
	x := max((cfg.Width-fgWidth)/2, 0)

	var y int
	switch cfg.Position {
	case Top:
		y = min(topMargin, max(cfg.Height-len(fgLines), 0))
	default:
		y = max((cfg.Height-len(fgLines))/2, 0)
	}

	for i, line := range fgLines {
		row := y + i
		for row >= len(bgLines) {
			bgLines = append(bgLines, "")
		}
		bgLines[row] = splice(bgLines[row], line, x, fgWidth)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces width cells of base starting at column x with line.
func splice(base, line string, x, width int) string {
	left := ansi.Truncate(base, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	right := ansi.TruncateLeft(base, x+width, "")
	return left + line + right
}
