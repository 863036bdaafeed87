package dashboard

import (
	"strings"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"github.com/applytrack/applytrack/internal/log"
)

// notesRenderer renders application notes as markdown, caching output per
// width since notes never change for a loaded dataset.
type notesRenderer struct {
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newNotesRenderer() *notesRenderer {
	return &notesRenderer{cache: make(map[string]string)}
}

// Render returns md formatted for width cells.
func (n *notesRenderer) Render(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(width, 20)
	if width != n.width || n.renderer == nil {
		n.reset(width)
	}
	if out, ok := n.cache[md]; ok {
		return out
	}

	out := wordwrap.String(md, width)
	if n.renderer != nil {
		rendered, err := n.renderer.Render(md)
		if err != nil {
			log.ErrorErr(log.CatUI, "rendering notes", err)
		} else {
			out = strings.Trim(rendered, "\n")
		}
	}
	n.cache[md] = out
	return out
}

func (n *notesRenderer) reset(width int) {
	n.width = width
	n.cache = make(map[string]string)

	style := glamourstyles.DarkStyle
	if lipgloss.ColorProfile() == termenv.Ascii {
		style = glamourstyles.NoTTYStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.ErrorErr(log.CatUI, "creating markdown renderer", err)
		n.renderer = nil
		return
	}
	n.renderer = r
}
