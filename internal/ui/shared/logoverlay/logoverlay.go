// Package logoverlay provides an in-app log viewer overlay that shows
// recent log entries without leaving the TUI.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/applytrack/applytrack/internal/log"
	"github.com/applytrack/applytrack/internal/ui/shared/overlay"
	"github.com/applytrack/applytrack/internal/ui/styles"
)

const (
	viewportMaxHeight = 20
	viewportMinHeight = 5
	maxEntries        = 1000
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// KeyMap lists the overlay bindings.
type KeyMap struct {
	Clear  key.Binding
	Debug  key.Binding
	Info   key.Binding
	Warn   key.Binding
	Error  key.Binding
	Down   key.Binding
	Up     key.Binding
	Top    key.Binding
	Bottom key.Binding
	Close  key.Binding
}

// DefaultKeyMap returns the standard overlay bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Debug:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "debug")),
		Info:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		Warn:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warn")),
		Error:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error")),
		Down:   key.NewBinding(key.WithKeys("j", "down")),
		Up:     key.NewBinding(key.WithKeys("k", "up")),
		Top:    key.NewBinding(key.WithKeys("g")),
		Bottom: key.NewBinding(key.WithKeys("G")),
		Close:  key.NewBinding(key.WithKeys("ctrl+x", "esc"), key.WithHelp("esc", "close")),
	}
}

// Model is the log overlay component state.
type Model struct {
	KeyMap KeyMap

	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
	ready    bool
}

// New creates a hidden overlay showing every level.
func New() Model {
	return Model{
		KeyMap:   DefaultKeyMap(),
		minLevel: log.LevelDebug,
	}
}

// Update handles messages while the overlay is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.KeyMap.Clear):
			log.ClearBuffer()
			m.refresh()
		case key.Matches(msg, m.KeyMap.Debug):
			m.setLevel(log.LevelDebug)
		case key.Matches(msg, m.KeyMap.Info):
			m.setLevel(log.LevelInfo)
		case key.Matches(msg, m.KeyMap.Warn):
			m.setLevel(log.LevelWarn)
		case key.Matches(msg, m.KeyMap.Error):
			m.setLevel(log.LevelError)
		case key.Matches(msg, m.KeyMap.Down):
			m.viewport.ScrollDown(1)
		case key.Matches(msg, m.KeyMap.Up):
			m.viewport.ScrollUp(1)
		case key.Matches(msg, m.KeyMap.Top):
			m.viewport.GotoTop()
		case key.Matches(msg, m.KeyMap.Bottom):
			m.viewport.GotoBottom()
		case key.Matches(msg, m.KeyMap.Close):
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		}
	}
	return m, nil
}

// MinLevel reports the active level filter.
func (m Model) MinLevel() log.Level { return m.minLevel }

// Visible returns whether the overlay is currently visible.
func (m Model) Visible() bool { return m.visible }

// Toggle flips visibility, refreshing the entries when shown.
func (m *Model) Toggle() {
	if m.visible {
		m.Hide()
		return
	}
	m.Show()
}

// Show makes the overlay visible with fresh entries, scrolled to the newest.
func (m *Model) Show() {
	m.visible = true
	if !m.ready {
		m.initViewport()
	}
	m.refresh()
	m.viewport.GotoBottom()
}

// Hide makes the overlay invisible.
func (m *Model) Hide() { m.visible = false }

// SetSize records the screen size the overlay is centered in.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.initViewport()
}

func (m *Model) setLevel(level log.Level) {
	m.minLevel = level
	m.refresh()
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, 90), 40)
}

func (m *Model) initViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// header, footer and borders take six rows
	height := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	m.viewport = viewport.New(m.boxWidth()-2, height)
	m.ready = true
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content(m.boxWidth() - 2))
}

func (m Model) content(width int) string {
	entries := log.RecentAtLevel(maxEntries, m.minLevel)
	if len(entries) == 0 {
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("No logs to display")
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, colorize(e, width))
	}
	return strings.Join(lines, "\n")
}

func colorize(entry string, width int) string {
	entry = strings.TrimSuffix(entry, "\n")
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width, "…")
	}

	var color lipgloss.TerminalColor
	switch log.EntryLevel(entry) {
	case log.LevelError:
		color = styles.StatusErrorColor
	case log.LevelWarn:
		color = styles.StatusWarningColor
	case log.LevelInfo:
		color = styles.TextPrimaryColor
	default:
		color = styles.TextMutedColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

// View renders the overlay box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := m.boxWidth()

	title := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1).Render("Logs")
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width))

	body := m.content(width - 2)
	if m.ready {
		body = m.viewport.View()
	}

	parts := []string{title, divider, body, divider, m.footer()}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(strings.Join(parts, "\n"))
}

// footer lists the filter keys, emphasizing the active level.
func (m Model) footer() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	levels := []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	}

	hints := []string{hint.Render("[c] Clear")}
	for _, l := range levels {
		if l.level == m.minLevel {
			hints = append(hints, active.Render(l.label))
		} else {
			hints = append(hints, hint.Render(l.label))
		}
	}
	return strings.Join(hints, "  ")
}

// Overlay renders the overlay centered on bg, or bg alone when hidden.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
