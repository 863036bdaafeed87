// Package playground provides a mode for exercising the dropdown control
// interactively: pick options, rewrite the option markup live and watch the
// source select, hidden input and submitted form stay in step.
package playground

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/applytrack/applytrack/internal/log"
	"github.com/applytrack/applytrack/internal/ui/shared/dropdown"
	"github.com/applytrack/applytrack/internal/ui/shared/form"
	"github.com/applytrack/applytrack/internal/ui/styles"
)

// DefaultMarkup seeds the playground select.
const DefaultMarkup = `<option value=""></option>
<option value="any">Any stage</option>
<optgroup label="Active">
  <option value="applied">Applied</option>
  <option value="interviewing" selected>Interviewing</option>
  <option value="offer">Offer</option>
</optgroup>
<optgroup label="Closed">
  <option value="rejected">Rejected</option>
  <option value="ghosted" disabled>Ghosted</option>
</optgroup>`

const (
	fieldName    = "stage"
	dropdownID   = "playground"
	maxEvents    = 8
	editorHeight = 8
)

type focusArea int

const (
	focusDropdown focusArea = iota
	focusEditor
)

// KeyMap defines the playground keybindings.
type KeyMap struct {
	SwitchFocus key.Binding
	Apply       key.Binding
	Destroy     key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SwitchFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "dropdown/markup")),
		Apply:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "apply markup")),
		Destroy:     key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "destroy/rebuild")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchFocus, k.Apply, k.Destroy, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Options configures the playground.
type Options struct {
	Markup      string
	Placeholder string
	Width       int
}

// Model holds the playground state.
type Model struct {
	keys KeyMap
	help help.Model
	opts Options

	form     *form.Form
	src      *form.Select
	dropdown dropdown.Model
	editor   textarea.Model
	focus    focusArea

	// Change events as observed by a plain listener on the source select.
	sourceEvents *[]string
	status       string
	width        int
	height       int
	quitting     bool
}

// New creates a playground over opts.Markup, or DefaultMarkup when empty.
func New(opts Options) Model {
	if opts.Markup == "" {
		opts.Markup = DefaultMarkup
	}
	if opts.Width <= 0 {
		opts.Width = 28
	}

	ta := textarea.New()
	ta.SetValue(opts.Markup)
	ta.ShowLineNumbers = false
	ta.SetHeight(editorHeight)
	ta.SetWidth(60)
	ta.CharLimit = 0

	m := Model{
		keys:         DefaultKeyMap(),
		help:         help.New(),
		opts:         opts,
		editor:       ta,
		sourceEvents: &[]string{},
	}

	groups, err := form.ParseOptions(opts.Markup)
	if err != nil {
		log.ErrorErr(log.CatMode, "playground markup rejected", err)
		m.status = err.Error()
	}
	m.src = form.NewSelect(fieldName, groups...)
	m.form = form.New(form.NewHidden("source", "playground"), m.src)

	events := m.sourceEvents
	m.src.AddChangeListener(func(ev form.ChangeEvent) {
		*events = append(*events, fmt.Sprintf("change %s=%q", ev.Target.Name(), ev.Value))
		if len(*events) > maxEvents {
			*events = (*events)[len(*events)-maxEvents:]
		}
	})

	m.dropdown = m.newDropdown()
	return m
}

func (m Model) newDropdown() dropdown.Model {
	dd := dropdown.New(m.src, dropdown.Config{
		ID:          dropdownID,
		Placeholder: m.opts.Placeholder,
		Width:       m.opts.Width,
		OnSelect: func(value, text string) {
			log.Info(log.CatMode, "playground selection", "value", value, "text", text)
		},
	})
	dd.Focus()
	return dd
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Dropdown exposes the control under test.
func (m Model) Dropdown() dropdown.Model { return m.dropdown }

// Form exposes the form the control lives in.
func (m Model) Form() *form.Form { return m.form }

// SourceEvents returns change events seen on the source select, oldest
// first.
func (m Model) SourceEvents() []string { return append([]string(nil), *m.sourceEvents...) }

// Status returns the last status message.
func (m Model) Status() string { return m.status }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.editor.SetWidth(max(msg.Width-6, 20))
		return m, nil

	case dropdown.ChangeMsg:
		m.status = fmt.Sprintf("selected %q (%s)", msg.Value, msg.Text)
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.dropdown, cmd = m.dropdown.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Apply):
		return m.applyMarkup(), nil
	case key.Matches(msg, m.keys.Destroy):
		return m.toggleDestroyed(), nil
	case key.Matches(msg, m.keys.SwitchFocus) && !m.dropdown.IsOpen():
		return m.switchFocus()
	}

	var cmd tea.Cmd
	if m.focus == focusEditor {
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	m.dropdown, cmd = m.dropdown.Update(msg)
	return m, cmd
}

func (m Model) switchFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusDropdown {
		m.focus = focusEditor
		m.dropdown.Blur()
		return m, m.editor.Focus()
	}
	m.focus = focusDropdown
	m.editor.Blur()
	m.dropdown.Focus()
	return m, nil
}

// applyMarkup replaces the options with the editor contents.
func (m Model) applyMarkup() Model {
	if !m.dropdown.Ready() {
		m.status = "control is destroyed, ctrl+d rebuilds it"
		return m
	}
	markup := m.editor.Value()
	if _, err := form.ParseOptions(markup); err != nil {
		m.status = err.Error()
		return m
	}
	m.dropdown = m.dropdown.UpdateOptionsHTML(markup)
	m.status = fmt.Sprintf("options replaced: %d selectable, value %q", len(m.dropdown.Options()), m.dropdown.Value())
	return m
}

func (m Model) toggleDestroyed() Model {
	if m.dropdown.Ready() {
		m.dropdown = m.dropdown.Destroy()
		m.status = "control destroyed, source select restored"
		return m
	}
	m.dropdown = m.newDropdown()
	if m.focus != focusDropdown {
		m.dropdown.Blur()
	}
	m.status = "control rebuilt"
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := styles.TitleStyle.MarginBottom(1).Render("Dropdown Playground")

	control := m.dropdown.View()
	if !m.dropdown.Ready() {
		control = m.renderNativeSelect()
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, control, "   ", m.renderState())

	editorBorder := styles.BorderDefaultColor
	if m.focus == focusEditor {
		editorBorder = styles.BorderHighlightFocusColor
	}
	editor := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(editorBorder).
		Render(m.editor.View())

	parts := []string{header, top, "", styles.HelpStyle.Render("Option markup"), editor}
	if m.status != "" {
		parts = append(parts, styles.StatusBarStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderState() string {
	label := styles.HelpStyle
	aria := m.dropdown.Aria()
	lines := []string{
		label.Render("value     ") + fmt.Sprintf("%q", m.dropdown.Value()),
		label.Render("label     ") + m.dropdown.Label(),
		label.Render("source    ") + fmt.Sprintf("%q hidden=%t", m.src.Value(), m.src.Hidden()),
		label.Render("hidden    ") + m.hiddenValue(),
		label.Render("expanded  ") + fmt.Sprintf("%t", aria.Expanded),
		label.Render("submits   ") + m.form.Values().Encode(),
		"",
		label.Render("events"),
	}
	events := *m.sourceEvents
	if len(events) == 0 {
		lines = append(lines, label.Render("  none yet"))
	}
	for _, ev := range events {
		lines = append(lines, "  "+ev)
	}
	return strings.Join(lines, "\n")
}

func (m Model) hiddenValue() string {
	h := m.dropdown.HiddenInput()
	if h == nil || h.Form() == nil {
		return "(not in form)"
	}
	return fmt.Sprintf("%q", h.Value())
}

// renderNativeSelect shows the source options once the control is gone.
func (m Model) renderNativeSelect() string {
	var lines []string
	for _, g := range m.src.Groups() {
		indent := ""
		if g.Grouped() {
			lines = append(lines, g.Label)
			indent = "  "
		}
		for _, o := range g.Options {
			lines = append(lines, indent+o.Text)
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(styles.BorderDefaultColor).
		Render(strings.Join(lines, "\n"))
}
