// Package dropdown provides a styled, keyboard- and mouse-driven replacement
// for a single-selection list.
//
// The control takes over presentation of a form.Select (the source element)
// and keeps three representations in sync: the visible label, a hidden input
// named after the source, and the source's own value. Every committed
// selection dispatches a change event on the source, so code listening there
// keeps working unmodified.
package dropdown

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/applytrack/applytrack/internal/log"
	"github.com/applytrack/applytrack/internal/ui/shared/form"
	"github.com/applytrack/applytrack/internal/ui/shared/zones"
)

const defaultWidth = 24

// Roles exposed through Aria.
const (
	RoleCombobox = "combobox"
	RoleListbox  = "listbox"
)

// ChangeMsg is emitted after every committed selection.
type ChangeMsg struct {
	ID    string
	Value string
	Text  string
}

// Config configures a dropdown.
type Config struct {
	// ID prefixes the control's mouse zones. Generated when empty.
	ID string
	// Placeholder is shown while nothing is selected.
	Placeholder string
	// OnSelect is invoked with the new value and label on each committed
	// selection.
	OnSelect func(value, text string)
	// Width of the label box in cells, borders included.
	Width int
}

// AriaState describes the control for assistive output.
type AriaState struct {
	Role             string
	Expanded         bool
	Controls         string // listbox zone ID
	PanelRole        string
	ActiveDescendant string // highlighted option zone ID while open
}

// entry is a selectable option plus its flat index in the source.
type entry struct {
	form.Option
	srcIndex int
}

// section is one rendered group: optional header plus entry indexes.
type section struct {
	label   string
	entries []int
}

// Model is the dropdown state.
type Model struct {
	KeyMap KeyMap

	id     string
	cfg    Config
	src    *form.Select
	hidden *form.Hidden

	entries  []entry
	sections []section

	selected  int // index into entries, -1 if none
	highlight int // keyboard cursor while open, -1 if nothing is enabled
	open      bool
	focused   bool
	destroyed bool

	inBounds zones.InBoundsFunc
}

// New builds a control over src.
//
// The initial selection is the source's explicitly selected option. Without
// one, the control shows cfg.Placeholder and selects nothing; with no
// placeholder configured it falls back to the first valid option. The
// source is hidden and a hidden input with the source's name is inserted
// right after it in its form. The popup starts closed.
//
// A nil src is logged and yields an inert control whose methods do nothing.
func New(src *form.Select, cfg Config) Model {
	if src == nil {
		log.Warn(log.CatUI, "dropdown: no source element, initialization aborted", "placeholder", cfg.Placeholder)
		return Model{selected: -1, highlight: -1}
	}
	if cfg.ID == "" {
		cfg.ID = "dropdown-" + uuid.NewString()[:8]
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}

	m := Model{
		KeyMap:    DefaultKeyMap(),
		id:        cfg.ID,
		cfg:       cfg,
		src:       src,
		hidden:    form.NewHidden(src.Name(), ""),
		selected:  -1,
		highlight: -1,
		inBounds:  zones.InBounds,
	}
	m.rebuild()

	switch explicit := src.ExplicitIndex(); {
	case explicit >= 0:
		m.selected = m.entryForSource(explicit)
	case cfg.Placeholder == "":
		m.selected = m.entryForSource(src.SelectedIndex())
	}
	if m.selected >= 0 {
		m.hidden.SetValue(m.entries[m.selected].Value)
	}

	if f := src.Form(); f != nil {
		f.InsertAfter(src, m.hidden)
	}
	src.SetHidden(true)

	log.Debug(log.CatUI, "dropdown initialized", "id", m.id, "name", src.Name(), "options", len(m.entries), "value", m.Value())
	return m
}

// WithInBounds replaces mouse hit-testing. The default resolves bubblezone
// zones.
func (m Model) WithInBounds(fn zones.InBoundsFunc) Model {
	m.inBounds = fn
	return m
}

// rebuild derives entries and sections from the source's groups.
// Placeholder options are skipped.
func (m *Model) rebuild() {
	m.entries = nil
	m.sections = nil
	srcIndex := 0
	for _, g := range m.src.Groups() {
		sec := section{label: g.Label}
		for _, o := range g.Options {
			if !o.IsPlaceholder() {
				o.Selected = false
				sec.entries = append(sec.entries, len(m.entries))
				m.entries = append(m.entries, entry{Option: o, srcIndex: srcIndex})
			}
			srcIndex++
		}
		if len(sec.entries) > 0 || sec.label != "" {
			m.sections = append(m.sections, sec)
		}
	}
}

// entryForSource maps a flat source index to an entry index.
func (m Model) entryForSource(srcIndex int) int {
	if srcIndex < 0 {
		return -1
	}
	for i, e := range m.entries {
		if e.srcIndex == srcIndex {
			return i
		}
	}
	return -1
}

// Ready reports whether the control is attached to a source and not
// destroyed.
func (m Model) Ready() bool {
	return m.src != nil && !m.destroyed
}

// ID returns the zone prefix of the control.
func (m Model) ID() string { return m.id }

// Source returns the replaced select.
func (m Model) Source() *form.Select { return m.src }

// HiddenInput returns the input mirroring the selection.
func (m Model) HiddenInput() *form.Hidden { return m.hidden }

// IsOpen reports whether the popup is visible.
func (m Model) IsOpen() bool { return m.open }

// Value returns the selected value, or "" when nothing is selected.
func (m Model) Value() string {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return ""
	}
	return m.entries[m.selected].Value
}

// Label returns the text shown in the label region.
func (m Model) Label() string {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return m.cfg.Placeholder
	}
	return m.entries[m.selected].Text
}

// Options returns the selectable options in display order.
func (m Model) Options() []form.Option {
	out := make([]form.Option, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Option
		out[i].Selected = i == m.selected
	}
	return out
}

// Highlighted returns the index of the keyboard-highlighted option, or -1.
func (m Model) Highlighted() int { return m.highlight }

// Aria describes the control's accessible state.
func (m Model) Aria() AriaState {
	a := AriaState{
		Role:      RoleCombobox,
		Expanded:  m.open,
		Controls:  m.listboxZone(),
		PanelRole: RoleListbox,
	}
	if m.open && m.highlight >= 0 {
		a.ActiveDescendant = m.optionZone(m.highlight)
	}
	return a
}

// Focus gives the control keyboard focus.
func (m *Model) Focus() {
	if m.Ready() {
		m.focused = true
	}
}

// Blur removes keyboard focus and closes the popup.
func (m *Model) Blur() {
	m.focused = false
	m.open = false
}

// Focused reports whether the control has keyboard focus.
func (m Model) Focused() bool { return m.focused }

// SetWidth sets the label box width.
func (m Model) SetWidth(width int) Model {
	if width > 0 {
		m.cfg.Width = width
	}
	return m
}

// Open shows the popup and moves the highlight onto the selection.
func (m Model) Open() Model {
	if !m.Ready() {
		return m
	}
	m.open = true
	m.highlight = m.selected
	if m.highlight < 0 || m.entries[m.highlight].Disabled {
		m.highlight = m.step(-1, 1)
	}
	return m
}

// Close hides the popup. The selection is untouched.
func (m Model) Close() Model {
	m.open = false
	return m
}

// Toggle flips popup visibility.
func (m Model) Toggle() Model {
	if m.open {
		return m.Close()
	}
	return m.Open()
}

// step returns the next enabled entry from `from` in direction dir,
// wrapping at both ends. Returns -1 when no entry is enabled.
func (m Model) step(from, dir int) int {
	n := len(m.entries)
	if n == 0 {
		return -1
	}
	idx := from
	for range n {
		idx = ((idx+dir)%n + n) % n
		if !m.entries[idx].Disabled {
			return idx
		}
	}
	return -1
}

// SelectOption commits the option at idx: it updates the label, the hidden
// input and the source value, dispatches one change event on the source,
// calls OnSelect, and closes the popup. Disabled or out-of-range indexes
// are ignored.
func (m Model) SelectOption(idx int) (Model, tea.Cmd) {
	if !m.Ready() || idx < 0 || idx >= len(m.entries) || m.entries[idx].Disabled {
		return m, nil
	}

	e := m.entries[idx]
	m.selected = idx
	m.highlight = idx
	m.hidden.SetValue(e.Value)
	m.src.SetSelectedIndex(e.srcIndex)
	m.src.DispatchChange()
	if m.cfg.OnSelect != nil {
		m.cfg.OnSelect(e.Value, e.Text)
	}
	m.open = false

	log.Debug(log.CatUI, "dropdown selection", "id", m.id, "value", e.Value)

	msg := ChangeMsg{ID: m.id, Value: e.Value, Text: e.Text}
	return m, func() tea.Msg { return msg }
}

// SetValue selects the first enabled option with the given value. Unknown
// values are a no-op.
func (m Model) SetValue(value string) (Model, tea.Cmd) {
	for i, e := range m.entries {
		if e.Value == value && !e.Disabled {
			return m.SelectOption(i)
		}
	}
	return m, nil
}

// UpdateOptions replaces the option set on the source and rebuilds the
// popup. The selection is re-derived from what the source now reports,
// which includes its implicit default. When the source reports nothing the
// label reverts to the placeholder and the hidden input is cleared. No
// change event is dispatched.
func (m Model) UpdateOptions(groups ...form.Group) Model {
	if !m.Ready() {
		return m
	}
	m.src.SetOptions(groups...)
	m.rebuild()

	m.selected = m.entryForSource(m.src.SelectedIndex())
	if m.selected >= 0 {
		m.hidden.SetValue(m.entries[m.selected].Value)
	} else {
		m.hidden.SetValue("")
	}
	m.highlight = m.selected
	if m.open && (m.highlight < 0 || m.entries[m.highlight].Disabled) {
		m.highlight = m.step(-1, 1)
	}

	log.Debug(log.CatUI, "dropdown options replaced", "id", m.id, "options", len(m.entries), "value", m.Value())
	return m
}

// UpdateOptionsHTML is UpdateOptions for <option>/<optgroup> markup.
// Markup that fails to parse is logged and the options stay as they were.
func (m Model) UpdateOptionsHTML(markup string) Model {
	if !m.Ready() {
		return m
	}
	groups, err := form.ParseOptions(markup)
	if err != nil {
		log.ErrorErr(log.CatUI, "dropdown: option markup rejected", err, "id", m.id)
		return m
	}
	return m.UpdateOptions(groups...)
}

// Destroy removes the hidden input from the form and reveals the source.
// The control renders nothing and ignores messages afterwards.
func (m Model) Destroy() Model {
	if !m.Ready() {
		return m
	}
	if f := m.hidden.Form(); f != nil {
		f.Remove(m.hidden)
	}
	m.src.SetHidden(false)
	m.destroyed = true
	m.open = false
	m.focused = false

	log.Debug(log.CatUI, "dropdown destroyed", "id", m.id)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key and mouse messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.Ready() {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.open {
		if key.Matches(msg, m.KeyMap.Open) {
			return m.Open(), nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.KeyMap.Close):
		return m.Close(), nil
	case key.Matches(msg, m.KeyMap.Commit):
		return m.SelectOption(m.highlight)
	case key.Matches(msg, m.KeyMap.Next):
		m.highlight = m.step(m.highlight, 1)
	case key.Matches(msg, m.KeyMap.Prev):
		from := m.highlight
		if from < 0 {
			from = 0
		}
		m.highlight = m.step(from, -1)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || m.inBounds == nil {
		return m, nil
	}

	if m.inBounds(m.labelZone(), msg) {
		return m.Toggle(), nil
	}
	if !m.open {
		return m, nil
	}
	for i := range m.entries {
		if m.inBounds(m.optionZone(i), msg) {
			return m.SelectOption(i)
		}
	}
	if m.inBounds(m.id, msg) {
		// Inside the panel but not on a row (group header, border).
		return m, nil
	}
	return m.Close(), nil
}
