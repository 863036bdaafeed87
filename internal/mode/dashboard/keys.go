package dashboard

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the dashboard bindings. Focused controls see keys first.
type KeyMap struct {
	NextFocus    key.Binding
	PrevFocus    key.Binding
	Applications key.Binding
	Network      key.Binding
	Timeline     key.Binding
	Analytics    key.Binding
	Up           key.Binding
	Down         key.Binding
	Sort         key.Binding
	Activate     key.Binding
	ClearFilters key.Binding
	Reload       key.Binding
	Logs         key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
	Blur         key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextFocus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next control")),
		PrevFocus:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev control")),
		Applications: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "applications")),
		Network:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "network")),
		Timeline:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "timeline")),
		Analytics:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "analytics")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Sort:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Activate:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "press")),
		ClearFilters: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear filters")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Logs:         key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "logs")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),
		Blur:         key.NewBinding(key.WithKeys("esc")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Activate, k.Logs, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Applications, k.Network, k.Timeline, k.Analytics},
		{k.NextFocus, k.PrevFocus, k.Up, k.Down},
		{k.Activate, k.Sort, k.ClearFilters, k.Reload},
		{k.Logs, k.Help, k.Quit},
	}
}
