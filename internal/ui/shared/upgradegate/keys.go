package upgradegate

import "github.com/charmbracelet/bubbles/key"

// AlertKeyMap defines the alert keybindings.
type AlertKeyMap struct {
	Dismiss key.Binding
}

// DefaultAlertKeyMap returns the default alert keybindings.
func DefaultAlertKeyMap() AlertKeyMap {
	return AlertKeyMap{
		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc", " "),
			key.WithHelp("enter/esc", "dismiss"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k AlertKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Dismiss}
}

// FullHelp implements help.KeyMap.
func (k AlertKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Dismiss}}
}
