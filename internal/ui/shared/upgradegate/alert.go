package upgradegate

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/applytrack/applytrack/internal/ui/styles"
)

const alertWidth = 44

// DismissedMsg is emitted when the alert closes.
type DismissedMsg struct{}

// Alert is a modal notice. It swallows input while visible.
type Alert struct {
	keys    AlertKeyMap
	visible bool
	title   string
	message string
}

// NewAlert creates a hidden alert.
func NewAlert() Alert {
	return Alert{keys: DefaultAlertKeyMap()}
}

// KeyMap returns the alert keybindings.
func (a Alert) KeyMap() AlertKeyMap { return a.keys }

// SetKeyMap replaces the alert keybindings.
func (a Alert) SetKeyMap(k AlertKeyMap) Alert {
	a.keys = k
	return a
}

// Show displays the alert for msg.
func (a Alert) Show(msg AlertMsg) Alert {
	a.visible = true
	a.title = "Upgrade required"
	a.message = msg.Message
	return a
}

// Visible reports whether the alert is showing.
func (a Alert) Visible() bool { return a.visible }

// Message returns the current text.
func (a Alert) Message() string { return a.message }

// Update dismisses the alert on the Dismiss binding or any left press.
func (a Alert) Update(msg tea.Msg) (Alert, tea.Cmd) {
	if !a.visible {
		return a, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Dismiss) {
			return a.dismiss()
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return a.dismiss()
		}
	}
	return a, nil
}

func (a Alert) dismiss() (Alert, tea.Cmd) {
	a.visible = false
	return a, func() tea.Msg { return DismissedMsg{} }
}

// View renders the alert box, or "" when hidden.
func (a Alert) View() string {
	if !a.visible {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.StatusWarningColor).Render(a.title)
	body := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Render(wordwrap.String(a.message, alertWidth-4))
	h := a.keys.Dismiss.Help()
	hint := styles.HelpStyle.Render(h.Key + " to " + h.Desc)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Padding(0, 1).
		Width(alertWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint))
}
