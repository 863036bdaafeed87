// Package upgradegate renders premium-feature buttons and intercepts
// activation of the ones the current plan doesn't include, raising an
// upgrade alert instead.
package upgradegate

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/applytrack/applytrack/internal/log"
	"github.com/applytrack/applytrack/internal/ui/shared/zones"
	"github.com/applytrack/applytrack/internal/ui/styles"
)

const lockIcon = "🔒"

// PressMsg is emitted when an ungated button is activated.
type PressMsg struct {
	ID string
}

// AlertMsg is emitted instead of PressMsg for gated buttons.
type AlertMsg struct {
	ID      string
	Feature string
	Message string
}

// Button is a feature button. RequiresUpgrade marks it disabled for the
// current plan.
type Button struct {
	ID              string
	Label           string
	Feature         string
	RequiresUpgrade bool
}

// UpgradeMessage is the alert text for a gated feature.
func UpgradeMessage(feature string) string {
	return fmt.Sprintf("%s is part of the Pro plan. Upgrade your account to unlock it.", feature)
}

func (b Button) zoneID() string { return "gate:" + b.ID }

// Activate returns the command a press produces.
func (b Button) Activate() tea.Cmd {
	if b.RequiresUpgrade {
		feature := b.Feature
		if feature == "" {
			feature = b.Label
		}
		log.Info(log.CatUI, "upgrade required", "button", b.ID, "feature", feature)
		msg := AlertMsg{ID: b.ID, Feature: feature, Message: UpgradeMessage(feature)}
		return func() tea.Msg { return msg }
	}
	id := b.ID
	return func() tea.Msg { return PressMsg{ID: id} }
}

func buttonStyle(gated bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor).
		Foreground(styles.TextPrimaryColor).
		Padding(0, 1)
	if gated {
		style = style.Foreground(styles.TextMutedColor).Faint(true)
	}
	return style
}

// View renders the button, dimmed with a lock when gated.
func (b Button) View(focused bool) string {
	label := b.Label
	style := buttonStyle(b.RequiresUpgrade)
	if b.RequiresUpgrade {
		label = lockIcon + " " + label
	}
	if focused {
		style = style.BorderForeground(styles.BorderHighlightFocusColor)
	}
	return zone.Mark(b.zoneID(), style.Render(label))
}

// Intercept resolves a left press against buttons and returns the
// activation command of the one hit, or nil.
func Intercept(buttons []Button, msg tea.MouseMsg, inBounds zones.InBoundsFunc) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	for _, b := range buttons {
		if inBounds(b.zoneID(), msg) {
			return b.Activate()
		}
	}
	return nil
}
