package upgradegate

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/applytrack/applytrack/internal/ui/shared/zones"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

var leftPress = tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

func TestActivate_GatedRaisesAlert(t *testing.T) {
	b := Button{ID: "export", Label: "Export CSV", RequiresUpgrade: true}

	msg := b.Activate()()
	alert, ok := msg.(AlertMsg)
	require.True(t, ok, "expected AlertMsg, got %T", msg)
	require.Equal(t, "export", alert.ID)
	require.Equal(t, "Export CSV", alert.Feature, "label stands in for a missing feature name")
	require.Equal(t, UpgradeMessage("Export CSV"), alert.Message)
}

func TestActivate_UngatedPresses(t *testing.T) {
	b := Button{ID: "refresh", Label: "Refresh"}
	require.Equal(t, PressMsg{ID: "refresh"}, b.Activate()())
}

func TestIntercept(t *testing.T) {
	buttons := []Button{
		{ID: "refresh", Label: "Refresh"},
		{ID: "insights", Label: "AI insights", Feature: "AI insights", RequiresUpgrade: true},
	}
	hit := func(target string) zones.InBoundsFunc {
		return func(id string, _ tea.MouseMsg) bool { return id == target }
	}

	cmd := Intercept(buttons, leftPress, hit("gate:insights"))
	require.NotNil(t, cmd)
	require.IsType(t, AlertMsg{}, cmd())

	cmd = Intercept(buttons, leftPress, hit("gate:refresh"))
	require.Equal(t, PressMsg{ID: "refresh"}, cmd())

	require.Nil(t, Intercept(buttons, leftPress, hit("elsewhere")))

	release := leftPress
	release.Action = tea.MouseActionRelease
	require.Nil(t, Intercept(buttons, release, hit("gate:insights")), "only presses count")
}

func TestButton_View(t *testing.T) {
	gated := zone.Scan(Button{ID: "x", Label: "Export CSV", RequiresUpgrade: true}.View(false))
	require.Contains(t, gated, lockIcon+" Export CSV")

	open := zone.Scan(Button{ID: "y", Label: "Refresh"}.View(true))
	require.Contains(t, open, "Refresh")
	require.NotContains(t, open, lockIcon)
}

func TestAlert_ShowAndDismiss(t *testing.T) {
	a := NewAlert()
	require.False(t, a.Visible())
	require.Empty(t, a.View())

	a = a.Show(AlertMsg{Feature: "AI insights", Message: UpgradeMessage("AI insights")})
	require.True(t, a.Visible())

	view := a.View()
	require.Contains(t, view, "Upgrade required")
	require.Contains(t, view, "AI insights")
	for _, line := range strings.Split(view, "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), alertWidth+2, "message is wrapped inside the box")
	}

	a, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	require.Nil(t, cmd, "other keys are swallowed")
	require.True(t, a.Visible())

	a, cmd = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, a.Visible())
	require.Equal(t, DismissedMsg{}, cmd())
}

func TestAlert_DismissByClick(t *testing.T) {
	a := NewAlert().Show(AlertMsg{Message: "m"})
	a, cmd := a.Update(leftPress)
	require.False(t, a.Visible())
	require.NotNil(t, cmd)
}

func TestAlert_DismissKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyEnter},
		{Type: tea.KeyEsc},
		{Type: tea.KeySpace, Runes: []rune{' '}},
	} {
		t.Run(k.String(), func(t *testing.T) {
			a := NewAlert().Show(AlertMsg{Message: "m"})
			a, cmd := a.Update(k)
			require.False(t, a.Visible())
			require.Equal(t, DismissedMsg{}, cmd())
		})
	}
}

func TestAlert_CustomKeyMap(t *testing.T) {
	keys := AlertKeyMap{Dismiss: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "close"))}
	a := NewAlert().SetKeyMap(keys).Show(AlertMsg{Message: "m"})
	require.Contains(t, a.View(), "q to close")
	require.Len(t, a.KeyMap().ShortHelp(), 1)

	a, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Nil(t, cmd)
	require.True(t, a.Visible())

	a, cmd = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.False(t, a.Visible())
	require.NotNil(t, cmd)
}
