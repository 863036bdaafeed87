// Package styles holds the shared color palette and lipgloss styles.
//
// Colors are package variables so ApplyTheme can swap them at startup;
// components read them when building their styles.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1E1E2E", Dark: "#E0E0E0"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#8C8FA1", Dark: "#696969"}

	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#BCC0CC", Dark: "#45475A"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}

	SelectionForegroundColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	SelectionBackgroundColor = lipgloss.AdaptiveColor{Light: "#7287FD", Dark: "#7D56F4"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#40A02B", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#FF8787"}

	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89DCEB"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"}
)

// Shared styles. Rebuilt by ApplyTheme.
var (
	TitleStyle     lipgloss.Style
	HelpStyle      lipgloss.Style
	ErrorStyle     lipgloss.Style
	StatusBarStyle lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(OverlayTitleColor)
	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	StatusBarStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor).Padding(0, 1)
}
