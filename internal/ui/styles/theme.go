package styles

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// ColorToken names one themable color.
type ColorToken string

const (
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"
	TokenSelectionFg   ColorToken = "selection.fg"
	TokenSelectionBg   ColorToken = "selection.bg"
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"
)

// tokenTargets maps each token to the palette variable it controls.
var tokenTargets = map[ColorToken]*lipgloss.AdaptiveColor{
	TokenTextPrimary:   &TextPrimaryColor,
	TokenTextSecondary: &TextSecondaryColor,
	TokenTextMuted:     &TextMutedColor,
	TokenBorderDefault: &BorderDefaultColor,
	TokenBorderFocus:   &BorderHighlightFocusColor,
	TokenSelectionFg:   &SelectionForegroundColor,
	TokenSelectionBg:   &SelectionBackgroundColor,
	TokenStatusSuccess: &StatusSuccessColor,
	TokenStatusWarning: &StatusWarningColor,
	TokenStatusError:   &StatusErrorColor,
	TokenOverlayTitle:  &OverlayTitleColor,
	TokenOverlayBorder: &OverlayBorderColor,
}

// Preset is a named set of dark-mode colors.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// DefaultPreset is applied when no preset is configured.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Dark palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#E0E0E0",
		TokenTextSecondary: "#BBBBBB",
		TokenTextMuted:     "#696969",
		TokenBorderDefault: "#45475A",
		TokenBorderFocus:   "#54A0FF",
		TokenSelectionFg:   "#FFFFFF",
		TokenSelectionBg:   "#7D56F4",
		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",
		TokenOverlayTitle:  "#89DCEB",
		TokenOverlayBorder: "#CBA6F7",
	},
}

// Presets lists the built-in presets by name.
var Presets = map[string]Preset{
	"default": DefaultPreset,
	"mono": {
		Name:        "mono",
		Description: "Grayscale",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#FFFFFF",
			TokenTextSecondary: "#CCCCCC",
			TokenTextMuted:     "#777777",
			TokenBorderFocus:   "#FFFFFF",
			TokenSelectionBg:   "#444444",
			TokenStatusSuccess: "#DDDDDD",
			TokenStatusError:   "#AAAAAA",
		},
	},
}

// ThemeConfig selects a preset and per-token overrides.
type ThemeConfig struct {
	Preset string            `mapstructure:"preset"`
	Colors map[string]string `mapstructure:"colors"`
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func isValidHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

func isValidToken(t ColorToken) bool {
	_, ok := tokenTargets[t]
	return ok
}

// ValidateTheme reports the first problem in cfg without applying it.
func ValidateTheme(cfg ThemeConfig) error {
	_, err := resolvePreset(cfg)
	return err
}

func resolvePreset(cfg ThemeConfig) (Preset, error) {
	preset := DefaultPreset
	if cfg.Preset != "" {
		p, ok := Presets[cfg.Preset]
		if !ok {
			return Preset{}, fmt.Errorf("unknown theme preset %q", cfg.Preset)
		}
		preset = p
	}

	for name, hex := range cfg.Colors {
		if !isValidToken(ColorToken(name)) {
			return Preset{}, fmt.Errorf("unknown color token %q", name)
		}
		if !isValidHexColor(hex) {
			return Preset{}, fmt.Errorf("invalid hex color %q for %s", hex, name)
		}
	}
	return preset, nil
}

// ApplyTheme applies the default preset, then the configured preset, then
// the overrides. Overrides are validated before anything changes.
func ApplyTheme(cfg ThemeConfig) error {
	preset, err := resolvePreset(cfg)
	if err != nil {
		return err
	}

	for token, hex := range DefaultPreset.Colors {
		tokenTargets[token].Dark = hex
	}
	for token, hex := range preset.Colors {
		if target, ok := tokenTargets[token]; ok {
			target.Dark = hex
		}
	}
	for name, hex := range cfg.Colors {
		tokenTargets[ColorToken(name)].Dark = hex
	}

	rebuildStyles()
	return nil
}
