package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestRenderFormSection(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	tests := []struct {
		name    string
		content []string
		title   string
		hint    string
		width   int
		want    []string
		notWant []string
	}{
		{
			name:    "title",
			content: []string{" Status ▾"},
			title:   "Filters",
			width:   30,
			want:    []string{"╭─ Filters ", "│ Status ▾", "╰"},
		},
		{
			name:    "title and hint",
			content: []string{"row"},
			title:   "Filters",
			hint:    "tab to move",
			width:   40,
			want:    []string{"╭─ Filters (tab to move) "},
		},
		{
			name:    "no title",
			content: []string{"row"},
			width:   20,
			want:    []string{"╭──", "──╮"},
			notWant: []string{"╭─ "},
		},
		{
			name:    "long title is truncated",
			content: []string{"row"},
			title:   "Applications submitted through referral channels",
			width:   24,
			want:    []string{"╭─ Applications", "…"},
		},
		{
			name:    "long content is clipped",
			content: []string{strings.Repeat("x", 50)},
			title:   "T",
			width:   12,
			want:    []string{"│xxxxxxxxxx│"},
		},
		{
			name:  "no content still closes",
			title: "Empty",
			width: 16,
			want:  []string{"╭─ Empty", "╰──────────────╯"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderFormSection(tt.content, tt.title, tt.hint, tt.width, false, BorderHighlightFocusColor)
			for _, w := range tt.want {
				require.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				require.NotContains(t, out, w)
			}
			for i, line := range strings.Split(out, "\n") {
				require.Equal(t, tt.width, ansi.StringWidth(line), "line %d: %q", i, line)
			}
		})
	}
}

func TestRenderFormSection_FocusChangesBorderColor(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	focusColor := lipgloss.Color("#54A0FF")
	blurred := RenderFormSection([]string{"row"}, "Filters", "", 30, false, focusColor)
	focused := RenderFormSection([]string{"row"}, "Filters", "", 30, true, focusColor)

	require.NotEqual(t, blurred, focused)
	require.Equal(t, ansi.Strip(blurred), ansi.Strip(focused))
}

func TestTruncateString(t *testing.T) {
	require.Equal(t, "", TruncateString("anything", 0))
	require.Equal(t, "short", TruncateString("short", 10))
	require.Equal(t, "Northwi…", TruncateString("Northwind Labs", 8))
}
