package form

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func statusGroups() []Group {
	return []Group{
		Options(Option{}), // placeholder row
		Labeled("Active",
			Option{Value: "applied", Text: "Applied"},
			Option{Value: "interviewing", Text: "Interviewing"},
		),
		Labeled("Closed",
			Option{Value: "rejected", Text: "Rejected"},
		),
	}
}

func TestSelect_ImplicitDefaultSkipsPlaceholder(t *testing.T) {
	s := NewSelect("status", statusGroups()...)

	require.Equal(t, -1, s.ExplicitIndex())
	require.Equal(t, 1, s.SelectedIndex(), "placeholder at index 0 is skipped")
	require.Equal(t, "applied", s.Value())
}

func TestSelect_ImplicitDefaultSkipsDisabled(t *testing.T) {
	s := NewSelect("s", Options(
		Option{Value: "a", Text: "A", Disabled: true},
		Option{Value: "b", Text: "B"},
	))
	require.Equal(t, "b", s.Value())
}

func TestSelect_ExplicitSelectionLastWins(t *testing.T) {
	s := NewSelect("s", Options(
		Option{Value: "a", Text: "A", Selected: true},
		Option{Value: "b", Text: "B"},
		Option{Value: "c", Text: "C", Selected: true},
	))

	require.Equal(t, 2, s.ExplicitIndex())
	require.Equal(t, "c", s.Value())

	opts := s.Options()
	require.False(t, opts[0].Selected)
	require.True(t, opts[2].Selected)
}

func TestSelect_Empty(t *testing.T) {
	s := NewSelect("s")
	require.Equal(t, -1, s.SelectedIndex())
	require.Equal(t, "", s.Value())
	_, ok := s.Selected()
	require.False(t, ok)
}

func TestSelect_SetValue(t *testing.T) {
	s := NewSelect("status", statusGroups()...)

	require.True(t, s.SetValue("rejected"))
	require.Equal(t, "rejected", s.Value())
	require.Equal(t, 3, s.ExplicitIndex())

	require.False(t, s.SetValue("missing"), "unknown value is a no-op")
	require.Equal(t, "rejected", s.Value())

	require.False(t, s.SetValue(""), "placeholder cannot be selected by value")
}

func TestSelect_SetOptionsResetsSelection(t *testing.T) {
	s := NewSelect("s", Options(Option{Value: "a", Text: "A", Selected: true}))
	s.SetOptions(Options(Option{Value: "x", Text: "X"}))

	require.Equal(t, -1, s.ExplicitIndex())
	require.Equal(t, "x", s.Value())
}

func TestSelect_GroupsAreCopies(t *testing.T) {
	s := NewSelect("status", statusGroups()...)
	g := s.Groups()
	g[1].Options[0].Text = "mutated"

	require.Equal(t, "Applied", s.Groups()[1].Options[0].Text)
}

func TestSelect_SetHidden(t *testing.T) {
	s := NewSelect("s")
	s.SetHidden(true)
	require.True(t, s.Hidden())
	require.True(t, s.AriaHidden())

	s.SetHidden(false)
	require.False(t, s.Hidden())
	require.False(t, s.AriaHidden())
}

func TestSelect_ChangeListeners(t *testing.T) {
	s := NewSelect("s", Options(Option{Value: "a", Text: "A"}, Option{Value: "b", Text: "B"}))

	var first, second []string
	removeFirst := s.AddChangeListener(func(ev ChangeEvent) {
		require.Same(t, s, ev.Target)
		first = append(first, ev.Value)
	})
	s.AddChangeListener(func(ev ChangeEvent) { second = append(second, ev.Value) })

	s.SetValue("b")
	s.DispatchChange()
	removeFirst()
	s.DispatchChange()

	require.Equal(t, []string{"b"}, first)
	require.Equal(t, []string{"b", "b"}, second)
}

func TestSelect_ListenerRemovingItselfDuringDispatch(t *testing.T) {
	s := NewSelect("s")
	calls := 0
	var remove func()
	remove = s.AddChangeListener(func(ChangeEvent) {
		calls++
		remove()
	})

	s.DispatchChange()
	s.DispatchChange()
	require.Equal(t, 1, calls)
}

func TestSelect_SetSelectedIndex(t *testing.T) {
	s := NewSelect("status", statusGroups()...)

	require.True(t, s.SetSelectedIndex(2))
	require.Equal(t, "interviewing", s.Value())

	require.False(t, s.SetSelectedIndex(0), "placeholder")
	require.False(t, s.SetSelectedIndex(9), "out of range")
	require.Equal(t, "interviewing", s.Value())
}
