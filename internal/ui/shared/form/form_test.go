package form

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForm_Values(t *testing.T) {
	sel := NewSelect("status", Options(Option{Value: "a", Text: "A"}))
	f := New(
		sel,
		NewHidden("token", "t-1"),
		NewHidden("", "ignored"),
	)

	v := f.Values()
	require.Equal(t, "a", v.Get("status"))
	require.Equal(t, "t-1", v.Get("token"))
	require.Len(t, v, 2, "unnamed fields are not submitted")
	require.Same(t, f, sel.Form())
}

func TestForm_InsertAfter(t *testing.T) {
	a := NewHidden("a", "1")
	b := NewHidden("b", "2")
	f := New(a, b)

	c := NewHidden("c", "3")
	f.InsertAfter(a, c)

	require.Equal(t, []Field{a, c, b}, f.Fields())
	require.Same(t, f, c.Form())

	d := NewHidden("d", "4")
	f.InsertAfter(NewHidden("stranger", ""), d)
	require.Equal(t, []Field{a, c, b, d}, f.Fields(), "unknown anchor appends")
}

func TestForm_Remove(t *testing.T) {
	a := NewHidden("a", "1")
	f := New(a)

	require.True(t, f.Remove(a))
	require.Nil(t, a.Form())
	require.Empty(t, f.Fields())
	require.False(t, f.Remove(a))
}

func TestForm_RepeatedNamesKeepOrder(t *testing.T) {
	f := New(NewHidden("tag", "x"), NewHidden("tag", "y"))
	require.Equal(t, []string{"x", "y"}, f.Values()["tag"])
}
