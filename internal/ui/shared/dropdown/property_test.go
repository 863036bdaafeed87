package dropdown

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/applytrack/applytrack/internal/ui/shared/form"
)

// genSelect draws a select with 0-6 options, some disabled, at most one
// explicitly selected.
func genSelect(t *rapid.T) *form.Select {
	n := rapid.IntRange(0, 6).Draw(t, "numOptions")
	selected := rapid.IntRange(-1, n-1).Draw(t, "selected")
	opts := make([]form.Option, n)
	for i := range opts {
		opts[i] = form.Option{
			Value:    fmt.Sprintf("v%d", i),
			Text:     fmt.Sprintf("Option %d", i),
			Disabled: rapid.IntRange(0, 4).Draw(t, "disabled") == 0,
			Selected: i == selected,
		}
	}
	return form.NewSelect("field", form.Options(opts...))
}

type op int

const (
	opOpen op = iota
	opClose
	opToggle
	opDown
	opUp
	opEnter
	opEsc
	opSetValue
	opClickOutside
	opClickOption
	numOps
)

func apply(t *rapid.T, m Model, o op) Model {
	switch o {
	case opOpen:
		return m.Open()
	case opClose:
		return m.Close()
	case opToggle:
		return m.Toggle()
	case opDown:
		return press(m, keyDown)
	case opUp:
		return press(m, keyUp)
	case opEnter:
		return press(m, keyEnter)
	case opEsc:
		return press(m, keyEsc)
	case opSetValue:
		v := fmt.Sprintf("v%d", rapid.IntRange(0, 7).Draw(t, "setValue"))
		m, _ = m.SetValue(v)
		return m
	case opClickOutside:
		m, _ = click(m, "")
		return m
	case opClickOption:
		m, _ = click(m, m.optionZone(rapid.IntRange(0, 6).Draw(t, "clickOption")))
		return m
	}
	return m
}

func TestProperty_SelectionStaysSynchronized(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src := genSelect(t)
		changes := countChanges(src)
		m := focused(New(src, Config{ID: "p", Placeholder: "pick"}))

		committed := 0
		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for range steps {
			before := *changes
			m = apply(t, m, op(rapid.IntRange(0, int(numOps)-1).Draw(t, "op")))
			if *changes > before {
				committed++
				require.Equal(t, before+1, *changes, "one change event per commit")
			}

			if committed > 0 {
				require.Equal(t, m.Value(), m.HiddenInput().Value())
				require.Equal(t, m.Value(), src.Value())
			}
			selectedCount := 0
			for _, o := range m.Options() {
				if o.Selected {
					selectedCount++
				}
			}
			require.LessOrEqual(t, selectedCount, 1)
		}
	})
}

func TestProperty_OpenCloseNeverChangesSelection(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src := genSelect(t)
		changes := countChanges(src)
		m := focused(New(src, Config{ID: "p"}))
		value, label := m.Value(), m.Label()

		closers := []op{opOpen, opClose, opToggle, opDown, opUp, opEsc, opClickOutside}
		steps := rapid.IntRange(1, 20).Draw(t, "steps")
		for range steps {
			m = apply(t, m, rapid.SampledFrom(closers).Draw(t, "op"))
		}
		m = m.Close()

		require.Equal(t, value, m.Value())
		require.Equal(t, label, m.Label())
		require.Equal(t, 0, *changes)
	})
}

func TestProperty_NavigationIsCyclic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		opts := make([]form.Option, n)
		for i := range opts {
			opts[i] = form.Option{Value: fmt.Sprint(i), Text: fmt.Sprint(i)}
		}
		m := focused(New(form.NewSelect("s", form.Options(opts...)), Config{}))
		m = press(m, keyEnter)
		start := m.Highlighted()

		for range n {
			m = press(m, keyDown)
		}
		require.Equal(t, start, m.Highlighted(), "n downs return to start")

		for range n {
			m = press(m, keyUp)
		}
		require.Equal(t, start, m.Highlighted(), "n ups return to start")
	})
}
