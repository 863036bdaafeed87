package form

import (
	"github.com/applytrack/applytrack/internal/log"
)

// ChangeEvent is delivered to a Select's listeners after a committed
// selection change.
type ChangeEvent struct {
	Target *Select
	Value  string
}

type listener struct {
	id int
	fn func(ChangeEvent)
}

// Select is a single-selection list: the source element a dropdown control
// replaces. It stays in its form, keeps its value, and notifies listeners on
// change, so code written against it keeps working once a control takes over
// its presentation.
//
// Selection follows native semantics. An option explicitly marked selected
// wins (the last one, if several are marked). Otherwise the select reports
// the first enabled non-placeholder option.
type Select struct {
	name       string
	groups     []Group
	explicit   int // flat index of the explicit selection, -1 if none
	hidden     bool
	ariaHidden bool
	form       *Form

	listeners  []listener
	listenerID int
}

// NewSelect creates a select with the given name and option groups.
func NewSelect(name string, groups ...Group) *Select {
	s := &Select{name: name}
	s.SetOptions(groups...)
	return s
}

// Name returns the field name used for submission.
func (s *Select) Name() string { return s.name }

// Form returns the owning form, or nil.
func (s *Select) Form() *Form { return s.form }

func (s *Select) setForm(f *Form) { s.form = f }

// SetOptions replaces the option set. The explicit selection is re-read
// from the Selected flags of the new options.
func (s *Select) SetOptions(groups ...Group) {
	s.groups = cloneGroups(groups)
	s.explicit = -1
	i := 0
	for gi := range s.groups {
		for oi := range s.groups[gi].Options {
			o := &s.groups[gi].Options[oi]
			if o.Selected && !o.IsPlaceholder() {
				s.explicit = i
			}
			o.Selected = false
			i++
		}
	}
}

// Groups returns a copy of the option groups. Selected flags mark the
// explicit selection only.
func (s *Select) Groups() []Group {
	out := cloneGroups(s.groups)
	i := 0
	for gi := range out {
		for oi := range out[gi].Options {
			out[gi].Options[oi].Selected = i == s.explicit
			i++
		}
	}
	return out
}

// Options returns every option in document order.
func (s *Select) Options() []Option {
	return Flatten(s.Groups())
}

// ExplicitIndex returns the flat index of the explicitly selected option,
// or -1 when the select only has an implicit default.
func (s *Select) ExplicitIndex() int {
	return s.explicit
}

// SelectedIndex returns the flat index of the option the select reports as
// selected, or -1 when no option qualifies.
func (s *Select) SelectedIndex() int {
	if s.explicit >= 0 {
		return s.explicit
	}
	for i, o := range Flatten(s.groups) {
		if o.selectable() {
			return i
		}
	}
	return -1
}

// Selected returns the option the select reports as selected.
func (s *Select) Selected() (Option, bool) {
	idx := s.SelectedIndex()
	if idx < 0 {
		return Option{}, false
	}
	o := Flatten(s.groups)[idx]
	o.Selected = true
	return o, true
}

// Value returns the selected option's value, or "" if none.
func (s *Select) Value() string {
	o, ok := s.Selected()
	if !ok {
		return ""
	}
	return o.Value
}

// SetValue selects the first option with the given value. It reports false
// and leaves the selection alone when no option matches. It does not
// dispatch a change event.
func (s *Select) SetValue(value string) bool {
	for i, o := range Flatten(s.groups) {
		if o.Value == value && !o.IsPlaceholder() {
			s.explicit = i
			return true
		}
	}
	return false
}

// SetSelectedIndex selects the option at flat index i. Out-of-range
// indexes and placeholders are rejected.
func (s *Select) SetSelectedIndex(i int) bool {
	opts := Flatten(s.groups)
	if i < 0 || i >= len(opts) || opts[i].IsPlaceholder() {
		return false
	}
	s.explicit = i
	return true
}

// SetHidden toggles visibility. Hidden selects are also hidden from
// assistive technology.
func (s *Select) SetHidden(hidden bool) {
	s.hidden = hidden
	s.ariaHidden = hidden
}

// Hidden reports whether the select is hidden.
func (s *Select) Hidden() bool { return s.hidden }

// AriaHidden reports whether the select is hidden from assistive technology.
func (s *Select) AriaHidden() bool { return s.ariaHidden }

// AddChangeListener registers fn for change events and returns a function
// that removes it.
func (s *Select) AddChangeListener(fn func(ChangeEvent)) (remove func()) {
	s.listenerID++
	id := s.listenerID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// DispatchChange notifies every listener of the current value.
func (s *Select) DispatchChange() {
	ev := ChangeEvent{Target: s, Value: s.Value()}
	log.Debug(log.CatForm, "change dispatched", "name", s.name, "value", ev.Value, "listeners", len(s.listeners))
	for _, l := range append([]listener(nil), s.listeners...) {
		l.fn(ev)
	}
}
