// Package form models the pieces of an HTML form the dashboard controls sit
// on: single-selection lists, their options and groups, hidden inputs, and
// the form that collects submitted values.
package form

// Option is one selectable (value, text) pair.
type Option struct {
	Value    string
	Text     string
	Selected bool
	Disabled bool
}

// IsPlaceholder reports whether the option carries neither a value nor a
// label. Such entries exist only to pad a list and are never selectable.
func (o Option) IsPlaceholder() bool {
	return o.Value == "" && o.Text == ""
}

// selectable reports whether the option may become the implicit default.
func (o Option) selectable() bool {
	return !o.Disabled && !o.IsPlaceholder()
}

// Group is a labeled run of options. An empty label marks a run of
// top-level options, which lets a []Group keep the order of mixed
// option/optgroup children.
type Group struct {
	Label   string
	Options []Option
}

// Grouped reports whether the group carries a visible label.
func (g Group) Grouped() bool {
	return g.Label != ""
}

// Options wraps top-level options into an unlabeled group.
func Options(opts ...Option) Group {
	return Group{Options: opts}
}

// Labeled builds a labeled group.
func Labeled(label string, opts ...Option) Group {
	return Group{Label: label, Options: opts}
}

// Flatten returns every option across groups in document order.
func Flatten(groups []Group) []Option {
	var out []Option
	for _, g := range groups {
		out = append(out, g.Options...)
	}
	return out
}

func cloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{Label: g.Label, Options: append([]Option(nil), g.Options...)}
	}
	return out
}
