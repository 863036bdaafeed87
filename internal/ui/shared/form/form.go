package form

import (
	"net/url"
	"slices"
)

// Field is anything a Form can submit.
type Field interface {
	Name() string
	Value() string
}

type ownedField interface {
	setForm(*Form)
}

// Hidden is a hidden input. Dropdown controls use it to mirror their
// selection for submission.
type Hidden struct {
	name  string
	value string
	form  *Form
}

// NewHidden creates a hidden input.
func NewHidden(name, value string) *Hidden {
	return &Hidden{name: name, value: value}
}

func (h *Hidden) Name() string          { return h.name }
func (h *Hidden) Value() string         { return h.value }
func (h *Hidden) SetValue(value string) { h.value = value }
func (h *Hidden) Form() *Form           { return h.form }
func (h *Hidden) setForm(f *Form)       { h.form = f }

// Form is an ordered collection of fields.
type Form struct {
	fields []Field
}

// New creates a form holding fields in order.
func New(fields ...Field) *Form {
	f := &Form{}
	for _, field := range fields {
		f.Add(field)
	}
	return f
}

// Add appends a field.
func (f *Form) Add(field Field) {
	f.fields = append(f.fields, field)
	if o, ok := field.(ownedField); ok {
		o.setForm(f)
	}
}

// InsertAfter places field right after anchor, or at the end when anchor is
// not part of the form.
func (f *Form) InsertAfter(anchor, field Field) {
	idx := slices.Index(f.fields, anchor)
	if idx < 0 {
		f.Add(field)
		return
	}
	f.fields = slices.Insert(f.fields, idx+1, field)
	if o, ok := field.(ownedField); ok {
		o.setForm(f)
	}
}

// Remove detaches field. It reports whether the field was present.
func (f *Form) Remove(field Field) bool {
	idx := slices.Index(f.fields, field)
	if idx < 0 {
		return false
	}
	f.fields = slices.Delete(f.fields, idx, idx+1)
	if o, ok := field.(ownedField); ok {
		o.setForm(nil)
	}
	return true
}

// Fields returns the fields in order.
func (f *Form) Fields() []Field {
	return slices.Clone(f.fields)
}

// Values collects name/value pairs the way a browser submits a form:
// unnamed fields are skipped and repeated names keep every value in order.
func (f *Form) Values() url.Values {
	v := url.Values{}
	for _, field := range f.fields {
		if field.Name() == "" {
			continue
		}
		v.Add(field.Name(), field.Value())
	}
	return v
}
