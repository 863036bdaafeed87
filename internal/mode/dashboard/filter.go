package dashboard

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/applytrack/applytrack/internal/fixtures"
	"github.com/applytrack/applytrack/internal/log"
	"github.com/applytrack/applytrack/internal/ui/shared/dropdown"
	"github.com/applytrack/applytrack/internal/ui/shared/form"
	"github.com/applytrack/applytrack/internal/ui/shared/zones"
)

// Form field names, as submitted.
const (
	fieldStatus  = "status"
	fieldCompany = "company"
	fieldQuery   = "q"
)

// Dropdown IDs double as their mouse zone prefixes.
const (
	statusDropdownID  = "filter-status"
	companyDropdownID = "filter-company"
)

const allCompanies = "All companies"

// Criteria is what the filter form submits.
type Criteria struct {
	Status  string
	Company string
	Query   string
}

// IsZero reports whether no filter is applied.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Apply returns the applications matching c, in fixture order.
func (c Criteria) Apply(ds *fixtures.Dataset) []fixtures.Application {
	apps := ds.ApplicationsWhere(c.Status, c.Company)
	q := strings.ToLower(c.Query)
	if q == "" {
		return apps
	}
	out := apps[:0]
	for _, a := range apps {
		if matchesQuery(a, q) {
			out = append(out, a)
		}
	}
	return out
}

func matchesQuery(a fixtures.Application, q string) bool {
	if strings.Contains(strings.ToLower(a.Company), q) || strings.Contains(strings.ToLower(a.Role), q) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// FilterState is the Applications filter form: two dropdowns over source
// selects plus a free-text search, all submitting through one form.
type FilterState struct {
	form    *form.Form
	status  dropdown.Model
	company dropdown.Model
	search  textinput.Model
	query   *form.Hidden

	statusChanges int
}

// NewFilterState builds the form and its controls from ds.
func NewFilterState(ds *fixtures.Dataset, placeholder string, width int) *FilterState {
	f := &FilterState{query: form.NewHidden(fieldQuery, "")}

	statusSrc := form.NewSelect(fieldStatus, statusGroups(placeholder)...)
	companySrc := form.NewSelect(fieldCompany, companyGroups(ds.Companies(), "")...)
	f.form = form.New(statusSrc, companySrc, f.query)

	// Anything else reading the source select keeps working; count them to
	// prove the change event reaches it.
	statusSrc.AddChangeListener(func(ev form.ChangeEvent) {
		f.statusChanges++
		log.Debug(log.CatForm, "status filter changed", "value", ev.Value)
	})

	f.status = dropdown.New(statusSrc, dropdown.Config{
		ID:          statusDropdownID,
		Placeholder: placeholder,
		Width:       width,
	})
	f.company = dropdown.New(companySrc, dropdown.Config{
		ID:    companyDropdownID,
		Width: width,
	})

	ti := textinput.New()
	ti.Placeholder = "Search role, company or tag"
	ti.Prompt = "/ "
	ti.CharLimit = 40
	ti.Width = width
	f.search = ti
	return f
}

// statusGroups lists an "all" option, then statuses grouped by pipeline.
func statusGroups(allLabel string) []form.Group {
	if allLabel == "" {
		allLabel = "All statuses"
	}
	groups := []form.Group{form.Options(form.Option{Value: "", Text: allLabel})}
	for _, g := range fixtures.StatusGroups() {
		opts := make([]form.Option, 0, len(g.Statuses))
		for _, s := range g.Statuses {
			opts = append(opts, form.Option{Value: s, Text: fixtures.StatusTitle(s)})
		}
		groups = append(groups, form.Labeled(g.Label, opts...))
	}
	return groups
}

// companyGroups lists "All companies" then each company, preselecting
// current when it is still present.
func companyGroups(companies []string, current string) []form.Group {
	opts := []form.Option{{Value: "", Text: allCompanies, Selected: current == ""}}
	found := current == ""
	for _, c := range companies {
		sel := c == current
		found = found || sel
		opts = append(opts, form.Option{Value: c, Text: c, Selected: sel})
	}
	if !found {
		opts[0].Selected = true
	}
	return []form.Group{form.Options(opts...)}
}

// Criteria reads the submitted form. The dropdown's hidden input is
// inserted after its source select, so the last value for a name is the
// control's.
func (f *FilterState) Criteria() Criteria {
	v := f.form.Values()
	return Criteria{
		Status:  submitted(v, fieldStatus),
		Company: submitted(v, fieldCompany),
		Query:   strings.TrimSpace(submitted(v, fieldQuery)),
	}
}

func submitted(v url.Values, name string) string {
	vals := v[name]
	if len(vals) == 0 {
		return ""
	}
	return vals[len(vals)-1]
}

// SetCompanies refreshes the company options after a data reload, keeping
// the current choice when the company still exists.
func (f *FilterState) SetCompanies(companies []string) {
	f.company = f.company.UpdateOptions(companyGroups(companies, f.company.Value())...)
}

// Clear resets every field to "all".
func (f *FilterState) Clear() tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if f.status.Value() != "" {
		f.status, cmd = f.status.SetValue("")
		cmds = append(cmds, cmd)
	}
	if f.company.Value() != "" {
		f.company, cmd = f.company.SetValue("")
		cmds = append(cmds, cmd)
	}
	f.search.SetValue("")
	f.query.SetValue("")
	return tea.Batch(cmds...)
}

// AnyOpen reports whether a dropdown popup is showing.
func (f *FilterState) AnyOpen() bool {
	return f.status.IsOpen() || f.company.IsOpen()
}

// CloseAll closes both popups.
func (f *FilterState) CloseAll() {
	f.status = f.status.Close()
	f.company = f.company.Close()
}

// Status exposes the status control.
func (f *FilterState) Status() dropdown.Model { return f.status }

// Company exposes the company control.
func (f *FilterState) Company() dropdown.Model { return f.company }

// Form exposes the underlying form.
func (f *FilterState) Form() *form.Form { return f.form }

// StatusChangeEvents counts change events dispatched on the status source.
func (f *FilterState) StatusChangeEvents() int { return f.statusChanges }

// withInBounds swaps mouse hit-testing on both dropdowns.
func (f *FilterState) withInBounds(fn zones.InBoundsFunc) {
	f.status = f.status.WithInBounds(fn)
	f.company = f.company.WithInBounds(fn)
}

// focus moves keyboard focus to one of the filter controls.
func (f *FilterState) focus(target focusTarget) tea.Cmd {
	f.status.Blur()
	f.company.Blur()
	f.search.Blur()
	switch target {
	case focusStatus:
		f.status.Focus()
	case focusCompany:
		f.company.Focus()
	case focusSearch:
		return f.search.Focus()
	}
	return nil
}

// Update routes a message to the focused control. Mouse presses go to both
// dropdowns so a click outside one closes it.
func (f *FilterState) Update(msg tea.Msg, target focusTarget) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg.(type) {
	case tea.MouseMsg:
		f.status, cmd = f.status.Update(msg)
		cmds = append(cmds, cmd)
		f.company, cmd = f.company.Update(msg)
		cmds = append(cmds, cmd)
		return tea.Batch(cmds...)
	}

	switch target {
	case focusStatus:
		f.status, cmd = f.status.Update(msg)
	case focusCompany:
		f.company, cmd = f.company.Update(msg)
	case focusSearch:
		f.search, cmd = f.search.Update(msg)
		f.query.SetValue(f.search.Value())
	}
	return cmd
}
