package dashboard

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/applytrack/applytrack/internal/fixtures"
)

func newTestFilters(t *testing.T) *FilterState {
	t.Helper()
	ds, err := fixtures.NewLoader(0).Load("")
	require.NoError(t, err)
	f := NewFilterState(ds, "All statuses", 24)
	f.focus(focusStatus)
	return f
}

func TestCriteria_Apply(t *testing.T) {
	ds, err := fixtures.NewLoader(0).Load("")
	require.NoError(t, err)

	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"zero matches everything", Criteria{}, []string{"app-101", "app-102", "app-103", "app-104", "app-105", "app-106", "app-107", "app-108"}},
		{"status", Criteria{Status: "offer"}, []string{"app-103"}},
		{"company", Criteria{Company: "Northwind Labs"}, []string{"app-101", "app-107"}},
		{"status and company", Criteria{Status: "applied", Company: "Northwind Labs"}, []string{"app-107"}},
		{"query is case-insensitive", Criteria{Query: "LUMEN"}, []string{"app-102"}},
		{"query matches role", Criteria{Query: "payments"}, []string{"app-105"}},
		{"query matches tags", Criteria{Query: "robotics"}, []string{"app-108"}},
		{"no match", Criteria{Status: "offer", Query: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ids(tt.c.Apply(ds)))
		})
	}
	require.True(t, Criteria{}.IsZero())
	require.False(t, Criteria{Query: "x"}.IsZero())
}

func TestNewFilterState_FormLayout(t *testing.T) {
	f := newTestFilters(t)

	v := f.Form().Values()
	// Source select reports its implicit default, the hidden input stays
	// empty until something is committed.
	require.Equal(t, []string{"", ""}, v["status"])
	require.Equal(t, []string{"", ""}, v["company"])
	require.Equal(t, []string{""}, v["q"])

	require.True(t, f.Status().Source().Hidden())
	require.Equal(t, "All statuses", f.Status().Label())
	require.Equal(t, "All companies", f.Company().Label())
	require.True(t, f.Criteria().IsZero())
}

func TestFilterState_StatusGroups(t *testing.T) {
	f := newTestFilters(t)

	groups := f.Status().Source().Groups()
	require.Len(t, groups, 3)
	require.Equal(t, "", groups[0].Label)
	require.Equal(t, "Active", groups[1].Label)
	require.Equal(t, "Closed", groups[2].Label)
	require.Equal(t, "Applied", groups[1].Options[0].Text)
}

func TestFilterState_SetCompanies(t *testing.T) {
	f := newTestFilters(t)

	f.Update(tea.KeyMsg{Type: tea.KeyEnter}, focusStatus)
	require.True(t, f.AnyOpen())
	f.CloseAll()
	require.False(t, f.AnyOpen())

	var cmd tea.Cmd
	f.company, cmd = f.company.SetValue("Quarry")
	require.NotNil(t, cmd)
	require.Equal(t, "Quarry", f.Criteria().Company)

	f.SetCompanies([]string{"Acme", "Quarry"})
	require.Equal(t, "Quarry", f.Company().Value())
	require.Equal(t, "Quarry", f.Criteria().Company)

	f.SetCompanies([]string{"Acme"})
	require.Equal(t, "All companies", f.Company().Label())
	require.Equal(t, "", f.Company().HiddenInput().Value())
	require.Equal(t, "", f.Criteria().Company)
}

func TestFilterState_SearchWritesQueryField(t *testing.T) {
	f := newTestFilters(t)
	f.focus(focusSearch)

	for _, r := range " tide " {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, focusSearch)
	}
	require.Equal(t, []string{" tide "}, f.Form().Values()["q"])
	require.Equal(t, "tide", f.Criteria().Query)

	// Keys for the search box never reach the dropdowns.
	require.False(t, f.Status().IsOpen())
}

func TestFilterState_ClearResetsEverything(t *testing.T) {
	f := newTestFilters(t)
	f.status, _ = f.status.SetValue("offer")
	f.company, _ = f.company.SetValue("Quarry")
	f.query.SetValue("staff")
	require.Equal(t, Criteria{Status: "offer", Company: "Quarry", Query: "staff"}, f.Criteria())
	require.Equal(t, 1, f.StatusChangeEvents())

	require.NotNil(t, f.Clear())
	require.True(t, f.Criteria().IsZero())
	require.Equal(t, 2, f.StatusChangeEvents())

	require.Nil(t, f.Clear(), "nothing left to reset")
}

func TestFilterState_FocusMovesBetweenControls(t *testing.T) {
	f := newTestFilters(t)
	require.True(t, f.Status().Focused())

	f.focus(focusCompany)
	require.False(t, f.Status().Focused())
	require.True(t, f.Company().Focused())

	f.focus(focusList)
	require.False(t, f.Company().Focused())
}
