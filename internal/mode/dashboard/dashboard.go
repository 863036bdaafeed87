// Package dashboard implements the read-only job-application dashboard:
// a filterable application list with details, the network of contacts, a
// timeline of events and the precomputed analytics snapshot.
package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/applytrack/applytrack/internal/fixtures"
	"github.com/applytrack/applytrack/internal/log"
	"github.com/applytrack/applytrack/internal/ui/shared/dropdown"
	"github.com/applytrack/applytrack/internal/ui/shared/logoverlay"
	"github.com/applytrack/applytrack/internal/ui/shared/overlay"
	"github.com/applytrack/applytrack/internal/ui/shared/upgradegate"
	"github.com/applytrack/applytrack/internal/ui/shared/zones"
)

// Tab identifies a dashboard page.
type Tab int

const (
	TabApplications Tab = iota
	TabNetwork
	TabTimeline
	TabAnalytics
	numTabs
)

func (t Tab) String() string {
	switch t {
	case TabNetwork:
		return "Network"
	case TabTimeline:
		return "Timeline"
	case TabAnalytics:
		return "Analytics"
	default:
		return "Applications"
	}
}

func tabZone(t Tab) string { return fmt.Sprintf("tab:%d", t) }

// focusTarget is a control on the Applications tab that can hold focus.
type focusTarget int

const (
	focusStatus focusTarget = iota
	focusCompany
	focusSearch
	focusList
	focusRefresh
	focusExport
	focusInsights
	numFocusTargets
)

// Button IDs.
const (
	buttonRefresh    = "refresh"
	buttonExport     = "export-csv"
	buttonInsights   = "ai-insights"
	buttonBenchmarks = "benchmarks"
)

// FixturesReloadedMsg carries the result of a reload, from the refresh
// button or the fixtures watcher.
type FixturesReloadedMsg struct {
	Dataset *fixtures.Dataset
	Err     error
}

// Loader is the part of fixtures.Loader the dashboard uses.
type Loader interface {
	Load(dir string) (*fixtures.Dataset, error)
	Invalidate(dir string)
}

// Options configures a dashboard.
type Options struct {
	// Placeholder labels the status filter while nothing is chosen.
	Placeholder string
	// DropdownWidth sizes both filter dropdowns.
	DropdownWidth int
	// Loader and FixturesDir back the refresh button. Without a loader the
	// button reports that reloading is unavailable.
	Loader      Loader
	FixturesDir string
	// Now anchors relative times. Defaults to time.Now.
	Now func() time.Time
	// InBounds replaces bubblezone hit-testing.
	InBounds zones.InBoundsFunc
}

// Model is the dashboard state.
type Model struct {
	keys KeyMap
	help help.Model
	opts Options

	data    *fixtures.Dataset
	tab     Tab
	focus   focusTarget
	filters *FilterState
	list    ApplicationList

	contactCursor int
	timeline      viewport.Model

	appButtons []upgradegate.Button
	benchmarks upgradegate.Button
	alert      upgradegate.Alert
	logs       logoverlay.Model
	notes      *notesRenderer

	statusLine string
	width      int
	height     int
}

// New builds the dashboard over ds.
func New(ds *fixtures.Dataset, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.InBounds == nil {
		opts.InBounds = zones.InBounds
	}
	if opts.DropdownWidth <= 0 {
		opts.DropdownWidth = 26
	}

	filters := NewFilterState(ds, opts.Placeholder, opts.DropdownWidth)
	filters.withInBounds(opts.InBounds)

	m := Model{
		keys:    DefaultKeyMap(),
		help:    help.New(),
		opts:    opts,
		data:    ds,
		filters: filters,
		list:    NewApplicationList(),
		appButtons: []upgradegate.Button{
			{ID: buttonRefresh, Label: "Refresh"},
			{ID: buttonExport, Label: "Export CSV", Feature: "CSV export", RequiresUpgrade: true},
			{ID: buttonInsights, Label: "AI insights", Feature: "AI insights", RequiresUpgrade: true},
		},
		benchmarks: upgradegate.Button{ID: buttonBenchmarks, Label: "Salary benchmarks", Feature: "Salary benchmarks", RequiresUpgrade: true},
		alert:      upgradegate.NewAlert(),
		logs:       logoverlay.New(),
		notes:      newNotesRenderer(),
		timeline:   viewport.New(80, 20),
	}
	m.filters.focus(focusStatus)
	m.applyFilters()
	m.refreshTimeline()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Tab returns the active tab.
func (m Model) Tab() Tab { return m.tab }

// Filters exposes the filter form.
func (m Model) Filters() *FilterState { return m.filters }

// Applications returns the listed applications in display order.
func (m Model) Applications() []fixtures.Application { return m.list.Applications() }

// AlertVisible reports whether the upgrade alert is showing.
func (m Model) AlertVisible() bool { return m.alert.Visible() }

// StatusLine returns the last status message.
func (m Model) StatusLine() string { return m.statusLine }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.logs.SetSize(msg.Width, msg.Height)
		m.timeline.Width = max(msg.Width-4, 20)
		m.timeline.Height = max(msg.Height-8, 5)
		m.refreshTimeline()
		return m, nil

	case FixturesReloadedMsg:
		return m.applyReload(msg), nil

	case dropdown.ChangeMsg:
		m.applyFilters()
		log.Debug(log.CatMode, "filter applied", "control", msg.ID, "value", msg.Value, "matches", m.list.Count())
		return m, nil

	case upgradegate.AlertMsg:
		m.filters.CloseAll()
		m.alert = m.alert.Show(msg)
		return m, nil

	case upgradegate.PressMsg:
		return m.handlePress(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.alert.Visible() {
		m.alert, cmd = m.alert.Update(msg)
		return m, cmd
	}
	if m.logs.Visible() {
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}
	if key.Matches(msg, m.keys.Logs) {
		m.logs.Toggle()
		return m, nil
	}

	if m.tab == TabApplications {
		if handled, next, cmd := m.handleFilterKey(msg); handled {
			return next, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Applications):
		m.tab = TabApplications
	case key.Matches(msg, m.keys.Network):
		m.tab = TabNetwork
	case key.Matches(msg, m.keys.Timeline):
		m.tab = TabTimeline
	case key.Matches(msg, m.keys.Analytics):
		m.tab = TabAnalytics
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCmd()
	default:
		return m.handleTabKey(msg)
	}
	return m, nil
}

// handleFilterKey gives the Applications controls first claim on keys.
func (m Model) handleFilterKey(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextFocus):
		m.filters.CloseAll()
		return true, m, m.setFocus((m.focus + 1) % numFocusTargets)
	case key.Matches(msg, m.keys.PrevFocus):
		m.filters.CloseAll()
		return true, m, m.setFocus((m.focus + numFocusTargets - 1) % numFocusTargets)
	case key.Matches(msg, m.keys.ClearFilters):
		cmd := m.filters.Clear()
		m.applyFilters()
		return true, m, cmd
	}

	switch m.focus {
	case focusSearch:
		if key.Matches(msg, m.keys.Blur) || msg.Type == tea.KeyEnter {
			return true, m, m.setFocus(focusList)
		}
		cmd := m.filters.Update(msg, focusSearch)
		m.applyFilters()
		return true, m, cmd

	case focusStatus, focusCompany:
		// An open popup owns navigation keys; a closed one only claims its
		// open keys.
		dd := m.filters.Status()
		if m.focus == focusCompany {
			dd = m.filters.Company()
		}
		if dd.IsOpen() || key.Matches(msg, dd.KeyMap.Open) {
			return true, m, m.filters.Update(msg, m.focus)
		}

	case focusList:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.list = m.list.MoveUp()
			return true, m, nil
		case key.Matches(msg, m.keys.Down):
			m.list = m.list.MoveDown()
			return true, m, nil
		case key.Matches(msg, m.keys.Sort):
			m.list = m.list.NextSort()
			return true, m, nil
		}

	case focusRefresh, focusExport, focusInsights:
		if key.Matches(msg, m.keys.Activate) {
			return true, m, m.appButtons[m.focus-focusRefresh].Activate()
		}
	}
	return false, m, nil
}

func (m Model) handleTabKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.tab {
	case TabNetwork:
		n := len(m.data.Contacts())
		switch {
		case key.Matches(msg, m.keys.Down) && n > 0:
			m.contactCursor = (m.contactCursor + 1) % n
		case key.Matches(msg, m.keys.Up) && m.contactCursor > 0:
			m.contactCursor--
		}
	case TabTimeline:
		m.timeline, cmd = m.timeline.Update(msg)
	case TabAnalytics:
		if key.Matches(msg, m.keys.Activate) {
			cmd = m.benchmarks.Activate()
		}
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.alert.Visible() {
		m.alert, cmd = m.alert.Update(msg)
		return m, cmd
	}
	if m.logs.Visible() {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		if m.tab == TabTimeline {
			m.timeline, cmd = m.timeline.Update(msg)
		}
		return m, cmd
	}

	for t := TabApplications; t < numTabs; t++ {
		if m.opts.InBounds(tabZone(t), msg) {
			m.filters.CloseAll()
			m.tab = t
			return m, nil
		}
	}

	switch m.tab {
	case TabApplications:
		if cmd := upgradegate.Intercept(m.appButtons, msg, m.opts.InBounds); cmd != nil {
			m.filters.CloseAll()
			return m, cmd
		}
		wasOpen := m.filters.AnyOpen()
		cmd = m.filters.Update(msg, m.focus)
		if wasOpen || m.filters.AnyOpen() {
			return m, cmd
		}
		for i := range m.list.Applications() {
			if m.opts.InBounds(rowZone(i), msg) {
				for m.list.Cursor() != i {
					m.list = m.list.MoveDown()
				}
				return m, m.setFocus(focusList)
			}
		}
		return m, cmd
	case TabAnalytics:
		return m, upgradegate.Intercept([]upgradegate.Button{m.benchmarks}, msg, m.opts.InBounds)
	}
	return m, nil
}

func rowZone(i int) string { return fmt.Sprintf("app:%d", i) }

func (m *Model) setFocus(target focusTarget) tea.Cmd {
	m.focus = target
	return m.filters.focus(target)
}

func (m Model) handlePress(msg upgradegate.PressMsg) (tea.Model, tea.Cmd) {
	if msg.ID == buttonRefresh {
		return m, m.reloadCmd()
	}
	return m, nil
}

func (m Model) reloadCmd() tea.Cmd {
	loader, dir := m.opts.Loader, m.opts.FixturesDir
	if loader == nil {
		return func() tea.Msg {
			return FixturesReloadedMsg{Err: fmt.Errorf("reloading is not configured")}
		}
	}
	return func() tea.Msg {
		loader.Invalidate(dir)
		ds, err := loader.Load(dir)
		return FixturesReloadedMsg{Dataset: ds, Err: err}
	}
}

func (m Model) applyReload(msg FixturesReloadedMsg) Model {
	if msg.Err != nil {
		log.ErrorErr(log.CatMode, "fixtures reload failed", msg.Err)
		m.statusLine = "Reload failed: " + msg.Err.Error()
		return m
	}
	if msg.Dataset == nil {
		return m
	}
	m.data = msg.Dataset
	m.notes = newNotesRenderer()
	m.filters.SetCompanies(m.data.Companies())
	m.applyFilters()
	m.contactCursor = min(m.contactCursor, max(len(m.data.Contacts())-1, 0))
	m.refreshTimeline()
	m.statusLine = fmt.Sprintf("Reloaded %d applications", len(m.data.Applications()))
	log.Info(log.CatMode, "fixtures reloaded", "source", m.data.Source())
	return m
}

func (m *Model) applyFilters() {
	m.list = m.list.SetApplications(m.filters.Criteria().Apply(m.data))
}

func (m *Model) refreshTimeline() {
	m.timeline.SetContent(m.renderTimeline(m.timeline.Width))
}

// View implements tea.Model.
func (m Model) View() string {
	view := m.render()
	if m.alert.Visible() {
		view = overlay.Place(overlay.Config{
			Width:    max(m.width, 60),
			Height:   max(m.height, 12),
			Position: overlay.Center,
		}, m.alert.View(), view)
	}
	view = m.logs.Overlay(view)
	return zone.Scan(view)
}
