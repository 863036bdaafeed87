package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"

	"github.com/applytrack/applytrack/internal/fixtures"
	"github.com/applytrack/applytrack/internal/ui/styles"
)

const (
	minWidth        = 60
	sideBySideWidth = 120
)

func (m Model) viewWidth() int {
	return max(m.width, minWidth)
}

func (m Model) render() string {
	var body string
	switch m.tab {
	case TabNetwork:
		body = m.renderNetwork()
	case TabTimeline:
		body = m.timeline.View()
	case TabAnalytics:
		body = m.renderAnalytics()
	default:
		body = m.renderApplications()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), "", body, "", m.renderFooter())
}

func (m Model) renderTabs() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(styles.SelectionForegroundColor).Background(styles.SelectionBackgroundColor).Padding(0, 1)
	inactive := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Padding(0, 1)

	parts := []string{styles.TitleStyle.Render("applytrack") + "  "}
	for t := TabApplications; t < numTabs; t++ {
		label := fmt.Sprintf("%d %s", t+1, t)
		style := inactive
		if t == m.tab {
			style = active
		}
		parts = append(parts, zone.Mark(tabZone(t), style.Render(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderFooter() string {
	var lines []string
	if m.statusLine != "" {
		lines = append(lines, styles.StatusBarStyle.Render(m.statusLine))
	}
	var keys help.KeyMap = m.keys
	if m.alert.Visible() {
		keys = m.alert.KeyMap()
	}
	lines = append(lines, m.help.View(keys))
	return strings.Join(lines, "\n")
}

// Applications tab

func (m Model) renderApplications() string {
	width := m.viewWidth()

	searchStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(styles.BorderDefaultColor)
	if m.focus == focusSearch {
		searchStyle = searchStyle.BorderForeground(styles.BorderHighlightFocusColor)
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top,
		m.filters.Status().View(), " ",
		m.filters.Company().View(), " ",
		searchStyle.Render(m.filters.search.View()),
	)
	filterFocused := m.focus == focusStatus || m.focus == focusCompany || m.focus == focusSearch
	section := styles.RenderFormSection(strings.Split(controls, "\n"), "Filters", m.filterHint(), width, filterFocused, styles.BorderHighlightFocusColor)

	listWidth := width
	detailWidth := 0
	if width >= sideBySideWidth {
		detailWidth = width / 2
		listWidth = width - detailWidth - 1
	}
	list := m.renderList(listWidth)
	var content string
	if detailWidth > 0 {
		content = lipgloss.JoinHorizontal(lipgloss.Top, list, " ", m.renderDetail(detailWidth))
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left, list, "", m.renderDetail(width))
	}

	buttons := make([]string, 0, len(m.appButtons))
	for i, b := range m.appButtons {
		buttons = append(buttons, b.View(m.focus == focusRefresh+focusTarget(i)), " ")
	}
	return lipgloss.JoinVertical(lipgloss.Left, section, content, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
}

func (m Model) filterHint() string {
	c := m.filters.Criteria()
	if c.IsZero() {
		return "showing all"
	}
	var parts []string
	if c.Status != "" {
		parts = append(parts, fixtures.StatusTitle(c.Status))
	}
	if c.Company != "" {
		parts = append(parts, c.Company)
	}
	if c.Query != "" {
		parts = append(parts, fmt.Sprintf("%q", c.Query))
	}
	return strings.Join(parts, ", ")
}

func (m Model) renderList(width int) string {
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	header := lipgloss.NewStyle().Bold(true).Foreground(styles.TextSecondaryColor)
	cursor := lipgloss.NewStyle().Foreground(styles.SelectionForegroundColor).Background(styles.SelectionBackgroundColor)

	companyW, statusW, appliedW := 18, 13, 14
	roleW := max(width-companyW-statusW-appliedW-6, 10)

	order := "↑"
	if m.list.SortOrder() == SortDescending {
		order = "↓"
	}
	lines := []string{
		muted.Render(fmt.Sprintf("%d of %d applications, sorted by %s %s",
			m.list.Count(), len(m.data.Applications()), m.list.SortField(), order)),
		header.Render("  " + cell("Company", companyW) + " " + cell("Role", roleW) + " " + cell("Status", statusW) + " " + cell("Applied", appliedW)),
	}
	if m.list.IsEmpty() {
		lines = append(lines, muted.Render("  No applications match these filters"))
	}

	now := m.opts.Now()
	for i, a := range m.list.Applications() {
		row := "  " + cell(a.Company, companyW) + " " + cell(a.Role, roleW) + " " +
			cell(fixtures.StatusTitle(a.Status), statusW) + " " + cell(humanize.RelTime(a.AppliedAt, now, "ago", "from now"), appliedW)
		if i == m.list.Cursor() {
			row = "›" + row[1:]
			if m.focus == focusList {
				row = cursor.Render(row)
			}
		} else {
			row = statusStyle(a.Status).Render(row)
		}
		lines = append(lines, zone.Mark(rowZone(i), row))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDetail(width int) string {
	a, ok := m.list.Selected()
	if !ok {
		return ""
	}
	label := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor)

	lines := []string{
		title.Render(ansi.Truncate(a.Role+" @ "+a.Company, width, "…")),
		label.Render("Status   ") + statusStyle(a.Status).Render(fixtures.StatusTitle(a.Status)),
		label.Render("Location ") + a.Location,
		label.Render("Source   ") + a.Source,
		label.Render("Applied  ") + a.AppliedAt.Format("Jan 2, 2006"),
	}
	if a.Salary != "" {
		lines = append(lines, label.Render("Salary   ")+a.Salary)
	}
	if len(a.Tags) > 0 {
		lines = append(lines, label.Render("Tags     ")+strings.Join(a.Tags, ", "))
	}
	for _, id := range a.ContactIDs {
		if c, ok := m.data.Contact(id); ok {
			lines = append(lines, label.Render("Contact  ")+c.Name+", "+c.Title)
		}
	}
	if events := m.data.TimelineFor(a.ID); len(events) > 0 {
		lines = append(lines, "", label.Render("History"))
		for _, e := range events {
			lines = append(lines, "  "+e.At.Format("Jan 2")+"  "+e.Title)
		}
	}
	if notes := m.notes.Render(a.Notes, width); notes != "" {
		lines = append(lines, "", label.Render("Notes"), notes)
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case fixtures.StatusOffer:
		return lipgloss.NewStyle().Foreground(styles.StatusSuccessColor)
	case fixtures.StatusInterviewing, fixtures.StatusScreening:
		return lipgloss.NewStyle().Foreground(styles.StatusWarningColor)
	case fixtures.StatusRejected, fixtures.StatusGhosted, fixtures.StatusWithdrawn:
		return lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	}
}

// cell truncates or pads s to exactly width cells.
func cell(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// Network tab

func (m Model) renderNetwork() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(styles.TextSecondaryColor)
	cursor := lipgloss.NewStyle().Foreground(styles.SelectionForegroundColor).Background(styles.SelectionBackgroundColor)

	linked := make(map[string]int)
	for _, a := range m.data.Applications() {
		for _, id := range a.ContactIDs {
			linked[id]++
		}
	}

	lines := []string{header.Render("  " + cell("Name", 18) + " " + cell("Title", 24) + " " + cell("Company", 16) + " " +
		cell("Relationship", 16) + " " + cell("Last contact", 14) + " Apps")}
	now := m.opts.Now()
	for i, c := range m.data.Contacts() {
		row := "  " + cell(c.Name, 18) + " " + cell(c.Title, 24) + " " + cell(c.Company, 16) + " " +
			cell(c.Relationship, 16) + " " + cell(humanize.RelTime(c.LastContacted, now, "ago", "from now"), 14) +
			fmt.Sprintf(" %4d", linked[c.ID])
		if i == m.contactCursor {
			row = cursor.Render("›" + row[1:])
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

// Timeline tab

func (m Model) renderTimeline(width int) string {
	kind := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	month := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor)

	events := m.data.Timeline()
	if len(events) == 0 {
		return muted.Render("No events yet")
	}

	now := m.opts.Now()
	var lines []string
	lastMonth := ""
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		if mo := e.At.Format("January 2006"); mo != lastMonth {
			if lastMonth != "" {
				lines = append(lines, "")
			}
			lines = append(lines, month.Render(mo))
			lastMonth = mo
		}
		company := ""
		if a, ok := m.data.Application(e.ApplicationID); ok {
			company = a.Company
		}
		line := fmt.Sprintf("  %s  %s %s  %s", e.At.Format("Jan 02"), kind.Render(cell(e.Kind, 10)), cell(company, 18), e.Title)
		if e.Detail != "" {
			line += muted.Render(" (" + e.Detail + ")")
		}
		line += muted.Render("  " + humanize.RelTime(e.At, now, "ago", "from now"))
		lines = append(lines, ansi.Truncate(line, max(width, 20), "…"))
	}
	return strings.Join(lines, "\n")
}

// Analytics tab

func (m Model) renderAnalytics() string {
	a := m.data.Analytics()
	label := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	value := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor)
	heading := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor)
	bar := lipgloss.NewStyle().Foreground(styles.SelectionBackgroundColor)

	kpi := func(name, v string) string { return label.Render(cell(name, 22)) + value.Render(v) }
	lines := []string{
		heading.Render("Snapshot") + label.Render("  generated "+humanize.RelTime(a.GeneratedAt, m.opts.Now(), "ago", "from now")),
		kpi("Applications", humanize.Comma(int64(a.TotalApplications))),
		kpi("Response rate", percent(a.ResponseRate)),
		kpi("Interview rate", percent(a.InterviewRate)),
		kpi("Offer rate", percent(a.OfferRate)),
		kpi("Avg days to response", humanize.FtoaWithDigits(a.AvgDaysToResponse, 1)),
		"",
		heading.Render("By status"),
	}

	maxCount := 1
	for _, n := range a.ByStatus {
		maxCount = max(maxCount, n)
	}
	for _, g := range fixtures.StatusGroups() {
		for _, s := range g.Statuses {
			n := a.ByStatus[s]
			lines = append(lines, "  "+cell(fixtures.StatusTitle(s), 14)+bar.Render(strings.Repeat("█", n*20/maxCount))+fmt.Sprintf(" %d", n))
		}
	}

	lines = append(lines, "", heading.Render("By source"))
	sources := a.BySource
	sort.SliceStable(sources, func(i, j int) bool { return sources[i].Applications > sources[j].Applications })
	for _, s := range sources {
		rate := 0.0
		if s.Applications > 0 {
			rate = float64(s.Responses) / float64(s.Applications)
		}
		lines = append(lines, fmt.Sprintf("  %s %3d sent %3d replied  %s", cell(s.Source, 14), s.Applications, s.Responses, percent(rate)))
	}

	lines = append(lines, "", heading.Render("Weekly"))
	for _, w := range a.Weekly {
		lines = append(lines, "  "+cell(w.Week, 12)+bar.Render(strings.Repeat("▇", w.Applications)))
	}

	lines = append(lines, "", m.benchmarks.View(true))
	return strings.Join(lines, "\n")
}

func percent(f float64) string {
	return humanize.FtoaWithDigits(f*100, 1) + "%"
}
