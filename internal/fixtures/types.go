package fixtures

import (
	"maps"
	"slices"
	"time"
)

// Application statuses as they appear in the fixtures.
const (
	StatusApplied      = "applied"
	StatusScreening    = "screening"
	StatusInterviewing = "interviewing"
	StatusOffer        = "offer"
	StatusRejected     = "rejected"
	StatusWithdrawn    = "withdrawn"
	StatusGhosted      = "ghosted"
)

// StatusGroup is a labeled set of statuses, used to build grouped filters.
type StatusGroup struct {
	Label    string
	Statuses []string
}

// StatusGroups returns the statuses split into active and closed pipelines.
func StatusGroups() []StatusGroup {
	return []StatusGroup{
		{Label: "Active", Statuses: []string{StatusApplied, StatusScreening, StatusInterviewing, StatusOffer}},
		{Label: "Closed", Statuses: []string{StatusRejected, StatusWithdrawn, StatusGhosted}},
	}
}

// StatusTitle returns the display form of a status.
func StatusTitle(status string) string {
	switch status {
	case StatusApplied:
		return "Applied"
	case StatusScreening:
		return "Screening"
	case StatusInterviewing:
		return "Interviewing"
	case StatusOffer:
		return "Offer"
	case StatusRejected:
		return "Rejected"
	case StatusWithdrawn:
		return "Withdrawn"
	case StatusGhosted:
		return "Ghosted"
	}
	return status
}

// KnownStatus reports whether status belongs to a status group.
func KnownStatus(status string) bool {
	for _, g := range StatusGroups() {
		if slices.Contains(g.Statuses, status) {
			return true
		}
	}
	return false
}

// Application is one tracked job application.
type Application struct {
	ID         string    `json:"id" yaml:"id"`
	Company    string    `json:"company" yaml:"company"`
	Role       string    `json:"role" yaml:"role"`
	Location   string    `json:"location" yaml:"location"`
	Status     string    `json:"status" yaml:"status"`
	Source     string    `json:"source" yaml:"source"`
	Salary     string    `json:"salary,omitempty" yaml:"salary,omitempty"`
	AppliedAt  time.Time `json:"applied_at" yaml:"applied_at"`
	Tags       []string  `json:"tags" yaml:"tags"`
	ContactIDs []string  `json:"contact_ids" yaml:"contact_ids"`
	Notes      string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (a Application) clone() Application {
	a.Tags = slices.Clone(a.Tags)
	a.ContactIDs = slices.Clone(a.ContactIDs)
	return a
}

// Contact is a person in the applicant's network.
type Contact struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Company       string    `json:"company" yaml:"company"`
	Title         string    `json:"title" yaml:"title"`
	Relationship  string    `json:"relationship" yaml:"relationship"`
	Email         string    `json:"email,omitempty" yaml:"email,omitempty"`
	LastContacted time.Time `json:"last_contacted" yaml:"last_contacted"`
}

// TimelineEvent is a dated step in an application's history.
type TimelineEvent struct {
	ID            string    `json:"id" yaml:"id"`
	ApplicationID string    `json:"application_id" yaml:"application_id"`
	At            time.Time `json:"at" yaml:"at"`
	Kind          string    `json:"kind" yaml:"kind"`
	Title         string    `json:"title" yaml:"title"`
	Detail        string    `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// SourceStat counts applications and responses per sourcing channel.
type SourceStat struct {
	Source       string `json:"source" yaml:"source"`
	Applications int    `json:"applications" yaml:"applications"`
	Responses    int    `json:"responses" yaml:"responses"`
}

// WeeklyPoint is the number of applications sent in the week starting Week.
type WeeklyPoint struct {
	Week         string `json:"week" yaml:"week"`
	Applications int    `json:"applications" yaml:"applications"`
}

// Analytics is a precomputed snapshot. Values are literal fixture data.
type Analytics struct {
	GeneratedAt       time.Time      `json:"generated_at" yaml:"generated_at"`
	TotalApplications int            `json:"total_applications" yaml:"total_applications"`
	ResponseRate      float64        `json:"response_rate" yaml:"response_rate"`
	InterviewRate     float64        `json:"interview_rate" yaml:"interview_rate"`
	OfferRate         float64        `json:"offer_rate" yaml:"offer_rate"`
	AvgDaysToResponse float64        `json:"avg_days_to_response" yaml:"avg_days_to_response"`
	ByStatus          map[string]int `json:"by_status" yaml:"by_status"`
	BySource          []SourceStat   `json:"by_source" yaml:"by_source"`
	Weekly            []WeeklyPoint  `json:"weekly" yaml:"weekly"`
}

func (a Analytics) clone() Analytics {
	a.ByStatus = maps.Clone(a.ByStatus)
	a.BySource = slices.Clone(a.BySource)
	a.Weekly = slices.Clone(a.Weekly)
	return a
}
