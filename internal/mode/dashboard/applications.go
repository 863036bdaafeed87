package dashboard

import (
	"slices"
	"sort"
	"strings"

	"github.com/applytrack/applytrack/internal/fixtures"
)

// SortField defines which field to sort applications by.
type SortField int

const (
	SortByApplied SortField = iota
	SortByCompany
	SortByStatus
	SortByRole
	numSortFields
)

func (f SortField) String() string {
	switch f {
	case SortByCompany:
		return "company"
	case SortByStatus:
		return "status"
	case SortByRole:
		return "role"
	default:
		return "applied"
	}
}

// SortOrder defines the sort direction.
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// ApplicationList holds the filtered, sorted applications and the cursor.
type ApplicationList struct {
	apps      []fixtures.Application
	sortField SortField
	sortOrder SortOrder
	cursor    int
}

// NewApplicationList sorts newest applications first.
func NewApplicationList() ApplicationList {
	return ApplicationList{sortField: SortByApplied, sortOrder: SortDescending}
}

// SetApplications replaces the list, keeping the cursor on the same
// application when it is still present.
func (l ApplicationList) SetApplications(apps []fixtures.Application) ApplicationList {
	current, hadCurrent := l.Selected()
	l.apps = slices.Clone(apps)
	l.sort()
	l.cursor = 0
	if hadCurrent {
		for i, a := range l.apps {
			if a.ID == current.ID {
				l.cursor = i
				break
			}
		}
	}
	return l
}

// Applications returns the current sorted list.
func (l ApplicationList) Applications() []fixtures.Application {
	return l.apps
}

// Selected returns the application under the cursor.
func (l ApplicationList) Selected() (fixtures.Application, bool) {
	if l.cursor < 0 || l.cursor >= len(l.apps) {
		return fixtures.Application{}, false
	}
	return l.apps[l.cursor], true
}

// Cursor returns the cursor index.
func (l ApplicationList) Cursor() int { return l.cursor }

// SortField returns the active sort field.
func (l ApplicationList) SortField() SortField { return l.sortField }

// SortOrder returns the active sort direction.
func (l ApplicationList) SortOrder() SortOrder { return l.sortOrder }

// ToggleSort flips the order when field is already active, otherwise sorts
// ascending by field.
func (l ApplicationList) ToggleSort(field SortField) ApplicationList {
	if l.sortField == field {
		if l.sortOrder == SortAscending {
			l.sortOrder = SortDescending
		} else {
			l.sortOrder = SortAscending
		}
	} else {
		l.sortField = field
		l.sortOrder = SortAscending
	}
	return l.SetApplications(l.apps)
}

// NextSort cycles to the next sort field.
func (l ApplicationList) NextSort() ApplicationList {
	return l.ToggleSort((l.sortField + 1) % numSortFields)
}

// MoveDown moves the cursor down, wrapping at the end.
func (l ApplicationList) MoveDown() ApplicationList {
	if len(l.apps) > 0 {
		l.cursor = (l.cursor + 1) % len(l.apps)
	}
	return l
}

// MoveUp moves the cursor up, stopping at the top.
func (l ApplicationList) MoveUp() ApplicationList {
	if l.cursor > 0 {
		l.cursor--
	}
	return l
}

func (l *ApplicationList) sort() {
	sort.SliceStable(l.apps, func(i, j int) bool {
		if l.sortOrder == SortDescending {
			return l.less(l.apps[j], l.apps[i])
		}
		return l.less(l.apps[i], l.apps[j])
	})
}

func (l ApplicationList) less(a, b fixtures.Application) bool {
	switch l.sortField {
	case SortByCompany:
		return strings.ToLower(a.Company) < strings.ToLower(b.Company)
	case SortByStatus:
		return statusOrder(a.Status) < statusOrder(b.Status)
	case SortByRole:
		return strings.ToLower(a.Role) < strings.ToLower(b.Role)
	default:
		return a.AppliedAt.Before(b.AppliedAt)
	}
}

// statusOrder puts the furthest-along active applications first, then the
// closed ones.
func statusOrder(status string) int {
	switch status {
	case fixtures.StatusOffer:
		return 0
	case fixtures.StatusInterviewing:
		return 1
	case fixtures.StatusScreening:
		return 2
	case fixtures.StatusApplied:
		return 3
	case fixtures.StatusGhosted:
		return 4
	case fixtures.StatusWithdrawn:
		return 5
	case fixtures.StatusRejected:
		return 6
	default:
		return 7
	}
}

// Count returns the number of applications in the list.
func (l ApplicationList) Count() int { return len(l.apps) }

// IsEmpty reports whether the list is empty.
func (l ApplicationList) IsEmpty() bool { return len(l.apps) == 0 }

// CountByStatus returns counts of the listed applications per status.
func (l ApplicationList) CountByStatus() map[string]int {
	counts := make(map[string]int)
	for _, a := range l.apps {
		counts[a.Status]++
	}
	return counts
}
