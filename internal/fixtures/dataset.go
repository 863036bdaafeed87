package fixtures

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// Section names accepted by Dataset.Section.
const (
	SectionApplications = "applications"
	SectionContacts     = "contacts"
	SectionTimeline     = "timeline"
	SectionAnalytics    = "analytics"
)

var (
	// ErrUnknownSection is returned by Dataset.Section for names outside Sections.
	ErrUnknownSection = errors.New("unknown fixture section")
	// ErrInvalidFixture wraps validation failures found while loading.
	ErrInvalidFixture = errors.New("invalid fixture")
)

// Sections lists the dataset sections in display order.
func Sections() []string {
	return []string{SectionApplications, SectionContacts, SectionTimeline, SectionAnalytics}
}

// Snapshot is the serializable form of a Dataset.
type Snapshot struct {
	Applications []Application   `json:"applications" yaml:"applications"`
	Contacts     []Contact       `json:"contacts" yaml:"contacts"`
	Timeline     []TimelineEvent `json:"timeline" yaml:"timeline"`
	Analytics    Analytics       `json:"analytics" yaml:"analytics"`
}

// Dataset is the loaded demo data. It is never mutated after Load returns;
// every accessor hands out copies so callers cannot change shared state.
type Dataset struct {
	source string
	data   Snapshot
}

func newDataset(source string, s Snapshot) (*Dataset, error) {
	if err := validate(s); err != nil {
		return nil, err
	}
	sort.SliceStable(s.Timeline, func(i, j int) bool {
		return s.Timeline[i].At.Before(s.Timeline[j].At)
	})
	return &Dataset{source: source, data: s}, nil
}

func validate(s Snapshot) error {
	apps := make(map[string]bool, len(s.Applications))
	for _, a := range s.Applications {
		if a.ID == "" {
			return fmt.Errorf("%w: application without id", ErrInvalidFixture)
		}
		if apps[a.ID] {
			return fmt.Errorf("%w: duplicate application id %q", ErrInvalidFixture, a.ID)
		}
		if !KnownStatus(a.Status) {
			return fmt.Errorf("%w: application %s has unknown status %q", ErrInvalidFixture, a.ID, a.Status)
		}
		apps[a.ID] = true
	}

	contacts := make(map[string]bool, len(s.Contacts))
	for _, c := range s.Contacts {
		if contacts[c.ID] {
			return fmt.Errorf("%w: duplicate contact id %q", ErrInvalidFixture, c.ID)
		}
		contacts[c.ID] = true
	}
	for _, a := range s.Applications {
		for _, id := range a.ContactIDs {
			if !contacts[id] {
				return fmt.Errorf("%w: application %s references unknown contact %q", ErrInvalidFixture, a.ID, id)
			}
		}
	}

	for _, e := range s.Timeline {
		if !apps[e.ApplicationID] {
			return fmt.Errorf("%w: timeline event %s references unknown application %q", ErrInvalidFixture, e.ID, e.ApplicationID)
		}
	}
	return nil
}

// Source describes where the data came from: "embedded" or a directory.
func (d *Dataset) Source() string { return d.source }

// Applications returns every application in fixture order.
func (d *Dataset) Applications() []Application {
	return d.ApplicationsWhere("", "")
}

// ApplicationsWhere filters applications by status and company. Empty
// arguments match everything.
func (d *Dataset) ApplicationsWhere(status, company string) []Application {
	out := make([]Application, 0, len(d.data.Applications))
	for _, a := range d.data.Applications {
		if status != "" && a.Status != status {
			continue
		}
		if company != "" && a.Company != company {
			continue
		}
		out = append(out, a.clone())
	}
	return out
}

// Application looks up one application by id.
func (d *Dataset) Application(id string) (Application, bool) {
	for _, a := range d.data.Applications {
		if a.ID == id {
			return a.clone(), true
		}
	}
	return Application{}, false
}

// Companies returns the distinct company names, sorted.
func (d *Dataset) Companies() []string {
	var out []string
	for _, a := range d.data.Applications {
		if !slices.Contains(out, a.Company) {
			out = append(out, a.Company)
		}
	}
	slices.Sort(out)
	return out
}

// Contacts returns every contact in fixture order.
func (d *Dataset) Contacts() []Contact {
	return slices.Clone(d.data.Contacts)
}

// Contact looks up one contact by id.
func (d *Dataset) Contact(id string) (Contact, bool) {
	for _, c := range d.data.Contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}

// Timeline returns all events, oldest first.
func (d *Dataset) Timeline() []TimelineEvent {
	return slices.Clone(d.data.Timeline)
}

// TimelineFor returns the events of one application, oldest first.
func (d *Dataset) TimelineFor(applicationID string) []TimelineEvent {
	var out []TimelineEvent
	for _, e := range d.data.Timeline {
		if e.ApplicationID == applicationID {
			out = append(out, e)
		}
	}
	return out
}

// Analytics returns the precomputed analytics snapshot.
func (d *Dataset) Analytics() Analytics {
	return d.data.Analytics.clone()
}

// Snapshot returns a deep copy of the whole dataset for serialization.
func (d *Dataset) Snapshot() Snapshot {
	return Snapshot{
		Applications: d.Applications(),
		Contacts:     d.Contacts(),
		Timeline:     d.Timeline(),
		Analytics:    d.Analytics(),
	}
}

// Section returns one named section as a copy.
func (d *Dataset) Section(name string) (any, error) {
	switch name {
	case SectionApplications:
		return d.Applications(), nil
	case SectionContacts:
		return d.Contacts(), nil
	case SectionTimeline:
		return d.Timeline(), nil
	case SectionAnalytics:
		return d.Analytics(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSection, name)
}
