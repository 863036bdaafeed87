// Package zones holds the mouse hit-testing shared by clickable components.
//
// Components mark their regions with bubblezone and resolve presses through
// an InBoundsFunc, so tests can swap in a fake hit-test.
package zones

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// InBoundsFunc reports whether a mouse event falls inside the zone with the
// given ID.
type InBoundsFunc func(zoneID string, msg tea.MouseMsg) bool

// InBounds resolves zones through the global bubblezone manager. The
// top-level View must pass its output through zone.Scan.
func InBounds(zoneID string, msg tea.MouseMsg) bool {
	z := zone.Get(zoneID)
	if z == nil {
		return false
	}
	return z.InBounds(msg)
}
