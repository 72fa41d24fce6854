// Package contextmenu receives popup menu requests from an application
// frontend and hands them to a native menu facility.
package contextmenu

// MenuItem represents a single entry in a popup menu. Items nest by value, so
// a menu is always a tree.
type MenuItem struct {
	// ID is caller assigned and unique within its own submenu list.
	ID string `json:"id"`

	// Label is the user-visible text.
	Label string `json:"label"`

	// Enabled is optional. Absent means the item is enabled.
	Enabled *bool `json:"enabled,omitempty"`

	// Selected is optional. Absent means the item carries no selection state.
	Selected *bool `json:"selected,omitempty"`

	// SubItems turns the item into a submenu container when non-empty.
	SubItems []MenuItem `json:"subItems,omitempty"`
}

// IsEnabled reports the effective enabled state of the item.
func (m MenuItem) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// Selection returns the checked state and whether the item has one at all.
func (m MenuItem) Selection() (checked bool, ok bool) {
	if m.Selected == nil {
		return false, false
	}
	return *m.Selected, true
}

// IsSubmenu reports whether the item holds nested entries.
func (m MenuItem) IsSubmenu() bool {
	return len(m.SubItems) > 0
}

// Options describes one popup request.
type Options struct {
	Items []MenuItem `json:"items"`
	X     *float64   `json:"x,omitempty"`
	Y     *float64   `json:"y,omitempty"`
}

// Anchor returns the requested coordinates. ok is false unless both x and y
// are present, in which case the menu opens at the pointer position.
func (o Options) Anchor() (x, y float64, ok bool) {
	if o.X == nil || o.Y == nil {
		return 0, 0, false
	}
	return *o.X, *o.Y, true
}

// Walk visits every item depth first in display order. depth is zero for
// top-level items. Returning false from fn skips the item's children.
func (o Options) Walk(fn func(item MenuItem, depth int) bool) {
	walkItems(o.Items, 0, fn)
}

// Count returns the number of items in the tree, submenu entries included.
func (o Options) Count() int {
	n := 0
	o.Walk(func(MenuItem, int) bool {
		n++
		return true
	})
	return n
}

func walkItems(items []MenuItem, depth int, fn func(MenuItem, int) bool) {
	for _, item := range items {
		if !fn(item, depth) {
			continue
		}
		walkItems(item.SubItems, depth+1, fn)
	}
}

// Bool returns a pointer to v for populating optional fields.
func Bool(v bool) *bool {
	return &v
}

// Float returns a pointer to v for populating optional coordinates.
func Float(v float64) *float64 {
	return &v
}
