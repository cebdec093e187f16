package planner

import "encoding/json"

// SelectionMode decides which endpoint slot an incoming location fills.
type SelectionMode int

const (
	SelectingOrigin SelectionMode = iota
	SelectingDestination
)

func (m SelectionMode) String() string {
	if m == SelectingDestination {
		return "destination"
	}
	return "origin"
}

// MarshalJSON renders the mode by name.
func (m SelectionMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// ParseSelectionMode accepts "origin" or "destination".
func ParseSelectionMode(s string) (SelectionMode, bool) {
	switch s {
	case "origin":
		return SelectingOrigin, true
	case "destination":
		return SelectingDestination, true
	}
	return SelectingOrigin, false
}

// EndpointPicker is the two-state origin/destination toggle of the route search surface.
type EndpointPicker struct {
	mode        SelectionMode
	origin      *Location
	destination *Location
	seq         sequencer
}

// Offer fills the slot of the current mode. Filling the origin switches to destination mode.
// Outstanding lookups no longer apply.
func (p *EndpointPicker) Offer(loc Location) SelectionMode {
	p.seq.issue()
	return p.fill(loc)
}

func (p *EndpointPicker) fill(loc Location) SelectionMode {
	if p.mode == SelectingOrigin {
		p.origin = &loc
		p.mode = SelectingDestination
	} else {
		p.destination = &loc
	}
	return p.mode
}

// Issue starts a lookup whose result will be offered to the picker.
func (p *EndpointPicker) Issue() Ticket {
	return p.seq.issue()
}

// Resolve offers a lookup result unless a newer lookup has been issued since.
func (p *EndpointPicker) Resolve(t Ticket, loc Location) bool {
	if !p.seq.isLatest(t) {
		return false
	}
	p.fill(loc)
	return true
}

// SetMode forces the selection mode.
func (p *EndpointPicker) SetMode(m SelectionMode) {
	p.mode = m
}

// Mode returns the current selection mode
func (p *EndpointPicker) Mode() SelectionMode {
	return p.mode
}

// Swap exchanges origin and destination.
func (p *EndpointPicker) Swap() {
	p.origin, p.destination = p.destination, p.origin
}

// Reset clears both endpoints and returns to origin mode. Outstanding lookups no longer apply.
func (p *EndpointPicker) Reset() {
	p.seq.issue()
	p.origin = nil
	p.destination = nil
	p.mode = SelectingOrigin
}

// Origin returns a copy of the origin, nil when unset.
func (p *EndpointPicker) Origin() *Location {
	return copyLocation(p.origin)
}

// Destination returns a copy of the destination, nil when unset.
func (p *EndpointPicker) Destination() *Location {
	return copyLocation(p.destination)
}
