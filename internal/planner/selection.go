package planner

// PlaceSelection holds the most recently selected location that is not yet on the itinerary.
type PlaceSelection struct {
	pending *Location
	seq     sequencer
}

// Set replaces the pending location. Outstanding lookups no longer apply.
func (p *PlaceSelection) Set(loc Location) {
	p.seq.issue()
	p.pending = &loc
}

// Clear empties the pending slot. Outstanding lookups no longer apply.
func (p *PlaceSelection) Clear() {
	p.seq.issue()
	p.pending = nil
}

// Pending returns the pending location, if any.
func (p *PlaceSelection) Pending() (Location, bool) {
	if p.pending == nil {
		return Location{}, false
	}
	return *p.pending, true
}

// Issue starts a lookup whose result should land in the pending slot.
func (p *PlaceSelection) Issue() Ticket {
	return p.seq.issue()
}

// Resolve applies a lookup result unless a newer lookup has been issued since.
func (p *PlaceSelection) Resolve(t Ticket, loc Location) bool {
	if !p.seq.isLatest(t) {
		return false
	}
	p.pending = &loc
	return true
}

// TravelPlaces is the ordered list of places of interest for the trip. Duplicates are allowed.
type TravelPlaces struct {
	items []Location
}

// Add appends a location.
func (t *TravelPlaces) Add(loc Location) {
	t.items = append(t.items, loc)
}

// RemoveAt deletes the entry at index i. Out of range indexes are ignored.
func (t *TravelPlaces) RemoveAt(i int) bool {
	if i < 0 || i >= len(t.items) {
		return false
	}
	t.items = append(t.items[:i], t.items[i+1:]...)
	return true
}

// Clear empties the list.
func (t *TravelPlaces) Clear() {
	t.items = nil
}

// Len returns the number of entries
func (t *TravelPlaces) Len() int {
	return len(t.items)
}

// At returns the entry at index i.
func (t *TravelPlaces) At(i int) (Location, bool) {
	if i < 0 || i >= len(t.items) {
		return Location{}, false
	}
	return t.items[i], true
}

// List returns a copy of the entries.
func (t *TravelPlaces) List() []Location {
	out := make([]Location, len(t.items))
	copy(out, t.items)
	return out
}
