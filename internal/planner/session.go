package planner

import (
	"sync"
	"time"
)

// State groups the stores of one planning session.
type State struct {
	Itinerary *Itinerary
	Pending   *PlaceSelection
	Route     *RouteBridge
	Places    *TravelPlaces
	Picker    *EndpointPicker
}

// AddPendingDraft starts a draft from the pending location.
func (st *State) AddPendingDraft() (PlaceDraft, error) {
	loc, ok := st.Pending.Pending()
	if !ok {
		return PlaceDraft{}, invalid("pending", ErrNoPending)
	}
	return st.Itinerary.BeginAddPlace(loc)
}

// SelectRoute selects a search result between the picked origin and destination.
func (st *State) SelectRoute(index int) (RouteSelection, error) {
	return st.Route.SelectCandidate(st.Picker.Origin(), st.Picker.Destination(), index)
}

// OfferEndpoint fills the current picker slot and drops results searched for the old endpoints.
func (st *State) OfferEndpoint(loc Location) SelectionMode {
	st.Route.ClearCandidates()
	return st.Picker.Offer(loc)
}

// ResolveEndpoint applies a picker lookup result. Applied results drop the old search results.
func (st *State) ResolveEndpoint(t Ticket, loc Location) bool {
	if !st.Picker.Resolve(t, loc) {
		return false
	}
	st.Route.ClearCandidates()
	return true
}

// SwapEndpoints exchanges origin and destination and drops results searched the other way.
func (st *State) SwapEndpoints() {
	st.Picker.Swap()
	st.Route.ClearCandidates()
}

// ResetEndpoints clears the picker and the search results it produced.
func (st *State) ResetEndpoints() {
	st.Picker.Reset()
	st.Route.ClearCandidates()
}

// Snapshot is a read-only copy of a session for presentation surfaces.
type Snapshot struct {
	ID          string           `json:"id"`
	CreatedAt   time.Time        `json:"createdAt"`
	Days        []DayPlan        `json:"days"`
	CurrentDay  int              `json:"currentDay"`
	Pending     *Location        `json:"pending"`
	Route       *RouteSelection  `json:"route"`
	Candidates  []RouteCandidate `json:"candidates"`
	Places      []Location       `json:"places"`
	Mode        SelectionMode    `json:"mode"`
	Origin      *Location        `json:"origin"`
	Destination *Location        `json:"destination"`
}

// Session is the injectable state container of one planning session.
// Every operation runs under the session lock and completes before the next starts.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	state      *State
	lastAccess time.Time
	now        func() time.Time
}

// NewSession creates an empty session
func NewSession(id string, opts ...ItineraryOption) *Session {
	it := NewItinerary(opts...)
	places := &TravelPlaces{}

	s := &Session{
		ID: id,
		state: &State{
			Itinerary: it,
			Pending:   &PlaceSelection{},
			Route:     NewRouteBridge(places),
			Places:    places,
			Picker:    &EndpointPicker{},
		},
		now: it.now,
	}
	s.CreatedAt = s.now()
	s.lastAccess = s.CreatedAt
	return s
}

// Update runs fn with exclusive access to the session state.
func (s *Session) Update(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAccess = s.now()
	return fn(s.state)
}

// View runs fn with exclusive access for reading.
func (s *Session) View(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAccess = s.now()
	fn(s.state)
}

// LastAccess returns the time of the latest Update or View.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// Snapshot copies every read accessor of the session.
func (s *Session) Snapshot() Snapshot {
	var snap Snapshot
	s.View(func(st *State) {
		snap = Snapshot{
			ID:          s.ID,
			CreatedAt:   s.CreatedAt,
			Days:        st.Itinerary.Days(),
			CurrentDay:  st.Itinerary.CurrentDay(),
			Candidates:  st.Route.Candidates(),
			Places:      st.Places.List(),
			Mode:        st.Picker.Mode(),
			Origin:      st.Picker.Origin(),
			Destination: st.Picker.Destination(),
		}
		if loc, ok := st.Pending.Pending(); ok {
			snap.Pending = &loc
		}
		if sel, ok := st.Route.Selected(); ok {
			snap.Route = &sel
		}
	})
	return snap
}
