package planner

// Vehicle types reported by the transit provider
const (
	VehicleBus       = "BUS"
	VehicleSubway    = "SUBWAY"
	VehicleTrain     = "TRAIN"
	VehicleLightRail = "LIGHT_RAIL"
)

// TravelModeTransit marks a step ridden on public transport.
const TravelModeTransit = "TRANSIT"

// TransitLine describes the line a transit step rides on.
type TransitLine struct {
	Name        string `json:"name"`
	VehicleType string `json:"vehicleType,omitempty"`
}

// RouteStep is one step of a route leg.
type RouteStep struct {
	TravelMode     string       `json:"travelMode"`
	Transit        *TransitLine `json:"transitLine,omitempty"`
	StaticDuration string       `json:"staticDuration"` // provider duration, e.g. "540s"
	DistanceMeters int          `json:"distanceMeters"`
}

// RouteLeg is one leg of a candidate route.
type RouteLeg struct {
	DurationSeconds int         `json:"durationSeconds"`
	DistanceMeters  int         `json:"distanceMeters"`
	Steps           []RouteStep `json:"steps"`
}

// RouteCandidate is one route offered by the transit provider.
type RouteCandidate struct {
	Description     string     `json:"description"`
	TotalDuration   int        `json:"totalDuration"` // minutes
	TotalPrice      int        `json:"totalPrice"`
	DistanceMeters  int        `json:"distanceMeters"`
	EncodedPolyline string     `json:"polyline,omitempty"`
	Legs            []RouteLeg `json:"legs"`
}

// RouteSelection is the route chosen for the trip. Only the steps of leg zero are kept:
// itineraries are single-leg.
type RouteSelection struct {
	Origin        Location    `json:"origin"`
	Destination   Location    `json:"destination"`
	Description   string      `json:"description"`
	TotalDuration int         `json:"totalDuration"`
	TotalPrice    int         `json:"totalPrice"`
	Polyline      string      `json:"polyline,omitempty"`
	Steps         []RouteStep `json:"steps"`
}

// RouteBridge owns the single selected route slot and the latest search results.
type RouteBridge struct {
	selected   *RouteSelection
	candidates []RouteCandidate
	places     *TravelPlaces
	seq        sequencer
}

// NewRouteBridge creates a bridge that records selected endpoints in places.
func NewRouteBridge(places *TravelPlaces) *RouteBridge {
	return &RouteBridge{places: places}
}

// Select stores a route built from candidate and appends origin then destination to the
// travel places. Any previous selection is replaced.
func (b *RouteBridge) Select(origin, destination *Location, candidate RouteCandidate) (RouteSelection, error) {
	if origin == nil {
		return RouteSelection{}, invalid("origin", ErrOriginRequired)
	}
	if destination == nil {
		return RouteSelection{}, invalid("destination", ErrDestinationRequired)
	}

	var steps []RouteStep
	if len(candidate.Legs) > 0 {
		steps = copySteps(candidate.Legs[0].Steps)
	}

	sel := &RouteSelection{
		Origin:        *origin,
		Destination:   *destination,
		Description:   candidate.Description,
		TotalDuration: candidate.TotalDuration,
		TotalPrice:    candidate.TotalPrice,
		Polyline:      candidate.EncodedPolyline,
		Steps:         steps,
	}
	b.selected = sel

	if b.places != nil {
		b.places.Add(*origin)
		b.places.Add(*destination)
	}

	return sel.copy(), nil
}

// SelectCandidate selects the search result at index.
func (b *RouteBridge) SelectCandidate(origin, destination *Location, index int) (RouteSelection, error) {
	if index < 0 || index >= len(b.candidates) {
		return RouteSelection{}, invalid("candidate", ErrCandidateNotFound)
	}
	return b.Select(origin, destination, b.candidates[index])
}

// Clear empties the selected route. Travel places are left as they are.
func (b *RouteBridge) Clear() {
	b.selected = nil
}

// Selected returns the current route, if any.
func (b *RouteBridge) Selected() (RouteSelection, bool) {
	if b.selected == nil {
		return RouteSelection{}, false
	}
	return b.selected.copy(), true
}

// IssueSearch starts a route search.
func (b *RouteBridge) IssueSearch() Ticket {
	return b.seq.issue()
}

// ResolveSearch stores search results unless a newer search has been issued since.
func (b *RouteBridge) ResolveSearch(t Ticket, candidates []RouteCandidate) bool {
	if !b.seq.isLatest(t) {
		return false
	}
	b.candidates = candidates
	return true
}

// Candidates returns the latest search results.
func (b *RouteBridge) Candidates() []RouteCandidate {
	out := make([]RouteCandidate, len(b.candidates))
	copy(out, b.candidates)
	return out
}

// ClearCandidates drops the search results.
func (b *RouteBridge) ClearCandidates() {
	b.candidates = nil
}

func (s *RouteSelection) copy() RouteSelection {
	c := *s
	c.Steps = copySteps(s.Steps)
	return c
}

func copySteps(steps []RouteStep) []RouteStep {
	if steps == nil {
		return nil
	}
	out := make([]RouteStep, len(steps))
	for i, st := range steps {
		out[i] = st
		if st.Transit != nil {
			line := *st.Transit
			out[i].Transit = &line
		}
	}
	return out
}
