package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jengzang/tour-planner-go/internal/planner"
	"github.com/jengzang/tour-planner-go/internal/pricing"
	"github.com/jengzang/tour-planner-go/internal/provider/googleroutes"
	"github.com/jengzang/tour-planner-go/internal/spatial"
	"go.uber.org/zap"
)

// Geocoder turns map clicks, queries and place IDs into locations
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (planner.Location, error)
	Search(ctx context.Context, query string) (planner.Location, error)
	Details(ctx context.Context, placeID string) (planner.Location, error)
}

// RouteFinder computes transit candidates
type RouteFinder interface {
	ComputeTransit(ctx context.Context, req googleroutes.Request) ([]planner.RouteCandidate, error)
}

// LookupRequest identifies a location by place ID, text query or coordinate, in that order
type LookupRequest struct {
	PlaceID string   `json:"placeId"`
	Query   string   `json:"query"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// LookupResult is the outcome of a lookup. Applied is false when a newer lookup superseded it.
type LookupResult struct {
	Location planner.Location `json:"location"`
	Applied  bool             `json:"applied"`
}

// Bounds is the box enclosing a set of coordinates
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// TripSummary condenses a session for the trip overview
type TripSummary struct {
	Days         int                     `json:"days"`
	Entries      int                     `json:"entries"`
	TravelPlaces int                     `json:"travelPlaces"`
	PathMeters   float64                 `json:"pathMeters"`
	Centroid     *spatial.Point          `json:"centroid,omitempty"`
	Bounds       *Bounds                 `json:"bounds,omitempty"`
	Route        *planner.RouteSelection `json:"route,omitempty"`
	Fares        *pricing.CostBreakdown  `json:"fares,omitempty"`

	// Decoded from the selected route's polyline
	RoutePath     []spatial.Point `json:"routePath,omitempty"`
	RouteMeters   float64         `json:"routeMeters,omitempty"`
	RouteMidpoint *spatial.Point  `json:"routeMidpoint,omitempty"`
}

// PlannerService runs planning operations against registered sessions
type PlannerService struct {
	sessions *SessionService
	geocoder Geocoder
	routes   RouteFinder
	logger   *zap.Logger
}

// NewPlannerService creates a planner service
func NewPlannerService(sessions *SessionService, geocoder Geocoder, routes RouteFinder, logger *zap.Logger) *PlannerService {
	return &PlannerService{sessions: sessions, geocoder: geocoder, routes: routes, logger: logger}
}

func (s *PlannerService) update(id string, fn func(st *planner.State) error) error {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return err
	}
	return sess.Update(fn)
}

// Snapshot returns the full state of a session
func (s *PlannerService) Snapshot(id string) (planner.Snapshot, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return planner.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// AddDay appends a day and makes it current
func (s *PlannerService) AddDay(id string) (planner.DayPlan, error) {
	var day planner.DayPlan
	err := s.update(id, func(st *planner.State) error {
		day = st.Itinerary.AddDay()
		return nil
	})
	return day, err
}

// SelectDay moves the current-day cursor
func (s *PlannerService) SelectDay(id string, day int) error {
	return s.update(id, func(st *planner.State) error {
		return st.Itinerary.SelectDay(day)
	})
}

// SetPending replaces the pending location
func (s *PlannerService) SetPending(id string, loc planner.Location) error {
	return s.update(id, func(st *planner.State) error {
		st.Pending.Set(loc)
		return nil
	})
}

// ClearPending empties the pending slot
func (s *PlannerService) ClearPending(id string) error {
	return s.update(id, func(st *planner.State) error {
		st.Pending.Clear()
		return nil
	})
}

// PendingDraft starts a place draft from the pending location
func (s *PlannerService) PendingDraft(id string) (planner.PlaceDraft, error) {
	var d planner.PlaceDraft
	err := s.update(id, func(st *planner.State) error {
		var err error
		d, err = st.AddPendingDraft()
		return err
	})
	return d, err
}

// LookupPending resolves a location into the pending slot. Results of superseded lookups
// are returned but not applied.
func (s *PlannerService) LookupPending(ctx context.Context, id string, req LookupRequest) (LookupResult, error) {
	var ticket planner.Ticket
	if err := s.update(id, func(st *planner.State) error {
		ticket = st.Pending.Issue()
		return nil
	}); err != nil {
		return LookupResult{}, err
	}

	loc, err := s.lookup(ctx, req)
	if err != nil {
		return LookupResult{}, err
	}

	res := LookupResult{Location: loc}
	err = s.update(id, func(st *planner.State) error {
		res.Applied = st.Pending.Resolve(ticket, loc)
		return nil
	})
	return res, err
}

// AddPlace confirms a draft onto a day
func (s *PlannerService) AddPlace(id string, day int, d planner.PlaceDraft) (planner.PlaceEntry, error) {
	var entry planner.PlaceEntry
	err := s.update(id, func(st *planner.State) error {
		var err error
		entry, err = st.Itinerary.ConfirmAddPlace(day, d)
		return err
	})
	return entry, err
}

// EditPlace rewrites an entry
func (s *PlannerService) EditPlace(id string, day int, placeID int64, d planner.PlaceDraft) (planner.PlaceEntry, error) {
	var entry planner.PlaceEntry
	err := s.update(id, func(st *planner.State) error {
		var err error
		entry, err = st.Itinerary.EditPlace(day, placeID, d)
		return err
	})
	return entry, err
}

// RemovePlace deletes an entry; a missing entry is not an error
func (s *PlannerService) RemovePlace(id string, day int, placeID int64) error {
	return s.update(id, func(st *planner.State) error {
		return st.Itinerary.RemovePlace(day, placeID)
	})
}

// TravelPlaces lists the trip's places of interest
func (s *PlannerService) TravelPlaces(id string) ([]planner.Location, error) {
	var out []planner.Location
	err := s.update(id, func(st *planner.State) error {
		out = st.Places.List()
		return nil
	})
	return out, err
}

// TravelPlace returns the place of interest at index
func (s *PlannerService) TravelPlace(id string, index int) (planner.Location, bool, error) {
	var loc planner.Location
	var ok bool
	err := s.update(id, func(st *planner.State) error {
		loc, ok = st.Places.At(index)
		return nil
	})
	return loc, ok, err
}

// RemoveTravelPlace deletes the place of interest at index. Out of range is a no-op.
func (s *PlannerService) RemoveTravelPlace(id string, index int) error {
	return s.update(id, func(st *planner.State) error {
		st.Places.RemoveAt(index)
		return nil
	})
}

// ClearTravelPlaces empties the places of interest
func (s *PlannerService) ClearTravelPlaces(id string) error {
	return s.update(id, func(st *planner.State) error {
		st.Places.Clear()
		return nil
	})
}

// LookupEndpoint resolves a location and offers it to the origin/destination picker
func (s *PlannerService) LookupEndpoint(ctx context.Context, id string, req LookupRequest) (LookupResult, error) {
	var ticket planner.Ticket
	if err := s.update(id, func(st *planner.State) error {
		ticket = st.Picker.Issue()
		return nil
	}); err != nil {
		return LookupResult{}, err
	}

	loc, err := s.lookup(ctx, req)
	if err != nil {
		return LookupResult{}, err
	}

	res := LookupResult{Location: loc}
	err = s.update(id, func(st *planner.State) error {
		res.Applied = st.ResolveEndpoint(ticket, loc)
		return nil
	})
	return res, err
}

// SetMode forces the picker mode
func (s *PlannerService) SetMode(id string, mode planner.SelectionMode) error {
	return s.update(id, func(st *planner.State) error {
		st.Picker.SetMode(mode)
		return nil
	})
}

// SwapEndpoints exchanges origin and destination
func (s *PlannerService) SwapEndpoints(id string) error {
	return s.update(id, func(st *planner.State) error {
		st.SwapEndpoints()
		return nil
	})
}

// ResetEndpoints clears the picker and the search results
func (s *PlannerService) ResetEndpoints(id string) error {
	return s.update(id, func(st *planner.State) error {
		st.ResetEndpoints()
		return nil
	})
}

// SearchRoutes computes candidates between the picked endpoints. Results are stored unless
// a newer search was started meanwhile.
func (s *PlannerService) SearchRoutes(ctx context.Context, id string, req googleroutes.Request) ([]planner.RouteCandidate, bool, error) {
	var ticket planner.Ticket
	err := s.update(id, func(st *planner.State) error {
		origin, dest := st.Picker.Origin(), st.Picker.Destination()
		if origin == nil {
			return &planner.ValidationError{Field: "origin", Err: planner.ErrOriginRequired}
		}
		if dest == nil {
			return &planner.ValidationError{Field: "destination", Err: planner.ErrDestinationRequired}
		}
		req.Origin, req.Destination = *origin, *dest
		ticket = st.Route.IssueSearch()
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	candidates, err := s.routes.ComputeTransit(ctx, req)
	if err != nil {
		return nil, false, fmt.Errorf("route search failed: %w", err)
	}

	var applied bool
	err = s.update(id, func(st *planner.State) error {
		applied = st.Route.ResolveSearch(ticket, candidates)
		return nil
	})
	return candidates, applied, err
}

// SelectRoute selects a stored candidate between the picked endpoints
func (s *PlannerService) SelectRoute(id string, index int) (planner.RouteSelection, error) {
	var sel planner.RouteSelection
	err := s.update(id, func(st *planner.State) error {
		var err error
		sel, err = st.SelectRoute(index)
		return err
	})
	if err == nil {
		s.logger.Debug("route selected", zap.String("session_id", id), zap.String("route", sel.Description))
	}
	return sel, err
}

// ClearRoute empties the selected route
func (s *PlannerService) ClearRoute(id string) error {
	return s.update(id, func(st *planner.State) error {
		st.Route.Clear()
		return nil
	})
}

// SelectedRoute returns the selected route, if any
func (s *PlannerService) SelectedRoute(id string) (planner.RouteSelection, bool, error) {
	var sel planner.RouteSelection
	var ok bool
	err := s.update(id, func(st *planner.State) error {
		sel, ok = st.Route.Selected()
		return nil
	})
	return sel, ok, err
}

// Summary condenses a session
func (s *PlannerService) Summary(id string) (TripSummary, error) {
	var sum TripSummary
	err := s.update(id, func(st *planner.State) error {
		sum.Days = st.Itinerary.Len()
		sum.Entries = st.Itinerary.EntryCount()
		sum.TravelPlaces = st.Places.Len()

		places := st.Places.List()
		points := make([]spatial.Point, len(places))
		for i, p := range places {
			points[i] = spatial.Point{Lat: p.Lat, Lon: p.Lng}
		}
		sum.PathMeters = spatial.PathLength(points)
		if len(points) > 0 {
			c := spatial.Centroid(points)
			sum.Centroid = &c
			south, west, north, east := spatial.BoundingBox(points)
			sum.Bounds = &Bounds{South: south, West: west, North: north, East: east}
		}

		if sel, ok := st.Route.Selected(); ok {
			fares := pricing.Breakdown(sel.Steps)
			sum.Route = &sel
			sum.Fares = &fares
			s.summarizeRoute(id, &sum, sel)
		}
		return nil
	})
	return sum, err
}

func (s *PlannerService) summarizeRoute(id string, sum *TripSummary, sel planner.RouteSelection) {
	lat, lng := spatial.Midpoint(sel.Origin.Lat, sel.Origin.Lng, sel.Destination.Lat, sel.Destination.Lng)
	sum.RouteMidpoint = &spatial.Point{Lat: lat, Lon: lng}

	if sel.Polyline == "" {
		return
	}
	path, err := spatial.DecodePolyline(sel.Polyline)
	if err != nil {
		s.logger.Warn("selected route has a bad polyline", zap.String("session_id", id), zap.Error(err))
		return
	}
	sum.RoutePath = path
	sum.RouteMeters = spatial.PathLength(path)
}

func (s *PlannerService) lookup(ctx context.Context, req LookupRequest) (planner.Location, error) {
	switch {
	case req.PlaceID != "":
		return s.geocoder.Details(ctx, req.PlaceID)
	case strings.TrimSpace(req.Query) != "":
		return s.geocoder.Search(ctx, strings.TrimSpace(req.Query))
	case req.Lat != nil && req.Lng != nil:
		if !spatial.ValidCoordinates(*req.Lat, *req.Lng) {
			return planner.Location{}, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
		}
		return s.geocoder.Reverse(ctx, *req.Lat, *req.Lng)
	}
	return planner.Location{}, fmt.Errorf("%w: placeId, query or lat/lng required", ErrInvalidInput)
}
