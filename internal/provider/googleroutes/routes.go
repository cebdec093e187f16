// Package googleroutes computes transit route candidates with the Google Routes API.
package googleroutes

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jengzang/tour-planner-go/internal/planner"
	"github.com/jengzang/tour-planner-go/internal/pricing"
	"github.com/jengzang/tour-planner-go/internal/provider"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const computeRoutesPath = "/directions/v2:computeRoutes"

var fieldMask = strings.Join([]string{
	"routes.description",
	"routes.duration",
	"routes.distanceMeters",
	"routes.polyline.encodedPolyline",
	"routes.travelAdvisory.transitFare",
	"routes.legs.duration",
	"routes.legs.distanceMeters",
	"routes.legs.steps.distanceMeters",
	"routes.legs.steps.staticDuration",
	"routes.legs.steps.travelMode",
	"routes.legs.steps.transitDetails",
}, ",")

// Transit route preferences
const (
	PreferenceUnspecified    = "TRANSIT_ROUTE_PREFERENCE_UNSPECIFIED"
	PreferenceLessWalking    = "LESS_WALKING"
	PreferenceFewerTransfers = "FEWER_TRANSFERS"
)

// DefaultModes are the transit modes requested when none are given
var DefaultModes = []string{planner.VehicleBus, planner.VehicleSubway, planner.VehicleTrain, planner.VehicleLightRail}

// Request describes one transit search
type Request struct {
	Origin      planner.Location
	Destination planner.Location
	Departure   *time.Time
	Arrival     *time.Time
	Modes       []string
	Preference  string
}

// Config configures the client
type Config struct {
	BaseURL  string
	APIKey   string
	Language string
}

// Client is a Routes API client
type Client struct {
	http   *retryablehttp.Client
	cfg    Config
	logger *zap.Logger
}

// New creates a routes client
func New(httpClient *retryablehttp.Client, cfg Config, logger *zap.Logger) *Client {
	if cfg.Language == "" {
		cfg.Language = "ko"
	}
	return &Client{http: httpClient, cfg: cfg, logger: logger.Named("googleroutes")}
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type waypoint struct {
	Location struct {
		LatLng latLng `json:"latLng"`
	} `json:"location"`
}

type transitPreferences struct {
	AllowedTravelModes []string `json:"allowedTravelModes"`
	RoutingPreference  string   `json:"routingPreference"`
}

type computeRoutesBody struct {
	Origin             waypoint           `json:"origin"`
	Destination        waypoint           `json:"destination"`
	TravelMode         string             `json:"travelMode"`
	DepartureTime      string             `json:"departureTime,omitempty"`
	ArrivalTime        string             `json:"arrivalTime,omitempty"`
	ComputeAlternative bool               `json:"computeAlternativeRoutes"`
	TransitPreferences transitPreferences `json:"transitPreferences"`
	LanguageCode       string             `json:"languageCode"`
	Units              string             `json:"units"`
}

func newWaypoint(loc planner.Location) waypoint {
	var w waypoint
	w.Location.LatLng = latLng{Latitude: loc.Lat, Longitude: loc.Lng}
	return w
}

func buildBody(req Request, language string) computeRoutesBody {
	modes := req.Modes
	if len(modes) == 0 {
		modes = DefaultModes
	}
	pref := req.Preference
	if pref == "" {
		pref = PreferenceUnspecified
	}

	body := computeRoutesBody{
		Origin:             newWaypoint(req.Origin),
		Destination:        newWaypoint(req.Destination),
		TravelMode:         planner.TravelModeTransit,
		ComputeAlternative: true,
		TransitPreferences: transitPreferences{AllowedTravelModes: modes, RoutingPreference: pref},
		LanguageCode:       language,
		Units:              "METRIC",
	}
	if req.Departure != nil {
		body.DepartureTime = req.Departure.UTC().Format(time.RFC3339)
	}
	if req.Arrival != nil {
		body.ArrivalTime = req.Arrival.UTC().Format(time.RFC3339)
	}
	return body
}

// ComputeTransit returns the transit candidates between two locations
func (c *Client) ComputeTransit(ctx context.Context, req Request) ([]planner.RouteCandidate, error) {
	raw, err := json.Marshal(buildBody(req, c.cfg.Language))
	if err != nil {
		return nil, fmt.Errorf("failed to encode routes request: %w", err)
	}

	httpReq, err := retryablehttp.NewRequest(http.MethodPost, strings.TrimRight(c.cfg.BaseURL, "/")+computeRoutesPath, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to build routes request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", c.cfg.APIKey)
	httpReq.Header.Set("X-Goog-FieldMask", fieldMask)

	body, err := provider.Do(ctx, c.http, "routes", httpReq)
	if err != nil {
		return nil, err
	}

	candidates := ParseRoutes(body)
	if len(candidates) == 0 {
		return nil, provider.ErrNotFound
	}

	c.logger.Debug("transit routes computed", zap.Int("candidates", len(candidates)))
	return candidates, nil
}

// ParseRoutes converts a computeRoutes response into route candidates
func ParseRoutes(body []byte) []planner.RouteCandidate {
	candidates := []planner.RouteCandidate{}

	gjson.GetBytes(body, "routes").ForEach(func(_, route gjson.Result) bool {
		cand := planner.RouteCandidate{
			Description:     route.Get("description").String(),
			TotalDuration:   durationMinutes(route.Get("duration").String()),
			DistanceMeters:  int(route.Get("distanceMeters").Int()),
			EncodedPolyline: route.Get("polyline.encodedPolyline").String(),
		}

		route.Get("legs").ForEach(func(_, leg gjson.Result) bool {
			cand.Legs = append(cand.Legs, parseLeg(leg))
			return true
		})

		var firstLeg []planner.RouteStep
		if len(cand.Legs) > 0 {
			firstLeg = cand.Legs[0].Steps
		}

		if fare := route.Get("travelAdvisory.transitFare.units"); fare.Exists() {
			cand.TotalPrice = int(fare.Int())
		} else {
			cand.TotalPrice = pricing.Breakdown(firstLeg).Total
		}
		if cand.Description == "" {
			cand.Description = describe(firstLeg)
		}

		candidates = append(candidates, cand)
		return true
	})

	return candidates
}

func parseLeg(leg gjson.Result) planner.RouteLeg {
	out := planner.RouteLeg{
		DurationSeconds: pricing.ParseDurationSeconds(leg.Get("duration").String()),
		DistanceMeters:  int(leg.Get("distanceMeters").Int()),
	}

	leg.Get("steps").ForEach(func(_, st gjson.Result) bool {
		step := planner.RouteStep{
			TravelMode:     st.Get("travelMode").String(),
			StaticDuration: st.Get("staticDuration").String(),
			DistanceMeters: int(st.Get("distanceMeters").Int()),
		}

		if line := st.Get("transitDetails.transitLine"); line.Exists() {
			name := line.Get("nameShort").String()
			if name == "" {
				name = line.Get("name").String()
			}
			step.Transit = &planner.TransitLine{
				Name:        name,
				VehicleType: line.Get("vehicle.type").String(),
			}
		}

		out.Steps = append(out.Steps, step)
		return true
	})

	return out
}

// describe joins the transit line names of a leg, e.g. "2호선 → 472"
func describe(steps []planner.RouteStep) string {
	var names []string
	for _, st := range steps {
		if st.Transit == nil {
			continue
		}
		name := st.Transit.Name
		if name == "" {
			name = pricing.VehicleDisplayName(st.Transit.VehicleType)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "도보"
	}
	return strings.Join(names, " → ")
}

func durationMinutes(d string) int {
	return int(math.Ceil(float64(pricing.ParseDurationSeconds(d)) / 60))
}
