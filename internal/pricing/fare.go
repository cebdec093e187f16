package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jengzang/tour-planner-go/internal/planner"
)

// Fare policy constants (KRW)
const (
	BaseFare       = 1500
	LongBusFare    = 2000
	LongSubwayFare = 2150
	MinTrainFare   = 2000
	TrainFarePerKm = 150
	LongDistanceKm = 10.0
)

// EstimateFare returns the business-policy fare for one transit leg.
func EstimateFare(distanceMeters int, vehicleType string) int {
	km := float64(distanceMeters) / 1000

	switch vehicleType {
	case planner.VehicleBus:
		if km < LongDistanceKm {
			return BaseFare
		}
		return LongBusFare
	case planner.VehicleSubway:
		if km < LongDistanceKm {
			return BaseFare
		}
		return LongSubwayFare
	case planner.VehicleTrain:
		fare := int(math.Round(km * TrainFarePerKm))
		if fare < MinTrainFare {
			return MinTrainFare
		}
		return fare
	default:
		return BaseFare
	}
}

// LegCost is the estimated cost of one transit step.
type LegCost struct {
	Vehicle     string `json:"vehicle"`
	VehicleType string `json:"vehicleType,omitempty"`
	SpendTime   string `json:"spendTime"` // HH:MM:SS
	Price       int    `json:"price"`
}

// CostBreakdown lists the transit legs of a route with their estimated fares.
type CostBreakdown struct {
	Legs  []LegCost `json:"legs"`
	Total int       `json:"total"`
}

// Breakdown estimates a fare for every transit step. Walking steps are free and skipped.
func Breakdown(steps []planner.RouteStep) CostBreakdown {
	out := CostBreakdown{Legs: []LegCost{}}

	for _, st := range steps {
		if st.TravelMode != planner.TravelModeTransit || st.Transit == nil {
			continue
		}

		vehicle := st.Transit.Name
		if vehicle == "" {
			vehicle = VehicleDisplayName(st.Transit.VehicleType)
		}

		cost := LegCost{
			Vehicle:     vehicle,
			VehicleType: st.Transit.VehicleType,
			SpendTime:   DurationToClock(st.StaticDuration),
			Price:       EstimateFare(st.DistanceMeters, st.Transit.VehicleType),
		}
		out.Legs = append(out.Legs, cost)
		out.Total += cost.Price
	}

	return out
}

// VehicleDisplayName returns a label for legs whose line has no name.
func VehicleDisplayName(vehicleType string) string {
	switch vehicleType {
	case planner.VehicleBus:
		return "버스"
	case planner.VehicleSubway:
		return "지하철"
	case planner.VehicleTrain:
		return "기차"
	case planner.VehicleLightRail:
		return "경전철"
	default:
		return "대중교통"
	}
}

// ParseDurationSeconds reads a provider duration such as "540s". Unparseable values yield 0.
func ParseDurationSeconds(d string) int {
	d = strings.TrimSuffix(strings.TrimSpace(d), "s")
	if d == "" {
		return 0
	}
	v, err := strconv.ParseFloat(d, 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(math.Round(v))
}

// DurationToClock converts a provider duration into "HH:MM:SS".
func DurationToClock(d string) string {
	secs := ParseDurationSeconds(d)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}
