package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jengzang/tour-planner-go/internal/database"
	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/planner"
	"github.com/jengzang/tour-planner-go/internal/provider"
	"github.com/jengzang/tour-planner-go/internal/provider/googleroutes"
	"github.com/jengzang/tour-planner-go/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

var (
	gangnam = planner.Location{Lat: 37.4979, Lng: 127.0276, PlaceName: "Gangnam"}
	hongdae = planner.Location{Lat: 37.5563, Lng: 126.9220, PlaceName: "Hongdae"}
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	logger := zaptest.NewLogger(t)

	db, err := database.Open(database.Config{Path: database.MemoryPath}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = database.NewMigrationManager(db, logger).Run()
	require.NoError(t, err)
	return db
}

func newUserService(t *testing.T, db *sql.DB) *UserService {
	s := NewUserService(repository.NewUserRepository(db), NewTokenIssuer("secret", time.Hour), zaptest.NewLogger(t))
	s.cost = bcrypt.MinCost
	return s
}

func register(t *testing.T, s *UserService, username string) *Claims {
	t.Helper()
	u, err := s.Register(context.Background(), models.RegisterRequest{Username: username, Password: "password1"})
	require.NoError(t, err)
	return &Claims{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// fakeGeocoder resolves every lookup to a fixed location. onCall runs before returning.
type fakeGeocoder struct {
	loc    planner.Location
	err    error
	calls  int
	onCall func()
}

func (f *fakeGeocoder) resolve() (planner.Location, error) {
	f.calls++
	if f.onCall != nil {
		hook := f.onCall
		f.onCall = nil
		hook()
	}
	return f.loc, f.err
}

func (f *fakeGeocoder) Reverse(_ context.Context, lat, lng float64) (planner.Location, error) {
	loc, err := f.resolve()
	loc.Lat, loc.Lng = lat, lng
	return loc, err
}

func (f *fakeGeocoder) Search(context.Context, string) (planner.Location, error) {
	return f.resolve()
}

func (f *fakeGeocoder) Details(context.Context, string) (planner.Location, error) {
	return f.resolve()
}

type fakeRoutes struct {
	candidates []planner.RouteCandidate
	last       googleroutes.Request
}

func (f *fakeRoutes) ComputeTransit(_ context.Context, req googleroutes.Request) ([]planner.RouteCandidate, error) {
	f.last = req
	if len(f.candidates) == 0 {
		return nil, provider.ErrNotFound
	}
	return f.candidates, nil
}

func subwayCandidate() planner.RouteCandidate {
	return planner.RouteCandidate{
		Description:   "2호선",
		TotalDuration: 30,
		TotalPrice:    2150,
		// three-point reference polyline
		EncodedPolyline: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
		Legs: []planner.RouteLeg{{Steps: []planner.RouteStep{
			{TravelMode: "WALK", StaticDuration: "120s", DistanceMeters: 100},
			{TravelMode: planner.TravelModeTransit, StaticDuration: "1500s", DistanceMeters: 12000,
				Transit: &planner.TransitLine{Name: "2호선", VehicleType: planner.VehicleSubway}},
			{TravelMode: planner.TravelModeTransit, StaticDuration: "600s", DistanceMeters: 3000,
				Transit: &planner.TransitLine{VehicleType: planner.VehicleBus}},
		}}},
	}
}

func newPlanner(t *testing.T, geo Geocoder, routes RouteFinder) (*PlannerService, *SessionService) {
	sessions := NewSessionService(time.Hour, zaptest.NewLogger(t))
	return NewPlannerService(sessions, geo, routes, zaptest.NewLogger(t)), sessions
}

func fp(v float64) *float64 { return &v }
