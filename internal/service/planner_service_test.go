package service

import (
	"context"
	"testing"

	"github.com/jengzang/tour-planner-go/internal/planner"
	"github.com/jengzang/tour-planner-go/internal/provider"
	"github.com/jengzang/tour-planner-go/internal/provider/googleroutes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannerService_PendingToItinerary(t *testing.T) {
	geo := &fakeGeocoder{loc: planner.Location{PlaceName: "City Hall", PlaceAddress: "Jung-gu"}}
	svc, sessions := newPlanner(t, geo, &fakeRoutes{})
	id := sessions.Create().ID
	ctx := context.Background()

	_, err := svc.PendingDraft(id)
	assert.ErrorIs(t, err, planner.ErrNoPending)

	res, err := svc.LookupPending(ctx, id, LookupRequest{Lat: fp(37.5665), Lng: fp(126.978)})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, 37.5665, res.Location.Lat)

	_, err = svc.PendingDraft(id)
	assert.ErrorIs(t, err, planner.ErrNoDays)

	_, err = svc.AddDay(id)
	require.NoError(t, err)
	d, err := svc.PendingDraft(id)
	require.NoError(t, err)
	assert.Equal(t, "City Hall", d.Name)

	d.Time = "9:30"
	entry, err := svc.AddPlace(id, 1, d)
	require.NoError(t, err)
	assert.Equal(t, "09:30", entry.Time)

	snap, err := svc.Snapshot(id)
	require.NoError(t, err)
	require.Len(t, snap.Days[0].Places, 1)
	require.NotNil(t, snap.Pending)

	require.NoError(t, svc.ClearPending(id))
	require.NoError(t, svc.RemovePlace(id, 1, entry.ID))
	require.NoError(t, svc.RemovePlace(id, 1, entry.ID))

	snap, _ = svc.Snapshot(id)
	assert.Nil(t, snap.Pending)
	assert.Empty(t, snap.Days[0].Places)
}

func TestPlannerService_StaleLookupDropped(t *testing.T) {
	geo := &fakeGeocoder{loc: planner.Location{PlaceName: "slow"}}
	svc, sessions := newPlanner(t, geo, &fakeRoutes{})
	id := sessions.Create().ID
	ctx := context.Background()

	// a second lookup starts and finishes while the first is in flight
	geo.onCall = func() {
		geo.loc = planner.Location{PlaceName: "fast"}
		res, err := svc.LookupEndpoint(ctx, id, LookupRequest{Query: "fast"})
		require.NoError(t, err)
		assert.True(t, res.Applied)
		geo.loc = planner.Location{PlaceName: "slow"}
	}

	res, err := svc.LookupEndpoint(ctx, id, LookupRequest{Query: "slow"})
	require.NoError(t, err)
	assert.False(t, res.Applied)

	snap, _ := svc.Snapshot(id)
	require.NotNil(t, snap.Origin)
	assert.Equal(t, "fast", snap.Origin.PlaceName)
	assert.Nil(t, snap.Destination)
	assert.Equal(t, planner.SelectingDestination, snap.Mode)
}

func TestPlannerService_LookupValidation(t *testing.T) {
	geo := &fakeGeocoder{err: provider.ErrNotFound}
	svc, sessions := newPlanner(t, geo, &fakeRoutes{})
	id := sessions.Create().ID
	ctx := context.Background()

	_, err := svc.LookupPending(ctx, id, LookupRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.LookupPending(ctx, id, LookupRequest{Lat: fp(95), Lng: fp(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.LookupPending(ctx, id, LookupRequest{PlaceID: "x"})
	assert.ErrorIs(t, err, provider.ErrNotFound)
	_, err = svc.LookupPending(ctx, "missing", LookupRequest{PlaceID: "x"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 1, geo.calls)
}

func TestPlannerService_RouteSearchAndSelect(t *testing.T) {
	routes := &fakeRoutes{candidates: []planner.RouteCandidate{subwayCandidate()}}
	svc, sessions := newPlanner(t, &fakeGeocoder{}, routes)
	id := sessions.Create().ID
	ctx := context.Background()

	_, _, err := svc.SearchRoutes(ctx, id, googleroutes.Request{})
	assert.ErrorIs(t, err, planner.ErrOriginRequired)

	sess, _ := sessions.Get(id)
	_ = sess.Update(func(st *planner.State) error {
		st.Picker.Offer(gangnam)
		st.Picker.Offer(hongdae)
		return nil
	})
	require.NoError(t, svc.SwapEndpoints(id))

	cands, applied, err := svc.SearchRoutes(ctx, id, googleroutes.Request{Preference: googleroutes.PreferenceLessWalking})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Len(t, cands, 1)
	assert.Equal(t, hongdae, routes.last.Origin)
	assert.Equal(t, gangnam, routes.last.Destination)

	_, err = svc.SelectRoute(id, 3)
	assert.ErrorIs(t, err, planner.ErrCandidateNotFound)

	sel, err := svc.SelectRoute(id, 0)
	require.NoError(t, err)
	assert.Equal(t, "2호선", sel.Description)

	places, err := svc.TravelPlaces(id)
	require.NoError(t, err)
	assert.Equal(t, []planner.Location{hongdae, gangnam}, places)

	sum, err := svc.Summary(id)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TravelPlaces)
	assert.InDelta(t, 11500, sum.PathMeters, 500)
	require.NotNil(t, sum.Fares)
	assert.Equal(t, 3650, sum.Fares.Total)
	require.NotNil(t, sum.Bounds)
	assert.InDelta(t, gangnam.Lat, sum.Bounds.South, 1e-9)
	assert.InDelta(t, hongdae.Lat, sum.Bounds.North, 1e-9)
	require.NotNil(t, sum.RouteMidpoint)
	assert.InDelta(t, 37.527, sum.RouteMidpoint.Lat, 0.01)
	assert.Len(t, sum.RoutePath, 3)
	assert.Greater(t, sum.RouteMeters, 500000.0)

	require.NoError(t, svc.SwapEndpoints(id))
	_, err = svc.SelectRoute(id, 0)
	assert.ErrorIs(t, err, planner.ErrCandidateNotFound)

	require.NoError(t, svc.ClearRoute(id))
	require.NoError(t, svc.ResetEndpoints(id))
	snap, _ := svc.Snapshot(id)
	assert.Nil(t, snap.Route)
	assert.Empty(t, snap.Candidates)
	assert.Len(t, snap.Places, 2)

	require.NoError(t, svc.RemoveTravelPlace(id, 7))
	require.NoError(t, svc.RemoveTravelPlace(id, 0))
	places, _ = svc.TravelPlaces(id)
	assert.Equal(t, []planner.Location{gangnam}, places)

	require.NoError(t, svc.ClearTravelPlaces(id))
	sum, _ = svc.Summary(id)
	assert.Zero(t, sum.TravelPlaces)
	assert.Nil(t, sum.Centroid)
}

func TestPlannerService_RouteSearchFailure(t *testing.T) {
	svc, sessions := newPlanner(t, &fakeGeocoder{}, &fakeRoutes{})
	sess := sessions.Create()
	_ = sess.Update(func(st *planner.State) error {
		st.Picker.Offer(gangnam)
		st.Picker.Offer(hongdae)
		return nil
	})

	_, _, err := svc.SearchRoutes(context.Background(), sess.ID, googleroutes.Request{})
	assert.ErrorIs(t, err, provider.ErrNotFound)
}
