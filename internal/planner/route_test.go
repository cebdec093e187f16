package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gangnam = Location{Lat: 37.4979, Lng: 127.0276, PlaceName: "Gangnam"}
	hongdae = Location{Lat: 37.5563, Lng: 126.9220, PlaceName: "Hongdae"}
)

func twoLegCandidate() RouteCandidate {
	return RouteCandidate{
		Description:   "Line 2",
		TotalDuration: 35,
		TotalPrice:    2150,
		Legs: []RouteLeg{
			{Steps: []RouteStep{
				{TravelMode: "WALK", StaticDuration: "120s", DistanceMeters: 150},
				{TravelMode: TravelModeTransit, Transit: &TransitLine{Name: "Line 2", VehicleType: VehicleSubway}, StaticDuration: "1500s", DistanceMeters: 12000},
			}},
			{Steps: []RouteStep{
				{TravelMode: "WALK", StaticDuration: "60s", DistanceMeters: 80},
			}},
		},
	}
}

func TestRouteBridge_SelectKeepsFirstLeg(t *testing.T) {
	places := &TravelPlaces{}
	b := NewRouteBridge(places)

	sel, err := b.Select(&gangnam, &hongdae, twoLegCandidate())
	require.NoError(t, err)

	assert.Equal(t, "Line 2", sel.Description)
	assert.Equal(t, 35, sel.TotalDuration)
	assert.Equal(t, 2150, sel.TotalPrice)
	assert.Len(t, sel.Steps, 2)
	assert.Equal(t, gangnam, sel.Origin)
	assert.Equal(t, hongdae, sel.Destination)
}

func TestRouteBridge_SelectAppendsEndpoints(t *testing.T) {
	places := &TravelPlaces{}
	places.Add(gangnam)
	b := NewRouteBridge(places)

	_, err := b.Select(&gangnam, &hongdae, twoLegCandidate())
	require.NoError(t, err)

	assert.Equal(t, []Location{gangnam, gangnam, hongdae}, places.List())

	_, err = b.Select(&hongdae, &gangnam, twoLegCandidate())
	require.NoError(t, err)
	assert.Equal(t, 5, places.Len())
	assert.Equal(t, hongdae, places.List()[3])
}

func TestRouteBridge_SelectRequiresEndpoints(t *testing.T) {
	places := &TravelPlaces{}
	b := NewRouteBridge(places)

	_, err := b.Select(nil, &hongdae, twoLegCandidate())
	assert.ErrorIs(t, err, ErrOriginRequired)
	_, err = b.Select(&gangnam, nil, twoLegCandidate())
	assert.ErrorIs(t, err, ErrDestinationRequired)

	_, ok := b.Selected()
	assert.False(t, ok)
	assert.Equal(t, 0, places.Len())
}

func TestRouteBridge_ClearLeavesPlaces(t *testing.T) {
	places := &TravelPlaces{}
	b := NewRouteBridge(places)

	_, err := b.Select(&gangnam, &hongdae, twoLegCandidate())
	require.NoError(t, err)
	b.Clear()

	_, ok := b.Selected()
	assert.False(t, ok)
	assert.Equal(t, 2, places.Len())
}

func TestRouteBridge_SelectedIsCopy(t *testing.T) {
	b := NewRouteBridge(&TravelPlaces{})
	_, err := b.Select(&gangnam, &hongdae, twoLegCandidate())
	require.NoError(t, err)

	sel, _ := b.Selected()
	sel.Steps[1].Transit.Name = "changed"

	again, _ := b.Selected()
	assert.Equal(t, "Line 2", again.Steps[1].Transit.Name)
}

func TestRouteBridge_SearchTickets(t *testing.T) {
	b := NewRouteBridge(&TravelPlaces{})

	first := b.IssueSearch()
	second := b.IssueSearch()

	assert.True(t, b.ResolveSearch(second, []RouteCandidate{twoLegCandidate()}))
	assert.False(t, b.ResolveSearch(first, nil))
	assert.Len(t, b.Candidates(), 1)

	_, err := b.SelectCandidate(&gangnam, &hongdae, 1)
	assert.ErrorIs(t, err, ErrCandidateNotFound)

	sel, err := b.SelectCandidate(&gangnam, &hongdae, 0)
	require.NoError(t, err)
	assert.Equal(t, "Line 2", sel.Description)
}

func TestTravelPlaces(t *testing.T) {
	var tp TravelPlaces
	tp.Add(gangnam)
	tp.Add(hongdae)
	tp.Add(gangnam)

	assert.False(t, tp.RemoveAt(5))
	assert.False(t, tp.RemoveAt(-1))
	assert.Equal(t, 3, tp.Len())

	assert.True(t, tp.RemoveAt(1))
	assert.Equal(t, []Location{gangnam, gangnam}, tp.List())

	tp.Clear()
	assert.Equal(t, 0, tp.Len())
	assert.Empty(t, tp.List())
}

func TestPlaceSelection(t *testing.T) {
	var ps PlaceSelection
	_, ok := ps.Pending()
	assert.False(t, ok)

	ps.Set(gangnam)
	ps.Set(hongdae)
	got, ok := ps.Pending()
	require.True(t, ok)
	assert.Equal(t, hongdae, got)

	stale := ps.Issue()
	fresh := ps.Issue()
	assert.True(t, ps.Resolve(fresh, gangnam))
	assert.False(t, ps.Resolve(stale, hongdae))
	got, _ = ps.Pending()
	assert.Equal(t, gangnam, got)

	ps.Clear()
	_, ok = ps.Pending()
	assert.False(t, ok)
}

func TestPlaceSelection_DirectChangeDropsLookup(t *testing.T) {
	var ps PlaceSelection

	tk := ps.Issue()
	ps.Set(hongdae)
	assert.False(t, ps.Resolve(tk, gangnam))
	got, ok := ps.Pending()
	require.True(t, ok)
	assert.Equal(t, hongdae, got)

	tk = ps.Issue()
	ps.Clear()
	assert.False(t, ps.Resolve(tk, gangnam))
	_, ok = ps.Pending()
	assert.False(t, ok)
}
