package planner

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointPicker_Transitions(t *testing.T) {
	var p EndpointPicker
	assert.Equal(t, SelectingOrigin, p.Mode())

	assert.Equal(t, SelectingDestination, p.Offer(gangnam))
	assert.Equal(t, SelectingDestination, p.Offer(hongdae))
	assert.Equal(t, SelectingDestination, p.Offer(hongdae))

	require.NotNil(t, p.Origin())
	assert.Equal(t, gangnam, *p.Origin())
	assert.Equal(t, hongdae, *p.Destination())

	p.Swap()
	assert.Equal(t, hongdae, *p.Origin())
	assert.Equal(t, gangnam, *p.Destination())
	assert.Equal(t, SelectingDestination, p.Mode())

	p.SetMode(SelectingOrigin)
	p.Offer(gangnam)
	assert.Equal(t, gangnam, *p.Origin())
	assert.Equal(t, SelectingDestination, p.Mode())

	p.Reset()
	assert.Nil(t, p.Origin())
	assert.Nil(t, p.Destination())
	assert.Equal(t, SelectingOrigin, p.Mode())
}

func TestEndpointPicker_StaleLookup(t *testing.T) {
	var p EndpointPicker
	stale := p.Issue()
	fresh := p.Issue()

	assert.False(t, p.Resolve(stale, gangnam))
	assert.Nil(t, p.Origin())
	assert.True(t, p.Resolve(fresh, hongdae))
	assert.Equal(t, hongdae, *p.Origin())
}

func TestEndpointPicker_DirectChangeDropsLookup(t *testing.T) {
	var p EndpointPicker

	tk := p.Issue()
	p.Reset()
	assert.False(t, p.Resolve(tk, gangnam))
	assert.Nil(t, p.Origin())
	assert.Equal(t, SelectingOrigin, p.Mode())

	tk = p.Issue()
	p.Offer(hongdae)
	assert.False(t, p.Resolve(tk, gangnam))
	assert.Equal(t, hongdae, *p.Origin())
	assert.Nil(t, p.Destination())
	assert.Equal(t, SelectingDestination, p.Mode())
}

func TestParseSelectionMode(t *testing.T) {
	m, ok := ParseSelectionMode("destination")
	assert.True(t, ok)
	assert.Equal(t, SelectingDestination, m)

	_, ok = ParseSelectionMode("sideways")
	assert.False(t, ok)

	raw, err := json.Marshal(SelectingOrigin)
	require.NoError(t, err)
	assert.Equal(t, `"origin"`, string(raw))
}

func TestSession_PendingDraftFlow(t *testing.T) {
	s := NewSession("s1", WithClock(fixedClock(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))))

	err := s.Update(func(st *State) error {
		_, err := st.AddPendingDraft()
		return err
	})
	assert.ErrorIs(t, err, ErrNoPending)

	err = s.Update(func(st *State) error {
		st.Pending.Set(gangnam)
		_, err := st.AddPendingDraft()
		return err
	})
	assert.ErrorIs(t, err, ErrNoDays)

	err = s.Update(func(st *State) error {
		st.Itinerary.AddDay()
		d, err := st.AddPendingDraft()
		if err != nil {
			return err
		}
		d.Time = "14:00"
		if _, err := st.Itinerary.ConfirmAddPlace(st.Itinerary.CurrentDay(), d); err != nil {
			return err
		}
		st.Pending.Clear()
		return nil
	})
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Nil(t, snap.Pending)
	require.Len(t, snap.Days, 1)
	assert.Equal(t, "5. 1.", snap.Days[0].Date)
	assert.Equal(t, "Gangnam", snap.Days[0].Places[0].Name)
}

func TestSession_RouteFlow(t *testing.T) {
	s := NewSession("s2")

	err := s.Update(func(st *State) error {
		st.Picker.Offer(gangnam)
		st.Picker.Offer(hongdae)
		st.Route.ResolveSearch(st.Route.IssueSearch(), []RouteCandidate{twoLegCandidate()})
		_, err := st.SelectRoute(0)
		return err
	})
	require.NoError(t, err)

	snap := s.Snapshot()
	require.NotNil(t, snap.Route)
	assert.Equal(t, "Line 2", snap.Route.Description)
	assert.Len(t, snap.Places, 2)

	_ = s.Update(func(st *State) error {
		st.Route.Clear()
		st.ResetEndpoints()
		return nil
	})

	snap = s.Snapshot()
	assert.Nil(t, snap.Route)
	assert.Len(t, snap.Places, 2)
	assert.Empty(t, snap.Candidates)
	assert.Nil(t, snap.Origin)
	assert.Equal(t, SelectingOrigin, snap.Mode)
}

func TestSession_EndpointChangeDropsCandidates(t *testing.T) {
	s := NewSession("s3")

	_ = s.Update(func(st *State) error {
		st.OfferEndpoint(gangnam)
		st.OfferEndpoint(hongdae)
		st.Route.ResolveSearch(st.Route.IssueSearch(), []RouteCandidate{twoLegCandidate()})
		return nil
	})
	require.Len(t, s.Snapshot().Candidates, 1)

	err := s.Update(func(st *State) error {
		st.SwapEndpoints()
		_, err := st.SelectRoute(0)
		return err
	})
	require.Error(t, err)
	snap := s.Snapshot()
	assert.Empty(t, snap.Candidates)
	assert.Equal(t, hongdae, *snap.Origin)
	assert.Equal(t, gangnam, *snap.Destination)

	_ = s.Update(func(st *State) error {
		st.Route.ResolveSearch(st.Route.IssueSearch(), []RouteCandidate{twoLegCandidate()})
		tk := st.Picker.Issue()
		assert.True(t, st.ResolveEndpoint(tk, gangnam))
		return nil
	})
	snap = s.Snapshot()
	assert.Empty(t, snap.Candidates)
	assert.Equal(t, gangnam, *snap.Destination)
}

func TestSession_SerializesUpdates(t *testing.T) {
	s := NewSession("s3")
	_ = s.Update(func(st *State) error {
		st.Itinerary.AddDay()
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(func(st *State) error {
				_, err := st.Itinerary.ConfirmAddPlace(1, draft("10:00", "x", 0, 0))
				return err
			})
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	ids := map[int64]bool{}
	for _, p := range snap.Days[0].Places {
		ids[p.ID] = true
	}
	assert.Len(t, ids, 50)
}
