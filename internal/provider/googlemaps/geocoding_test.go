package googlemaps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jengzang/tour-planner-go/internal/planner"
	"github.com/jengzang/tour-planner-go/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := zaptest.NewLogger(t)
	return New(provider.NewHTTPClient(provider.ClientOptions{}, logger), Config{
		GeocodeURL: srv.URL + "/geocode",
		PlacesURL:  srv.URL + "/place",
		APIKey:     "key",
		Region:     "kr",
	}, logger)
}

func TestClient_Reverse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/json", r.URL.Path)
		assert.Equal(t, "37.5665,126.978", r.URL.Query().Get("latlng"))
		assert.Equal(t, "ko", r.URL.Query().Get("language"))
		fmt.Fprint(w, `{"status":"OK","results":[{"formatted_address":"Seoul City Hall, 110 Sejong-daero, Jung-gu","place_id":"abc"}]}`)
	})

	loc, err := c.Reverse(context.Background(), 37.5665, 126.978)
	require.NoError(t, err)
	assert.Equal(t, planner.Location{
		Lat:          37.5665,
		Lng:          126.978,
		PlaceName:    "Seoul City Hall",
		PlaceAddress: "Seoul City Hall, 110 Sejong-daero, Jung-gu",
		PlaceID:      "abc",
	}, loc)
}

func TestClient_SearchAndDetails(t *testing.T) {
	place := `{"name":"N Seoul Tower","formatted_address":"105 Namsangongwon-gil","place_id":"tower",
		"geometry":{"location":{"lat":37.5512,"lng":126.9882}}}`

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/place/textsearch/json":
			assert.Equal(t, "namsan tower", r.URL.Query().Get("query"))
			assert.Equal(t, "kr", r.URL.Query().Get("region"))
			fmt.Fprintf(w, `{"status":"OK","results":[%s]}`, place)
		case "/place/details/json":
			assert.Equal(t, "tower", r.URL.Query().Get("place_id"))
			fmt.Fprintf(w, `{"status":"OK","result":%s}`, place)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	loc, err := c.Search(context.Background(), "namsan tower")
	require.NoError(t, err)
	assert.Equal(t, "N Seoul Tower", loc.PlaceName)
	assert.Equal(t, 37.5512, loc.Lat)

	loc, err = c.Details(context.Background(), "tower")
	require.NoError(t, err)
	assert.Equal(t, "tower", loc.PlaceID)
	assert.Equal(t, 126.9882, loc.Lng)
}

func TestClient_StatusHandling(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "nowhere" {
			fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
			return
		}
		fmt.Fprint(w, `{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`)
	})

	_, err := c.Search(context.Background(), "nowhere")
	assert.ErrorIs(t, err, provider.ErrNotFound)

	_, err = c.Search(context.Background(), "anything")
	var apiErr *provider.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "REQUEST_DENIED")
}
