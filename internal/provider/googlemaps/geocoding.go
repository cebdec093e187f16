// Package googlemaps resolves map clicks, text queries and place IDs into planner locations.
package googlemaps

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jengzang/tour-planner-go/internal/planner"
	"github.com/jengzang/tour-planner-go/internal/provider"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Config configures the client
type Config struct {
	GeocodeURL string
	PlacesURL  string
	APIKey     string
	Language   string
	Region     string
}

// Client is a geocoding and places client
type Client struct {
	http   *retryablehttp.Client
	cfg    Config
	logger *zap.Logger
}

// New creates a geocoding client
func New(httpClient *retryablehttp.Client, cfg Config, logger *zap.Logger) *Client {
	if cfg.Language == "" {
		cfg.Language = "ko"
	}
	return &Client{http: httpClient, cfg: cfg, logger: logger.Named("googlemaps")}
}

// Reverse resolves a coordinate to a location named after the first segment of its address
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (planner.Location, error) {
	q := url.Values{}
	q.Set("latlng", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lng, 'f', -1, 64))

	res, err := c.get(ctx, c.cfg.GeocodeURL+"/json", q, "results.0")
	if err != nil {
		return planner.Location{}, err
	}

	addr := res.Get("formatted_address").String()
	name, _, _ := strings.Cut(addr, ",")

	return planner.Location{
		Lat:          lat,
		Lng:          lng,
		PlaceName:    strings.TrimSpace(name),
		PlaceAddress: addr,
		PlaceID:      res.Get("place_id").String(),
	}, nil
}

// Search returns the best text search hit for query
func (c *Client) Search(ctx context.Context, query string) (planner.Location, error) {
	q := url.Values{}
	q.Set("query", query)
	if c.cfg.Region != "" {
		q.Set("region", c.cfg.Region)
	}

	res, err := c.get(ctx, c.cfg.PlacesURL+"/textsearch/json", q, "results.0")
	if err != nil {
		return planner.Location{}, err
	}
	return placeLocation(res), nil
}

// Details resolves a place ID
func (c *Client) Details(ctx context.Context, placeID string) (planner.Location, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "name,formatted_address,geometry,place_id")

	res, err := c.get(ctx, c.cfg.PlacesURL+"/details/json", q, "result")
	if err != nil {
		return planner.Location{}, err
	}
	return placeLocation(res), nil
}

func placeLocation(res gjson.Result) planner.Location {
	return planner.Location{
		Lat:          res.Get("geometry.location.lat").Float(),
		Lng:          res.Get("geometry.location.lng").Float(),
		PlaceName:    res.Get("name").String(),
		PlaceAddress: res.Get("formatted_address").String(),
		PlaceID:      res.Get("place_id").String(),
	}
}

// get performs the lookup and returns the element at path. The legacy Maps APIs answer
// 200 with a status field, so the status is checked here.
func (c *Client) get(ctx context.Context, endpoint string, q url.Values, path string) (gjson.Result, error) {
	q.Set("key", c.cfg.APIKey)
	q.Set("language", c.cfg.Language)

	req, err := retryablehttp.NewRequest(http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to build maps request: %w", err)
	}

	body, err := provider.Do(ctx, c.http, "maps", req)
	if err != nil {
		return gjson.Result{}, err
	}

	switch status := gjson.GetBytes(body, "status").String(); status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return gjson.Result{}, provider.ErrNotFound
	default:
		return gjson.Result{}, &provider.APIError{
			Provider: "maps",
			Status:   http.StatusOK,
			Message:  strings.TrimSpace(status + " " + gjson.GetBytes(body, "error_message").String()),
		}
	}

	res := gjson.GetBytes(body, path)
	if !res.Exists() {
		return gjson.Result{}, provider.ErrNotFound
	}

	c.logger.Debug("maps lookup", zap.String("endpoint", endpoint), zap.String("place_id", res.Get("place_id").String()))
	return res, nil
}
