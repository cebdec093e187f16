// Package openweather fetches 5 day / 3 hour forecasts and condenses them into daily summaries.
package openweather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/provider"
	"github.com/jengzang/tour-planner-go/internal/stats"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// MaxDays is the number of daily summaries returned
const MaxDays = 5

// Config configures the client
type Config struct {
	BaseURL  string
	APIKey   string
	Language string
}

// Client is an OpenWeather forecast client
type Client struct {
	http   *retryablehttp.Client
	cfg    Config
	logger *zap.Logger
}

// New creates a forecast client
func New(httpClient *retryablehttp.Client, cfg Config, logger *zap.Logger) *Client {
	if cfg.Language == "" {
		cfg.Language = "kr"
	}
	return &Client{http: httpClient, cfg: cfg, logger: logger.Named("openweather")}
}

// Forecast returns up to MaxDays daily summaries for a coordinate
func (c *Client) Forecast(ctx context.Context, lat, lng float64) (*models.Forecast, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("appid", c.cfg.APIKey)
	q.Set("units", "metric")
	q.Set("lang", c.cfg.Language)

	req, err := retryablehttp.NewRequest(http.MethodGet, strings.TrimRight(c.cfg.BaseURL, "/")+"/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	body, err := provider.Do(ctx, c.http, "openweather", req)
	if err != nil {
		return nil, err
	}

	fc := ParseForecast(body)
	if len(fc.Days) == 0 {
		return nil, provider.ErrNotFound
	}
	fc.Lat, fc.Lng = lat, lng

	c.logger.Debug("forecast fetched",
		zap.Float64("lat", lat),
		zap.Float64("lng", lng),
		zap.Int("days", len(fc.Days)),
	)
	return fc, nil
}

type daySamples struct {
	date     string
	temps    []float64
	humidity []float64
	pops     []float64
	winds    []float64
	noon     gjson.Result
	first    gjson.Result
}

// ParseForecast groups the 3-hourly samples of a forecast response by calendar day
func ParseForecast(body []byte) *models.Forecast {
	root := gjson.ParseBytes(body)

	var order []string
	byDate := map[string]*daySamples{}

	root.Get("list").ForEach(func(_, item gjson.Result) bool {
		stamp := item.Get("dt_txt").String()
		date, clock, _ := strings.Cut(stamp, " ")
		if date == "" {
			return true
		}

		d, ok := byDate[date]
		if !ok {
			d = &daySamples{date: date, first: item}
			byDate[date] = d
			order = append(order, date)
		}
		if strings.HasPrefix(clock, "12:00") {
			d.noon = item
		}

		d.temps = append(d.temps, item.Get("main.temp").Float())
		d.humidity = append(d.humidity, item.Get("main.humidity").Float())
		d.pops = append(d.pops, item.Get("pop").Float())
		d.winds = append(d.winds, item.Get("wind.speed").Float())
		return true
	})

	fc := &models.Forecast{
		City: root.Get("city.name").String(),
		Days: []models.DailyForecast{},
	}
	for _, date := range order {
		if len(fc.Days) == MaxDays {
			break
		}
		fc.Days = append(fc.Days, summarize(byDate[date]))
	}
	return fc
}

func summarize(d *daySamples) models.DailyForecast {
	rep := d.noon
	if !rep.Exists() {
		rep = d.first
	}
	weather := rep.Get("weather.0")

	return models.DailyForecast{
		Date:        d.date,
		TempMin:     int(stats.RoundTo(stats.Min(d.temps), 0)),
		TempMax:     int(stats.RoundTo(stats.Max(d.temps), 0)),
		Condition:   weather.Get("main").String(),
		Description: weather.Get("description").String(),
		Icon:        weather.Get("icon").String(),
		Humidity:    int(stats.RoundTo(stats.Mean(d.humidity), 0)),
		PopPercent:  int(stats.RoundTo(stats.Max(d.pops)*100, 0)),
		WindSpeed:   stats.RoundTo(stats.Mean(d.winds), 1),
	}
}
