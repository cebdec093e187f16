package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jengzang/tour-planner-go/internal/cache"
	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/spatial"
	"go.uber.org/zap"
)

// ForecastProvider fetches daily forecasts for a coordinate
type ForecastProvider interface {
	Forecast(ctx context.Context, lat, lng float64) (*models.Forecast, error)
}

// WeatherService serves forecasts through a geohash cell cache
type WeatherService struct {
	provider ForecastProvider
	cache    cache.ForecastCache
	ttl      time.Duration
	planner  *PlannerService
	logger   *zap.Logger
}

// NewWeatherService creates a weather service
func NewWeatherService(provider ForecastProvider, fc cache.ForecastCache, ttl time.Duration,
	planner *PlannerService, logger *zap.Logger) *WeatherService {
	return &WeatherService{provider: provider, cache: fc, ttl: ttl, planner: planner, logger: logger}
}

// Forecast returns the forecast for the cache cell containing the coordinate.
// Cache failures are logged and fall through to the provider.
func (s *WeatherService) Forecast(ctx context.Context, lat, lng float64) (*models.Forecast, error) {
	if !spatial.ValidCoordinates(lat, lng) {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}

	key := cache.ForecastKey(lat, lng)
	fc, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("forecast cache read failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		return fc, nil
	}

	// query at the cell center so every coordinate in the cell gets the same answer
	cLat, cLng, err := cache.CellCenter(key)
	if err != nil {
		return nil, err
	}

	fc, err = s.provider.Forecast(ctx, cLat, cLng)
	if err != nil {
		return nil, fmt.Errorf("forecast lookup failed: %w", err)
	}

	if err := s.cache.Set(ctx, key, fc, s.ttl); err != nil {
		s.logger.Warn("forecast cache write failed", zap.String("key", key), zap.Error(err))
	}
	return fc, nil
}

// PlaceForecast returns the forecast for a session's place of interest
func (s *WeatherService) PlaceForecast(ctx context.Context, sessionID string, index int) (*models.Forecast, error) {
	loc, ok, err := s.planner.TravelPlace(sessionID, index)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no travel place at index %d", ErrInvalidInput, index)
	}

	fc, err := s.Forecast(ctx, loc.Lat, loc.Lng)
	if err != nil {
		return nil, err
	}
	if loc.PlaceName != "" {
		named := *fc
		named.City = loc.PlaceName
		return &named, nil
	}
	return fc, nil
}
