// Package cache stores daily forecasts keyed by geohash cell so nearby lookups share results.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/spatial"
)

// ForecastPrecision is the geohash precision of cache cells (about 4-5 km)
const ForecastPrecision = 5

// ForecastCache stores forecasts with an expiry
type ForecastCache interface {
	Get(ctx context.Context, key string) (*models.Forecast, bool, error)
	Set(ctx context.Context, key string, fc *models.Forecast, ttl time.Duration) error
}

// ForecastKey returns the cache key of the cell containing the coordinate
func ForecastKey(lat, lng float64) string {
	return "forecast:" + spatial.EncodeGeohash(lat, lng, ForecastPrecision)
}

// CellCenter returns the center of the cell a key refers to
func CellCenter(key string) (float64, float64, error) {
	var hash string
	if _, err := fmt.Sscanf(key, "forecast:%s", &hash); err != nil || len(hash) != ForecastPrecision {
		return 0, 0, fmt.Errorf("invalid forecast key %q", key)
	}
	lat, lng := spatial.DecodeGeohash(hash)
	return lat, lng, nil
}

type memoryEntry struct {
	fc      models.Forecast
	expires time.Time
}

// Memory is an in-process ForecastCache
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-process cache
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get returns a copy of a live entry
func (m *Memory) Get(_ context.Context, key string) (*models.Forecast, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, false, nil
	}

	fc := e.fc
	fc.Days = append([]models.DailyForecast(nil), e.fc.Days...)
	return &fc, true, nil
}

// Set stores a copy of fc
func (m *Memory) Set(_ context.Context, key string, fc *models.Forecast, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *fc
	stored.Days = append([]models.DailyForecast(nil), fc.Days...)
	m.entries[key] = memoryEntry{fc: stored, expires: m.now().Add(ttl)}
	return nil
}
