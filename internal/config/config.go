package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "TOUR"

// Config holds the application configuration
type Config struct {
	Port      string
	DBPath    string
	LogLevel  string
	DevLog    bool
	JWTSecret string
	JWTTTL    time.Duration

	// Requests per second and burst allowed per client IP
	RateLimit float64
	RateBurst int

	SessionTTL  time.Duration
	SweepSpec   string
	DateLayout  string
	RetryMax    int
	HTTPTimeout time.Duration
	ForecastTTL time.Duration
	RedisAddr   string
	CORSOrigins []string

	OpenWeather OpenWeatherConfig
	Google      GoogleConfig
}

// OpenWeatherConfig configures the forecast provider
type OpenWeatherConfig struct {
	APIKey  string
	BaseURL string
}

// GoogleConfig configures the routes and geocoding providers
type GoogleConfig struct {
	APIKey    string
	RoutesURL string
	MapsURL   string
	PlacesURL string
	Region    string
	Language  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", ":8080")
	v.SetDefault("db_path", "./data/tour.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("dev_log", false)
	v.SetDefault("jwt_secret", "change-me-in-production")
	v.SetDefault("jwt_ttl", "24h")
	v.SetDefault("rate_limit", 20.0)
	v.SetDefault("rate_burst", 40)
	v.SetDefault("session_ttl", "6h")
	v.SetDefault("sweep_spec", "@every 10m")
	v.SetDefault("date_layout", "1. 2.")
	v.SetDefault("retry_max", 3)
	v.SetDefault("http_timeout", "10s")
	v.SetDefault("forecast_ttl", "30m")
	v.SetDefault("redis_addr", "")
	v.SetDefault("cors_origins", "*")

	v.SetDefault("openweather.api_key", "")
	v.SetDefault("openweather.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("google.api_key", "")
	v.SetDefault("google.routes_url", "https://routes.googleapis.com")
	v.SetDefault("google.maps_url", "https://maps.googleapis.com/maps/api/geocode")
	v.SetDefault("google.places_url", "https://maps.googleapis.com/maps/api/place")
	v.SetDefault("google.region", "kr")
	v.SetDefault("google.language", "ko")
}

// Load reads configuration from defaults, an optional config file, .env and TOUR_* variables.
// An empty cfgFile skips the file lookup.
func Load(cfgFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return &Config{
		Port:        v.GetString("port"),
		DBPath:      v.GetString("db_path"),
		LogLevel:    v.GetString("log_level"),
		DevLog:      v.GetBool("dev_log"),
		JWTSecret:   v.GetString("jwt_secret"),
		JWTTTL:      v.GetDuration("jwt_ttl"),
		RateLimit:   v.GetFloat64("rate_limit"),
		RateBurst:   v.GetInt("rate_burst"),
		SessionTTL:  v.GetDuration("session_ttl"),
		SweepSpec:   v.GetString("sweep_spec"),
		DateLayout:  v.GetString("date_layout"),
		RetryMax:    v.GetInt("retry_max"),
		HTTPTimeout: v.GetDuration("http_timeout"),
		ForecastTTL: v.GetDuration("forecast_ttl"),
		RedisAddr:   v.GetString("redis_addr"),
		CORSOrigins: splitList(v.GetString("cors_origins")),
		OpenWeather: OpenWeatherConfig{
			APIKey:  v.GetString("openweather.api_key"),
			BaseURL: v.GetString("openweather.base_url"),
		},
		Google: GoogleConfig{
			APIKey:    v.GetString("google.api_key"),
			RoutesURL: v.GetString("google.routes_url"),
			MapsURL:   v.GetString("google.maps_url"),
			PlacesURL: v.GetString("google.places_url"),
			Region:    v.GetString("google.region"),
			Language:  v.GetString("google.language"),
		},
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
