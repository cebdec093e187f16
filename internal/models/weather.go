package models

// DailyForecast is one calendar day condensed from 3-hourly forecast samples
type DailyForecast struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	TempMin     int     `json:"tempMin"`
	TempMax     int     `json:"tempMax"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	PopPercent  int     `json:"pop"`
	WindSpeed   float64 `json:"windSpeed"`
}

// Forecast is the forecast for a coordinate
type Forecast struct {
	City string          `json:"city,omitempty"`
	Lat  float64         `json:"lat"`
	Lng  float64         `json:"lng"`
	Days []DailyForecast `json:"days"`
}
