package weather

import (
	"time"
)

// Observation is the normalized current-weather reading for the configured
// location at a point in time. Units are fixed at fetch time: °C, %, hPa,
// m/s (converted from the provider's km/h), degrees, mm.
type Observation struct {
	Timestamp     time.Time
	TemperatureC  float64
	FeelsLikeC    float64
	HumidityPct   float64
	PressureHpa   float64
	WindSpeedMS   float64
	WindDirDeg    float64
	CloudCoverPct float64
	PrecipMM      float64
}

// PollutantSample holds the six current pollutant concentrations,
// each in μg/m³ as delivered by the air-quality API.
type PollutantSample struct {
	PM25 float64
	PM10 float64
	CO   float64
	NO2  float64
	SO2  float64
	O3   float64
}

// Row is one persisted record: the observation, the pollutant sample, and
// the derived AQI fields, flattened in the workbook's fixed column order.
type Row struct {
	Timestamp   time.Time
	Observation Observation
	Pollutants  PollutantSample
	AQI         int
	AQICategory string
	Dominant    string
}

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Compass maps a wind direction in degrees to a 16-point compass label.
// N covers [0, 22.5), NNE [22.5, 45), and so on; 360 wraps back to N.
func Compass(deg float64) string {
	if deg < 0 || deg > 360 {
		return "?"
	}
	idx := int(deg/22.5) % 16
	return compassPoints[idx]
}
