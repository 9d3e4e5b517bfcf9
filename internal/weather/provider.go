package weather

import (
	"context"
)

// WeatherSource abstracts the current-conditions upstream (Open-Meteo forecast API).
type WeatherSource interface {
	Name() string
	FetchCurrent(ctx context.Context, lat, lon float64) (Observation, error)
}

// AirQualitySource abstracts the pollutant-concentration upstream
// (Open-Meteo air-quality API).
type AirQualitySource interface {
	Name() string
	FetchCurrent(ctx context.Context, lat, lon float64) (PollutantSample, error)
}

// Appender is the contract the workbook writer (and any future persistent
// sink) must satisfy. Each call adds exactly one row.
type Appender interface {
	Append(row Row) error
}
