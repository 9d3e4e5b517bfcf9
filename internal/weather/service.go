package weather

import (
	"context"
	"fmt"
	"log"
	"time"
)

// ComputeAQI derives the index, category, and dominant pollutant for a
// sample. Wired in from the aqi package so the service stays free of the
// table constants and tests can substitute a stub.
type ComputeAQI func(PollutantSample) (index int, category string, dominant string, err error)

// Service runs one collection pass: fetch current weather and pollutant
// concentrations for the configured coordinates, derive the AQI, and append
// a single row to the sink.
type Service struct {
	lat, lon float64
	weather  WeatherSource
	air      AirQualitySource
	compute  ComputeAQI
	sink     Appender
}

func NewService(lat, lon float64, ws WeatherSource, as AirQualitySource, compute ComputeAQI, sink Appender) *Service {
	return &Service{
		lat:     lat,
		lon:     lon,
		weather: ws,
		air:     as,
		compute: compute,
		sink:    sink,
	}
}

// Collect performs a single pass. Any stage error aborts the pass before
// the append, so a failed run never writes a partial row.
func (s *Service) Collect(ctx context.Context) (Row, error) {
	obs, err := s.weather.FetchCurrent(ctx, s.lat, s.lon)
	if err != nil {
		return Row{}, fmt.Errorf("fetch weather (%s): %w", s.weather.Name(), err)
	}
	log.Printf("INFO: fetched current weather from %s", s.weather.Name())

	sample, err := s.air.FetchCurrent(ctx, s.lat, s.lon)
	if err != nil {
		return Row{}, fmt.Errorf("fetch air quality (%s): %w", s.air.Name(), err)
	}
	log.Printf("INFO: fetched pollutant concentrations from %s", s.air.Name())

	index, category, dominant, err := s.compute(sample)
	if err != nil {
		return Row{}, fmt.Errorf("compute aqi: %w", err)
	}

	row := Row{
		Timestamp:   obs.Timestamp,
		Observation: obs,
		Pollutants:  sample,
		AQI:         index,
		AQICategory: category,
		Dominant:    dominant,
	}
	if row.Timestamp.IsZero() {
		row.Timestamp = time.Now()
	}

	if err := s.sink.Append(row); err != nil {
		return Row{}, fmt.Errorf("append row: %w", err)
	}

	return row, nil
}
