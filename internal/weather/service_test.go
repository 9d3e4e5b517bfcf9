package weather

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubWeather struct {
	obs Observation
	err error
}

func (s stubWeather) Name() string { return "stub-weather" }
func (s stubWeather) FetchCurrent(ctx context.Context, lat, lon float64) (Observation, error) {
	return s.obs, s.err
}

type stubAir struct {
	sample PollutantSample
	err    error
}

func (s stubAir) Name() string { return "stub-air" }
func (s stubAir) FetchCurrent(ctx context.Context, lat, lon float64) (PollutantSample, error) {
	return s.sample, s.err
}

type memAppender struct {
	rows []Row
	err  error
}

func (m *memAppender) Append(row Row) error {
	if m.err != nil {
		return m.err
	}
	m.rows = append(m.rows, row)
	return nil
}

func fixedCompute(index int, category, dominant string) ComputeAQI {
	return func(PollutantSample) (int, string, string, error) {
		return index, category, dominant, nil
	}
}

func TestCollectAppendsOneRow(t *testing.T) {
	ts := time.Date(2025, 6, 8, 15, 0, 0, 0, time.UTC)
	obs := Observation{Timestamp: ts, TemperatureC: 21.5, WindSpeedMS: 2.0, WindDirDeg: 135}
	sample := PollutantSample{PM25: 8.4, PM10: 15, CO: 230, NO2: 12.7, SO2: 2.1, O3: 88}

	sink := &memAppender{}
	svc := NewService(34.975, 138.4088,
		stubWeather{obs: obs}, stubAir{sample: sample},
		fixedCompute(42, "Good", "pm2_5"), sink)

	row, err := svc.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.rows) != 1 {
		t.Fatalf("expected exactly one appended row, got %d", len(sink.rows))
	}
	got := sink.rows[0]
	if got != row {
		t.Fatalf("returned row differs from appended row")
	}
	if got.Timestamp != ts || got.Observation != obs || got.Pollutants != sample {
		t.Fatalf("row does not match fetched data: %+v", got)
	}
	if got.AQI != 42 || got.AQICategory != "Good" || got.Dominant != "pm2_5" {
		t.Fatalf("row does not match computed AQI: %+v", got)
	}
}

func TestCollectNoRowOnFetchFailure(t *testing.T) {
	boom := errors.New("boom")
	sink := &memAppender{}

	svc := NewService(0, 0, stubWeather{err: boom}, stubAir{}, fixedCompute(0, "", ""), sink)
	if _, err := svc.Collect(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
	if len(sink.rows) != 0 {
		t.Fatalf("expected no rows after weather fetch failure, got %d", len(sink.rows))
	}

	svc = NewService(0, 0, stubWeather{}, stubAir{err: boom}, fixedCompute(0, "", ""), sink)
	if _, err := svc.Collect(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch error, got %v", err)
	}
	if len(sink.rows) != 0 {
		t.Fatalf("expected no rows after air-quality fetch failure, got %d", len(sink.rows))
	}
}

func TestCollectNoRowOnComputeFailure(t *testing.T) {
	boom := errors.New("bad sample")
	sink := &memAppender{}

	failing := func(PollutantSample) (int, string, string, error) {
		return 0, "", "", boom
	}
	svc := NewService(0, 0, stubWeather{}, stubAir{}, failing, sink)

	if _, err := svc.Collect(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped compute error, got %v", err)
	}
	if len(sink.rows) != 0 {
		t.Fatalf("expected no rows after compute failure, got %d", len(sink.rows))
	}
}

func TestCollectPropagatesAppendFailure(t *testing.T) {
	boom := errors.New("disk full")
	sink := &memAppender{err: boom}

	svc := NewService(0, 0, stubWeather{}, stubAir{}, fixedCompute(1, "Good", "pm2_5"), sink)
	if _, err := svc.Collect(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped append error, got %v", err)
	}
}
