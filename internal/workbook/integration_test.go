package workbook

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jdshaffer/GetWeather/internal/aqi"
	"github.com/jdshaffer/GetWeather/internal/weather"
)

type fixedWeather struct{ obs weather.Observation }

func (f fixedWeather) Name() string { return "fixed-weather" }
func (f fixedWeather) FetchCurrent(ctx context.Context, lat, lon float64) (weather.Observation, error) {
	return f.obs, nil
}

type fixedAir struct{ sample weather.PollutantSample }

func (f fixedAir) Name() string { return "fixed-air" }
func (f fixedAir) FetchCurrent(ctx context.Context, lat, lon float64) (weather.PollutantSample, error) {
	return f.sample, nil
}

// One full pass with canned fetch results must add exactly one row after
// any pre-existing rows, with cells matching the fetched and computed data.
func TestFullPassAppendsMatchingRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.xlsx")
	writer := NewWriter(path)

	// Pre-existing content from an earlier run.
	if err := writer.Append(sampleRow(time.Date(2025, 6, 8, 14, 0, 0, 0, time.UTC), 10)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ts := time.Date(2025, 6, 8, 15, 0, 0, 0, time.UTC)
	obs := weather.Observation{
		Timestamp:    ts,
		TemperatureC: 18.5,
		WindSpeedMS:  3,
		WindDirDeg:   180,
	}
	// PM2.5 at its first bracket top computes to AQI 50, dominant pm2_5.
	sample := weather.PollutantSample{PM25: 12.0}

	compute := func(s weather.PollutantSample) (int, string, string, error) {
		r, err := aqi.Compute(s)
		if err != nil {
			return 0, "", "", err
		}
		return r.Index, r.Category, string(r.Dominant), nil
	}

	svc := weather.NewService(34.975, 138.4088, fixedWeather{obs: obs}, fixedAir{sample: sample}, compute, writer)
	if _, err := svc.Collect(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d rows", len(rows))
	}

	got := rows[2]
	if got[0] != "2025-06-08 15:00:00" {
		t.Fatalf("unexpected timestamp cell: %s", got[0])
	}
	if got[1] != "18.5" {
		t.Fatalf("unexpected temperature cell: %s", got[1])
	}
	if got[7] != "S" {
		t.Fatalf("unexpected compass cell: %s", got[7])
	}
	if got[10] != "12" {
		t.Fatalf("unexpected pm2_5 cell: %s", got[10])
	}
	if got[16] != "50" || got[17] != "Good" || got[18] != "pm2_5" {
		t.Fatalf("unexpected aqi cells: %v", got[16:19])
	}
}
