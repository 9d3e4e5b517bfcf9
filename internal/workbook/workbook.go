// Package workbook persists collected rows to an append-only xlsx file with
// a fixed header. Columns are autosized and all cells centered after every
// append so the log stays readable when opened directly.
package workbook

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/jdshaffer/GetWeather/internal/weather"
)

const (
	sheet           = "Sheet1"
	timestampLayout = "2006-01-02 15:04:05"
)

// header defines the fixed column order. It is written once at file
// creation and every appended row conforms to it.
var header = []string{
	"timestamp",
	"temp_c", "feels_like_c", "humidity_pct", "pressure_hpa",
	"wind_speed_ms", "wind_dir_deg", "wind_compass",
	"cloud_cover_pct", "precipitation_mm",
	"pm2_5", "pm10", "co", "no2", "so2", "o3",
	"aqi", "aqi_category", "dominant_pollutant",
}

// Writer appends rows to a single xlsx file, creating it with a header row
// on first use.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Append adds exactly one row after the last occupied row and saves the
// file. Repeated identical rows are not deduplicated.
func (w *Writer) Append(row weather.Row) error {
	f, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read workbook %s: %w", w.path, err)
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("append to workbook %s: %w", w.path, err)
	}
	if err := f.SetSheetRow(sheet, cell, &[]interface{}{
		row.Timestamp.Format(timestampLayout),
		row.Observation.TemperatureC,
		row.Observation.FeelsLikeC,
		row.Observation.HumidityPct,
		row.Observation.PressureHpa,
		row.Observation.WindSpeedMS,
		row.Observation.WindDirDeg,
		weather.Compass(row.Observation.WindDirDeg),
		row.Observation.CloudCoverPct,
		row.Observation.PrecipMM,
		row.Pollutants.PM25,
		row.Pollutants.PM10,
		row.Pollutants.CO,
		row.Pollutants.NO2,
		row.Pollutants.SO2,
		row.Pollutants.O3,
		row.AQI,
		row.AQICategory,
		row.Dominant,
	}); err != nil {
		return fmt.Errorf("append to workbook %s: %w", w.path, err)
	}

	if err := w.format(f, len(rows)+1); err != nil {
		return err
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}

// open loads the existing workbook or creates a fresh one seeded with the
// header row.
func (w *Writer) open() (*excelize.File, error) {
	if _, err := os.Stat(w.path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat workbook %s: %w", w.path, err)
		}
		f := excelize.NewFile()
		cells := headerCells()
		if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
			f.Close()
			return nil, fmt.Errorf("write workbook header: %w", err)
		}
		return f, nil
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", w.path, err)
	}
	return f, nil
}

// format sizes every column to its longest value and centers all cells.
func (w *Writer) format(f *excelize.File, lastRow int) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("format workbook %s: %w", w.path, err)
	}

	for i := range header {
		maxLen := 0
		for _, r := range rows {
			if i < len(r) && len(r[i]) > maxLen {
				maxLen = len(r[i])
			}
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("format workbook %s: %w", w.path, err)
		}
		if err := f.SetColWidth(sheet, col, col, float64(maxLen+2)); err != nil {
			return fmt.Errorf("format workbook %s: %w", w.path, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("format workbook %s: %w", w.path, err)
	}
	lastCell, err := excelize.CoordinatesToCellName(len(header), lastRow)
	if err != nil {
		return fmt.Errorf("format workbook %s: %w", w.path, err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCell, style); err != nil {
		return fmt.Errorf("format workbook %s: %w", w.path, err)
	}
	return nil
}

func headerCells() []interface{} {
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	return cells
}
