// Package aqi derives a US EPA style Air Quality Index from raw pollutant
// concentrations using piecewise-linear interpolation over breakpoint tables.
package aqi

import (
	"errors"
	"fmt"
	"math"

	"github.com/jdshaffer/GetWeather/internal/weather"
)

// ErrInvalidConcentration is returned when a concentration is negative or
// not a finite number.
var ErrInvalidConcentration = errors.New("invalid pollutant concentration")

// Pollutant identifies one of the six tracked pollutants.
type Pollutant string

const (
	PM25 Pollutant = "pm2_5"
	PM10 Pollutant = "pm10"
	CO   Pollutant = "co"
	NO2  Pollutant = "no2"
	SO2  Pollutant = "so2"
	O3   Pollutant = "o3"
)

// Result is the derived index plus the pollutant that produced it.
type Result struct {
	Index    int
	Dominant Pollutant
	Category string
}

// bracket is one breakpoint table entry: concentrations in [CLow, CHigh]
// map linearly onto indices [ILow, IHigh].
type bracket struct {
	CLow, CHigh float64
	ILow, IHigh float64
}

// Breakpoint tables per pollutant, in the tables' native EPA units
// (μg/m³ for particulates, ppm for CO, ppb for the other gases).
// Adjacent brackets share both endpoints, so a value exactly on a boundary
// interpolates to the same sub-index from either side and sub-indices are
// monotonic in concentration. Values above the last bracket clamp to its
// upper index.
var breakpoints = map[Pollutant][]bracket{
	PM25: {
		{0, 12.0, 0, 50}, {12.0, 35.4, 50, 100}, {35.4, 55.4, 100, 150},
		{55.4, 150.4, 150, 200}, {150.4, 250.4, 200, 300},
		{250.4, 350.4, 300, 400}, {350.4, 500.4, 400, 500},
	},
	PM10: {
		{0, 54, 0, 50}, {54, 154, 50, 100}, {154, 254, 100, 150},
		{254, 354, 150, 200}, {354, 424, 200, 300},
		{424, 504, 300, 400}, {504, 604, 400, 500},
	},
	CO: {
		{0, 4.4, 0, 50}, {4.4, 9.4, 50, 100}, {9.4, 12.4, 100, 150},
		{12.4, 15.4, 150, 200}, {15.4, 30.4, 200, 300},
		{30.4, 40.4, 300, 400}, {40.4, 50.4, 400, 500},
	},
	NO2: {
		{0, 53, 0, 50}, {53, 100, 50, 100}, {100, 360, 100, 150},
		{360, 649, 150, 200}, {649, 1249, 200, 300},
		{1249, 1649, 300, 400}, {1649, 2049, 400, 500},
	},
	SO2: {
		{0, 35, 0, 50}, {35, 75, 50, 100}, {75, 185, 100, 150},
		{185, 304, 150, 200}, {304, 604, 200, 300},
		{604, 804, 300, 400}, {804, 1004, 400, 500},
	},
	// The published O3 table stops at index 300.
	O3: {
		{0, 54, 0, 50}, {54, 70, 50, 100}, {70, 85, 100, 150},
		{85, 105, 150, 200}, {105, 200, 200, 300},
	},
}

// Approximate μg/m³ → table-unit factors at 25°C and 1 atm.
const (
	coUgm3ToPpm  = 0.873 / 1000
	no2Ugm3ToPpb = 0.532
	so2Ugm3ToPpb = 0.375
	o3Ugm3ToPpb  = 0.5
)

// precedence fixes the dominant-pollutant tie-break: the first pollutant in
// this order to reach the maximum sub-index wins.
var precedence = []Pollutant{PM25, PM10, CO, NO2, SO2, O3}

// Compute maps a pollutant sample (all concentrations in μg/m³) to an AQI.
// It fails if any concentration is negative or non-finite and never fails
// for values beyond the table range.
func Compute(s weather.PollutantSample) (Result, error) {
	raw := map[Pollutant]float64{
		PM25: s.PM25,
		PM10: s.PM10,
		CO:   s.CO,
		NO2:  s.NO2,
		SO2:  s.SO2,
		O3:   s.O3,
	}

	for _, p := range precedence {
		c := raw[p]
		if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return Result{}, fmt.Errorf("%w: %s = %v", ErrInvalidConcentration, p, c)
		}
	}

	// Gases are reported in μg/m³ but tabulated in ppm/ppb.
	raw[CO] *= coUgm3ToPpm
	raw[NO2] *= no2Ugm3ToPpb
	raw[SO2] *= so2Ugm3ToPpb
	raw[O3] *= o3Ugm3ToPpb

	best := Result{Index: -1}
	for _, p := range precedence {
		sub := subIndex(breakpoints[p], raw[p])
		if idx := int(math.Round(sub)); idx > best.Index {
			best.Index = idx
			best.Dominant = p
		}
	}
	best.Category = Category(best.Index)

	return best, nil
}

// subIndex interpolates a concentration within its bracket, clamping to the
// top of the table when the value exceeds the last breakpoint.
func subIndex(table []bracket, c float64) float64 {
	for _, b := range table {
		if c >= b.CLow && c <= b.CHigh {
			return (b.IHigh-b.ILow)/(b.CHigh-b.CLow)*(c-b.CLow) + b.ILow
		}
	}
	return table[len(table)-1].IHigh
}

// Category returns the EPA descriptor for an index value.
func Category(index int) string {
	switch {
	case index >= 301:
		return "Hazardous"
	case index >= 201:
		return "Very Unhealthy"
	case index >= 151:
		return "Unhealthy"
	case index >= 101:
		return "Unhealthy for Sensitive Groups"
	case index >= 51:
		return "Moderate"
	default:
		return "Good"
	}
}
