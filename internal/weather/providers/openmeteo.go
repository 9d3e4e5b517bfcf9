package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jdshaffer/GetWeather/internal/weather"
	"github.com/sony/gobreaker"
)

// Timestamp layout used by Open-Meteo when a timezone parameter is set.
const openMeteoTimeLayout = "2006-01-02T15:04"

// OpenMeteoProvider implements weather.WeatherSource against the Open-Meteo
// forecast API, requesting the JMA seamless model.
type OpenMeteoProvider struct {
	name     string
	baseURL  string
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
	timezone string
	model    string
}

func NewOpenMeteo(client *http.Client, timezone string) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:     "openmeteo",
		baseURL:  "https://api.open-meteo.com/v1/forecast",
		client:   client,
		circuit:  newBreaker("openmeteo"),
		timezone: timezone,
		model:    "jma_seamless",
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) FetchCurrent(ctx context.Context, lat, lon float64) (weather.Observation, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,"+
			"precipitation,cloud_cover,surface_pressure,wind_speed_10m,wind_direction_10m")
		values.Set("timezone", p.timezone)
		values.Set("models", p.model)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.Observation{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			Time            string  `json:"time"`
			Temperature     float64 `json:"temperature_2m"`
			Humidity        float64 `json:"relative_humidity_2m"`
			FeelsLike       float64 `json:"apparent_temperature"`
			Precipitation   float64 `json:"precipitation"`
			CloudCover      float64 `json:"cloud_cover"`
			SurfacePressure float64 `json:"surface_pressure"`
			WindSpeedKmh    float64 `json:"wind_speed_10m"`
			WindDirection   float64 `json:"wind_direction_10m"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Observation{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	ts, err := time.Parse(openMeteoTimeLayout, payload.Current.Time)
	if err != nil {
		ts = time.Now()
	}

	return weather.Observation{
		Timestamp:     ts,
		TemperatureC:  payload.Current.Temperature,
		FeelsLikeC:    payload.Current.FeelsLike,
		HumidityPct:   payload.Current.Humidity,
		PressureHpa:   payload.Current.SurfacePressure,
		WindSpeedMS:   payload.Current.WindSpeedKmh / 3.6,
		WindDirDeg:    payload.Current.WindDirection,
		CloudCoverPct: payload.Current.CloudCover,
		PrecipMM:      payload.Current.Precipitation,
	}, nil
}
