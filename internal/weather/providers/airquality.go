package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jdshaffer/GetWeather/internal/weather"
	"github.com/sony/gobreaker"
)

// AirQualityProvider implements weather.AirQualitySource against the
// Open-Meteo air-quality API. Concentrations come back in μg/m³.
type AirQualityProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewAirQuality(client *http.Client) *AirQualityProvider {
	return &AirQualityProvider{
		name:    "openmeteo-airquality",
		baseURL: "https://air-quality-api.open-meteo.com/v1/air-quality",
		client:  client,
		circuit: newBreaker("openmeteo-airquality"),
	}
}

func (p *AirQualityProvider) Name() string {
	return p.name
}

func (p *AirQualityProvider) FetchCurrent(ctx context.Context, lat, lon float64) (weather.PollutantSample, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("current", "pm2_5,pm10,carbon_monoxide,nitrogen_dioxide,sulphur_dioxide,ozone")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.PollutantSample{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Current struct {
			PM25 *float64 `json:"pm2_5"`
			PM10 *float64 `json:"pm10"`
			CO   *float64 `json:"carbon_monoxide"`
			NO2  *float64 `json:"nitrogen_dioxide"`
			SO2  *float64 `json:"sulphur_dioxide"`
			O3   *float64 `json:"ozone"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.PollutantSample{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	c := payload.Current
	for name, v := range map[string]*float64{
		"pm2_5": c.PM25, "pm10": c.PM10, "carbon_monoxide": c.CO,
		"nitrogen_dioxide": c.NO2, "sulphur_dioxide": c.SO2, "ozone": c.O3,
	} {
		if v == nil {
			return weather.PollutantSample{}, fmt.Errorf("%w: missing field %s", ErrParse, name)
		}
	}

	return weather.PollutantSample{
		PM25: *c.PM25,
		PM10: *c.PM10,
		CO:   *c.CO,
		NO2:  *c.NO2,
		SO2:  *c.SO2,
		O3:   *c.O3,
	}, nil
}
