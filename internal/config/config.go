package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults point at Shizuoka, Japan. Every value can be overridden from the
// environment or a .env file.
const (
	defaultLatitude   = 34.975
	defaultLongitude  = 138.4088016
	defaultOutputFile = "weather_log.xlsx"
	defaultTimezone   = "Asia/Tokyo"
	defaultTimeout    = 10 * time.Second
)

// AppConfig holds everything a run needs. RunInterval of zero means a
// single pass per process invocation (external cron drives periodicity).
type AppConfig struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`

	OutputFile string `validate:"required"`
	Timezone   string `validate:"required"`

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// RunInterval, when positive, keeps the process alive and repeats the
	// collection pass in-process at this interval.
	RunInterval time.Duration `validate:"gte=0"`
}

var validate = validator.New()

// Load reads configuration from the environment with in-source defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		OutputFile: getenvDefault("OUTPUT_FILE", defaultOutputFile),
		Timezone:   getenvDefault("TIMEZONE", defaultTimezone),
	}

	var err error
	if cfg.Latitude, err = getenvFloat("LATITUDE", defaultLatitude); err != nil {
		return nil, err
	}
	if cfg.Longitude, err = getenvFloat("LONGITUDE", defaultLongitude); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", defaultTimeout); err != nil {
		return nil, err
	}
	if cfg.RunInterval, err = getenvDuration("RUN_INTERVAL", 0); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
