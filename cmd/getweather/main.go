package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jdshaffer/GetWeather/internal/aqi"
	"github.com/jdshaffer/GetWeather/internal/config"
	"github.com/jdshaffer/GetWeather/internal/scheduler"
	"github.com/jdshaffer/GetWeather/internal/weather"
	"github.com/jdshaffer/GetWeather/internal/weather/providers"
	"github.com/jdshaffer/GetWeather/internal/workbook"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	weatherSrc := providers.NewOpenMeteo(httpClient, cfg.Timezone)
	airSrc := providers.NewAirQuality(httpClient)
	writer := workbook.NewWriter(cfg.OutputFile)

	compute := func(s weather.PollutantSample) (int, string, string, error) {
		r, err := aqi.Compute(s)
		if err != nil {
			return 0, "", "", err
		}
		return r.Index, r.Category, string(r.Dominant), nil
	}

	service := weather.NewService(cfg.Latitude, cfg.Longitude, weatherSrc, airSrc, compute, writer)

	// Interval mode keeps the process alive and repeats the pass in-process.
	if cfg.RunInterval > 0 {
		sched := scheduler.New(cfg.RunInterval, service)
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		return
	}

	// Default: one pass per invocation; external cron drives periodicity.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout*3)
	defer cancel()

	row, err := service.Collect(ctx)
	if err != nil {
		log.Printf("ERROR: collection pass failed: %v", err)
		os.Exit(1)
	}

	log.Printf("INFO: appended row for %s to %s (AQI %d %s, dominant %s)",
		row.Timestamp.Format("2006-01-02 15:04:05"), cfg.OutputFile,
		row.AQI, row.AQICategory, row.Dominant)
}
