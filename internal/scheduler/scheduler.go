// Package scheduler repeats the collection pass in-process when interval
// mode is enabled. The default deployment leaves this unused and relies on
// an external scheduler such as cron.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/jdshaffer/GetWeather/internal/weather"
)

// Scheduler periodically runs the collection pass.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic pass and starts the underlying scheduler.
// The first pass runs immediately.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		row, err := s.service.Collect(ctx)
		if err != nil {
			log.Printf("ERROR: collection pass failed: %v", err)
			return
		}
		log.Printf("INFO: appended row for %s (AQI %d, %s)",
			row.Timestamp.Format("2006-01-02 15:04:05"), row.AQI, row.Dominant)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
