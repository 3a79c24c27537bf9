package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/weatherml/weather-prediction-service/internal/dataset"
	"github.com/weatherml/weather-prediction-service/internal/weather"
)

// Scheduler periodically fetches readings for the configured cities and
// appends them to the historical dataset file. It runs in the collector
// process, never inside the serving process: the server's fallback snapshot
// is read-only for its lifetime.
type Scheduler struct {
	scheduler   *gocron.Scheduler
	collector   weather.Collector
	cities      []string
	interval    time.Duration
	datasetPath string
}

// New creates a Scheduler.
func New(cities []string, interval time.Duration, collector weather.Collector, datasetPath string) *Scheduler {
	return &Scheduler{
		scheduler:   gocron.NewScheduler(time.UTC),
		collector:   collector,
		cities:      cities,
		interval:    interval,
		datasetPath: datasetPath,
	}
}

// Start schedules the periodic sweep, running the first one immediately.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		log.Println("scheduler: no cities configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(s.RunSweep)
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

// RunSweep fetches every configured city concurrently and appends the
// successful readings to the dataset in one write. Partial success is fine;
// failed cities are logged and skipped until the next sweep.
func (s *Scheduler) RunSweep() {
	log.Printf("scheduler: collecting readings for %d cities", len(s.cities))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		readings []weather.Reading
	)

	for _, city := range s.cities {
		city := city
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			r, err := s.collector.Fetch(ctx, city)
			if err != nil {
				log.Printf("scheduler: fetch failed for %s: %v", city, err)
				return
			}

			mu.Lock()
			readings = append(readings, r)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(readings) == 0 {
		log.Println("scheduler: no successful readings this sweep")
		return
	}

	if err := dataset.Append(s.datasetPath, readings); err != nil {
		log.Printf("ERROR: scheduler: appending readings failed: %v", err)
		return
	}
	log.Printf("scheduler: appended %d readings", len(readings))
}
