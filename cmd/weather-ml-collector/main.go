package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/kelvins/geocoder"

	"github.com/weatherml/weather-prediction-service/internal/config"
	"github.com/weatherml/weather-prediction-service/internal/scheduler"
	"github.com/weatherml/weather-prediction-service/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	geocoder.ApiKey = cfg.GeocoderAPIKey

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	collector := weather.NewOpenWeatherCollector(httpClient, weather.CollectorConfig{
		APIKey:            cfg.OpenWeatherAPIKey,
		GoogleAPIKey:      cfg.GeocoderAPIKey,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})

	sched := scheduler.New(cfg.Cities, cfg.CollectInterval, collector, cfg.DatasetFile)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	log.Printf("INFO: collecting %d cities every %s into %s",
		len(cfg.Cities), cfg.CollectInterval, cfg.DatasetFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Println("INFO: collector stopping")
}
