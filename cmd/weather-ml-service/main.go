package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kelvins/geocoder"

	httpapi "github.com/weatherml/weather-prediction-service/internal/api/http"
	"github.com/weatherml/weather-prediction-service/internal/config"
	"github.com/weatherml/weather-prediction-service/internal/dataset"
	"github.com/weatherml/weather-prediction-service/internal/mlmodel"
	"github.com/weatherml/weather-prediction-service/internal/predict"
	"github.com/weatherml/weather-prediction-service/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// The geocoder package keys itself through a package-level variable;
	// set it once here before any collector is constructed.
	geocoder.ApiKey = cfg.GeocoderAPIKey

	// Shared HTTP client for outbound OpenWeather calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	collector := weather.NewOpenWeatherCollector(httpClient, weather.CollectorConfig{
		APIKey:            cfg.OpenWeatherAPIKey,
		GoogleAPIKey:      cfg.GeocoderAPIKey,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})

	// Model artifacts load once; anything missing stays a disabled
	// capability until the process restarts after retraining.
	registry := mlmodel.LoadRegistry(cfg.ArtifactPaths())

	// Fallback snapshot, read-only for the process lifetime.
	cache, err := dataset.LoadCache(cfg.DatasetFile)
	if err != nil {
		log.Fatalf("failed to load historical dataset: %v", err)
	}
	log.Printf("INFO: loaded %d historical rows from %s", cache.Len(), cfg.DatasetFile)

	resolver := predict.New(collector, registry, cache)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-ml-service",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-ml-service",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Resolver:    resolver,
		Collector:   collector,
		Cache:       cache,
		Cities:      cfg.Cities,
		DefaultCity: cfg.DefaultCity,
	})

	// Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
