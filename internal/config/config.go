package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/weatherml/weather-prediction-service/internal/mlmodel"
)

// defaultCities is the fixed set of tracked cities; overridable via CITIES.
const defaultCities = "Delhi,Mumbai,Bangalore,Chennai,Kolkata,Hyderabad,Pune,Ahmedabad"

type AppConfig struct {
	OpenWeatherAPIKey string
	// GeocoderAPIKey enables the secondary Google geocoding lookup.
	GeocoderAPIKey string

	Cities      []string
	DefaultCity string

	DataDir     string
	ModelDir    string
	DatasetFile string

	// HTTPTimeout bounds each outbound call to the weather source.
	HTTPTimeout time.Duration

	// CollectInterval controls how often the collector sweeps all cities.
	CollectInterval time.Duration

	// RequestsPerSecond caps outbound OpenWeather calls (0 = unlimited).
	RequestsPerSecond float64

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	cities := strings.Split(getenvDefault("CITIES", defaultCities), ",")
	for i := range cities {
		cities[i] = strings.TrimSpace(cities[i])
	}
	cfg.Cities = cities
	if len(cfg.Cities) == 0 || cfg.Cities[0] == "" {
		return nil, fmt.Errorf("CITIES must name at least one city")
	}

	cfg.DefaultCity = getenvDefault("DEFAULT_CITY", cfg.Cities[0])

	cfg.DataDir = getenvDefault("DATA_DIR", "data")
	cfg.ModelDir = getenvDefault("MODEL_DIR", "models")
	cfg.DatasetFile = getenvDefault("DATASET_FILE", filepath.Join(cfg.DataDir, "weather_data.csv"))

	timeout, err := getenvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	interval, err := getenvDuration("COLLECT_INTERVAL", 2*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.CollectInterval = interval

	cfg.RequestsPerSecond = getenvFloat("OPENWEATHER_RPS", 5)
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// ArtifactPaths locates the four model artifact files under ModelDir.
func (c *AppConfig) ArtifactPaths() mlmodel.ArtifactPaths {
	return mlmodel.ArtifactPaths{
		Temperature: filepath.Join(c.ModelDir, "temperature_model.gob"),
		Humidity:    filepath.Join(c.ModelDir, "humidity_model.gob"),
		Weather:     filepath.Join(c.ModelDir, "weather_classifier.gob"),
		Scaler:      filepath.Join(c.ModelDir, "scaler.gob"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
