package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Collector resolves a city name to a live Reading.
type Collector interface {
	Fetch(ctx context.Context, city string) (Reading, error)
}

// CollectorConfig configures the OpenWeather collector. Base URLs are
// overridable for tests; empty values fall back to the public endpoints.
type CollectorConfig struct {
	APIKey string

	// GoogleAPIKey enables a secondary geocoding lookup through the Google
	// geocoding API when the OpenWeather geocoder returns no match. The
	// geocoder package holds its key in a package-level variable, so the
	// process entry point assigns geocoder.ApiKey once at start-up; this
	// field only gates whether the lookup is attempted.
	GoogleAPIKey string

	GeoURL     string
	WeatherURL string
	AirURL     string

	// RequestsPerSecond caps outbound calls; 0 disables rate limiting.
	RequestsPerSecond float64
}

const (
	defaultGeoURL     = "http://api.openweathermap.org/geo/1.0/direct"
	defaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"
	defaultAirURL     = "http://api.openweathermap.org/data/2.5/air_pollution"
)

// OpenWeatherCollector fetches current weather and air-pollution readings
// from the OpenWeather API. Outbound calls share a circuit breaker and an
// optional rate limiter; a failed call is reported, not retried.
type OpenWeatherCollector struct {
	cfg     CollectorConfig
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	now     func() time.Time
}

// NewOpenWeatherCollector creates a collector using the shared HTTP client.
func NewOpenWeatherCollector(client *http.Client, cfg CollectorConfig) *OpenWeatherCollector {
	if cfg.GeoURL == "" {
		cfg.GeoURL = defaultGeoURL
	}
	if cfg.WeatherURL == "" {
		cfg.WeatherURL = defaultWeatherURL
	}
	if cfg.AirURL == "" {
		cfg.AirURL = defaultAirURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &OpenWeatherCollector{
		cfg:     cfg,
		client:  client,
		circuit: cb,
		limiter: limiter,
		now:     time.Now,
	}
}

// Fetch resolves the city to coordinates, then assembles a Reading from the
// current-weather and air-pollution endpoints. Returns ErrCityNotFound when
// geocoding has no match, or an *AcquisitionError on transport/HTTP failure.
func (c *OpenWeatherCollector) Fetch(ctx context.Context, city string) (Reading, error) {
	if c.cfg.APIKey == "" {
		return Reading{}, &AcquisitionError{Op: "geocode", Err: fmt.Errorf("openweather api key is not configured")}
	}

	lat, lon, err := c.geocode(ctx, city)
	if err != nil {
		return Reading{}, err
	}

	reading := Reading{
		Timestamp: c.now().UTC(),
		City:      city,
	}

	if err := c.fetchWeather(ctx, lat, lon, &reading); err != nil {
		return Reading{}, err
	}
	if err := c.fetchAirPollution(ctx, lat, lon, &reading); err != nil {
		return Reading{}, err
	}

	return reading, nil
}

func (c *OpenWeatherCollector) geocode(ctx context.Context, city string) (lat, lon float64, err error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("limit", "1")
	values.Set("appid", c.cfg.APIKey)

	resp, err := c.doRequest(ctx, "geocode", c.cfg.GeoURL+"?"+values.Encode())
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	var matches []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return 0, 0, &AcquisitionError{Op: "geocode", Err: err}
	}

	if len(matches) > 0 {
		return matches[0].Lat, matches[0].Lon, nil
	}

	// Secondary lookup through Google geocoding, when configured.
	if c.cfg.GoogleAPIKey != "" {
		loc, gerr := geocoder.Geocoding(geocoder.Address{City: city})
		if gerr == nil {
			return loc.Latitude, loc.Longitude, nil
		}
	}

	return 0, 0, fmt.Errorf("%w: %q", ErrCityNotFound, city)
}

func (c *OpenWeatherCollector) fetchWeather(ctx context.Context, lat, lon float64, r *Reading) error {
	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))
	values.Set("appid", c.cfg.APIKey)
	values.Set("units", "metric")

	resp, err := c.doRequest(ctx, "weather", c.cfg.WeatherURL+"?"+values.Encode())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var payload struct {
		Main struct {
			Temp      *float64 `json:"temp"`
			FeelsLike *float64 `json:"feels_like"`
			TempMin   *float64 `json:"temp_min"`
			TempMax   *float64 `json:"temp_max"`
			Pressure  *float64 `json:"pressure"`
			Humidity  *float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed *float64 `json:"speed"`
			Deg   *float64 `json:"deg"`
		} `json:"wind"`
		Clouds struct {
			All *float64 `json:"all"`
		} `json:"clouds"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return &AcquisitionError{Op: "weather", Err: err}
	}

	r.Temperature = payload.Main.Temp
	r.FeelsLike = payload.Main.FeelsLike
	r.TempMin = payload.Main.TempMin
	r.TempMax = payload.Main.TempMax
	r.Pressure = payload.Main.Pressure
	r.Humidity = payload.Main.Humidity
	r.WindSpeed = payload.Wind.Speed
	r.WindDeg = payload.Wind.Deg
	r.Clouds = payload.Clouds.All
	if len(payload.Weather) > 0 {
		r.WeatherMain = payload.Weather[0].Main
		r.WeatherDescription = payload.Weather[0].Description
	}

	return nil
}

func (c *OpenWeatherCollector) fetchAirPollution(ctx context.Context, lat, lon float64, r *Reading) error {
	values := url.Values{}
	values.Set("lat", formatCoord(lat))
	values.Set("lon", formatCoord(lon))
	values.Set("appid", c.cfg.APIKey)

	resp, err := c.doRequest(ctx, "air_pollution", c.cfg.AirURL+"?"+values.Encode())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			Main struct {
				AQI *int `json:"aqi"`
			} `json:"main"`
			Components struct {
				PM25 *float64 `json:"pm2_5"`
				PM10 *float64 `json:"pm10"`
				CO   *float64 `json:"co"`
				NO2  *float64 `json:"no2"`
				O3   *float64 `json:"o3"`
				SO2  *float64 `json:"so2"`
			} `json:"components"`
		} `json:"list"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return &AcquisitionError{Op: "air_pollution", Err: err}
	}

	if len(payload.List) > 0 {
		entry := payload.List[0]
		r.AQI = entry.Main.AQI
		r.PM25 = entry.Components.PM25
		r.PM10 = entry.Components.PM10
		r.CO = entry.Components.CO
		r.NO2 = entry.Components.NO2
		r.O3 = entry.Components.O3
		r.SO2 = entry.Components.SO2
	}

	return nil
}

// doRequest executes a single GET through the rate limiter and circuit
// breaker. No retries: one failed attempt is definitive for the request.
func (c *OpenWeatherCollector) doRequest(ctx context.Context, op, rawURL string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &AcquisitionError{Op: op, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &AcquisitionError{Op: op, Err: err}
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return nil, &AcquisitionError{Op: op, Err: err}
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, &AcquisitionError{Op: op, Err: fmt.Errorf("unexpected result type from circuit breaker")}
	}
	return resp, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
