package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kelvins/geocoder"
)

const geoPayload = `[{"name":"Delhi","lat":28.6139,"lon":77.209}]`

const weatherPayload = `{
	"main": {"temp": 25.5, "feels_like": 26.1, "temp_min": 22.0, "temp_max": 28.0,
	         "pressure": 1012, "humidity": 55},
	"wind": {"speed": 3.2, "deg": 180},
	"clouds": {"all": 40},
	"weather": [{"main": "Clouds", "description": "scattered clouds"}]
}`

const airPayload = `{
	"list": [{"main": {"aqi": 3},
	          "components": {"pm2_5": 62.5, "pm10": 90.1, "co": 500, "no2": 20, "o3": 60, "so2": 10}}]
}`

func newTestCollector(t *testing.T, handler http.Handler) (*OpenWeatherCollector, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	collector := NewOpenWeatherCollector(server.Client(), CollectorConfig{
		APIKey:     "test-key",
		GeoURL:     server.URL + "/geo",
		WeatherURL: server.URL + "/weather",
		AirURL:     server.URL + "/air",
	})
	return collector, server
}

func stubHandler(geo, weather, air string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/geo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geo)
	})
	mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, weather)
	})
	mux.HandleFunc("/air", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, air)
	})
	return mux
}

func TestFetchAssemblesReading(t *testing.T) {
	collector, _ := newTestCollector(t, stubHandler(geoPayload, weatherPayload, airPayload))

	reading, err := collector.Fetch(context.Background(), "Delhi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reading.City != "Delhi" {
		t.Errorf("city = %q, want Delhi", reading.City)
	}
	if reading.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
	if reading.Temperature == nil || *reading.Temperature != 25.5 {
		t.Errorf("temperature = %v, want 25.5", reading.Temperature)
	}
	if reading.FeelsLike == nil || *reading.FeelsLike != 26.1 {
		t.Errorf("feels_like = %v, want 26.1", reading.FeelsLike)
	}
	if reading.WeatherMain != "Clouds" || reading.WeatherDescription != "scattered clouds" {
		t.Errorf("weather = %q/%q", reading.WeatherMain, reading.WeatherDescription)
	}
	if reading.AQI == nil || *reading.AQI != 3 {
		t.Errorf("aqi = %v, want 3", reading.AQI)
	}
	if reading.PM25 == nil || *reading.PM25 != 62.5 {
		t.Errorf("pm2_5 = %v, want 62.5", reading.PM25)
	}
	if reading.SO2 == nil || *reading.SO2 != 10 {
		t.Errorf("so2 = %v, want 10", reading.SO2)
	}
}

func TestFetchPreservesAbsentFields(t *testing.T) {
	// Upstream omits wind and most air components entirely.
	sparseWeather := `{"main": {"temp": 20.0}, "weather": [{"main": "Clear", "description": "clear sky"}]}`
	sparseAir := `{"list": [{"main": {"aqi": 2}, "components": {}}]}`
	collector, _ := newTestCollector(t, stubHandler(geoPayload, sparseWeather, sparseAir))

	reading, err := collector.Fetch(context.Background(), "Delhi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reading.Temperature == nil || *reading.Temperature != 20.0 {
		t.Errorf("temperature = %v, want 20.0", reading.Temperature)
	}
	for name, v := range map[string]*float64{
		"feels_like": reading.FeelsLike,
		"wind_speed": reading.WindSpeed,
		"clouds":     reading.Clouds,
		"pm2_5":      reading.PM25,
		"pm10":       reading.PM10,
	} {
		if v != nil {
			t.Errorf("%s = %v, want absent", name, *v)
		}
	}
}

func TestFetchUnknownCity(t *testing.T) {
	collector, _ := newTestCollector(t, stubHandler(`[]`, weatherPayload, airPayload))

	_, err := collector.Fetch(context.Background(), "Nowhereville")
	if !errors.Is(err, ErrCityNotFound) {
		t.Fatalf("error = %v, want ErrCityNotFound", err)
	}
}

func TestFetchUpstreamFailureIsAcquisitionError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geoPayload)
	})
	mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	collector, _ := newTestCollector(t, mux)

	_, err := collector.Fetch(context.Background(), "Delhi")

	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Fatalf("error = %v, want *AcquisitionError", err)
	}
	if acqErr.Op != "weather" {
		t.Errorf("op = %q, want weather", acqErr.Op)
	}
}

func TestNewCollectorDoesNotTouchGeocoderState(t *testing.T) {
	// geocoder.ApiKey is process-global and owned by main; constructing a
	// collector must not overwrite it.
	saved := geocoder.ApiKey
	t.Cleanup(func() { geocoder.ApiKey = saved })

	geocoder.ApiKey = "set-by-main"
	NewOpenWeatherCollector(http.DefaultClient, CollectorConfig{
		APIKey:       "test-key",
		GoogleAPIKey: "another-key",
	})

	if geocoder.ApiKey != "set-by-main" {
		t.Errorf("geocoder.ApiKey = %q, constructor overwrote process-global state", geocoder.ApiKey)
	}
}

func TestFetchWithoutAPIKey(t *testing.T) {
	collector := NewOpenWeatherCollector(http.DefaultClient, CollectorConfig{})

	_, err := collector.Fetch(context.Background(), "Delhi")
	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Fatalf("error = %v, want *AcquisitionError", err)
	}
}
