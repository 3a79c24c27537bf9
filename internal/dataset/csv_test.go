package dataset

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/weatherml/weather-prediction-service/internal/weather"
)

func testRow(city string, ts time.Time, temp float64) weather.Reading {
	return weather.Reading{
		Timestamp:          ts,
		City:               city,
		Temperature:        weather.Float(temp),
		FeelsLike:          weather.Float(temp + 1),
		Pressure:           weather.Float(1010),
		Humidity:           weather.Float(60),
		WindSpeed:          weather.Float(2.5),
		Clouds:             weather.Float(30),
		WeatherMain:        "Clear",
		WeatherDescription: "clear sky",
		AQI:                weather.Int(2),
		PM25:               weather.Float(35.5),
	}
}

func TestAppendAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather_data.csv")
	ts := time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC)

	if err := Append(path, []weather.Reading{testRow("Delhi", ts, 18.5)}); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := Append(path, []weather.Reading{testRow("Mumbai", ts.Add(time.Hour), 27)}); err != nil {
		t.Fatalf("second append: %v", err)
	}

	rows, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("loaded %d rows, want 2", len(rows))
	}

	got := rows[0]
	if got.City != "Delhi" || !got.Timestamp.Equal(ts) {
		t.Errorf("row 0 = %s @ %s", got.City, got.Timestamp)
	}
	if got.Temperature == nil || *got.Temperature != 18.5 {
		t.Errorf("temperature = %v, want 18.5", got.Temperature)
	}
	if got.AQI == nil || *got.AQI != 2 {
		t.Errorf("aqi = %v, want 2", got.AQI)
	}

	// Fields never written stay absent after the round trip.
	if got.PM10 != nil || got.CO != nil || got.WindDeg != nil {
		t.Error("absent fields came back populated")
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	rows, err := Load(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(rows))
	}
}

func TestWriteReplacesExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather_data.csv")
	ts := time.Date(2026, time.February, 10, 8, 0, 0, 0, time.UTC)

	if err := Write(path, []weather.Reading{testRow("Delhi", ts, 18.5), testRow("Pune", ts, 22)}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Write(path, []weather.Reading{testRow("Chennai", ts, 31)}); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	rows, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 1 || rows[0].City != "Chennai" {
		t.Fatalf("rows = %v, want single Chennai row", rows)
	}
}

func TestParseTimestampLegacyLayouts(t *testing.T) {
	for _, s := range []string{
		"2026-02-10T08:00:00Z",
		"2026-02-10 08:00:00.123456",
		"2026-02-10 08:00:00",
	} {
		ts, err := parseTimestamp(s)
		if err != nil {
			t.Errorf("parseTimestamp(%q): %v", s, err)
			continue
		}
		if ts.Year() != 2026 || ts.Hour() != 8 {
			t.Errorf("parseTimestamp(%q) = %s", s, ts)
		}
	}

	if _, err := parseTimestamp("yesterday"); err == nil {
		t.Error("expected error for invalid timestamp")
	}
}
