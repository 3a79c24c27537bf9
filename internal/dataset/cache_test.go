package dataset

import (
	"testing"
	"time"

	"github.com/weatherml/weather-prediction-service/internal/weather"
)

func TestCacheLatestForCity(t *testing.T) {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	cache := NewCache([]weather.Reading{
		testRow("X", base, 10),
		testRow("Y", base.Add(time.Hour), 20),
		testRow("X", base.Add(2*time.Hour), 12),
	})

	row, ok := cache.LatestForCity("X")
	if !ok {
		t.Fatal("expected a row for X")
	}
	if *row.Temperature != 12 {
		t.Errorf("temperature = %v, want the most recently inserted X row (12)", *row.Temperature)
	}

	if _, ok := cache.LatestForCity("Z"); ok {
		t.Error("expected no row for Z")
	}
}

func TestCacheLatestOverall(t *testing.T) {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	cache := NewCache([]weather.Reading{
		testRow("X", base, 10),
		testRow("Y", base.Add(time.Hour), 20),
	})

	row, ok := cache.Latest()
	if !ok || row.City != "Y" {
		t.Fatalf("Latest() = %v/%v, want last inserted row (Y)", row.City, ok)
	}
}

func TestCacheEmpty(t *testing.T) {
	cache := NewCache(nil)
	if cache.Len() != 0 {
		t.Fatalf("Len = %d, want 0", cache.Len())
	}
	if _, ok := cache.Latest(); ok {
		t.Error("Latest on empty cache should report no row")
	}
}
