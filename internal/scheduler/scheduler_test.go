package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/weatherml/weather-prediction-service/internal/dataset"
	"github.com/weatherml/weather-prediction-service/internal/weather"
)

type stubCollector struct {
	failFor map[string]bool
}

func (s *stubCollector) Fetch(ctx context.Context, city string) (weather.Reading, error) {
	if s.failFor[city] {
		return weather.Reading{}, errors.New("upstream down")
	}
	return weather.Reading{
		Timestamp:   time.Date(2025, 7, 10, 6, 0, 0, 0, time.UTC),
		City:        city,
		Temperature: weather.Float(29),
		WeatherMain: "Clear",
	}, nil
}

func TestRunSweepAppendsSuccesses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.csv")
	col := &stubCollector{failFor: map[string]bool{"Mumbai": true}}

	s := New([]string{"Delhi", "Mumbai", "Pune"}, time.Hour, col, path)
	s.RunSweep()

	rows, err := dataset.Load(path)
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("dataset has %d rows, want 2 (failed city skipped)", len(rows))
	}

	seen := map[string]bool{}
	for _, r := range rows {
		seen[r.City] = true
	}
	if !seen["Delhi"] || !seen["Pune"] || seen["Mumbai"] {
		t.Errorf("unexpected cities in dataset: %v", seen)
	}
}

func TestRunSweepAllFailuresWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.csv")
	col := &stubCollector{failFor: map[string]bool{"Delhi": true}}

	s := New([]string{"Delhi"}, time.Hour, col, path)
	s.RunSweep()

	rows, err := dataset.Load(path)
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("dataset has %d rows, want none", len(rows))
	}
}
