package weather

import (
	"reflect"
	"testing"
	"time"
)

func fullReading() Reading {
	return Reading{
		City:        "Delhi",
		Temperature: Float(25),
		FeelsLike:   Float(26),
		TempMin:     Float(22),
		TempMax:     Float(28),
		Pressure:    Float(1012),
		Humidity:    Float(55),
		WindSpeed:   Float(3.2),
		WindDeg:     Float(180),
		Clouds:      Float(40),
		WeatherMain: "Clouds",
		AQI:         Int(3),
		PM25:        Float(62.5),
		PM10:        Float(90),
	}
}

func TestExtractFeaturesOrderAndLength(t *testing.T) {
	now := time.Date(2026, time.March, 5, 14, 0, 0, 0, time.UTC)
	fs := ExtractFeatures(fullReading(), now)

	wantTemp := []float64{26, 22, 28, 1012, 55, 3.2, 40, 62.5, 90, 14, 3}
	if !reflect.DeepEqual(fs.Temperature, wantTemp) {
		t.Errorf("temperature vector = %v, want %v", fs.Temperature, wantTemp)
	}

	wantWeather := []float64{25, 55, 1012, 3.2, 40, 62.5, 3, 14, 3}
	if !reflect.DeepEqual(fs.Weather, wantWeather) {
		t.Errorf("weather vector = %v, want %v", fs.Weather, wantWeather)
	}

	wantHumidity := []float64{25, 1012, 3.2, 40, 62.5, 14, 3}
	if !reflect.DeepEqual(fs.Humidity, wantHumidity) {
		t.Errorf("humidity vector = %v, want %v", fs.Humidity, wantHumidity)
	}
}

func TestExtractFeaturesAbsentBecomesZero(t *testing.T) {
	now := time.Date(2026, time.August, 1, 9, 30, 0, 0, time.UTC)
	fs := ExtractFeatures(Reading{City: "Pune"}, now)

	wantTemp := []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 9, 8}
	if !reflect.DeepEqual(fs.Temperature, wantTemp) {
		t.Errorf("temperature vector = %v, want %v", fs.Temperature, wantTemp)
	}
	if len(fs.Weather) != 9 || len(fs.Humidity) != 7 {
		t.Fatalf("vector lengths = %d/%d, want 9/7", len(fs.Weather), len(fs.Humidity))
	}
}

func TestExtractFeaturesDeterministic(t *testing.T) {
	now := time.Date(2026, time.January, 20, 23, 59, 0, 0, time.UTC)
	r := fullReading()

	a := ExtractFeatures(r, now)
	b := ExtractFeatures(r, now)
	if !reflect.DeepEqual(a, b) {
		t.Error("same reading and timestamp produced different feature sets")
	}
}
