package predict

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/weatherml/weather-prediction-service/internal/common"
	"github.com/weatherml/weather-prediction-service/internal/dataset"
	"github.com/weatherml/weather-prediction-service/internal/mlmodel"
	"github.com/weatherml/weather-prediction-service/internal/weather"
)

// Source reports how a prediction was resolved.
type Source string

const (
	// SourceLive means the prediction was built from a fresh acquisition.
	SourceLive Source = "live"
	// SourceFallbackCity means live acquisition failed and the most recent
	// cached row for the requested city was substituted.
	SourceFallbackCity Source = "fallback_city"
	// SourceFallbackAny means no cached row matched the requested city, so
	// the most recent row overall was substituted, relabelled with the
	// requested city name.
	SourceFallbackAny Source = "fallback_any"
)

// InferenceError reports that a loaded artifact could not score a live
// reading. The usual cause is a stale artifact persisted against an older
// feature layout; artifacts carry no schema version, so the mismatch only
// shows up at scoring time.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// Resolver orchestrates acquisition, feature extraction, inference and
// response assembly, degrading to the cached historical dataset when live
// acquisition fails. All dependencies are immutable after construction, so a
// Resolver is safe for concurrent requests.
type Resolver struct {
	collector weather.Collector
	models    *mlmodel.Registry
	cache     *dataset.Cache
	now       func() time.Time
}

func New(collector weather.Collector, models *mlmodel.Registry, cache *dataset.Cache) *Resolver {
	return &Resolver{
		collector: collector,
		models:    models,
		cache:     cache,
		now:       time.Now,
	}
}

// Predict resolves a prediction for the city. Acquisition gets exactly one
// attempt; on acquisition or inference failure the resolver falls back to the
// cached dataset, and only an empty dataset surfaces an error to the caller.
func (r *Resolver) Predict(ctx context.Context, city string) (weather.Prediction, Source, error) {
	reading, err := r.collector.Fetch(ctx, city)
	if err != nil {
		log.Printf("INFO: live acquisition failed for %s, using fallback: %v", city, err)
		return r.fallback(city)
	}

	p, err := r.assembleLive(reading)
	if err != nil {
		log.Printf("INFO: inference failed for %s, using fallback: %v", city, err)
		return r.fallback(city)
	}
	return p, SourceLive, nil
}

// assembleLive builds the full response from a live reading: the verbatim
// current block, model predictions for whichever artifacts are loaded, and
// health advice from the live AQI/PM2.5. A non-nil error means inference
// failed and the caller should fall back.
func (r *Resolver) assembleLive(reading weather.Reading) (weather.Prediction, error) {
	p := weather.Prediction{
		City:         reading.City,
		Timestamp:    reading.Timestamp,
		Current:      weather.CurrentFrom(reading),
		HealthAdvice: weather.HealthAdvice(reading.AQI, reading.PM25),
	}

	if !r.models.CanPredictTemperature() {
		return p, nil
	}

	ml, err := r.inference(reading)
	if err != nil {
		return weather.Prediction{}, err
	}
	p.ML = ml
	return p, nil
}

// inference scores the reading with the loaded artifacts. A stale artifact
// trained against a different feature layout can index past the live vector's
// bounds, so the whole block converts panics into an *InferenceError.
func (r *Resolver) inference(reading weather.Reading) (ml *weather.MLPredictions, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			ml = nil
			err = &InferenceError{Err: fmt.Errorf("%v", rec)}
		}
	}()

	features := weather.ExtractFeatures(reading, r.now())

	if got, want := len(features.Temperature), len(r.models.Scaler.Mean); got != want {
		return nil, &InferenceError{Err: fmt.Errorf("scaler expects %d features, live vector has %d", want, got)}
	}

	predTemp := r.models.Temperature.Predict(r.models.Scaler.Transform(features.Temperature))
	liveTemp := 0.0
	if reading.Temperature != nil {
		liveTemp = *reading.Temperature
	}
	ml = &weather.MLPredictions{
		PredictedTemperature: common.Round2(predTemp),
		TempDifference:       common.Round2(predTemp - liveTemp),
	}

	if r.models.CanPredictHumidity() {
		h := common.Round2(r.models.Humidity.Predict(features.Humidity))
		ml.PredictedHumidity = &h
	}

	if r.models.CanPredictWeather() {
		if label, ok := r.models.Weather.PredictLabel(features.Weather); ok {
			ml.PredictedWeather = label
		}
	}

	return ml, nil
}

// fallback serves the most recent cached row for the city, or the most
// recent row overall when the city has no history. The substituted row keeps
// the requested city's name even when it describes another city; downstream
// consumers rely on that labelling.
func (r *Resolver) fallback(city string) (weather.Prediction, Source, error) {
	if r.cache == nil || r.cache.Len() == 0 {
		return weather.Prediction{}, "", fmt.Errorf("no prediction available for %q: %w", city, dataset.ErrEmptyDataset)
	}

	source := SourceFallbackCity
	row, ok := r.cache.LatestForCity(city)
	if !ok {
		row, _ = r.cache.Latest()
		source = SourceFallbackAny
	}

	return weather.Prediction{
		City:         city,
		Timestamp:    row.Timestamp,
		Current:      weather.CurrentFrom(row),
		HealthAdvice: weather.HealthAdvice(row.AQI, row.PM25),
	}, source, nil
}
