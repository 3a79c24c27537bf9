package mlmodel

import "log"

// ArtifactPaths names the four independently-loadable artifact files.
type ArtifactPaths struct {
	Temperature string
	Humidity    string
	Weather     string
	Scaler      string
}

// Registry holds the artifacts found at start-up. A nil field means the
// capability is disabled for the process lifetime; absence is never a
// request-level error. Loaded artifacts are immutable and safe for
// concurrent readers.
type Registry struct {
	Temperature *TemperatureModel
	Humidity    *RandomForestRegressor
	Weather     *WeatherClassifier
	Scaler      *StandardScaler
}

// LoadRegistry attempts to load every artifact once, logging a diagnostic
// for each one that is missing or unreadable.
func LoadRegistry(paths ArtifactPaths) *Registry {
	reg := &Registry{}

	var temp TemperatureModel
	if err := LoadArtifact(paths.Temperature, &temp); err != nil {
		log.Printf("INFO: temperature model unavailable: %v", err)
	} else {
		reg.Temperature = &temp
	}

	var humidity RandomForestRegressor
	if err := LoadArtifact(paths.Humidity, &humidity); err != nil {
		log.Printf("INFO: humidity model unavailable: %v", err)
	} else {
		reg.Humidity = &humidity
	}

	var clf WeatherClassifier
	if err := LoadArtifact(paths.Weather, &clf); err != nil {
		log.Printf("INFO: weather classifier unavailable: %v", err)
	} else {
		reg.Weather = &clf
	}

	var scaler StandardScaler
	if err := LoadArtifact(paths.Scaler, &scaler); err != nil {
		log.Printf("INFO: feature scaler unavailable: %v", err)
	} else {
		reg.Scaler = &scaler
	}

	return reg
}

// CanPredictTemperature reports whether the temperature model and its scaler
// are both loaded; ml_predictions exists only when this is true.
func (r *Registry) CanPredictTemperature() bool {
	return r.Temperature != nil && r.Scaler != nil
}

func (r *Registry) CanPredictHumidity() bool {
	return r.Humidity != nil
}

func (r *Registry) CanPredictWeather() bool {
	return r.Weather != nil
}
