package mlmodel

// TemperatureModel is the persisted temperature artifact. Training evaluates
// two candidate algorithms and persists only the winner, so the artifact
// records which one it carries.
type TemperatureModel struct {
	Algorithm string // "random_forest" or "gradient_boosting"
	Forest    *RandomForestRegressor
	Boosting  *GradientBoostingRegressor
}

// Predict dispatches to whichever candidate won training.
func (m *TemperatureModel) Predict(x []float64) float64 {
	if m.Forest != nil {
		return m.Forest.Predict(x)
	}
	if m.Boosting != nil {
		return m.Boosting.Predict(x)
	}
	return 0
}

// WeatherClassifier is the persisted weather-category artifact. The class
// list is stored with the trees so label decoding can never drift from the
// encoding fit at training time.
type WeatherClassifier struct {
	Forest  *RandomForestClassifier
	Classes []string
}

// PredictLabel returns the predicted category label. ok is false when the
// predicted index has no label, in which case the caller omits the field.
func (c *WeatherClassifier) PredictLabel(x []float64) (string, bool) {
	code := c.Forest.Predict(x)
	if code < 0 || code >= len(c.Classes) {
		return "", false
	}
	return c.Classes[code], true
}
