package training

import (
	"fmt"
	"log"
	"math/rand"
	"sort"

	"github.com/weatherml/weather-prediction-service/internal/mlmodel"
	"github.com/weatherml/weather-prediction-service/internal/weather"
)

// Feature column lists. Order matches weather.ExtractFeatures exactly; the
// two must change together with a retrain or inference feeds models
// misaligned inputs.
var (
	tempFeatures = []string{
		"feels_like", "temp_min", "temp_max", "pressure", "humidity",
		"wind_speed", "clouds", "pm2_5", "pm10", "hour", "month",
	}
	weatherFeatures = []string{
		"temperature", "humidity", "pressure", "wind_speed", "clouds",
		"pm2_5", "aqi", "hour", "month",
	}
	humidityFeatures = []string{
		"temperature", "pressure", "wind_speed", "clouds", "pm2_5",
		"hour", "month",
	}
)

// minTrainingRows is the smallest dataset that still yields a non-empty
// held-out split.
const minTrainingRows = 5

// Config holds training hyperparameters. Defaults mirror the sizes the
// serving models were originally tuned with; tests shrink them.
type Config struct {
	Seed         int64
	TestFraction float64

	TempForestTrees   int
	TempForestDepth   int
	TempBoostTrees    int
	TempBoostDepth    int
	BoostLearningRate float64

	WeatherTrees int
	WeatherDepth int

	HumidityTrees int
	HumidityDepth int
}

// DefaultConfig returns the production training configuration.
func DefaultConfig() Config {
	return Config{
		Seed:              42,
		TestFraction:      0.2,
		TempForestTrees:   200,
		TempForestDepth:   15,
		TempBoostTrees:    150,
		TempBoostDepth:    10,
		BoostLearningRate: 0.1,
		WeatherTrees:      200,
		WeatherDepth:      15,
		HumidityTrees:     150,
		HumidityDepth:     12,
	}
}

// Trainer runs the offline training procedure and writes artifacts. The
// three targets are independent: each has its own feature set and split and
// writes only its own files.
type Trainer struct {
	cfg   Config
	paths mlmodel.ArtifactPaths
}

func New(cfg Config, paths mlmodel.ArtifactPaths) *Trainer {
	return &Trainer{cfg: cfg, paths: paths}
}

// TemperatureReport describes the winning temperature candidate.
type TemperatureReport struct {
	Algorithm string
	MAE       float64
	RMSE      float64
	R2        float64
}

// WeatherReport describes the fitted weather-category classifier.
type WeatherReport struct {
	Accuracy float64
	Classes  []string
}

// HumidityReport describes the fitted humidity regressor.
type HumidityReport struct {
	MAE  float64
	RMSE float64
}

// Report aggregates the per-target evaluation results.
type Report struct {
	Rows        int
	Temperature TemperatureReport
	Weather     WeatherReport
	Humidity    HumidityReport
}

// TrainAll trains all three targets on the given dataset and persists their
// artifacts. It fails fast when the dataset is too small to hold out an
// evaluation split.
func (t *Trainer) TrainAll(rows []weather.Reading) (*Report, error) {
	if len(rows) < minTrainingRows {
		return nil, fmt.Errorf("dataset has %d rows, need at least %d", len(rows), minTrainingRows)
	}

	f := buildFrame(rows)
	report := &Report{Rows: len(rows)}

	tempRep, err := t.trainTemperature(f)
	if err != nil {
		return nil, fmt.Errorf("temperature: %w", err)
	}
	report.Temperature = tempRep

	weatherRep, err := t.trainWeatherClassifier(f)
	if err != nil {
		return nil, fmt.Errorf("weather classifier: %w", err)
	}
	report.Weather = weatherRep

	humidityRep, err := t.trainHumidity(f)
	if err != nil {
		return nil, fmt.Errorf("humidity: %w", err)
	}
	report.Humidity = humidityRep

	return report, nil
}

// trainTemperature fits two candidate regressors on the same standardized
// matrix and persists only the lower-MAE one plus the fitted scaler. The
// comparison is strict less-than, so the first-evaluated candidate wins ties.
func (t *Trainer) trainTemperature(f *frame) (TemperatureReport, error) {
	trainIdx, testIdx := splitIndices(f.n, t.cfg.TestFraction, t.cfg.Seed)

	XTrain := f.matrixAt(tempFeatures, trainIdx)
	XTest := f.matrixAt(tempFeatures, testIdx)
	yTrain := f.vectorAt("temperature", trainIdx)
	yTest := f.vectorAt("temperature", testIdx)

	// Scaler is fit on the training split only.
	scaler := mlmodel.FitScaler(XTrain)
	XTrainScaled := scaler.TransformMatrix(XTrain)
	XTestScaled := scaler.TransformMatrix(XTest)

	candidates := []struct {
		algorithm string
		model     mlmodel.Regressor
	}{
		{"random_forest", mlmodel.TrainRandomForestRegressor(
			XTrainScaled, yTrain, t.cfg.TempForestTrees, t.cfg.TempForestDepth, t.cfg.Seed)},
		{"gradient_boosting", mlmodel.TrainGradientBoostingRegressor(
			XTrainScaled, yTrain, t.cfg.TempBoostTrees, t.cfg.TempBoostDepth, t.cfg.BoostLearningRate)},
	}

	maes := make([]float64, len(candidates))
	reports := make([]TemperatureReport, len(candidates))
	for i, c := range candidates {
		pred := predictAll(c.model, XTestScaled)
		reports[i] = TemperatureReport{
			Algorithm: c.algorithm,
			MAE:       meanAbsoluteError(yTest, pred),
			RMSE:      rootMeanSquaredError(yTest, pred),
			R2:        rSquared(yTest, pred),
		}
		maes[i] = reports[i].MAE
		log.Printf("INFO: temperature candidate %s: MAE=%.3f RMSE=%.3f R2=%.3f",
			c.algorithm, reports[i].MAE, reports[i].RMSE, reports[i].R2)
	}

	best := pickLower(maes)
	winner := &mlmodel.TemperatureModel{Algorithm: candidates[best].algorithm}
	switch m := candidates[best].model.(type) {
	case *mlmodel.RandomForestRegressor:
		winner.Forest = m
	case *mlmodel.GradientBoostingRegressor:
		winner.Boosting = m
	}

	if err := mlmodel.SaveArtifact(t.paths.Temperature, winner); err != nil {
		return TemperatureReport{}, err
	}
	if err := mlmodel.SaveArtifact(t.paths.Scaler, scaler); err != nil {
		return TemperatureReport{}, err
	}

	return reports[best], nil
}

// trainWeatherClassifier label-encodes weather_main and fits a single
// multi-class forest. The class list is persisted inside the artifact.
// Rows without a label are excluded; mean imputation covers numeric
// columns only.
func (t *Trainer) trainWeatherClassifier(f *frame) (WeatherReport, error) {
	labeled := make([]int, 0, f.n)
	for i, l := range f.labels {
		if l != "" {
			labeled = append(labeled, i)
		}
	}
	if len(labeled) < minTrainingRows {
		return WeatherReport{}, fmt.Errorf("only %d labeled rows", len(labeled))
	}

	classes := encodeClasses(f.labels, labeled)
	classIndex := make(map[string]int, len(classes))
	for i, c := range classes {
		classIndex[c] = i
	}

	y := make([]int, f.n)
	for _, i := range labeled {
		y[i] = classIndex[f.labels[i]]
	}

	trainPos, testPos := splitIndices(len(labeled), t.cfg.TestFraction, t.cfg.Seed)
	trainIdx := pick(labeled, trainPos)
	testIdx := pick(labeled, testPos)

	XTrain := f.matrixAt(weatherFeatures, trainIdx)
	XTest := f.matrixAt(weatherFeatures, testIdx)
	yTrain := pick(y, trainIdx)
	yTest := pick(y, testIdx)

	forest := mlmodel.TrainRandomForestClassifier(
		XTrain, yTrain, len(classes), t.cfg.WeatherTrees, t.cfg.WeatherDepth, t.cfg.Seed)

	pred := make([]int, len(XTest))
	for i, x := range XTest {
		pred[i] = forest.Predict(x)
	}
	accuracy := accuracyScore(yTest, pred)
	log.Printf("INFO: weather classifier: accuracy=%.3f classes=%v", accuracy, classes)

	artifact := &mlmodel.WeatherClassifier{Forest: forest, Classes: classes}
	if err := mlmodel.SaveArtifact(t.paths.Weather, artifact); err != nil {
		return WeatherReport{}, err
	}

	return WeatherReport{Accuracy: accuracy, Classes: classes}, nil
}

// trainHumidity fits a single regressor on unscaled features and persists it
// unconditionally.
func (t *Trainer) trainHumidity(f *frame) (HumidityReport, error) {
	trainIdx, testIdx := splitIndices(f.n, t.cfg.TestFraction, t.cfg.Seed)

	XTrain := f.matrixAt(humidityFeatures, trainIdx)
	XTest := f.matrixAt(humidityFeatures, testIdx)
	yTrain := f.vectorAt("humidity", trainIdx)
	yTest := f.vectorAt("humidity", testIdx)

	model := mlmodel.TrainRandomForestRegressor(
		XTrain, yTrain, t.cfg.HumidityTrees, t.cfg.HumidityDepth, t.cfg.Seed)

	pred := predictAll(model, XTest)
	report := HumidityReport{
		MAE:  meanAbsoluteError(yTest, pred),
		RMSE: rootMeanSquaredError(yTest, pred),
	}
	log.Printf("INFO: humidity model: MAE=%.3f RMSE=%.3f", report.MAE, report.RMSE)

	if err := mlmodel.SaveArtifact(t.paths.Humidity, model); err != nil {
		return HumidityReport{}, err
	}
	return report, nil
}

// splitIndices produces a reproducible 80/20-style shuffle split. The same
// seed always yields the same held-out rows.
func splitIndices(n int, testFraction float64, seed int64) (train, test []int) {
	nTest := int(float64(n) * testFraction)
	if nTest < 1 {
		nTest = 1
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[nTest:], perm[:nTest]
}

// pickLower returns the index of the lowest score. Earlier entries win ties:
// the comparison is strict less-than.
func pickLower(scores []float64) int {
	best := 0
	for i, s := range scores {
		if s < scores[best] {
			best = i
		}
	}
	return best
}

// encodeClasses returns the sorted unique labels at the given rows.
func encodeClasses(labels []string, idx []int) []string {
	seen := make(map[string]struct{})
	for _, i := range idx {
		seen[labels[i]] = struct{}{}
	}
	classes := make([]string, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	return classes
}

func predictAll(m mlmodel.Regressor, X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, x := range X {
		out[i] = m.Predict(x)
	}
	return out
}

func pick(src []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = src[j]
	}
	return out
}
