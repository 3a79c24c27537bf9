package mlmodel

import (
	"math"
	"math/rand"
	"path/filepath"
	"testing"
)

// syntheticRegression builds rows where the target is a simple function of
// the first two features.
func syntheticRegression(n int, seed int64) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := range X {
		a := rng.Float64() * 10
		b := rng.Float64() * 10
		X[i] = []float64{a, b, rng.Float64()}
		y[i] = 2*a + b
	}
	return X, y
}

func TestRandomForestRegressorLearns(t *testing.T) {
	X, y := syntheticRegression(200, 1)
	forest := TrainRandomForestRegressor(X, y, 25, 8, 42)

	var sumAbs float64
	for i := range X {
		sumAbs += math.Abs(forest.Predict(X[i]) - y[i])
	}
	mae := sumAbs / float64(len(X))
	if mae > 2.0 {
		t.Errorf("training MAE = %.3f, want under 2.0", mae)
	}
}

func TestRandomForestRegressorDeterministicPerSeed(t *testing.T) {
	X, y := syntheticRegression(100, 2)

	a := TrainRandomForestRegressor(X, y, 10, 6, 42)
	b := TrainRandomForestRegressor(X, y, 10, 6, 42)

	probe := []float64{5, 5, 0.5}
	if a.Predict(probe) != b.Predict(probe) {
		t.Error("same seed produced different forests")
	}
}

func TestForestPersistenceRoundTrip(t *testing.T) {
	X, y := syntheticRegression(100, 3)
	forest := TrainRandomForestRegressor(X, y, 10, 6, 42)

	path := filepath.Join(t.TempDir(), "forest.gob")
	if err := SaveArtifact(path, forest); err != nil {
		t.Fatalf("save: %v", err)
	}

	var loaded RandomForestRegressor
	if err := LoadArtifact(path, &loaded); err != nil {
		t.Fatalf("load: %v", err)
	}

	// Loaded model must behave as a pure function identical to the source,
	// call after call.
	probe := []float64{3, 7, 0.1}
	want := forest.Predict(probe)
	if got := loaded.Predict(probe); got != want {
		t.Errorf("loaded prediction = %v, want %v", got, want)
	}
	if got := loaded.Predict(probe); got != want {
		t.Errorf("second prediction = %v, want %v", got, want)
	}
}

func TestLoadArtifactMissingFile(t *testing.T) {
	var forest RandomForestRegressor
	err := LoadArtifact(filepath.Join(t.TempDir(), "nope.gob"), &forest)
	if err == nil {
		t.Fatal("expected error for missing artifact")
	}
}
