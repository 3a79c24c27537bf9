package mlmodel

import (
	"math"
	"testing"
)

func TestGradientBoostingImprovesOverMean(t *testing.T) {
	X, y := syntheticRegression(200, 4)
	model := TrainGradientBoostingRegressor(X, y, 50, 4, 0.1)

	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	var maeModel, maeMean float64
	for i := range X {
		maeModel += math.Abs(model.Predict(X[i]) - y[i])
		maeMean += math.Abs(mean - y[i])
	}

	if maeModel >= maeMean {
		t.Errorf("boosting MAE %.3f not better than mean baseline %.3f",
			maeModel/float64(len(X)), maeMean/float64(len(X)))
	}
}

func TestGradientBoostingDeterministic(t *testing.T) {
	X, y := syntheticRegression(100, 5)

	a := TrainGradientBoostingRegressor(X, y, 20, 3, 0.1)
	b := TrainGradientBoostingRegressor(X, y, 20, 3, 0.1)

	probe := []float64{4, 6, 0.9}
	if a.Predict(probe) != b.Predict(probe) {
		t.Error("boosting fit is not deterministic")
	}
}

func TestGradientBoostingConstantTarget(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{7, 7, 7, 7}

	model := TrainGradientBoostingRegressor(X, y, 10, 3, 0.1)
	if got := model.Predict([]float64{2.5}); math.Abs(got-7) > 1e-9 {
		t.Errorf("prediction = %v, want 7", got)
	}
}
