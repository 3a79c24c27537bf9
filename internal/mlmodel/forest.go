package mlmodel

import "math/rand"

// Regressor is a trained numeric model treated as a pure function post-load.
type Regressor interface {
	Predict(x []float64) float64
}

// RandomForestRegressor is a bagging ensemble of regression trees.
type RandomForestRegressor struct {
	Trees []*treeNode
}

// TrainRandomForestRegressor fits numTrees trees on bootstrap samples of
// (X, y). The same seed reproduces the same forest.
func TrainRandomForestRegressor(X [][]float64, y []float64, numTrees, maxDepth int, seed int64) *RandomForestRegressor {
	rng := rand.New(rand.NewSource(seed))
	cfg := treeConfig{maxDepth: maxDepth, minSamplesSplit: 2}

	forest := &RandomForestRegressor{Trees: make([]*treeNode, 0, numTrees)}
	n := len(X)

	for t := 0; t < numTrees; t++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		forest.Trees = append(forest.Trees, buildRegressionTree(X, y, idx, 0, cfg, rng))
	}

	return forest
}

// Predict averages the predictions of all trees.
func (f *RandomForestRegressor) Predict(x []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range f.Trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.Trees))
}
