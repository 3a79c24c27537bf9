package mlmodel

import (
	"math"
	"math/rand"
)

// RandomForestClassifier is a bagging ensemble of classification trees with
// per-split feature subsampling (sqrt of the feature count).
type RandomForestClassifier struct {
	Trees      []*treeNode
	NumClasses int
}

// TrainRandomForestClassifier fits numTrees trees on bootstrap samples.
// y holds class indices in [0, numClasses).
func TrainRandomForestClassifier(X [][]float64, y []int, numClasses, numTrees, maxDepth int, seed int64) *RandomForestClassifier {
	rng := rand.New(rand.NewSource(seed))
	p := len(X[0])
	cfg := treeConfig{
		maxDepth:        maxDepth,
		minSamplesSplit: 2,
		maxFeatures:     int(math.Max(1, math.Round(math.Sqrt(float64(p))))),
	}

	forest := &RandomForestClassifier{
		Trees:      make([]*treeNode, 0, numTrees),
		NumClasses: numClasses,
	}
	n := len(X)

	for t := 0; t < numTrees; t++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		forest.Trees = append(forest.Trees, buildClassificationTree(X, y, idx, numClasses, 0, cfg, rng))
	}

	return forest
}

// Predict returns the majority-vote class index.
func (f *RandomForestClassifier) Predict(x []float64) int {
	votes := make([]int, f.NumClasses)
	for _, t := range f.Trees {
		votes[int(t.predict(x))]++
	}
	best := 0
	for c, n := range votes {
		if n > votes[best] {
			best = c
		}
	}
	return best
}
