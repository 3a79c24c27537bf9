package mlmodel

// GradientBoostingRegressor is a boosting ensemble: each stage fits a tree
// to the residuals of the running prediction.
type GradientBoostingRegressor struct {
	Init         float64
	LearningRate float64
	Trees        []*treeNode
}

// TrainGradientBoostingRegressor fits numTrees sequential stages. The fit is
// deterministic: stages use the full sample and all features.
func TrainGradientBoostingRegressor(X [][]float64, y []float64, numTrees, maxDepth int, learningRate float64) *GradientBoostingRegressor {
	n := len(X)
	model := &GradientBoostingRegressor{
		LearningRate: learningRate,
		Trees:        make([]*treeNode, 0, numTrees),
	}

	sum := 0.0
	for _, v := range y {
		sum += v
	}
	if n > 0 {
		model.Init = sum / float64(n)
	}

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = model.Init
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	cfg := treeConfig{maxDepth: maxDepth, minSamplesSplit: 2}
	residual := make([]float64, n)

	for t := 0; t < numTrees; t++ {
		for i := range residual {
			residual[i] = y[i] - pred[i]
		}
		tree := buildRegressionTree(X, residual, idx, 0, cfg, nil)
		model.Trees = append(model.Trees, tree)
		for i := range pred {
			pred[i] += learningRate * tree.predict(X[i])
		}
	}

	return model
}

// Predict sums the stage contributions on top of the initial estimate.
func (g *GradientBoostingRegressor) Predict(x []float64) float64 {
	out := g.Init
	for _, t := range g.Trees {
		out += g.LearningRate * t.predict(x)
	}
	return out
}
