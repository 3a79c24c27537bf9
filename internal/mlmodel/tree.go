package mlmodel

import (
	"math/rand"
	"sort"
)

// treeNode is a CART node shared by the regression and classification
// ensembles. Fields are exported for gob persistence only.
type treeNode struct {
	Leaf      bool
	Feature   int
	Threshold float64
	Value     float64 // leaf: mean target (regression) or class index (classification)
	Left      *treeNode
	Right     *treeNode
}

func (n *treeNode) predict(x []float64) float64 {
	for !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

type treeConfig struct {
	maxDepth        int
	minSamplesSplit int
	maxFeatures     int // number of features tried per split; 0 means all
}

type split struct {
	feature   int
	threshold float64
	score     float64
	left      []int
	right     []int
}

// candidateFeatures returns the feature indices tried at one node, sampled
// without replacement when maxFeatures limits the search. rng may be nil
// when no subsampling is configured.
func candidateFeatures(p int, cfg treeConfig, rng *rand.Rand) []int {
	if cfg.maxFeatures <= 0 || cfg.maxFeatures >= p || rng == nil {
		feats := make([]int, p)
		for i := range feats {
			feats[i] = i
		}
		return feats
	}
	return rng.Perm(p)[:cfg.maxFeatures]
}

// buildRegressionTree grows a tree minimizing the sum of squared errors.
func buildRegressionTree(X [][]float64, y []float64, idx []int, depth int, cfg treeConfig, rng *rand.Rand) *treeNode {
	mean := meanOf(y, idx)
	if depth >= cfg.maxDepth || len(idx) < cfg.minSamplesSplit || isConstant(y, idx) {
		return &treeNode{Leaf: true, Value: mean}
	}

	best := findRegressionSplit(X, y, idx, cfg, rng)
	if best == nil {
		return &treeNode{Leaf: true, Value: mean}
	}

	return &treeNode{
		Feature:   best.feature,
		Threshold: best.threshold,
		Left:      buildRegressionTree(X, y, best.left, depth+1, cfg, rng),
		Right:     buildRegressionTree(X, y, best.right, depth+1, cfg, rng),
	}
}

func findRegressionSplit(X [][]float64, y []float64, idx []int, cfg treeConfig, rng *rand.Rand) *split {
	var best *split

	for _, f := range candidateFeatures(len(X[0]), cfg, rng) {
		order := make([]int, len(idx))
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

		var totalSum, totalSq float64
		for _, i := range order {
			totalSum += y[i]
			totalSq += y[i] * y[i]
		}

		var leftSum, leftSq float64
		n := float64(len(order))

		for k := 0; k < len(order)-1; k++ {
			i := order[k]
			leftSum += y[i]
			leftSq += y[i] * y[i]

			// Split only between distinct feature values.
			if X[order[k]][f] == X[order[k+1]][f] {
				continue
			}

			nl := float64(k + 1)
			nr := n - nl
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq

			sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			if best == nil || sse < best.score {
				best = &split{
					feature:   f,
					threshold: (X[order[k]][f] + X[order[k+1]][f]) / 2,
					score:     sse,
					left:      append([]int(nil), order[:k+1]...),
					right:     append([]int(nil), order[k+1:]...),
				}
			}
		}
	}

	return best
}

// buildClassificationTree grows a tree minimizing weighted Gini impurity.
func buildClassificationTree(X [][]float64, y []int, idx []int, numClasses, depth int, cfg treeConfig, rng *rand.Rand) *treeNode {
	majority := majorityClass(y, idx, numClasses)
	if depth >= cfg.maxDepth || len(idx) < cfg.minSamplesSplit || isPure(y, idx) {
		return &treeNode{Leaf: true, Value: float64(majority)}
	}

	best := findClassificationSplit(X, y, idx, numClasses, cfg, rng)
	if best == nil {
		return &treeNode{Leaf: true, Value: float64(majority)}
	}

	return &treeNode{
		Feature:   best.feature,
		Threshold: best.threshold,
		Left:      buildClassificationTree(X, y, best.left, numClasses, depth+1, cfg, rng),
		Right:     buildClassificationTree(X, y, best.right, numClasses, depth+1, cfg, rng),
	}
}

func findClassificationSplit(X [][]float64, y []int, idx []int, numClasses int, cfg treeConfig, rng *rand.Rand) *split {
	var best *split

	totalCounts := make([]float64, numClasses)
	for _, i := range idx {
		totalCounts[y[i]]++
	}

	for _, f := range candidateFeatures(len(X[0]), cfg, rng) {
		order := make([]int, len(idx))
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

		leftCounts := make([]float64, numClasses)
		rightCounts := append([]float64(nil), totalCounts...)
		n := float64(len(order))

		for k := 0; k < len(order)-1; k++ {
			c := y[order[k]]
			leftCounts[c]++
			rightCounts[c]--

			if X[order[k]][f] == X[order[k+1]][f] {
				continue
			}

			nl := float64(k + 1)
			nr := n - nl
			score := nl/n*gini(leftCounts, nl) + nr/n*gini(rightCounts, nr)
			if best == nil || score < best.score {
				best = &split{
					feature:   f,
					threshold: (X[order[k]][f] + X[order[k+1]][f]) / 2,
					score:     score,
					left:      append([]int(nil), order[:k+1]...),
					right:     append([]int(nil), order[k+1:]...),
				}
			}
		}
	}

	return best
}

func gini(counts []float64, n float64) float64 {
	g := 1.0
	for _, c := range counts {
		p := c / n
		g -= p * p
	}
	return g
}

func meanOf(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func isConstant(y []float64, idx []int) bool {
	for _, i := range idx[1:] {
		if y[i] != y[idx[0]] {
			return false
		}
	}
	return true
}

func isPure(y []int, idx []int) bool {
	for _, i := range idx[1:] {
		if y[i] != y[idx[0]] {
			return false
		}
	}
	return true
}

func majorityClass(y []int, idx []int, numClasses int) int {
	counts := make([]int, numClasses)
	for _, i := range idx {
		counts[y[i]]++
	}
	best := 0
	for c, n := range counts {
		if n > counts[best] {
			best = c
		}
	}
	return best
}
