package ml

import (
	"math/rand"
	"sort"
)

// TreeNode is one node of a fitted CART tree. Fields are exported so trees
// survive gob round trips inside model artifacts.
type TreeNode struct {
	Leaf      bool
	Feature   int
	Threshold float64
	Left      *TreeNode
	Right     *TreeNode
	Proba     float64 // weighted P(class 1) at this node
}

// treeParams drive a single CART fit inside the forest.
type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	maxFeatures     int // <=0 means use all features
	weights         [2]float64
}

// fitTree grows a weighted-gini CART tree over the given sample indices and
// accumulates impurity-decrease importances into imp.
func fitTree(X [][]float64, y []int, idx []int, params treeParams, rng *rand.Rand, imp []float64) *TreeNode {
	total := weightOf(y, idx, params.weights)
	return growNode(X, y, idx, 0, params, rng, imp, total)
}

func weightOf(y []int, idx []int, w [2]float64) float64 {
	sum := 0.0
	for _, i := range idx {
		sum += w[y[i]]
	}
	return sum
}

func growNode(X [][]float64, y []int, idx []int, depth int, params treeParams, rng *rand.Rand, imp []float64, totalWeight float64) *TreeNode {
	w1 := 0.0
	wAll := 0.0
	for _, i := range idx {
		wi := params.weights[y[i]]
		wAll += wi
		if y[i] == 1 {
			w1 += wi
		}
	}
	node := &TreeNode{Leaf: true}
	if wAll > 0 {
		node.Proba = w1 / wAll
	}
	if depth >= params.maxDepth || len(idx) < params.minSamplesSplit || w1 == 0 || w1 == wAll {
		return node
	}

	parentGini := gini(w1, wAll)
	best := splitCandidate{gini: parentGini}
	p := len(X[0])
	features := rng.Perm(p)
	if params.maxFeatures > 0 && params.maxFeatures < p {
		features = features[:params.maxFeatures]
	}
	for _, f := range features {
		if c, ok := bestSplitOn(X, y, idx, f, params.weights, w1, wAll); ok && c.gini < best.gini-1e-12 {
			best = c
			best.feature = f
		}
	}
	if best.left == nil {
		return node
	}

	imp[best.feature] += (parentGini - best.gini) * wAll / totalWeight
	node.Leaf = false
	node.Feature = best.feature
	node.Threshold = best.threshold
	node.Left = growNode(X, y, best.left, depth+1, params, rng, imp, totalWeight)
	node.Right = growNode(X, y, best.right, depth+1, params, rng, imp, totalWeight)
	return node
}

type splitCandidate struct {
	feature     int
	threshold   float64
	gini        float64
	left, right []int
}

// bestSplitOn scans all thresholds of one feature and returns the lowest
// weighted-gini split, if any distinct values exist.
func bestSplitOn(X [][]float64, y []int, idx []int, f int, weights [2]float64, w1, wAll float64) (splitCandidate, bool) {
	order := append([]int{}, idx...)
	sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

	var bestGini, bestThresh float64
	bestPos := -1
	bestGini = gini(w1, wAll)
	leftW, leftW1 := 0.0, 0.0
	for pos := 0; pos < len(order)-1; pos++ {
		i := order[pos]
		wi := weights[y[i]]
		leftW += wi
		if y[i] == 1 {
			leftW1 += wi
		}
		v, next := X[i][f], X[order[pos+1]][f]
		if v == next {
			continue
		}
		rightW := wAll - leftW
		rightW1 := w1 - leftW1
		g := (leftW*gini(leftW1, leftW) + rightW*gini(rightW1, rightW)) / wAll
		if bestPos < 0 || g < bestGini {
			bestGini = g
			bestThresh = (v + next) / 2
			bestPos = pos
		}
	}
	if bestPos < 0 {
		return splitCandidate{}, false
	}
	c := splitCandidate{threshold: bestThresh, gini: bestGini}
	for _, i := range idx {
		if X[i][f] <= bestThresh {
			c.left = append(c.left, i)
		} else {
			c.right = append(c.right, i)
		}
	}
	return c, true
}

func gini(w1, wAll float64) float64 {
	if wAll == 0 {
		return 0
	}
	p := w1 / wAll
	return 2 * p * (1 - p)
}

func (n *TreeNode) proba(row []float64) float64 {
	for !n.Leaf {
		if row[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Proba
}
