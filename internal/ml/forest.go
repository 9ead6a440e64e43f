package ml

import (
	"errors"
	"math"
	"math/rand"
	"sync"
)

// Forest is a random forest of CART trees with balanced class weighting, a
// depth cap and seeded bootstraps. Trees are grown in parallel but every tree
// derives its own rng from Seed+index, so a fit is reproducible.
type Forest struct {
	NTrees   int
	MaxDepth int
	Seed     int64

	Trees      []*TreeNode
	Importance []float64
}

func NewForest(seed int64) *Forest {
	return &Forest{
		NTrees:   100,
		MaxDepth: 10,
		Seed:     seed,
	}
}

func (m *Forest) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("forest: empty feature matrix")
	}
	if len(X) != len(y) {
		return errors.New("forest: X and y length mismatch")
	}
	n, p := len(X), len(X[0])
	cw, err := balancedClassWeights(y)
	if err != nil {
		return err
	}
	maxFeatures := int(math.Round(math.Sqrt(float64(p))))
	if maxFeatures < 1 {
		maxFeatures = 1
	}
	params := treeParams{
		maxDepth:        m.MaxDepth,
		minSamplesSplit: 2,
		maxFeatures:     maxFeatures,
		weights:         cw,
	}

	m.Trees = make([]*TreeNode, m.NTrees)
	perTreeImp := make([][]float64, m.NTrees)
	var wg sync.WaitGroup
	for t := 0; t < m.NTrees; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(m.Seed + int64(t)))
			idx := make([]int, n)
			for i := range idx {
				idx[i] = rng.Intn(n)
			}
			imp := make([]float64, p)
			m.Trees[t] = fitTree(X, y, idx, params, rng, imp)
			perTreeImp[t] = imp
		}(t)
	}
	wg.Wait()

	// sum per-tree importances in index order so the result is deterministic
	m.Importance = make([]float64, p)
	for t := range perTreeImp {
		for j, v := range perTreeImp[t] {
			m.Importance[j] += v
		}
	}
	total := 0.0
	for _, v := range m.Importance {
		total += v
	}
	if total > 0 {
		for j := range m.Importance {
			m.Importance[j] /= total
		}
	}
	return nil
}

// PredictProba averages leaf probabilities across trees.
func (m *Forest) PredictProba(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		sum := 0.0
		for _, tree := range m.Trees {
			sum += tree.proba(row)
		}
		out[i] = sum / float64(len(m.Trees))
	}
	return out
}

func (m *Forest) Predict(X [][]float64) []int {
	proba := m.PredictProba(X)
	out := make([]int, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

func (m *Forest) Importances() []float64 {
	return m.Importance
}
