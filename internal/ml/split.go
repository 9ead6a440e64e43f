package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// StratifiedSplit partitions X, y into train and validation sets, keeping the
// class ratio of y in both partitions. Deterministic for a given seed.
func StratifiedSplit(X [][]float64, y []int, valRatio float64, seed int64) (XTrain, XVal [][]float64, yTrain, yVal []int, err error) {
	if len(X) != len(y) {
		return nil, nil, nil, nil, errors.New("split: X and y length mismatch")
	}
	if valRatio <= 0 || valRatio >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("split: invalid validation ratio %v", valRatio)
	}
	byClass := map[int][]int{}
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	if len(byClass) < 2 {
		return nil, nil, nil, nil, errors.New("split: target column has a single class, need both positive and negative samples")
	}
	rng := rand.New(rand.NewSource(seed))
	// iterate classes in a fixed order
	for _, label := range []int{0, 1} {
		idx := byClass[label]
		if len(idx) < 2 {
			return nil, nil, nil, nil, fmt.Errorf("split: class %d has only %d sample(s)", label, len(idx))
		}
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		nVal := int(math.Round(valRatio * float64(len(idx))))
		if nVal < 1 {
			nVal = 1
		}
		if nVal >= len(idx) {
			nVal = len(idx) - 1
		}
		for i, k := range idx {
			if i < nVal {
				XVal = append(XVal, X[k])
				yVal = append(yVal, y[k])
			} else {
				XTrain = append(XTrain, X[k])
				yTrain = append(yTrain, y[k])
			}
		}
	}
	return XTrain, XVal, yTrain, yVal, nil
}

// KFold assigns n sample indices to k folds after a seeded shuffle.
func KFold(n, k int, seed int64) [][]int {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)
	folds := make([][]int, k)
	for i, idx := range perm {
		folds[i%k] = append(folds[i%k], idx)
	}
	return folds
}
