package ml

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Balancer evens out class counts on the training partition before fitting.
// The validation partition must never pass through a Balancer.
type Balancer interface {
	Balance(X [][]float64, y []int) ([][]float64, []int, error)
}

// SMOTE oversamples the minority class by interpolating between a minority
// sample and one of its K nearest minority neighbors in feature space.
type SMOTE struct {
	K    int
	Seed int64
}

func NewSMOTE(seed int64) *SMOTE {
	return &SMOTE{K: 5, Seed: seed}
}

func (s *SMOTE) Balance(X [][]float64, y []int) ([][]float64, []int, error) {
	var minority, majority []int
	for i, label := range y {
		if label == 1 {
			minority = append(minority, i)
		} else {
			majority = append(majority, i)
		}
	}
	minLabel := 1
	if len(majority) < len(minority) {
		minority, majority = majority, minority
		minLabel = 0
	}
	need := len(majority) - len(minority)
	if need == 0 {
		return X, y, nil
	}
	if len(minority) < 2 {
		return nil, nil, fmt.Errorf("smote: minority class has %d sample(s), need at least 2 to interpolate", len(minority))
	}
	k := s.K
	if k > len(minority)-1 {
		k = len(minority) - 1
	}

	rng := rand.New(rand.NewSource(s.Seed))
	outX := append([][]float64{}, X...)
	outY := append([]int{}, y...)
	for n := 0; n < need; n++ {
		base := X[minority[rng.Intn(len(minority))]]
		neighbor := base
		if ni := nearestMinority(base, X, minority, k, rng); ni >= 0 {
			neighbor = X[ni]
		}
		gap := rng.Float64()
		synth := make([]float64, len(base))
		floats.SubTo(synth, neighbor, base)
		floats.Scale(gap, synth)
		floats.Add(synth, base)
		outX = append(outX, synth)
		outY = append(outY, minLabel)
	}
	return outX, outY, nil
}

// nearestMinority picks one of the k nearest minority-class neighbors of base,
// excluding base itself when it is a minority sample.
func nearestMinority(base []float64, X [][]float64, minority []int, k int, rng *rand.Rand) int {
	type cand struct {
		idx  int
		dist float64
	}
	cands := make([]cand, 0, len(minority))
	for _, i := range minority {
		d := floats.Distance(base, X[i], 2)
		if d == 0 && sameSlice(base, X[i]) {
			continue
		}
		cands = append(cands, cand{i, d})
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].dist != cands[b].dist {
			return cands[a].dist < cands[b].dist
		}
		return cands[a].idx < cands[b].idx
	})
	if len(cands) == 0 {
		return -1
	}
	if k > len(cands) {
		k = len(cands)
	}
	return cands[rng.Intn(k)].idx
}

func sameSlice(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
