package ml

import (
	"errors"
	"math"
)

// Logistic is a binary logistic regression trained with full-batch gradient
// descent and balanced class weighting. Weights start at zero, so training is
// fully deterministic.
type Logistic struct {
	Weights   []float64
	Bias      float64
	LearnRate float64
	Epochs    int
	Tol       float64
}

func NewLogistic() *Logistic {
	return &Logistic{
		LearnRate: 0.1,
		Epochs:    1000,
		Tol:       1e-6,
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func (m *Logistic) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("logistic: empty feature matrix")
	}
	if len(X) != len(y) {
		return errors.New("logistic: X and y length mismatch")
	}
	p := len(X[0])
	m.Weights = make([]float64, p)
	m.Bias = 0

	cw, err := balancedClassWeights(y)
	if err != nil {
		return err
	}
	n := float64(len(X))
	grad := make([]float64, p)
	for epoch := 0; epoch < m.Epochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		gradB := 0.0
		for i, row := range X {
			d := cw[y[i]] * (sigmoid(m.score(row)) - float64(y[i]))
			for j, x := range row {
				grad[j] += d * x
			}
			gradB += d
		}
		maxG := math.Abs(gradB / n)
		for j := range grad {
			grad[j] /= n
			if g := math.Abs(grad[j]); g > maxG {
				maxG = g
			}
			m.Weights[j] -= m.LearnRate * grad[j]
		}
		m.Bias -= m.LearnRate * gradB / n
		if maxG < m.Tol {
			break
		}
	}
	return nil
}

func (m *Logistic) score(row []float64) float64 {
	z := m.Bias
	for j, x := range row {
		z += m.Weights[j] * x
	}
	return z
}

func (m *Logistic) PredictProba(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = sigmoid(m.score(row))
	}
	return out
}

func (m *Logistic) Predict(X [][]float64) []int {
	proba := m.PredictProba(X)
	out := make([]int, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

// Importances are absolute coefficient magnitudes.
func (m *Logistic) Importances() []float64 {
	out := make([]float64, len(m.Weights))
	for j, w := range m.Weights {
		out[j] = math.Abs(w)
	}
	return out
}
