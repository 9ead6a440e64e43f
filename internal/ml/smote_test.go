package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imbalanced(nMajority, nMinority int) (X [][]float64, y []int) {
	for i := 0; i < nMajority; i++ {
		X = append(X, []float64{float64(i), 0})
		y = append(y, 0)
	}
	for i := 0; i < nMinority; i++ {
		X = append(X, []float64{float64(i), 10})
		y = append(y, 1)
	}
	return X, y
}

func TestSMOTEBalancesClasses(t *testing.T) {
	X, y := imbalanced(20, 5)

	outX, outY, err := NewSMOTE(42).Balance(X, y)
	require.NoError(t, err)
	require.Len(t, outX, 40)
	require.Len(t, outY, 40)

	pos := 0
	for _, l := range outY {
		if l == 1 {
			pos++
		}
	}
	assert.Equal(t, 20, pos)
	// originals are preserved in place
	assert.Equal(t, X[0], outX[0])
	assert.Equal(t, X[24], outX[24])
}

func TestSMOTESyntheticSamplesInterpolate(t *testing.T) {
	X, y := imbalanced(20, 5)

	outX, _, err := NewSMOTE(42).Balance(X, y)
	require.NoError(t, err)

	// every synthetic point lies between minority samples, so its second
	// coordinate stays on the minority plane and the first inside its range
	for _, row := range outX[len(X):] {
		assert.Equal(t, 10.0, row[1])
		assert.GreaterOrEqual(t, row[0], 0.0)
		assert.LessOrEqual(t, row[0], 4.0)
	}
}

func TestSMOTEAlreadyBalanced(t *testing.T) {
	X, y := imbalanced(5, 5)
	outX, outY, err := NewSMOTE(42).Balance(X, y)
	require.NoError(t, err)
	assert.Len(t, outX, 10)
	assert.Equal(t, y, outY)
}

func TestSMOTEDeterministic(t *testing.T) {
	X, y := imbalanced(30, 7)

	outX1, _, err := NewSMOTE(42).Balance(X, y)
	require.NoError(t, err)
	outX2, _, err := NewSMOTE(42).Balance(X, y)
	require.NoError(t, err)
	assert.Equal(t, outX1, outX2)
}

func TestSMOTEMinorityTooSmall(t *testing.T) {
	X, y := imbalanced(10, 1)
	_, _, err := NewSMOTE(42).Balance(X, y)
	assert.Error(t, err)
}

func TestSMOTEHandlesMinorityZeroLabel(t *testing.T) {
	// minority can be class 0 as well
	X, y := imbalanced(3, 12)
	outX, outY, err := NewSMOTE(42).Balance(X, y)
	require.NoError(t, err)
	require.Len(t, outX, 24)

	neg := 0
	for _, l := range outY {
		if l == 0 {
			neg++
		}
	}
	assert.Equal(t, 12, neg)
}

func TestSMOTEIdenticalMinoritySamples(t *testing.T) {
	X := [][]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {5, 5}, {5, 5}}
	y := []int{0, 0, 0, 0, 1, 1}

	outX, _, err := NewSMOTE(42).Balance(X, y)
	require.NoError(t, err)
	for _, row := range outX[len(X):] {
		assert.Equal(t, []float64{5, 5}, row)
	}
}
