package ml

// ModelKind selects the classifier family.
type ModelKind string

const (
	LogisticRegression ModelKind = "logistic_regression"
	RandomForest       ModelKind = "random_forest"
)

// fixed seed keeps split, oversampling and tree bootstraps reproducible
const defaultSeed int64 = 42

// Classifier is a binary classifier over dense feature matrices. Labels are
// 0/1, PredictProba returns the positive-class probability per row.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) []int
	PredictProba(X [][]float64) []float64
	// Importances returns one non-negative score per feature column, aligned
	// with the matrix the classifier was fitted on.
	Importances() []float64
}

func newClassifier(kind ModelKind, seed int64) (Classifier, error) {
	switch kind {
	case LogisticRegression:
		return NewLogistic(), nil
	case RandomForest:
		return NewForest(seed), nil
	default:
		return nil, &ConfigError{Kind: string(kind)}
	}
}

// balancedClassWeights gives each class weight n/(2*count) so both classes
// pull equally on the loss regardless of imbalance.
func balancedClassWeights(y []int) (w [2]float64, err error) {
	var counts [2]int
	for _, label := range y {
		counts[label]++
	}
	n := float64(len(y))
	for c := 0; c < 2; c++ {
		if counts[c] == 0 {
			w[c] = 0
			continue
		}
		w[c] = n / (2 * float64(counts[c]))
	}
	return w, nil
}
