package ml

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultTargetColumn is the binary label column of training datasets.
const DefaultTargetColumn = "dropout"

// Trainer orchestrates one training run: clean, extract, split, balance,
// scale, fit, validate, cross-validate, and package the artifact.
type Trainer struct {
	Kind            ModelKind
	ValidationSplit float64
	Seed            int64
	Balancer        Balancer
}

// NewTrainer validates the model kind up front; an unknown kind is a
// ConfigError, not a deferred training failure.
func NewTrainer(kind ModelKind) (*Trainer, error) {
	if _, err := newClassifier(kind, defaultSeed); err != nil {
		return nil, err
	}
	return &Trainer{
		Kind:            kind,
		ValidationSplit: 0.2,
		Seed:            defaultSeed,
		Balancer:        NewSMOTE(defaultSeed),
	}, nil
}

// Train runs the whole pipeline and returns a fresh artifact with its metrics.
// Any failure along the way comes back as a TrainingError and no artifact is
// produced.
func (t *Trainer) Train(ds *Dataset, target string) (*Artifact, TrainingMetrics, error) {
	if target == "" {
		target = DefaultTargetColumn
	}
	art, metrics, err := t.train(ds, target)
	if err != nil {
		return nil, TrainingMetrics{}, &TrainingError{Err: err}
	}
	return art, metrics, nil
}

func (t *Trainer) train(ds *Dataset, target string) (*Artifact, TrainingMetrics, error) {
	var zero TrainingMetrics
	if ds == nil || len(ds.Rows) == 0 {
		return nil, zero, errors.New("empty training dataset")
	}
	if !ds.HasColumn(target) {
		return nil, zero, fmt.Errorf("missing target column %q", target)
	}

	imputer := NewImputer()
	clean := imputer.FitTransform(ds)

	extractor := NewExtractor()
	frame := extractor.FitExtract(clean)
	if len(frame.Names) == 0 {
		return nil, zero, errors.New("no recognized feature columns in dataset")
	}

	y, err := parseLabels(clean, target)
	if err != nil {
		return nil, zero, err
	}

	XTrain, XVal, yTrain, yVal, err := StratifiedSplit(frame.X, y, t.ValidationSplit, t.Seed)
	if err != nil {
		return nil, zero, err
	}

	// oversampling touches the training partition only, never validation
	XBal, yBal, err := t.Balancer.Balance(XTrain, yTrain)
	if err != nil {
		return nil, zero, err
	}

	scaler := NewStandardScaler()
	XBalScaled, err := scaler.FitTransform(XBal)
	if err != nil {
		return nil, zero, err
	}
	XValScaled, err := scaler.Transform(XVal)
	if err != nil {
		return nil, zero, err
	}

	clf, err := newClassifier(t.Kind, t.Seed)
	if err != nil {
		return nil, zero, err
	}
	if err := clf.Fit(XBalScaled, yBal); err != nil {
		return nil, zero, err
	}

	yPred := clf.Predict(XValScaled)
	proba := clf.PredictProba(XValScaled)
	metrics := TrainingMetrics{
		Accuracy: Accuracy(yVal, yPred),
		ROCAUC:   ROCAUC(yVal, proba),
	}
	metrics.Precision, metrics.Recall, metrics.F1Score = PrecisionRecallF1(yVal, yPred)
	metrics.CVMean, metrics.CVStd, err = t.crossValidate(XBalScaled, yBal)
	if err != nil {
		return nil, zero, err
	}

	art := &Artifact{
		Kind:       t.Kind,
		Classifier: clf,
		Scaler:     scaler,
		Imputer:    imputer,
		Extractor:  extractor,
		Schema:     frame.Names,
		Meta: Metadata{
			ModelKind:       t.Kind,
			TrainedAt:       time.Now().UTC(),
			TrainingSamples: len(ds.Rows),
			FeatureCount:    len(frame.Names),
			Features:        frame.Names,
			Metrics:         metrics,
		},
	}
	return art, metrics, nil
}

// crossValidate runs seeded 5-fold cross-validation accuracy on the balanced,
// scaled training partition with a fresh classifier per fold.
func (t *Trainer) crossValidate(X [][]float64, y []int) (mean, std float64, err error) {
	const folds = 5
	assign := KFold(len(X), folds, t.Seed)
	scores := make([]float64, 0, folds)
	for f := 0; f < folds; f++ {
		var XTr, XTe [][]float64
		var yTr, yTe []int
		hold := map[int]bool{}
		for _, i := range assign[f] {
			hold[i] = true
		}
		for i := range X {
			if hold[i] {
				XTe = append(XTe, X[i])
				yTe = append(yTe, y[i])
			} else {
				XTr = append(XTr, X[i])
				yTr = append(yTr, y[i])
			}
		}
		if len(XTe) == 0 || len(XTr) == 0 {
			continue
		}
		clf, err := newClassifier(t.Kind, t.Seed+int64(f)+1)
		if err != nil {
			return 0, 0, err
		}
		if err := clf.Fit(XTr, yTr); err != nil {
			return 0, 0, err
		}
		scores = append(scores, Accuracy(yTe, clf.Predict(XTe)))
	}
	mean, std = meanStd(scores)
	return mean, std, nil
}

// parseLabels maps the target column to 0/1. Yes/No is the canonical pair,
// numeric and boolean-ish spellings are tolerated.
func parseLabels(ds *Dataset, target string) ([]int, error) {
	y := make([]int, len(ds.Rows))
	for i, row := range ds.Rows {
		v, ok := row[target]
		if !ok || v == nil {
			return nil, fmt.Errorf("row %d: missing target value", i)
		}
		switch t := v.(type) {
		case float64:
			switch t {
			case 0:
				y[i] = 0
			case 1:
				y[i] = 1
			default:
				return nil, fmt.Errorf("row %d: unexpected target value %v", i, t)
			}
		case string:
			switch strings.ToLower(t) {
			case "yes", "true", "1":
				y[i] = 1
			case "no", "false", "0":
				y[i] = 0
			default:
				return nil, fmt.Errorf("row %d: unexpected target value %q", i, t)
			}
		default:
			return nil, fmt.Errorf("row %d: unexpected target value %v", i, v)
		}
	}
	return y, nil
}
