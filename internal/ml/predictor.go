package ml

import (
	"math"
	"sort"
)

// Risk tiers, lower edge inclusive.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"

	riskMediumThreshold = 0.33
	riskHighThreshold   = 0.67
)

// RiskLevel maps a dropout probability to its tier.
func RiskLevel(p float64) string {
	switch {
	case p < riskMediumThreshold:
		return RiskLow
	case p < riskHighThreshold:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Factor is one importance-weighted feature reported to explain a prediction.
type Factor struct {
	Factor       string  `json:"factor"`
	Value        float64 `json:"value"`
	Importance   float64 `json:"importance"`
	Contribution float64 `json:"contribution"`
}

// PredictionResult is the per-row inference output.
type PredictionResult struct {
	DropoutPrediction   bool      `json:"dropout_prediction"`
	RiskScore           float64   `json:"risk_score"`
	RiskLevel           string    `json:"risk_level"`
	Confidence          float64   `json:"confidence"`
	ContributingFactors []Factor  `json:"contributing_factors"`
	Features            []float64 `json:"-"` // schema-ordered, pre-scaling
}

const topFactors = 5

// Predictor applies one artifact to new rows. It holds its own artifact
// reference, so a registry swap mid-flight never mixes model states.
type Predictor struct {
	art *Artifact
}

func NewPredictor(a *Artifact) *Predictor {
	return &Predictor{art: a}
}

// Predict cleans, extracts, reindexes to the artifact schema, scales with the
// fitted scaler and scores every row of the batch.
func (p *Predictor) Predict(ds *Dataset) ([]PredictionResult, error) {
	clean := p.art.Imputer.Transform(ds)
	frame := p.art.Extractor.Extract(clean)
	X := frame.Reindex(p.art.Schema)

	scaled, err := p.art.Scaler.Transform(X)
	if err != nil {
		return nil, err
	}
	proba := p.art.Classifier.PredictProba(scaled)
	preds := p.art.Classifier.Predict(scaled)
	importances := p.art.FeatureImportances()

	results := make([]PredictionResult, len(ds.Rows))
	for i := range ds.Rows {
		results[i] = PredictionResult{
			DropoutPrediction:   preds[i] == 1,
			RiskScore:           proba[i],
			RiskLevel:           RiskLevel(proba[i]),
			Confidence:          math.Max(proba[i], 1-proba[i]),
			ContributingFactors: contributingFactors(p.art.Schema, X[i], importances),
			Features:            X[i],
		}
	}
	return results, nil
}

// contributingFactors ranks features by importance x |value| and keeps the
// top five.
func contributingFactors(schema []string, values []float64, importances map[string]float64) []Factor {
	factors := make([]Factor, len(schema))
	for j, name := range schema {
		imp := importances[name]
		factors[j] = Factor{
			Factor:       name,
			Value:        values[j],
			Importance:   imp,
			Contribution: imp * math.Abs(values[j]),
		}
	}
	sort.SliceStable(factors, func(a, b int) bool {
		return factors[a].Contribution > factors[b].Contribution
	})
	if len(factors) > topFactors {
		factors = factors[:topFactors]
	}
	return factors
}
