package ml

import "sort"

// featureSources lists every recognized source column in canonical order. The
// order here decides the feature schema of a trained model.
var featureSources = []string{
	"gpa",
	"current_gpa",
	"previous_gpa",
	"attendance_rate",
	"absences",
	"participation_score",
	"assignment_completion_rate",
	"disciplinary_incidents",
	"financial_aid",
	"parent_education_level",
	"credits_enrolled",
	"failed_courses",
	"motivation_score",
	"stress_level",
}

var binaryFeatures = map[string]bool{
	"financial_aid": true,
}

var nominalFeatures = map[string]bool{
	"parent_education_level": true,
}

// FeatureFrame is an extracted feature matrix with its column names.
type FeatureFrame struct {
	Names []string
	X     [][]float64
}

// Reindex aligns the frame to a stored schema: schema features absent from the
// frame become 0, extracted features outside the schema are dropped, columns
// are reordered to match the schema exactly.
func (f *FeatureFrame) Reindex(schema []string) [][]float64 {
	pos := make(map[string]int, len(f.Names))
	for i, n := range f.Names {
		pos[n] = i
	}
	out := make([][]float64, len(f.X))
	for i, row := range f.X {
		aligned := make([]float64, len(schema))
		for j, name := range schema {
			if k, ok := pos[name]; ok {
				aligned[j] = row[k]
			}
		}
		out[i] = aligned
	}
	return out
}

// Extractor projects cleaned records onto the named feature set. Each feature
// is emitted only when its source column exists in the input, so training on a
// partial dataset yields a narrower schema. Nominal category codes are fitted
// once at training time and reused verbatim at inference, keeping the
// code-to-category mapping stable across train and serve.
type Extractor struct {
	// Codes maps nominal column -> category -> integer code.
	Codes map[string]map[string]int
}

func NewExtractor() *Extractor {
	return &Extractor{Codes: map[string]map[string]int{}}
}

// Fit captures category codes for nominal columns from the batch. The Unknown
// sentinel always takes code 0 when present, remaining categories get codes in
// sorted order.
func (e *Extractor) Fit(ds *Dataset) {
	for col := range nominalFeatures {
		if !ds.HasColumn(col) {
			continue
		}
		distinct := map[string]bool{}
		for _, row := range ds.Rows {
			if s, ok := row[col].(string); ok {
				distinct[s] = true
			}
		}
		cats := make([]string, 0, len(distinct))
		for c := range distinct {
			if c != UnknownCategory {
				cats = append(cats, c)
			}
		}
		sort.Strings(cats)
		codes := map[string]int{}
		next := 0
		if distinct[UnknownCategory] {
			codes[UnknownCategory] = 0
			next = 1
		}
		for _, c := range cats {
			codes[c] = next
			next++
		}
		e.Codes[col] = codes
	}
}

// Extract maps a cleaned batch to its feature frame.
func (e *Extractor) Extract(ds *Dataset) *FeatureFrame {
	frame := &FeatureFrame{}
	var emit []string
	trend := ds.HasColumn("current_gpa") && ds.HasColumn("previous_gpa")
	for _, col := range featureSources {
		if !ds.HasColumn(col) {
			continue
		}
		emit = append(emit, col)
		frame.Names = append(frame.Names, col)
		// derived feature rides right behind its inputs
		if col == "previous_gpa" && trend {
			frame.Names = append(frame.Names, "gpa_trend")
		}
	}
	frame.X = make([][]float64, len(ds.Rows))
	for i, row := range ds.Rows {
		vec := make([]float64, 0, len(frame.Names))
		for _, col := range emit {
			vec = append(vec, e.featureValue(col, row[col]))
			if col == "previous_gpa" && trend {
				cur, _ := row["current_gpa"].(float64)
				prev, _ := row["previous_gpa"].(float64)
				vec = append(vec, cur-prev)
			}
		}
		frame.X[i] = vec
	}
	return frame
}

// FitExtract fits category codes then extracts, the training-path entry point.
func (e *Extractor) FitExtract(ds *Dataset) *FeatureFrame {
	e.Fit(ds)
	return e.Extract(ds)
}

func (e *Extractor) featureValue(col string, v any) float64 {
	switch {
	case binaryFeatures[col]:
		switch t := v.(type) {
		case string:
			if t == "Yes" {
				return 1
			}
			return 0
		case float64:
			return t
		}
		return 0
	case nominalFeatures[col]:
		if s, ok := v.(string); ok {
			// unseen categories at inference collapse to code 0
			return float64(e.Codes[col][s])
		}
		if f, ok := v.(float64); ok {
			return f
		}
		return 0
	default:
		if f, ok := v.(float64); ok {
			return f
		}
		return 0
	}
}
