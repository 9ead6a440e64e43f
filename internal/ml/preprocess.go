package ml

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// UnknownCategory fills categorical columns that are entirely missing.
const UnknownCategory = "Unknown"

// imputation never touches the identifier or target columns
var imputeSkip = map[string]bool{
	"student_id": true,
	"dropout":    true,
}

// Imputer fills missing values: column mean for numeric columns, column mode
// for categorical ones. Statistics are captured by Fit on the training batch
// and persisted inside the model artifact, so prediction-time batches are
// imputed with training statistics rather than their own.
type Imputer struct {
	Means map[string]float64
	Modes map[string]string
}

func NewImputer() *Imputer {
	return &Imputer{
		Means: map[string]float64{},
		Modes: map[string]string{},
	}
}

// Fit computes per-column imputation statistics from the batch.
func (im *Imputer) Fit(ds *Dataset) {
	for _, col := range ds.Columns {
		if imputeSkip[col] {
			continue
		}
		if ds.IsNumeric(col) {
			var vals []float64
			for _, row := range ds.Rows {
				if v, ok := row[col].(float64); ok {
					vals = append(vals, v)
				}
			}
			if len(vals) > 0 {
				im.Means[col] = stat.Mean(vals, nil)
			}
			continue
		}
		im.Modes[col] = columnMode(ds, col)
	}
}

// Transform returns a copy of the batch with missing values filled in.
// Columns the imputer has never seen are left untouched.
func (im *Imputer) Transform(ds *Dataset) *Dataset {
	out := ds.Copy()
	for _, col := range out.Columns {
		if imputeSkip[col] {
			continue
		}
		mean, isNum := im.Means[col]
		mode, isCat := im.Modes[col]
		if !isNum && !isCat {
			continue
		}
		for _, row := range out.Rows {
			if v, ok := row[col]; ok && v != nil {
				continue
			}
			if isNum {
				row[col] = mean
			} else {
				row[col] = mode
			}
		}
	}
	return out
}

// FitTransform fits on the batch and fills it, the training-path entry point.
func (im *Imputer) FitTransform(ds *Dataset) *Dataset {
	im.Fit(ds)
	return im.Transform(ds)
}

// columnMode returns the most frequent string value, ties broken
// alphabetically so imputation is deterministic. An entirely missing column
// gets the Unknown sentinel.
func columnMode(ds *Dataset, col string) string {
	counts := map[string]int{}
	for _, row := range ds.Rows {
		if s, ok := row[col].(string); ok {
			counts[s]++
		}
	}
	if len(counts) == 0 {
		return UnknownCategory
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best
}
