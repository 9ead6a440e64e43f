package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractorEmitsOnlyPresentColumns(t *testing.T) {
	ds := NewDataset([]string{"gpa", "attendance_rate", "unrelated"}, []Row{
		{"gpa": 3.2, "attendance_rate": 0.9, "unrelated": 1.0},
	})

	frame := NewExtractor().FitExtract(ds)
	assert.Equal(t, []string{"gpa", "attendance_rate"}, frame.Names)
	require.Len(t, frame.X, 1)
	assert.Equal(t, []float64{3.2, 0.9}, frame.X[0])
}

func TestExtractorGpaTrend(t *testing.T) {
	ds := NewDataset([]string{"current_gpa", "previous_gpa"}, []Row{
		{"current_gpa": 3.0, "previous_gpa": 3.5},
	})

	frame := NewExtractor().FitExtract(ds)
	assert.Equal(t, []string{"current_gpa", "previous_gpa", "gpa_trend"}, frame.Names)
	assert.InDelta(t, -0.5, frame.X[0][2], 1e-9)
}

func TestExtractorGpaTrendNeedsBothColumns(t *testing.T) {
	ds := NewDataset([]string{"current_gpa"}, []Row{{"current_gpa": 3.0}})
	frame := NewExtractor().FitExtract(ds)
	assert.Equal(t, []string{"current_gpa"}, frame.Names)
}

func TestExtractorBinaryFeature(t *testing.T) {
	ds := NewDataset([]string{"financial_aid"}, []Row{
		{"financial_aid": "Yes"},
		{"financial_aid": "No"},
		{"financial_aid": 1.0},
	})
	frame := NewExtractor().FitExtract(ds)
	assert.Equal(t, 1.0, frame.X[0][0])
	assert.Equal(t, 0.0, frame.X[1][0])
	assert.Equal(t, 1.0, frame.X[2][0])
}

func TestExtractorNominalCodesStableAcrossBatches(t *testing.T) {
	train := NewDataset([]string{"parent_education_level"}, []Row{
		{"parent_education_level": "Master"},
		{"parent_education_level": "Bachelor"},
		{"parent_education_level": UnknownCategory},
	})
	e := NewExtractor()
	e.Fit(train)

	// Unknown pins code 0, remaining categories take sorted order
	require.Contains(t, e.Codes, "parent_education_level")
	codes := e.Codes["parent_education_level"]
	assert.Equal(t, 0, codes[UnknownCategory])
	assert.Equal(t, 1, codes["Bachelor"])
	assert.Equal(t, 2, codes["Master"])

	serve := NewDataset([]string{"parent_education_level"}, []Row{
		{"parent_education_level": "Master"},
		{"parent_education_level": "PhD"}, // unseen at training time
	})
	frame := e.Extract(serve)
	assert.Equal(t, 2.0, frame.X[0][0])
	assert.Equal(t, 0.0, frame.X[1][0])
}

func TestReindexPadsDropsAndReorders(t *testing.T) {
	frame := &FeatureFrame{
		Names: []string{"absences", "gpa", "extra"},
		X:     [][]float64{{4, 3.1, 99}},
	}

	aligned := frame.Reindex([]string{"gpa", "attendance_rate", "absences"})
	require.Len(t, aligned, 1)
	assert.Equal(t, []float64{3.1, 0, 4}, aligned[0])
}
