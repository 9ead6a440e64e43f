package ml

import (
	"fmt"
	"math/rand"
)

// makeTrainingData builds a deterministic, well-separated dataset: retained
// students with strong gpa/attendance, dropouts with weak ones, plus enough
// imbalance to exercise the oversampler.
func makeTrainingData(nRetained, nDropout int) *Dataset {
	rng := rand.New(rand.NewSource(7))
	columns := []string{
		"student_id", "gpa", "current_gpa", "previous_gpa", "attendance_rate",
		"absences", "participation_score", "financial_aid",
		"parent_education_level", "dropout",
	}
	levels := []string{"High School", "Bachelor", "Master"}
	var rows []Row
	for i := 0; i < nRetained; i++ {
		gpa := 3.0 + rng.Float64()
		rows = append(rows, Row{
			"student_id":             fmt.Sprintf("S%03d", i),
			"gpa":                    gpa,
			"current_gpa":            gpa + 0.1*rng.Float64(),
			"previous_gpa":           gpa - 0.1*rng.Float64(),
			"attendance_rate":        0.85 + 0.15*rng.Float64(),
			"absences":               float64(rng.Intn(3)),
			"participation_score":    7.0 + 3*rng.Float64(),
			"financial_aid":          "No",
			"parent_education_level": levels[rng.Intn(len(levels))],
			"dropout":                "No",
		})
	}
	for i := 0; i < nDropout; i++ {
		gpa := 1.0 + 0.8*rng.Float64()
		rows = append(rows, Row{
			"student_id":             fmt.Sprintf("D%03d", i),
			"gpa":                    gpa,
			"current_gpa":            gpa - 0.3*rng.Float64(),
			"previous_gpa":           gpa + 0.3*rng.Float64(),
			"attendance_rate":        0.3 + 0.25*rng.Float64(),
			"absences":               float64(10 + rng.Intn(10)),
			"participation_score":    1.0 + 2*rng.Float64(),
			"financial_aid":          "Yes",
			"parent_education_level": levels[rng.Intn(len(levels))],
			"dropout":                "Yes",
		})
	}
	return NewDataset(columns, rows)
}

// makeBlobs builds two separable numeric clusters for classifier tests.
func makeBlobs(nPerClass int, seed int64) (X [][]float64, y []int) {
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < nPerClass; i++ {
		X = append(X, []float64{rng.NormFloat64()*0.5 - 2, rng.NormFloat64()*0.5 - 2})
		y = append(y, 0)
	}
	for i := 0; i < nPerClass; i++ {
		X = append(X, []float64{rng.NormFloat64()*0.5 + 2, rng.NormFloat64()*0.5 + 2})
		y = append(y, 1)
	}
	return X, y
}
