package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrainerValidatesKind(t *testing.T) {
	_, err := NewTrainer(ModelKind("svm"))
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	tr, err := NewTrainer(RandomForest)
	require.NoError(t, err)
	assert.Equal(t, 0.2, tr.ValidationSplit)
	assert.Equal(t, int64(42), tr.Seed)
}

func TestTrainProducesArtifact(t *testing.T) {
	ds := makeTrainingData(60, 15)

	for _, kind := range []ModelKind{LogisticRegression, RandomForest} {
		tr, err := NewTrainer(kind)
		require.NoError(t, err)

		art, metrics, err := tr.Train(ds, "")
		require.NoError(t, err, "kind %s", kind)
		require.NotNil(t, art)

		// the classes separate cleanly, a fitted model must do well
		assert.GreaterOrEqual(t, metrics.Accuracy, 0.8, "kind %s", kind)
		assert.GreaterOrEqual(t, metrics.ROCAUC, 0.8, "kind %s", kind)
		assert.GreaterOrEqual(t, metrics.CVMean, 0.8, "kind %s", kind)

		assert.Equal(t, kind, art.Kind)
		assert.Equal(t, kind, art.Meta.ModelKind)
		assert.Equal(t, len(ds.Rows), art.Meta.TrainingSamples)
		assert.Equal(t, len(art.Schema), art.Meta.FeatureCount)
		assert.False(t, art.Meta.TrainedAt.IsZero())
		assert.Equal(t, metrics, art.Meta.Metrics)
	}
}

func TestTrainSchemaFollowsDatasetColumns(t *testing.T) {
	ds := makeTrainingData(40, 10)

	tr, err := NewTrainer(LogisticRegression)
	require.NoError(t, err)
	art, _, err := tr.Train(ds, "")
	require.NoError(t, err)

	// canonical source order with the derived trend feature behind its inputs,
	// identifier and target excluded
	assert.Equal(t, []string{
		"gpa", "current_gpa", "previous_gpa", "gpa_trend", "attendance_rate",
		"absences", "participation_score", "financial_aid",
		"parent_education_level",
	}, art.Schema)
}

func TestTrainDeterministic(t *testing.T) {
	ds := makeTrainingData(50, 12)

	for _, kind := range []ModelKind{LogisticRegression, RandomForest} {
		tr1, err := NewTrainer(kind)
		require.NoError(t, err)
		tr2, err := NewTrainer(kind)
		require.NoError(t, err)

		art1, metrics1, err := tr1.Train(ds.Copy(), "")
		require.NoError(t, err)
		art2, metrics2, err := tr2.Train(ds.Copy(), "")
		require.NoError(t, err)

		assert.Equal(t, metrics1, metrics2, "kind %s", kind)

		probe := makeTrainingData(5, 5)
		r1, err := NewPredictor(art1).Predict(probe)
		require.NoError(t, err)
		r2, err := NewPredictor(art2).Predict(probe)
		require.NoError(t, err)
		assert.Equal(t, r1, r2, "kind %s", kind)
	}
}

func TestTrainEmptyDataset(t *testing.T) {
	tr, err := NewTrainer(RandomForest)
	require.NoError(t, err)

	_, _, err = tr.Train(NewDataset(nil, nil), "")
	require.Error(t, err)
	var trainErr *TrainingError
	assert.ErrorAs(t, err, &trainErr)
}

func TestTrainMissingTargetColumn(t *testing.T) {
	ds := NewDataset([]string{"gpa"}, []Row{{"gpa": 3.0}})
	tr, err := NewTrainer(RandomForest)
	require.NoError(t, err)

	_, _, err = tr.Train(ds, "")
	require.Error(t, err)
	var trainErr *TrainingError
	assert.ErrorAs(t, err, &trainErr)
}

func TestTrainSingleClassFails(t *testing.T) {
	ds := makeTrainingData(30, 0)
	tr, err := NewTrainer(LogisticRegression)
	require.NoError(t, err)

	_, _, err = tr.Train(ds, "")
	require.Error(t, err)
	var trainErr *TrainingError
	assert.ErrorAs(t, err, &trainErr)
}

func TestTrainBadLabelValue(t *testing.T) {
	ds := NewDataset([]string{"gpa", "dropout"}, []Row{
		{"gpa": 3.0, "dropout": "No"},
		{"gpa": 1.0, "dropout": "maybe"},
	})
	tr, err := NewTrainer(LogisticRegression)
	require.NoError(t, err)

	_, _, err = tr.Train(ds, "")
	assert.Error(t, err)
}

func TestParseLabelsTolerantSpellings(t *testing.T) {
	ds := NewDataset([]string{"dropout"}, []Row{
		{"dropout": "Yes"},
		{"dropout": "no"},
		{"dropout": "TRUE"},
		{"dropout": 0.0},
		{"dropout": 1.0},
	})
	y, err := parseLabels(ds, "dropout")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1, 0, 1}, y)
}
