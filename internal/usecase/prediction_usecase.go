package usecase

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/mfauzirh/dropout-predictor/internal/ml"
	"github.com/mfauzirh/dropout-predictor/internal/model"
	"github.com/mfauzirh/dropout-predictor/internal/repository"
	"github.com/pgvector/pgvector-go"
)

// StudentDataSource is the slice of the data access layer the prediction path
// needs.
type StudentDataSource interface {
	AcademicData(studentID string) (*repository.StudentAcademicData, error)
}

// PredictionStore persists finished predictions.
type PredictionStore interface {
	Create(p *model.Prediction) error
}

// HighRiskNotifier is told about persisted high-risk predictions.
type HighRiskNotifier interface {
	NotifyHighRisk(studentID string, result *ml.PredictionResult)
}

type PredictionUsecase struct {
	students    StudentDataSource
	predictions PredictionStore
	registry    *ml.Registry
	notifier    HighRiskNotifier
	kind        ml.ModelKind
}

func NewPredictionUsecase(students StudentDataSource, predictions PredictionStore, registry *ml.Registry, notifier HighRiskNotifier, kind ml.ModelKind) *PredictionUsecase {
	return &PredictionUsecase{
		students:    students,
		predictions: predictions,
		registry:    registry,
		notifier:    notifier,
		kind:        kind,
	}
}

// TrainResult is what a training call reports back.
type TrainResult struct {
	ModelKind string             `json:"model_type"`
	Metrics   ml.TrainingMetrics `json:"metrics"`
	ModelPath string             `json:"model_path,omitempty"`
}

// Train runs a full training pipeline on the dataset and adopts the resulting
// artifact. Training never partially adopts: a pipeline failure leaves the
// previous model current.
func (uc *PredictionUsecase) Train(ds *ml.Dataset, kind string, persist bool) (*TrainResult, error) {
	modelKind := uc.kind
	if kind != "" {
		modelKind = ml.ModelKind(kind)
	}
	trainer, err := ml.NewTrainer(modelKind)
	if err != nil {
		return nil, err
	}
	log.Printf("Training %s model with %d samples", modelKind, len(ds.Rows))

	artifact, metrics, err := trainer.Train(ds, ml.DefaultTargetColumn)
	if err != nil {
		return nil, err
	}
	if err := uc.registry.Adopt(artifact, persist); err != nil {
		// model is resident, only the durable write failed
		log.Printf("Warning: model adopted in memory but persistence failed: %v", err)
		return nil, err
	}
	result := &TrainResult{ModelKind: string(modelKind), Metrics: metrics}
	if persist {
		result.ModelPath = uc.registry.Path(modelKind)
	}
	log.Printf("Model training completed. Accuracy: %.4f", metrics.Accuracy)
	return result, nil
}

// PredictionOutcome couples the scoring output with its stored record id when
// the caller asked for persistence.
type PredictionOutcome struct {
	StudentID    string `json:"student_id"`
	PredictionID string `json:"prediction_id,omitempty"`
	ml.PredictionResult
}

// PredictStudent scores one student from their stored records.
func (uc *PredictionUsecase) PredictStudent(studentID string, persist bool) (*PredictionOutcome, error) {
	data, err := uc.students.AcademicData(studentID)
	if err != nil {
		return nil, fmt.Errorf("fetch student %s: %w", studentID, err)
	}

	artifact, err := uc.registry.Current(uc.kind)
	if err != nil {
		return nil, err
	}

	ds := ml.DatasetFromRows([]ml.Row{featureRow(data)}, featureRowColumns)
	results, err := ml.NewPredictor(artifact).Predict(ds)
	if err != nil {
		return nil, err
	}
	result := results[0]
	outcome := &PredictionOutcome{StudentID: studentID, PredictionResult: result}

	if persist {
		record, err := uc.storePrediction(studentID, artifact, &result)
		if err != nil {
			return nil, err
		}
		outcome.PredictionID = record.ID.String()
	}
	if uc.notifier != nil && result.RiskLevel == ml.RiskHigh {
		uc.notifier.NotifyHighRisk(studentID, &result)
	}
	log.Printf("Prediction completed for student %s: %s", studentID, result.RiskLevel)
	return outcome, nil
}

func (uc *PredictionUsecase) storePrediction(studentID string, artifact *ml.Artifact, result *ml.PredictionResult) (*model.Prediction, error) {
	factors, err := json.Marshal(result.ContributingFactors)
	if err != nil {
		return nil, err
	}
	features := make([]float32, len(result.Features))
	for i, v := range result.Features {
		features[i] = float32(v)
	}
	record := &model.Prediction{
		StudentID:           studentID,
		RiskScore:           result.RiskScore,
		RiskLevel:           result.RiskLevel,
		DropoutPrediction:   result.DropoutPrediction,
		Confidence:          result.Confidence,
		ContributingFactors: string(factors),
		ModelKind:           string(artifact.Kind),
		Features:            pgvector.NewVector(features),
	}
	if err := uc.predictions.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// BatchItem is one entry of a batch prediction: either an outcome or an error
// marker, never both.
type BatchItem struct {
	StudentID string             `json:"student_id"`
	Result    *PredictionOutcome `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// BatchSummary counts how the batch went.
type BatchSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// PredictBatch scores each student independently. One student's failure turns
// into an inline error entry instead of aborting the batch; the result always
// has one entry per input id, in input order.
func (uc *PredictionUsecase) PredictBatch(studentIDs []string, persist bool) ([]BatchItem, BatchSummary) {
	log.Printf("Batch prediction for %d students", len(studentIDs))
	items := make([]BatchItem, len(studentIDs))
	summary := BatchSummary{Total: len(studentIDs)}
	for i, id := range studentIDs {
		item := BatchItem{StudentID: id}
		outcome, err := uc.PredictStudent(id, persist)
		if err != nil {
			item.Error = err.Error()
			summary.Failed++
		} else {
			item.Result = outcome
			summary.Successful++
		}
		items[i] = item
	}
	return items, summary
}

// ModelInfo describes the current model, or the absence of one.
type ModelInfo struct {
	Status             string             `json:"status"` // "not_trained", "trained", "error"
	Message            string             `json:"message,omitempty"`
	Metadata           *ml.Metadata       `json:"metadata,omitempty"`
	FeatureImportances map[string]float64 `json:"feature_importances,omitempty"`
}

func (uc *PredictionUsecase) ModelInfo() *ModelInfo {
	artifact, err := uc.registry.Current(uc.kind)
	if err != nil {
		if err == ml.ErrNotTrained {
			return &ModelInfo{Status: "not_trained", Message: "No trained model available"}
		}
		return &ModelInfo{Status: "error", Message: err.Error()}
	}
	meta := artifact.Meta
	return &ModelInfo{
		Status:             "trained",
		Metadata:           &meta,
		FeatureImportances: artifact.FeatureImportances(),
	}
}
