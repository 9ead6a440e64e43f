package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mfauzirh/dropout-predictor/internal/model"
)

type BatchPredictRequest struct {
	StudentIDs      []string `json:"student_ids"`
	SavePredictions *bool    `json:"save_predictions"`
}

type PredictionDTO struct {
	ID                  uuid.UUID       `json:"id"`
	StudentID           string          `json:"student_id"`
	RiskScore           float64         `json:"risk_score"`
	RiskLevel           string          `json:"risk_level"`
	DropoutPrediction   bool            `json:"dropout_prediction"`
	Confidence          float64         `json:"confidence"`
	ContributingFactors json.RawMessage `json:"contributing_factors"`
	ModelKind           string          `json:"model_type"`
	CreatedAt           time.Time       `json:"created_at"`
}

func NewPredictionDTO(p *model.Prediction) PredictionDTO {
	factors := json.RawMessage(p.ContributingFactors)
	if len(factors) == 0 {
		factors = json.RawMessage("[]")
	}
	return PredictionDTO{
		ID:                  p.ID,
		StudentID:           p.StudentID,
		RiskScore:           p.RiskScore,
		RiskLevel:           p.RiskLevel,
		DropoutPrediction:   p.DropoutPrediction,
		Confidence:          p.Confidence,
		ContributingFactors: factors,
		ModelKind:           p.ModelKind,
		CreatedAt:           p.CreatedAt,
	}
}

func NewPredictionDTOs(preds []model.Prediction) []PredictionDTO {
	out := make([]PredictionDTO, len(preds))
	for i := range preds {
		out[i] = NewPredictionDTO(&preds[i])
	}
	return out
}
