package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Prediction struct {
	ID                  uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID           string          `gorm:"type:varchar(50);index" json:"student_id"`
	RiskScore           float64         `gorm:"type:float" json:"risk_score"`
	RiskLevel           string          `gorm:"type:varchar(10);index" json:"risk_level"`
	DropoutPrediction   bool            `json:"dropout_prediction"`
	Confidence          float64         `gorm:"type:float" json:"confidence"`
	ContributingFactors string          `gorm:"type:jsonb" json:"contributing_factors"`
	ModelKind           string          `gorm:"type:varchar(50)" json:"model_type"`
	// schema-ordered feature row, pakai pgvector; dimension follows the
	// trained schema so the column stays untyped
	Features  pgvector.Vector `gorm:"type:vector" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (p *Prediction) TableName() string {
	return "predictions"
}
