package repository

import (
	"github.com/mfauzirh/dropout-predictor/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type PredictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db}
}

func (r *PredictionRepository) Create(p *model.Prediction) error {
	return r.db.Create(p).Error
}

func (r *PredictionRepository) FindByID(id string) (*model.Prediction, error) {
	var p model.Prediction
	err := r.db.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *PredictionRepository) FindByStudent(studentID string, limit int) ([]model.Prediction, error) {
	var preds []model.Prediction
	err := r.db.Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&preds).Error
	return preds, err
}

func (r *PredictionRepository) Latest(studentID string) (*model.Prediction, error) {
	var p model.Prediction
	err := r.db.Where("student_id = ?", studentID).
		Order("created_at DESC").
		First(&p).Error
	return &p, err
}

func (r *PredictionRepository) List(page, pageSize int, riskLevel string) ([]model.Prediction, int64, error) {
	var preds []model.Prediction
	var total int64
	q := r.db.Model(&model.Prediction{})
	if riskLevel != "" {
		q = q.Where("risk_level = ?", riskLevel)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&preds).Error
	return preds, total, err
}

func (r *PredictionRepository) HighRisk(limit int) ([]model.Prediction, error) {
	var preds []model.Prediction
	err := r.db.Where("risk_level = ?", "high").
		Order("risk_score DESC").
		Limit(limit).
		Find(&preds).Error
	return preds, err
}

// FindSimilar returns the stored predictions whose feature rows sit closest to
// the given one in feature space.
func (r *PredictionRepository) FindSimilar(features pgvector.Vector, topK int) ([]model.Prediction, error) {
	var preds []model.Prediction

	// query pgvector <-> operator (Euclidean distance)
	err := r.db.Raw(`
        SELECT *, features <-> ? AS distance
        FROM predictions
        ORDER BY features <-> ?
        LIMIT ?
    `, features, features, topK).Scan(&preds).Error

	return preds, err
}

// RiskStatistics counts predictions per tier.
type RiskStatistics struct {
	Total  int64 `json:"total_predictions"`
	Low    int64 `json:"low_risk"`
	Medium int64 `json:"medium_risk"`
	High   int64 `json:"high_risk"`
}

func (r *PredictionRepository) Statistics() (*RiskStatistics, error) {
	stats := &RiskStatistics{}
	rows := []struct {
		RiskLevel string
		Count     int64
	}{}
	err := r.db.Model(&model.Prediction{}).
		Select("risk_level, count(*) as count").
		Group("risk_level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		switch row.RiskLevel {
		case "low":
			stats.Low = row.Count
		case "medium":
			stats.Medium = row.Count
		case "high":
			stats.High = row.Count
		}
		stats.Total += row.Count
	}
	return stats, nil
}
