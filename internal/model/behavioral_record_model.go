package model

import (
	"time"

	"github.com/google/uuid"
)

type BehavioralRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID    string    `gorm:"type:varchar(50);index" json:"student_id"`
	Date         time.Time `json:"date"`
	IncidentType string    `gorm:"type:varchar(100)" json:"incident_type"`
	Severity     string    `gorm:"type:varchar(20)" json:"severity"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *BehavioralRecord) TableName() string {
	return "behavioral_records"
}
