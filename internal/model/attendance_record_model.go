package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID string    `gorm:"type:varchar(50);index" json:"student_id"`
	Date      time.Time `json:"date"`
	Status    string    `gorm:"type:varchar(20)" json:"status"` // "present", "absent", "late"
	CreatedAt time.Time `json:"created_at"`
}

func (r *AttendanceRecord) TableName() string {
	return "attendance_records"
}
