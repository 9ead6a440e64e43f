package model

import (
	"time"

	"github.com/google/uuid"
)

type AcademicRecord struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID            string    `gorm:"type:varchar(50);index" json:"student_id"`
	Semester             int       `json:"semester"`
	GPA                  float64   `gorm:"type:float" json:"gpa"`
	Grade                string    `gorm:"type:varchar(5)" json:"grade"`
	AssignmentsCompleted int       `json:"assignments_completed"`
	TotalAssignments     int       `json:"total_assignments"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (r *AcademicRecord) TableName() string {
	return "academic_records"
}
