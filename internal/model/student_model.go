package model

import (
	"time"

	"github.com/google/uuid"
)

type Student struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID            string    `gorm:"type:varchar(50);uniqueIndex" json:"student_id"`
	Name                 string    `json:"name"`
	Email                string    `gorm:"type:varchar(255)" json:"email"`
	GPA                  *float64  `gorm:"type:float" json:"gpa"`
	ParticipationScore   *float64  `gorm:"type:float" json:"participation_score"`
	FinancialAid         string    `gorm:"type:varchar(10)" json:"financial_aid"` // "Yes" / "No"
	ParentEducationLevel string    `gorm:"type:varchar(50)" json:"parent_education_level"`
	CreditsEnrolled      *float64  `gorm:"type:float" json:"credits_enrolled"`
	MotivationScore      *float64  `gorm:"type:float" json:"motivation_score"`
	StressLevel          *float64  `gorm:"type:float" json:"stress_level"`
	EnrolledAt           time.Time `json:"enrolled_at"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (s *Student) TableName() string {
	return "students"
}
