package repository

import (
	"github.com/mfauzirh/dropout-predictor/internal/model"
	"gorm.io/gorm"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db}
}

// StudentAcademicData aggregates everything the feature pipeline needs for
// one student. Academic records come newest semester first, attendance and
// behavioral records newest date first.
type StudentAcademicData struct {
	Student           *model.Student
	AcademicRecords   []model.AcademicRecord
	AttendanceRecords []model.AttendanceRecord
	BehavioralRecords []model.BehavioralRecord
}

func (r *StudentRepository) FindByStudentID(studentID string) (*model.Student, error) {
	var s model.Student
	err := r.db.First(&s, "student_id = ?", studentID).Error
	return &s, err
}

func (r *StudentRepository) AcademicData(studentID string) (*StudentAcademicData, error) {
	student, err := r.FindByStudentID(studentID)
	if err != nil {
		return nil, err
	}
	data := &StudentAcademicData{Student: student}
	if err := r.db.Where("student_id = ?", studentID).
		Order("semester DESC").
		Find(&data.AcademicRecords).Error; err != nil {
		return nil, err
	}
	if err := r.db.Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&data.AttendanceRecords).Error; err != nil {
		return nil, err
	}
	if err := r.db.Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&data.BehavioralRecords).Error; err != nil {
		return nil, err
	}
	return data, nil
}

func (r *StudentRepository) Create(student *model.Student) error {
	return r.db.Create(student).Error
}

func (r *StudentRepository) List(page, pageSize int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64
	if err := r.db.Model(&model.Student{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&students).Error
	return students, total, err
}
