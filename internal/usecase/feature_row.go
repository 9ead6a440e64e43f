package usecase

import (
	"github.com/mfauzirh/dropout-predictor/internal/ml"
	"github.com/mfauzirh/dropout-predictor/internal/model"
	"github.com/mfauzirh/dropout-predictor/internal/repository"
)

// featureRowColumns fixes the column order of single-student batches so the
// extractor sees a stable input shape.
var featureRowColumns = []string{
	"student_id",
	"gpa",
	"current_gpa",
	"previous_gpa",
	"attendance_rate",
	"absences",
	"participation_score",
	"assignment_completion_rate",
	"disciplinary_incidents",
	"financial_aid",
	"parent_education_level",
	"credits_enrolled",
	"failed_courses",
	"motivation_score",
	"stress_level",
}

// featureRow derives one tabular row from a student's aggregate records:
// current/previous GPA from the two most recent academic records, attendance
// rate and absence count from attendance records, completion rate and failed
// course count from academic records, incident count from behavioral records.
func featureRow(data *repository.StudentAcademicData) ml.Row {
	s := data.Student
	row := ml.Row{
		"student_id":                 s.StudentID,
		"gpa":                        orDefault(s.GPA, 0),
		"current_gpa":                0.0,
		"previous_gpa":               0.0,
		"attendance_rate":            attendanceRate(data.AttendanceRecords),
		"absences":                   float64(countStatus(data.AttendanceRecords, "absent")),
		"participation_score":        orDefault(s.ParticipationScore, 0),
		"assignment_completion_rate": completionRate(data.AcademicRecords),
		"disciplinary_incidents":     float64(len(data.BehavioralRecords)),
		"financial_aid":              orDefaultStr(s.FinancialAid, "No"),
		"parent_education_level":     orDefaultStr(s.ParentEducationLevel, "Unknown"),
		"credits_enrolled":           orDefault(s.CreditsEnrolled, 0),
		"failed_courses":             float64(countGrade(data.AcademicRecords, "F")),
		"motivation_score":           orDefault(s.MotivationScore, 5),
		"stress_level":               orDefault(s.StressLevel, 5),
	}
	if len(data.AcademicRecords) > 0 {
		row["current_gpa"] = data.AcademicRecords[0].GPA
	}
	if len(data.AcademicRecords) > 1 {
		row["previous_gpa"] = data.AcademicRecords[1].GPA
	}
	return row
}

// attendanceRate is present / total, 1.0 when there are no records yet.
func attendanceRate(records []model.AttendanceRecord) float64 {
	if len(records) == 0 {
		return 1.0
	}
	present := countStatus(records, "present")
	return float64(present) / float64(len(records))
}

// completionRate sums completed over assigned across academic records, 1.0
// when there is nothing assigned yet.
func completionRate(records []model.AcademicRecord) float64 {
	if len(records) == 0 {
		return 1.0
	}
	completed, total := 0, 0
	for _, r := range records {
		completed += r.AssignmentsCompleted
		total += r.TotalAssignments
	}
	if total == 0 {
		return 1.0
	}
	return float64(completed) / float64(total)
}

func countStatus(records []model.AttendanceRecord, status string) int {
	n := 0
	for _, r := range records {
		if r.Status == status {
			n++
		}
	}
	return n
}

func countGrade(records []model.AcademicRecord, grade string) int {
	n := 0
	for _, r := range records {
		if r.Grade == grade {
			n++
		}
	}
	return n
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func orDefaultStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
