package exams

import (
	"math"

	"github.com/Spok95/school-admin/internal/models"
)

const passShare = 0.4 // minimum share of a subject's total marks to pass it

// GradeResult computes the denormalized aggregates stored on a result row.
// Grading happens once, when marks are submitted; reads never recompute.
func GradeResult(examID, studentID int64, marks []models.SubjectMark) models.Result {
	r := models.Result{
		ExamID:    examID,
		StudentID: studentID,
		Marks:     marks,
		Passed:    true,
	}
	for _, m := range marks {
		r.TotalObtained += m.Obtained
		r.TotalMax += m.Total
		if m.Total > 0 && m.Obtained < passShare*m.Total {
			r.Passed = false
		}
	}
	if r.TotalMax > 0 {
		r.Percentage = math.Round(r.TotalObtained/r.TotalMax*100*100) / 100
	}
	if len(marks) == 0 {
		r.Passed = false
	}
	r.Grade = letterGrade(r.Percentage)
	return r
}

func letterGrade(pct float64) string {
	switch {
	case pct >= 90:
		return "A+"
	case pct >= 80:
		return "A"
	case pct >= 70:
		return "B"
	case pct >= 60:
		return "C"
	case pct >= 50:
		return "D"
	case pct >= 40:
		return "E"
	default:
		return "F"
	}
}
