package db

import (
	"context"
	"database/sql"

	"github.com/Spok95/school-admin/internal/models"
)

// InsertResult stores a graded result and its per-subject marks in one
// transaction. Aggregates are expected to be computed already (grading happens
// at submission, never on read).
func InsertResult(ctx context.Context, database *sql.DB, r models.Result) (int64, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var resultID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO results (exam_id, student_id, total_obtained, total_max, percentage, grade, passed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, r.ExamID, r.StudentID, r.TotalObtained, r.TotalMax, r.Percentage, r.Grade, r.Passed).Scan(&resultID)
	if err != nil {
		return 0, err
	}

	for _, m := range r.Marks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO result_marks (result_id, subject, obtained, total)
			VALUES ($1, $2, $3, $4)
		`, resultID, m.Subject, m.Obtained, m.Total); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return resultID, nil
}

func GetResult(ctx context.Context, database *sql.DB, examID, studentID int64) (*models.Result, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, exam_id, student_id, total_obtained, total_max, percentage, grade, passed
		FROM results WHERE exam_id = $1 AND student_id = $2
	`, examID, studentID)
	var r models.Result
	if err := row.Scan(&r.ID, &r.ExamID, &r.StudentID, &r.TotalObtained, &r.TotalMax,
		&r.Percentage, &r.Grade, &r.Passed); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := database.QueryContext(ctx, `
		SELECT subject, obtained, total FROM result_marks WHERE result_id = $1 ORDER BY id
	`, r.ID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var m models.SubjectMark
		if err := rows.Scan(&m.Subject, &m.Obtained, &m.Total); err != nil {
			return nil, err
		}
		r.Marks = append(r.Marks, m)
	}
	return &r, rows.Err()
}

func listSessions(ctx context.Context, database *sql.DB, examID int64) ([]models.ExamSession, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, exam_id, subject, day, start_time, end_time, duration, room, total_marks
		FROM exam_sessions WHERE exam_id = $1 ORDER BY day
	`, examID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.ExamSession
	for rows.Next() {
		var s models.ExamSession
		if err := rows.Scan(&s.ID, &s.ExamID, &s.Subject, &s.Day, &s.StartTime, &s.EndTime,
			&s.Duration, &s.Room, &s.TotalMarks); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
