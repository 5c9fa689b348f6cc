package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/Spok95/school-admin/internal/models"
)

// InsertExam writes the exam and its sessions in one transaction.
func InsertExam(ctx context.Context, database *sql.DB, exam models.Exam) (int64, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var examID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO exams (class_id, title, term, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, exam.ClassID, exam.Title, exam.Term, string(exam.Status)).Scan(&examID)
	if err != nil {
		return 0, err
	}

	for _, s := range exam.Sessions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO exam_sessions (exam_id, subject, day, start_time, end_time, duration, room, total_marks)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, examID, s.Subject, s.Day.Format("2006-01-02"), s.StartTime, s.EndTime, s.Duration, s.Room, s.TotalMarks); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return examID, nil
}

func GetExamByID(ctx context.Context, database *sql.DB, id int64) (*models.Exam, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, class_id, title, term, status FROM exams WHERE id = $1
	`, id)
	var e models.Exam
	if err := row.Scan(&e.ID, &e.ClassID, &e.Title, &e.Term, &e.Status); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	sessions, err := listSessions(ctx, database, e.ID)
	if err != nil {
		return nil, err
	}
	e.Sessions = sessions
	return &e, nil
}

func UpdateExamStatus(ctx context.Context, database *sql.DB, id int64, to models.ExamStatus) error {
	cur, err := GetExamByID(ctx, database, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return sql.ErrNoRows
	}
	next, err := cur.Status.Transition(to)
	if err != nil {
		return err
	}
	_, err = database.ExecContext(ctx, `UPDATE exams SET status = $1 WHERE id = $2`, string(next), id)
	return err
}

// ListUpcomingSessions returns every session of not-yet-completed exams; the
// scheduler seeds its teacher-occupancy table from these so a new run cannot
// stack sessions onto days already claimed by a previous one.
func ListUpcomingSessions(ctx context.Context, database *sql.DB) ([]models.ExamSession, map[int64]int64, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT s.id, s.exam_id, s.subject, s.day, s.start_time, s.end_time, s.duration, s.room, s.total_marks, e.class_id
		FROM exam_sessions s
		JOIN exams e ON e.id = s.exam_id
		WHERE e.status <> 'completed'
		ORDER BY s.day
	`)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = rows.Close() }()

	var sessions []models.ExamSession
	classOf := map[int64]int64{}
	for rows.Next() {
		var s models.ExamSession
		var day time.Time
		var classID int64
		if err := rows.Scan(&s.ID, &s.ExamID, &s.Subject, &day, &s.StartTime, &s.EndTime,
			&s.Duration, &s.Room, &s.TotalMarks, &classID); err != nil {
			return nil, nil, err
		}
		s.Day = day
		classOf[s.ExamID] = classID
		sessions = append(sessions, s)
	}
	return sessions, classOf, rows.Err()
}
