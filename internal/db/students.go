package db

import (
	"context"
	"database/sql"

	"github.com/Spok95/school-admin/internal/models"
)

func CreateStudent(ctx context.Context, database *sql.DB, s models.Student) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO students (id, name, guardian_name, guardian_phone, admission_class, current_class, status, class_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.ID, s.Name, s.GuardianName, s.GuardianPhone, s.AdmissionClass, s.CurrentClass, nullStatus(string(s.Status)), s.ClassID)
	return err
}

func GetStudentByID(ctx context.Context, database *sql.DB, id int64) (*models.Student, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, name, guardian_name, guardian_phone, admission_class, current_class, status, class_id
		FROM students WHERE id = $1
	`, id)
	s, err := scanStudent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListBillableStudents returns students the invoice generator should bill:
// approved, or with no status at all (records imported before the status
// column existed). Active students are not billed here; billing has always
// run against the approved set only.
func ListBillableStudents(ctx context.Context, database *sql.DB) ([]models.Student, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, name, guardian_name, guardian_phone, admission_class, current_class, status, class_id
		FROM students
		WHERE status = 'approved' OR status IS NULL
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func UpdateStudentStatus(ctx context.Context, database *sql.DB, id int64, to models.StudentStatus) error {
	cur, err := GetStudentByID(ctx, database, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return sql.ErrNoRows
	}
	from := cur.Status
	if from == "" {
		// legacy records never went through the admission flow
		from = models.StudentApproved
	}
	next, err := from.Transition(to)
	if err != nil {
		return err
	}
	_, err = database.ExecContext(ctx, `UPDATE students SET status = $1 WHERE id = $2`, string(next), id)
	return err
}

// DeleteStudent removes the student; invoices, concessions, attendance and
// results go with it via FK cascade.
func DeleteStudent(ctx context.Context, database *sql.DB, id int64) error {
	_, err := database.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	return err
}

func MarkAttendance(ctx context.Context, database *sql.DB, rec models.AttendanceRecord) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO student_attendance (student_id, day, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id, day) DO UPDATE SET status = EXCLUDED.status
	`, rec.StudentID, rec.Day.Format("2006-01-02"), rec.Status)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var s models.Student
	var status sql.NullString
	if err := row.Scan(&s.ID, &s.Name, &s.GuardianName, &s.GuardianPhone,
		&s.AdmissionClass, &s.CurrentClass, &status, &s.ClassID); err != nil {
		return nil, err
	}
	if status.Valid {
		s.Status = models.StudentStatus(status.String)
	}
	return &s, nil
}

func nullStatus(s string) any {
	if s == "" {
		return nil
	}
	return s
}
