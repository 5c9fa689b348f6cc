package db

import (
	"context"
	"database/sql"

	"github.com/Spok95/school-admin/internal/models"
)

func CreateTeacher(ctx context.Context, database *sql.DB, t models.Teacher) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO teachers (id, name, phone, qualification, subject, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.Name, t.Phone, t.Qualification, t.Subject, string(t.Status))
	return err
}

func GetTeacherByID(ctx context.Context, database *sql.DB, id int64) (*models.Teacher, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, name, phone, qualification, subject, status
		FROM teachers WHERE id = $1
	`, id)
	var t models.Teacher
	if err := row.Scan(&t.ID, &t.Name, &t.Phone, &t.Qualification, &t.Subject, &t.Status); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func UpdateTeacherStatus(ctx context.Context, database *sql.DB, id int64, to models.TeacherStatus) error {
	cur, err := GetTeacherByID(ctx, database, id)
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
	_, err = database.ExecContext(ctx, `UPDATE teachers SET status = $1 WHERE id = $2`, string(next), id)
	return err
}
