package db

import (
	"context"
	"database/sql"

	"github.com/Spok95/school-admin/internal/models"
)

func InsertConcession(ctx context.Context, database *sql.DB, c models.Concession) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
		INSERT INTO concessions (student_id, mode, amount, start_month, end_month, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, c.StudentID, string(c.Mode), c.Amount, c.StartMonth, nullStatus(c.EndMonth), c.Note).Scan(&id)
	return id, err
}

func ListConcessionsByStudent(ctx context.Context, database *sql.DB, studentID int64) ([]models.Concession, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, student_id, mode, amount, start_month, end_month, COALESCE(note, '')
		FROM concessions WHERE student_id = $1
		ORDER BY start_month
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Concession
	for rows.Next() {
		var c models.Concession
		var endMonth sql.NullString
		if err := rows.Scan(&c.ID, &c.StudentID, &c.Mode, &c.Amount, &c.StartMonth, &endMonth, &c.Note); err != nil {
			return nil, err
		}
		if endMonth.Valid {
			c.EndMonth = endMonth.String
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
