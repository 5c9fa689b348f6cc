package db

import (
	"context"
	"database/sql"

	"github.com/Spok95/school-admin/internal/models"
)

func CreateAccount(ctx context.Context, database *sql.DB, a models.Account) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO accounts (id, username, password, role, student_id, teacher_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.ID, a.Username, a.Password, a.Role, a.StudentID, a.TeacherID)
	return err
}

func GetAccountByUsername(ctx context.Context, database *sql.DB, username string) (*models.Account, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, username, password, role, student_id, teacher_id
		FROM accounts WHERE username = $1
	`, username)

	var a models.Account
	if err := row.Scan(&a.ID, &a.Username, &a.Password, &a.Role, &a.StudentID, &a.TeacherID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func DeleteAccount(ctx context.Context, database *sql.DB, id models.AccountID) error {
	_, err := database.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	return err
}
