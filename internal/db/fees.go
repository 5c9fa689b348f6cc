package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Spok95/school-admin/internal/models"
)

func UpsertFeeStructure(ctx context.Context, database *sql.DB, fs models.FeeStructure) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO fee_structures (class_name, monthly_fee, admission_fee, exam_fee, sports_fee)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (class_name) DO UPDATE SET
			monthly_fee = EXCLUDED.monthly_fee,
			admission_fee = EXCLUDED.admission_fee,
			exam_fee = EXCLUDED.exam_fee,
			sports_fee = EXCLUDED.sports_fee
	`, fs.ClassName, fs.MonthlyFee, fs.AdmissionFee, fs.ExamFee, fs.SportsFee)
	return err
}

func ListFeeStructures(ctx context.Context, database *sql.DB) ([]models.FeeStructure, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, class_name, monthly_fee, admission_fee, exam_fee, sports_fee
		FROM fee_structures ORDER BY class_name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.FeeStructure
	for rows.Next() {
		var fs models.FeeStructure
		if err := rows.Scan(&fs.ID, &fs.ClassName, &fs.MonthlyFee, &fs.AdmissionFee, &fs.ExamFee, &fs.SportsFee); err != nil {
			return nil, err
		}
		out = append(out, fs)
	}
	return out, rows.Err()
}

// MonthlyFeeByClass looks up the base fee for a canonical class key. A class
// with no fee row bills at zero; that is how the office expects unknown
// classes to behave, not an error.
func MonthlyFeeByClass(ctx context.Context, database *sql.DB, canonical string) (float64, error) {
	var fee float64
	err := database.QueryRowContext(ctx, `
		SELECT monthly_fee FROM fee_structures WHERE class_name = $1
	`, canonical).Scan(&fee)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return fee, nil
}

func GetInvoiceByStudentMonth(ctx context.Context, database *sql.DB, studentID int64, month string) (*models.FeeInvoice, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, invoice_number, student_id, student_name, class_name, month,
		       amount, paid_amount, remaining_balance, status, due_date
		FROM fee_invoices WHERE student_id = $1 AND month = $2
		LIMIT 1
	`, studentID, month)
	inv, err := scanInvoice(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func GetInvoiceByID(ctx context.Context, database *sql.DB, id int64) (*models.FeeInvoice, error) {
	row := database.QueryRowContext(ctx, `
		SELECT id, invoice_number, student_id, student_name, class_name, month,
		       amount, paid_amount, remaining_balance, status, due_date
		FROM fee_invoices WHERE id = $1
	`, id)
	inv, err := scanInvoice(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func InsertInvoice(ctx context.Context, database *sql.DB, inv models.FeeInvoice) error {
	_, err := database.ExecContext(ctx, `
		INSERT INTO fee_invoices (invoice_number, student_id, student_name, class_name, month,
		                          amount, paid_amount, remaining_balance, status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, inv.InvoiceNumber, inv.StudentID, inv.StudentName, inv.ClassName, inv.Month,
		inv.Amount, inv.PaidAmount, inv.RemainingBalance, string(inv.Status), inv.DueDate)
	return err
}

// OverwriteInvoice refreshes the billed amount and the denormalized student
// fields in place; payment state is left alone apart from the recomputed
// remaining balance.
func OverwriteInvoice(ctx context.Context, database *sql.DB, id int64, amount float64, studentName, className string) error {
	_, err := database.ExecContext(ctx, `
		UPDATE fee_invoices
		SET amount = $1,
		    student_name = $2,
		    class_name = $3,
		    remaining_balance = GREATEST($1 - paid_amount, 0),
		    updated_at = now()
		WHERE id = $4
	`, amount, studentName, className, id)
	return err
}

// ApplyPayment records a payment total and derives balance and status from it.
func ApplyPayment(ctx context.Context, database *sql.DB, id int64, paidAmount float64) (*models.FeeInvoice, error) {
	inv, err := GetInvoiceByID(ctx, database, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}
	status := models.InvoiceStatusForPayment(inv.Amount, paidAmount)
	remaining := inv.Amount - paidAmount
	if remaining < 0 {
		remaining = 0
	}
	_, err = database.ExecContext(ctx, `
		UPDATE fee_invoices
		SET paid_amount = $1, remaining_balance = $2, status = $3, updated_at = now()
		WHERE id = $4
	`, paidAmount, remaining, string(status), id)
	if err != nil {
		return nil, err
	}
	inv.PaidAmount = paidAmount
	inv.RemainingBalance = remaining
	inv.Status = status
	return inv, nil
}

func SetInvoiceStatus(ctx context.Context, database *sql.DB, id int64, status models.InvoiceStatus) error {
	_, err := database.ExecContext(ctx, `
		UPDATE fee_invoices SET status = $1, updated_at = now() WHERE id = $2
	`, string(status), id)
	return err
}

type InvoiceFilter struct {
	StudentID int64
	Month     string
	Status    string
}

func ListInvoices(ctx context.Context, database *sql.DB, f InvoiceFilter) ([]models.FeeInvoice, error) {
	q := `
		SELECT id, invoice_number, student_id, student_name, class_name, month,
		       amount, paid_amount, remaining_balance, status, due_date
		FROM fee_invoices`
	var conds []string
	var args []any
	if f.StudentID != 0 {
		args = append(args, f.StudentID)
		conds = append(conds, fmt.Sprintf("student_id = $%d", len(args)))
	}
	if f.Month != "" {
		args = append(args, f.Month)
		conds = append(conds, fmt.Sprintf("month = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY month DESC, student_id"

	rows, err := database.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.FeeInvoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

func scanInvoice(row rowScanner) (*models.FeeInvoice, error) {
	var inv models.FeeInvoice
	var due time.Time
	if err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.StudentID, &inv.StudentName,
		&inv.ClassName, &inv.Month, &inv.Amount, &inv.PaidAmount, &inv.RemainingBalance,
		&inv.Status, &due); err != nil {
		return nil, err
	}
	inv.DueDate = due
	return &inv, nil
}
