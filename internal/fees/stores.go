package fees

import (
	"context"
	"database/sql"

	"github.com/Spok95/school-admin/internal/db"
	"github.com/Spok95/school-admin/internal/models"
)

// DB-backed store adapters over internal/db.

type dbStudents struct{ db *sql.DB }

func (s dbStudents) ListBillable(ctx context.Context) ([]models.Student, error) {
	return db.ListBillableStudents(ctx, s.db)
}

type dbFees struct{ db *sql.DB }

func (s dbFees) MonthlyFee(ctx context.Context, canonicalClass string) (float64, error) {
	return db.MonthlyFeeByClass(ctx, s.db, canonicalClass)
}

type dbConcessions struct{ db *sql.DB }

func (s dbConcessions) ByStudent(ctx context.Context, studentID int64) ([]models.Concession, error) {
	return db.ListConcessionsByStudent(ctx, s.db, studentID)
}

type dbInvoices struct{ db *sql.DB }

func (s dbInvoices) ByStudentMonth(ctx context.Context, studentID int64, month string) (*models.FeeInvoice, error) {
	return db.GetInvoiceByStudentMonth(ctx, s.db, studentID, month)
}

func (s dbInvoices) Insert(ctx context.Context, inv models.FeeInvoice) error {
	return db.InsertInvoice(ctx, s.db, inv)
}

func (s dbInvoices) Overwrite(ctx context.Context, id int64, amount float64, studentName, className string) error {
	return db.OverwriteInvoice(ctx, s.db, id, amount, studentName, className)
}

// NewDBGenerator wires a Generator to the live database.
func NewDBGenerator(database *sql.DB, dueDay int) *Generator {
	return NewGenerator(
		dbStudents{database},
		dbFees{database},
		dbConcessions{database},
		dbInvoices{database},
		dueDay,
	)
}
