package fees

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Spok95/school-admin/internal/metrics"
	"github.com/Spok95/school-admin/internal/models"
)

// Store interfaces kept deliberately narrow: the generator only needs to list
// who to bill, price a class, find a discount and upsert one invoice at a
// time. internal/db provides the real implementations; tests use in-memory
// fakes.

type StudentSource interface {
	ListBillable(ctx context.Context) ([]models.Student, error)
}

type FeeSource interface {
	MonthlyFee(ctx context.Context, canonicalClass string) (float64, error)
}

type ConcessionSource interface {
	ByStudent(ctx context.Context, studentID int64) ([]models.Concession, error)
}

type InvoiceStore interface {
	ByStudentMonth(ctx context.Context, studentID int64, month string) (*models.FeeInvoice, error)
	Insert(ctx context.Context, inv models.FeeInvoice) error
	Overwrite(ctx context.Context, id int64, amount float64, studentName, className string) error
}

type Summary struct {
	Generated int `json:"generatedCount"`
	Updated   int `json:"updatedCount"`
	Skipped   int `json:"skippedCount"`
}

type Generator struct {
	Students    StudentSource
	Fees        FeeSource
	Concessions ConcessionSource
	Invoices    InvoiceStore

	DueDay int              // day of month invoices fall due
	Now    func() time.Time // injectable clock

	limiter *monthLimiter
}

func NewGenerator(students StudentSource, fees FeeSource, concessions ConcessionSource, invoices InvoiceStore, dueDay int) *Generator {
	return &Generator{
		Students:    students,
		Fees:        fees,
		Concessions: concessions,
		Invoices:    invoices,
		DueDay:      dueDay,
		Now:         time.Now,
		limiter:     newMonthLimiter(),
	}
}

// Generate bills every eligible student for the month, one at a time. An
// existing (student, month) invoice is skipped, or re-priced in place when
// overwrite is set. Errors abort the run and propagate; invoices already
// written stay written, and the skip path makes a rerun safe.
func (g *Generator) Generate(ctx context.Context, month string, overwrite bool) (*Summary, error) {
	now := g.Now()
	if month == "" {
		month = now.Format("2006-01")
	}
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}

	unlock := g.limiter.lock(month)
	defer unlock()

	students, err := g.Students.ListBillable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list billable students: %w", err)
	}

	sum := &Summary{}
	for _, st := range students {
		if err := g.billStudent(ctx, st, month, overwrite, now, sum); err != nil {
			return sum, fmt.Errorf("student %d: %w", st.ID, err)
		}
	}

	metrics.InvoicesGenerated.Add(float64(sum.Generated))
	metrics.InvoicesUpdated.Add(float64(sum.Updated))
	metrics.InvoicesSkipped.Add(float64(sum.Skipped))
	return sum, nil
}

func (g *Generator) billStudent(ctx context.Context, st models.Student, month string, overwrite bool, now time.Time, sum *Summary) error {
	className := st.BillingClass()
	canonical := CanonicalClass(className)

	base, err := g.Fees.MonthlyFee(ctx, canonical)
	if err != nil {
		return fmt.Errorf("fee lookup %q: %w", canonical, err)
	}
	concessions, err := g.Concessions.ByStudent(ctx, st.ID)
	if err != nil {
		return fmt.Errorf("concessions: %w", err)
	}
	amount := ApplyConcession(base, ResolveConcession(concessions, month))

	existing, err := g.Invoices.ByStudentMonth(ctx, st.ID, month)
	if err != nil {
		return fmt.Errorf("invoice lookup: %w", err)
	}
	if existing != nil {
		if !overwrite {
			sum.Skipped++
			return nil
		}
		if err := g.Invoices.Overwrite(ctx, existing.ID, amount, st.Name, className); err != nil {
			return fmt.Errorf("overwrite invoice %s: %w", existing.InvoiceNumber, err)
		}
		sum.Updated++
		return nil
	}

	inv := models.FeeInvoice{
		InvoiceNumber:    invoiceNumber(month, st.ID),
		StudentID:        st.ID,
		StudentName:      st.Name,
		ClassName:        className,
		Month:            month,
		Amount:           amount,
		PaidAmount:       0,
		RemainingBalance: amount,
		Status:           models.InvoicePending,
		DueDate:          dueDate(now, g.DueDay),
	}
	if err := g.Invoices.Insert(ctx, inv); err != nil {
		return fmt.Errorf("insert invoice %s: %w", inv.InvoiceNumber, err)
	}
	sum.Generated++
	return nil
}

// invoiceNumber builds "INV-<YYYYMM>-<studentID>-<4 random digits>". The
// random suffix keeps numbers unique across overwrite-regenerate cycles.
func invoiceNumber(month string, studentID int64) string {
	return fmt.Sprintf("INV-%s-%d-%04d", strings.ReplaceAll(month, "-", ""), studentID, rand.Intn(10000))
}

// dueDate is day DueDay of the current month, pushed into the next month once
// that day has already passed.
func dueDate(now time.Time, day int) time.Time {
	due := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, now.Location())
	if due.Before(now) {
		due = due.AddDate(0, 1, 0)
	}
	return due
}

// ValidateMonth accepts zero-padded "YYYY-MM" only; everything downstream
// (concession windows, invoice keys) relies on that exact shape.
func ValidateMonth(month string) error {
	t, err := time.Parse("2006-01", month)
	if err != nil || t.Format("2006-01") != month {
		return fmt.Errorf("bad month %q: want YYYY-MM", month)
	}
	return nil
}
