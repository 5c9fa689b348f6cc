//go:build testutil
// +build testutil

package db

import (
	"context"
	"testing"
	"time"

	"github.com/Spok95/school-admin/internal/models"
	"github.com/Spok95/school-admin/internal/testutil/testdb"
)

func TestInvoiceLifecycle(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	defer h.Close()

	if _, err := h.DB.ExecContext(ctx, `INSERT INTO students (id, name, current_class, status) VALUES (11, 'Ali Raza', 'V', 'approved')`); err != nil {
		t.Fatalf("insert student: %v", err)
	}

	if err := UpsertFeeStructure(ctx, h.DB, models.FeeStructure{ClassName: "V", MonthlyFee: 5000}); err != nil {
		t.Fatalf("upsert structure: %v", err)
	}
	fee, err := MonthlyFeeByClass(ctx, h.DB, "V")
	if err != nil || fee != 5000 {
		t.Fatalf("monthly fee: want 5000, got %v (%v)", fee, err)
	}
	if fee, err := MonthlyFeeByClass(ctx, h.DB, "XII"); err != nil || fee != 0 {
		t.Fatalf("missing structure must bill zero, got %v (%v)", fee, err)
	}

	inv := models.FeeInvoice{
		InvoiceNumber:    "INV-202407-11-0042",
		StudentID:        11,
		StudentName:      "Ali Raza",
		ClassName:        "V",
		Month:            "2024-07",
		Amount:           5000,
		RemainingBalance: 5000,
		Status:           models.InvoicePending,
		DueDate:          time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := InsertInvoice(ctx, h.DB, inv); err != nil {
		t.Fatalf("insert invoice: %v", err)
	}

	got, err := GetInvoiceByStudentMonth(ctx, h.DB, 11, "2024-07")
	if err != nil {
		t.Fatalf("get by student+month: %v", err)
	}
	if got == nil || got.InvoiceNumber != inv.InvoiceNumber {
		t.Fatalf("get by student+month: got %+v", got)
	}
	if miss, err := GetInvoiceByStudentMonth(ctx, h.DB, 11, "2024-08"); err != nil || miss != nil {
		t.Fatalf("month with no invoice must return nil, got %+v (%v)", miss, err)
	}

	paid, err := ApplyPayment(ctx, h.DB, got.ID, 2000)
	if err != nil {
		t.Fatalf("apply payment: %v", err)
	}
	if paid.Status != models.InvoicePartiallyPaid || paid.RemainingBalance != 3000 {
		t.Fatalf("after partial payment: %+v", paid)
	}

	paid, err = ApplyPayment(ctx, h.DB, got.ID, 6000)
	if err != nil {
		t.Fatalf("apply overpayment: %v", err)
	}
	if paid.Status != models.InvoicePaid || paid.RemainingBalance != 0 {
		t.Fatalf("overpayment must clamp balance at zero: %+v", paid)
	}

	if err := OverwriteInvoice(ctx, h.DB, got.ID, 7000, "Ali Raza", "V"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	over, err := GetInvoiceByID(ctx, h.DB, got.ID)
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if over.Amount != 7000 || over.RemainingBalance != 1000 || over.InvoiceNumber != inv.InvoiceNumber {
		t.Fatalf("overwrite must rebill in place: %+v", over)
	}

	list, err := ListInvoices(ctx, h.DB, InvoiceFilter{Month: "2024-07", Status: "paid"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("filtered list: want 1 invoice, got %d", len(list))
	}
}
