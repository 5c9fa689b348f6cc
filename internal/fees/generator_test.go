package fees

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Spok95/school-admin/internal/models"
)

// in-memory fakes for the generator's store interfaces

type memStudents []models.Student

func (m memStudents) ListBillable(context.Context) ([]models.Student, error) { return m, nil }

type memFees map[string]float64

func (m memFees) MonthlyFee(_ context.Context, canonical string) (float64, error) {
	return m[canonical], nil // missing class bills at zero
}

type memConcessions map[int64][]models.Concession

func (m memConcessions) ByStudent(_ context.Context, id int64) ([]models.Concession, error) {
	return m[id], nil
}

type memInvoices struct {
	rows   []models.FeeInvoice
	nextID int64
}

func (m *memInvoices) ByStudentMonth(_ context.Context, studentID int64, month string) (*models.FeeInvoice, error) {
	for i := range m.rows {
		if m.rows[i].StudentID == studentID && m.rows[i].Month == month {
			inv := m.rows[i]
			return &inv, nil
		}
	}
	return nil, nil
}

func (m *memInvoices) Insert(_ context.Context, inv models.FeeInvoice) error {
	m.nextID++
	inv.ID = m.nextID
	m.rows = append(m.rows, inv)
	return nil
}

func (m *memInvoices) Overwrite(_ context.Context, id int64, amount float64, studentName, className string) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Amount = amount
			m.rows[i].StudentName = studentName
			m.rows[i].ClassName = className
			return nil
		}
	}
	return nil
}

func newTestGenerator(invoices *memInvoices) *Generator {
	students := memStudents{
		{ID: 11, Name: "Ayesha", CurrentClass: "5", Status: models.StudentApproved},
		{ID: 12, Name: "Bilal", CurrentClass: "Grade 5"}, // legacy record, empty status
		{ID: 13, Name: "Chand", CurrentClass: "3", Status: models.StudentApproved},
	}
	fees := memFees{"V": 5000, "III": 4000}
	concessions := memConcessions{
		13: {{StudentID: 13, Mode: models.ConcessionFixed, Amount: 1000, StartMonth: "2024-01"}},
	}
	g := NewGenerator(students, fees, concessions, invoices, 10)
	g.Now = func() time.Time {
		return time.Date(2024, time.July, 3, 9, 0, 0, 0, time.UTC)
	}
	return g
}

func TestGenerate_FreshMonth(t *testing.T) {
	invoices := &memInvoices{}
	g := newTestGenerator(invoices)

	sum, err := g.Generate(context.Background(), "2024-07", false)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Generated != 3 || sum.Updated != 0 || sum.Skipped != 0 {
		t.Fatalf("want 3/0/0, got %+v", sum)
	}
	if len(invoices.rows) != 3 {
		t.Fatalf("want 3 invoices, got %d", len(invoices.rows))
	}

	byStudent := map[int64]models.FeeInvoice{}
	for _, inv := range invoices.rows {
		byStudent[inv.StudentID] = inv
	}
	if byStudent[11].Amount != 5000 {
		t.Errorf("student 11: want 5000, got %v", byStudent[11].Amount)
	}
	if byStudent[12].Amount != 5000 {
		t.Errorf("student 12 (legacy, 'Grade 5'): want 5000, got %v", byStudent[12].Amount)
	}
	if byStudent[13].Amount != 3000 {
		t.Errorf("student 13 (4000 - 1000 concession): want 3000, got %v", byStudent[13].Amount)
	}

	for _, inv := range invoices.rows {
		if inv.Status != models.InvoicePending {
			t.Errorf("new invoice status: want pending, got %s", inv.Status)
		}
		if !strings.HasPrefix(inv.InvoiceNumber, "INV-202407-") {
			t.Errorf("invoice number %q lacks INV-202407- prefix", inv.InvoiceNumber)
		}
		if inv.RemainingBalance != inv.Amount {
			t.Errorf("fresh invoice balance %v != amount %v", inv.RemainingBalance, inv.Amount)
		}
		// run on July 3rd: the 10th has not passed, due date stays in July
		if got := inv.DueDate.Format("2006-01-02"); got != "2024-07-10" {
			t.Errorf("due date: want 2024-07-10, got %s", got)
		}
	}
}

func TestGenerate_SecondRunSkips(t *testing.T) {
	invoices := &memInvoices{}
	g := newTestGenerator(invoices)

	if _, err := g.Generate(context.Background(), "2024-07", false); err != nil {
		t.Fatal(err)
	}
	before := make([]models.FeeInvoice, len(invoices.rows))
	copy(before, invoices.rows)

	sum, err := g.Generate(context.Background(), "2024-07", false)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Generated != 0 || sum.Skipped != 3 {
		t.Fatalf("second run: want 0 generated / 3 skipped, got %+v", sum)
	}
	if len(invoices.rows) != 3 {
		t.Fatalf("second run must not add invoices, got %d", len(invoices.rows))
	}
	for i := range before {
		if invoices.rows[i].Amount != before[i].Amount || invoices.rows[i].InvoiceNumber != before[i].InvoiceNumber {
			t.Errorf("invoice %d changed on skip run", before[i].ID)
		}
	}
}

func TestGenerate_OverwriteUpdatesInPlace(t *testing.T) {
	invoices := &memInvoices{}
	g := newTestGenerator(invoices)

	if _, err := g.Generate(context.Background(), "2024-07", false); err != nil {
		t.Fatal(err)
	}
	numbers := map[int64]string{}
	for _, inv := range invoices.rows {
		numbers[inv.StudentID] = inv.InvoiceNumber
	}

	// fee hike between runs
	g.Fees = memFees{"V": 6000, "III": 4000}

	sum, err := g.Generate(context.Background(), "2024-07", true)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Updated != 3 || sum.Generated != 0 {
		t.Fatalf("overwrite run: want 3 updated, got %+v", sum)
	}
	if len(invoices.rows) != 3 {
		t.Fatalf("overwrite must not create invoices, got %d", len(invoices.rows))
	}
	for _, inv := range invoices.rows {
		if inv.InvoiceNumber != numbers[inv.StudentID] {
			t.Errorf("invoice number changed on overwrite: %q -> %q", numbers[inv.StudentID], inv.InvoiceNumber)
		}
		if inv.StudentID == 11 && inv.Amount != 6000 {
			t.Errorf("student 11 after hike: want 6000, got %v", inv.Amount)
		}
	}
}

func TestGenerate_DefaultsToCurrentMonth(t *testing.T) {
	invoices := &memInvoices{}
	g := newTestGenerator(invoices)

	if _, err := g.Generate(context.Background(), "", false); err != nil {
		t.Fatal(err)
	}
	for _, inv := range invoices.rows {
		if inv.Month != "2024-07" {
			t.Fatalf("default month: want 2024-07, got %s", inv.Month)
		}
	}
}

func TestGenerate_RejectsBadMonth(t *testing.T) {
	g := newTestGenerator(&memInvoices{})
	if _, err := g.Generate(context.Background(), "2024-7", false); err == nil {
		t.Fatal("unpadded month must be rejected")
	}
	if _, err := g.Generate(context.Background(), "July 2024", false); err == nil {
		t.Fatal("non-ISO month must be rejected")
	}
}

func TestDueDateRollsForward(t *testing.T) {
	late := time.Date(2024, time.July, 15, 9, 0, 0, 0, time.UTC)
	if got := dueDate(late, 10).Format("2006-01-02"); got != "2024-08-10" {
		t.Errorf("past due day must roll to next month, got %s", got)
	}
	early := time.Date(2024, time.July, 3, 9, 0, 0, 0, time.UTC)
	if got := dueDate(early, 10).Format("2006-01-02"); got != "2024-07-10" {
		t.Errorf("upcoming due day must stay, got %s", got)
	}
}
