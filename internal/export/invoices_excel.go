package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/school-admin/internal/models"
)

var invoiceHeader = []string{
	"Invoice #", "Student ID", "Student", "Class", "Month",
	"Amount", "Paid", "Balance", "Status", "Due Date",
}

// InvoicesWorkbook renders invoices into a single-sheet workbook: bold
// header, auto-filter, heuristic column widths.
func InvoicesWorkbook(title string, invoices []models.FeeInvoice) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	sheet := "Invoices"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for col, h := range invoiceHeader {
		cell := fmt.Sprintf("%s1", colName(col+1))
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end := colName(len(invoiceHeader)) + "1"
	_ = f.SetCellStyle(sheet, "A1", end, bold)
	_ = f.AutoFilter(sheet, "A1:"+end, nil)

	for r, inv := range invoices {
		row := []string{
			inv.InvoiceNumber,
			strconv.FormatInt(inv.StudentID, 10),
			inv.StudentName,
			inv.ClassName,
			inv.Month,
			fmt.Sprintf("%.2f", inv.Amount),
			fmt.Sprintf("%.2f", inv.PaidAmount),
			fmt.Sprintf("%.2f", inv.RemainingBalance),
			string(inv.Status),
			inv.DueDate.Format("2006-01-02"),
		}
		for c, val := range row {
			cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
			if err := f.SetCellStr(sheet, cell, val); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	// heuristic width: header length vs first rows
	for c := 1; c <= len(invoiceHeader); c++ {
		maxim := len(invoiceHeader[c-1])
		for r := 0; r < minim(50, len(invoices)); r++ {
			if c == 1 && len(invoices[r].InvoiceNumber) > maxim {
				maxim = len(invoices[r].InvoiceNumber)
			}
			if c == 3 && len(invoices[r].StudentName) > maxim {
				maxim = len(invoices[r].StudentName)
			}
		}
		w := float64(maxim) * 0.9
		if w < 12 {
			w = 12
		}
		if w > 40 {
			w = 40
		}
		_ = f.SetColWidth(sheet, colName(c), colName(c), w)
	}

	if title != "" {
		_ = f.SetDocProps(&excelize.DocProperties{Title: title})
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

// helpers
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

func minim(a, b int) int {
	if a < b {
		return a
	}
	return b
}
