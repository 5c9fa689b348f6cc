package models

import "time"

type FeeStructure struct {
	ID           int64
	ClassName    string // canonical key, see fees.CanonicalClass
	MonthlyFee   float64
	AdmissionFee float64
	ExamFee      float64
	SportsFee    float64
}

type ConcessionMode string

const (
	ConcessionFixed      ConcessionMode = "fixed"
	ConcessionPercentage ConcessionMode = "percentage"
)

// Concession is valid for months in [StartMonth, EndMonth); an empty EndMonth
// leaves it open-ended. Months are zero-padded "YYYY-MM" strings, so plain
// string comparison orders them correctly.
type Concession struct {
	ID         int64
	StudentID  int64
	Mode       ConcessionMode
	Amount     float64
	StartMonth string
	EndMonth   string
	Note       string
}

type FeeInvoice struct {
	ID               int64
	InvoiceNumber    string
	StudentID        int64 // natural-key join to students, not a FK-style reference in the API
	StudentName      string
	ClassName        string
	Month            string // "YYYY-MM"
	Amount           float64
	PaidAmount       float64
	RemainingBalance float64
	Status           InvoiceStatus
	DueDate          time.Time
}
