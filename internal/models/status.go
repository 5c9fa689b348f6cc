package models

import "fmt"

// Status fields used to be free-form strings written from a dozen call sites.
// Each lifecycle now has an explicit transition table; writes go through
// Transition and illegal moves are rejected with ErrBadTransition.

type ErrBadTransition struct {
	Kind string
	From string
	To   string
}

func (e *ErrBadTransition) Error() string {
	return fmt.Sprintf("%s: illegal status transition %q -> %q", e.Kind, e.From, e.To)
}

type StudentStatus string

const (
	StudentPending   StudentStatus = "pending"
	StudentApproved  StudentStatus = "approved"
	StudentRejected  StudentStatus = "rejected"
	StudentActive    StudentStatus = "active"
	StudentWithdrawn StudentStatus = "withdrawn"
)

var studentTransitions = map[StudentStatus][]StudentStatus{
	StudentPending:  {StudentApproved, StudentRejected},
	StudentApproved: {StudentActive, StudentWithdrawn},
	StudentActive:   {StudentWithdrawn},
}

func (s StudentStatus) CanTransition(to StudentStatus) bool {
	for _, t := range studentTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

func (s StudentStatus) Transition(to StudentStatus) (StudentStatus, error) {
	if !s.CanTransition(to) {
		return s, &ErrBadTransition{Kind: "student", From: string(s), To: string(to)}
	}
	return to, nil
}

type TeacherStatus string

const (
	TeacherPending  TeacherStatus = "pending"
	TeacherApproved TeacherStatus = "approved"
	TeacherRejected TeacherStatus = "rejected"
)

var teacherTransitions = map[TeacherStatus][]TeacherStatus{
	TeacherPending: {TeacherApproved, TeacherRejected},
}

func (s TeacherStatus) CanTransition(to TeacherStatus) bool {
	for _, t := range teacherTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

func (s TeacherStatus) Transition(to TeacherStatus) (TeacherStatus, error) {
	if !s.CanTransition(to) {
		return s, &ErrBadTransition{Kind: "teacher", From: string(s), To: string(to)}
	}
	return to, nil
}

type InvoiceStatus string

const (
	InvoicePending       InvoiceStatus = "pending"
	InvoicePaid          InvoiceStatus = "paid"
	InvoiceOverdue       InvoiceStatus = "overdue"
	InvoicePartiallyPaid InvoiceStatus = "partially_paid"
)

// InvoiceStatusForPayment derives the status from amounts; payment recording
// never sets a status directly.
func InvoiceStatusForPayment(amount, paid float64) InvoiceStatus {
	switch {
	case paid >= amount:
		return InvoicePaid
	case paid > 0:
		return InvoicePartiallyPaid
	default:
		return InvoicePending
	}
}

type ExamStatus string

const (
	ExamUpcoming  ExamStatus = "upcoming"
	ExamOngoing   ExamStatus = "ongoing"
	ExamCompleted ExamStatus = "completed"
)

var examTransitions = map[ExamStatus][]ExamStatus{
	ExamUpcoming: {ExamOngoing, ExamCompleted},
	ExamOngoing:  {ExamCompleted},
}

func (s ExamStatus) CanTransition(to ExamStatus) bool {
	for _, t := range examTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

func (s ExamStatus) Transition(to ExamStatus) (ExamStatus, error) {
	if !s.CanTransition(to) {
		return s, &ErrBadTransition{Kind: "exam", From: string(s), To: string(to)}
	}
	return to, nil
}
