package models

import (
	"errors"
	"testing"
)

func TestStudentStatusTransitions(t *testing.T) {
	legal := []struct{ from, to StudentStatus }{
		{StudentPending, StudentApproved},
		{StudentPending, StudentRejected},
		{StudentApproved, StudentActive},
		{StudentApproved, StudentWithdrawn},
		{StudentActive, StudentWithdrawn},
	}
	for _, tc := range legal {
		got, err := tc.from.Transition(tc.to)
		if err != nil || got != tc.to {
			t.Errorf("%s -> %s: want ok, got %v", tc.from, tc.to, err)
		}
	}

	illegal := []struct{ from, to StudentStatus }{
		{StudentRejected, StudentApproved},
		{StudentWithdrawn, StudentActive},
		{StudentActive, StudentPending},
		{StudentPending, StudentActive}, // must pass through approved
	}
	for _, tc := range illegal {
		got, err := tc.from.Transition(tc.to)
		if err == nil {
			t.Errorf("%s -> %s: want rejection", tc.from, tc.to)
			continue
		}
		var bad *ErrBadTransition
		if !errors.As(err, &bad) {
			t.Errorf("%s -> %s: want ErrBadTransition, got %T", tc.from, tc.to, err)
		}
		if got != tc.from {
			t.Errorf("%s -> %s: status must not move on rejection, got %s", tc.from, tc.to, got)
		}
	}
}

func TestTeacherStatusTransitions(t *testing.T) {
	if _, err := TeacherPending.Transition(TeacherApproved); err != nil {
		t.Errorf("pending -> approved: %v", err)
	}
	if _, err := TeacherRejected.Transition(TeacherApproved); err == nil {
		t.Error("rejected -> approved must be rejected")
	}
}

func TestInvoiceStatusForPayment(t *testing.T) {
	if got := InvoiceStatusForPayment(5000, 5000); got != InvoicePaid {
		t.Errorf("full payment: got %s", got)
	}
	if got := InvoiceStatusForPayment(5000, 6000); got != InvoicePaid {
		t.Errorf("overpayment: got %s", got)
	}
	if got := InvoiceStatusForPayment(5000, 1); got != InvoicePartiallyPaid {
		t.Errorf("partial payment: got %s", got)
	}
	if got := InvoiceStatusForPayment(5000, 0); got != InvoicePending {
		t.Errorf("no payment: got %s", got)
	}
}

func TestExamStatusTransitions(t *testing.T) {
	if _, err := ExamUpcoming.Transition(ExamOngoing); err != nil {
		t.Errorf("upcoming -> ongoing: %v", err)
	}
	if _, err := ExamUpcoming.Transition(ExamCompleted); err != nil {
		t.Errorf("upcoming -> completed: %v", err)
	}
	if _, err := ExamCompleted.Transition(ExamOngoing); err == nil {
		t.Error("completed -> ongoing must be rejected")
	}
}
