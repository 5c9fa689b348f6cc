package models

import "time"

type Student struct {
	ID             int64
	Name           string
	GuardianName   string
	GuardianPhone  string
	AdmissionClass string
	CurrentClass   string
	// Status is empty for legacy records imported before the field existed;
	// billing treats those as approved.
	Status  StudentStatus
	ClassID *int64
}

// BillingClass is the label the fee lookup keys on: the current class when
// set, otherwise the class applied for at admission.
func (s Student) BillingClass() string {
	if s.CurrentClass != "" {
		return s.CurrentClass
	}
	return s.AdmissionClass
}

type AttendanceRecord struct {
	StudentID int64
	Day       time.Time
	Status    string // present|absent|leave
}

type Teacher struct {
	ID            int64
	Name          string
	Phone         string
	Qualification string
	Subject       string
	Status        TeacherStatus
}
