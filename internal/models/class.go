package models

type Class struct {
	ID             int64
	Name           string
	Section        string
	ClassTeacherID *int64
	Subjects       []string
	Timetable      []TimetableSlot
}

// TimetableSlot holds the teacher as free text, exactly as entered by the
// office; the exam scheduler matches on the subject column only.
type TimetableSlot struct {
	Day         string
	StartTime   string
	EndTime     string
	Subject     string
	TeacherName string
	Room        string
}

// TeacherFor returns the timetable teacher for a subject, or "" when the
// subject has no timetabled teacher.
func (c Class) TeacherFor(subject string) string {
	for _, slot := range c.Timetable {
		if slot.Subject == subject {
			return slot.TeacherName
		}
	}
	return ""
}

func (c Class) DisplayName() string {
	if c.Section == "" {
		return c.Name
	}
	return c.Name + " " + c.Section
}
