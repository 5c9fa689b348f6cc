package exams

import (
	"fmt"
	"time"

	"github.com/Spok95/school-admin/internal/metrics"
	"github.com/Spok95/school-admin/internal/models"
)

// The auto scheduler is a greedy first-fit pass: classes in order, subjects in
// order, first acceptable date wins. No backtracking and no attempt to
// minimize the exam-period length; the payoff is a bounded worst case of
// 30 probes per subject. Subjects that cannot be placed are reported back
// instead of silently dropped, so the office can slot them by hand.

const (
	maxDateProbes     = 30
	teacherDayLimit   = 2 // sessions one teacher may invigilate per day
	defaultTotalMarks = 100
)

type Request struct {
	Title     string
	Term      string
	StartDate time.Time
	StartTime string
	EndTime   string // empty: StartTime + 3h
}

type SkippedSubject struct {
	ClassID   int64  `json:"classId"`
	ClassName string `json:"className"`
	Subject   string `json:"subject"`
	Reason    string `json:"reason"`
}

type ScheduleResult struct {
	Exams   []models.Exam
	Skipped []SkippedSubject
}

// Occupancy counts sessions per (day, teacher). Seed it from already-booked
// sessions so a fresh run does not stack onto days an earlier exam claimed.
type Occupancy map[string]int

func (o Occupancy) Add(day time.Time, teacher string) {
	if teacher == "" {
		return
	}
	o[occKey(day, teacher)]++
}

func (o Occupancy) count(day time.Time, teacher string) int {
	if teacher == "" {
		return 0
	}
	return o[occKey(day, teacher)]
}

func occKey(day time.Time, teacher string) string {
	return day.Format("2006-01-02") + "|" + teacher
}

// ClassDays tracks which dates a class already sits an exam on.
type ClassDays map[string]bool

func (c ClassDays) Add(classID int64, day time.Time) {
	c[classDayKey(classID, day)] = true
}

func (c ClassDays) taken(classID int64, day time.Time) bool {
	return c[classDayKey(classID, day)]
}

func classDayKey(classID int64, day time.Time) string {
	return fmt.Sprintf("%d|%s", classID, day.Format("2006-01-02"))
}

// Schedule plans sessions for every class with subjects. busy and classDays
// carry pre-existing bookings; both are updated in place as sessions are
// placed, which is what keeps one teacher under the per-day limit across
// classes within the run.
func Schedule(classes []models.Class, busy Occupancy, classDays ClassDays, req Request) (*ScheduleResult, error) {
	if busy == nil {
		busy = Occupancy{}
	}
	if classDays == nil {
		classDays = ClassDays{}
	}

	endTime := req.EndTime
	if endTime == "" {
		var err error
		endTime, err = addHours(req.StartTime, 3)
		if err != nil {
			return nil, err
		}
	}
	duration, err := durationLabel(req.StartTime, endTime)
	if err != nil {
		return nil, err
	}

	res := &ScheduleResult{}
	for _, class := range classes {
		if len(class.Subjects) == 0 {
			continue
		}
		exam := models.Exam{
			ClassID: class.ID,
			Title:   req.Title,
			Term:    req.Term,
			Status:  models.ExamUpcoming,
		}
		cursor := nextSchoolDay(req.StartDate)

		for _, subject := range class.Subjects {
			teacher := class.TeacherFor(subject)
			day, ok := findDay(cursor, func(d time.Time) bool {
				return !classDays.taken(class.ID, d) && busy.count(d, teacher) < teacherDayLimit
			})
			if !ok {
				res.Skipped = append(res.Skipped, SkippedSubject{
					ClassID:   class.ID,
					ClassName: class.DisplayName(),
					Subject:   subject,
					Reason:    fmt.Sprintf("no free day within %d attempts from %s", maxDateProbes, cursor.Format("2006-01-02")),
				})
				continue
			}

			exam.Sessions = append(exam.Sessions, models.ExamSession{
				Subject:    subject,
				Day:        day,
				StartTime:  req.StartTime,
				EndTime:    endTime,
				Duration:   duration,
				TotalMarks: defaultTotalMarks,
			})
			classDays.Add(class.ID, day)
			busy.Add(day, teacher)
			cursor = nextSchoolDay(day.AddDate(0, 0, 1))
		}

		if len(exam.Sessions) > 0 {
			res.Exams = append(res.Exams, exam)
		}
	}

	metrics.ExamSessionsPlaced.Add(float64(countSessions(res.Exams)))
	metrics.ExamSubjectsSkipped.Add(float64(len(res.Skipped)))
	return res, nil
}

// findDay probes forward from start, skipping Sundays, until accept says yes
// or the probe budget runs out.
func findDay(start time.Time, accept func(time.Time) bool) (time.Time, bool) {
	d := nextSchoolDay(start)
	for i := 0; i < maxDateProbes; i++ {
		if accept(d) {
			return d, true
		}
		d = nextSchoolDay(d.AddDate(0, 0, 1))
	}
	return time.Time{}, false
}

func nextSchoolDay(d time.Time) time.Time {
	for d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func countSessions(exams []models.Exam) int {
	n := 0
	for _, e := range exams {
		n += len(e.Sessions)
	}
	return n
}
