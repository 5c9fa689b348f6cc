package models

import "time"

type Exam struct {
	ID       int64
	ClassID  int64
	Title    string
	Term     string
	Status   ExamStatus
	Sessions []ExamSession
}

type ExamSession struct {
	ID         int64
	ExamID     int64
	Subject    string
	Day        time.Time
	StartTime  string
	EndTime    string
	Duration   string // "<H>h <M>m"
	Room       string
	TotalMarks int
}

type Result struct {
	ID            int64
	ExamID        int64
	StudentID     int64
	Marks         []SubjectMark
	TotalObtained float64
	TotalMax      float64
	Percentage    float64
	Grade         string
	Passed        bool
}

type SubjectMark struct {
	Subject  string
	Obtained float64
	Total    float64
}
