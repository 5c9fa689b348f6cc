package httpapi

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/school-admin/internal/db"
	"github.com/Spok95/school-admin/internal/exams"
	"github.com/Spok95/school-admin/internal/models"
)

type generateAutoRequest struct {
	Title     string `json:"title" validate:"required"`
	Term      string `json:"term" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime"`
}

// GenerateAutoSchedule plans one exam per class and persists the plan.
// Subjects that could not be placed come back under "skipped" so the office
// can slot them manually.
func (h *Handlers) GenerateAutoSchedule(c *fiber.Ctx) error {
	var req generateAutoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	startDate, err := time.ParseInLocation("2006-01-02", req.StartDate, h.Location)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "startDate must be YYYY-MM-DD")
	}

	classes, err := db.ListClasses(c.Context(), h.DB)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch classes")
	}

	busy, classDays, err := h.seedOccupancy(c, classes)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch existing sessions")
	}

	result, err := exams.Schedule(classes, busy, classDays, exams.Request{
		Title:     req.Title,
		Term:      req.Term,
		StartDate: startDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	created := make([]models.Exam, 0, len(result.Exams))
	for _, exam := range result.Exams {
		id, err := db.InsertExam(c.Context(), h.DB, exam)
		if err != nil {
			// exams already written stay written; the response reports how far we got
			h.Log.Errorw("persist exam failed", "classId", exam.ClassID, "err", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": fmt.Sprintf("scheduled %d exams before failing", len(created)),
				"error":   err.Error(),
			})
		}
		exam.ID = id
		created = append(created, exam)
	}

	skipped := result.Skipped
	if skipped == nil {
		skipped = []exams.SkippedSubject{}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("generated %d exams", len(created)),
		"data":    created,
		"skipped": skipped,
	})
}

// seedOccupancy rebuilds the day/teacher and day/class booking state from
// sessions of exams that are not completed yet.
func (h *Handlers) seedOccupancy(c *fiber.Ctx, classes []models.Class) (exams.Occupancy, exams.ClassDays, error) {
	sessions, classOf, err := db.ListUpcomingSessions(c.Context(), h.DB)
	if err != nil {
		return nil, nil, err
	}
	classByID := map[int64]models.Class{}
	for _, cl := range classes {
		classByID[cl.ID] = cl
	}

	busy := exams.Occupancy{}
	classDays := exams.ClassDays{}
	for _, s := range sessions {
		classID := classOf[s.ExamID]
		classDays.Add(classID, s.Day)
		if cl, ok := classByID[classID]; ok {
			busy.Add(s.Day, cl.TeacherFor(s.Subject))
		}
	}
	return busy, classDays, nil
}

type submitResultRequest struct {
	StudentID int64               `json:"studentId" validate:"required"`
	Marks     []submitMarkRequest `json:"marks" validate:"required,min=1,dive"`
}

type submitMarkRequest struct {
	Subject  string  `json:"subject" validate:"required"`
	Obtained float64 `json:"obtained" validate:"gte=0"`
	Total    float64 `json:"total" validate:"gt=0"`
}

// SubmitResult grades the marks and stores the result; aggregates are final
// at submission time.
func (h *Handlers) SubmitResult(c *fiber.Ctx) error {
	examID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "exam id must be an integer")
	}
	var req submitResultRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	exam, err := db.GetExamByID(c.Context(), h.DB, examID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch exam")
	}
	if exam == nil {
		return fiber.NewError(fiber.StatusNotFound, "exam not found")
	}

	marks := make([]models.SubjectMark, 0, len(req.Marks))
	for _, m := range req.Marks {
		marks = append(marks, models.SubjectMark{Subject: m.Subject, Obtained: m.Obtained, Total: m.Total})
	}
	result := exams.GradeResult(examID, req.StudentID, marks)
	id, err := db.InsertResult(c.Context(), h.DB, result)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save result")
	}
	result.ID = id
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": result})
}

type examStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=upcoming ongoing completed"`
}

func (h *Handlers) UpdateExamStatus(c *fiber.Ctx) error {
	examID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "exam id must be an integer")
	}
	var req examStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	err = db.UpdateExamStatus(c.Context(), h.DB, examID, models.ExamStatus(req.Status))
	if err != nil {
		var bad *models.ErrBadTransition
		if errors.As(err, &bad) {
			return fiber.NewError(fiber.StatusConflict, bad.Error())
		}
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "exam not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update exam")
	}
	return c.JSON(fiber.Map{"success": true})
}
