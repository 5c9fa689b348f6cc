package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/school-admin/internal/admissions"
)

type admissionRequest struct {
	Name           string `json:"name" validate:"required"`
	GuardianName   string `json:"guardianName"`
	GuardianPhone  string `json:"guardianPhone"`
	AdmissionClass string `json:"admissionClass" validate:"required"`
	Username       string `json:"username"`
	Password       string `json:"password" validate:"required,min=6"`
}

func (h *Handlers) CompleteAdmission(c *fiber.Ctx) error {
	var req admissionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	student, err := admissions.CompleteAdmission(c.Context(), h.DB, admissions.Admission{
		Name:           req.Name,
		GuardianName:   req.GuardianName,
		GuardianPhone:  req.GuardianPhone,
		AdmissionClass: req.AdmissionClass,
		Username:       req.Username,
		Password:       req.Password,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to complete admission")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": student})
}

type jobApplicationRequest struct {
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone"`
	Qualification string `json:"qualification"`
	Subject       string `json:"subject"`
	Username      string `json:"username"`
	Password      string `json:"password" validate:"required,min=6"`
}

func (h *Handlers) CompleteJobApplication(c *fiber.Ctx) error {
	var req jobApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	teacher, err := admissions.CompleteJobApplication(c.Context(), h.DB, admissions.JobApplication{
		Name:          req.Name,
		Phone:         req.Phone,
		Qualification: req.Qualification,
		Subject:       req.Subject,
		Username:      req.Username,
		Password:      req.Password,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to complete application")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": teacher})
}
