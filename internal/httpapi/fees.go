package httpapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/school-admin/internal/ctxutil"
	"github.com/Spok95/school-admin/internal/db"
	"github.com/Spok95/school-admin/internal/export"
	"github.com/Spok95/school-admin/internal/fees"
	"github.com/Spok95/school-admin/internal/models"
)

type generateMonthlyRequest struct {
	Month     string `json:"month"`
	Overwrite bool   `json:"overwrite"`
}

// GenerateMonthly is the manual trigger for the billing run; stateless
// deployments have no timer and call this instead.
func (h *Handlers) GenerateMonthly(c *fiber.Ctx) error {
	var req generateMonthlyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}
	if req.Month != "" {
		if err := fees.ValidateMonth(req.Month); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	sum, err := h.Gen.Generate(c.Context(), req.Month, req.Overwrite)
	if err != nil {
		h.Log.Errorw("invoice generation failed", "month", req.Month, "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "invoice generation failed",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success":        true,
		"generatedCount": sum.Generated,
		"updatedCount":   sum.Updated,
		"skippedCount":   sum.Skipped,
	})
}

func (h *Handlers) ListInvoices(c *fiber.Ctx) error {
	var filter db.InvoiceFilter
	if v := c.Query("studentId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "studentId must be an integer")
		}
		filter.StudentID = id
	}
	filter.Month = c.Query("month")
	filter.Status = c.Query("status")

	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()
	invoices, err := db.ListInvoices(ctx, h.DB, filter)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch invoices")
	}
	return c.JSON(fiber.Map{"success": true, "data": invoiceViews(invoices)})
}

type updateInvoiceRequest struct {
	Status     *string  `json:"status" validate:"omitempty,oneof=pending paid overdue partially_paid"`
	PaidAmount *float64 `json:"paidAmount" validate:"omitempty,gte=0"`
}

// UpdateInvoice records a payment or sets a status. A payment always wins
// over a direct status write: balance and status are derived from the amount.
func (h *Handlers) UpdateInvoice(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invoice id must be an integer")
	}
	var req updateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.Status == nil && req.PaidAmount == nil {
		return fiber.NewError(fiber.StatusBadRequest, "nothing to update")
	}

	if req.PaidAmount != nil {
		inv, err := db.ApplyPayment(c.Context(), h.DB, id, *req.PaidAmount)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to update invoice")
		}
		if inv == nil {
			return fiber.NewError(fiber.StatusNotFound, "invoice not found")
		}
		return c.JSON(fiber.Map{"success": true, "data": invoiceView(*inv)})
	}

	inv, err := db.GetInvoiceByID(c.Context(), h.DB, id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch invoice")
	}
	if inv == nil {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}
	if err := db.SetInvoiceStatus(c.Context(), h.DB, id, models.InvoiceStatus(*req.Status)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update invoice")
	}
	inv.Status = models.InvoiceStatus(*req.Status)
	return c.JSON(fiber.Map{"success": true, "data": invoiceView(*inv)})
}

// ExportInvoices streams the month's invoices as an xlsx workbook.
func (h *Handlers) ExportInvoices(c *fiber.Ctx) error {
	month := c.Query("month")
	if month != "" {
		if err := fees.ValidateMonth(month); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()
	invoices, err := db.ListInvoices(ctx, h.DB, db.InvoiceFilter{Month: month})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch invoices")
	}
	buf, err := export.InvoicesWorkbook("Fee invoices "+month, invoices)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build workbook")
	}

	name := "invoices.xlsx"
	if month != "" {
		name = "invoices_" + month + ".xlsx"
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}

func (h *Handlers) ListFeeStructures(c *fiber.Ctx) error {
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()
	structures, err := db.ListFeeStructures(ctx, h.DB)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch fee structures")
	}
	return c.JSON(fiber.Map{"success": true, "data": structures})
}

type feeStructureRequest struct {
	MonthlyFee   float64 `json:"monthlyFee" validate:"gte=0"`
	AdmissionFee float64 `json:"admissionFee" validate:"gte=0"`
	ExamFee      float64 `json:"examFee" validate:"gte=0"`
	SportsFee    float64 `json:"sportsFee" validate:"gte=0"`
}

// UpsertFeeStructure keys the row by the canonical form of the path segment,
// so "Grade 5", "5" and "V" all land on the same row.
func (h *Handlers) UpsertFeeStructure(c *fiber.Ctx) error {
	var req feeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	canonical := fees.CanonicalClass(c.Params("class"))
	if canonical == "" {
		return fiber.NewError(fiber.StatusBadRequest, "class name required")
	}
	err := db.UpsertFeeStructure(c.Context(), h.DB, models.FeeStructure{
		ClassName:    canonical,
		MonthlyFee:   req.MonthlyFee,
		AdmissionFee: req.AdmissionFee,
		ExamFee:      req.ExamFee,
		SportsFee:    req.SportsFee,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save fee structure")
	}
	return c.JSON(fiber.Map{"success": true, "class": canonical})
}

type concessionRequest struct {
	StudentID  int64   `json:"studentId" validate:"required"`
	Mode       string  `json:"mode" validate:"required,oneof=fixed percentage"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	StartMonth string  `json:"startMonth" validate:"required"`
	EndMonth   string  `json:"endMonth"`
	Note       string  `json:"note"`
}

func (h *Handlers) CreateConcession(c *fiber.Ctx) error {
	var req concessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := fees.ValidateMonth(req.StartMonth); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.EndMonth != "" {
		if err := fees.ValidateMonth(req.EndMonth); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.EndMonth <= req.StartMonth {
			return fiber.NewError(fiber.StatusBadRequest, "endMonth must be after startMonth")
		}
	}
	if req.Mode == string(models.ConcessionPercentage) && req.Amount > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "percentage concession cannot exceed 100")
	}

	id, err := db.InsertConcession(c.Context(), h.DB, models.Concession{
		StudentID:  req.StudentID,
		Mode:       models.ConcessionMode(req.Mode),
		Amount:     req.Amount,
		StartMonth: req.StartMonth,
		EndMonth:   req.EndMonth,
		Note:       req.Note,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save concession")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": id})
}

func (h *Handlers) ListConcessions(c *fiber.Ctx) error {
	studentID, err := strconv.ParseInt(c.Query("studentId"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "studentId must be an integer")
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Context())
	defer cancel()
	concessions, err := db.ListConcessionsByStudent(ctx, h.DB, studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch concessions")
	}
	return c.JSON(fiber.Map{"success": true, "data": concessions})
}

type invoiceResponse struct {
	ID               int64   `json:"id"`
	InvoiceNumber    string  `json:"invoiceNumber"`
	StudentID        int64   `json:"studentId"`
	StudentName      string  `json:"studentName"`
	ClassName        string  `json:"className"`
	Month            string  `json:"month"`
	Amount           float64 `json:"amount"`
	PaidAmount       float64 `json:"paidAmount"`
	RemainingBalance float64 `json:"remainingBalance"`
	Status           string  `json:"status"`
	DueDate          string  `json:"dueDate"`
}

func invoiceView(inv models.FeeInvoice) invoiceResponse {
	return invoiceResponse{
		ID:               inv.ID,
		InvoiceNumber:    inv.InvoiceNumber,
		StudentID:        inv.StudentID,
		StudentName:      inv.StudentName,
		ClassName:        inv.ClassName,
		Month:            inv.Month,
		Amount:           inv.Amount,
		PaidAmount:       inv.PaidAmount,
		RemainingBalance: inv.RemainingBalance,
		Status:           string(inv.Status),
		DueDate:          inv.DueDate.Format("2006-01-02"),
	}
}

func invoiceViews(invoices []models.FeeInvoice) []invoiceResponse {
	out := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, invoiceView(inv))
	}
	return out
}
