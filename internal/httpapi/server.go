package httpapi

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Spok95/school-admin/internal/fees"
	"github.com/Spok95/school-admin/internal/metrics"
	"github.com/Spok95/school-admin/internal/observability"
)

type Handlers struct {
	DB       *sql.DB
	Gen      *fees.Generator
	Log      *zap.SugaredLogger
	Location *time.Location

	validate *validator.Validate
}

func NewHandlers(database *sql.DB, gen *fees.Generator, log *zap.SugaredLogger, loc *time.Location) *Handlers {
	return &Handlers{
		DB:       database,
		Gen:      gen,
		Log:      log,
		Location: loc,
		validate: validator.New(),
	}
}

// NewApp builds the fiber application with the JSON error contract every
// consumer of this API expects: {success:false, error, code}.
func NewApp(h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: h.errorHandler,
	})

	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		metrics.HTTPRequests.WithLabelValues(c.Route().Path, strconv.Itoa(c.Response().StatusCode())).Inc()
		return err
	})

	Register(app, h)
	return app
}

func (h *Handlers) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	if code >= fiber.StatusInternalServerError {
		metrics.HandlerErrors.Inc()
		observability.CaptureErr(err)
		h.Log.Errorw("handler error", "path", c.Path(), "err", err)
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

// Register wires the route table.
func Register(app *fiber.App, h *Handlers) {
	api := app.Group("/api")

	feesGroup := api.Group("/fees")
	feesGroup.Post("/generate-monthly", h.GenerateMonthly)
	feesGroup.Get("/invoices", h.ListInvoices)
	feesGroup.Get("/invoices/export", h.ExportInvoices)
	feesGroup.Put("/invoices/:id", h.UpdateInvoice)
	feesGroup.Get("/structures", h.ListFeeStructures)
	feesGroup.Put("/structures/:class", h.UpsertFeeStructure)
	feesGroup.Post("/concessions", h.CreateConcession)
	feesGroup.Get("/concessions", h.ListConcessions)

	examsGroup := api.Group("/exams")
	examsGroup.Post("/generate-auto", h.GenerateAutoSchedule)
	examsGroup.Post("/:id/results", h.SubmitResult)
	examsGroup.Put("/:id/status", h.UpdateExamStatus)

	api.Post("/admissions/complete", h.CompleteAdmission)
	api.Post("/applications/complete", h.CompleteJobApplication)
}
