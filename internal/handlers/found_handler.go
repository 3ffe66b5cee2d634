package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lostnfound/backend/internal/dto"
	"github.com/lostnfound/backend/internal/services"
)

type FoundReportHandler struct {
	reports *services.ReportService
}

func NewFoundReportHandler(reports *services.ReportService) *FoundReportHandler {
	return &FoundReportHandler{reports: reports}
}

// Create handles POST /reports/found: a standalone found-item report. The
// response is the public view; the finder's contact stays private even to
// the finder's own response.
func (h *FoundReportHandler) Create(c *fiber.Ctx) error {
	images, err := formUploads(c, "images")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Malformed multipart body"})
	}

	report, err := h.reports.CreateFoundReport(c.Context(), services.CreateFoundReportParams{
		Description:   c.FormValue("description"),
		DateFound:     formValue(c, "date_found"),
		FinderContact: formValue(c, "finder_contact"),
		Country:       formValue(c, "country"),
		State:         formValue(c, "state"),
		City:          formValue(c, "city"),
		Images:        images,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPublicFoundReport(report))
}

// List handles GET /reports/found.
func (h *FoundReportHandler) List(c *fiber.Ctx) error {
	skip, limit := paginationParams(c)
	reports, err := h.reports.ListFoundReports(c.Context(), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PublicFoundReport, 0, len(reports))
	for i := range reports {
		out = append(out, dto.NewPublicFoundReport(&reports[i]))
	}
	return c.JSON(out)
}

// Get handles GET /reports/found/:id.
func (h *FoundReportHandler) Get(c *fiber.Ctx) error {
	report, err := h.reports.GetFoundReport(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPublicFoundReport(report))
}
