package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lostnfound/backend/internal/dto"
	"github.com/lostnfound/backend/internal/services"
)

type LostReportHandler struct {
	reports *services.ReportService
}

func NewLostReportHandler(reports *services.ReportService) *LostReportHandler {
	return &LostReportHandler{reports: reports}
}

// Create handles POST /reports/lost: multipart intake with up to five
// images. The response is the full record including the management token;
// this is the only time the token leaves the server besides the email.
func (h *LostReportHandler) Create(c *fiber.Ctx) error {
	images, err := formUploads(c, "images")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Malformed multipart body"})
	}

	report, err := h.reports.CreateLostReport(c.Context(), services.CreateLostReportParams{
		Description:   c.FormValue("description"),
		ReporterEmail: formValue(c, "reporter_email"),
		DateLost:      formValue(c, "date_lost"),
		ProductLink:   formValue(c, "product_link"),
		Country:       formValue(c, "country"),
		State:         formValue(c, "state"),
		City:          formValue(c, "city"),
		Images:        images,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// List handles GET /reports/lost: public newest-first pagination.
func (h *LostReportHandler) List(c *fiber.Ctx) error {
	skip, limit := paginationParams(c)
	reports, err := h.reports.ListLostReports(c.Context(), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PublicLostReport, 0, len(reports))
	for i := range reports {
		out = append(out, dto.NewPublicLostReport(&reports[i]))
	}
	return c.JSON(out)
}

// GetPublic handles GET /reports/lost/:id. The view omits the token, the
// reporter's email and the finder reports.
func (h *LostReportHandler) GetPublic(c *fiber.Ctx) error {
	report, err := h.reports.GetPublicLostReport(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPublicLostReport(report))
}

// GetManaged handles GET /reports/lost/:id/manage?token=. Unknown id is
// 404, wrong token is 403.
func (h *LostReportHandler) GetManaged(c *fiber.Ctx) error {
	report, err := h.reports.AuthorizeAndFetch(c.Context(), c.Params("id"), c.Query("token"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// UpdateManaged handles PUT /reports/lost/:id/manage?token=. The body is a
// partial JSON document; only fields present are applied, explicit nulls
// clear optional fields.
func (h *LostReportHandler) UpdateManaged(c *fiber.Ctx) error {
	var req dto.UpdateLostReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid JSON body"})
	}

	report, err := h.reports.UpdateFields(c.Context(), c.Params("id"), c.Query("token"), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// DeleteManaged handles DELETE /reports/lost/:id/manage?token=, cascading
// best-effort attachment cleanup.
func (h *LostReportHandler) DeleteManaged(c *fiber.Ctx) error {
	if err := h.reports.DeleteRecord(c.Context(), c.Params("id"), c.Query("token")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkFound handles POST /reports/lost/:id/found: the simple single-contact
// resolution. Idempotent; a repeat call is a silent success.
func (h *LostReportHandler) MarkFound(c *fiber.Ctx) error {
	var req dto.MarkFoundRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid JSON body"})
	}

	if err := h.reports.MarkFoundSimple(c.Context(), c.Params("id"), req.FinderContact); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AppendFinderReport handles POST /reports/lost/:id/found-detailed: an
// unauthenticated multipart finder submission with optional images.
func (h *LostReportHandler) AppendFinderReport(c *fiber.Ctx) error {
	images, err := formUploads(c, "finder_images")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Malformed multipart body"})
	}

	err = h.reports.AppendFinderReport(c.Context(), c.Params("id"), services.FinderReportParams{
		FinderContact:     formValue(c, "finder_contact"),
		FinderDescription: c.FormValue("finder_description"),
		DateFound:         formValue(c, "date_found"),
		Country:           formValue(c, "country"),
		State:             formValue(c, "state"),
		City:              formValue(c, "city"),
		Images:            images,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
