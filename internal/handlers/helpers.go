package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lostnfound/backend/internal/attachments"
	"github.com/lostnfound/backend/internal/dto"
	"github.com/lostnfound/backend/internal/services"
)

// respondError maps workflow errors onto the HTTP surface. Storage failures
// stay generic; the detail is already logged with context by the service.
func respondError(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Error: true, Message: ve.Message, Field: ve.Field})
	}
	switch {
	case errors.Is(err, services.ErrInvalidReportID):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid report ID format"})
	case errors.Is(err, services.ErrReportNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Report not found"})
	case errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: "Invalid token"})
	case errors.Is(err, services.ErrLocationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Location not found"})
	case errors.Is(err, services.ErrLocationUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: true, Message: "Location service unavailable"})
	}
	slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
}

// formUploads reads every file under the given multipart key into memory.
// The per-submission cap is enforced by the workflow, not here.
func formUploads(c *fiber.Ctx, key string) ([]attachments.Upload, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), "multipart/") {
		// No multipart body at all is fine; images are optional.
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, nil
	}
	files := form.File[key]
	uploads := make([]attachments.Upload, 0, len(files))
	for _, fh := range files {
		data, err := readFile(fh)
		if err != nil {
			slog.Warn("skipping unreadable upload", "filename", fh.Filename, "error", err)
			continue
		}
		uploads = append(uploads, attachments.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return uploads, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func formValue(c *fiber.Ctx, key string) string {
	return strings.TrimSpace(c.FormValue(key))
}

func paginationParams(c *fiber.Ctx) (skip, limit int64) {
	return int64(c.QueryInt("skip", 0)), int64(c.QueryInt("limit", 10))
}
