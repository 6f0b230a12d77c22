package api

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitlog/internal/services"
)

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	bundle, ok, err := handler.loadExportBundle(c)
	if !ok {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, exportAttachmentHeader(bundle, "json"))
	return c.JSON(bundle)
}

// ExportCSV writes one file with a titled section per record kind separated
// by a blank row.
func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	bundle, ok, err := handler.loadExportBundle(c)
	if !ok {
		return err
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	for index, section := range services.BuildExportCSVSections(bundle) {
		if index > 0 {
			if err := writer.Write([]string{}); err != nil {
				return handler.respondServiceError(c, "export.csv", err)
			}
		}
		if err := writer.Write([]string{section.Title}); err != nil {
			return handler.respondServiceError(c, "export.csv", err)
		}
		if err := writer.Write(section.Headers); err != nil {
			return handler.respondServiceError(c, "export.csv", err)
		}
		if err := writer.WriteAll(section.Rows); err != nil {
			return handler.respondServiceError(c, "export.csv", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return handler.respondServiceError(c, "export.csv", err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, exportAttachmentHeader(bundle, "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) loadExportBundle(c *fiber.Ctx) (services.ExportBundle, bool, error) {
	user, ok := currentUser(c)
	if !ok {
		return services.ExportBundle{}, false, handler.localizedError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	bundle, err := handler.exportService.LoadBundle(user.ID, handler.currentTime())
	if err != nil {
		return services.ExportBundle{}, false, handler.respondServiceError(c, "export.load", err)
	}
	return bundle, true, nil
}

func exportAttachmentHeader(bundle services.ExportBundle, extension string) string {
	return fmt.Sprintf("attachment; filename=\"fitlog-export-%s.%s\"", bundle.ExportedAt.Format(services.ISODateLayout), extension)
}
