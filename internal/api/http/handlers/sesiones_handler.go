package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/export"
	"github.com/spec-kit/tramites-portal/internal/service"
	"github.com/spec-kit/tramites-portal/internal/view"
)

// SesionesHandler exposes the admin login-session log.
type SesionesHandler struct {
	sessions *service.SessionService
}

// NewSesionesHandler constructs handler.
func NewSesionesHandler(sessions *service.SessionService) *SesionesHandler {
	return &SesionesHandler{sessions: sessions}
}

func sesionFields(s domain.Session) []string {
	return []string{s.DisplayName, s.Email, s.Provider}
}

// List handles GET /sesiones.
func (h *SesionesHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.sessions.ListSessions(c.Context(), user)
	if err != nil {
		return err
	}

	params := parseListParams(c)
	page := view.Apply(items, params.Query, sesionFields, params.Page, params.PageSize)

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"sesiones": page.Items,
			"meta":     listMeta(page, params.Query),
		},
	})
}

// Export handles GET /sesiones/export.
func (h *SesionesHandler) Export(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	format, err := exportFormat(c)
	if err != nil {
		return err
	}

	items, err := h.sessions.ListSessions(c.Context(), user)
	if err != nil {
		return err
	}
	query := c.Query("q")
	filtered := view.Filter(items, query, sesionFields)

	dataset := exportDataset(export.DatasetSesiones, query)
	var doc *export.Document
	if format == "pdf" {
		doc, err = export.PDF(dataset, filtered, time.Now())
	} else {
		doc, err = export.Excel(dataset, filtered, time.Now())
	}
	if err != nil {
		return err
	}
	return sendDocument(c, doc)
}
