package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tramites-portal/internal/api/dto"
	"github.com/spec-kit/tramites-portal/internal/domain"
	"github.com/spec-kit/tramites-portal/internal/export"
	"github.com/spec-kit/tramites-portal/internal/service"
	"github.com/spec-kit/tramites-portal/internal/view"
)

// TiposHandler exposes the trámite type catalog screens.
type TiposHandler struct {
	catalog *service.CatalogService
}

// NewTiposHandler constructs handler.
func NewTiposHandler(catalog *service.CatalogService) *TiposHandler {
	return &TiposHandler{catalog: catalog}
}

func tipoFields(t domain.ProcedureType) []string {
	return []string{t.Nombre}
}

// ListActive handles GET /tipos-tramite/activos, the public form source.
func (h *TiposHandler) ListActive(c *fiber.Ctx) error {
	items, err := h.catalog.ListActive(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"tipos": items}})
}

// List handles GET /tipos-tramite.
func (h *TiposHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	items, err := h.catalog.List(c.Context(), user)
	if err != nil {
		return err
	}

	params := parseListParams(c)
	page := view.Apply(items, params.Query, tipoFields, params.Page, params.PageSize)

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"tipos": page.Items,
			"meta":  listMeta(page, params.Query),
		},
	})
}

// Create handles POST /tipos-tramite.
func (h *TiposHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.TipoTramiteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	pt, err := h.catalog.Create(c.Context(), user, req.Nombre, req.Estado)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"tipo": pt}})
}

// Update handles PUT /tipos-tramite/:id.
func (h *TiposHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.TipoTramiteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	pt, err := h.catalog.Update(c.Context(), user, c.Params("id"), req.Nombre, req.Estado)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"tipo": pt}})
}

// Delete handles DELETE /tipos-tramite/:id.
func (h *TiposHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.catalog.Delete(c.Context(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

// Export handles GET /tipos-tramite/export.
func (h *TiposHandler) Export(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	format, err := exportFormat(c)
	if err != nil {
		return err
	}

	items, err := h.catalog.List(c.Context(), user)
	if err != nil {
		return err
	}
	query := c.Query("q")
	filtered := view.Filter(items, query, tipoFields)

	dataset := exportDataset(export.DatasetTiposTramite, query)
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
